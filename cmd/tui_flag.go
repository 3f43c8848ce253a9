package cmd

import (
	"fmt"
	"strconv"

	"github.com/croft/stalecheck/internal/tui"
)

// triStateFlag backs the --tui flag. Unlike a plain bool it keeps an
// unset state, so "auto" (or omitting the flag) defers the decision to
// terminal detection at run time.
type triStateFlag struct {
	value **bool
}

func newTUIFlag(opts *Options) *triStateFlag {
	return &triStateFlag{value: &opts.TUI}
}

func (f *triStateFlag) String() string {
	if *f.value == nil {
		return "auto"
	}
	return strconv.FormatBool(**f.value)
}

func (f *triStateFlag) Set(s string) error {
	switch s {
	case "auto":
		*f.value = nil
		return nil
	case "yes":
		s = "true"
	case "no":
		s = "false"
	}
	v, err := strconv.ParseBool(s)
	if err != nil {
		return fmt.Errorf("invalid value %q: use true, false, or auto", s)
	}
	*f.value = &v
	return nil
}

func (f *triStateFlag) Type() string { return "bool" }

// IsBoolFlag lets --tui stand alone as an implicit --tui=true.
func (f *triStateFlag) IsBoolFlag() bool { return true }

// shouldUseTUI resolves the final TUI decision: verbose runs log to
// stderr instead, an explicit flag wins next, and with neither we fall
// back to terminal detection.
func shouldUseTUI(opts *Options) bool {
	if opts.Verbosity > 0 {
		return false
	}
	if opts.TUI != nil {
		return *opts.TUI
	}
	return tui.ShouldUseTUI()
}
