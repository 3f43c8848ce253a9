package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/croft/stalecheck/config"
	"github.com/croft/stalecheck/internal/ghclient"
	"github.com/croft/stalecheck/internal/log"
	"github.com/croft/stalecheck/internal/output"
	"github.com/croft/stalecheck/internal/stale"
	"github.com/croft/stalecheck/internal/tui"
)

// NewCmdScan creates the scan command.
func NewCmdScan(opts *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Scan repositories for staleness (same as root stalecheck)",
		Long: `Lists the repositories of the configured organization (or the token's
user), classifies each against the inactivity threshold, and renders the
stale ones.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runScan(cmd, opts)
		},
	}

	addScanFlags(cmd, opts)
	return cmd
}

// addScanFlags adds the scan-specific flags to a command.
func addScanFlags(cmd *cobra.Command, opts *Options) {
	cmd.Flags().StringVar(&opts.Organization, "org", "", "Organization to scan (default: repos owned by the token's user)")
	cmd.Flags().IntVarP(&opts.Days, "days", "d", 0, "Inactivity threshold in days")
	cmd.Flags().StringVar(&opts.ActivityMethod, "activity-method", "", "Last-activity signal (pushed, default_branch_updated)")
	cmd.Flags().StringSliceVarP(&opts.Metrics, "metrics", "m", nil, "Supplemental metrics to attach (release, pr)")
	cmd.Flags().StringSliceVar(&opts.ExemptRepos, "exempt-repo", nil, "Repo name glob pattern exempt from the check (repeatable)")
	cmd.Flags().StringSliceVar(&opts.ExemptTopics, "exempt-topic", nil, "Topic exempt from the check (repeatable)")
	cmd.Flags().StringVarP(&opts.Format, "output", "o", "", "Output format (table, markdown, json)")
	cmd.Flags().StringVar(&opts.ReportsDir, "reports-dir", ".", "Directory for the stale_repos.md/.json report files")
	cmd.Flags().BoolVar(&opts.NoReports, "no-reports", false, "Skip writing report files")
	cmd.Flags().CountVarP(&opts.Verbosity, "verbose", "v", "Increase verbosity (-v info, -vv debug, -vvv trace)")
	cmd.Flags().Var(newTUIFlag(opts), "tui", "Enable/disable progress display (default: auto-detect)")
}

// scanRuntime bundles the progress display state threaded through the scan.
type scanRuntime struct {
	useTUI  bool
	events  chan tui.Event
	tuiDone chan error
}

func (rt *scanRuntime) start() {
	if !rt.useTUI {
		return
	}
	rt.events = make(chan tui.Event, 100)
	rt.tuiDone = make(chan error, 1)
	go func() {
		rt.tuiDone <- tui.Run(rt.events)
	}()
}

// close closes the event channel and waits for the display to finish.
func (rt *scanRuntime) close() {
	if rt.events == nil {
		return
	}
	close(rt.events)
	rt.events = nil
	<-rt.tuiDone
}

func (rt *scanRuntime) sendEvent(task tui.TaskID, status tui.TaskStatus, opts ...tui.TaskEventOption) {
	tui.SendTaskEvent(rt.events, task, status, opts...)
}

func runScan(cmd *cobra.Command, opts *Options) error {
	ctx := cmd.Context()

	rt := &scanRuntime{useTUI: shouldUseTUI(opts)}

	// Suppress logs during the progress display to avoid interleaving.
	if rt.useTUI {
		log.Initialize(opts.Verbosity, io.Discard)
	} else {
		log.Initialize(opts.Verbosity, os.Stderr)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyFlagOverrides(cfg, cmd, opts)

	// Configuration errors are fatal before any scan work.
	policy, err := cfg.Policy()
	if err != nil {
		return err
	}
	format, err := output.ParseFormat(cfg.DefaultFormat)
	if err != nil {
		return err
	}
	token := cfg.Token()
	if token == "" {
		return fmt.Errorf("GitHub token not configured. Set GH_TOKEN or GITHUB_TOKEN")
	}

	rt.start()

	client, err := ghclient.NewClient(ctx, token, cfg.EnterpriseURL)
	if err != nil {
		rt.close()
		return err
	}

	rt.sendEvent(tui.TaskAuth, tui.StatusRunning)
	user, err := client.AuthenticatedUser(ctx)
	if err != nil {
		rt.sendEvent(tui.TaskAuth, tui.StatusError, tui.WithError(err))
		rt.close()
		return fmt.Errorf("failed to authenticate: %w", err)
	}
	rt.sendEvent(tui.TaskAuth, tui.StatusComplete, tui.WithMessage(user))

	if cfg.Organization == "" {
		log.Info("no organization configured, scanning repos owned by token user", "user", user)
	}

	// Notices go to stdout; during the progress display they are dropped,
	// the display and the rendered report cover the same information.
	notices := io.Writer(os.Stdout)
	if rt.useTUI {
		notices = io.Discard
	}

	engineOpts := []stale.Option{
		stale.WithOrganization(cfg.Organization),
		stale.WithNotices(notices),
	}
	if rt.useTUI {
		engineOpts = append(engineOpts, stale.WithProgress(func(scanned, staleCount int) {
			rt.sendEvent(tui.TaskScan, tui.StatusRunning,
				tui.WithMessage(fmt.Sprintf("%d repos scanned, %d stale", scanned, staleCount)))
			if _, _, resetAt, limited := ghclient.GetRateLimitStatus(); limited {
				tui.SendEvent(rt.events, tui.RateLimitEvent{Limited: true, ResetAt: resetAt})
			}
		}))
	}

	engine, err := stale.NewEngine(policy, engineOpts...)
	if err != nil {
		rt.close()
		return err
	}

	rt.sendEvent(tui.TaskScan, tui.StatusRunning)
	results, err := engine.Classify(ctx, client.Repositories(cfg.Organization))
	if err != nil {
		// A hard provider failure aborts the run with no report at all:
		// a partial report would silently read as a complete one.
		rt.sendEvent(tui.TaskScan, tui.StatusError, tui.WithError(err))
		rt.close()
		if remaining, _, resetAt, limited := ghclient.GetRateLimitStatus(); limited {
			log.Warn("rate limited", "remaining", remaining, "resets_at", resetAt)
		}
		return err
	}
	rt.sendEvent(tui.TaskScan, tui.StatusComplete,
		tui.WithMessage(fmt.Sprintf("%d stale", len(results))))

	report := output.Report{
		Results:       results,
		ThresholdDays: policy.ThresholdDays,
		Organization:  cfg.Organization,
		Metrics:       policy.Metrics,
	}

	if err := writeReports(report, cfg, opts, rt); err != nil {
		rt.close()
		return err
	}

	rt.close()

	return output.NewFormatter(format).Format(report, os.Stdout)
}

// writeReports emits the stale_repos.md/.json files plus the GitHub Actions
// side channels, honoring the skip-empty-reports setting.
func writeReports(report output.Report, cfg *config.Config, opts *Options, rt *scanRuntime) error {
	if opts.NoReports {
		rt.sendEvent(tui.TaskReport, tui.StatusSkipped)
		return nil
	}
	if len(report.Results) == 0 && cfg.SkipEmpty() {
		if !rt.useTUI {
			fmt.Println("Reporting skipped; no stale repos found.")
		}
		rt.sendEvent(tui.TaskReport, tui.StatusSkipped, tui.WithMessage("no stale repos"))
		return nil
	}

	rt.sendEvent(tui.TaskReport, tui.StatusRunning)
	if err := output.WriteFiles(report, opts.ReportsDir, cfg.WorkflowSummaryEnabled()); err != nil {
		rt.sendEvent(tui.TaskReport, tui.StatusError, tui.WithError(err))
		return err
	}
	rt.sendEvent(tui.TaskReport, tui.StatusComplete)
	return nil
}

// applyFlagOverrides layers explicitly-set flags on top of the loaded
// config; flags win over both config files and environment.
func applyFlagOverrides(cfg *config.Config, cmd *cobra.Command, opts *Options) {
	if cmd.Flags().Changed("org") {
		cfg.Organization = opts.Organization
	}
	if cmd.Flags().Changed("days") {
		cfg.InactiveDays = &opts.Days
	}
	if cmd.Flags().Changed("activity-method") {
		cfg.ActivityMethod = opts.ActivityMethod
	}
	if cmd.Flags().Changed("metrics") {
		cfg.AdditionalMetrics = opts.Metrics
	}
	if cmd.Flags().Changed("exempt-repo") {
		cfg.ExemptRepos = opts.ExemptRepos
	}
	if cmd.Flags().Changed("exempt-topic") {
		cfg.ExemptTopics = opts.ExemptTopics
	}
	if cmd.Flags().Changed("output") {
		cfg.DefaultFormat = opts.Format
	}
}
