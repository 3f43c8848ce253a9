package output

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/croft/stalecheck/internal/log"
)

// Report file names, matching what the original action emits.
const (
	MarkdownFileName = "stale_repos.md"
	JSONFileName     = "stale_repos.json"
)

// WriteFiles writes the markdown and JSON reports into dir and, when
// requested, mirrors them to the GitHub Actions side channels:
// the JSON is appended to $GITHUB_OUTPUT as inactiveRepos=<json>, and the
// markdown is appended to $GITHUB_STEP_SUMMARY when workflowSummary is set.
func WriteFiles(report Report, dir string, workflowSummary bool) error {
	var md, js bytes.Buffer
	if err := (&MarkdownFormatter{}).Format(report, &md); err != nil {
		return err
	}
	if err := (&JSONFormatter{}).Format(report, &js); err != nil {
		return err
	}

	mdPath := filepath.Join(dir, MarkdownFileName)
	if err := os.WriteFile(mdPath, md.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", mdPath, err)
	}
	log.Info("wrote markdown report", "path", mdPath)

	jsPath := filepath.Join(dir, JSONFileName)
	if err := os.WriteFile(jsPath, js.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", jsPath, err)
	}
	log.Info("wrote json report", "path", jsPath)

	if outPath := os.Getenv("GITHUB_OUTPUT"); outPath != "" {
		line := fmt.Sprintf("inactiveRepos=%s", bytes.TrimRight(js.Bytes(), "\n"))
		if err := appendFile(outPath, line+"\n"); err != nil {
			return fmt.Errorf("failed to append to GITHUB_OUTPUT: %w", err)
		}
	}

	if workflowSummary {
		if sumPath := os.Getenv("GITHUB_STEP_SUMMARY"); sumPath != "" {
			if err := appendFile(sumPath, md.String()); err != nil {
				return fmt.Errorf("failed to append to GITHUB_STEP_SUMMARY: %w", err)
			}
			log.Info("added report to workflow summary")
		}
	}

	return nil
}

func appendFile(path, content string) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = f.WriteString(content)
	return err
}
