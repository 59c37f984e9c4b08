package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/pyvet/pyvet/internal/review"
	"github.com/pyvet/pyvet/internal/store"
)

var flagReviewRun string

func init() {
	reviewCmd := &cobra.Command{
		Use:   "review",
		Short: "Interactively triage findings from a stored run",
		Long: `Open an interactive terminal UI for walking through the findings of a
stored run. Findings can be confirmed or dismissed; triage state is saved
per run and restored on the next session.`,
		RunE: runReview,
	}

	reviewCmd.Flags().StringVar(&flagReviewRun, "run", "", "Run ID to review (default: most recent)")

	rootCmd.AddCommand(reviewCmd)
}

func runReview(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	fs := store.NewFileStore(cfg.Store.Dir)

	runID := flagReviewRun
	if runID == "" {
		ids, err := fs.List(ctx)
		if err != nil {
			return fmt.Errorf("listing runs: %w", err)
		}
		if len(ids) == 0 {
			return fmt.Errorf("no stored runs found in %s", cfg.Store.Dir)
		}
		runID = ids[0]
	}

	findings, err := fs.ReadFindings(ctx, runID)
	if err != nil {
		return fmt.Errorf("reading findings for %s: %w", runID, err)
	}
	if len(findings) == 0 {
		fmt.Printf("Run %s has no findings to review.\n", runID)
		return nil
	}

	model := review.NewModel(runID, findings)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("running review UI: %w", err)
	}
	return nil
}
