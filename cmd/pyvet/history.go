package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/pyvet/pyvet/internal/store"
)

var flagHistoryLimit int

func init() {
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect past analysis runs recorded in the history database",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List recorded runs, newest first",
		RunE:  runHistoryList,
	}
	listCmd.Flags().IntVar(&flagHistoryLimit, "limit", 20, "Maximum number of runs to show")

	showCmd := &cobra.Command{
		Use:   "show <run-id>",
		Short: "Show the findings of a recorded run",
		Args:  cobra.ExactArgs(1),
		RunE:  runHistoryShow,
	}

	historyCmd.AddCommand(listCmd, showCmd)
	rootCmd.AddCommand(historyCmd)
}

func openHistoryFromConfig() (*store.History, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	h, err := store.OpenHistory(cfg.Store.HistoryDB)
	if err != nil {
		return nil, fmt.Errorf("opening history database %s: %w", cfg.Store.HistoryDB, err)
	}
	return h, nil
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	h, err := openHistoryFromConfig()
	if err != nil {
		return err
	}
	defer h.Close()

	runs, err := h.ListRuns(ctx, flagHistoryLimit)
	if err != nil {
		return fmt.Errorf("listing runs: %w", err)
	}
	if len(runs) == 0 {
		fmt.Println("No recorded runs.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "RUN ID\tCREATED\tTARGET\tANALYZED\tSKIPPED\tFINDINGS")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%d\n",
			run.ID,
			run.CreatedAt.Format("2006-01-02 15:04:05"),
			run.Target,
			run.Analyzed,
			len(run.Skipped),
			run.Findings,
		)
	}
	return w.Flush()
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	h, err := openHistoryFromConfig()
	if err != nil {
		return err
	}
	defer h.Close()

	findings, err := h.RunFindings(ctx, args[0])
	if err != nil {
		return fmt.Errorf("reading findings for %s: %w", args[0], err)
	}
	if len(findings) == 0 {
		fmt.Println("No findings recorded for this run.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "FILE\tLINE\tRULE\tSEVERITY\tMESSAGE")
	for _, f := range findings {
		fmt.Fprintf(w, "%s\t%d\t%s\t%s\t%s\n", f.File, f.Line, f.RuleID, f.Severity, f.Message)
	}
	return w.Flush()
}
