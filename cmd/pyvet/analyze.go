package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/pyvet/pyvet/internal/analyzer"
	"github.com/pyvet/pyvet/internal/metrics"
	"github.com/pyvet/pyvet/internal/output"
	"github.com/pyvet/pyvet/internal/source"
	"github.com/pyvet/pyvet/internal/store"
	"github.com/pyvet/pyvet/internal/telemetry"
)

var (
	flagOutput     string
	flagFormat     string
	flagMetricsOut string
	flagNoStore    bool
)

func init() {
	analyzeCmd := &cobra.Command{
		Use:   "analyze <path>",
		Short: "Analyze a Python file or directory",
		Long: `Analyze a single .py file or a directory tree. Findings are written as a
JSON report; the exit status is zero whether or not findings exist, and
non-zero only when the run itself fails.`,
		Args: cobra.ExactArgs(1),
		RunE: runAnalyze,
	}

	analyzeCmd.Flags().StringVarP(&flagOutput, "output", "o", "", "Report file path (default from config, report.json)")
	analyzeCmd.Flags().StringVar(&flagFormat, "format", "", "Stdout format: json, sarif, markdown, pretty (default: auto)")
	analyzeCmd.Flags().StringVar(&flagMetricsOut, "metrics", "", "Write per-file analysis metrics to this JSON file")
	analyzeCmd.Flags().BoolVar(&flagNoStore, "no-store", false, "Skip persisting the run to the store and history")

	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	target := args[0]

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	shutdownTelemetry, err := telemetry.Init(ctx, cfg.Telemetry)
	if err != nil {
		return fmt.Errorf("initializing telemetry: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTelemetry(shutdownCtx); err != nil {
			log.Printf("Warning: telemetry shutdown error: %v", err)
		}
	}()

	paths, err := source.Discover(target)
	if err != nil {
		return err
	}
	units := source.LoadAll(paths, logger)

	collector := metrics.NewCollector()
	instruments, err := metrics.NewInstruments()
	if err != nil {
		return fmt.Errorf("creating instruments: %w", err)
	}
	a := analyzer.New(analyzer.DefaultRegistry(),
		analyzer.WithLogger(logger),
		analyzer.WithMetrics(collector),
		analyzer.WithInstruments(instruments),
	)
	rep := a.Run(ctx, units)

	out := &output.AnalysisOutput{
		Report:      rep,
		Rules:       analyzer.DefaultRegistry().Rules(),
		ToolVersion: version,
	}

	// The report file always carries the canonical JSON format.
	jsonFormatter := &output.JSONFormatter{}
	reportData, err := jsonFormatter.Format(out)
	if err != nil {
		return err
	}
	reportPath := flagOutput
	if reportPath == "" {
		reportPath = cfg.Output.Path
	}
	if err := os.WriteFile(reportPath, reportData, 0644); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}

	format := output.ResolveFormat(firstNonEmpty(flagFormat, cfg.Output.Format), stdoutIsTTY())
	formatter, err := output.NewFormatter(format)
	if err != nil {
		return err
	}
	rendered, err := formatter.Format(out)
	if err != nil {
		return err
	}
	os.Stdout.Write(rendered)

	if !flagNoStore {
		if err := persistRun(ctx, cfg.Store.Dir, cfg.Store.HistoryDB, target, rep); err != nil {
			logger.Warn("failed to persist run", "err", err)
		}
	}

	if flagMetricsOut != "" {
		exporter := metrics.NewExporter(collector)
		if err := exporter.ExportJSON(flagMetricsOut); err != nil {
			return fmt.Errorf("writing metrics: %w", err)
		}
	}

	return nil
}

// persistRun writes the run to the artifact store and records it in the
// history database.
func persistRun(ctx context.Context, storeDir, historyDB, target string, rep *analyzer.Report) error {
	fs := store.NewFileStore(storeDir)
	id, err := fs.WriteRun(ctx, target, rep)
	if err != nil {
		return err
	}

	meta, err := fs.ReadMeta(ctx, id)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(historyDB), 0755); err != nil {
		return err
	}
	h, err := store.OpenHistory(historyDB)
	if err != nil {
		return err
	}
	defer h.Close()
	return h.RecordRun(ctx, *meta, rep.Findings)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func stdoutIsTTY() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}
