package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/pyvet/pyvet/internal/evaluator"
	"github.com/pyvet/pyvet/internal/store"
	"github.com/pyvet/pyvet/internal/telemetry"
)

var gateTracer = otel.Tracer("github.com/pyvet/pyvet/cmd/pyvet/gate")

var (
	flagGateRun    string
	flagGatePolicy string
)

func init() {
	gateCmd := &cobra.Command{
		Use:   "gate",
		Short: "Evaluate a stored run through a Rego policy to produce a verdict",
		Long: `Evaluate a previously stored run's findings against the gate policy.
By default the most recent run is evaluated; the built-in policy fails on any
HIGH finding and asks for review on any MEDIUM finding. A fail verdict exits
non-zero.`,
		RunE: runGate,
	}

	gateCmd.Flags().StringVar(&flagGateRun, "run", "", "Run ID to evaluate (default: most recent)")
	gateCmd.Flags().StringVar(&flagGatePolicy, "policy", "", "Directory containing custom Rego policies")

	rootCmd.AddCommand(gateCmd)
}

func runGate(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

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

	fs := store.NewFileStore(cfg.Store.Dir)

	runID := flagGateRun
	if runID == "" {
		ids, err := fs.List(ctx)
		if err != nil {
			return fmt.Errorf("listing runs: %w", err)
		}
		if len(ids) == 0 {
			return fmt.Errorf("no stored runs found in %s", cfg.Store.Dir)
		}
		runID = ids[0] // List returns newest first
	}

	ctx, span := gateTracer.Start(ctx, "gate",
		trace.WithAttributes(
			attribute.String("pyvet.run_id", runID),
		),
	)
	defer span.End()

	findings, err := fs.ReadFindings(ctx, runID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("reading findings for %s: %w", runID, err)
	}

	policyDir := flagGatePolicy
	if policyDir == "" {
		policyDir = cfg.Gate.PolicyDir
	}
	eval, err := evaluator.NewEvaluator(policyDir)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("creating evaluator: %w", err)
	}

	verdict, err := eval.Evaluate(ctx, findings)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("evaluating: %w", err)
	}

	if err := fs.WriteVerdict(ctx, runID, verdict); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("storing verdict: %w", err)
	}

	span.SetAttributes(
		attribute.String("pyvet.decision", verdict.Decision),
	)

	out, _ := json.MarshalIndent(verdict, "", "  ")
	fmt.Println(string(out))

	if verdict.Decision == "fail" {
		return fmt.Errorf("gate verdict: fail (%s)", verdict.Reason)
	}
	return nil
}
