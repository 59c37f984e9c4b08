package metrics

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Instruments publishes analysis counters and latency through the global
// OpenTelemetry meter provider. When telemetry is disabled the provider is a
// no-op and recording costs nothing.
type Instruments struct {
	filesAnalyzed metric.Int64Counter
	filesSkipped  metric.Int64Counter
	findings      metric.Int64Counter
	duration      metric.Float64Histogram
}

func NewInstruments() (*Instruments, error) {
	meter := otel.Meter("github.com/pyvet/pyvet/internal/metrics")

	filesAnalyzed, err := meter.Int64Counter("pyvet.files.analyzed",
		metric.WithDescription("Files successfully analyzed"))
	if err != nil {
		return nil, err
	}
	filesSkipped, err := meter.Int64Counter("pyvet.files.skipped",
		metric.WithDescription("Files skipped due to parse failures"))
	if err != nil {
		return nil, err
	}
	findings, err := meter.Int64Counter("pyvet.findings",
		metric.WithDescription("Findings emitted"))
	if err != nil {
		return nil, err
	}
	duration, err := meter.Float64Histogram("pyvet.analysis.duration",
		metric.WithDescription("Per-file analysis duration"),
		metric.WithUnit("ms"))
	if err != nil {
		return nil, err
	}

	return &Instruments{
		filesAnalyzed: filesAnalyzed,
		filesSkipped:  filesSkipped,
		findings:      findings,
		duration:      duration,
	}, nil
}

// Observe records one file event to the OTel instruments.
func (i *Instruments) Observe(ctx context.Context, ev FileEvent) {
	if i == nil {
		return
	}
	if ev.ParseFailed {
		i.filesSkipped.Add(ctx, 1)
		return
	}
	i.filesAnalyzed.Add(ctx, 1)
	i.findings.Add(ctx, int64(ev.Findings))
	i.duration.Record(ctx, float64(ev.Duration.Microseconds())/1000.0,
		metric.WithAttributes(attribute.Int("pyvet.file.lines", ev.Lines)))
}
