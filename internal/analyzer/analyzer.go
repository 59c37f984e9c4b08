// Package analyzer is the rule-based static-analysis engine: a single tree
// walk per file dispatches every node to an ordered registry of rules, and a
// collector preserves the findings in detection order.
package analyzer

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/pyvet/pyvet/internal/metrics"
	"github.com/pyvet/pyvet/internal/parser"
	"github.com/pyvet/pyvet/internal/source"
)

var tracer = otel.Tracer("github.com/pyvet/pyvet/internal/analyzer")

// Skipped records a file dropped from the run because it could not be
// parsed. Skips are per-file and never abort the rest of the run.
type Skipped struct {
	Path string
	Line int
	Err  error
}

// Report is the outcome of one analysis run: all findings across all files
// in collector order, plus run metadata.
type Report struct {
	Findings []Finding
	Analyzed int
	Skipped  []Skipped
}

// Analyzer runs the full pipeline over a set of source units. Files are
// analyzed strictly sequentially; each file's walk is a pure function of its
// tree, so runs over identical input produce identical reports.
type Analyzer struct {
	registry    *Registry
	walker      *Walker
	parser      *parser.Parser
	logger      *slog.Logger
	collector   *metrics.Collector
	instruments *metrics.Instruments
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithLogger sets the logger for skip and rule-failure reporting.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Analyzer) { a.logger = logger }
}

// WithMetrics enables per-file event collection.
func WithMetrics(c *metrics.Collector) Option {
	return func(a *Analyzer) { a.collector = c }
}

// WithInstruments enables OTel metric publication.
func WithInstruments(in *metrics.Instruments) Option {
	return func(a *Analyzer) { a.instruments = in }
}

func New(registry *Registry, opts ...Option) *Analyzer {
	a := &Analyzer{
		registry: registry,
		parser:   parser.New(),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(a)
	}
	a.walker = NewWalker(registry, a.logger)
	return a
}

// Run analyzes every unit in order. Parse failures are logged, recorded as
// skips, and do not affect sibling files.
func (a *Analyzer) Run(ctx context.Context, units []source.Unit) *Report {
	ctx, span := tracer.Start(ctx, "analyze run")
	defer span.End()

	c := NewCollector()
	rep := &Report{}

	for _, u := range units {
		start := time.Now()
		before := c.Len()

		tree, err := a.parser.Parse(ctx, u.Path, u.Text)
		if err != nil {
			line := 1
			var perr *parser.ParseError
			if errors.As(err, &perr) {
				line = perr.Line
			}
			a.logger.Warn("skipping file that failed to parse", "path", u.Path, "line", line)
			rep.Skipped = append(rep.Skipped, Skipped{Path: u.Path, Line: line, Err: err})
			a.record(ctx, metrics.FileEvent{
				Path:        u.Path,
				Bytes:       len(u.Text),
				Lines:       countLines(u.Text),
				ParseFailed: true,
				Error:       err.Error(),
			})
			continue
		}

		a.walker.Walk(tree.RootNode(), u.Path, u.Text, c)
		rep.Analyzed++
		a.record(ctx, metrics.FileEvent{
			Path:     u.Path,
			Bytes:    len(u.Text),
			Lines:    countLines(u.Text),
			Duration: time.Since(start),
			Findings: c.Len() - before,
		})
	}

	rep.Findings = c.Findings()
	span.SetAttributes(
		attribute.Int("pyvet.files.analyzed", rep.Analyzed),
		attribute.Int("pyvet.files.skipped", len(rep.Skipped)),
		attribute.Int("pyvet.findings", len(rep.Findings)),
	)
	return rep
}

func (a *Analyzer) record(ctx context.Context, ev metrics.FileEvent) {
	if a.collector != nil {
		a.collector.Record(ev)
	}
	if a.instruments != nil {
		a.instruments.Observe(ctx, ev)
	}
}
