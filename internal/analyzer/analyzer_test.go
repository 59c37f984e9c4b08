package analyzer

import (
	"context"
	"log/slog"
	"reflect"
	"testing"

	"github.com/pyvet/pyvet/internal/metrics"
	"github.com/pyvet/pyvet/internal/source"
)

func discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func TestRunParseFailureIsolation(t *testing.T) {
	units := []source.Unit{
		{Path: "a.py", Text: []byte("import imp\n")},
		{Path: "broken.py", Text: []byte("def broken(:\n    pass\n")},
		{Path: "b.py", Text: []byte("from optparse import OptionParser\n")},
	}

	rep := New(DefaultRegistry(), WithLogger(discard())).Run(context.Background(), units)

	if rep.Analyzed != 2 {
		t.Errorf("expected 2 analyzed files, got %d", rep.Analyzed)
	}
	if len(rep.Skipped) != 1 || rep.Skipped[0].Path != "broken.py" {
		t.Fatalf("expected broken.py to be skipped, got %v", rep.Skipped)
	}
	if len(rep.Findings) != 2 {
		t.Fatalf("expected 2 findings, got %d: %v", len(rep.Findings), rep.Findings)
	}
	if rep.Findings[0].File != "a.py" || rep.Findings[1].File != "b.py" {
		t.Errorf("findings out of unit order: %v", rep.Findings)
	}
}

func TestRunDeterministic(t *testing.T) {
	units := []source.Unit{
		{Path: "a.py", Text: []byte("import imp\ndef f(a, b, c, d, e, g):\n    pass\n")},
		{Path: "b.py", Text: []byte("import optparse\n")},
	}
	a := New(DefaultRegistry(), WithLogger(discard()))
	first := a.Run(context.Background(), units)
	second := a.Run(context.Background(), units)
	if !reflect.DeepEqual(first.Findings, second.Findings) {
		t.Errorf("runs differ:\n%v\n%v", first.Findings, second.Findings)
	}
}

func TestRunEmptyInput(t *testing.T) {
	rep := New(DefaultRegistry(), WithLogger(discard())).Run(context.Background(), nil)
	if rep.Analyzed != 0 || len(rep.Skipped) != 0 || len(rep.Findings) != 0 {
		t.Errorf("expected an empty report, got %+v", rep)
	}
}

func TestRunRecordsMetrics(t *testing.T) {
	c := metrics.NewCollector()
	units := []source.Unit{
		{Path: "a.py", Text: []byte("import imp\n")},
		{Path: "broken.py", Text: []byte("def broken(:\n")},
	}
	New(DefaultRegistry(), WithLogger(discard()), WithMetrics(c)).Run(context.Background(), units)

	stats := c.Stats()
	if stats.FilesAnalyzed != 1 {
		t.Errorf("expected 1 analyzed file in stats, got %d", stats.FilesAnalyzed)
	}
	if stats.FilesSkipped != 1 {
		t.Errorf("expected 1 skipped file in stats, got %d", stats.FilesSkipped)
	}
	if stats.TotalFindings != 1 {
		t.Errorf("expected 1 finding in stats, got %d", stats.TotalFindings)
	}
}
