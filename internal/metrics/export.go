package metrics

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"
)

// Exporter writes collected metrics to files or human-readable reports.
type Exporter struct {
	collector *Collector
}

func NewExporter(collector *Collector) *Exporter {
	return &Exporter{collector: collector}
}

// ExportJSON writes aggregate stats plus recent events to a JSON file.
func (e *Exporter) ExportJSON(path string) error {
	report := struct {
		GeneratedAt time.Time      `json:"generated_at"`
		Stats       AggregateStats `json:"stats"`
		Events      []FileEvent    `json:"events"`
	}{
		GeneratedAt: time.Now(),
		Stats:       e.collector.Stats(),
		Events:      e.collector.RecentEvents(1000),
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling metrics: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating directory: %w", err)
		}
	}
	return os.WriteFile(path, data, 0644)
}

// WriteReport writes a human-readable summary to w.
func (e *Exporter) WriteReport(w io.Writer) error {
	stats := e.collector.Stats()

	fmt.Fprintf(w, "pyvet analysis metrics\n")
	fmt.Fprintf(w, "Window: %s to %s\n\n",
		stats.WindowStart.Format(time.RFC3339),
		stats.WindowEnd.Format(time.RFC3339))

	fmt.Fprintf(w, "Files analyzed:  %d\n", stats.FilesAnalyzed)
	fmt.Fprintf(w, "Files skipped:   %d\n", stats.FilesSkipped)
	fmt.Fprintf(w, "Total findings:  %d\n", stats.TotalFindings)
	fmt.Fprintf(w, "Findings/file:   %.2f\n\n", stats.FindingsPerFile)

	fmt.Fprintf(w, "Latency avg: %.2fms  p50: %.2fms  p95: %.2fms  max: %.2fms\n",
		stats.AvgDurationMs, stats.P50DurationMs, stats.P95DurationMs, stats.MaxDurationMs)
	return nil
}
