// Package metrics collects per-file analysis events and computes aggregate
// statistics for a run.
package metrics

import (
	"sort"
	"sync"
	"sync/atomic"
	"time"
)

// FileEvent captures metrics for the analysis of a single file.
type FileEvent struct {
	Timestamp time.Time     `json:"timestamp"`
	Path      string        `json:"path"`
	Bytes     int           `json:"bytes"`
	Lines     int           `json:"lines"`
	Duration  time.Duration `json:"duration"`
	Findings  int           `json:"findings"`

	// ParseFailed marks a file skipped due to a syntax error.
	ParseFailed bool   `json:"parse_failed"`
	Error       string `json:"error,omitempty"`
}

// AggregateStats holds computed aggregate statistics for a window of events.
type AggregateStats struct {
	FilesAnalyzed int64 `json:"files_analyzed"`
	FilesSkipped  int64 `json:"files_skipped"`
	TotalFindings int64 `json:"total_findings"`

	// Latency in milliseconds for JSON readability.
	AvgDurationMs float64 `json:"avg_duration_ms"`
	P50DurationMs float64 `json:"p50_duration_ms"`
	P95DurationMs float64 `json:"p95_duration_ms"`
	MaxDurationMs float64 `json:"max_duration_ms"`

	FindingsPerFile float64 `json:"findings_per_file"`

	WindowStart time.Time `json:"window_start"`
	WindowEnd   time.Time `json:"window_end"`
}

type atomicCounters struct {
	filesAnalyzed atomic.Int64
	filesSkipped  atomic.Int64
	totalFindings atomic.Int64
}

// Collector stores analysis events up to a retention cap. It is safe for
// concurrent use.
type Collector struct {
	mu       sync.RWMutex
	events   []FileEvent
	counters atomicCounters

	maxEvents int
	startTime time.Time
}

// CollectorOption configures a Collector.
type CollectorOption func(*Collector)

// WithMaxEvents sets the maximum number of events to retain.
func WithMaxEvents(n int) CollectorOption {
	return func(c *Collector) {
		c.maxEvents = n
	}
}

func NewCollector(opts ...CollectorOption) *Collector {
	c := &Collector{
		events:    make([]FileEvent, 0, 256),
		maxEvents: 10000,
		startTime: time.Now(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Record adds an event, evicting the oldest when over the retention cap.
func (c *Collector) Record(ev FileEvent) {
	if ev.Timestamp.IsZero() {
		ev.Timestamp = time.Now()
	}

	if ev.ParseFailed {
		c.counters.filesSkipped.Add(1)
	} else {
		c.counters.filesAnalyzed.Add(1)
		c.counters.totalFindings.Add(int64(ev.Findings))
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, ev)
	if len(c.events) > c.maxEvents {
		c.events = c.events[len(c.events)-c.maxEvents:]
	}
}

// RecentEvents returns up to n most recent events, oldest first.
func (c *Collector) RecentEvents(n int) []FileEvent {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if n > len(c.events) {
		n = len(c.events)
	}
	out := make([]FileEvent, n)
	copy(out, c.events[len(c.events)-n:])
	return out
}

// Stats computes aggregate statistics over all retained events.
func (c *Collector) Stats() AggregateStats {
	c.mu.RLock()
	defer c.mu.RUnlock()

	stats := AggregateStats{
		FilesAnalyzed: c.counters.filesAnalyzed.Load(),
		FilesSkipped:  c.counters.filesSkipped.Load(),
		TotalFindings: c.counters.totalFindings.Load(),
		WindowStart:   c.startTime,
		WindowEnd:     time.Now(),
	}

	var durations []float64
	var sum float64
	for _, ev := range c.events {
		if ev.ParseFailed {
			continue
		}
		ms := float64(ev.Duration.Microseconds()) / 1000.0
		durations = append(durations, ms)
		sum += ms
		if ms > stats.MaxDurationMs {
			stats.MaxDurationMs = ms
		}
	}

	if len(durations) > 0 {
		sort.Float64s(durations)
		stats.AvgDurationMs = sum / float64(len(durations))
		stats.P50DurationMs = percentile(durations, 0.50)
		stats.P95DurationMs = percentile(durations, 0.95)
	}
	if stats.FilesAnalyzed > 0 {
		stats.FindingsPerFile = float64(stats.TotalFindings) / float64(stats.FilesAnalyzed)
	}
	return stats
}

// percentile returns the p-th percentile of sorted values.
func percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	idx := int(p * float64(len(sorted)-1))
	return sorted[idx]
}
