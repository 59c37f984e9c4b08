package analyzer

// Collector accumulates findings in insertion order, per file and then across
// all files of a run. It performs no deduplication of its own.
type Collector struct {
	findings []Finding
}

func NewCollector() *Collector {
	return &Collector{}
}

func (c *Collector) Add(f Finding) {
	c.findings = append(c.findings, f)
}

// Findings returns the accumulated findings in insertion order. The returned
// slice is a copy; the collector's own sequence is never mutated by callers.
func (c *Collector) Findings() []Finding {
	out := make([]Finding, len(c.findings))
	copy(out, c.findings)
	return out
}

func (c *Collector) Len() int { return len(c.findings) }
