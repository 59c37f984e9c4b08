package review

import "github.com/pyvet/pyvet/internal/analyzer"

func matchesFilter(filter Filter, sev analyzer.Severity) bool {
	switch filter {
	case FilterHigh:
		return sev == analyzer.SeverityHigh
	case FilterMediumUp:
		return sev == analyzer.SeverityHigh || sev == analyzer.SeverityMedium
	default:
		return true
	}
}

// filteredFindings returns findings matching the current filter, in report
// order.
func (m *Model) filteredFindings() []analyzer.Finding {
	if m.filter == FilterAll {
		return m.findings
	}
	var filtered []analyzer.Finding
	for _, f := range m.findings {
		if matchesFilter(m.filter, f.Severity) {
			filtered = append(filtered, f)
		}
	}
	return filtered
}

// filteredFiles returns the per-file grouping restricted to the current
// filter; files with nothing left are dropped.
func (m *Model) filteredFiles() map[string][]analyzer.Finding {
	filtered := make(map[string][]analyzer.Finding)
	for path, findings := range m.files {
		var keep []analyzer.Finding
		for _, f := range findings {
			if matchesFilter(m.filter, f.Severity) {
				keep = append(keep, f)
			}
		}
		if len(keep) > 0 {
			filtered[path] = keep
		}
	}
	return filtered
}
