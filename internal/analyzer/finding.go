package analyzer

// Severity is the fixed severity class of a rule. Every finding a rule emits
// carries the same severity.
type Severity string

const (
	SeverityHigh   Severity = "HIGH"
	SeverityMedium Severity = "MEDIUM"
	SeverityLow    Severity = "LOW"
)

// Category groups rules by the kind of problem they detect.
type Category string

const (
	CategoryDeprecated      Category = "Deprecated"
	CategoryMaintainability Category = "Maintainability"
	CategorySmell           Category = "Code Smell"
	CategoryOrganization    Category = "Organization"
)

// Finding is a single reported issue. It is immutable after creation and its
// JSON shape is the documented report format.
type Finding struct {
	File     string   `json:"file"`
	RuleID   string   `json:"rule_id"`
	Category Category `json:"category"`
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
	Line     int      `json:"line"`
}

// report builds a Finding for a rule, so that the rule ID, category, and
// severity always come from the rule itself.
func report(r Rule, path string, line int, message string) *Finding {
	return &Finding{
		File:     path,
		RuleID:   r.ID(),
		Category: r.Category(),
		Severity: r.Severity(),
		Message:  message,
		Line:     line,
	}
}
