// Package evaluator gates an analysis report through a Rego policy,
// producing a pass/review/fail verdict.
package evaluator

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/open-policy-agent/opa/v1/rego"

	"github.com/pyvet/pyvet/internal/analyzer"
	"github.com/pyvet/pyvet/internal/store"
)

//go:embed default.rego
var defaultPolicy string

type Evaluator struct {
	query rego.PreparedEvalQuery
}

// NewEvaluator creates an evaluator. If policyDir is empty, the built-in
// policy applies: fail on any HIGH finding, review on any MEDIUM, pass
// otherwise. If policyDir contains .rego files, the last one loaded replaces
// the default.
func NewEvaluator(policyDir string) (*Evaluator, error) {
	ctx := context.Background()

	modules := []func(*rego.Rego){
		rego.Query("data.pyvet.gate.decision"),
		rego.Module("default.rego", defaultPolicy),
	}

	if policyDir != "" {
		entries, err := os.ReadDir(policyDir)
		if err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("reading policy dir: %w", err)
		}
		for _, e := range entries {
			if !e.IsDir() && strings.HasSuffix(e.Name(), ".rego") {
				data, err := os.ReadFile(filepath.Join(policyDir, e.Name()))
				if err != nil {
					return nil, err
				}
				modules = []func(*rego.Rego){
					rego.Query("data.pyvet.gate.decision"),
					rego.Module(e.Name(), string(data)),
				}
			}
		}
	}

	query, err := rego.New(modules...).PrepareForEval(ctx)
	if err != nil {
		return nil, fmt.Errorf("preparing rego query: %w", err)
	}

	return &Evaluator{query: query}, nil
}

// Evaluate runs the policy over a report's findings. The policy input is the
// canonical finding shape under the "findings" key.
func (e *Evaluator) Evaluate(ctx context.Context, findings []analyzer.Finding) (*store.Verdict, error) {
	if findings == nil {
		findings = []analyzer.Finding{}
	}
	data, err := json.Marshal(map[string]any{"findings": findings})
	if err != nil {
		return nil, err
	}
	var input any
	if err := json.Unmarshal(data, &input); err != nil {
		return nil, err
	}

	results, err := e.query.Eval(ctx, rego.EvalInput(input))
	if err != nil {
		return nil, fmt.Errorf("evaluating rego: %w", err)
	}

	decision := "review"
	if len(results) > 0 && len(results[0].Expressions) > 0 {
		if d, ok := results[0].Expressions[0].Value.(string); ok {
			decision = d
		}
	}

	var relevant []analyzer.Finding
	for _, f := range findings {
		switch decision {
		case "fail":
			if f.Severity == analyzer.SeverityHigh {
				relevant = append(relevant, f)
			}
		case "review":
			if f.Severity == analyzer.SeverityHigh || f.Severity == analyzer.SeverityMedium {
				relevant = append(relevant, f)
			}
		}
	}

	return &store.Verdict{
		Decision:         decision,
		Reason:           fmt.Sprintf("Decision: %s based on %d findings", decision, len(findings)),
		RelevantFindings: relevant,
	}, nil
}
