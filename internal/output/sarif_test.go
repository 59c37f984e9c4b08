package output

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pyvet/pyvet/internal/analyzer"
	"github.com/pyvet/pyvet/internal/sarif"
)

func TestSARIFFormatter(t *testing.T) {
	out := &AnalysisOutput{
		Report:      sampleReport(),
		Rules:       analyzer.DefaultRegistry().Rules(),
		ToolVersion: "0.1.0",
	}
	data, err := (&SARIFFormatter{}).Format(out)
	require.NoError(t, err)

	var log sarif.Log
	require.NoError(t, json.Unmarshal(data, &log))
	require.Len(t, log.Runs, 1)

	run := log.Runs[0]
	assert.Equal(t, "pyvet", run.Tool.Driver.Name)
	assert.Equal(t, "0.1.0", run.Tool.Driver.Version)
	assert.NotEmpty(t, run.Tool.Driver.InformationURI)
	assert.Len(t, run.Tool.Driver.Rules, 5)
	require.Len(t, run.Results, 2)

	first := run.Results[0]
	assert.Equal(t, "DEPR_001", first.RuleID)
	assert.Equal(t, "error", first.Level)
	assert.NotEmpty(t, first.PartialFingerprints["primaryLocationLineHash"])
	assert.Equal(t, 8.0, first.Properties["security-severity"])

	require.Len(t, run.Invocations, 1)
	assert.True(t, run.Invocations[0].ExecutionSuccessful)
}

// Identical findings produce identical fingerprints; a line shift changes
// the fingerprint.
func TestSARIFFingerprintStability(t *testing.T) {
	format := func(line int) string {
		rep := &analyzer.Report{Findings: []analyzer.Finding{{
			File: "a.py", RuleID: "SMELL_001",
			Severity: analyzer.SeverityMedium,
			Message:  "Deep nesting detected", Line: line,
		}}}
		data, err := (&SARIFFormatter{}).Format(&AnalysisOutput{Report: rep})
		require.NoError(t, err)
		var log sarif.Log
		require.NoError(t, json.Unmarshal(data, &log))
		return log.Runs[0].Results[0].PartialFingerprints["primaryLocationLineHash"]
	}

	assert.Equal(t, format(5), format(5))
	assert.NotEqual(t, format(5), format(6))
}
