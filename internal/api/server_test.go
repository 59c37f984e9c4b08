package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pyvet/pyvet/internal/analyzer"
	"github.com/pyvet/pyvet/internal/store"
)

func testServer(t *testing.T) (*Server, string) {
	t.Helper()
	fs := store.NewFileStore(t.TempDir())

	rep := &analyzer.Report{
		Findings: []analyzer.Finding{{
			File:     "src/app.py",
			RuleID:   "DEPR_001",
			Category: analyzer.CategoryDeprecated,
			Severity: analyzer.SeverityHigh,
			Message:  "Deprecated module 'imp' used",
			Line:     1,
		}},
		Analyzed: 1,
	}
	id, err := fs.WriteRun(context.Background(), "src", rep)
	require.NoError(t, err)
	require.NoError(t, fs.WriteVerdict(context.Background(), id, &store.Verdict{Decision: "fail", Reason: "HIGH findings"}))

	srv := &Server{
		Store:    fs,
		Registry: analyzer.DefaultRegistry(),
		Logger:   slog.New(slog.DiscardHandler),
		Version:  "0.1.0",
	}
	return srv, id
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	srv, _ := testServer(t)
	rec := get(t, srv.Routes(), "/api/v1/health")

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "0.1.0", body["version"])
}

func TestRules(t *testing.T) {
	srv, _ := testServer(t)
	rec := get(t, srv.Routes(), "/api/v1/rules")

	require.Equal(t, http.StatusOK, rec.Code)
	var rules []ruleInfo
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rules))
	require.Len(t, rules, 5)
	assert.Equal(t, "DEPR_001", rules[0].ID)
	assert.Equal(t, "HIGH", rules[0].Severity)
}

func TestListRuns(t *testing.T) {
	srv, id := testServer(t)
	rec := get(t, srv.Routes(), "/api/v1/runs")

	require.Equal(t, http.StatusOK, rec.Code)
	var ids []string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &ids))
	assert.Equal(t, []string{id}, ids)
}

func TestGetRun(t *testing.T) {
	srv, id := testServer(t)
	rec := get(t, srv.Routes(), "/api/v1/runs/"+id)

	require.Equal(t, http.StatusOK, rec.Code)
	var meta store.RunMeta
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &meta))
	assert.Equal(t, "src", meta.Target)
	assert.Equal(t, 1, meta.Findings)
}

func TestGetRunNotFound(t *testing.T) {
	srv, _ := testServer(t)
	rec := get(t, srv.Routes(), "/api/v1/runs/missing")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRunFindings(t *testing.T) {
	srv, id := testServer(t)
	rec := get(t, srv.Routes(), "/api/v1/runs/"+id+"/findings")

	require.Equal(t, http.StatusOK, rec.Code)
	var findings []analyzer.Finding
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &findings))
	require.Len(t, findings, 1)
	assert.Equal(t, "DEPR_001", findings[0].RuleID)
	assert.Equal(t, 1, findings[0].Line)
}

func TestRunVerdict(t *testing.T) {
	srv, id := testServer(t)
	rec := get(t, srv.Routes(), "/api/v1/runs/"+id+"/verdict")

	require.Equal(t, http.StatusOK, rec.Code)
	var v store.Verdict
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	assert.Equal(t, "fail", v.Decision)
}
