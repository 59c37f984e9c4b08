package store

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/pyvet/pyvet/internal/analyzer"
)

var storeTracer = otel.Tracer("github.com/pyvet/pyvet/internal/store")

// FileStore keeps each run in its own directory under dir: report.json with
// the findings array, meta.json with run metadata, and verdict.json once a
// gate decision exists.
type FileStore struct {
	dir string
}

func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

func (s *FileStore) generateID() string {
	b := make([]byte, 3)
	rand.Read(b)
	ts := time.Now().UTC().Format("2006-01-02T15-04-05Z")
	return fmt.Sprintf("%s-%s", ts, hex.EncodeToString(b))
}

func (s *FileStore) runDir(id string) string {
	return filepath.Join(s.dir, id)
}

func (s *FileStore) WriteRun(ctx context.Context, target string, rep *analyzer.Report) (string, error) {
	_, span := storeTracer.Start(ctx, "write run")
	defer span.End()

	id := s.generateID()
	dir := s.runDir(id)
	if err := os.MkdirAll(dir, 0755); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return "", err
	}

	findings := rep.Findings
	if findings == nil {
		findings = []analyzer.Finding{}
	}
	data, err := json.MarshalIndent(findings, "", "  ")
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return "", err
	}
	if err := os.WriteFile(filepath.Join(dir, "report.json"), data, 0644); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return "", err
	}

	meta := RunMeta{
		ID:        id,
		CreatedAt: time.Now().UTC(),
		Target:    target,
		Analyzed:  rep.Analyzed,
		Findings:  len(findings),
	}
	for _, sk := range rep.Skipped {
		meta.Skipped = append(meta.Skipped, sk.Path)
	}
	metaData, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return "", err
	}
	if err := os.WriteFile(filepath.Join(dir, "meta.json"), metaData, 0644); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return "", err
	}

	span.SetAttributes(
		attribute.String("pyvet.store.id", id),
		attribute.Int("pyvet.store.findings", len(findings)),
	)
	return id, nil
}

func (s *FileStore) ReadFindings(ctx context.Context, id string) ([]analyzer.Finding, error) {
	data, err := os.ReadFile(filepath.Join(s.runDir(id), "report.json"))
	if err != nil {
		return nil, err
	}
	var findings []analyzer.Finding
	if err := json.Unmarshal(data, &findings); err != nil {
		return nil, err
	}
	return findings, nil
}

func (s *FileStore) ReadMeta(ctx context.Context, id string) (*RunMeta, error) {
	data, err := os.ReadFile(filepath.Join(s.runDir(id), "meta.json"))
	if err != nil {
		return nil, err
	}
	var meta RunMeta
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

func (s *FileStore) WriteVerdict(ctx context.Context, id string, verdict *Verdict) error {
	_, span := storeTracer.Start(ctx, "write verdict")
	defer span.End()

	data, err := json.MarshalIndent(verdict, "", "  ")
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	if err := os.WriteFile(filepath.Join(s.runDir(id), "verdict.json"), data, 0644); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	span.SetAttributes(
		attribute.String("pyvet.store.id", id),
		attribute.String("pyvet.decision", verdict.Decision),
	)
	return nil
}

func (s *FileStore) ReadVerdict(ctx context.Context, id string) (*Verdict, error) {
	data, err := os.ReadFile(filepath.Join(s.runDir(id), "verdict.json"))
	if err != nil {
		return nil, err
	}
	var v Verdict
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

// List returns run IDs, newest first. The timestamp prefix makes the ID
// ordering chronological.
func (s *FileStore) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var ids []string
	for _, e := range entries {
		if e.IsDir() {
			ids = append(ids, e.Name())
		}
	}
	sort.Sort(sort.Reverse(sort.StringSlice(ids)))
	return ids, nil
}
