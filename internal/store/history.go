package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pyvet/pyvet/internal/analyzer"
)

// History is a SQLite-backed record of past runs, for querying findings
// across time without re-reading the artifact store.
type History struct {
	conn *sql.DB
}

// OpenHistory opens (and creates if missing) the history database at path.
func OpenHistory(path string) (*History, error) {
	conn, err := sql.Open("sqlite3", path+"?_busy_timeout=5000&_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening history db: %w", err)
	}
	h := &History{conn: conn}
	if err := h.createSchema(); err != nil {
		conn.Close()
		return nil, err
	}
	return h, nil
}

func (h *History) Close() error { return h.conn.Close() }

func (h *History) createSchema() error {
	_, err := h.conn.Exec(`
CREATE TABLE IF NOT EXISTS runs (
  id         TEXT PRIMARY KEY,
  created_at TEXT NOT NULL,
  target     TEXT,
  analyzed   INTEGER NOT NULL,
  skipped    TEXT,
  findings   INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS findings (
  run_id   TEXT NOT NULL,
  position INTEGER NOT NULL,
  file     TEXT NOT NULL,
  rule_id  TEXT NOT NULL,
  category TEXT NOT NULL,
  severity TEXT NOT NULL,
  message  TEXT NOT NULL,
  line     INTEGER NOT NULL,
  PRIMARY KEY (run_id, position),
  FOREIGN KEY(run_id) REFERENCES runs(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_findings_rule ON findings(rule_id);
`)
	if err != nil {
		return fmt.Errorf("creating history schema: %w", err)
	}
	return nil
}

// RecordRun upserts a run's metadata and (re)writes its findings. The
// position column preserves report order.
func (h *History) RecordRun(ctx context.Context, meta RunMeta, findings []analyzer.Finding) error {
	tx, err := h.conn.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO runs (id, created_at, target, analyzed, skipped, findings)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET created_at=excluded.created_at, target=excluded.target,
		   analyzed=excluded.analyzed, skipped=excluded.skipped, findings=excluded.findings`,
		meta.ID, meta.CreatedAt.UTC().Format(time.RFC3339Nano), meta.Target,
		meta.Analyzed, strings.Join(meta.Skipped, "\n"), len(findings),
	); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM findings WHERE run_id = ?`, meta.ID); err != nil {
		return err
	}
	if len(findings) > 0 {
		stmt, err := tx.PrepareContext(ctx, `
			INSERT INTO findings (run_id, position, file, rule_id, category, severity, message, line)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return err
		}
		defer stmt.Close()
		for i, f := range findings {
			if _, err := stmt.ExecContext(ctx, meta.ID, i, f.File, f.RuleID,
				string(f.Category), string(f.Severity), f.Message, f.Line); err != nil {
				return err
			}
		}
	}

	return tx.Commit()
}

// ListRuns returns run metadata, newest first. limit <= 0 means no limit.
func (h *History) ListRuns(ctx context.Context, limit int) ([]RunMeta, error) {
	q := `SELECT id, created_at, target, analyzed, skipped, findings FROM runs ORDER BY created_at DESC`
	args := []any{}
	if limit > 0 {
		q += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := h.conn.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []RunMeta
	for rows.Next() {
		var m RunMeta
		var createdAt, skipped string
		if err := rows.Scan(&m.ID, &createdAt, &m.Target, &m.Analyzed, &skipped, &m.Findings); err != nil {
			return nil, err
		}
		m.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
		if skipped != "" {
			m.Skipped = strings.Split(skipped, "\n")
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// RunFindings returns a run's findings in report order.
func (h *History) RunFindings(ctx context.Context, runID string) ([]analyzer.Finding, error) {
	rows, err := h.conn.QueryContext(ctx,
		`SELECT file, rule_id, category, severity, message, line
		 FROM findings WHERE run_id = ? ORDER BY position`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []analyzer.Finding
	for rows.Next() {
		var f analyzer.Finding
		var category, severity string
		if err := rows.Scan(&f.File, &f.RuleID, &category, &severity, &f.Message, &f.Line); err != nil {
			return nil, err
		}
		f.Category = analyzer.Category(category)
		f.Severity = analyzer.Severity(severity)
		out = append(out, f)
	}
	return out, rows.Err()
}
