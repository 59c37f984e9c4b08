// Package source discovers and loads the Python files for an analysis run.
package source

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// ErrPathNotFound reports a root path that does not exist. It is fatal for
// the run: no partial report is produced.
var ErrPathNotFound = errors.New("path not found")

// Unit is one file under analysis: its path and raw text. It lives for the
// duration of a single run and is never mutated by the analysis.
type Unit struct {
	Path string
	Text []byte
}

// Discover resolves a root path into the list of Python files to analyze.
// A single .py file yields itself; a directory is walked recursively, with
// hidden directories skipped. Results follow filepath.WalkDir's lexical
// order, so discovery is deterministic for identical input.
func Discover(root string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", root, ErrPathNotFound)
		}
		return nil, fmt.Errorf("stat %s: %w", root, err)
	}

	if !info.IsDir() {
		if strings.HasSuffix(root, ".py") {
			return []string{root}, nil
		}
		return nil, nil
	}

	var paths []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if strings.HasPrefix(d.Name(), ".") && path != root {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasSuffix(d.Name(), ".py") {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", root, err)
	}
	return paths, nil
}

// Load reads one file into a Unit.
func Load(path string) (*Unit, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return &Unit{Path: path, Text: data}, nil
}

// LoadAll loads every discovered path, skipping files that cannot be read or
// that are not valid UTF-8. Skips are logged, not fatal.
func LoadAll(paths []string, logger *slog.Logger) []Unit {
	if logger == nil {
		logger = slog.Default()
	}
	units := make([]Unit, 0, len(paths))
	for _, p := range paths {
		u, err := Load(p)
		if err != nil {
			logger.Warn("skipping unreadable file", "path", p, "err", err)
			continue
		}
		if !utf8.Valid(u.Text) {
			logger.Warn("skipping file with invalid UTF-8", "path", p)
			continue
		}
		units = append(units, *u)
	}
	return units
}
