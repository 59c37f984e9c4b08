package parser

import (
	"context"
	"errors"
	"testing"
)

func TestParseValid(t *testing.T) {
	tree, err := New().Parse(context.Background(), "ok.py", []byte("def f():\n    return 1\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tree.RootNode().Type() != "module" {
		t.Errorf("expected a module root, got %q", tree.RootNode().Type())
	}
}

func TestParseEmpty(t *testing.T) {
	if _, err := New().Parse(context.Background(), "empty.py", nil); err != nil {
		t.Fatalf("empty source must parse: %v", err)
	}
}

func TestParseSyntaxError(t *testing.T) {
	_, err := New().Parse(context.Background(), "bad.py", []byte("x = 1\ndef broken(:\n    pass\n"))
	if err == nil {
		t.Fatal("expected a parse error")
	}
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("expected *ParseError, got %T", err)
	}
	if perr.Path != "bad.py" {
		t.Errorf("expected path bad.py, got %q", perr.Path)
	}
	if perr.Line != 2 {
		t.Errorf("expected error on line 2, got %d", perr.Line)
	}
}

func TestParseErrorMessage(t *testing.T) {
	perr := &ParseError{Path: "a.py", Line: 7}
	if got := perr.Error(); got != "a.py:7: syntax error" {
		t.Errorf("unexpected message: %q", got)
	}
}
