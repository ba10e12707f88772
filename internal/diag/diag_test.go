package diag

import (
	"strings"
	"testing"

	"github.com/cwbudde/go-jsl/internal/span"
)

func TestFormatIncludesCaretUnderColumn(t *testing.T) {
	d := New(StageLower, CodeUnsupportedConstruct, "unsupported construct: LabeledStatement",
		span.Span{Start: span.Position{Line: 2, Column: 5}}, "let x = 1\nfoo: while(true) {}", "in.js")

	out := d.Format(false)
	lines := strings.Split(out, "\n")
	if len(lines) < 3 {
		t.Fatalf("expected at least 3 lines, got %d: %q", len(lines), out)
	}
	if !strings.Contains(lines[0], "in.js:2:5") {
		t.Errorf("header missing path:line:column, got %q", lines[0])
	}
	caretLine := lines[2]
	if idx := strings.Index(caretLine, "^"); idx < 0 {
		t.Errorf("no caret found in %q", caretLine)
	}
}

func TestFormatWithoutSourceSkipsCaretBlock(t *testing.T) {
	d := New(StageValidate, CodeValidationError, "dangling reference", span.Span{}, "", "")
	out := d.Format(false)
	if strings.Contains(out, "^") {
		t.Errorf("expected no caret line without source text, got %q", out)
	}
}

func TestFormatDiagnosticsGroupsMultiple(t *testing.T) {
	a := New(StageLower, CodeInternalError, "scope underflow", span.Span{}, "", "")
	b := New(StageEmit, CodeUnsupportedKind, "unknown kind Frobnicate", span.Span{}, "", "")

	out := FormatDiagnostics([]*Diagnostic{a, b}, false)
	if !strings.Contains(out, "2 diagnostic(s)") {
		t.Errorf("expected a count header, got %q", out)
	}
	if !strings.Contains(out, "[1 of 2]") || !strings.Contains(out, "[2 of 2]") {
		t.Errorf("expected numbered diagnostics, got %q", out)
	}
}

func TestFormatDiagnosticsSingleIsUnnumbered(t *testing.T) {
	a := New(StageLower, CodeInternalError, "scope underflow", span.Span{}, "", "")
	out := FormatDiagnostics([]*Diagnostic{a}, false)
	if strings.Contains(out, "of 1") {
		t.Errorf("a single diagnostic should not be numbered, got %q", out)
	}
}

func TestBagAccumulatesErrorsAndWarnings(t *testing.T) {
	var bag Bag
	if !bag.OK() {
		t.Fatal("empty bag should be OK")
	}

	bag.Warnf(StageRegistry, CodeInvalidTransform, span.Span{}, "transform %q disabled", "dead-code-fold")
	if !bag.OK() {
		t.Error("a warning alone should not flip OK() to false")
	}

	bag.Errorf(StageValidate, CodeBrokenReference, span.Span{}, "missing node %q", "node_1T")
	if bag.OK() {
		t.Error("an error should flip OK() to false")
	}

	if len(bag.Errors()) != 1 || len(bag.Warnings()) != 1 {
		t.Errorf("got %d errors, %d warnings; want 1 and 1", len(bag.Errors()), len(bag.Warnings()))
	}
}
