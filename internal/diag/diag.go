// Package diag implements the ambient error-handling design of §7: a single
// Diagnostic type carrying a stage tag, a taxonomy code, a position, and the
// source text needed to render a caret-annotated message, plus helpers that
// format one or many diagnostics for a terminal.
//
// The rendering logic is carried over from the host compiler's
// internal/errors package (a single-line header, a numbered source line, and
// a caret under the offending column) and generalized to every pipeline
// stage instead of just the bytecode compiler.
package diag

import (
	"fmt"
	"strings"

	"github.com/cwbudde/go-jsl/internal/span"
)

// Stage names the pipeline phase that raised a Diagnostic.
type Stage string

const (
	StageNormalize Stage = "normalize"
	StageLower     Stage = "lower"
	StageValidate  Stage = "validate"
	StageEmit      Stage = "emit"
	StageRegistry  Stage = "registry"
)

// Code is the closed error taxonomy named in §7.
type Code string

const (
	CodeLexicalError         Code = "LexicalError"
	CodeSyntaxError          Code = "SyntaxError"
	CodeInvalidInput         Code = "InvalidInput"
	CodeUnsupportedConstruct Code = "UnsupportedConstruct"
	CodeValidationError      Code = "ValidationError"
	CodeBrokenReference      Code = "BrokenReference"
	CodeUnsupportedKind      Code = "UnsupportedKind"
	CodeConflictingName      Code = "ConflictingName"
	CodeInvalidTransform     Code = "InvalidTransform"
	CodeInternalError        Code = "InternalError"
)

// Diagnostic is a single, located compiler message. It is a value type so
// stages can accumulate them in a plain slice without worrying about shared
// mutable state (§5).
type Diagnostic struct {
	Stage   Stage
	Code    Code
	Message string
	Span    span.Span
	Source  string
	Path    string
}

// New constructs a Diagnostic. Source and Path may be empty when no source
// text is available (e.g. a diagnostic raised from an already-lowered IR).
func New(stage Stage, code Code, message string, sp span.Span, source, path string) *Diagnostic {
	return &Diagnostic{Stage: stage, Code: code, Message: message, Span: sp, Source: source, Path: path}
}

// Error implements the error interface so a Diagnostic can be returned or
// wrapped anywhere Go code expects one.
func (d *Diagnostic) Error() string {
	return d.Format(false)
}

// Format renders the diagnostic as a four-part block: a header naming the
// stage, path, and position; the offending source line, if available; a
// caret under the offending column; and the message. When color is true,
// ANSI codes highlight the caret and bold the header, matching the host
// compiler's terminal output.
func (d *Diagnostic) Format(color bool) string {
	var sb strings.Builder

	pos := d.Span.Start
	if d.Path != "" {
		sb.WriteString(fmt.Sprintf("%s: %s in %s:%d:%d\n", d.Stage, d.Code, d.Path, pos.Line, pos.Column))
	} else {
		sb.WriteString(fmt.Sprintf("%s: %s at %d:%d\n", d.Stage, d.Code, pos.Line, pos.Column))
	}

	if line := d.sourceLine(pos.Line); line != "" {
		lineNumStr := fmt.Sprintf("%4d | ", pos.Line)
		sb.WriteString(lineNumStr)
		sb.WriteString(line)
		sb.WriteString("\n")

		sb.WriteString(strings.Repeat(" ", len(lineNumStr)+maxInt(pos.Column-1, 0)))
		if color {
			sb.WriteString("\033[1;31m")
		}
		sb.WriteString("^")
		if color {
			sb.WriteString("\033[0m")
		}
		sb.WriteString("\n")
	}

	if color {
		sb.WriteString("\033[1m")
	}
	sb.WriteString(d.Message)
	if color {
		sb.WriteString("\033[0m")
	}

	return sb.String()
}

func (d *Diagnostic) sourceLine(lineNum int) string {
	if d.Source == "" || lineNum < 1 {
		return ""
	}
	lines := strings.Split(d.Source, "\n")
	if lineNum > len(lines) {
		return ""
	}
	return lines[lineNum-1]
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// FormatDiagnostics joins multiple diagnostics, numbering them when there is
// more than one, matching the host compiler's FormatErrors grouping.
func FormatDiagnostics(ds []*Diagnostic, color bool) string {
	if len(ds) == 0 {
		return ""
	}
	if len(ds) == 1 {
		return ds[0].Format(color)
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("compilation reported %d diagnostic(s):\n\n", len(ds)))
	for i, d := range ds {
		sb.WriteString(fmt.Sprintf("[%d of %d]\n", i+1, len(ds)))
		sb.WriteString(d.Format(color))
		if i < len(ds)-1 {
			sb.WriteString("\n\n")
		}
	}
	return sb.String()
}

// Bag accumulates diagnostics for a single compile stage without throwing -
// the explicit-result-type discipline named in §9 ("Exceptions for control
// flow" -> "Use an explicit result type... and collect errors into a
// per-compile bag").
type Bag struct {
	errors   []*Diagnostic
	warnings []*Diagnostic
}

// Errorf appends a fatal diagnostic.
func (b *Bag) Errorf(stage Stage, code Code, sp span.Span, format string, args ...interface{}) {
	b.errors = append(b.errors, New(stage, code, fmt.Sprintf(format, args...), sp, "", ""))
}

// Warnf appends a non-fatal diagnostic.
func (b *Bag) Warnf(stage Stage, code Code, sp span.Span, format string, args ...interface{}) {
	b.warnings = append(b.warnings, New(stage, code, fmt.Sprintf(format, args...), sp, "", ""))
}

// Add appends an already-constructed Diagnostic to the appropriate list.
func (b *Bag) Add(d *Diagnostic, fatal bool) {
	if fatal {
		b.errors = append(b.errors, d)
	} else {
		b.warnings = append(b.warnings, d)
	}
}

// OK reports whether no fatal diagnostics were recorded.
func (b *Bag) OK() bool { return len(b.errors) == 0 }

// Errors returns the recorded fatal diagnostics.
func (b *Bag) Errors() []*Diagnostic { return b.errors }

// Warnings returns the recorded non-fatal diagnostics.
func (b *Bag) Warnings() []*Diagnostic { return b.warnings }
