// Package normalize converts the external parser's raw, loosely-shaped
// tree into the canonical ESTree-style AST defined by internal/ast (§4.3).
// The raw tree arrives as type-tagged jsonvalue.Value objects with field
// names that vary by source parser; this package's job is to pin that down
// to one closed, stable shape before anything downstream has to think about
// it again.
package normalize

import (
	"fmt"

	"github.com/cwbudde/go-jsl/internal/ast"
	"github.com/cwbudde/go-jsl/internal/jsonvalue"
	"github.com/cwbudde/go-jsl/internal/span"
)

// Normalizer converts one raw AST into the canonical form. It is stateful
// only for cycle detection (the "seen" map) and must not be reused across
// unrelated inputs - construct a fresh Normalizer per call to Normalize,
// matching the no-ambient-singleton rule the rest of the pipeline follows
// (§5, §9).
type Normalizer struct {
	seen       map[*jsonvalue.Value]ast.Node
	permissive bool
}

// New returns a Normalizer. permissive enables the best-effort fallback
// recognizer described in §4.3 when the parser's output is unusable; it is
// off by default (see DESIGN.md's Open Question decision on this).
func New(permissive bool) *Normalizer {
	return &Normalizer{seen: map[*jsonvalue.Value]ast.Node{}, permissive: permissive}
}

// Normalize converts raw into a canonical *ast.Program. It fails with an
// InvalidInput-tagged error if raw is not a Program node (§4.3).
func Normalize(raw *jsonvalue.Value, permissive bool) (*ast.Program, error) {
	n := New(permissive)
	return n.normalizeProgram(raw)
}

func (n *Normalizer) normalizeProgram(raw *jsonvalue.Value) (*ast.Program, error) {
	if raw == nil || !raw.IsObject() || raw.TypeTag() != "Program" {
		return nil, fmt.Errorf("normalize: InvalidInput: root node must be a Program, got %q", typeTagOrEmpty(raw))
	}

	body, err := n.normalizeStatementList(raw.FieldArray("body"))
	if err != nil {
		if n.permissive {
			if recovered, ok := fallbackRecognize(raw); ok {
				return recovered, nil
			}
		}
		return nil, err
	}

	if allErrorSentinels(raw.FieldArray("body")) && n.permissive {
		if recovered, ok := fallbackRecognize(raw); ok {
			return recovered, nil
		}
	}

	return &ast.Program{Body: body, Span: spanOf(raw)}, nil
}

// normalizeStatementList normalizes a []Statement child slot. Per §4.3,
// arrays in child slots are flattened one level: a raw element that is
// itself an array (rather than a node) has its members spliced in, rather
// than nested.
func (n *Normalizer) normalizeStatementList(elems []*jsonvalue.Value) ([]ast.Statement, error) {
	out := make([]ast.Statement, 0, len(elems))
	for _, e := range elems {
		if e.IsArray() {
			nested, err := n.normalizeStatementList(e.ArrayElements())
			if err != nil {
				return nil, err
			}
			out = append(out, nested...)
			continue
		}
		stmt, err := n.normalizeStatement(e)
		if err != nil {
			return nil, err
		}
		out = append(out, stmt)
	}
	return out, nil
}

// memoize records a raw node's normalized result before recursing into its
// children, so a raw tree that shares a sub-tree at two parents (but is not
// a true cycle) normalizes that sub-tree once and hands back the cached
// result on the second visit (§4.3).
func (n *Normalizer) memoize(raw *jsonvalue.Value, result ast.Node) ast.Node {
	n.seen[raw] = result
	return result
}

func typeTagOrEmpty(v *jsonvalue.Value) string {
	if v == nil {
		return ""
	}
	return v.TypeTag()
}

// allErrorSentinels reports whether every element of body is an "Error" or
// "ErrorNode" sentinel - the signal that the parser gave up entirely and
// the fallback recognizer should be tried (§4.3).
func allErrorSentinels(body []*jsonvalue.Value) bool {
	if len(body) == 0 {
		return false
	}
	for _, b := range body {
		tag := typeTagOrEmpty(b)
		if tag != "Error" && tag != "ErrorNode" {
			return false
		}
	}
	return true
}

// fieldAny reads the first present field among names, tolerating the
// naming drift across parsers that §4.3 calls out ("unstable field
// names") - e.g. a test's condition might arrive as "test" or "condition".
func fieldAny(v *jsonvalue.Value, names ...string) *jsonvalue.Value {
	for _, name := range names {
		if f := v.Field(name); f != nil && f.Kind() != jsonvalue.KindUndefined {
			return f
		}
	}
	return nil
}

// spanOf reads a node's source span from either a combined "span"/"loc"
// object ({start:{line,column,offset}, end:{...}}) or discrete
// "start"/"end" fields, defaulting to the zero Span when absent.
func spanOf(v *jsonvalue.Value) span.Span {
	container := fieldAny(v, "span", "loc")
	if container == nil {
		return span.Span{}
	}
	return span.Span{Start: positionOf(container.Field("start")), End: positionOf(container.Field("end"))}
}

func positionOf(v *jsonvalue.Value) span.Position {
	if v == nil {
		return span.Position{}
	}
	return span.Position{
		Line:   int(v.Field("line").NumberValue()),
		Column: int(v.Field("column").NumberValue()),
		Offset: int(v.Field("offset").NumberValue()),
	}
}

// stringField reads a string-valued field, defaulting to "" if absent.
func stringField(v *jsonvalue.Value, names ...string) string {
	return fieldAny(v, names...).StringValue()
}

// boolField reads a boolean-valued field, defaulting to false if absent.
func boolField(v *jsonvalue.Value, names ...string) bool {
	return fieldAny(v, names...).BoolValue()
}
