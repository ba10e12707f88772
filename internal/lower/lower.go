// Package lower walks the canonical AST (internal/ast) and builds the
// content-addressed IR (internal/ir), desugaring constructs the Lua emitter
// has no direct primitive for along the way (§4.4).
package lower

import (
	"encoding/json"
	"fmt"

	"github.com/cwbudde/go-jsl/internal/ast"
	"github.com/cwbudde/go-jsl/internal/ir"
	"github.com/cwbudde/go-jsl/internal/span"
	"github.com/cwbudde/go-jsl/internal/typemodel"
)

// nodeSpan reads the source span off any AST node via its Pos/End pair.
func nodeSpan(n ast.Node) span.Span {
	return span.Span{Start: n.Pos(), End: n.End()}
}

// scope is one lexical binding frame: a set of names declared directly in
// it, plus a parent pointer. Scopes are transient - pushed on entry to a
// function or block, popped on exit - and never appear in the emitted IR
// itself (§3.4).
type scope struct {
	names  map[string]bool
	parent *scope
}

func newScope(parent *scope) *scope {
	return &scope{names: map[string]bool{}, parent: parent}
}

func (s *scope) declare(name string) {
	if name != "" {
		s.names[name] = true
	}
}

// Lowerer owns one IR Builder and one scope stack. Construct a fresh
// Lowerer per compile (§5) - it must not be reused or shared across
// concurrent lowering calls.
type Lowerer struct {
	b       *ir.Builder
	cur     *scope
	depth   int
	tempNum int
}

// New returns a Lowerer writing into a fresh IR Builder.
func New() *Lowerer {
	return &Lowerer{b: ir.NewBuilder()}
}

// Lower walks prog and returns the resulting IR module. Scope push/pop is
// balanced by construction around every block; an imbalance surfacing here
// is an InternalError guarding against future lowering code forgetting to
// pop what it pushed.
func (l *Lowerer) Lower(prog *ast.Program, sourcePath string) (*ir.Module, error) {
	l.pushScope()

	bodyIDs := make([]string, 0, len(prog.Body))
	for _, stmt := range prog.Body {
		ids, err := l.lowerStatement(stmt)
		if err != nil {
			l.popScope()
			return nil, err
		}
		bodyIDs = append(bodyIDs, ids...)
	}

	l.b.SetModuleHeader(bodyIDs, ir.SourceInfo{Path: sourcePath}, nil)
	l.popScope()
	if l.depth != 0 {
		return nil, fmt.Errorf("lower: InternalError: unbalanced scope stack at end of module (depth=%d)", l.depth)
	}
	return l.b.Module(), nil
}

func (l *Lowerer) pushScope() {
	l.cur = newScope(l.cur)
	l.depth++
}

func (l *Lowerer) popScope() error {
	if l.cur == nil {
		return fmt.Errorf("lower: InternalError: popScope called with no scope on the stack")
	}
	l.cur = l.cur.parent
	l.depth--
	return nil
}

func (l *Lowerer) nextTemp() string {
	l.tempNum++
	return fmt.Sprintf("$tmp%d", l.tempNum)
}

// setMeta stamps a key onto an already-interned node's metadata bag, lazily
// allocating it. Used for the classLike marker a desugared class leaves
// behind for the Emitter to recognize (§4.4).
func (l *Lowerer) setMeta(id, key string, value interface{}) {
	n, ok := l.b.Module().Get(id)
	if !ok {
		return
	}
	n.SetMeta(key, value)
}

// typeMeta round-trips t through JSON into a plain map so it stores in a
// node's Meta bag (map[string]interface{}) the same way whether the IR was
// just built or was deserialized from its wire form (§3.2's Type Model
// annotations on literals/parameters/returns, §8 P3's round-trip property).
// A nil t yields a nil meta value, meaning "stamp nothing".
func typeMeta(t *typemodel.Type) map[string]interface{} {
	if t == nil {
		return nil
	}
	raw, err := json.Marshal(t)
	if err != nil {
		return nil
	}
	var m map[string]interface{}
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil
	}
	return m
}

// one wraps a possibly-empty node id into the []string convention
// lowerStatement uses so callers can append() uniformly: "" (an absent
// statement) contributes nothing, and a desugaring that expands to several
// statements (e.g. a class declaration) can return more than one id.
func one(id string) []string {
	if id == "" {
		return nil
	}
	return []string{id}
}
