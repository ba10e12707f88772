// Package registry implements the Extension Registry (§4.7): a
// priority-ordered set of IR→IR transforms that run after lowering and
// before validation. A transform can read the serialized document via gjson
// through its Context, and a rejected transform's effect is
// rolled back by patching its pre-transform node JSON back into the
// working document via sjson (SPEC_FULL §4.10), rather than re-marshaling
// the whole module on every rollback.
package registry

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/cwbudde/go-jsl/internal/diag"
	"github.com/cwbudde/go-jsl/internal/ir"
	"github.com/cwbudde/go-jsl/internal/span"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// Context is the per-run state a Transform's Transform/Validate methods may
// consult: the module it is rewriting and a read-only mirror of that
// module's current serialized form, refreshed after every committed
// transform so Transform can use gjson path queries instead of walking Go
// structs. CanProcess and Validate receive nodes only, not the Context.
type Context struct {
	Module *ir.Module
	doc    []byte
}

// Doc returns the context's current serialized module mirror.
func (c *Context) Doc() []byte { return c.doc }

// Field reads one gjson path out of the context's current document mirror,
// the read-side half of §4.10's gjson/sjson wiring (e.g. a transform's
// Transform reading back "nodes.<id>.fields.operator" to confirm a rewrite
// didn't change an operator it wasn't supposed to touch).
func (c *Context) Field(path string) gjson.Result {
	return gjson.GetBytes(c.doc, path)
}

// Transform is the contract named in §4.7: name/version/priority/tags
// identify it for diagnostics and conflict detection; Enabled lets a
// transform be registered but skipped; CanProcess/Transform/Validate do the
// work.
type Transform interface {
	Name() string
	Version() string
	Priority() int
	Tags() []string
	Enabled() bool
	Describe() string
	CanProcess(n ir.Node) bool
	Transform(n ir.Node, ctx *Context) (ir.Node, error)
	Validate(original, transformed ir.Node) (bool, []string)
}

// Mode selects how a transform's rejected validate() result is handled:
// Compatibility discards the transform's output and keeps the pre-transform
// node, recording a warning; Strict aborts the whole run with a fatal error.
type Mode int

const (
	Compatibility Mode = iota
	Strict
)

// Registry holds registered transforms, keyed by name to reject duplicates.
type Registry struct {
	byName map[string]Transform
	order  []Transform
}

// New returns an empty Registry.
func New() *Registry {
	return &Registry{byName: map[string]Transform{}}
}

// Register validates and adds t. A transform with an empty name, negative
// priority, or a name already registered fails with InvalidTransform /
// ConflictingName respectively (§4.7).
func (r *Registry) Register(t Transform) error {
	if t.Name() == "" {
		return fmt.Errorf("registry: InvalidTransform: transform has an empty name")
	}
	if t.Priority() < 0 {
		return fmt.Errorf("registry: InvalidTransform: transform %q has a negative priority", t.Name())
	}
	if _, exists := r.byName[t.Name()]; exists {
		return fmt.Errorf("registry: ConflictingName: transform %q is already registered", t.Name())
	}
	r.byName[t.Name()] = t
	r.order = append(r.order, t)
	sort.SliceStable(r.order, func(i, j int) bool { return r.order[i].Priority() < r.order[j].Priority() })
	return nil
}

// Transforms returns the registered transforms in ascending-priority order.
func (r *Registry) Transforms() []Transform {
	return append([]Transform(nil), r.order...)
}

// Run applies every enabled, registered transform to every node of mod's
// node table, in ascending-priority order, committing each accepted result
// directly into mod.Nodes. It returns the diagnostics accumulated along the
// way; in Strict mode the first failed validate() aborts the run and its
// diagnostic is the only fatal one returned.
func Run(mod *ir.Module, transforms []Transform, mode Mode) []*diag.Diagnostic {
	bag := &diag.Bag{}

	docBytes, err := json.Marshal(mod)
	if err != nil {
		bag.Errorf(diag.StageRegistry, diag.CodeInternalError, span.Span{}, "registry: failed to serialize module for transform context: %v", err)
		return bag.Errors()
	}
	ctx := &Context{Module: mod, doc: docBytes}

	for _, t := range transforms {
		if !t.Enabled() {
			continue
		}
		if abort := applyOne(mod, t, ctx, mode, bag); abort {
			break
		}
	}

	all := append([]*diag.Diagnostic{}, bag.Errors()...)
	return append(all, bag.Warnings()...)
}

// applyOne runs t against every node currently in mod.Nodes it claims via
// CanProcess, returning true if a Strict-mode abort should stop the run.
func applyOne(mod *ir.Module, t Transform, ctx *Context, mode Mode, bag *diag.Bag) bool {
	// Snapshot the ids to visit before mutating, so a transform that
	// replaces a node doesn't also see its own output in the same pass.
	ids := make([]string, 0, len(mod.Nodes))
	for id := range mod.Nodes {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		n, ok := mod.Get(id)
		if !ok || !t.CanProcess(n) {
			continue
		}

		transformed, err := t.Transform(n, ctx)
		if err != nil {
			bag.Errorf(diag.StageRegistry, diag.CodeInvalidTransform, spanOf(n), "transform %q failed on node %q: %v", t.Name(), id, err)
			if mode == Strict {
				return true
			}
			continue
		}

		valid, errs := t.Validate(n, transformed)
		if !valid {
			for _, e := range errs {
				if mode == Strict {
					bag.Errorf(diag.StageRegistry, diag.CodeInvalidTransform, spanOf(n), "transform %q rejected on node %q: %s", t.Name(), id, e)
				} else {
					bag.Warnf(diag.StageRegistry, diag.CodeInvalidTransform, spanOf(n), "transform %q rejected on node %q, rolled back: %s", t.Name(), id, e)
				}
			}
			if mode == Strict {
				return true
			}
			rollback(ctx, id, n)
			continue
		}

		mod.Nodes[id] = transformed
		commit(ctx, id, transformed)
	}
	return false
}

// commit patches the context's document mirror at "nodes.<id>" with
// transformed's serialized envelope, keeping ctx.doc in sync with mod
// without re-marshaling the whole module.
func commit(ctx *Context, id string, n ir.Node) {
	updated, err := sjson.SetRawBytes(ctx.doc, "nodes."+id, nodeEnvelopeJSON(n))
	if err == nil {
		ctx.doc = updated
	}
}

// rollback patches the context's document mirror at "nodes.<id>" back to
// original's serialized envelope, discarding a rejected transform's output
// (§4.10's compatibility-mode rollback) without touching any other node's
// entry.
func rollback(ctx *Context, id string, original ir.Node) {
	updated, err := sjson.SetRawBytes(ctx.doc, "nodes."+id, nodeEnvelopeJSON(original))
	if err == nil {
		ctx.doc = updated
	}
}

// nodeEnvelopeJSON marshals a single node the same way Module.MarshalJSON
// renders its "nodes" entries, by wrapping it in a throwaway one-node
// Module and pulling the one envelope back out.
func nodeEnvelopeJSON(n ir.Node) []byte {
	raw, err := json.Marshal(singleNodeModule(n))
	if err != nil {
		return []byte("null")
	}
	return []byte(gjson.GetBytes(raw, "nodes."+n.NodeID()).Raw)
}

func singleNodeModule(n ir.Node) *ir.Module {
	m := ir.NewModule()
	m.Nodes[n.NodeID()] = n
	return m
}

func spanOf(n ir.Node) span.Span {
	if sp := n.NodeSpan(); sp != nil {
		return *sp
	}
	return span.Span{}
}
