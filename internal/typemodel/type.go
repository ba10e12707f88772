// Package typemodel defines the algebraic type representation used as
// optional annotations on literals, parameters, and return positions
// throughout the AST and IR. It does not perform inference or checking -
// full JS semantic conformance is a Non-goal (§1) - it only gives the
// Normalizer, Lowerer, and Emitter a shared, serializable vocabulary for
// "what kind of value is this" when a caller chooses to annotate one.
package typemodel

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// Kind identifies which variant of Type is populated.
type Kind string

const (
	KindPrimitive Kind = "primitive"
	KindArray     Kind = "array"
	KindObject    Kind = "object"
	KindFunction  Kind = "function"
	KindUnion     Kind = "union"
	KindOptional  Kind = "optional"
	KindVoid      Kind = "void"
	KindAny       Kind = "any"
	KindCustom    Kind = "custom"
)

// Primitive enumerates the scalar JS value kinds.
type Primitive string

const (
	PrimitiveNumber    Primitive = "number"
	PrimitiveString    Primitive = "string"
	PrimitiveBoolean   Primitive = "boolean"
	PrimitiveNull      Primitive = "null"
	PrimitiveUndefined Primitive = "undefined"
)

// Type is a closed algebraic sum. Exactly the fields relevant to Kind are
// populated; the rest are left at their zero value. This mirrors how the
// host compiler's internal/ast annotates nodes with a single *TypeAnnotation
// field rather than a type hierarchy, except here the annotation itself is
// the sum type.
type Type struct {
	Kind      Kind            `json:"kind"`
	Primitive Primitive       `json:"primitive,omitempty"`
	Element   *Type           `json:"element,omitempty"`   // Array
	Props     map[string]Type `json:"props,omitempty"`     // Object
	Params    []Type          `json:"params,omitempty"`    // Function
	Return    *Type           `json:"return,omitempty"`    // Function
	Members   []Type          `json:"members,omitempty"`   // Union
	Base      *Type           `json:"base,omitempty"`      // Optional
	Name      string          `json:"name,omitempty"`      // Custom
}

func Prim(p Primitive) Type       { return Type{Kind: KindPrimitive, Primitive: p} }
func Arr(element Type) Type       { return Type{Kind: KindArray, Element: &element} }
func Obj(props map[string]Type) Type {
	return Type{Kind: KindObject, Props: props}
}
func Fn(params []Type, ret Type) Type {
	return Type{Kind: KindFunction, Params: params, Return: &ret}
}
func Union(members ...Type) Type  { return Type{Kind: KindUnion, Members: members} }
func Optional(base Type) Type     { return Type{Kind: KindOptional, Base: &base} }
func Void() Type                  { return Type{Kind: KindVoid} }
func Any() Type                   { return Type{Kind: KindAny} }
func Custom(name string) Type     { return Type{Kind: KindCustom, Name: name} }

// String renders a Type as a short human-readable type expression, used in
// diagnostic messages and debug dumps.
func (t Type) String() string {
	switch t.Kind {
	case KindPrimitive:
		return string(t.Primitive)
	case KindArray:
		return t.Element.String() + "[]"
	case KindObject:
		keys := make([]string, 0, len(t.Props))
		for k := range t.Props {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, len(keys))
		for i, k := range keys {
			parts[i] = fmt.Sprintf("%s: %s", k, t.Props[k].String())
		}
		return "{" + strings.Join(parts, ", ") + "}"
	case KindFunction:
		params := make([]string, len(t.Params))
		for i, p := range t.Params {
			params[i] = p.String()
		}
		return "(" + strings.Join(params, ", ") + ") => " + t.Return.String()
	case KindUnion:
		parts := make([]string, len(t.Members))
		for i, m := range t.Members {
			parts[i] = m.String()
		}
		return strings.Join(parts, " | ")
	case KindOptional:
		return t.Base.String() + "?"
	case KindVoid:
		return "void"
	case KindAny:
		return "any"
	case KindCustom:
		return t.Name
	default:
		return "invalid"
	}
}

// Equal implements structural equality. Any equals every other Type
// (including itself); Union equals another Union when their member sets
// are equal regardless of order.
func (t Type) Equal(other Type) bool {
	if t.Kind == KindAny || other.Kind == KindAny {
		return true
	}
	if t.Kind != other.Kind {
		return false
	}
	switch t.Kind {
	case KindPrimitive:
		return t.Primitive == other.Primitive
	case KindArray:
		return t.Element.Equal(*other.Element)
	case KindObject:
		if len(t.Props) != len(other.Props) {
			return false
		}
		for k, v := range t.Props {
			ov, ok := other.Props[k]
			if !ok || !v.Equal(ov) {
				return false
			}
		}
		return true
	case KindFunction:
		if len(t.Params) != len(other.Params) {
			return false
		}
		for i, p := range t.Params {
			if !p.Equal(other.Params[i]) {
				return false
			}
		}
		return t.Return.Equal(*other.Return)
	case KindUnion:
		return sameMemberSet(t.Members, other.Members)
	case KindOptional:
		return t.Base.Equal(*other.Base)
	case KindVoid:
		return true
	case KindCustom:
		return t.Name == other.Name
	default:
		return false
	}
}

func sameMemberSet(a, b []Type) bool {
	if len(a) != len(b) {
		return false
	}
	used := make([]bool, len(b))
	for _, ma := range a {
		found := false
		for i, mb := range b {
			if used[i] {
				continue
			}
			if ma.Equal(mb) {
				used[i] = true
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// MarshalJSON and UnmarshalJSON give Type a stable tagged-JSON wire form,
// round-tripping every variant via the Kind discriminator (P3).
func (t Type) MarshalJSON() ([]byte, error) {
	type alias Type
	return json.Marshal(alias(t))
}

func (t *Type) UnmarshalJSON(data []byte) error {
	type alias Type
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*t = Type(a)
	return nil
}
