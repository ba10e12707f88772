package ast

import (
	"strings"

	"github.com/cwbudde/go-jsl/internal/span"
)

// ObjectPattern destructures an object: `const {a, b: renamed, ...rest} = o`.
type ObjectPattern struct {
	Properties []*Property // Property.Value holds the binding target (Identifier/sub-pattern)
	Rest       *RestElement // nil when there is no trailing rest
	Span       span.Span
}

func (o *ObjectPattern) Kind() Kind         { return KindObjectPattern }
func (o *ObjectPattern) Pos() span.Position { return o.Span.Start }
func (o *ObjectPattern) End() span.Position { return o.Span.End }
func (o *ObjectPattern) expressionNode()    {}
func (o *ObjectPattern) patternNode()       {}
func (o *ObjectPattern) String() string {
	parts := make([]string, 0, len(o.Properties)+1)
	for _, p := range o.Properties {
		parts = append(parts, p.String())
	}
	if o.Rest != nil {
		parts = append(parts, o.Rest.String())
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// ArrayPattern destructures an array: `const [a, , c, ...rest] = arr`. A nil
// entry in Elements represents an elided slot (§8 scenario 5).
type ArrayPattern struct {
	Elements []Pattern // nil entries are elisions
	Rest     *RestElement
	Span     span.Span
}

func (a *ArrayPattern) Kind() Kind         { return KindArrayPattern }
func (a *ArrayPattern) Pos() span.Position { return a.Span.Start }
func (a *ArrayPattern) End() span.Position { return a.Span.End }
func (a *ArrayPattern) expressionNode()    {}
func (a *ArrayPattern) patternNode()       {}
func (a *ArrayPattern) String() string {
	parts := make([]string, len(a.Elements))
	for i, e := range a.Elements {
		if e == nil {
			parts[i] = ""
			continue
		}
		parts[i] = e.String()
	}
	if a.Rest != nil {
		parts = append(parts, a.Rest.String())
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// RestElement is `...name` as the final element of a pattern. The Validator
// rejects a RestElement anywhere but the last position (§4.4 tie-break).
type RestElement struct {
	Argument Pattern
	Span     span.Span
}

func (r *RestElement) Kind() Kind         { return KindRestElement }
func (r *RestElement) Pos() span.Position { return r.Span.Start }
func (r *RestElement) End() span.Position { return r.Span.End }
func (r *RestElement) expressionNode()    {}
func (r *RestElement) patternNode()       {}
func (r *RestElement) String() string     { return "..." + r.Argument.String() }

// AssignmentPattern gives a pattern a default value: `{a = 1}` or `[a = 1]`.
// Destructuring default values are always normalized to this shape so every
// downstream pass sees one uniform representation (§4.4 tie-break).
type AssignmentPattern struct {
	Left  Pattern
	Right Expression
	Span  span.Span
}

func (a *AssignmentPattern) Kind() Kind         { return KindAssignmentPattern }
func (a *AssignmentPattern) Pos() span.Position { return a.Span.Start }
func (a *AssignmentPattern) End() span.Position { return a.Span.End }
func (a *AssignmentPattern) expressionNode()    {}
func (a *AssignmentPattern) patternNode()       {}
func (a *AssignmentPattern) String() string {
	return a.Left.String() + " = " + a.Right.String()
}
