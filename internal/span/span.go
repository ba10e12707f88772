// Package span holds the source-position types shared by every compiler stage.
package span

import "fmt"

// Position is a single point in source text, 1-indexed for Line/Column and
// 0-indexed for Offset (matching how the external parser is expected to report it).
type Position struct {
	Line   int `json:"line"`
	Column int `json:"column"`
	Offset int `json:"offset"`
}

// String renders a position as "line:column".
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// IsZero reports whether the position was never set.
func (p Position) IsZero() bool {
	return p.Line == 0 && p.Column == 0 && p.Offset == 0
}

// Span is a half-open source range [Start, End).
type Span struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

// String renders a span as "line:column-line:column".
func (s Span) String() string {
	return fmt.Sprintf("%s-%s", s.Start, s.End)
}

// IsZero reports whether neither endpoint was ever set.
func (s Span) IsZero() bool {
	return s.Start.IsZero() && s.End.IsZero()
}
