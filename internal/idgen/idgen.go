// Package idgen produces stable, compact textual identifiers for IR nodes,
// control-flow blocks, and declarations using a balanced-ternary encoding of
// a monotonically increasing counter.
//
// Balanced ternary uses the digits T (-1), 0, and 1 instead of 0-2. Encoding
// a counter this way keeps ids short, keeps them free of a sign character,
// and - because the digit set excludes the two characters most likely to
// collide with separators in a path-like id ("-" and "_") - keeps the
// "PREFIX_DIGITS" shape trivially greppable and diffable across golden runs.
package idgen

import "fmt"

const digits = "T01"

// Generator hands out ids of the form "prefix_digits". It is not safe for
// concurrent use; callers that need one counter per compile should construct
// a fresh Generator per compile, matching the rest of the core (§5).
type Generator struct {
	counter int
}

// New returns a Generator whose first id encodes 0.
func New() *Generator {
	return &Generator{}
}

// Next returns the next id for prefix and advances the counter.
func (g *Generator) Next(prefix string) string {
	id := prefix + "_" + Encode(g.counter)
	g.counter++
	return id
}

// Peek returns what Next would return without advancing the counter.
func (g *Generator) Peek(prefix string) string {
	return prefix + "_" + Encode(g.counter)
}

// Reset rewinds the counter to n. It rejects negative values, matching the
// InvalidArgument failure mode named in §4.1.
func (g *Generator) Reset(n int) error {
	if n < 0 {
		return fmt.Errorf("idgen: InvalidArgument: reset value %d must be non-negative", n)
	}
	g.counter = n
	return nil
}

// Counter returns the current (not-yet-issued) counter value.
func (g *Generator) Counter() int {
	return g.counter
}

// Encode produces the balanced-ternary digit string for a non-negative
// integer. Encode(0) is defined as "0".
func Encode(n int) string {
	if n == 0 {
		return "0"
	}
	if n < 0 {
		panic(fmt.Sprintf("idgen: Encode called with negative value %d", n))
	}

	var out []byte
	for n != 0 {
		rem := n % 3
		n /= 3
		switch rem {
		case 0:
			out = append(out, '0')
		case 1:
			out = append(out, '1')
		case 2:
			// remainder 2 becomes digit -1 ("T") with a carry into the next position
			out = append(out, 'T')
			n++
		}
	}

	// digits were produced least-significant-first; reverse in place
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return string(out)
}

// Decode inverts Encode. It returns an error if s contains characters
// outside the {T,0,1} alphabet.
func Decode(s string) (int, error) {
	n := 0
	for _, c := range s {
		var digit int
		switch c {
		case 'T':
			digit = -1
		case '0':
			digit = 0
		case '1':
			digit = 1
		default:
			return 0, fmt.Errorf("idgen: invalid balanced-ternary digit %q in %q", c, s)
		}
		n = n*3 + digit
	}
	return n, nil
}
