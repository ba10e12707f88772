package idgen

import "testing"

func TestEncodeKnownValues(t *testing.T) {
	tests := []struct {
		n        int
		expected string
	}{
		{0, "0"},
		{1, "1"},
		{2, "1T"},
		{3, "10"},
		{4, "11"},
		{5, "1TT"},
		{9, "100"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := Encode(tt.n); got != tt.expected {
				t.Errorf("Encode(%d) = %q, want %q", tt.n, got, tt.expected)
			}
		})
	}
}

func TestDecodeInvertsEncode(t *testing.T) {
	for n := 0; n < 5000; n++ {
		encoded := Encode(n)
		for _, c := range encoded {
			if c != 'T' && c != '0' && c != '1' {
				t.Fatalf("Encode(%d) = %q contains digit outside {T,0,1}", n, encoded)
			}
		}
		decoded, err := Decode(encoded)
		if err != nil {
			t.Fatalf("Decode(%q) returned error: %v", encoded, err)
		}
		if decoded != n {
			t.Errorf("Decode(Encode(%d)) = %d, want %d", n, decoded, n)
		}
	}
}

func TestDecodeRejectsInvalidDigits(t *testing.T) {
	if _, err := Decode("102"); err == nil {
		t.Error("Decode(\"102\") should reject digit '2'")
	}
}

func TestGeneratorNextAdvancesCounter(t *testing.T) {
	g := New()
	first := g.Next("node")
	second := g.Next("node")

	if first != "node_0" {
		t.Errorf("first id = %q, want %q", first, "node_0")
	}
	if second != "node_1" {
		t.Errorf("second id = %q, want %q", second, "node_1")
	}
}

func TestGeneratorPeekDoesNotAdvance(t *testing.T) {
	g := New()
	peeked := g.Peek("cfg")
	next := g.Next("cfg")

	if peeked != next {
		t.Errorf("Peek() = %q, Next() = %q; want equal", peeked, next)
	}
}

func TestGeneratorResetRejectsNegative(t *testing.T) {
	g := New()
	if err := g.Reset(-1); err == nil {
		t.Error("Reset(-1) should fail with InvalidArgument")
	}
}

func TestGeneratorResetRewindsCounter(t *testing.T) {
	g := New()
	g.Next("bb")
	g.Next("bb")
	if err := g.Reset(0); err != nil {
		t.Fatalf("Reset(0) returned error: %v", err)
	}
	if got := g.Next("bb"); got != "bb_0" {
		t.Errorf("after reset, Next() = %q, want %q", got, "bb_0")
	}
}

func TestPrefixesPartitionNamespaces(t *testing.T) {
	g := New()
	nodeID := g.Next("node")
	cfgID := g.Next("cfg")
	if nodeID == cfgID {
		t.Errorf("ids from different prefixes collided: %q == %q", nodeID, cfgID)
	}
}
