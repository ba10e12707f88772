package typemodel

import (
	"encoding/json"
	"testing"
)

func TestStringRendersReadableForm(t *testing.T) {
	tests := []struct {
		name     string
		typ      Type
		expected string
	}{
		{"number", Prim(PrimitiveNumber), "number"},
		{"array", Arr(Prim(PrimitiveString)), "string[]"},
		{"optional", Optional(Prim(PrimitiveBoolean)), "boolean?"},
		{"union", Union(Prim(PrimitiveString), Prim(PrimitiveNumber)), "string | number"},
		{"custom", Custom("Point"), "Point"},
		{"void", Void(), "void"},
		{"any", Any(), "any"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.typ.String(); got != tt.expected {
				t.Errorf("String() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestAnyEqualsEverything(t *testing.T) {
	if !Any().Equal(Prim(PrimitiveNumber)) {
		t.Error("Any() should equal Primitive(number)")
	}
	if !Prim(PrimitiveString).Equal(Any()) {
		t.Error("Primitive(string) should equal Any() symmetrically")
	}
}

func TestUnionEqualityIgnoresOrder(t *testing.T) {
	a := Union(Prim(PrimitiveString), Prim(PrimitiveNumber))
	b := Union(Prim(PrimitiveNumber), Prim(PrimitiveString))
	if !a.Equal(b) {
		t.Error("unions with the same members in different order should be equal")
	}
}

func TestUnionEqualityRejectsDifferentArity(t *testing.T) {
	a := Union(Prim(PrimitiveString), Prim(PrimitiveNumber))
	b := Union(Prim(PrimitiveString))
	if a.Equal(b) {
		t.Error("unions with different member counts should not be equal")
	}
}

func TestObjectEqualityIsStructural(t *testing.T) {
	a := Obj(map[string]Type{"x": Prim(PrimitiveNumber), "y": Prim(PrimitiveNumber)})
	b := Obj(map[string]Type{"y": Prim(PrimitiveNumber), "x": Prim(PrimitiveNumber)})
	if !a.Equal(b) {
		t.Error("objects with identical properties regardless of map order should be equal")
	}
}

func TestJSONRoundTrip(t *testing.T) {
	original := Fn([]Type{Prim(PrimitiveNumber), Prim(PrimitiveNumber)}, Prim(PrimitiveNumber))

	data, err := json.Marshal(original)
	if err != nil {
		t.Fatalf("Marshal returned error: %v", err)
	}

	var decoded Type
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal returned error: %v", err)
	}

	if !original.Equal(decoded) {
		t.Errorf("round-tripped type %v does not equal original %v", decoded, original)
	}
}
