package jsonvalue

// FromAny converts a tree of Go primitives - the shape produced by
// encoding/json.Unmarshal into interface{}, or assembled by hand in tests -
// into a Value tree. Object key order from a map is not guaranteed by Go;
// callers that care about stable field order should build the object with
// NewObject/ObjectSet directly instead of routing it through a map.
func FromAny(v interface{}) *Value {
	switch val := v.(type) {
	case nil:
		return NewNull()
	case bool:
		return NewBoolean(val)
	case string:
		return NewString(val)
	case float64:
		return NewNumber(val)
	case int:
		return NewInt64(int64(val))
	case int64:
		return NewInt64(val)
	case []interface{}:
		arr := NewArray()
		for _, elem := range val {
			arr.ArrayAppend(FromAny(elem))
		}
		return arr
	case map[string]interface{}:
		obj := NewObject()
		for k, child := range val {
			obj.ObjectSet(k, FromAny(child))
		}
		return obj
	case *Value:
		return val
	default:
		return NewUndefined()
	}
}

// Node builds a type-tagged object node in one call, the shape the
// Normalizer expects at every raw-AST position. Field order is preserved in
// the order the keys are passed.
func Node(typeTag string, fields ...KV) *Value {
	obj := NewObject()
	obj.ObjectSet("type", NewString(typeTag))
	for _, f := range fields {
		obj.ObjectSet(f.Key, f.Val)
	}
	return obj
}

// KV is a single named field passed to Node for ordered construction.
type KV struct {
	Key string
	Val *Value
}

// F constructs a KV pair; a short alias used heavily by fixture-building test code.
func F(key string, val *Value) KV {
	return KV{Key: key, Val: val}
}

// Arr builds an array node from a list of elements.
func Arr(elems ...*Value) *Value {
	arr := NewArray()
	for _, e := range elems {
		arr.ArrayAppend(e)
	}
	return arr
}

// Str is a short alias for NewString, used heavily by fixture-building test code.
func Str(s string) *Value { return NewString(s) }

// Num is a short alias for NewNumber.
func Num(n float64) *Value { return NewNumber(n) }

// Bool is a short alias for NewBoolean.
func Bool(b bool) *Value { return NewBoolean(b) }
