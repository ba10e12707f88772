package emit

import (
	"encoding/json"
	"strconv"

	"github.com/cwbudde/go-jsl/internal/ir"
)

// literal renders a Literal node per §4.5: strings via JSON-style escaping,
// null as `nil`, booleans as `true`/`false`, numbers in canonical decimal
// form.
func (e *Emitter) literal(v *ir.Literal) string {
	switch v.LitKind {
	case ir.LiteralString:
		s, _ := v.Value.(string)
		return quoteLuaString(s)
	case ir.LiteralNumber:
		return formatNumber(v.Value)
	case ir.LiteralBoolean:
		if b, _ := v.Value.(bool); b {
			return "true"
		}
		return "false"
	case ir.LiteralNull:
		return "nil"
	default:
		return "nil"
	}
}

// quoteLuaString renders s as a Lua double-quoted string literal. Lua
// shares JSON's escaping vocabulary closely enough that encoding/json's
// string marshaling (quotes, backslash, control characters) produces valid
// Lua source for every string `encoding/json` can itself marshal.
func quoteLuaString(s string) string {
	raw, err := json.Marshal(s)
	if err != nil {
		return `""`
	}
	return string(raw)
}

// formatNumber renders a numeric Literal's Value in canonical decimal form.
func formatNumber(v interface{}) string {
	switch n := v.(type) {
	case float64:
		return strconv.FormatFloat(n, 'g', -1, 64)
	case int:
		return strconv.Itoa(n)
	case int64:
		return strconv.FormatInt(n, 10)
	default:
		return "0"
	}
}

// toKeyText extracts the literal text used as an object-literal key, e.g.
// `{ 1: "a" }`'s numeric key or `{ "x-y": 1 }`'s string key.
func toKeyText(v *ir.Literal) string {
	switch v.LitKind {
	case ir.LiteralString:
		s, _ := v.Value.(string)
		return s
	default:
		return formatNumber(v.Value)
	}
}
