package compiler

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/cwbudde/go-jsl/internal/ir"
)

// The following tests exercise the six literal end-to-end scenarios named
// in §8, driving the full Compile facade through the embedded fixture
// recognizer rather than hand-built ASTs, so the recognizer, Normalize,
// Lower, Validate, and Emit stages are all exercised together.

func TestCompileAddFunction(t *testing.T) {
	res := Compile("function add(a,b){ return a+b; }", DefaultOptions())
	if !res.Success {
		t.Fatalf("Compile failed: %v", res.Errors)
	}
	want := "local function add(a, b)\n  return (a + b)\nend\n"
	if res.Code != want {
		t.Errorf("Code = %q, want %q", res.Code, want)
	}
}

func TestCompileStringConcatDeclaration(t *testing.T) {
	res := Compile(`const s = "x" + y;`, DefaultOptions())
	if !res.Success {
		t.Fatalf("Compile failed: %v", res.Errors)
	}
	want := "local s = (\"x\" .. y)\n"
	if res.Code != want {
		t.Errorf("Code = %q, want %q", res.Code, want)
	}
}

func TestCompileIfElse(t *testing.T) {
	res := Compile("if (x > 5) { x = x+1; } else { x = x-1; }", DefaultOptions())
	if !res.Success {
		t.Fatalf("Compile failed: %v", res.Errors)
	}
	for _, want := range []string{"if (x > 5) then", "x = (x + 1)", "else", "x = (x - 1)", "end"} {
		if !strings.Contains(res.Code, want) {
			t.Errorf("Code = %q, want substring %q", res.Code, want)
		}
	}
}

func TestCompileTryCatchFinally(t *testing.T) {
	res := Compile("try { f(); } catch (e) { g(e); } finally { h(); }", DefaultOptions())
	if !res.Success {
		t.Fatalf("Compile failed: %v", res.Errors)
	}
	fIdx := strings.Index(res.Code, "f()")
	xpcallIdx := strings.Index(res.Code, "xpcall(")
	notOkIdx := strings.Index(res.Code, "if not __ok then")
	gIdx := strings.Index(res.Code, "g(e)")
	hIdx := strings.Index(res.Code, "h()")
	if fIdx < 0 || xpcallIdx < 0 || notOkIdx < 0 || gIdx < 0 || hIdx < 0 {
		t.Fatalf("Code missing expected fragments: %q", res.Code)
	}
	if !(fIdx < xpcallIdx && xpcallIdx < notOkIdx && notOkIdx < gIdx && gIdx < hIdx) {
		t.Errorf("Code fragments out of order: %q", res.Code)
	}
}

func TestCompileArrayDestructureRest(t *testing.T) {
	res := Compile("const [a, , c, ...rest] = arr;", DefaultOptions())
	if !res.Success {
		t.Fatalf("Compile failed: %v", res.Errors)
	}
	for _, want := range []string{"local __tmp1 = arr", "local a = __tmp1[1]", "local c = __tmp1[3]", "local rest = {}", "for __tmp2 = 4, #__tmp1 do"} {
		if !strings.Contains(res.Code, want) {
			t.Errorf("Code = %q, want substring %q", res.Code, want)
		}
	}
}

func TestCompileAsyncAwait(t *testing.T) {
	res := Compile("async function f(){ await g(); }", DefaultOptions())
	if !res.Success {
		t.Fatalf("Compile failed: %v", res.Errors)
	}
	for _, want := range []string{"local function f()", "coroutine.create(function()", "coroutine.yield(g())", "end)", "end"} {
		if !strings.Contains(res.Code, want) {
			t.Errorf("Code = %q, want substring %q", res.Code, want)
		}
	}
}

// TestCompileUnrecognizedSourceFails covers the facade's InvalidInput path
// when neither an AST nor a RawAST was supplied and the recognizer can't
// make sense of the text either - never a partial result (§7).
func TestCompileUnrecognizedSourceFails(t *testing.T) {
	res := Compile("this is not a recognized fixture shape at all", DefaultOptions())
	if res.Success {
		t.Fatal("expected Compile to fail on unrecognized source")
	}
	if res.Code != "" {
		t.Errorf("Code = %q, want empty on failure", res.Code)
	}
	if len(res.Errors) == 0 {
		t.Error("expected at least one diagnostic")
	}
}

// TestCompileAttachesMetaPerf checks §4.9 point 3: MetaPerf is populated
// and mirrored onto the IR module's metadata.perf block.
func TestCompileAttachesMetaPerf(t *testing.T) {
	res := Compile("function add(a,b){ return a+b; }", DefaultOptions())
	if !res.Success {
		t.Fatalf("Compile failed: %v", res.Errors)
	}
	if res.MetaPerf.NodeCount == 0 {
		t.Error("expected a non-zero NodeCount")
	}
	perf, ok := res.IR.Header.Metadata["perf"].(map[string]interface{})
	if !ok {
		t.Fatal("expected module.metadata.perf to be populated")
	}
	if _, ok := perf["nodeCount"]; !ok {
		t.Error("expected metadata.perf.nodeCount")
	}
}

// TestCompileIRRoundTrips is property P3: serialize-then-deserialize of any
// produced IR round-trips to a structurally identical IR (here checked via
// re-serialization producing byte-identical JSON, since Module has no
// other equality notion available).
func TestCompileIRRoundTrips(t *testing.T) {
	res := Compile("function add(a,b){ return a+b; }", DefaultOptions())
	if !res.Success {
		t.Fatalf("Compile failed: %v", res.Errors)
	}
	data, err := json.Marshal(res.IR)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var roundTripped ir.Module
	if err := json.Unmarshal(data, &roundTripped); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	data2, err := json.Marshal(&roundTripped)
	if err != nil {
		t.Fatalf("re-Marshal: %v", err)
	}
	if string(data) != string(data2) {
		t.Errorf("round-trip mismatch:\nfirst:  %s\nsecond: %s", data, data2)
	}
}

// TestCompileDirectASTBypassesNormalize exercises the opts.AST path, used
// by an external caller that already ran its own parser + normalizer.
func TestCompileDirectASTBypassesNormalize(t *testing.T) {
	res := Compile("function add(a,b){ return a+b; }", DefaultOptions())
	if !res.Success {
		t.Fatalf("Compile failed: %v", res.Errors)
	}
	opts := DefaultOptions()
	opts.AST = res.AST
	res2 := Compile("", opts)
	if !res2.Success {
		t.Fatalf("Compile with direct AST failed: %v", res2.Errors)
	}
	if res2.MetaPerf.NormalizeNs != 0 {
		t.Errorf("NormalizeNs = %d, want 0 when AST is supplied directly", res2.MetaPerf.NormalizeNs)
	}
	if res2.Code != res.Code {
		t.Errorf("Code = %q, want %q", res2.Code, res.Code)
	}
}
