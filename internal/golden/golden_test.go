package golden

import (
	"os"
	"testing"

	"github.com/cwbudde/go-jsl/internal/compiler"
	"github.com/gkampitakis/go-snaps/snaps"
)

// TestMain lets go-snaps prune obsolete snapshots left behind by a renamed
// or deleted fixture, the same cleanup wiring go-snaps itself documents and
// the host compiler's own fixture-driven tests rely on implicitly through
// CI's snapshot-review step.
func TestMain(m *testing.M) {
	v := m.Run()
	snaps.Clean(m)
	os.Exit(v)
}

// compileFixture is the small shared helper every shape-summary golden
// test uses to go from literal source text to an IR module, via the
// Compile Facade's embedded fixture recognizer.
func compileFixture(t *testing.T, source string) *compiler.Result {
	t.Helper()
	res := compiler.Compile(source, compiler.DefaultOptions())
	if !res.Success {
		t.Fatalf("Compile(%q) failed: %v", source, res.Errors)
	}
	return res
}

// Each of these snapshots the *shape* of the compiled IR - node-kind
// histogram, CFG/block counts, max depth - rather than the full IR JSON or
// the exact Lua text, so a golden breaks only when the compiled shape
// changes, not when node ids or emitted text are renumbered or reworded.
func TestShapeSummaryAddFunction(t *testing.T) {
	res := compileFixture(t, "function add(a,b){ return a+b; }")
	snaps.MatchSnapshot(t, "add_function_shape", Summarize(res.IR).String())
}

func TestShapeSummaryStringConcat(t *testing.T) {
	res := compileFixture(t, `const s = "x" + y;`)
	snaps.MatchSnapshot(t, "string_concat_shape", Summarize(res.IR).String())
}

func TestShapeSummaryIfElse(t *testing.T) {
	res := compileFixture(t, "if (x > 5) { x = x+1; } else { x = x-1; }")
	snaps.MatchSnapshot(t, "if_else_shape", Summarize(res.IR).String())
}

func TestShapeSummaryTryCatchFinally(t *testing.T) {
	res := compileFixture(t, "try { f(); } catch (e) { g(e); } finally { h(); }")
	snaps.MatchSnapshot(t, "try_catch_finally_shape", Summarize(res.IR).String())
}

func TestShapeSummaryArrayDestructureRest(t *testing.T) {
	res := compileFixture(t, "const [a, , c, ...rest] = arr;")
	snaps.MatchSnapshot(t, "array_destructure_rest_shape", Summarize(res.IR).String())
}

func TestShapeSummaryAsyncAwait(t *testing.T) {
	res := compileFixture(t, "async function f(){ await g(); }")
	snaps.MatchSnapshot(t, "async_await_shape", Summarize(res.IR).String())
}

// TestShapeSummaryStableAcrossUnrelatedCounterDrift checks that compiling
// the same source twice in the same process, with unrelated compiles in
// between, produces byte-identical shape summaries. Each Compile call owns a
// fresh ID Generator, so the interleaved compiles do not shift the second
// compile's ids.
func TestShapeSummaryStableAcrossUnrelatedCounterDrift(t *testing.T) {
	first := compileFixture(t, "function add(a,b){ return a+b; }")
	for i := 0; i < 25; i++ {
		compileFixture(t, `const s = "x" + y;`)
	}
	second := compileFixture(t, "function add(a,b){ return a+b; }")

	firstSummary := Summarize(first.IR).String()
	secondSummary := Summarize(second.IR).String()
	if firstSummary != secondSummary {
		t.Errorf("shape summary drifted with unrelated counter state:\nfirst:  %s\nsecond: %s", firstSummary, secondSummary)
	}
}
