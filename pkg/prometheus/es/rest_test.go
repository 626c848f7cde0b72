package es

import (
	"testing"

	"github.com/Elsie4ever/prometheus-ai/pkg/prometheus/tags"
)

func TestPairwiseCompose_Transitive(t *testing.T) {
	ab := mustRule(t, "A(1)->B(1)")
	bc := mustRule(t, "B(1)->C(1)")

	composed := PairwiseCompose([]tags.Rule{ab, bc})
	if len(composed) != 1 {
		t.Fatalf("composed = %v, want exactly A(1)=>C(1)", composed)
	}
	if composed[0].String() != "A(1)=>C(1)" {
		t.Errorf("composed = %q, want A(1)=>C(1)", composed[0].String())
	}
}

func TestPairwiseCompose_NoOverlap(t *testing.T) {
	ab := mustRule(t, "A(1)->B(1)")
	dc := mustRule(t, "D(1)->C(1)")

	if composed := PairwiseCompose([]tags.Rule{ab, dc}); len(composed) != 0 {
		t.Errorf("disjoint rules composed into %v, want nothing", composed)
	}
}

func TestPairwiseCompose_SelfPair(t *testing.T) {
	// A rule whose conclusion misses its own premise does not self-compose.
	ab := mustRule(t, "A(1)->B(1)")
	if composed := PairwiseCompose([]tags.Rule{ab}); len(composed) != 0 {
		t.Errorf("self-composition yielded %v, want nothing", composed)
	}
	// One whose conclusion satisfies its own premise does.
	aa := mustRule(t, "A(1)->A(1)")
	composed := PairwiseCompose([]tags.Rule{aa})
	if len(composed) != 1 || composed[0].String() != "A(1)=>A(1)" {
		t.Errorf("self-composition = %v, want A(1)=>A(1)", composed)
	}
}

func TestPairwiseCompose_PartialOverlapFails(t *testing.T) {
	// Only one of a's two conclusions satisfies b: no composition.
	a := mustRule(t, "A(1)->B(1),X(1)")
	b := mustRule(t, "B(1)->C(1)")
	if composed := PairwiseCompose([]tags.Rule{a, b}); len(composed) != 0 {
		t.Errorf("partial overlap composed into %v, want nothing", composed)
	}
}

func TestPairwiseCompose_VariablePremise(t *testing.T) {
	a := mustRule(t, "A(&x)->B(penguin)")
	b := mustRule(t, "B(&y)->C(&y)")

	composed := PairwiseCompose([]tags.Rule{a, b})
	if len(composed) != 1 {
		t.Fatalf("composed = %v, want one rule", composed)
	}
	if composed[0].String() != "A(&x)=>C(&y)" {
		t.Errorf("composed = %q", composed[0].String())
	}
}

func TestRest_MergesIntoReady(t *testing.T) {
	e := New()
	e.AddReadyRule(mustRule(t, "A(1)->B(1)"))
	e.AddReadyRule(mustRule(t, "B(1)->C(1)"))

	e.Rest(1)

	found := false
	for _, r := range e.ReadyRules() {
		if r.String() == "A(1)=>C(1)" {
			found = true
		}
	}
	if !found {
		t.Errorf("Rest should merge A(1)=>C(1) into ready rules: %v", e.ReadyRules())
	}
	if len(e.ReadyRules()) != 3 {
		t.Errorf("ready rules = %d, want the 2 originals plus 1 synthesized", len(e.ReadyRules()))
	}
}

func TestRest_MultiCycleChains(t *testing.T) {
	e := New()
	e.AddReadyRule(mustRule(t, "A(1)->B(1)"))
	e.AddReadyRule(mustRule(t, "B(1)->C(1)"))
	e.AddReadyRule(mustRule(t, "C(1)->D(1)"))
	e.AddReadyRule(mustRule(t, "D(1)->E(1)"))

	// Cycle 1 yields A=>C, B=>D and C=>E; cycle 2 composes the first and
	// last of those into A=>E.
	e.Rest(2)

	got := make(map[string]bool)
	for _, r := range e.ReadyRules() {
		got[r.String()] = true
	}
	for _, want := range []string{"A(1)=>C(1)", "B(1)=>D(1)", "C(1)=>E(1)", "A(1)=>E(1)"} {
		if !got[want] {
			t.Errorf("missing synthesized rule %s in %v", want, e.ReadyRules())
		}
	}
}
