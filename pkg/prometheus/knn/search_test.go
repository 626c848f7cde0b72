package knn

import (
	"testing"
	"time"
)

// chainNetwork wires A(1) -> B(1) -> C(1) with unit thresholds so one
// activation of A(1) fires the whole chain under cascading search.
func chainNetwork(t *testing.T) *Network {
	t.Helper()
	net := NewNetwork(Options{})
	net.AddNode(NewNode(NodeConfig{
		Input:     mustTag(t, "A(1)"),
		Threshold: 1,
		Outputs:   []Output{{Tag: mustTag(t, "B(1)"), Weight: 0.5}},
	}))
	net.AddNode(NewNode(NodeConfig{
		Input:     mustTag(t, "B(1)"),
		Threshold: 1,
		Outputs:   []Output{{Tag: mustTag(t, "C(1)"), Weight: 0.25}},
	}))
	return net
}

func TestDirectSearcher_FiresOneStep(t *testing.T) {
	net := chainNetwork(t)
	net.AddActiveTag(mustTag(t, "A(1)"))

	newly := net.Search(DirectSearcher{})
	if len(newly) != 1 || newly[0].String() != "B(1)" {
		t.Fatalf("newly active = %v, want [B(1)]", newly)
	}

	a, _ := net.Node(mustTag(t, "A(1)"))
	if !a.IsFired() {
		t.Error("A(1) node should have fired")
	}
	b, _ := net.Node(mustTag(t, "B(1)"))
	if b.IsFired() {
		t.Error("B(1) node must not fire in the same step it was activated")
	}
}

func TestDirectSearcher_BelowThreshold(t *testing.T) {
	net := NewNetwork(Options{})
	net.AddNode(NewNode(NodeConfig{
		Input:     mustTag(t, "A(1)"),
		Threshold: 3,
		Outputs:   []Output{{Tag: mustTag(t, "B(1)"), Weight: 1}},
	}))
	net.AddActiveTag(mustTag(t, "A(1)"))

	if newly := net.Search(DirectSearcher{}); len(newly) != 0 {
		t.Errorf("newly active = %v, want none below threshold", newly)
	}
	node, _ := net.Node(mustTag(t, "A(1)"))
	if !node.IsActivated() || node.Activation() != 1 {
		t.Errorf("activation = %g, want the single bump recorded", node.Activation())
	}
}

func TestDirectSearcher_NoRefire(t *testing.T) {
	net := chainNetwork(t)
	net.AddActiveTag(mustTag(t, "A(1)"))

	net.Search(DirectSearcher{})
	if newly := net.Search(DirectSearcher{}); len(newly) != 1 || newly[0].String() != "C(1)" {
		t.Errorf("second step newly active = %v, want only B(1)'s output C(1)", newly)
	}
	if newly := net.Search(DirectSearcher{}); len(newly) != 0 {
		t.Errorf("third step newly active = %v, want nothing left to fire", newly)
	}
}

func TestDirectSearcher_ObservesTruthDownstream(t *testing.T) {
	net := chainNetwork(t)
	net.AddActiveTag(mustTag(t, "A(1)"))
	net.Search(DirectSearcher{})

	b, _ := net.Node(mustTag(t, "B(1)"))
	belief, err := b.UpdateBelief()
	if err != nil {
		t.Fatalf("UpdateBelief: %v", err)
	}
	if belief != 0.5 {
		t.Errorf("belief = %g, want the firing weight 0.5", belief)
	}
}

func TestCascadeSearcher_RunsToQuiescence(t *testing.T) {
	net := chainNetwork(t)
	net.AddActiveTag(mustTag(t, "A(1)"))

	newly := net.Search(CascadeSearcher{})
	if len(newly) != 2 || newly[0].String() != "B(1)" || newly[1].String() != "C(1)" {
		t.Fatalf("newly active = %v, want [B(1) C(1)]", newly)
	}
	b, _ := net.Node(mustTag(t, "B(1)"))
	if !b.IsFired() {
		t.Error("cascade should have fired B(1)")
	}
}

func TestCascadeSearcher_MaxDepth(t *testing.T) {
	net := chainNetwork(t)
	net.AddActiveTag(mustTag(t, "A(1)"))

	newly := net.Search(CascadeSearcher{MaxDepth: 1})
	if len(newly) != 1 || newly[0].String() != "B(1)" {
		t.Errorf("newly active = %v, want the first step only", newly)
	}
}

func TestSearch_EvictsAgedFirst(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	net := NewNetwork(Options{Clock: fixedClock(&now)})
	net.AddNode(NewNode(NodeConfig{
		Input:     mustTag(t, "A(1)"),
		Threshold: 1,
		MaxAge:    time.Minute,
		Outputs:   []Output{{Tag: mustTag(t, "B(1)"), Weight: 1}},
	}))
	net.AddActiveTag(mustTag(t, "A(1)"))

	now = now.Add(2 * time.Minute)
	if newly := net.Search(DirectSearcher{}); len(newly) != 0 {
		t.Errorf("newly active = %v, want nothing from an evicted node", newly)
	}
	if len(net.Nodes()) != 0 {
		t.Error("expired node should have been evicted before the search")
	}
}
