package knn

import (
	"github.com/Elsie4ever/prometheus-ai/pkg/prometheus/tags"
)

// Searcher is a propagation strategy: given the network's currently active
// tags, increase activation of the affected nodes, fire the ones that cross
// their threshold, and return the tags that became active as a result.
// Strategies are swappable; the network holds no strategy state of its own.
type Searcher interface {
	Search(n *Network) []tags.Tag
}

// DirectSearcher runs a single propagation step: each active tag bumps the
// activation of the node it keys, and a node crossing its threshold fires its
// outputs into the active set.
type DirectSearcher struct{}

func (DirectSearcher) Search(n *Network) []tags.Tag {
	return propagateOnce(n)
}

// CascadeSearcher repeats direct propagation steps until a step fires
// nothing, letting activation flow through chains of nodes. MaxDepth bounds
// the number of steps; zero means no bound.
type CascadeSearcher struct {
	MaxDepth int
}

func (c CascadeSearcher) Search(n *Network) []tags.Tag {
	var all []tags.Tag
	for depth := 0; c.MaxDepth <= 0 || depth < c.MaxDepth; depth++ {
		newly := propagateOnce(n)
		if len(newly) == 0 {
			break
		}
		all = append(all, newly...)
	}
	return all
}

// propagateOnce is one propagation step over a snapshot of the active tags.
// When a node fires, each of its outputs becomes active, and a downstream
// node keyed by that output observes the firing node's input at the output's
// weight as a related truth.
func propagateOnce(n *Network) []tags.Tag {
	var newly []tags.Tag
	for _, t := range n.ActiveTags() {
		node, ok := n.nodes[t.String()]
		if !ok {
			continue
		}
		node.IncreaseActivation()
		if node.fired || !node.CrossesThreshold() {
			continue
		}
		node.fired = true
		for _, out := range node.Outputs() {
			if downstream, ok := n.nodes[out.Tag.String()]; ok {
				downstream.ObserveTruth(node.Input, out.Weight)
			}
			if n.AddActiveTag(out.Tag) {
				newly = append(newly, out.Tag)
			}
		}
	}
	return newly
}
