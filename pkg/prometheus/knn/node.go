// Package knn implements the knowledge node network: activation units keyed
// by an input tag that accumulate weighted activation toward a threshold,
// fire their weighted outputs into the network, age toward eviction, and
// aggregate a belief value from observed truths.
package knn

import (
	"fmt"
	"sort"
	"time"

	"github.com/Elsie4ever/prometheus-ai/pkg/prometheus/internalerr"
	"github.com/Elsie4ever/prometheus-ai/pkg/prometheus/tags"
)

// accuracyCurve is the calibrated sigmoid-like activation step per confidence
// level. Higher levels contribute disproportionately more activation.
var accuracyCurve = [...]float64{0, 2, 5, 11, 27, 50, 73, 88, 95, 98, 100}

// DefaultMaxAge is how long a node lives when its record does not say
// otherwise.
const DefaultMaxAge = 60 * time.Second

// Output is one weighted output tag of a node.
type Output struct {
	Tag    tags.Tag
	Weight float64
}

// NodeConfig describes a node to be created.
type NodeConfig struct {
	Input     tags.Tag
	Outputs   []Output
	Threshold float64
	Strength  int           // activation bias, defaults to 1
	MaxAge    time.Duration // defaults to DefaultMaxAge
	CreatedAt time.Time     // defaults to the network clock on AddNode
}

// Node is a single activation unit wrapping one input tag.
type Node struct {
	// ID is a ULID stamped by the network when the node is added.
	ID        string
	Input     tags.Tag
	Threshold float64
	Strength  int
	MaxAge    time.Duration
	CreatedAt time.Time

	outputs    map[string]Output
	truths     map[string]truth
	activation float64
	belief     float64
	activated  bool
	fired      bool
}

type truth struct {
	tag   tags.Tag
	value float64
}

// NewNode creates a node from its config. Output tags are unique per node;
// a duplicate output tag keeps the last weight given for it.
func NewNode(cfg NodeConfig) *Node {
	n := &Node{
		Input:     cfg.Input,
		Threshold: cfg.Threshold,
		Strength:  cfg.Strength,
		MaxAge:    cfg.MaxAge,
		CreatedAt: cfg.CreatedAt,
		outputs:   make(map[string]Output, len(cfg.Outputs)),
		truths:    make(map[string]truth),
	}
	if n.Strength == 0 {
		n.Strength = 1
	}
	if n.MaxAge == 0 {
		n.MaxAge = DefaultMaxAge
	}
	for _, out := range cfg.Outputs {
		n.outputs[out.Tag.String()] = out
	}
	return n
}

// Outputs returns the node's weighted outputs ordered by tag string.
func (n *Node) Outputs() []Output {
	out := make([]Output, 0, len(n.outputs))
	for _, o := range n.outputs {
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Tag.String() < out[j].Tag.String() })
	return out
}

// IncreaseActivation adds one unit of activation.
func (n *Node) IncreaseActivation() {
	n.activation++
	n.activated = true
}

// IncreaseActivationLevel adds the accuracy-curve step for the given
// confidence level. Levels outside the curve clamp to its ends.
func (n *Node) IncreaseActivationLevel(level int) {
	if level < 0 {
		level = 0
	}
	if level >= len(accuracyCurve) {
		level = len(accuracyCurve) - 1
	}
	n.activation += accuracyCurve[level]
	n.activated = true
}

// Activation returns the accumulated activation.
func (n *Node) Activation() float64 {
	return n.activation
}

// IsActivated reports whether the node has accumulated any activation.
func (n *Node) IsActivated() bool {
	return n.activated
}

// IsFired reports whether the node has crossed its threshold and fired.
func (n *Node) IsFired() bool {
	return n.fired
}

// CrossesThreshold reports whether accumulated activation has reached the
// firing threshold. Firing itself is the network's decision.
func (n *Node) CrossesThreshold() bool {
	return n.activation >= n.Threshold
}

// ObserveTruth records a truth observation for a related tag, replacing any
// earlier observation of the same tag.
func (n *Node) ObserveTruth(t tags.Tag, value float64) {
	n.truths[t.String()] = truth{tag: t, value: value}
}

// UpdateBelief recomputes belief as the arithmetic mean of every observed
// truth. With no observations there is nothing to average and the call fails
// instead of silently yielding zero.
func (n *Node) UpdateBelief() (float64, error) {
	if len(n.truths) == 0 {
		return 0, fmt.Errorf("node %s has no related truths: %w", n.Input, internalerr.ErrEmptyAggregate)
	}
	sum := 0.0
	for _, obs := range n.truths {
		sum += obs.value
	}
	n.belief = sum / float64(len(n.truths))
	return n.belief, nil
}

// Belief returns the belief value of the last UpdateBelief call.
func (n *Node) Belief() float64 {
	return n.belief
}

// Age returns how long the node has existed as of now.
func (n *Node) Age(now time.Time) time.Duration {
	return now.Sub(n.CreatedAt)
}

// Expired reports whether the node has outlived its maximum age.
func (n *Node) Expired(now time.Time) bool {
	return n.MaxAge > 0 && n.Age(now) > n.MaxAge
}

// String renders the node as its input, threshold and outputs.
func (n *Node) String() string {
	s := fmt.Sprintf("%s threshold %g", n.Input, n.Threshold)
	for _, out := range n.Outputs() {
		s += fmt.Sprintf(" => %s(%g)", out.Tag, out.Weight)
	}
	return s
}
