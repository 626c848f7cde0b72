package knn

import (
	"crypto/rand"
	"sort"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/Elsie4ever/prometheus-ai/pkg/prometheus/tags"
)

// Clock supplies the current time. Tests inject a fixed clock so aging and
// eviction are deterministic.
type Clock func() time.Time

// Options configures a Network.
type Options struct {
	// Clock defaults to time.Now.
	Clock Clock
	// MaxAge overrides the lifetime applied to nodes loaded from records,
	// which carry no age of their own. Defaults to DefaultMaxAge.
	MaxAge time.Duration
}

// Network is a collection of knowledge nodes keyed by input tag, plus the set
// of currently active tags. Like the expert system it assumes a single
// caller; there is no internal locking.
type Network struct {
	nodes  map[string]*Node
	active map[string]tags.Tag

	clock   Clock
	maxAge  time.Duration
	entropy *ulid.MonotonicEntropy
}

// NewNetwork creates an empty network.
func NewNetwork(opts Options) *Network {
	clock := opts.Clock
	if clock == nil {
		clock = time.Now
	}
	maxAge := opts.MaxAge
	if maxAge == 0 {
		maxAge = DefaultMaxAge
	}
	return &Network{
		nodes:   make(map[string]*Node),
		active:  make(map[string]tags.Tag),
		clock:   clock,
		maxAge:  maxAge,
		entropy: ulid.Monotonic(rand.Reader, 0),
	}
}

// AddNode inserts a node keyed by its input tag, stamping its ID and creation
// time. A node for an input tag already present is replaced.
func (n *Network) AddNode(node *Node) {
	node.ID = ulid.MustNew(ulid.Timestamp(n.clock()), n.entropy).String()
	if node.CreatedAt.IsZero() {
		node.CreatedAt = n.clock()
	}
	n.nodes[node.Input.String()] = node
}

// Node returns the node keyed by the given input tag.
func (n *Network) Node(t tags.Tag) (*Node, bool) {
	node, ok := n.nodes[t.String()]
	return node, ok
}

// Nodes returns every node, ordered by input tag string.
func (n *Network) Nodes() []*Node {
	out := make([]*Node, 0, len(n.nodes))
	for _, node := range n.nodes {
		out = append(out, node)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Input.String() < out[j].Input.String() })
	return out
}

// AddActiveTag marks a tag active, reporting whether it was newly so.
func (n *Network) AddActiveTag(t tags.Tag) bool {
	key := t.String()
	if _, ok := n.active[key]; ok {
		return false
	}
	n.active[key] = t
	return true
}

// ActiveTags returns the currently active tags, ordered by string form.
func (n *Network) ActiveTags() []tags.Tag {
	out := make([]tags.Tag, 0, len(n.active))
	for _, t := range n.active {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].String() < out[j].String() })
	return out
}

// ClearActiveTags deactivates every tag.
func (n *Network) ClearActiveTags() {
	n.active = make(map[string]tags.Tag)
}

// EvictAged removes every node that has outlived its maximum age and returns
// how many were removed.
func (n *Network) EvictAged(now time.Time) int {
	evicted := 0
	for key, node := range n.nodes {
		if node.Expired(now) {
			delete(n.nodes, key)
			evicted++
		}
	}
	return evicted
}

// Search evicts aged nodes, then delegates propagation to the given strategy
// and returns the tags it newly activated.
func (n *Network) Search(s Searcher) []tags.Tag {
	n.EvictAged(n.clock())
	return s.Search(n)
}
