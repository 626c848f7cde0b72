// Package explain turns a think run's trace into structured, explainable
// recommendation cards: which rules fired, in which cycle, and which derived
// facts led to each recommendation.
package explain

import (
	"crypto/rand"
	"fmt"

	"github.com/oklog/ulid/v2"

	"github.com/Elsie4ever/prometheus-ai/pkg/prometheus/es"
	"github.com/Elsie4ever/prometheus-ai/pkg/prometheus/tags"
)

// Builder constructs explainable recommendation cards
type Builder struct {
	entropy *ulid.MonotonicEntropy
}

// New creates a new card builder
func New() *Builder {
	return &Builder{
		entropy: ulid.Monotonic(rand.Reader, 0),
	}
}

// Card explains one recommendation the engine produced.
type Card struct {
	ID           string
	Title        string   // the recommendation's string form
	Bullets      []string // rule firings, in cycle order
	DerivedFacts []string // facts derived along the way
	Cycles       int      // how many cycles the run took
}

// Build creates a card for a recommendation from the run's trace.
func (b *Builder) Build(rec tags.Recommendation, trace []es.CycleTrace) Card {
	card := Card{
		ID:     ulid.MustNew(ulid.Now(), b.entropy).String(),
		Title:  rec.String(),
		Cycles: len(trace),
	}

	for _, cycle := range trace {
		for _, rule := range cycle.Fired {
			card.Bullets = append(card.Bullets,
				fmt.Sprintf("cycle %d: fired %s", cycle.Cycle, rule))
		}
		for _, t := range cycle.Activated {
			if _, ok := t.(tags.Fact); ok {
				card.DerivedFacts = append(card.DerivedFacts, t.String())
			}
		}
	}

	return card
}

// BuildAll creates one card per recommendation, all sharing the run's trace.
func (b *Builder) BuildAll(recs []tags.Recommendation, trace []es.CycleTrace) []Card {
	cards := make([]Card, 0, len(recs))
	for _, rec := range recs {
		cards = append(cards, b.Build(rec, trace))
	}
	return cards
}
