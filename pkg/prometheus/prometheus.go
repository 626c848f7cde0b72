// Package prometheus ties the expert system, the knowledge node network and
// the knowledge store together behind one facade.
package prometheus

import (
	"context"
	"time"

	"github.com/Elsie4ever/prometheus-ai/pkg/prometheus/es"
	"github.com/Elsie4ever/prometheus-ai/pkg/prometheus/explain"
	"github.com/Elsie4ever/prometheus-ai/pkg/prometheus/knn"
	"github.com/Elsie4ever/prometheus-ai/pkg/prometheus/store"
	"github.com/Elsie4ever/prometheus-ai/pkg/prometheus/tags"
)

// Options configures a Prometheus instance
type Options struct {
	// Store backs LoadKnowledge and SaveLearned. Optional; without one the
	// instance is purely in-memory.
	Store store.Store
	// Clock is injected into the network for deterministic aging. Optional.
	Clock knn.Clock
	// Searcher is the network propagation strategy. Defaults to
	// knn.DirectSearcher.
	Searcher knn.Searcher
	// NetworkMaxAge caps the lifetime of loaded knowledge nodes.
	NetworkMaxAge time.Duration
}

// Prometheus is the top-level facade over both engines.
type Prometheus struct {
	engine   *es.Engine
	network  *knn.Network
	store    store.Store
	searcher knn.Searcher
	builder  *explain.Builder
}

// New creates a Prometheus instance with the given dependencies
func New(opts Options) *Prometheus {
	searcher := opts.Searcher
	if searcher == nil {
		searcher = knn.DirectSearcher{}
	}
	return &Prometheus{
		engine:   es.New(),
		network:  knn.NewNetwork(knn.Options{Clock: opts.Clock, MaxAge: opts.NetworkMaxAge}),
		store:    opts.Store,
		searcher: searcher,
		builder:  explain.New(),
	}
}

// ES returns the expert system engine.
func (p *Prometheus) ES() *es.Engine { return p.engine }

// KNN returns the knowledge node network.
func (p *Prometheus) KNN() *knn.Network { return p.network }

// Close cleanly shuts down the instance
func (p *Prometheus) Close() error {
	if p.store == nil {
		return nil
	}
	return p.store.Close()
}

// LoadKnowledge pulls the stored knowledge base into both engines: facts and
// rules into the expert system, node records into the network.
func (p *Prometheus) LoadKnowledge(ctx context.Context) error {
	if p.store == nil {
		return nil
	}

	facts, err := p.store.ListFacts(ctx)
	if err != nil {
		return err
	}
	for _, rec := range facts {
		f, err := tags.ParseFactWithConfidence(rec.Tag, rec.Confidence)
		if err != nil {
			return err
		}
		p.engine.AddFact(f)
	}

	rules, err := p.store.ListRules(ctx)
	if err != nil {
		return err
	}
	for _, s := range rules {
		r, err := tags.ParseRule(s)
		if err != nil {
			return err
		}
		p.engine.AddReadyRule(r)
	}

	nodes, err := p.store.ListNodes(ctx)
	if err != nil {
		return err
	}
	return p.network.LoadRecords(nodes)
}

// SaveLearned writes the engine's current facts and rules back to the store,
// persisting anything derived or synthesized since the last load.
func (p *Prometheus) SaveLearned(ctx context.Context) error {
	if p.store == nil {
		return nil
	}

	for _, f := range p.engine.Facts() {
		rec := store.FactRecord{Tag: f.String(), Confidence: f.Confidence}
		if err := p.store.UpsertFact(ctx, rec); err != nil {
			return err
		}
	}
	for _, r := range p.engine.ReadyRules() {
		if err := p.store.UpsertRule(ctx, r.String()); err != nil {
			return err
		}
	}
	for _, r := range p.engine.ActiveRules() {
		if err := p.store.UpsertRule(ctx, r.String()); err != nil {
			return err
		}
	}
	return nil
}

// Teach forwards a structured sentence to the expert system.
func (p *Prometheus) Teach(sentence string) error {
	return p.engine.Teach(sentence)
}

// ThinkAndExplain runs inference and returns one explainable card per
// activated recommendation.
func (p *Prometheus) ThinkAndExplain(opts es.ThinkOptions) []explain.Card {
	recs := p.engine.ThinkWith(opts)
	return p.builder.BuildAll(recs, p.engine.LastTrace())
}

// Activate marks a tag active in the network.
func (p *Prometheus) Activate(t tags.Tag) bool {
	return p.network.AddActiveTag(t)
}

// SearchNetwork propagates activation with the configured strategy and
// returns the newly activated tags.
func (p *Prometheus) SearchNetwork() []tags.Tag {
	return p.network.Search(p.searcher)
}
