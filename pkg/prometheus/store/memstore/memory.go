// Package memstore is an in-memory implementation of store.Store for tests
// and short-lived sessions.
package memstore

import (
	"context"
	"sort"
	"sync"

	"github.com/Elsie4ever/prometheus-ai/pkg/prometheus/knn"
	"github.com/Elsie4ever/prometheus-ai/pkg/prometheus/store"
)

// Store is an in-memory implementation of store.Store.
type Store struct {
	mu    sync.RWMutex
	facts map[string]store.FactRecord
	rules map[string]struct{}
	nodes map[string]knn.NodeRecord
}

// New creates a new in-memory store.
func New() *Store {
	return &Store{
		facts: make(map[string]store.FactRecord),
		rules: make(map[string]struct{}),
		nodes: make(map[string]knn.NodeRecord),
	}
}

// Close implements store.Store.
func (s *Store) Close() error { return nil }

// UpsertFact inserts or updates a fact record, keyed by its tag string.
func (s *Store) UpsertFact(ctx context.Context, f store.FactRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.facts[f.Tag] = f
	return nil
}

// ListFacts returns every fact record, ordered by tag.
func (s *Store) ListFacts(ctx context.Context) ([]store.FactRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]store.FactRecord, 0, len(s.facts))
	for _, f := range s.facts {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Tag < out[j].Tag })
	return out, nil
}

// DeleteFact removes a fact record by tag.
func (s *Store) DeleteFact(ctx context.Context, tag string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.facts, tag)
	return nil
}

// UpsertRule inserts a rule string.
func (s *Store) UpsertRule(ctx context.Context, tag string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rules[tag] = struct{}{}
	return nil
}

// ListRules returns every rule string, ordered.
func (s *Store) ListRules(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, 0, len(s.rules))
	for r := range s.rules {
		out = append(out, r)
	}
	sort.Strings(out)
	return out, nil
}

// UpsertNode inserts or updates a node record, keyed by its input tag.
func (s *Store) UpsertNode(ctx context.Context, rec knn.NodeRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nodes[rec.Input] = copyRecord(rec)
	return nil
}

// ListNodes returns every node record, ordered by input tag.
func (s *Store) ListNodes(ctx context.Context) ([]knn.NodeRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]knn.NodeRecord, 0, len(s.nodes))
	for _, rec := range s.nodes {
		out = append(out, copyRecord(rec))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Input < out[j].Input })
	return out, nil
}

func copyRecord(rec knn.NodeRecord) knn.NodeRecord {
	out := rec
	out.Outputs = make([]knn.WeightedTag, len(rec.Outputs))
	copy(out.Outputs, rec.Outputs)
	return out
}
