// Package store defines persistence for knowledge bases: asserted facts,
// rules (including ones the engine learned), and knowledge node records.
// Records are string-form tags so the engines stay decoupled from storage.
package store

import (
	"context"

	"github.com/Elsie4ever/prometheus-ai/pkg/prometheus/knn"
)

// Store is the persistence interface for knowledge bases.
type Store interface {
	Close() error

	// Facts
	UpsertFact(ctx context.Context, f FactRecord) error
	ListFacts(ctx context.Context) ([]FactRecord, error)
	DeleteFact(ctx context.Context, tag string) error

	// Rules
	UpsertRule(ctx context.Context, tag string) error
	ListRules(ctx context.Context) ([]string, error)

	// Knowledge nodes
	UpsertNode(ctx context.Context, rec knn.NodeRecord) error
	ListNodes(ctx context.Context) ([]knn.NodeRecord, error)
}

// FactRecord is a stored fact: its string form plus confidence.
type FactRecord struct {
	Tag        string
	Confidence float64
}
