// Package config loads knowledge bases from disk into typed form: YAML files
// for the expert system's facts, rules and teach-sentences, and flat
// token-record files for knowledge nodes.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Elsie4ever/prometheus-ai/pkg/prometheus/internalerr"
	"github.com/Elsie4ever/prometheus-ai/pkg/prometheus/tags"
)

// KnowledgeBase is the YAML form of an expert-system knowledge file.
type KnowledgeBase struct {
	Facts     []FactEntry `yaml:"facts"`
	Rules     []string    `yaml:"rules"`
	Sentences []string    `yaml:"sentences"`
}

// FactEntry is one asserted fact. An omitted confidence means full
// confidence; the YAML form cannot express an explicit zero.
type FactEntry struct {
	Tag        string  `yaml:"tag"`
	Confidence float64 `yaml:"confidence"`
}

// LoadKnowledgeBase loads a YAML knowledge base from a file.
func LoadKnowledgeBase(path string) (*KnowledgeBase, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var kb KnowledgeBase
	if err := yaml.Unmarshal(data, &kb); err != nil {
		return nil, fmt.Errorf("%s: %v: %w", path, err, internalerr.ErrInvalidConfig)
	}

	return &kb, nil
}

// TypedFacts parses the fact entries into typed facts.
func (kb *KnowledgeBase) TypedFacts() ([]tags.Fact, error) {
	out := make([]tags.Fact, 0, len(kb.Facts))
	for _, entry := range kb.Facts {
		confidence := entry.Confidence
		if confidence == 0 {
			confidence = 1.0
		}
		f, err := tags.ParseFactWithConfidence(entry.Tag, confidence)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, nil
}

// TypedRules parses the rule strings into typed rules.
func (kb *KnowledgeBase) TypedRules() ([]tags.Rule, error) {
	out := make([]tags.Rule, 0, len(kb.Rules))
	for _, s := range kb.Rules {
		r, err := tags.ParseRule(s)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}
