// Package es implements the forward-chaining expert system: working sets of
// ready and active rules, known facts and recommendations, inference cycles
// driven to quiescence, and resolution-style rule synthesis.
package es

import (
	"sort"

	"github.com/Elsie4ever/prometheus-ai/pkg/prometheus/tags"
)

// Engine owns the expert system's working sets. It is not safe for concurrent
// use; callers embedding it in a concurrent program must serialize access to a
// given Engine themselves.
type Engine struct {
	ready  map[string]tags.Rule
	active map[string]tags.Rule
	facts  map[string]tags.Fact
	recs   map[string]tags.Recommendation

	trace []CycleTrace
}

// New creates an empty engine.
func New() *Engine {
	return &Engine{
		ready:  make(map[string]tags.Rule),
		active: make(map[string]tags.Rule),
		facts:  make(map[string]tags.Fact),
		recs:   make(map[string]tags.Recommendation),
	}
}

// Reset clears every working set.
func (e *Engine) Reset() {
	e.ready = make(map[string]tags.Rule)
	e.active = make(map[string]tags.Rule)
	e.facts = make(map[string]tags.Fact)
	e.recs = make(map[string]tags.Recommendation)
	e.trace = nil
}

// DeactivateRules moves every active rule back into the ready set so it can
// fire again.
func (e *Engine) DeactivateRules() {
	for key, rule := range e.active {
		e.ready[key] = rule
	}
	e.active = make(map[string]tags.Rule)
}

// AddTag routes a tag to the working set of its variant and reports whether
// the set changed.
func (e *Engine) AddTag(t tags.Tag) bool {
	switch v := t.(type) {
	case tags.Fact:
		return e.AddFact(v)
	case tags.Rule:
		return e.AddReadyRule(v)
	case tags.Recommendation:
		return e.AddRecommendation(v)
	}
	return false
}

// AddTags adds every tag, reporting whether all of them were new.
func (e *Engine) AddTags(ts []tags.Tag) bool {
	allAdded := true
	for _, t := range ts {
		if !e.AddTag(t) {
			allAdded = false
		}
	}
	return allAdded
}

// AddFact inserts a fact, reporting whether it was new. Identity ignores
// confidence, so re-adding a structurally equal fact with a different
// confidence returns false and keeps the original.
func (e *Engine) AddFact(f tags.Fact) bool {
	key := f.String()
	if _, ok := e.facts[key]; ok {
		return false
	}
	e.facts[key] = f
	return true
}

// RemoveFact removes a fact, reporting whether it was present.
func (e *Engine) RemoveFact(f tags.Fact) bool {
	key := f.String()
	if _, ok := e.facts[key]; !ok {
		return false
	}
	delete(e.facts, key)
	return true
}

// AddReadyRule inserts a rule into the ready set, reporting whether it was new.
func (e *Engine) AddReadyRule(r tags.Rule) bool {
	key := r.String()
	if _, ok := e.ready[key]; ok {
		return false
	}
	e.ready[key] = r
	return true
}

// RemoveReadyRule removes a rule from the ready set, reporting whether it was
// present.
func (e *Engine) RemoveReadyRule(r tags.Rule) bool {
	key := r.String()
	if _, ok := e.ready[key]; !ok {
		return false
	}
	delete(e.ready, key)
	return true
}

// AddRecommendation inserts a recommendation, reporting whether it was new.
func (e *Engine) AddRecommendation(r tags.Recommendation) bool {
	key := r.String()
	if _, ok := e.recs[key]; ok {
		return false
	}
	e.recs[key] = r
	return true
}

// ReadyRules returns a copy of the ready rule set, ordered by string form.
func (e *Engine) ReadyRules() []tags.Rule {
	return sortedRules(e.ready)
}

// ActiveRules returns a copy of the active rule set, ordered by string form.
func (e *Engine) ActiveRules() []tags.Rule {
	return sortedRules(e.active)
}

// Facts returns a copy of the fact set, ordered by string form.
func (e *Engine) Facts() []tags.Fact {
	out := make([]tags.Fact, 0, len(e.facts))
	for _, f := range e.facts {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].String() < out[j].String() })
	return out
}

// Recommendations returns a copy of the recommendation set, ordered by string
// form.
func (e *Engine) Recommendations() []tags.Recommendation {
	out := make([]tags.Recommendation, 0, len(e.recs))
	for _, r := range e.recs {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].String() < out[j].String() })
	return out
}

// factsContain reports whether any known fact matches the pattern. The
// variable bindings of every matching fact merge into binds, later matches
// winning; iteration is ordered so the outcome is deterministic.
func (e *Engine) factsContain(pattern tags.Fact, binds tags.Bindings) bool {
	matched := false
	for _, f := range e.Facts() {
		res := f.MatchResult(pattern)
		if !res.Matched {
			continue
		}
		matched = true
		if binds != nil {
			binds.Merge(res.Bindings)
		}
	}
	return matched
}

func sortedRules(set map[string]tags.Rule) []tags.Rule {
	out := make([]tags.Rule, 0, len(set))
	for _, r := range set {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].String() < out[j].String() })
	return out
}
