package es

import (
	"github.com/Elsie4ever/prometheus-ai/pkg/prometheus/tags"
)

// Rest lets the engine synthesize new rules from the ones it already has.
// Each cycle runs one pairwise composition pass over the previous cycle's
// output (the first over the current ready set); everything generated across
// all cycles merges back into the ready set. The cycle count caps the cost of
// the quadratic sweep.
func (e *Engine) Rest(numberOfCycles int) {
	input := e.ReadyRules()
	merged := make(map[string]tags.Rule)

	for i := 0; i < numberOfCycles; i++ {
		generated := PairwiseCompose(input)
		if len(generated) == 0 {
			break
		}
		for _, r := range generated {
			merged[r.String()] = r
		}
		input = generated
	}

	for _, r := range merged {
		e.AddReadyRule(r)
	}
}

// PairwiseCompose runs a single resolution pass: every ordered pair of rules,
// self-pairs included, is composed, and the successful compositions are
// returned ordered by string form with duplicates removed.
func PairwiseCompose(rules []tags.Rule) []tags.Rule {
	out := make(map[string]tags.Rule)
	for _, a := range rules {
		for _, b := range rules {
			composed := compose(a, b)
			if composed.IsEmpty() {
				continue
			}
			out[composed.String()] = composed
		}
	}
	return sortedRules(out)
}

// compose derives "a.Inputs imply b.Outputs" when every output of a satisfies
// some premise of b, i.e. a's conclusions fully establish b's conditions.
// Any output of a left unmatched yields the empty sentinel instead.
func compose(a, b tags.Rule) tags.Rule {
	for _, out := range a.Outputs {
		outFact, ok := out.(tags.Fact)
		if !ok {
			return tags.Rule{}
		}
		matched := false
		for _, in := range b.Inputs {
			premise, isFact := in.(tags.Fact)
			if !isFact {
				continue
			}
			if premise.Matches(outFact) {
				matched = true
				break
			}
		}
		if !matched {
			return tags.Rule{}
		}
	}
	return tags.NewRule(a.Inputs, b.Outputs)
}
