package es

import (
	"github.com/Elsie4ever/prometheus-ai/pkg/prometheus/tags"
)

// CycleTrace records what one inference cycle contributed.
type CycleTrace struct {
	Cycle     int
	Fired     []tags.Rule
	Activated []tags.Tag
}

// ThinkOptions controls a reasoning run.
type ThinkOptions struct {
	// MaxCycles caps the number of inference cycles. Zero or negative means
	// run to natural quiescence; a pathologically self-sustaining rule set can
	// then loop indefinitely, so a positive cap is the safe default for
	// untrusted rules.
	MaxCycles int

	// GenerateRule, when set, synthesizes a proven rule after the run: the
	// facts present at the start imply the facts the run derived. The rule
	// joins the ready set.
	GenerateRule bool
}

// Think runs inference cycles until a cycle derives nothing new and returns
// every recommendation activated along the way.
func (e *Engine) Think() []tags.Recommendation {
	return e.ThinkWith(ThinkOptions{})
}

// ThinkCycles runs at most numberOfCycles inference cycles. A rule activated
// in one cycle cannot cascade until the next, so capping cycles caps the
// depth of derivation.
func (e *Engine) ThinkCycles(numberOfCycles int) []tags.Recommendation {
	return e.ThinkWith(ThinkOptions{MaxCycles: numberOfCycles})
}

// ThinkWith runs inference with explicit options.
func (e *Engine) ThinkWith(opts ThinkOptions) []tags.Recommendation {
	e.trace = nil

	var startFacts []tags.Fact
	if opts.GenerateRule {
		startFacts = e.Facts()
	}

	var all []tags.Tag
	cycle := 0
	for {
		if opts.MaxCycles > 0 && cycle >= opts.MaxCycles {
			break
		}
		activated, fired := e.thinkCycle()
		if len(activated) == 0 {
			break
		}
		cycle++
		e.trace = append(e.trace, CycleTrace{Cycle: cycle, Fired: fired, Activated: activated})
		all = append(all, activated...)
	}

	if opts.GenerateRule {
		e.generateProvenRule(startFacts, all)
	}

	var recs []tags.Recommendation
	for _, t := range all {
		if r, ok := t.(tags.Recommendation); ok {
			recs = append(recs, r)
		}
	}
	return recs
}

// LastTrace returns the per-cycle trace of the most recent think run.
func (e *Engine) LastTrace() []CycleTrace {
	out := make([]CycleTrace, len(e.trace))
	copy(out, e.trace)
	return out
}

// thinkCycle runs one pass: match every ready rule's fact premises against the
// known facts, then activate the rules whose premises all matched. Selection
// happens over a snapshot of the ready set, so a rule activated here cannot
// cascade before the next cycle. The binding context is allocated fresh per
// cycle; bindings never leak across cycles or runs.
func (e *Engine) thinkCycle() ([]tags.Tag, []tags.Rule) {
	binds := tags.Bindings{}

	var pending []tags.Rule
	for _, rule := range e.ReadyRules() {
		shouldActivate := true
		for _, in := range rule.Inputs {
			premise, ok := in.(tags.Fact)
			if !ok {
				continue
			}
			if !e.factsContain(premise, binds) {
				shouldActivate = false
				break
			}
		}
		if shouldActivate {
			pending = append(pending, rule)
		}
	}

	var activated []tags.Tag
	for _, rule := range pending {
		delete(e.ready, rule.String())
		e.active[rule.String()] = rule

		for _, out := range rule.Outputs {
			switch t := out.(type) {
			case tags.Fact:
				derived := t.Substitute(binds)
				if !e.factsContain(derived, binds) {
					e.facts[derived.String()] = derived
					activated = append(activated, derived)
				}
			case tags.Recommendation:
				if e.AddRecommendation(t) {
					activated = append(activated, t)
				}
			case tags.Rule:
				// A derived rule joins the ready set for later cycles but is
				// not itself an activated tag.
				if _, isActive := e.active[t.String()]; !isActive {
					e.AddReadyRule(t)
				}
			}
		}
	}

	return activated, pending
}

// generateProvenRule records a think run as a single rule: the facts the run
// started from imply the facts it derived.
func (e *Engine) generateProvenRule(startFacts []tags.Fact, activated []tags.Tag) {
	if len(startFacts) == 0 {
		return
	}
	var outputs []tags.Tag
	for _, t := range activated {
		if _, ok := t.(tags.Fact); ok {
			outputs = append(outputs, t)
		}
	}
	if len(outputs) == 0 {
		return
	}
	inputs := make([]tags.Tag, len(startFacts))
	for i, f := range startFacts {
		inputs[i] = f
	}
	proven := tags.NewRule(inputs, outputs)
	if _, isActive := e.active[proven.String()]; isActive {
		return
	}
	e.AddReadyRule(proven)
}
