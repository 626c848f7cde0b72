// Package tags defines the reasoning units of the expert system: facts,
// rules and recommendations, together with the argument grammar and the
// unification semantics used to match them.
package tags

import (
	"fmt"
	"strings"

	"github.com/Elsie4ever/prometheus-ai/pkg/prometheus/internalerr"
)

// Kind discriminates the Tag variants.
type Kind int

const (
	KindFact Kind = iota
	KindRule
	KindRecommendation
)

// Tag is the closed sum over facts, rules and recommendations. The String
// form is the canonical identity used for set membership and display;
// a fact's confidence is deliberately not part of it.
type Tag interface {
	Kind() Kind
	String() string

	tag()
}

// Recommendation is a terminal output marker, conventionally written with a
// leading "@".
type Recommendation struct {
	Name string
}

// ParseRecommendation parses an "@name" token.
func ParseRecommendation(s string) (Recommendation, error) {
	if len(s) < 2 || s[0] != '@' {
		return Recommendation{}, fmt.Errorf("recommendation %q: %w", s, internalerr.ErrMalformedTag)
	}
	return Recommendation{Name: s}, nil
}

func (r Recommendation) Kind() Kind     { return KindRecommendation }
func (r Recommendation) String() string { return r.Name }
func (Recommendation) tag()             {}

// Rule maps an ordered sequence of input tags to an ordered sequence of
// output tags. The zero Rule is the empty sentinel produced by a failed
// composition.
type Rule struct {
	Inputs  []Tag
	Outputs []Tag

	str string
}

// NewRule builds a rule from already-typed tags.
func NewRule(inputs, outputs []Tag) Rule {
	r := Rule{Inputs: inputs, Outputs: outputs}
	r.str = r.render()
	return r
}

// RuleFromStrings builds a rule from two parallel token lists, every token
// parsed as a tag of its own shape.
func RuleFromStrings(inputs, outputs []string) (Rule, error) {
	in, err := parseTagList(inputs)
	if err != nil {
		return Rule{}, err
	}
	out, err := parseTagList(outputs)
	if err != nil {
		return Rule{}, err
	}
	return NewRule(in, out), nil
}

// ParseRule parses a composite rule string: input tags and output tags joined
// by "->" or "=>", each side a non-empty comma-separated tag list (commas
// inside parentheses belong to arguments, not to the list). Zero-length sides
// are reserved for the failed-composition sentinel and never parse.
func ParseRule(s string) (Rule, error) {
	lhs, rhs, ok := splitArrow(s)
	if !ok {
		return Rule{}, fmt.Errorf("rule %q has no arrow: %w", s, internalerr.ErrMalformedTag)
	}
	inputs, outputs := splitTopLevel(lhs), splitTopLevel(rhs)
	if len(inputs) == 0 || len(outputs) == 0 {
		return Rule{}, fmt.Errorf("rule %q is missing a side: %w", s, internalerr.ErrMalformedTag)
	}
	return RuleFromStrings(inputs, outputs)
}

func (r Rule) Kind() Kind { return KindRule }

func (r Rule) String() string {
	if r.str == "" && (len(r.Inputs) > 0 || len(r.Outputs) > 0) {
		// Rule built by struct literal rather than NewRule.
		return r.render()
	}
	return r.str
}

func (Rule) tag() {}

// IsEmpty reports whether r is the empty sentinel.
func (r Rule) IsEmpty() bool {
	return len(r.Inputs) == 0 && len(r.Outputs) == 0
}

func (r Rule) render() string {
	in := make([]string, len(r.Inputs))
	for i, t := range r.Inputs {
		in[i] = t.String()
	}
	out := make([]string, len(r.Outputs))
	for i, t := range r.Outputs {
		out[i] = t.String()
	}
	return strings.Join(in, ",") + "=>" + strings.Join(out, ",")
}

// Parse turns a single tag string into its typed form: "@..." is a
// recommendation, a string containing an arrow is a rule, and a
// "Name(arg,...)" shape is a fact with confidence 1. Arrow sequences ("->",
// "=>") are reserved for rules everywhere in a tag string; a fact argument
// cannot contain one.
func Parse(s string) (Tag, error) {
	s = strings.TrimSpace(s)
	switch {
	case s == "":
		return nil, fmt.Errorf("empty tag: %w", internalerr.ErrMalformedTag)
	case s[0] == '@':
		return ParseRecommendation(s)
	case strings.Contains(s, "->") || strings.Contains(s, "=>"):
		return ParseRule(s)
	case strings.Contains(s, "("):
		return ParseFact(s)
	}
	return nil, fmt.Errorf("tag %q: %w", s, internalerr.ErrMalformedTag)
}

func parseTagList(tokens []string) ([]Tag, error) {
	out := make([]Tag, 0, len(tokens))
	for _, tok := range tokens {
		t, err := Parse(tok)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

// splitArrow splits on the first "->" or "=>" token.
func splitArrow(s string) (string, string, bool) {
	for _, arrow := range []string{"->", "=>"} {
		if i := strings.Index(s, arrow); i >= 0 {
			return s[:i], s[i+len(arrow):], true
		}
	}
	return "", "", false
}

// splitTopLevel splits a comma-separated tag list, ignoring commas nested
// inside parentheses.
func splitTopLevel(s string) []string {
	var parts []string
	depth := 0
	start := 0
	for i, r := range s {
		switch r {
		case '(':
			depth++
		case ')':
			depth--
		case ',':
			if depth == 0 {
				parts = append(parts, strings.TrimSpace(s[start:i]))
				start = i + 1
			}
		}
	}
	if tail := strings.TrimSpace(s[start:]); tail != "" {
		parts = append(parts, tail)
	}
	return parts
}
