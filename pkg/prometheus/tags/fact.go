package tags

import (
	"fmt"
	"strings"

	"github.com/Elsie4ever/prometheus-ai/pkg/prometheus/internalerr"
)

// Fact is a calculus predicate representing something taken as true:
// a predicate name plus ordered arguments, e.g. P(ARG1,ARG2).
//
// Confidence is metadata, not identity: two facts with the same predicate and
// arguments are the same fact regardless of confidence.
type Fact struct {
	Predicate  string
	Args       []Argument
	Confidence float64

	str string
}

// ParseFact parses "Name(arg1,arg2,...)" with confidence 1.0. There must be
// no spaces between arguments.
func ParseFact(s string) (Fact, error) {
	return ParseFactWithConfidence(s, 1.0)
}

// ParseFactWithConfidence parses "Name(arg1,arg2,...)" with an explicit
// confidence in [0,1].
func ParseFactWithConfidence(s string, confidence float64) (Fact, error) {
	open := strings.Index(s, "(")
	if open <= 0 {
		return Fact{}, fmt.Errorf("fact %q: %w", s, internalerr.ErrMalformedTag)
	}
	if !strings.HasSuffix(s, ")") {
		return Fact{}, fmt.Errorf("fact %q: %w", s, internalerr.ErrMalformedTag)
	}

	predicate := s[:open]
	inner := s[open+1 : len(s)-1]
	if strings.ContainsAny(inner, "()") {
		return Fact{}, fmt.Errorf("fact %q: %w", s, internalerr.ErrMalformedTag)
	}

	var args []Argument
	if inner != "" {
		for _, tok := range strings.Split(inner, ",") {
			arg, err := ParseArgument(tok)
			if err != nil {
				return Fact{}, fmt.Errorf("fact %q: %w", s, err)
			}
			args = append(args, arg)
		}
	}

	return NewFact(predicate, args, confidence), nil
}

// NewFact builds a fact from already-parsed arguments.
func NewFact(predicate string, args []Argument, confidence float64) Fact {
	f := Fact{Predicate: predicate, Args: args, Confidence: confidence}
	f.str = f.render()
	return f
}

func (f Fact) Kind() Kind { return KindFact }

func (f Fact) String() string {
	if f.str == "" && f.Predicate != "" {
		return f.render()
	}
	return f.str
}

func (Fact) tag() {}

func (f Fact) render() string {
	return f.Predicate + "(" + joinArguments(f.Args) + ")"
}

// Bindings maps a variable name to the concrete argument that replaces it.
type Bindings map[string]Argument

// Merge copies all pairs of other into b, later writers winning.
func (b Bindings) Merge(other Bindings) {
	for name, arg := range other {
		b[name] = arg
	}
}

// MatchResult is the outcome of unifying a fact against a pattern.
type MatchResult struct {
	Matched  bool
	Bindings Bindings
}

// MatchResult unifies the concrete fact f against pattern, typically a rule
// premise. Predicate names must agree; arguments unify positionally, with a
// wildcard on either side absorbing the rest of the comparison and a variable
// in the pattern binding to f's argument at that position. A pattern shorter
// than f matches only when its trailing argument is the wildcard; a pattern
// longer than f matches only when every extra argument is the wildcard.
func (f Fact) MatchResult(pattern Fact) MatchResult {
	result := MatchResult{Bindings: Bindings{}}

	if f.Predicate != pattern.Predicate {
		return result
	}

	// Extra trailing pattern arguments must all be wildcards.
	for i := len(f.Args); i < len(pattern.Args); i++ {
		if pattern.Args[i].Symbol != SymbolMatchAll {
			return result
		}
	}

	n := len(f.Args)
	if len(pattern.Args) < n {
		n = len(pattern.Args)
	}
	for i := 0; i < n; i++ {
		self, other := f.Args[i], pattern.Args[i]
		if self.Symbol == SymbolMatchAll || other.Symbol == SymbolMatchAll {
			result.Matched = true
			return result
		}
		if other.Symbol == SymbolVariable {
			result.Bindings[other.Name] = self
			continue
		}
		if self.Symbol == SymbolVariable {
			result.Bindings[self.Name] = other
			continue
		}
		if !self.Match(other) {
			return result
		}
	}

	// All shared positions unified; a fact longer than the pattern does not
	// match unless a wildcard absorbed the tail above.
	if len(f.Args) > len(pattern.Args) {
		return result
	}

	result.Matched = true
	return result
}

// Matches is the boolean-only form of MatchResult.
func (f Fact) Matches(pattern Fact) bool {
	return f.MatchResult(pattern).Matched
}

// Substitute returns a copy of f with every variable argument whose name is
// bound replaced by its binding. Unbound variables are left as they are.
func (f Fact) Substitute(b Bindings) Fact {
	if len(b) == 0 {
		return f
	}
	changed := false
	args := make([]Argument, len(f.Args))
	for i, arg := range f.Args {
		if arg.Symbol == SymbolVariable {
			if repl, ok := b[arg.Name]; ok {
				args[i] = repl
				changed = true
				continue
			}
		}
		args[i] = arg
	}
	if !changed {
		return f
	}
	return NewFact(f.Predicate, args, f.Confidence)
}
