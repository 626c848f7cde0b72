package tags

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/Elsie4ever/prometheus-ai/pkg/prometheus/internalerr"
)

// Symbol classifies an argument. It is determined once from the source token
// and never changes afterwards.
type Symbol int

const (
	// SymbolLiteral is a plain string argument compared by equality.
	SymbolLiteral Symbol = iota
	// SymbolNumeric is a number compared under a relational operator.
	SymbolNumeric
	// SymbolMatchAll is the wildcard marker ("?" or "*") absorbing any value.
	SymbolMatchAll
	// SymbolVariable is a named binder ("?name" or "&name") that matches any
	// value and records a binding for it.
	SymbolVariable
)

// Relation is the comparison operator carried by a numeric argument.
type Relation int

const (
	RelEQ Relation = iota // = (default)
	RelGT                 // >
	RelLT                 // <
	RelNEQ                // !
)

var numericPattern = regexp.MustCompile(`^-?\d+(\.\d+)?$`)

// Argument is a single atomic value inside a predicate.
type Argument struct {
	// Name is the literal text for literals, or the sigil-stripped variable
	// name for variables.
	Name   string
	Symbol Symbol
	// Value and Rel are meaningful for numeric arguments only.
	Value float64
	Rel   Relation

	token string
}

// ParseArgument classifies a single argument token.
//
// A token whose trailing part (after stripping a leading relational operator
// from =><!) parses as a number is numeric; a bare "?" or "*" is the wildcard;
// "?name" and "&name" are binding variables; anything else is a literal.
func ParseArgument(token string) (Argument, error) {
	if token == "" {
		return Argument{}, fmt.Errorf("empty argument token: %w", internalerr.ErrMalformedTag)
	}

	rel, rest := splitRelation(token)
	if numericPattern.MatchString(rest) {
		val, err := strconv.ParseFloat(rest, 64)
		if err != nil {
			return Argument{}, fmt.Errorf("argument %q: %w", token, internalerr.ErrMalformedTag)
		}
		return Argument{Name: rest, Symbol: SymbolNumeric, Value: val, Rel: rel, token: token}, nil
	}

	if token == "?" || token == "*" {
		return Argument{Name: token, Symbol: SymbolMatchAll, token: token}, nil
	}

	if token[0] == '?' || token[0] == '&' {
		name := token[1:]
		if name == "" {
			return Argument{}, fmt.Errorf("variable %q has no name: %w", token, internalerr.ErrMalformedTag)
		}
		return Argument{Name: name, Symbol: SymbolVariable, token: token}, nil
	}

	return Argument{Name: token, Symbol: SymbolLiteral, token: token}, nil
}

// splitRelation strips a single leading relational operator from a token.
func splitRelation(token string) (Relation, string) {
	if len(token) < 2 {
		return RelEQ, token
	}
	switch token[0] {
	case '>':
		return RelGT, token[1:]
	case '<':
		return RelLT, token[1:]
	case '!':
		return RelNEQ, token[1:]
	case '=':
		return RelEQ, token[1:]
	}
	return RelEQ, token
}

// String returns the source form of the argument.
func (a Argument) String() string {
	return a.token
}

// Match reports whether a and b are compatible. Wildcards and variables
// absorb anything; numeric pairs compare under the pattern side's operator;
// literals compare by equality.
func (a Argument) Match(b Argument) bool {
	switch {
	case a.Symbol == SymbolMatchAll || b.Symbol == SymbolMatchAll:
		return true
	case a.Symbol == SymbolVariable || b.Symbol == SymbolVariable:
		return true
	case a.Symbol == SymbolNumeric && b.Symbol == SymbolNumeric:
		return matchNumeric(a, b)
	case a.Symbol == SymbolNumeric || b.Symbol == SymbolNumeric:
		return false
	default:
		return a.Name == b.Name
	}
}

// matchNumeric evaluates the relational operator of the pattern side against
// the concrete side. When both sides default to equality it is a plain
// value comparison.
func matchNumeric(a, b Argument) bool {
	if b.Rel != RelEQ {
		return compare(a.Value, b.Rel, b.Value)
	}
	if a.Rel != RelEQ {
		return compare(b.Value, a.Rel, a.Value)
	}
	return a.Value == b.Value
}

func compare(lhs float64, rel Relation, rhs float64) bool {
	switch rel {
	case RelGT:
		return lhs > rhs
	case RelLT:
		return lhs < rhs
	case RelNEQ:
		return lhs != rhs
	default:
		return lhs == rhs
	}
}

func joinArguments(args []Argument) string {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = a.String()
	}
	return strings.Join(parts, ",")
}
