package es

import (
	"fmt"
	"strings"

	"github.com/Elsie4ever/prometheus-ai/pkg/prometheus/internalerr"
	"github.com/Elsie4ever/prometheus-ai/pkg/prometheus/tags"
)

// Teach parses a structured sentence and merges the result into the working
// sets. A sentence is whitespace-separated tag tokens; a lone "->" or "=>"
// token splits rule inputs from rule outputs:
//
//	Penguin(&x) -> SwimsWell(&x) @adjustDiet
//	Animal(penguin)
//	@visitVet
//
// With an arrow the sentence teaches one rule; without one, every token is
// taught as a fact or recommendation of its own. Malformed tokens fail the
// whole sentence and nothing is merged.
func (e *Engine) Teach(sentence string) error {
	fields := strings.Fields(sentence)
	if len(fields) == 0 {
		return fmt.Errorf("empty sentence: %w", internalerr.ErrMalformedTag)
	}

	arrow := -1
	for i, field := range fields {
		if field == "->" || field == "=>" {
			arrow = i
			break
		}
	}

	if arrow < 0 {
		parsed := make([]tags.Tag, 0, len(fields))
		for _, field := range fields {
			t, err := tags.Parse(field)
			if err != nil {
				return fmt.Errorf("teach %q: %w", sentence, err)
			}
			parsed = append(parsed, t)
		}
		e.AddTags(parsed)
		return nil
	}

	if arrow == 0 || arrow == len(fields)-1 {
		return fmt.Errorf("teach %q: rule side missing: %w", sentence, internalerr.ErrMalformedTag)
	}

	rule, err := tags.RuleFromStrings(fields[:arrow], fields[arrow+1:])
	if err != nil {
		return fmt.Errorf("teach %q: %w", sentence, err)
	}
	e.AddReadyRule(rule)
	return nil
}
