package tags

import (
	"errors"
	"testing"

	"github.com/Elsie4ever/prometheus-ai/pkg/prometheus/internalerr"
)

func TestParse_Dispatch(t *testing.T) {
	tests := []struct {
		in   string
		kind Kind
	}{
		{"@seeDoctor", KindRecommendation},
		{"P(1,2)", KindFact},
		{"P(1)->Q(1)", KindRule},
		{"P(1)=>Q(1)", KindRule},
	}
	for _, tc := range tests {
		tag, err := Parse(tc.in)
		if err != nil {
			t.Fatalf("Parse(%q): %v", tc.in, err)
		}
		if tag.Kind() != tc.kind {
			t.Errorf("Parse(%q) kind = %v, want %v", tc.in, tag.Kind(), tc.kind)
		}
	}
}

func TestParse_Malformed(t *testing.T) {
	for _, s := range []string{"", "justaword", "@", "A(1)->", "->B(1)", "->"} {
		if _, err := Parse(s); !errors.Is(err, internalerr.ErrMalformedTag) {
			t.Errorf("Parse(%q) error = %v, want ErrMalformedTag", s, err)
		}
	}
}

func TestParseRule_Composite(t *testing.T) {
	rule, err := ParseRule("A(1,2),B(?x)->C(3),@doIt")
	if err != nil {
		t.Fatal(err)
	}
	if len(rule.Inputs) != 2 || len(rule.Outputs) != 2 {
		t.Fatalf("rule shape = %d=>%d, want 2=>2", len(rule.Inputs), len(rule.Outputs))
	}
	if rule.Inputs[0].String() != "A(1,2)" {
		t.Errorf("first input = %q (commas inside parens must not split)", rule.Inputs[0].String())
	}
	if rule.Outputs[1].Kind() != KindRecommendation {
		t.Errorf("second output kind = %v, want recommendation", rule.Outputs[1].Kind())
	}
	if rule.String() != "A(1,2),B(?x)=>C(3),@doIt" {
		t.Errorf("String() = %q", rule.String())
	}
}

func TestParseRule_NoArrow(t *testing.T) {
	if _, err := ParseRule("A(1),B(2)"); !errors.Is(err, internalerr.ErrMalformedTag) {
		t.Errorf("error = %v, want ErrMalformedTag", err)
	}
}

func TestParseRule_OneSided(t *testing.T) {
	// A rule with an empty side would fire unconditionally or compose with
	// everything; only the zero Rule sentinel may have zero-length sides.
	for _, s := range []string{"A(1)->", "->B(1)", "=>B(1)", "A(1)=>", " -> ", "A(1)-> ,"} {
		if _, err := ParseRule(s); !errors.Is(err, internalerr.ErrMalformedTag) {
			t.Errorf("ParseRule(%q) error = %v, want ErrMalformedTag", s, err)
		}
	}
}

func TestRuleFromStrings(t *testing.T) {
	rule, err := RuleFromStrings([]string{"A(?x)"}, []string{"B(?x)"})
	if err != nil {
		t.Fatal(err)
	}
	if rule.String() != "A(?x)=>B(?x)" {
		t.Errorf("String() = %q", rule.String())
	}

	if _, err := RuleFromStrings([]string{"bad"}, []string{"B(1)"}); err == nil {
		t.Error("malformed input token should fail the rule")
	}
}

func TestRule_EmptySentinel(t *testing.T) {
	var empty Rule
	if !empty.IsEmpty() {
		t.Error("zero rule should be the empty sentinel")
	}
	full, _ := ParseRule("A(1)->B(1)")
	if full.IsEmpty() {
		t.Error("parsed rule should not be empty")
	}
}

func TestRecommendation(t *testing.T) {
	rec, err := ParseRecommendation("@adjustDiet")
	if err != nil {
		t.Fatal(err)
	}
	if rec.String() != "@adjustDiet" {
		t.Errorf("String() = %q", rec.String())
	}
	if _, err := ParseRecommendation("adjustDiet"); !errors.Is(err, internalerr.ErrMalformedTag) {
		t.Errorf("missing @ should be malformed, got %v", err)
	}
}

func TestRuleIdentity_OrderSensitive(t *testing.T) {
	ab, _ := RuleFromStrings([]string{"A(1)", "B(1)"}, []string{"C(1)"})
	ba, _ := RuleFromStrings([]string{"B(1)", "A(1)"}, []string{"C(1)"})
	if ab.String() == ba.String() {
		t.Error("input order must be part of rule identity")
	}
}
