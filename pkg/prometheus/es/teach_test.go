package es

import (
	"errors"
	"testing"

	"github.com/Elsie4ever/prometheus-ai/pkg/prometheus/internalerr"
)

func TestTeach_Rule(t *testing.T) {
	e := New()
	if err := e.Teach("Penguin(&x) -> SwimsWell(&x) @adjustDiet"); err != nil {
		t.Fatalf("Teach: %v", err)
	}
	ready := e.ReadyRules()
	if len(ready) != 1 {
		t.Fatalf("ready rules = %d, want 1", len(ready))
	}
	if got := ready[0].String(); got != "Penguin(&x)=>SwimsWell(&x),@adjustDiet" {
		t.Errorf("rule = %q", got)
	}
}

func TestTeach_FatArrow(t *testing.T) {
	e := New()
	if err := e.Teach("A(1) => B(1)"); err != nil {
		t.Fatalf("Teach: %v", err)
	}
	if len(e.ReadyRules()) != 1 {
		t.Errorf("ready rules = %d, want 1", len(e.ReadyRules()))
	}
}

func TestTeach_FactsAndRecommendations(t *testing.T) {
	e := New()
	if err := e.Teach("Animal(penguin) Height(penguin,2) @visitVet"); err != nil {
		t.Fatalf("Teach: %v", err)
	}
	if len(e.Facts()) != 2 {
		t.Errorf("facts = %v, want 2", e.Facts())
	}
	if len(e.Recommendations()) != 1 {
		t.Errorf("recommendations = %v, want 1", e.Recommendations())
	}
}

func TestTeach_Malformed(t *testing.T) {
	e := New()
	for _, sentence := range []string{
		"",
		"   ",
		"-> B(1)",
		"A(1) ->",
		"notatag",
		"A(1) notatag",
	} {
		err := e.Teach(sentence)
		if !errors.Is(err, internalerr.ErrMalformedTag) {
			t.Errorf("Teach(%q) error = %v, want ErrMalformedTag", sentence, err)
		}
	}
}

func TestTeach_MalformedMergesNothing(t *testing.T) {
	e := New()
	if err := e.Teach("A(1) B(1) notatag"); err == nil {
		t.Fatal("want error for malformed token")
	}
	if len(e.Facts()) != 0 {
		t.Errorf("facts after failed teach = %v, want none", e.Facts())
	}
}
