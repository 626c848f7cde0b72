package htmltext

import "testing"

func TestStrip(t *testing.T) {
	in := "<html><body><p>Animal(penguin)</p><p>Penguin(&amp;x) -> CannotFly(&amp;x)</p></body></html>"
	want := "Animal(penguin)\nPenguin(&x) -> CannotFly(&x)"
	if got := Strip(in); got != want {
		t.Errorf("Strip = %q, want %q", got, want)
	}
}

func TestStrip_InlineMarkup(t *testing.T) {
	if got := Strip("<p><b>Animal</b>(dog)</p>"); got != "Animal(dog)" {
		t.Errorf("Strip = %q, want inline markup flattened", got)
	}
}

func TestStrip_PlainText(t *testing.T) {
	if got := Strip("Animal(dog)"); got != "Animal(dog)" {
		t.Errorf("Strip = %q, want plain text unchanged", got)
	}
}

func TestSentences(t *testing.T) {
	text := "Animal(dog)\n\n  # a comment\n  Barks(dog)  \n"
	got := Sentences(text)
	if len(got) != 2 || got[0] != "Animal(dog)" || got[1] != "Barks(dog)" {
		t.Errorf("Sentences = %q, want the two tag lines", got)
	}
}

func TestSentences_Empty(t *testing.T) {
	if got := Sentences("  \n# only a comment\n"); len(got) != 0 {
		t.Errorf("Sentences = %q, want none", got)
	}
}
