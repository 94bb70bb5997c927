package processor

import (
	"fmt"
	"io"
	"strings"

	"codeberg.org/snonux/wortkarte/internal/profile"
)

// PrintProfile writes the word profile the way the flashcard shows it.
func PrintProfile(w io.Writer, p *profile.WordProfile, sourceLanguage string) {
	fmt.Fprintf(w, "\n  German Word: %s\n", p.GermanWord)
	fmt.Fprintf(w, "  %s Translation: %s\n", sourceLanguage, p.Translation)
	fmt.Fprintf(w, "  Classification: %s\n", p.Classification)

	switch p.Classification.Kind() {
	case profile.KindNoun:
		if n := p.Noun(); n != nil {
			fmt.Fprintf(w, "  Article: %s\n", n.Article)
			fmt.Fprintf(w, "  Plural: %s\n", n.PluralForm)
		}
	case profile.KindVerb:
		if v := p.Verb(); v != nil {
			fmt.Fprintf(w, "  Infinitive: %s\n", v.Infinitive)
			fmt.Fprintf(w, "  Präsens: %s\n", strings.Join(v.Present, ", "))
			fmt.Fprintf(w, "  Präteritum: %s\n", strings.Join(v.Past, ", "))
			fmt.Fprintf(w, "  Perfekt: %s\n", strings.Join(v.Perfect, ", "))
		}
	case profile.KindOther:
	}

	if len(p.Examples) == 0 {
		return
	}
	fmt.Fprintf(w, "\n  Example Sentences:\n")
	for i, ex := range p.Examples {
		fmt.Fprintf(w, "  %d. %s\n", i+1, ex.German)
		fmt.Fprintf(w, "     %s\n", ex.Translation)
	}
	fmt.Fprintln(w)
}
