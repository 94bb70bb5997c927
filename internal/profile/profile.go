package profile

import (
	"errors"
	"fmt"
	"strings"
)

// MaxExamples is the number of example sentences a flashcard has room for.
const MaxExamples = 3

// Classification is the short part-of-speech tag returned by the text model.
type Classification string

const (
	Noun Classification = "(n)"
	Verb Classification = "(v)"
)

// Kind groups classifications into the variants that carry grammar.
type Kind int

const (
	KindOther Kind = iota
	KindNoun
	KindVerb
)

func (c Classification) Kind() Kind {
	switch Classification(strings.TrimSpace(string(c))) {
	case Noun:
		return KindNoun
	case Verb:
		return KindVerb
	default:
		return KindOther
	}
}

// Grammar is the classification specific part of a profile. It is either
// *NounInfo or *VerbInfo.
type Grammar interface {
	isGrammar()
}

type NounInfo struct {
	Article    string
	PluralForm string
}

type VerbInfo struct {
	Infinitive string
	Present    []string
	Past       []string
	Perfect    []string
}

func (*NounInfo) isGrammar() {}
func (*VerbInfo) isGrammar() {}

// Example is one example sentence in German with its translation.
type Example struct {
	German      string
	Translation string
}

// WordProfile is everything the text model knows about one German word.
// GermanWord is the identity used for the JSON file, media filenames and
// the flashcard lookup.
type WordProfile struct {
	GermanWord     string
	Translation    string
	Classification Classification
	// Grammar is nil for classifications other than noun and verb, and may
	// be nil for a noun or verb whose details the model left out.
	Grammar  Grammar
	Examples []Example
}

// Noun returns the noun details, or nil when the profile is not a noun or
// the details are missing.
func (p *WordProfile) Noun() *NounInfo {
	if p.Classification.Kind() != KindNoun {
		return nil
	}
	n, _ := p.Grammar.(*NounInfo)
	return n
}

// Verb returns the verb details, or nil when the profile is not a verb or
// the details are missing.
func (p *WordProfile) Verb() *VerbInfo {
	if p.Classification.Kind() != KindVerb {
		return nil
	}
	v, _ := p.Grammar.(*VerbInfo)
	return v
}

var (
	ErrEmptyWord       = errors.New("profile has no german_word")
	ErrTooManyExamples = fmt.Errorf("profile has more than %d examples", MaxExamples)
	ErrGrammarMismatch = errors.New("grammar does not match classification")
)

// Validate checks the invariants every persisted profile satisfies.
func (p *WordProfile) Validate() error {
	if strings.TrimSpace(p.GermanWord) == "" {
		return ErrEmptyWord
	}
	if len(p.Examples) > MaxExamples {
		return fmt.Errorf("%w: got %d", ErrTooManyExamples, len(p.Examples))
	}

	switch p.Grammar.(type) {
	case nil:
	case *NounInfo:
		if p.Classification.Kind() != KindNoun {
			return fmt.Errorf("%w: noun details on %s", ErrGrammarMismatch, p.Classification)
		}
	case *VerbInfo:
		if p.Classification.Kind() != KindVerb {
			return fmt.Errorf("%w: verb details on %s", ErrGrammarMismatch, p.Classification)
		}
	}
	return nil
}
