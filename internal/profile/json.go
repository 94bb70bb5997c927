package profile

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// DecodeError reports a structured payload that does not have the shape of
// a word profile.
type DecodeError struct {
	Payload string
	Err     error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("malformed word profile: %v", e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

type wireProfile struct {
	GermanWord     string        `json:"german_word"`
	Translation    string        `json:"source_language_translation"`
	Classification string        `json:"classification"`
	Grammar        *wireGrammar  `json:"additional_grammatical_info,omitempty"`
	Examples       []wireExample `json:"examples"`
}

type wireGrammar struct {
	Noun *wireNoun `json:"noun,omitempty"`
	Verb *wireVerb `json:"verb,omitempty"`
}

type wireNoun struct {
	Article    string `json:"article"`
	PluralForm string `json:"plural_form"`
}

type wireVerb struct {
	Infinitive  string   `json:"infinitive"`
	Praesens    []string `json:"praesens"`
	Praeteritum []string `json:"praeteritum"`
	Perfekt     []string `json:"perfekt"`
}

type wireExample struct {
	German      string `json:"german_example"`
	Translation string `json:"source_example_translation"`
}

// MarshalJSON writes the profile in the same shape the text model returns.
// Only the grammar block matching the classification is written.
func (p WordProfile) MarshalJSON() ([]byte, error) {
	w := wireProfile{
		GermanWord:     p.GermanWord,
		Translation:    p.Translation,
		Classification: string(p.Classification),
		Examples:       make([]wireExample, 0, len(p.Examples)),
	}

	switch g := p.Grammar.(type) {
	case *NounInfo:
		w.Grammar = &wireGrammar{Noun: &wireNoun{Article: g.Article, PluralForm: g.PluralForm}}
	case *VerbInfo:
		w.Grammar = &wireGrammar{Verb: &wireVerb{
			Infinitive:  g.Infinitive,
			Praesens:    nonNil(g.Present),
			Praeteritum: nonNil(g.Past),
			Perfekt:     nonNil(g.Perfect),
		}}
	}

	for _, ex := range p.Examples {
		w.Examples = append(w.Examples, wireExample(ex))
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(w); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// UnmarshalJSON reads the wire shape. The grammar block that does not match
// the classification is ignored.
func (p *WordProfile) UnmarshalJSON(data []byte) error {
	var w wireProfile
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	*p = WordProfile{
		GermanWord:     w.GermanWord,
		Translation:    w.Translation,
		Classification: Classification(w.Classification),
	}

	if w.Grammar != nil {
		switch p.Classification.Kind() {
		case KindNoun:
			if n := w.Grammar.Noun; n != nil {
				p.Grammar = &NounInfo{Article: n.Article, PluralForm: n.PluralForm}
			}
		case KindVerb:
			if v := w.Grammar.Verb; v != nil {
				p.Grammar = &VerbInfo{
					Infinitive: v.Infinitive,
					Present:    v.Praesens,
					Past:       v.Praeteritum,
					Perfect:    v.Perfekt,
				}
			}
		case KindOther:
		}
	}

	for _, ex := range w.Examples {
		p.Examples = append(p.Examples, Example(ex))
	}
	return nil
}

// Decode parses and validates a structured payload from the text model.
// Any failure is a *DecodeError.
func Decode(payload []byte) (*WordProfile, error) {
	var p WordProfile
	if err := json.Unmarshal(payload, &p); err != nil {
		return nil, &DecodeError{Payload: string(payload), Err: err}
	}
	if err := p.Validate(); err != nil {
		return nil, &DecodeError{Payload: string(payload), Err: err}
	}
	return &p, nil
}

// Encode renders the profile as indented UTF-8 JSON without HTML escaping,
// so umlauts and quotes stay readable on disk.
func Encode(p *WordProfile) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(p); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
