package profile

import (
	"encoding/json"
	"fmt"
	"os"
)

// FunctionName is the function the text model is forced to call.
const FunctionName = "generate_word_profile"

// FunctionDescription describes FunctionName to the text model.
const FunctionDescription = "Generates a word profile with translations and examples."

var defaultSchema = json.RawMessage(`{
  "type": "object",
  "properties": {
    "german_word": {
      "type": "string",
      "description": "The word in German, nouns capitalised and without article."
    },
    "source_language_translation": {
      "type": "string",
      "description": "Translation of the German word into the source language."
    },
    "classification": {
      "type": "string",
      "description": "Part of speech tag: (n) noun, (v) verb, (adj) adjective, (adv) adverb, (prep) preposition, (konj) conjunction, (pron) pronoun."
    },
    "additional_grammatical_info": {
      "type": "object",
      "properties": {
        "noun": {
          "type": "object",
          "properties": {
            "article": {"type": "string", "description": "der, die or das"},
            "plural_form": {"type": "string", "description": "Plural with article, e.g. die Häuser"}
          },
          "required": ["article", "plural_form"]
        },
        "verb": {
          "type": "object",
          "properties": {
            "infinitive": {"type": "string"},
            "praesens": {"type": "array", "items": {"type": "string"}, "description": "Präsens for ich, du, er/sie/es, wir, ihr, sie/Sie"},
            "praeteritum": {"type": "array", "items": {"type": "string"}, "description": "Präteritum for ich, du, er/sie/es, wir, ihr, sie/Sie"},
            "perfekt": {"type": "array", "items": {"type": "string"}, "description": "Perfekt for ich, du, er/sie/es, wir, ihr, sie/Sie"}
          },
          "required": ["infinitive", "praesens", "praeteritum", "perfekt"]
        }
      }
    },
    "examples": {
      "type": "array",
      "maxItems": 3,
      "items": {
        "type": "object",
        "properties": {
          "german_example": {"type": "string"},
          "source_example_translation": {"type": "string"}
        },
        "required": ["german_example", "source_example_translation"]
      }
    }
  },
  "required": ["german_word", "source_language_translation", "classification", "examples"]
}`)

// DefaultSchema returns the built-in JSON schema of the profile function.
func DefaultSchema() json.RawMessage {
	return defaultSchema
}

// LoadSchema reads a JSON schema from path, falling back to the built-in
// schema when path is empty.
func LoadSchema(path string) (json.RawMessage, error) {
	if path == "" {
		return DefaultSchema(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read profile schema: %w", err)
	}
	if !json.Valid(data) {
		return nil, fmt.Errorf("profile schema %s is not valid JSON", path)
	}
	return json.RawMessage(data), nil
}
