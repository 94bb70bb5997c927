package config

import (
	"os"
	"path/filepath"
	"time"
)

const defaultSystemMessage = `You are a German language tutor creating vocabulary flashcards.
The learner speaks {{.SourceLanguage}} and studies German at level {{.ProficiencyLevel}}.
The user sends one word, either German or {{.SourceLanguage}}. Determine the German word,
translate it into {{.SourceLanguage}}, classify it with a short tag such as (n), (v), (adj)
or (adv), fill in the article and plural form for nouns or the infinitive and the
Präsens, Präteritum and Perfekt forms for verbs, and write up to three example sentences
suited to level {{.ProficiencyLevel}} together with their {{.SourceLanguage}} translations.
Always answer by calling generate_word_profile.`

const defaultFrontTemplate = `<div class="word">{{Wort_DE}}</div>
<div class="class">{{Wortarten}}</div>
{{Audio_Wort}}`

const defaultBackTemplate = `{{FrontSide}}
<hr id="answer">
<div class="translation">{{Wort_SL}}</div>
{{#Artikel}}<div>{{Artikel}} {{Wort_DE}}, {{Plural}}</div>{{/Artikel}}
{{#Praesens}}<div>{{Praesens}}</div><div>{{Praeteritum}}</div><div>{{Perfekt}}</div>{{/Praesens}}
<div class="picture">{{Picture}}</div>
{{#Satz1_DE}}<div class="example">{{Satz1_DE}}<br><i>{{Satz1_SL}}</i> {{Audio_S1}}</div>{{/Satz1_DE}}
{{#Satz2_DE}}<div class="example">{{Satz2_DE}}<br><i>{{Satz2_SL}}</i> {{Audio_S2}}</div>{{/Satz2_DE}}
{{#Satz3_DE}}<div class="example">{{Satz3_DE}}<br><i>{{Satz3_SL}}</i> {{Audio_S3}}</div>{{/Satz3_DE}}`

const defaultCSS = `.card {
    font-family: arial;
    font-size: 20px;
    text-align: center;
    color: black;
    background-color: white;
}`

// Default returns the configuration used when no config file overrides a key.
func Default() *Config {
	home, _ := os.UserHomeDir()

	return &Config{
		TextProvider: ProviderOpenAI,
		Languages: LanguagesConfig{
			SupportedSourceLanguages:   []string{"English", "Spanish", "French", "Italian", "Portuguese", "Turkish"},
			SupportedProficiencyLevels: []string{"A1", "A2", "B1", "B2", "C1", "C2"},
			Source:                     "English",
			Level:                      "A1",
		},
		OpenAI: OpenAIConfig{
			TextModel:  "gpt-4o-mini",
			ImageModel: "dall-e-2",
			ImageSize:  "512x512",
			TTSModel:   "tts-1",
			Voices:     []string{"alloy", "echo", "fable", "onyx", "nova", "shimmer"},
		},
		Gemini: GeminiConfig{
			Model: "gemini-2.0-flash",
		},
		Anki: AnkiConfig{
			Enabled:       true,
			ConnectURL:    "http://localhost:8765",
			DeckName:      "German Vocabulary",
			ModelName:     "Wortkarte",
			Tags:          []string{"german-learning", "auto-added"},
			CardName:      "Deutsch",
			FrontTemplate: defaultFrontTemplate,
			BackTemplate:  defaultBackTemplate,
			CSS:           defaultCSS,
			MaxFailures:   3,
			OpenTimeout:   30 * time.Second,
		},
		Files: FilesConfig{
			Directory: filepath.Join(home, ".local", "state", "wortkarte", "files"),
		},
		Prompt: PromptConfig{
			SystemMessage: defaultSystemMessage,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}
