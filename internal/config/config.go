package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/spf13/viper"
)

// Text generation backends.
const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

// ErrMissingCredential is returned by Validate when an API key needed for the
// configured run is absent.
var ErrMissingCredential = errors.New("missing API credential")

// Config is the complete runtime configuration. It is built once at startup
// and passed explicitly into every component constructor.
type Config struct {
	TextProvider string          `mapstructure:"text_provider" validate:"oneof=openai gemini"`
	Languages    LanguagesConfig `mapstructure:"languages"`
	OpenAI       OpenAIConfig    `mapstructure:"openai"`
	Gemini       GeminiConfig    `mapstructure:"gemini"`
	Anki         AnkiConfig      `mapstructure:"anki"`
	Files        FilesConfig     `mapstructure:"files"`
	Prompt       PromptConfig    `mapstructure:"prompt"`
	Profile      ProfileConfig   `mapstructure:"profile"`
	Assets       AssetsConfig    `mapstructure:"assets"`
	Log          LogConfig       `mapstructure:"log"`
}

type LanguagesConfig struct {
	SupportedSourceLanguages   []string `mapstructure:"supported_source_languages" validate:"min=1,dive,required"`
	SupportedProficiencyLevels []string `mapstructure:"supported_proficiency_levels" validate:"min=1,dive,required"`
	Source                     string   `mapstructure:"source" validate:"required"`
	Level                      string   `mapstructure:"level" validate:"required"`
}

type OpenAIConfig struct {
	APIKey     string   `mapstructure:"api_key"`
	BaseURL    string   `mapstructure:"base_url" validate:"omitempty,url"`
	TextModel  string   `mapstructure:"text_model" validate:"required"`
	ImageModel string   `mapstructure:"image_model" validate:"required"`
	ImageSize  string   `mapstructure:"image_size" validate:"required"`
	TTSModel   string   `mapstructure:"tts_model" validate:"required"`
	Voice      string   `mapstructure:"voice"`
	Voices     []string `mapstructure:"voices" validate:"min=1,dive,required"`
}

type GeminiConfig struct {
	APIKey  string `mapstructure:"api_key"`
	BaseURL string `mapstructure:"base_url" validate:"omitempty,url"`
	Model   string `mapstructure:"model" validate:"required"`
}

type AnkiConfig struct {
	Enabled       bool          `mapstructure:"enabled"`
	ConnectURL    string        `mapstructure:"connect_url" validate:"required,url"`
	DeckName      string        `mapstructure:"deck_name" validate:"required"`
	ModelName     string        `mapstructure:"model_name" validate:"required"`
	Tags          []string      `mapstructure:"tags"`
	CardName      string        `mapstructure:"card_name" validate:"required"`
	FrontTemplate string        `mapstructure:"front_template" validate:"required"`
	BackTemplate  string        `mapstructure:"back_template" validate:"required"`
	CSS           string        `mapstructure:"css"`
	MaxFailures   uint32        `mapstructure:"max_failures" validate:"min=1"`
	OpenTimeout   time.Duration `mapstructure:"open_timeout" validate:"min=0"`
}

type FilesConfig struct {
	Directory string `mapstructure:"directory" validate:"required"`
}

type PromptConfig struct {
	SystemMessage string `mapstructure:"system_message" validate:"required"`
}

type ProfileConfig struct {
	// SchemaFile optionally replaces the built-in JSON schema of the
	// generate_word_profile function.
	SchemaFile string `mapstructure:"schema_file"`
}

type AssetsConfig struct {
	Image bool `mapstructure:"image"`
	Audio bool `mapstructure:"audio"`
}

type LogConfig struct {
	Level  string `mapstructure:"level" validate:"oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"oneof=json text"`
}

// Load decodes the viper state on top of the defaults and validates the result.
func Load(v *viper.Viper) (*Config, error) {
	cfg, err := Decode(v)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Decode is Load without validation, for commands that only need the files
// directory or a single credential.
func Decode(v *viper.Viper) (*Config, error) {
	cfg := Default()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Environment credentials win over the config file.
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		cfg.OpenAI.APIKey = key
	}
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		cfg.Gemini.APIKey = key
	}

	cfg.Files.Directory = expandHome(cfg.Files.Directory)
	return cfg, nil
}

// Validate checks struct constraints, cross-field language choices and that
// every credential the run needs is present.
func (c *Config) Validate() error {
	if err := ValidateStruct(c); err != nil {
		return err
	}

	if !slices.Contains(c.Languages.SupportedSourceLanguages, c.Languages.Source) {
		return fmt.Errorf("source language %q is not supported (supported: %v)",
			c.Languages.Source, c.Languages.SupportedSourceLanguages)
	}
	if !slices.Contains(c.Languages.SupportedProficiencyLevels, c.Languages.Level) {
		return fmt.Errorf("proficiency level %q is not supported (supported: %v)",
			c.Languages.Level, c.Languages.SupportedProficiencyLevels)
	}
	if c.OpenAI.Voice != "" && !slices.Contains(c.OpenAI.Voices, c.OpenAI.Voice) {
		return fmt.Errorf("voice %q is not one of %v", c.OpenAI.Voice, c.OpenAI.Voices)
	}

	switch c.TextProvider {
	case ProviderGemini:
		if c.Gemini.APIKey == "" {
			return fmt.Errorf("%w: set GEMINI_API_KEY or gemini.api_key", ErrMissingCredential)
		}
	default:
		if c.OpenAI.APIKey == "" {
			return fmt.Errorf("%w: set OPENAI_API_KEY or openai.api_key", ErrMissingCredential)
		}
	}
	if (c.Assets.Image || c.Assets.Audio) && c.OpenAI.APIKey == "" {
		return fmt.Errorf("%w: image and audio generation need OPENAI_API_KEY", ErrMissingCredential)
	}

	return nil
}

func expandHome(path string) string {
	if len(path) < 2 || path[:2] != "~/" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}
