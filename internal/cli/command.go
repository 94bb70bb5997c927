package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"codeberg.org/snonux/wortkarte/internal"
)

// CreateRootCommand creates and configures the root cobra command. Flags
// are bound to v, and the config file is read into v before RunE runs.
func CreateRootCommand(flags *Flags, v *viper.Viper) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "wortkarte [word]",
		Short: "German Anki Flashcard Generator",
		Long: `wortkarte generates German vocabulary flashcards with an AI text model.

For each word it creates a word profile (translation, grammar and example
sentences), optionally an illustration and pronunciation audio, and adds
the card to Anki through the AnkiConnect add-on.

Examples:
  wortkarte Haus                      # Profile and flashcard for "Haus"
  wortkarte --image --audio gehen     # Also generate image and audio
  wortkarte --batch words.txt         # Process one word per line
  wortkarte --export deutsch.apkg     # Package the generated cards`,
		Args:          cobra.MaximumNArgs(1),
		Version:       internal.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return InitConfig(v, flags.CfgFile)
		},
	}

	// Set up flags
	setupFlags(rootCmd, flags)
	bindFlagsToViper(rootCmd, v)

	return rootCmd
}

func setupFlags(cmd *cobra.Command, flags *Flags) {
	// Global flags
	cmd.PersistentFlags().StringVar(&flags.CfgFile, "config", "", "config file (default is $HOME/.wortkarte.yaml)")

	// Local flags
	cmd.Flags().StringVarP(&flags.FilesDir, "files-dir", "o", flags.FilesDir, "Directory for profiles, images and audio")
	cmd.Flags().StringVarP(&flags.Language, "language", "l", flags.Language, "Source language of translations and examples")
	cmd.Flags().StringVar(&flags.Level, "level", flags.Level, "Proficiency level: A1, A2, B1, B2, C1, C2")
	cmd.Flags().StringVar(&flags.BatchFile, "batch", "", "Process words from file (one per line, optional 'word | level')")
	cmd.Flags().BoolVar(&flags.Image, "image", false, "Generate an image for the card")
	cmd.Flags().BoolVar(&flags.Audio, "audio", false, "Generate audio for the word and examples")
	cmd.Flags().BoolVar(&flags.NoAnki, "no-anki", false, "Do not add the card to Anki")
	cmd.Flags().BoolVar(&flags.ListModels, "list-models", false, "List available OpenAI models for the current API key")
	cmd.Flags().BoolVar(&flags.Archive, "archive", false, "Move the files directory to an archive and exit")
	cmd.Flags().StringVar(&flags.Export, "export", "", "Write all generated cards to an .apkg file and exit")

	// Text generation flags
	cmd.Flags().StringVar(&flags.TextProvider, "text-provider", flags.TextProvider, "Text model provider: openai or gemini")
	cmd.Flags().StringVar(&flags.TextModel, "openai-text-model", flags.TextModel, "OpenAI chat model for word profiles")

	// OpenAI media flags
	cmd.Flags().StringVar(&flags.ImageModel, "openai-image-model", flags.ImageModel, "OpenAI image model: dall-e-2 or dall-e-3")
	cmd.Flags().StringVar(&flags.ImageSize, "openai-image-size", flags.ImageSize, "Generated image size before resizing: 256x256, 512x512, 1024x1024")
	cmd.Flags().StringVar(&flags.TTSModel, "openai-tts-model", flags.TTSModel, "OpenAI TTS model: tts-1, tts-1-hd")
	cmd.Flags().StringVar(&flags.Voice, "voice", "", "OpenAI voice: alloy, echo, fable, onyx, nova, shimmer (default: random)")

	// Anki flags
	cmd.Flags().StringVar(&flags.DeckName, "deck-name", flags.DeckName, "Anki deck for new cards")
	cmd.Flags().StringVar(&flags.ModelName, "model-name", flags.ModelName, "Anki note type name")
	cmd.Flags().StringVar(&flags.AnkiURL, "anki-url", flags.AnkiURL, "AnkiConnect URL")

	// Logging flags
	cmd.Flags().StringVar(&flags.LogLevel, "log-level", flags.LogLevel, "Log level: debug, info, warn, error")
	cmd.Flags().StringVar(&flags.LogFormat, "log-format", flags.LogFormat, "Log format: text or json")
}

// flagKeys maps flags to their configuration keys.
var flagKeys = map[string]string{
	"files-dir":          "files.directory",
	"language":           "languages.source",
	"level":              "languages.level",
	"image":              "assets.image",
	"audio":              "assets.audio",
	"text-provider":      "text_provider",
	"openai-text-model":  "openai.text_model",
	"openai-image-model": "openai.image_model",
	"openai-image-size":  "openai.image_size",
	"openai-tts-model":   "openai.tts_model",
	"voice":              "openai.voice",
	"deck-name":          "anki.deck_name",
	"model-name":         "anki.model_name",
	"anki-url":           "anki.connect_url",
	"log-level":          "log.level",
	"log-format":         "log.format",
}

func bindFlagsToViper(cmd *cobra.Command, v *viper.Viper) {
	for name, key := range flagKeys {
		if flag := cmd.Flags().Lookup(name); flag != nil {
			_ = v.BindPFlag(key, flag)
		}
	}
}

// InitConfig initializes viper configuration
func InitConfig(v *viper.Viper, cfgFile string) error {
	if cfgFile != "" {
		// Use config file from the flag
		v.SetConfigFile(cfgFile)
	} else {
		// Search config in home directory with name ".wortkarte" (without extension)
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		v.AddConfigPath(".")
		v.SetConfigType("yaml")
		v.SetConfigName(".wortkarte")
	}

	// Environment variables, e.g. WORTKARTE_ANKI_DECK_NAME
	v.SetEnvPrefix("WORTKARTE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("failed to read config file: %w", err)
	}

	fmt.Fprintln(os.Stderr, "Using config file:", v.ConfigFileUsed())
	return nil
}
