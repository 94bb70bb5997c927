package cli

import "codeberg.org/snonux/wortkarte/internal/config"

// Flags holds all command-line flag values
type Flags struct {
	// General flags
	CfgFile    string
	FilesDir   string
	Language   string
	Level      string
	BatchFile  string
	Image      bool
	Audio      bool
	NoAnki     bool
	ListModels bool
	Archive    bool
	Export     string

	// Text generation flags
	TextProvider string
	TextModel    string

	// OpenAI media flags
	ImageModel string
	ImageSize  string
	TTSModel   string
	Voice      string

	// Anki flags
	DeckName  string
	ModelName string
	AnkiURL   string

	// Logging flags
	LogLevel  string
	LogFormat string
}

// NewFlags creates a new Flags instance whose defaults match config.Default
func NewFlags() *Flags {
	def := config.Default()
	return &Flags{
		FilesDir:     def.Files.Directory,
		Language:     def.Languages.Source,
		Level:        def.Languages.Level,
		TextProvider: def.TextProvider,
		TextModel:    def.OpenAI.TextModel,
		ImageModel:   def.OpenAI.ImageModel,
		ImageSize:    def.OpenAI.ImageSize,
		TTSModel:     def.OpenAI.TTSModel,
		DeckName:     def.Anki.DeckName,
		ModelName:    def.Anki.ModelName,
		AnkiURL:      def.Anki.ConnectURL,
		LogLevel:     def.Log.Level,
		LogFormat:    def.Log.Format,
	}
}
