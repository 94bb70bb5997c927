package processor

import (
	"context"
	"fmt"
	"io"
	"os"
	"slices"

	"go.uber.org/zap"

	"codeberg.org/snonux/wortkarte/internal/anki"
	"codeberg.org/snonux/wortkarte/internal/audio"
	"codeberg.org/snonux/wortkarte/internal/batch"
	"codeberg.org/snonux/wortkarte/internal/config"
	"codeberg.org/snonux/wortkarte/internal/image"
	"codeberg.org/snonux/wortkarte/internal/media"
	"codeberg.org/snonux/wortkarte/internal/profile"
)

// Illustrator creates the card image of a profile.
type Illustrator interface {
	Illustrate(ctx context.Context, p *profile.WordProfile) (string, error)
}

// Synthesizer speaks the word and examples of a profile.
type Synthesizer interface {
	Synthesize(ctx context.Context, p *profile.WordProfile) ([]string, error)
}

// Flashcards adds the note of a profile to the flashcard app.
type Flashcards interface {
	EnsureModel(ctx context.Context) error
	Upsert(ctx context.Context, p *profile.WordProfile) error
}

// Prober checks that the flashcard app is reachable.
type Prober interface {
	Version(ctx context.Context) (int, error)
}

// Result is what one processed word produced.
type Result struct {
	Profile   *profile.WordProfile
	Image     string
	Audio     []string
	NoteAdded bool
}

// Summary counts the outcome of a batch.
type Summary struct {
	Total     int
	Processed int
	Failed    int
}

// Processor handles the main word processing logic
type Processor struct {
	cfg *config.Config
	log *zap.Logger
	out io.Writer

	profiles    profile.Generator
	illustrator Illustrator
	synthesizer Synthesizer
	flashcards  Flashcards
	prober      Prober

	modelReady bool
}

// New wires the generators and the Anki client enabled in cfg. Progress
// and profiles are printed to out.
func New(ctx context.Context, cfg *config.Config, log *zap.Logger, out io.Writer) (*Processor, error) {
	profiles, err := profile.New(ctx, cfg, log)
	if err != nil {
		return nil, err
	}

	p := &Processor{cfg: cfg, log: log, out: out, profiles: profiles}
	dir := cfg.Files.Directory

	if cfg.Assets.Image {
		p.illustrator = image.NewIllustrator(image.NewOpenAIClient(cfg.OpenAI), image.NewDownloader(nil), dir, log)
	}

	if cfg.Assets.Audio {
		provider, err := audio.NewProvider(cfg.OpenAI, log)
		if err != nil {
			return nil, err
		}
		p.synthesizer = audio.NewSynthesizer(provider, audio.NewVoiceSelector(cfg.OpenAI), dir, log)
	}

	if cfg.Anki.Enabled {
		client := anki.NewClient(cfg.Anki, nil, log)
		p.prober = client
		p.flashcards = anki.NewDeck(client, media.NewStore(dir, client, log), cfg.Anki, log)
	}

	return p, nil
}

// ProcessWord generates the profile of word, the requested media and the
// flashcard. A non-empty level overrides the configured proficiency level.
// Only a failed profile is an error; media and flashcard failures are
// logged and reflected in the Result.
func (p *Processor) ProcessWord(ctx context.Context, word, level string) (*Result, error) {
	if err := audio.ValidateSpeechText(word); err != nil {
		return nil, fmt.Errorf("invalid word %q: %w", word, err)
	}
	if level == "" {
		level = p.cfg.Languages.Level
	}
	if !slices.Contains(p.cfg.Languages.SupportedProficiencyLevels, level) {
		return nil, fmt.Errorf("unsupported proficiency level %q", level)
	}

	if err := os.MkdirAll(p.cfg.Files.Directory, 0755); err != nil {
		return nil, fmt.Errorf("failed to create files directory: %w", err)
	}

	fmt.Fprintf(p.out, "\nProcessing: %s\n", word)
	fmt.Fprintf(p.out, "  Generating word profile...\n")

	prof, err := p.profiles.Generate(ctx, profile.Request{
		Word:             word,
		SourceLanguage:   p.cfg.Languages.Source,
		ProficiencyLevel: level,
	})
	if err != nil {
		return nil, fmt.Errorf("profile generation failed: %w", err)
	}

	result := &Result{Profile: prof}
	PrintProfile(p.out, prof, p.cfg.Languages.Source)

	if p.illustrator != nil {
		fmt.Fprintf(p.out, "  Generating image...\n")
		path, err := p.illustrator.Illustrate(ctx, prof)
		if err != nil {
			p.log.Error("Image generation failed", zap.String("word", prof.GermanWord), zap.Error(err))
		} else {
			result.Image = path
			fmt.Fprintf(p.out, "    Saved: %s\n", path)
		}
	}

	if p.synthesizer != nil {
		fmt.Fprintf(p.out, "  Generating audio...\n")
		paths, err := p.synthesizer.Synthesize(ctx, prof)
		result.Audio = paths
		if err != nil {
			p.log.Error("Audio generation failed", zap.String("word", prof.GermanWord), zap.Error(err))
		}
		for _, path := range paths {
			fmt.Fprintf(p.out, "    Saved: %s\n", path)
		}
	}

	if p.flashcards != nil {
		result.NoteAdded = p.addFlashcard(ctx, prof)
	}

	return result, nil
}

func (p *Processor) addFlashcard(ctx context.Context, prof *profile.WordProfile) bool {
	if _, err := p.prober.Version(ctx); err != nil {
		p.log.Warn("AnkiConnect is not reachable, skipping flashcard",
			zap.String("url", p.cfg.Anki.ConnectURL), zap.Error(err))
		fmt.Fprintf(p.out, "  Anki is not reachable, flashcard skipped\n")
		return false
	}

	if !p.modelReady {
		if err := p.flashcards.EnsureModel(ctx); err != nil {
			p.log.Warn("Failed to create note type", zap.Error(err))
		} else {
			p.modelReady = true
		}
	}

	if err := p.flashcards.Upsert(ctx, prof); err != nil {
		fmt.Fprintf(p.out, "  Flashcard not added: %v\n", err)
		return false
	}

	fmt.Fprintf(p.out, "  Flashcard added to deck %q\n", p.cfg.Anki.DeckName)
	return true
}

// ProcessBatch processes every entry of a batch file in order. A failing
// word is reported and the batch continues.
func (p *Processor) ProcessBatch(ctx context.Context, filename string) (Summary, error) {
	entries, err := batch.ReadFile(filename)
	if err != nil {
		return Summary{}, err
	}

	summary := Summary{Total: len(entries)}
	for i, entry := range entries {
		fmt.Fprintf(p.out, "\n[%d/%d]", i+1, len(entries))
		if _, err := p.ProcessWord(ctx, entry.Word, entry.Level); err != nil {
			p.log.Error("Failed to process word", zap.String("word", entry.Word), zap.Error(err))
			summary.Failed++
			continue
		}
		summary.Processed++
	}

	fmt.Fprintf(p.out, "\n=== Batch Processing Summary ===\n")
	fmt.Fprintf(p.out, "Total words: %d\n", summary.Total)
	fmt.Fprintf(p.out, "Processed: %d\n", summary.Processed)
	if summary.Failed > 0 {
		fmt.Fprintf(p.out, "Errors: %d\n", summary.Failed)
	}
	fmt.Fprintf(p.out, "================================\n")

	return summary, nil
}

// Export writes the profiles and media of the files directory to an .apkg
// file at outputPath.
func Export(cfg *config.Config, outputPath string, log *zap.Logger, out io.Writer) error {
	n, err := anki.NewExporter(cfg.Anki, cfg.Files.Directory, log).Export(outputPath)
	if err != nil {
		return fmt.Errorf("failed to export Anki package: %w", err)
	}
	fmt.Fprintf(out, "Anki package with %d cards created: %s\n", n, outputPath)
	return nil
}
