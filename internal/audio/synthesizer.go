package audio

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"codeberg.org/snonux/wortkarte/internal/media"
	"codeberg.org/snonux/wortkarte/internal/profile"
)

// Synthesizer speaks the word and example sentences of a profile into the
// files directory.
type Synthesizer struct {
	provider Provider
	voices   VoiceSelector
	dir      string
	log      *zap.Logger
}

func NewSynthesizer(provider Provider, voices VoiceSelector, dir string, log *zap.Logger) *Synthesizer {
	return &Synthesizer{
		provider: provider,
		voices:   voices,
		dir:      dir,
		log:      log,
	}
}

// Synthesize writes <word>_word.mp3 and <word>_example_<i>.mp3 for every
// example, all in one voice. It stops at the first failing clip; clips
// already written stay on disk.
func (s *Synthesizer) Synthesize(ctx context.Context, p *profile.WordProfile) ([]string, error) {
	voice := s.voices.Select(p.GermanWord)
	s.log.Info("Generating audio", zap.String("word", p.GermanWord), zap.String("voice", voice))

	clips := []struct {
		text   string
		suffix string
	}{
		{p.GermanWord, media.WordAudioSuffix},
	}
	for i, ex := range p.Examples {
		clips = append(clips, struct {
			text   string
			suffix string
		}{ex.German, media.ExampleAudioSuffix(i + 1)})
	}

	written := make([]string, 0, len(clips))
	for _, c := range clips {
		path := media.FilePath(s.dir, p.GermanWord, c.suffix)
		if err := s.provider.GenerateAudio(ctx, c.text, voice, path); err != nil {
			return written, fmt.Errorf("audio for %q: %w", c.text, err)
		}
		s.log.Info("Audio saved", zap.String("path", path))
		written = append(written, path)
	}

	return written, nil
}
