package profile

import (
	"context"
	"os"
	"testing"

	"go.uber.org/zap"

	"codeberg.org/snonux/wortkarte/internal/config"
)

func TestGenerate_Integration(t *testing.T) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		t.Skip("Skipping integration test: OPENAI_API_KEY not set")
	}

	cfg := config.Default()
	cfg.OpenAI.APIKey = apiKey
	cfg.Files.Directory = t.TempDir()

	svc, err := New(context.Background(), cfg, zap.NewNop())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	p, err := svc.Generate(context.Background(), Request{
		Word:             "Apfel",
		SourceLanguage:   "English",
		ProficiencyLevel: "A1",
	})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	if p.GermanWord == "" || p.Translation == "" {
		t.Errorf("incomplete profile: %+v", p)
	}
	if p.Classification.Kind() == KindNoun && p.Noun() == nil {
		t.Errorf("noun %q without article", p.GermanWord)
	}
	if _, err := os.Stat(Path(cfg.Files.Directory, p.GermanWord)); err != nil {
		t.Errorf("profile not saved: %v", err)
	}
}
