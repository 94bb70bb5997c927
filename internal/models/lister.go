package models

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/sashabaranov/go-openai"

	"codeberg.org/snonux/wortkarte/internal/config"
)

// ErrNoAPIKey is returned when no OpenAI key is configured.
var ErrNoAPIKey = errors.New("OpenAI API key not found. Set OPENAI_API_KEY or openai.api_key in .wortkarte.yaml")

// Catalog groups model ids by use.
type Catalog struct {
	Chat  []string
	Image []string
	TTS   []string
	Other int
}

// Lister handles listing available OpenAI models
type Lister struct {
	apiKey string
	client *openai.Client
}

// NewLister creates a new model lister
func NewLister(cfg config.OpenAIConfig) *Lister {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}
	return &Lister{
		apiKey: cfg.APIKey,
		client: openai.NewClientWithConfig(clientConfig),
	}
}

// List fetches and categorizes the models
func (l *Lister) List(ctx context.Context) (*Catalog, error) {
	if l.apiKey == "" {
		return nil, ErrNoAPIKey
	}

	models, err := l.client.ListModels(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list models: %w", err)
	}

	var c Catalog
	for _, model := range models.Models {
		id := model.ID
		switch {
		case strings.Contains(id, "tts") || strings.Contains(id, "audio"):
			c.TTS = append(c.TTS, id)
		case strings.Contains(id, "dall-e") || strings.Contains(id, "image"):
			c.Image = append(c.Image, id)
		case strings.Contains(id, "gpt") || strings.Contains(id, "chat"):
			c.Chat = append(c.Chat, id)
		default:
			c.Other++
		}
	}

	sort.Strings(c.TTS)
	sort.Strings(c.Image)
	sort.Strings(c.Chat)
	return &c, nil
}

// Print writes the catalog in the format of --list-models
func (c *Catalog) Print(w io.Writer) {
	fmt.Fprintln(w, "Available OpenAI Models:")
	printGroup(w, "Text Models (word profiles, openai.text_model):", c.Chat)
	printGroup(w, "Image Generation Models (openai.image_model):", c.Image)
	printGroup(w, "Text-to-Speech Models (openai.tts_model):", c.TTS)
	if c.Other > 0 {
		fmt.Fprintf(w, "\n%d other models not used by wortkarte\n", c.Other)
	}
}

func printGroup(w io.Writer, title string, ids []string) {
	fmt.Fprintf(w, "\n%s\n", title)
	if len(ids) == 0 {
		fmt.Fprintln(w, "  none found")
		return
	}
	for _, id := range ids {
		fmt.Fprintf(w, "  %s\n", id)
	}
}
