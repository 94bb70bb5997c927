package image

import (
	"context"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"

	"codeberg.org/snonux/wortkarte/internal/config"
	"codeberg.org/snonux/wortkarte/internal/profile"
)

// OpenAIClient generates images with DALL-E
type OpenAIClient struct {
	client *openai.Client
	model  string
	size   string
}

// NewOpenAIClient creates a new OpenAI image client
func NewOpenAIClient(cfg config.OpenAIConfig) *OpenAIClient {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}

	model := cfg.ImageModel
	if model == "" {
		model = openai.CreateImageModelDallE2
	}
	size := cfg.ImageSize
	if size == "" {
		size = openai.CreateImageSize512x512
	}

	return &OpenAIClient{
		client: openai.NewClientWithConfig(clientConfig),
		model:  model,
		size:   size,
	}
}

// Generate requests a single image and returns its URL
func (c *OpenAIClient) Generate(ctx context.Context, prompt string) (string, error) {
	req := openai.ImageRequest{
		Prompt:         prompt,
		Model:          c.model,
		N:              1,
		Size:           c.size,
		ResponseFormat: openai.CreateImageResponseFormatURL,
	}

	resp, err := c.client.CreateImage(ctx, req)
	if err != nil {
		return "", &GenerationError{Provider: c.Name(), Message: err.Error()}
	}

	if len(resp.Data) == 0 || resp.Data[0].URL == "" {
		return "", &GenerationError{Provider: c.Name(), Message: "no image returned"}
	}

	return resp.Data[0].URL, nil
}

// Name returns the provider name
func (c *OpenAIClient) Name() string {
	return "openai"
}

// createEducationalPrompt describes the word for a flashcard illustration
func createEducationalPrompt(p *profile.WordProfile) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Create a simple, clear educational illustration for a language learning flashcard showing the German word %q", p.GermanWord)
	if p.Translation != "" {
		fmt.Fprintf(&b, " (%s)", p.Translation)
	}
	b.WriteString(".")

	if len(p.Examples) > 0 && p.Examples[0].German != "" {
		fmt.Fprintf(&b, " Context: %s", p.Examples[0].German)
	}

	b.WriteString(" Use a plain background and no text, letters or words in the image.")
	return b.String()
}
