package audio

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"codeberg.org/snonux/wortkarte/internal/config"
)

// Provider defines the interface for text-to-speech providers
type Provider interface {
	// GenerateAudio speaks text with voice and saves it to outputFile
	GenerateAudio(ctx context.Context, text, voice, outputFile string) error

	// Name returns the provider name
	Name() string

	// IsAvailable checks if the provider is properly configured
	IsAvailable() error
}

// NewProvider creates the OpenAI speech provider from configuration
func NewProvider(cfg config.OpenAIConfig, log *zap.Logger) (Provider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}
	return NewOpenAIProvider(cfg, log), nil
}
