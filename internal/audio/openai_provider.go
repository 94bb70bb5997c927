package audio

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"codeberg.org/snonux/wortkarte/internal/config"
)

// OpenAIProvider implements Provider interface for OpenAI TTS
type OpenAIProvider struct {
	client *openai.Client
	apiKey string
	model  string
	log    *zap.Logger
}

// NewOpenAIProvider creates a new OpenAI TTS provider
func NewOpenAIProvider(cfg config.OpenAIConfig, log *zap.Logger) *OpenAIProvider {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}

	return &OpenAIProvider{
		client: openai.NewClientWithConfig(clientConfig),
		apiKey: cfg.APIKey,
		model:  cfg.TTSModel,
		log:    log,
	}
}

// GenerateAudio generates audio using OpenAI TTS
func (p *OpenAIProvider) GenerateAudio(ctx context.Context, text, voice, outputFile string) error {
	if err := ValidateSpeechText(text); err != nil {
		return err
	}

	req := openai.CreateSpeechRequest{
		Model:          openai.SpeechModel(p.model),
		Input:          strings.TrimSpace(text),
		Voice:          openai.SpeechVoice(voice),
		ResponseFormat: responseFormat(outputFile),
	}

	p.log.Debug("OpenAI TTS request",
		zap.String("model", p.model),
		zap.String("voice", voice),
		zap.String("input", req.Input),
	)

	response, err := p.client.CreateSpeech(ctx, req)
	if err != nil {
		return fmt.Errorf("OpenAI TTS API error: %w", err)
	}
	defer response.Close()

	if dir := filepath.Dir(outputFile); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	out, err := os.Create(outputFile)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer out.Close()

	written, err := io.Copy(out, response)
	if err != nil {
		return fmt.Errorf("failed to write audio file: %w", err)
	}

	if written == 0 {
		return fmt.Errorf("no audio data received from OpenAI")
	}

	return nil
}

// Name returns the provider name
func (p *OpenAIProvider) Name() string {
	return "openai"
}

// IsAvailable checks that an API key is configured; probing the API would cost credits
func (p *OpenAIProvider) IsAvailable() error {
	if p.apiKey == "" {
		return fmt.Errorf("OpenAI API key not configured")
	}
	return nil
}

// responseFormat picks the speech encoding from the output file extension
func responseFormat(outputFile string) openai.SpeechResponseFormat {
	switch strings.ToLower(filepath.Ext(outputFile)) {
	case ".wav":
		return openai.SpeechResponseFormatWav
	case ".opus":
		return openai.SpeechResponseFormatOpus
	case ".aac":
		return openai.SpeechResponseFormatAac
	case ".flac":
		return openai.SpeechResponseFormatFlac
	default:
		return openai.SpeechResponseFormatMp3
	}
}
