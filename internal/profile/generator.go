package profile

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"text/template"

	"go.uber.org/zap"

	"codeberg.org/snonux/wortkarte/internal/config"
)

// ErrNoFunctionCall is returned when the text model answers without exactly
// one call of FunctionName.
var ErrNoFunctionCall = errors.New("text model did not return a word profile")

// Request is the input of one profile generation.
type Request struct {
	Word             string
	SourceLanguage   string
	ProficiencyLevel string
}

// Usage holds the token counters of one text model call.
type Usage struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

// FunctionCall is the structured payload returned by a forced function call.
type FunctionCall struct {
	Arguments []byte
	Usage     Usage
}

// FunctionCaller sends the system instruction and user word to a text
// model and forces a single call of FunctionName.
type FunctionCaller interface {
	CallFunction(ctx context.Context, system, user string) (*FunctionCall, error)
	Name() string
}

// Generator produces word profiles.
type Generator interface {
	Generate(ctx context.Context, req Request) (*WordProfile, error)
}

// Service generates a profile through a FunctionCaller and persists it in
// the files directory.
type Service struct {
	caller FunctionCaller
	prompt *template.Template
	dir    string
	log    *zap.Logger
}

// NewService parses the system message template and wires the caller.
func NewService(caller FunctionCaller, prompt, filesDir string, log *zap.Logger) (*Service, error) {
	tmpl, err := template.New("system_message").Option("missingkey=error").Parse(prompt)
	if err != nil {
		return nil, fmt.Errorf("invalid system message template: %w", err)
	}

	return &Service{
		caller: caller,
		prompt: tmpl,
		dir:    filesDir,
		log:    log,
	}, nil
}

// New builds the Service for the configured text provider.
func New(ctx context.Context, cfg *config.Config, log *zap.Logger) (*Service, error) {
	schema, err := LoadSchema(cfg.Profile.SchemaFile)
	if err != nil {
		return nil, err
	}

	var caller FunctionCaller
	switch cfg.TextProvider {
	case config.ProviderGemini:
		caller, err = NewGeminiCaller(ctx, cfg.Gemini, schema)
		if err != nil {
			return nil, err
		}
	default:
		caller = NewOpenAICaller(cfg.OpenAI, schema)
	}

	return NewService(caller, cfg.Prompt.SystemMessage, cfg.Files.Directory, log)
}

// Generate asks the text model for the profile of req.Word, validates it
// and writes it to <files_dir>/<german_word>_profile.json.
func (s *Service) Generate(ctx context.Context, req Request) (*WordProfile, error) {
	word := strings.TrimSpace(req.Word)
	if word == "" {
		return nil, fmt.Errorf("empty word")
	}

	system, err := s.renderPrompt(req)
	if err != nil {
		return nil, err
	}

	call, err := s.caller.CallFunction(ctx, system, word)
	if err != nil {
		return nil, fmt.Errorf("%s text generation failed: %w", s.caller.Name(), err)
	}

	s.log.Info("Text model usage",
		zap.String("provider", s.caller.Name()),
		zap.String("word", word),
		zap.Int("prompt_tokens", call.Usage.PromptTokens),
		zap.Int("completion_tokens", call.Usage.CompletionTokens),
		zap.Int("total_tokens", call.Usage.TotalTokens),
	)

	p, err := Decode(call.Arguments)
	if err != nil {
		return nil, err
	}

	path, err := Save(s.dir, p)
	if err != nil {
		return nil, err
	}
	s.log.Info("Word profile saved", zap.String("path", path))

	return p, nil
}

func (s *Service) renderPrompt(req Request) (string, error) {
	var b strings.Builder
	data := struct {
		SourceLanguage   string
		ProficiencyLevel string
	}{req.SourceLanguage, req.ProficiencyLevel}

	if err := s.prompt.Execute(&b, data); err != nil {
		return "", fmt.Errorf("failed to render system message: %w", err)
	}
	return b.String(), nil
}
