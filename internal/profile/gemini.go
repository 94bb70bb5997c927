package profile

import (
	"context"
	"encoding/json"
	"fmt"

	"google.golang.org/genai"

	"codeberg.org/snonux/wortkarte/internal/config"
)

// GeminiCaller forces a function call through the Gemini API.
type GeminiCaller struct {
	client *genai.Client
	model  string
	schema map[string]any
}

// NewGeminiCaller creates a caller for the configured Gemini model.
func NewGeminiCaller(ctx context.Context, cfg config.GeminiConfig, schema json.RawMessage) (*GeminiCaller, error) {
	var params map[string]any
	if err := json.Unmarshal(schema, &params); err != nil {
		return nil, fmt.Errorf("invalid profile schema: %w", err)
	}

	clientConfig := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.BaseURL != "" {
		clientConfig.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}

	client, err := genai.NewClient(ctx, clientConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiCaller{
		client: client,
		model:  cfg.Model,
		schema: params,
	}, nil
}

func (c *GeminiCaller) Name() string {
	return "gemini"
}

// CallFunction sends one GenerateContent request restricted to FunctionName.
func (c *GeminiCaller) CallFunction(ctx context.Context, system, user string) (*FunctionCall, error) {
	genConfig := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(system, genai.RoleUser),
		Tools: []*genai.Tool{
			{
				FunctionDeclarations: []*genai.FunctionDeclaration{
					{
						Name:                 FunctionName,
						Description:          FunctionDescription,
						ParametersJsonSchema: c.schema,
					},
				},
			},
		},
		ToolConfig: &genai.ToolConfig{
			FunctionCallingConfig: &genai.FunctionCallingConfig{
				Mode:                 genai.FunctionCallingConfigModeAny,
				AllowedFunctionNames: []string{FunctionName},
			},
		},
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(user), genConfig)
	if err != nil {
		return nil, fmt.Errorf("Gemini API error: %w", err)
	}

	var calls []*genai.FunctionCall
	for _, fc := range resp.FunctionCalls() {
		if fc.Name == FunctionName {
			calls = append(calls, fc)
		}
	}
	if len(calls) != 1 {
		return nil, fmt.Errorf("%w: got %d calls", ErrNoFunctionCall, len(calls))
	}

	args, err := json.Marshal(calls[0].Args)
	if err != nil {
		return nil, fmt.Errorf("failed to encode function arguments: %w", err)
	}

	call := &FunctionCall{Arguments: args}
	if u := resp.UsageMetadata; u != nil {
		call.Usage = Usage{
			PromptTokens:     int(u.PromptTokenCount),
			CompletionTokens: int(u.CandidatesTokenCount),
			TotalTokens:      int(u.TotalTokenCount),
		}
	}
	return call, nil
}
