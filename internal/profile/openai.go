package profile

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/sashabaranov/go-openai"

	"codeberg.org/snonux/wortkarte/internal/config"
)

// OpenAICaller forces a tool call through the chat completions API.
type OpenAICaller struct {
	client *openai.Client
	model  string
	schema json.RawMessage
}

// NewOpenAICaller creates a caller for the configured text model.
func NewOpenAICaller(cfg config.OpenAIConfig, schema json.RawMessage) *OpenAICaller {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}

	return &OpenAICaller{
		client: openai.NewClientWithConfig(clientConfig),
		model:  cfg.TextModel,
		schema: schema,
	}
}

func (c *OpenAICaller) Name() string {
	return "openai"
}

// CallFunction sends one chat completion whose only tool is FunctionName
// and whose tool choice forces it.
func (c *OpenAICaller) CallFunction(ctx context.Context, system, user string) (*FunctionCall, error) {
	req := openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
		Tools: []openai.Tool{
			{
				Type: openai.ToolTypeFunction,
				Function: &openai.FunctionDefinition{
					Name:        FunctionName,
					Description: FunctionDescription,
					Parameters:  c.schema,
				},
			},
		},
		ToolChoice: openai.ToolChoice{
			Type:     openai.ToolTypeFunction,
			Function: openai.ToolFunction{Name: FunctionName},
		},
	}

	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("OpenAI API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, ErrNoFunctionCall
	}

	var args []string
	for _, tc := range resp.Choices[0].Message.ToolCalls {
		if tc.Function.Name == FunctionName {
			args = append(args, tc.Function.Arguments)
		}
	}
	if len(args) != 1 {
		return nil, fmt.Errorf("%w: got %d calls", ErrNoFunctionCall, len(args))
	}

	return &FunctionCall{
		Arguments: []byte(args[0]),
		Usage: Usage{
			PromptTokens:     resp.Usage.PromptTokens,
			CompletionTokens: resp.Usage.CompletionTokens,
			TotalTokens:      resp.Usage.TotalTokens,
		},
	}, nil
}
