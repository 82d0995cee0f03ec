// Package openai implements port.ScenarioExtractor on the OpenAI Chat
// Completions API with a forced function call.
package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	gopenai "github.com/sashabaranov/go-openai"

	"flowcase/internal/config"
	"flowcase/internal/domain"
	"flowcase/internal/extractor"
	"flowcase/internal/port"
)

const defaultModel = "gpt-4.1"

func init() {
	extractor.RegisterProvider("openai", func(cfg *config.ExtractorConfig) (port.ScenarioExtractor, error) {
		return NewExtractor(cfg), nil
	})
}

// Extractor calls the OpenAI API requesting exactly one structured reply via
// the submit_integration_scenarios tool.
type Extractor struct {
	client *gopenai.Client
	model  string
}

// NewExtractor creates an OpenAI-backed scenario extractor. A non-empty
// cfg.BaseURL points the client at a custom endpoint (used in tests).
func NewExtractor(cfg *config.ExtractorConfig) *Extractor {
	model := cfg.Model
	if model == "" {
		model = defaultModel
	}
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout == 0 {
		timeout = 120 * time.Second
	}

	clientCfg := gopenai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	clientCfg.HTTPClient = &http.Client{Timeout: timeout}

	return &Extractor{
		client: gopenai.NewClientWithConfig(clientCfg),
		model:  model,
	}
}

func (e *Extractor) Extract(ctx context.Context, input port.ExtractInput) (*port.ExtractOutput, error) {
	tool := gopenai.Tool{
		Type: gopenai.ToolTypeFunction,
		Function: &gopenai.FunctionDefinition{
			Name:        extractor.SubmitFunctionName,
			Description: "Return extracted integration test scenarios as a structured list.",
			Parameters:  json.RawMessage(extractor.ToolSchema),
		},
	}

	resp, err := e.client.CreateChatCompletion(ctx, gopenai.ChatCompletionRequest{
		Model:       e.model,
		Temperature: 0.1,
		Messages: []gopenai.ChatCompletionMessage{
			{Role: gopenai.ChatMessageRoleSystem, Content: extractor.SystemPrompt()},
			{Role: gopenai.ChatMessageRoleUser, Content: extractor.UserPrompt(input.DocumentText)},
		},
		Tools: []gopenai.Tool{tool},
		ToolChoice: gopenai.ToolChoice{
			Type:     gopenai.ToolTypeFunction,
			Function: gopenai.ToolFunction{Name: extractor.SubmitFunctionName},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("calling openai API: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("empty response from API: %w", domain.ErrNoStructuredResponse)
	}

	msg := resp.Choices[0].Message
	if len(msg.ToolCalls) == 0 {
		return nil, domain.ErrNoStructuredResponse
	}

	var args struct {
		Scenarios []port.RawScenario `json:"scenarios"`
	}
	if err := json.Unmarshal([]byte(msg.ToolCalls[0].Function.Arguments), &args); err != nil {
		return nil, fmt.Errorf("parsing tool call arguments: %w", err)
	}

	return &port.ExtractOutput{
		Scenarios:  args.Scenarios,
		ModelUsed:  e.model,
		TokensUsed: resp.Usage.TotalTokens,
	}, nil
}
