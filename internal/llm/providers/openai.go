package providers

import (
	"context"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"resumeforge/internal/config"
	"resumeforge/internal/logging"
	"resumeforge/pkg/models"
	"resumeforge/pkg/utils"
)

// OpenAIProvider implements the provider interface using the OpenAI chat
// completions API. A custom BaseURL allows pointing it at any
// OpenAI-compatible server.
type OpenAIProvider struct {
	client *openai.Client
	config *config.Config
	logger logging.Logger
}

// NewOpenAIProvider creates a new OpenAI provider instance
func NewOpenAIProvider(cfg *config.Config) *OpenAIProvider {
	clientConfig := openai.DefaultConfig(cfg.LLM.APIKey)
	if cfg.LLM.BaseURL != "" {
		clientConfig.BaseURL = cfg.LLM.BaseURL
	}

	return &OpenAIProvider{
		client: openai.NewClientWithConfig(clientConfig),
		config: cfg,
		logger: logging.GetGlobalLogger(),
	}
}

func (op *OpenAIProvider) model() string {
	if op.config.LLM.Model != "" {
		return op.config.LLM.Model
	}
	return openai.GPT4oMini
}

// Complete sends the instruction pair to OpenAI and returns the raw
// completion text. JSONMode maps to the json_object response format.
func (op *OpenAIProvider) Complete(ctx context.Context, prompt models.PromptPair, opts models.CompletionOptions) (string, error) {
	startTime := time.Now()

	req := openai.ChatCompletionRequest{
		Model:       op.model(),
		Temperature: opts.Temperature,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: prompt.System,
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt.User,
			},
		},
	}
	if opts.MaxTokens > 0 {
		req.MaxTokens = opts.MaxTokens
	}
	if opts.JSONMode {
		req.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		}
	}

	resp, err := op.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", utils.NewUpstreamError("OpenAI API call failed", err)
	}

	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return "", utils.NewUpstreamError("empty completion from OpenAI", nil)
	}

	op.logger.Debug("OpenAI completion finished", map[string]interface{}{
		"provider":        "openai",
		"processing_time": time.Since(startTime).String(),
		"response_length": len(resp.Choices[0].Message.Content),
	})

	return resp.Choices[0].Message.Content, nil
}

// IsHealthy checks if the OpenAI provider is healthy and available
func (op *OpenAIProvider) IsHealthy(ctx context.Context) error {
	if op.config.LLM.APIKey == "" {
		return utils.NewUpstreamError("OpenAI API key not configured - set LLM_API_KEY environment variable", nil)
	}

	_, err := op.client.ListModels(ctx)
	if err != nil {
		return utils.NewUpstreamError("OpenAI API health check failed", err)
	}

	return nil
}

// GetProviderName returns the name of the provider
func (op *OpenAIProvider) GetProviderName() string {
	return "openai"
}
