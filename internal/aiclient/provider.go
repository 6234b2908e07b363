package aiclient

import (
	"context"
	"errors"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
	"google.golang.org/genai"

	"github.com/saulo-duarte/yt-study-api/internal/config"
)

// Provider sends a single prompt to a hosted LLM and returns its text reply.
type Provider interface {
	SendPrompt(ctx context.Context, system, user string) (string, error)
}

// NewProvider picks the LLM backend named in the settings. A missing API key
// does not fail startup; the returned provider reports ErrMissingCredential
// on every call instead.
func NewProvider(ctx context.Context, cfg config.LLMSettings) (Provider, error) {
	switch cfg.Provider {
	case config.ProviderGemini:
		if cfg.GeminiAPIKey == "" {
			return missingCredential{name: "GEMINI_API_KEY"}, nil
		}
		return NewGeminiProvider(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	case config.ProviderOpenAI, "":
		if cfg.OpenAIAPIKey == "" {
			return missingCredential{name: "OPENAI_API_KEY"}, nil
		}
		return NewOpenAIProvider(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.OpenAIModel), nil
	default:
		return nil, fmt.Errorf("unknown llm provider %q", cfg.Provider)
	}
}

type missingCredential struct {
	name string
}

func (m missingCredential) SendPrompt(context.Context, string, string) (string, error) {
	return "", fmt.Errorf("%w: set %s", ErrMissingCredential, m.name)
}

type openAIProvider struct {
	client *openai.Client
	model  string
}

func NewOpenAIProvider(apiKey, baseURL, model string) Provider {
	clientConfig := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		clientConfig.BaseURL = baseURL
	}
	if model == "" {
		model = openai.GPT4oMini
	}
	return &openAIProvider{
		client: openai.NewClientWithConfig(clientConfig),
		model:  model,
	}
}

func (p *openAIProvider) SendPrompt(ctx context.Context, system, user string) (string, error) {
	log := config.WithContext(ctx)

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: p.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
	})
	if err != nil {
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) && apiErr.HTTPStatusCode >= 400 && apiErr.HTTPStatusCode < 500 && apiErr.HTTPStatusCode != 429 {
			return "", &statusError{StatusCode: apiErr.HTTPStatusCode, Body: apiErr.Message}
		}
		return "", fmt.Errorf("openai chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: openai returned no choices", ErrMalformedResponse)
	}

	answer := strings.TrimSpace(resp.Choices[0].Message.Content)
	log.Debugf("[LLM] openai reply with %d characters", len(answer))
	return answer, nil
}

type geminiProvider struct {
	client *genai.Client
	model  string
}

func NewGeminiProvider(ctx context.Context, apiKey, model string) (Provider, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	if model == "" {
		model = "gemini-2.0-flash"
	}
	return &geminiProvider{client: client, model: model}, nil
}

func (p *geminiProvider) SendPrompt(ctx context.Context, system, user string) (string, error) {
	log := config.WithContext(ctx)
	prompt := system + "\n\n" + user

	result, err := p.client.Models.GenerateContent(ctx, p.model, genai.Text(prompt), nil)
	if err != nil {
		log.WithError(err).Error("Gemini content generation failed")
		return "", fmt.Errorf("gemini generate content: %w", err)
	}

	raw := strings.TrimSpace(result.Text())
	if raw == "" {
		return "", fmt.Errorf("%w: empty gemini response", ErrMalformedResponse)
	}
	log.Debugf("[LLM] gemini reply with %d characters", len(raw))
	return raw, nil
}
