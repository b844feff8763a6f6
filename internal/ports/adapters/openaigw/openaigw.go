package openaigw

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
	"golang.org/x/time/rate"

	"github.com/sqclip/sqclip/internal/types"
)

const defaultModel = openai.GPT3Dot5Turbo

// Adapter sends prompts to a chat-completion endpoint and returns the primary
// response text. Per-chapter retry policy belongs to the orchestrator.
type Adapter struct {
	client  *openai.Client
	model   string
	limiter *rate.Limiter
}

// New builds the gateway. rpm bounds outgoing requests per minute; zero or
// negative disables the limit. baseURL overrides the endpoint for testing and
// OpenAI-compatible providers.
func New(apiKey, model, baseURL string, rpm int) *Adapter {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	if model == "" {
		model = defaultModel
	}
	limiter := rate.NewLimiter(rate.Inf, 0)
	if rpm > 0 {
		limiter = rate.NewLimiter(rate.Limit(float64(rpm)/60.0), 1)
	}
	return &Adapter{
		client:  openai.NewClientWithConfig(cfg),
		model:   model,
		limiter: limiter,
	}
}

func (a *Adapter) Complete(ctx context.Context, prompt string) (string, error) {
	if err := a.limiter.Wait(ctx); err != nil {
		return "", err
	}

	resp, err := a.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: a.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", types.ErrCompletionUnavailable, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: response carried no choices", types.ErrCompletionUnavailable)
	}
	return resp.Choices[0].Message.Content, nil
}
