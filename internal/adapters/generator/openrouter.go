package generator

import (
	"context"
	"fmt"

	"github.com/revrost/go-openrouter"
)

const translatePrompt = "You are a translation engine. Translate the user's message from %s to %s. " +
	"Reply with the translation only, no commentary."

// OpenRouterClient is the slice of the API client the generator needs;
// narrowed for testability.
type OpenRouterClient interface {
	CreateChatCompletion(ctx context.Context,
		ccr openrouter.ChatCompletionRequest) (openrouter.ChatCompletionResponse, error)
}

type OpenRouter struct {
	client OpenRouterClient
	model  string
}

func NewOpenRouter(apiKey, model string) *OpenRouter {
	return &OpenRouter{
		model: model,
		client: openrouter.NewClient(
			apiKey,
			openrouter.WithXTitle("gabbot"),
		),
	}
}

func (g *OpenRouter) Translate(ctx context.Context, from, to, text string) (string, error) {
	ccr := openrouter.ChatCompletionRequest{
		Model: g.model,
		Messages: []openrouter.ChatCompletionMessage{
			{
				Role: openrouter.ChatMessageRoleSystem,
				Content: openrouter.Content{
					Text: fmt.Sprintf(translatePrompt, from, to),
				},
			},
			{
				Role: openrouter.ChatMessageRoleUser,
				Content: openrouter.Content{
					Text: text,
				},
			},
		},
	}

	resp, err := g.client.CreateChatCompletion(ctx, ccr)
	if err != nil {
		return "", fmt.Errorf("openrouter API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openrouter returned no choices")
	}

	return resp.Choices[0].Message.Content.Text, nil
}
