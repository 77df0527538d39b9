package assistant

import (
	"context"
	"errors"

	openai "github.com/sashabaranov/go-openai"

	"github.com/vitalis-inc/vitalis-api/schema"
)

// Completer sends one completion request: a system preamble plus the
// ordered turn history, returning a single text reply.
type Completer interface {
	Complete(ctx context.Context, preamble string, turns []schema.ChatMessage) (string, error)
}

type client struct {
	openai *openai.Client
	model  string
}

// New returns an OpenAI-backed Completer.
func New(apiKey, model string) Completer {
	return &client{
		openai: openai.NewClient(apiKey),
		model:  model,
	}
}

// Complete rebuilds the whole request from scratch: no session handle
// is retained between turns.
func (c *client) Complete(ctx context.Context, preamble string, turns []schema.ChatMessage) (string, error) {
	messages := make([]openai.ChatCompletionMessage, 0, len(turns)+1)
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleSystem,
		Content: preamble,
	})

	for _, t := range turns {
		role := openai.ChatMessageRoleUser
		if t.Role == schema.RoleAssistant {
			role = openai.ChatMessageRoleAssistant
		}
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    role,
			Content: t.Text,
		})
	}

	resp, err := c.openai.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Messages:    messages,
		Temperature: 0.2,
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("completion returned no choices")
	}

	return resp.Choices[0].Message.Content, nil
}
