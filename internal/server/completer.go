package server

import (
	"context"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// openaiCompleter issues single-turn chat completions against the provider.
type openaiCompleter struct {
	api   openai.Client
	model string
}

// NewCompleter creates the production Completer.
func NewCompleter(apiKey, model string) Completer {
	if model == "" {
		model = "gpt-4"
	}
	return &openaiCompleter{
		api:   openai.NewClient(option.WithAPIKey(apiKey)),
		model: model,
	}
}

func (c *openaiCompleter) Complete(ctx context.Context, system, user string) (string, error) {
	completion, err := c.api.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(system),
			openai.UserMessage(user),
		},
	})
	if err != nil {
		return "", err
	}
	if len(completion.Choices) == 0 {
		return "", nil
	}
	return completion.Choices[0].Message.Content, nil
}
