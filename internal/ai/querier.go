package ai

import (
	"context"
	"fmt"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"

	"github.com/mvhoek/wired/internal/bot"
)

// ChatQuerier implements bot.Querier against a local Ollama server.
type ChatQuerier struct {
	client  llms.Model
	persona string
}

// NewChatQuerier creates a text model client for the given server, model and
// persona system prompt.
func NewChatQuerier(host, model, persona string) (*ChatQuerier, error) {
	client, err := ollama.New(
		ollama.WithServerURL(host),
		ollama.WithModel(model),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}

	return &ChatQuerier{
		client:  client,
		persona: persona,
	}, nil
}

// Query implements bot.Querier. The message sequence is one system persona
// message, a user/assistant pair per prior exchange in recorded order, then
// the new prompt as the final user message. Order matters to the model.
func (q *ChatQuerier) Query(
	ctx context.Context, prompt string, history []bot.Exchange,
) (string, error) {
	msgs := make([]llms.MessageContent, 0, 2*len(history)+2)
	msgs = append(
		msgs, llms.TextParts(llms.ChatMessageTypeSystem, q.persona),
	)

	for _, x := range history {
		msgs = append(
			msgs,
			llms.TextParts(llms.ChatMessageTypeHuman, x.Prompt),
			llms.TextParts(llms.ChatMessageTypeAI, x.Response),
		)
	}

	msgs = append(msgs, llms.TextParts(llms.ChatMessageTypeHuman, prompt))

	resp, err := q.client.GenerateContent(ctx, msgs)
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no choices returned from model")
	}

	return resp.Choices[0].Content, nil
}
