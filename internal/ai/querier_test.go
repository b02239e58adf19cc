package ai

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms"

	"github.com/mvhoek/wired/internal/bot"
)

type fakeModel struct {
	captured []llms.MessageContent
	reply    string
	err      error
	empty    bool
}

func (f *fakeModel) GenerateContent(
	_ context.Context, messages []llms.MessageContent, _ ...llms.CallOption,
) (*llms.ContentResponse, error) {
	f.captured = messages
	if f.err != nil {
		return nil, f.err
	}
	if f.empty {
		return &llms.ContentResponse{}, nil
	}
	return &llms.ContentResponse{
		Choices: []*llms.ContentChoice{{Content: f.reply}},
	}, nil
}

func (f *fakeModel) Call(_ context.Context, _ string, _ ...llms.CallOption) (string, error) {
	return "", errors.New("not implemented")
}

func newTestQuerier(model *fakeModel) *ChatQuerier {
	return &ChatQuerier{client: model, persona: "You are a test persona."}
}

func textOf(t *testing.T, msg llms.MessageContent) string {
	t.Helper()
	require.Len(t, msg.Parts, 1)
	part, ok := msg.Parts[0].(llms.TextContent)
	require.True(t, ok)
	return part.Text
}

func TestQueryEmptyHistoryBuildsTwoMessages(t *testing.T) {
	model := &fakeModel{reply: "sure"}
	q := newTestQuerier(model)

	reply, err := q.Query(context.Background(), "How do I reverse a string in a list?", nil)

	require.NoError(t, err)
	require.Equal(t, "sure", reply)

	require.Len(t, model.captured, 2)
	require.Equal(t, llms.ChatMessageTypeSystem, model.captured[0].Role)
	require.Equal(t, "You are a test persona.", textOf(t, model.captured[0]))
	require.Equal(t, llms.ChatMessageTypeHuman, model.captured[1].Role)
	require.Equal(t, "How do I reverse a string in a list?", textOf(t, model.captured[1]))
}

func TestQueryHistoryOrderPreserved(t *testing.T) {
	model := &fakeModel{reply: "ok"}
	q := newTestQuerier(model)

	history := []bot.Exchange{
		{Prompt: "first question", Response: "first answer"},
		{Prompt: "second question", Response: "second answer"},
	}

	_, err := q.Query(context.Background(), "third question", history)

	require.NoError(t, err)
	require.Len(t, model.captured, 6)

	wantRoles := []llms.ChatMessageType{
		llms.ChatMessageTypeSystem,
		llms.ChatMessageTypeHuman,
		llms.ChatMessageTypeAI,
		llms.ChatMessageTypeHuman,
		llms.ChatMessageTypeAI,
		llms.ChatMessageTypeHuman,
	}
	for i, want := range wantRoles {
		require.Equal(t, want, model.captured[i].Role, "message %d", i)
	}

	require.Equal(t, "first question", textOf(t, model.captured[1]))
	require.Equal(t, "first answer", textOf(t, model.captured[2]))
	require.Equal(t, "second question", textOf(t, model.captured[3]))
	require.Equal(t, "second answer", textOf(t, model.captured[4]))
	require.Equal(t, "third question", textOf(t, model.captured[5]))
}

func TestQueryTransportErrorWrapped(t *testing.T) {
	model := &fakeModel{err: errors.New("connection refused")}
	q := newTestQuerier(model)

	_, err := q.Query(context.Background(), "hi", nil)

	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to generate content")
}

func TestQueryNoChoicesIsError(t *testing.T) {
	model := &fakeModel{empty: true}
	q := newTestQuerier(model)

	_, err := q.Query(context.Background(), "hi", nil)

	require.Error(t, err)
	require.Contains(t, err.Error(), "no choices")
}
