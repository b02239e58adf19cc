package bot

import (
	"context"
	"time"
)

// Exchange is one prompt/response pair recorded in history. Immutable once
// recorded.
type Exchange struct {
	Speaker  string // display name of the author, empty when not tracked
	Prompt   string
	Response string
	At       time.Time
}

// Attachment is a retrievable binary referenced by an inbound event.
type Attachment struct {
	URL      string
	Filename string
}

// Event is a platform-independent inbound message. The adapter fills it from
// the platform's own event type so the orchestrator stays testable without a
// live connection.
type Event struct {
	SelfID      string // the bot's own user ID
	AuthorID    string
	AuthorName  string
	Content     string
	ChannelID   string
	Mentioned   bool // bot appears in the event's mention list
	Attachments []Attachment
}

// Sink delivers one outbound message to a channel.
type Sink interface {
	Send(ctx context.Context, text string) error
}

// Typing is the channel's composing indicator. Start returns a release
// function that must be called exactly once.
type Typing interface {
	Start(ctx context.Context) (stop func())
}

// Querier sends a prompt plus ordered history to a text model and returns the
// generated reply.
type Querier interface {
	Query(ctx context.Context, prompt string, history []Exchange) (string, error)
}

// Vision sends a prompt and a single image to a multimodal model.
type Vision interface {
	Describe(ctx context.Context, prompt string, image []byte) (string, error)
}

// Fetcher downloads an attachment's binary content.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}
