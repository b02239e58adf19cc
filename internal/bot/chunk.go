package bot

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// DefaultChunkSize is Discord's maximum message length in characters.
const DefaultChunkSize = 2000

// DefaultSendPause is the pause between consecutive chunks of one response,
// kept well clear of the platform's outbound rate limits.
const DefaultSendPause = 15 * time.Second

// Split cuts text into consecutive chunks of at most limit characters.
// Concatenating the chunks in order reproduces text exactly, whitespace
// included. Empty input yields no chunks; the platform rejects empty messages
// so nothing is sent for an empty response.
func Split(text string, limit int) []string {
	if text == "" {
		return nil
	}
	if limit <= 0 {
		limit = DefaultChunkSize
	}

	runes := []rune(text)
	chunks := make([]string, 0, (len(runes)+limit-1)/limit)
	for start := 0; start < len(runes); start += limit {
		end := start + limit
		if end > len(runes) {
			end = len(runes)
		}
		chunks = append(chunks, string(runes[start:end]))
	}
	return chunks
}

// Deliverer sends a full model response into a channel as a sequence of
// platform-sized messages, pausing between chunks.
type Deliverer struct {
	limit int
	pause time.Duration
	log   zerolog.Logger

	// sleep is swapped out by tests.
	sleep func(ctx context.Context, d time.Duration)
}

// NewDeliverer creates a Deliverer with the given chunk limit and inter-chunk
// pause. Zero values fall back to the Discord defaults.
func NewDeliverer(limit int, pause time.Duration, log zerolog.Logger) *Deliverer {
	if limit <= 0 {
		limit = DefaultChunkSize
	}
	if pause <= 0 {
		pause = DefaultSendPause
	}
	return &Deliverer{
		limit: limit,
		pause: pause,
		log:   log,
		sleep: sleepCtx,
	}
}

// Deliver splits text and sends the chunks in order. A pause is inserted
// after every chunk except the last. The first failed send halts delivery of
// the remaining chunks; there is no retry. The failure affects this turn
// only. A canceled context halts delivery the same way, so an expiring turn
// never fires its remaining chunks without pacing.
func (d *Deliverer) Deliver(ctx context.Context, text string, sink Sink) error {
	chunks := Split(text, d.limit)

	for i, chunk := range chunks {
		if err := ctx.Err(); err != nil {
			d.log.Error().Err(err).
				Int("chunk", i+1).
				Int("chunks", len(chunks)).
				Msg("delivery halted by canceled turn")
			return err
		}
		if err := sink.Send(ctx, chunk); err != nil {
			d.log.Error().Err(err).
				Int("chunk", i+1).
				Int("chunks", len(chunks)).
				Msg("failed to send message chunk")
			return err
		}
		if i < len(chunks)-1 {
			d.log.Debug().Dur("pause", d.pause).Msg("pausing before next chunk")
			d.sleep(ctx, d.pause)
		}
	}

	return nil
}

func sleepCtx(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-t.C:
	case <-ctx.Done():
	}
}
