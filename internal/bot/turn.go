package bot

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/mvhoek/wired/internal/config"
)

const (
	fallbackReply    = "I'm sorry, but I couldn't process that."
	visionFallback   = "I'm sorry, I couldn't process the image."
	attachImageReply = "Please attach an image for me to analyze."
	fetchFailedReply = "I couldn't fetch the image."
)

// Handler runs one complete turn per inbound event: resolve trigger, assemble
// context, call the model, record the exchange, deliver the reply. It is
// independent of any platform event loop; the adapter invokes it once per
// event.
type Handler struct {
	variant config.Variant
	trigger Trigger
	store   *Store
	querier Querier
	vision  Vision
	fetcher Fetcher
	deliver *Deliverer
	log     zerolog.Logger
}

// HandlerParams collects the collaborators of a Handler.
type HandlerParams struct {
	Variant config.Variant
	Store   *Store
	Querier Querier
	Vision  Vision
	Fetcher Fetcher
	Deliver *Deliverer
	Logger  zerolog.Logger
}

// NewHandler creates a turn handler for one bot variant.
func NewHandler(p HandlerParams) *Handler {
	return &Handler{
		variant: p.Variant,
		trigger: Trigger{
			Wake:          "hello " + p.Variant.Name,
			DefaultPrompt: p.Variant.DefaultPrompt,
		},
		store:   p.Store,
		querier: p.Querier,
		vision:  p.Vision,
		fetcher: p.Fetcher,
		deliver: p.Deliver,
		log:     p.Logger,
	}
}

// HandleEvent processes one inbound message event. Not-addressed events are
// ignored. Errors are terminal for the turn only: the user gets a short
// apology or instruction in-channel and the handler returns.
func (h *Handler) HandleEvent(ctx context.Context, ev Event, sink Sink, typing Typing) {
	res := h.trigger.Resolve(ev)
	if !res.Addressed {
		return
	}

	log := h.log.With().
		Str("turn_id", uuid.NewString()).
		Str("channel_id", ev.ChannelID).
		Logger()

	if h.variant.Vision {
		h.analyzeImage(ctx, res, sink, typing, log)
		return
	}

	h.converse(ctx, h.scopeFor(ev.ChannelID), ev.AuthorName, res.Prompt, sink, typing, log)
}

// HandleCommand funnels free-text from the bot's named command directly into
// the model call path, bypassing trigger resolution. The vision variant's
// command only instructs the user to attach an image, as there is no
// attachment to analyze on the command surface.
func (h *Handler) HandleCommand(ctx context.Context, channelID, authorName, prompt string, sink Sink, typing Typing) {
	log := h.log.With().
		Str("turn_id", uuid.NewString()).
		Str("channel_id", channelID).
		Logger()

	if h.variant.Vision {
		if err := sink.Send(ctx, attachImageReply); err != nil {
			log.Error().Err(err).Msg("failed to send instruction")
		}
		return
	}

	if prompt == "" {
		prompt = h.variant.DefaultPrompt
	}

	h.converse(ctx, h.scopeFor(channelID), authorName, prompt, sink, typing, log)
}

// converse runs the text turn: fetch context, call the model, record the
// exchange, then deliver. The typing indicator is held for the model phase
// and released unconditionally before delivery starts.
func (h *Handler) converse(ctx context.Context, scope, speaker, prompt string, sink Sink, typing Typing, log zerolog.Logger) {
	reply, err := func() (string, error) {
		stop := typing.Start(ctx)
		defer stop()

		var history []Exchange
		if h.variant.Replay {
			history = h.store.History(scope)
		}

		log.Info().Int("history", len(history)).Msg("model request sending")
		reply, err := h.querier.Query(ctx, prompt, history)
		if err != nil {
			return "", err
		}

		if h.variant.Scope != config.ScopeNone {
			h.store.Append(scope, Exchange{
				Speaker:  speaker,
				Prompt:   prompt,
				Response: reply,
				At:       time.Now(),
			})
		}
		return reply, nil
	}()

	if err != nil {
		log.Error().Err(err).Msg("unable to generate model response")
		reply = fallbackReply
	} else {
		log.Info().Int("length", len(reply)).Msg("model response received")
	}

	h.deliver.Deliver(ctx, reply, sink)
}

// analyzeImage runs the image turn. No attachment short-circuits into a
// clarification reply without calling the model; a failed attachment fetch
// delivers a fixed error message.
func (h *Handler) analyzeImage(ctx context.Context, res TriggerResult, sink Sink, typing Typing, log zerolog.Logger) {
	if res.ImageURL == "" {
		if err := sink.Send(ctx, attachImageReply); err != nil {
			log.Error().Err(err).Msg("failed to send clarification")
		}
		return
	}

	image, err := h.fetcher.Fetch(ctx, res.ImageURL)
	if err != nil {
		log.Error().Err(err).Str("url", res.ImageURL).Msg("unable to fetch attachment")
		if err := sink.Send(ctx, fetchFailedReply); err != nil {
			log.Error().Err(err).Msg("failed to send fetch error reply")
		}
		return
	}

	reply, err := func() (string, error) {
		stop := typing.Start(ctx)
		defer stop()

		log.Info().Int("image_bytes", len(image)).Msg("vision request sending")
		return h.vision.Describe(ctx, res.Prompt, image)
	}()

	if err != nil {
		log.Error().Err(err).Msg("unable to analyze image")
		reply = visionFallback
	} else {
		log.Info().Int("length", len(reply)).Msg("vision response received")
	}

	h.deliver.Deliver(ctx, reply, sink)
}

// scopeFor maps a channel to the variant's history scope key.
func (h *Handler) scopeFor(channelID string) string {
	if h.variant.Scope == config.ScopeGlobal {
		return GlobalScope
	}
	return channelID
}
