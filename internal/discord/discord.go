package discord

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog"
	"go.uber.org/fx"

	"github.com/mvhoek/wired/internal/bot"
	"github.com/mvhoek/wired/internal/config"
)

// typingRefresh keeps the composing indicator alive; Discord expires it
// after about ten seconds.
const typingRefresh = 8 * time.Second

type Params struct {
	fx.In

	Config  *config.Config
	Handler *bot.Handler
	Logger  zerolog.Logger
}

type Result struct {
	fx.Out

	Session *discordgo.Session
}

// New creates the gateway session, registers the message and ready handlers
// and ties the connection to the fx lifecycle.
func New(lc fx.Lifecycle, p Params) (Result, error) {
	session, err := discordgo.New("Bot " + p.Config.Token)
	if err != nil {
		return Result{}, err
	}

	session.Identify.Intents = discordgo.IntentsGuildMessages |
		discordgo.IntentsDirectMessages |
		discordgo.IntentMessageContent

	log := p.Logger

	session.AddHandler(func(s *discordgo.Session, r *discordgo.Ready) {
		log.Info().
			Str("user", r.User.Username).
			Int("guilds", len(r.Guilds)).
			Msg("connected to discord")
	})

	session.AddHandler(func(s *discordgo.Session, m *discordgo.MessageCreate) {
		handleMessage(s, m, p.Handler, p.Config, &log)
	})

	lc.Append(
		fx.Hook{
			OnStart: func(ctx context.Context) error {
				log.Info().Str("bot", p.Config.Variant.Name).Msg("starting discord bot...")
				return session.Open()
			},
			OnStop: func(ctx context.Context) error {
				log.Info().Str("bot", p.Config.Variant.Name).Msg("stopping discord bot...")
				return session.Close()
			},
		},
	)

	return Result{Session: session}, nil
}

func Module() fx.Option {
	return fx.Module(
		"discord",
		fx.Provide(
			New,
		),
		fx.Invoke(
			func(session *discordgo.Session) {},
		),
	)
}

// handleMessage adapts one gateway event and dispatches the turn on its own
// goroutine so the gateway reader is never blocked by a model call,
// attachment fetch or paced delivery.
func handleMessage(
	s *discordgo.Session,
	m *discordgo.MessageCreate,
	handler *bot.Handler,
	cfg *config.Config,
	log *zerolog.Logger,
) {
	if m.Author == nil || s.State.User == nil {
		return
	}
	if m.Author.ID == s.State.User.ID {
		return
	}

	sink := &channelSink{session: s, channelID: m.ChannelID}
	typing := &typer{session: s, channelID: m.ChannelID}

	// Command surface: "!<name> <prompt>" bypasses trigger resolution.
	prefix := "!" + cfg.Variant.Name
	if m.Content == prefix || strings.HasPrefix(m.Content, prefix+" ") {
		prompt := strings.TrimSpace(strings.TrimPrefix(m.Content, prefix))
		log.Debug().Str("channel_id", m.ChannelID).Msg("command received")
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), cfg.TurnTimeout)
			defer cancel()
			handler.HandleCommand(ctx, m.ChannelID, m.Author.Username, prompt, sink, typing)
		}()
		return
	}

	ev := eventFromMessage(s, m)

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.TurnTimeout)
		defer cancel()
		handler.HandleEvent(ctx, ev, sink, typing)
	}()
}

// eventFromMessage maps the platform event onto the orchestrator's own type.
func eventFromMessage(s *discordgo.Session, m *discordgo.MessageCreate) bot.Event {
	mentioned := false
	for _, u := range m.Mentions {
		if u.ID == s.State.User.ID {
			mentioned = true
			break
		}
	}

	attachments := make([]bot.Attachment, 0, len(m.Attachments))
	for _, a := range m.Attachments {
		attachments = append(attachments, bot.Attachment{
			URL:      a.URL,
			Filename: a.Filename,
		})
	}

	return bot.Event{
		SelfID:      s.State.User.ID,
		AuthorID:    m.Author.ID,
		AuthorName:  m.Author.Username,
		Content:     m.Content,
		ChannelID:   m.ChannelID,
		Mentioned:   mentioned,
		Attachments: attachments,
	}
}

// channelSink implements bot.Sink for one channel.
type channelSink struct {
	session   *discordgo.Session
	channelID string
}

func (c *channelSink) Send(ctx context.Context, text string) error {
	_, err := c.session.ChannelMessageSend(c.channelID, text)
	return err
}

// typer implements bot.Typing. Start begins the composing indicator and
// refreshes it until the returned stop function is called.
type typer struct {
	session   *discordgo.Session
	channelID string
}

func (t *typer) Start(ctx context.Context) func() {
	done := make(chan struct{})

	t.session.ChannelTyping(t.channelID)

	go func() {
		ticker := time.NewTicker(typingRefresh)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				t.session.ChannelTyping(t.channelID)
			case <-done:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() { close(done) })
	}
}
