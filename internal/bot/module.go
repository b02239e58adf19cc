package bot

import (
	"github.com/rs/zerolog"
	"go.uber.org/fx"

	"github.com/mvhoek/wired/internal/config"
)

type Params struct {
	fx.In

	Config  *config.Config
	Querier Querier
	Vision  Vision `optional:"true"`
	Fetcher Fetcher
	Logger  zerolog.Logger
}

type Result struct {
	fx.Out

	Handler *Handler
	Store   *Store
}

// New wires the conversation store, delivery engine and turn handler for the
// configured variant.
func New(p Params) Result {
	store := NewStore(p.Config.HistoryLimit)
	deliver := NewDeliverer(p.Config.ChunkSize, p.Config.SendPause, p.Logger)

	handler := NewHandler(HandlerParams{
		Variant: p.Config.Variant,
		Store:   store,
		Querier: p.Querier,
		Vision:  p.Vision,
		Fetcher: p.Fetcher,
		Deliver: deliver,
		Logger:  p.Logger,
	})

	return Result{
		Handler: handler,
		Store:   store,
	}
}

func Module() fx.Option {
	return fx.Module(
		"bot",
		fx.Provide(
			New,
		),
	)
}
