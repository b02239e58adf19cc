package ai

import (
	"go.uber.org/fx"

	"github.com/mvhoek/wired/internal/bot"
	"github.com/mvhoek/wired/internal/config"
)

// Params for creating the model clients
type Params struct {
	fx.In

	Config *config.Config
}

// Result of creating the model clients
type Result struct {
	fx.Out

	Querier bot.Querier
	Vision  bot.Vision
}

// New creates the model clients from configuration. The vision client is
// only built for the vision variant; the others never call it.
func New(p Params) (Result, error) {
	querier, err := NewChatQuerier(p.Config.OllamaHost, p.Config.Model, p.Config.Persona)
	if err != nil {
		return Result{}, err
	}

	res := Result{Querier: querier}

	if p.Config.Variant.Vision {
		vision, err := NewVisionQuerier(p.Config.OllamaHost, p.Config.Model)
		if err != nil {
			return Result{}, err
		}
		res.Vision = vision
	}

	return res, nil
}

// Module provides the model clients
func Module() fx.Option {
	return fx.Module(
		"ai",
		fx.Provide(
			New,
		),
	)
}
