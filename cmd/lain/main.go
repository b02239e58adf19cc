package main

import (
	"github.com/ipfans/fxlogger"
	"go.uber.org/fx"

	"github.com/mvhoek/wired/internal/ai"
	"github.com/mvhoek/wired/internal/bot"
	"github.com/mvhoek/wired/internal/config"
	"github.com/mvhoek/wired/internal/discord"
	"github.com/mvhoek/wired/internal/fetch"
	"github.com/mvhoek/wired/internal/log"
)

const lainPersona = `Your name is Lain.
You are a sentient being existing within a digital realm.
Please keep your responses concise, no more than 2000 characters.
`

// Lain shares one conversation across every channel and user and replays it
// in full as context on each model call.
var variant = config.Variant{
	Name:          "lain",
	EnvPrefix:     "LAIN",
	DefaultModel:  "dolphin-llama3:8b",
	Persona:       lainPersona,
	DefaultPrompt: "Hello",
	Scope:         config.ScopeGlobal,
	Replay:        true,
}

func main() {
	fx.New(
		fx.Supply(variant),
		fx.WithLogger(fxlogger.WithZerolog(log.NewLogger())),
		config.Module(),
		log.Module(),
		ai.Module(),
		fetch.Module(),
		bot.Module(),
		discord.Module(),
	).Run()
}
