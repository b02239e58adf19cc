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

const syntaxPersona = `Your name is Syntax, but Syn for short.
You are inside of a discord text channel that helps with code generation, code improvement, debugging, and explanations.
Use Discord markup syntax to ensure information gets across correctly.
`

// Syntax records per-channel history for reference but answers each prompt
// standalone; recorded exchanges are not replayed into the model call.
var variant = config.Variant{
	Name:          "syntax",
	EnvPrefix:     "SYNTAX",
	DefaultModel:  "deepseek-coder-v2",
	Persona:       syntaxPersona,
	DefaultPrompt: "Hello",
	Scope:         config.ScopeChannel,
	Replay:        false,
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
