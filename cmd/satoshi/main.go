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

// Satoshi analyzes attached images with a multimodal model. Calls are
// single-shot; no conversation history is kept.
var variant = config.Variant{
	Name:          "satoshi",
	EnvPrefix:     "SATOSHI",
	DefaultModel:  "llava-llama3:latest",
	DefaultPrompt: "What is in the image?",
	Scope:         config.ScopeNone,
	Vision:        true,
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
