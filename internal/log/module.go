package log

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

// NewLogger creates the console logger every bot process writes to.
func NewLogger() zerolog.Logger {
	writer := zerolog.ConsoleWriter{
		Out:        os.Stdout,
		TimeFormat: time.RFC3339,
	}

	return zerolog.New(writer).
		Level(levelFromEnv()).
		With().
		Timestamp().
		Caller().
		Logger()
}

// levelFromEnv lowers the threshold when DEBUG=true is set.
func levelFromEnv() zerolog.Level {
	if os.Getenv("DEBUG") == "true" {
		return zerolog.DebugLevel
	}
	return zerolog.InfoLevel
}

func Module() fx.Option {
	return fx.Module(
		"log",
		fx.Provide(
			NewLogger,
		),
	)
}
