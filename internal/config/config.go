package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/kelseyhightower/envconfig"
	"go.uber.org/fx"
)

// ScopePolicy decides which conversation history a bot variant keeps.
type ScopePolicy int

const (
	// ScopeNone records no history at all.
	ScopeNone ScopePolicy = iota
	// ScopeGlobal keeps a single history shared by every channel and user.
	ScopeGlobal
	// ScopeChannel keeps one history per channel.
	ScopeChannel
)

// Variant is the compile-time description of one bot personality. Each
// cmd/<name> binary supplies its own.
type Variant struct {
	Name          string // bot name; also the command name and wake-phrase suffix
	EnvPrefix     string // envconfig prefix, e.g. "LAIN" -> LAIN_TOKEN
	DefaultModel  string
	Persona       string // system prompt, overridable from config.toml
	DefaultPrompt string // substituted when the stripped prompt is empty
	Scope         ScopePolicy
	Replay        bool // feed recorded history back into the model call
	Vision        bool // image-analysis variant
}

// Config holds all runtime configuration for one bot instance, loaded from
// environment variables under the variant's prefix.
type Config struct {
	Token        string        `envconfig:"TOKEN" required:"true"`
	Model        string        `envconfig:"MODEL"`
	OllamaHost   string        `envconfig:"OLLAMA_HOST" default:"http://localhost:11434"`
	HistoryLimit int           `envconfig:"HISTORY_LIMIT" default:"50"`
	ChunkSize    int           `envconfig:"CHUNK_SIZE" default:"2000"`
	SendPause    time.Duration `envconfig:"SEND_PAUSE" default:"15s"`
	TurnTimeout  time.Duration `envconfig:"TURN_TIMEOUT" default:"2m"`

	// Path to the optional personas file.
	ConfigFile string `envconfig:"CONFIG_FILE" default:"config.toml"`

	// Variant this instance is running as.
	Variant Variant `ignored:"true"`

	// Persona resolved from config.toml or the variant default.
	Persona string `ignored:"true"`
}

// FileConfig represents the structure of config.toml.
type FileConfig struct {
	Personas map[string]string `toml:"personas"`
}

// LoadEnv loads the configuration from environment variables under the given
// prefix.
func (c Config) LoadEnv(prefix string) (Config, error) {
	cfg := c

	if err := envconfig.Process(prefix, &cfg); err != nil {
		return c, err
	}

	return cfg, nil
}

// LoadFile loads persona overrides from config.toml. A missing file is not an
// error; the variant's built-in persona is kept.
func (c *Config) LoadFile() error {
	configPath := c.ConfigFile
	if !filepath.IsAbs(configPath) {
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			// Try the executable's directory as well.
			if execPath, err := os.Executable(); err == nil {
				configPath = filepath.Join(filepath.Dir(execPath), c.ConfigFile)
			}
		}
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil
	}

	var fileConfig FileConfig
	if _, err := toml.DecodeFile(configPath, &fileConfig); err != nil {
		return err
	}

	if persona, ok := fileConfig.Personas[c.Variant.Name]; ok && persona != "" {
		c.Persona = persona
	}

	return nil
}

func New(variant Variant) (*Config, error) {
	var cfg Config
	loadedCfg, err := cfg.LoadEnv(variant.EnvPrefix)
	if err != nil {
		return nil, err
	}

	loadedCfg.Variant = variant
	loadedCfg.Persona = variant.Persona
	if loadedCfg.Model == "" {
		loadedCfg.Model = variant.DefaultModel
	}

	if err := loadedCfg.LoadFile(); err != nil {
		return nil, err
	}

	return &loadedCfg, nil
}

func Module() fx.Option {
	return fx.Module(
		"config",
		fx.Provide(
			New,
		),
	)
}
