package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/magefree/heat-duel-go/internal/duel/rules"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g.
// HEATDUEL_DUEL_MODE=simultaneous.
const EnvPrefix = "HEATDUEL"

// Config holds all runtime settings.
type Config struct {
	Logging LoggingConfig `mapstructure:"logging"`
	Duel    DuelConfig    `mapstructure:"duel"`
}

// LoggingConfig holds logger settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// DuelConfig holds settings for a single duel run.
type DuelConfig struct {
	Mode      string        `mapstructure:"mode"`
	TurnDelay time.Duration `mapstructure:"turn_delay"`
	MaxTurns  int           `mapstructure:"max_turns"`
	Decks     DecksConfig   `mapstructure:"decks"`
	Bots      BotsConfig    `mapstructure:"bots"`
}

// DecksConfig names the deck file for each side. An empty path selects the
// built-in starter deck.
type DecksConfig struct {
	P1 string `mapstructure:"p1"`
	P2 string `mapstructure:"p2"`
}

// BotsConfig names the strategy that plays each side.
type BotsConfig struct {
	P1 string `mapstructure:"p1"`
	P2 string `mapstructure:"p2"`
}

// ParsedMode returns the configured duel mode.
func (c DuelConfig) ParsedMode() (rules.Mode, error) {
	return rules.ParseMode(c.Mode)
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{Level: "info", Format: "console"},
		Duel: DuelConfig{
			Mode:      rules.ModeClassic.String(),
			TurnDelay: time.Second,
			MaxTurns:  200,
			Bots:      BotsConfig{P1: "first-attack", P2: "first-attack"},
		},
	}
}

func setDefaults(v *viper.Viper) {
	def := Default()
	v.SetDefault("logging.level", def.Logging.Level)
	v.SetDefault("logging.format", def.Logging.Format)
	v.SetDefault("duel.mode", def.Duel.Mode)
	v.SetDefault("duel.turn_delay", def.Duel.TurnDelay)
	v.SetDefault("duel.max_turns", def.Duel.MaxTurns)
	v.SetDefault("duel.decks.p1", "")
	v.SetDefault("duel.decks.p2", "")
	v.SetDefault("duel.bots.p1", def.Duel.Bots.P1)
	v.SetDefault("duel.bots.p2", def.Duel.Bots.P2)
}

// Load reads configuration from path, then applies HEATDUEL_* environment
// overrides. A missing file is not an error; defaults are used instead.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("read config %s: %w", path, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks settings that would otherwise fail later at runtime.
func (c *Config) Validate() error {
	if _, err := c.Duel.ParsedMode(); err != nil {
		return fmt.Errorf("duel.mode: %w", err)
	}
	if c.Duel.TurnDelay < 0 {
		return fmt.Errorf("duel.turn_delay must not be negative, got %s", c.Duel.TurnDelay)
	}
	if c.Duel.MaxTurns <= 0 {
		return fmt.Errorf("duel.max_turns must be positive, got %d", c.Duel.MaxTurns)
	}
	switch c.Logging.Format {
	case "json", "console", "":
	default:
		return fmt.Errorf("logging.format must be json or console, got %q", c.Logging.Format)
	}
	return nil
}
