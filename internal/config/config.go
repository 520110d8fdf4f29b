// Package config loads player settings from file, environment, and flags
// via viper. The resulting Config is immutable for the session.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"github.com/spf13/viper"
)

// Settings keys. Flags bound by the CLI use the same names.
const (
	KeyToken            = "token"
	KeyProvider         = "provider"
	KeyInitialWaitMs    = "initial_wait_ms"
	KeyRevealEveryMs    = "reveal_every_ms"
	KeyShuffle          = "shuffle"
	KeyRandomizeOptions = "randomize_options"
	KeyTheme            = "theme"
	KeyMaxAttempts      = "max_attempts"
	KeyLineBudget       = "line_budget"
)

// Classic GitHub personal access token shapes.
var tokenRe = regexp.MustCompile(`^([\da-f]{40}|ghp_\w{36,251})$`)

// Config is the immutable settings object handed to the game.
type Config struct {
	Token            string
	Provider         string // "gist" or "repository"
	InitialWait      time.Duration
	RevealEvery      time.Duration
	Shuffle          bool
	RandomizeOptions bool
	Theme            string // "dark" or "light"
	MaxAttempts      int
	LineBudget       int
}

// Init wires viper: explicit config file or
// $HOME/.config/whichlang/config.yaml, WHICHLANG_* env overrides, and
// GITHUB_TOKEN for the access token. A missing config file is fine.
func Init(cfgFile string) error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("finding home directory: %w", err)
		}
		viper.AddConfigPath(filepath.Join(home, ".config", "whichlang"))
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	viper.SetEnvPrefix("whichlang")
	viper.AutomaticEnv()
	if err := viper.BindEnv(KeyToken, "WHICHLANG_TOKEN", "GITHUB_TOKEN"); err != nil {
		return err
	}

	viper.SetDefault(KeyProvider, "gist")
	viper.SetDefault(KeyInitialWaitMs, 1500)
	viper.SetDefault(KeyRevealEveryMs, 1000)
	viper.SetDefault(KeyShuffle, false)
	viper.SetDefault(KeyRandomizeOptions, false)
	viper.SetDefault(KeyTheme, "dark")
	viper.SetDefault(KeyMaxAttempts, 30)
	viper.SetDefault(KeyLineBudget, 10)

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("reading config: %w", err)
		}
	}
	return nil
}

// Load snapshots the merged settings and validates them.
func Load() (Config, error) {
	cfg := Config{
		Token:            viper.GetString(KeyToken),
		Provider:         viper.GetString(KeyProvider),
		InitialWait:      time.Duration(viper.GetInt(KeyInitialWaitMs)) * time.Millisecond,
		RevealEvery:      time.Duration(viper.GetInt(KeyRevealEveryMs)) * time.Millisecond,
		Shuffle:          viper.GetBool(KeyShuffle),
		RandomizeOptions: viper.GetBool(KeyRandomizeOptions),
		Theme:            viper.GetString(KeyTheme),
		MaxAttempts:      viper.GetInt(KeyMaxAttempts),
		LineBudget:       viper.GetInt(KeyLineBudget),
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.Token != "" && !tokenRe.MatchString(c.Token) {
		return fmt.Errorf("invalid personal access token format")
	}
	switch c.Provider {
	case "gist", "repository":
	default:
		return fmt.Errorf("unknown provider %q (want gist or repository)", c.Provider)
	}
	switch c.Theme {
	case "dark", "light":
	default:
		return fmt.Errorf("unknown theme %q (want dark or light)", c.Theme)
	}
	if c.InitialWait < 0 {
		return fmt.Errorf("initial wait must be >= 0")
	}
	if c.RevealEvery <= 0 {
		return fmt.Errorf("reveal interval must be > 0")
	}
	if c.MaxAttempts <= 0 {
		return fmt.Errorf("max attempts must be > 0")
	}
	if c.LineBudget <= 0 {
		return fmt.Errorf("line budget must be > 0")
	}
	return nil
}

// ValidTokenFormat reports whether a token looks like a classic GitHub
// personal access token.
func ValidTokenFormat(token string) bool {
	return tokenRe.MatchString(token)
}
