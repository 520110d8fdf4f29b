package cli

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/whichlang/whichlang/internal/config"
	"github.com/whichlang/whichlang/internal/game"
	"github.com/whichlang/whichlang/internal/provider"
	"github.com/whichlang/whichlang/internal/selector"
	"github.com/whichlang/whichlang/internal/snippet"
	"github.com/whichlang/whichlang/internal/tui"
)

const debugLogFile = "whichlang.log"

func runPlay(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger, closeLog, err := newLogger()
	if err != nil {
		return err
	}
	defer closeLog()

	ctx := logger.WithContext(cmd.Context())

	if cfg.Token != "" {
		if err := provider.ValidateToken(ctx, cfg.Token); err != nil {
			return fmt.Errorf("the configured token was rejected: %w", err)
		}
	} else {
		logger.Info().Msg("no token configured, running unauthenticated")
	}

	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))
	logger.Debug().Int64("seed", seed).Str("provider", cfg.Provider).Msg("starting session")

	prov, err := provider.New(ctx, provider.Kind(cfg.Provider), cfg.Token, rng)
	if err != nil {
		return err
	}

	selOpts := selector.Options{
		MaxAttempts: cfg.MaxAttempts,
		Snippet: snippet.Options{
			LineBudget: cfg.LineBudget,
			Shuffle:    cfg.Shuffle,
			Rand:       rng,
		},
	}
	selectFn := func(ctx context.Context) (*snippet.Snippet, error) {
		return selector.Select(ctx, prov, selOpts)
	}

	tuiCfg := tui.Config{
		InitialWait:      cfg.InitialWait,
		RevealEvery:      cfg.RevealEvery,
		RandomizeOptions: cfg.RandomizeOptions,
		ChromaStyle:      chromaStyle(cfg.Theme),
	}

	session := &game.Session{}
	runErr := tui.Run(ctx, tuiCfg, selectFn, session, rng)

	// Printed after the alternate screen is torn down.
	fmt.Printf("You played %d round(s). Best streak: %d\n", session.RoundsPlayed, session.BestStreak)

	var exhausted *selector.ExhaustedError
	if errors.As(runErr, &exhausted) {
		return fmt.Errorf("could not find a playable snippet: %w", exhausted)
	}
	return runErr
}

func chromaStyle(theme string) string {
	if theme == "light" {
		return "github"
	}
	return "dracula"
}

// newLogger writes to a file when --debug is set; the TUI owns the
// terminal, so nothing may log there.
func newLogger() (zerolog.Logger, func(), error) {
	if !debug {
		return zerolog.Nop(), func() {}, nil
	}
	f, err := os.OpenFile(debugLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return zerolog.Logger{}, nil, fmt.Errorf("opening log file: %w", err)
	}
	logger := zerolog.New(f).With().Timestamp().Logger()
	return logger, func() { _ = f.Close() }, nil
}
