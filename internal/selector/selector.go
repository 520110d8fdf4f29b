// Package selector finds one displayable snippet under a bounded retry
// policy, waiting out API quota resets instead of burning attempts on them.
package selector

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/whichlang/whichlang/internal/provider"
	"github.com/whichlang/whichlang/internal/snippet"
)

const (
	defaultMaxAttempts = 30
	defaultMaxBytes    = 16 * 1024
	defaultMinLines    = 4
)

// Options bounds a selection run. Sleep is a seam for tests; the default
// honors context cancellation.
type Options struct {
	MaxAttempts int
	MaxBytes    int
	MinLines    int
	Snippet     snippet.Options
	Sleep       func(ctx context.Context, d time.Duration) error
}

func (o Options) withDefaults() Options {
	if o.MaxAttempts <= 0 {
		o.MaxAttempts = defaultMaxAttempts
	}
	if o.MaxBytes <= 0 {
		o.MaxBytes = defaultMaxBytes
	}
	if o.MinLines <= 0 {
		o.MinLines = defaultMinLines
	}
	if o.Sleep == nil {
		o.Sleep = sleepContext
	}
	return o
}

// ExhaustedError reports that the attempt budget ran out without finding a
// displayable snippet. Fatal to the current round.
type ExhaustedError struct {
	Attempts int
	LastErr  error
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("no snippet after %d attempts: %v", e.Attempts, e.LastErr)
}

func (e *ExhaustedError) Unwrap() error { return e.LastErr }

// Select asks the provider for candidates until one sanitizes into a valid
// snippet or the attempt budget is spent. A quota suspension waits until
// the reported reset and does not consume an attempt, unless quota errors
// themselves recur past the budget.
func Select(ctx context.Context, p provider.Provider, opts Options) (*snippet.Snippet, error) {
	opts = opts.withDefaults()
	log := zerolog.Ctx(ctx)

	var lastErr error
	limitedRuns := 0

	for attempt := 1; attempt <= opts.MaxAttempts; {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		raw, err := p.Next(ctx)

		var limited *provider.RateLimitedError
		switch {
		case errors.As(err, &limited):
			limitedRuns++
			if limitedRuns > opts.MaxAttempts {
				return nil, &ExhaustedError{Attempts: opts.MaxAttempts, LastErr: err}
			}
			wait := time.Until(limited.Reset)
			if wait < 0 {
				wait = 0
			}
			log.Info().Dur("wait", wait).Msg("rate limited, waiting for quota reset")
			if err := opts.Sleep(ctx, wait); err != nil {
				return nil, err
			}
			continue

		case err != nil:
			lastErr = err
			log.Debug().Err(err).Int("attempt", attempt).Msg("candidate attempt failed")
			attempt++
			continue
		}

		limitedRuns = 0

		sn, err := screen(raw, opts)
		if err != nil {
			lastErr = err
			log.Debug().Err(err).Int("attempt", attempt).Str("path", raw.Path).Msg("candidate rejected")
			attempt++
			continue
		}

		log.Info().
			Str("path", raw.Path).
			Stringer("language", sn.Language).
			Int("lines", len(sn.Lines)).
			Int("attempt", attempt).
			Msg("snippet selected")
		return sn, nil
	}

	if lastErr == nil {
		lastErr = provider.ErrNoEligibleCandidate
	}
	return nil, &ExhaustedError{Attempts: opts.MaxAttempts, LastErr: lastErr}
}

// screen applies the displayability filters and sanitizes the survivor.
func screen(raw *provider.RawFile, opts Options) (*snippet.Snippet, error) {
	if raw.SizeBytes > opts.MaxBytes {
		return nil, fmt.Errorf("%w: %s is %d bytes", provider.ErrNoEligibleCandidate, raw.Path, raw.SizeBytes)
	}
	if lines := strings.Count(raw.Content, "\n") + 1; lines < opts.MinLines {
		return nil, fmt.Errorf("%w: %s has only %d lines", provider.ErrNoEligibleCandidate, raw.Path, lines)
	}

	sn, err := snippet.Sanitize(raw, opts.Snippet)
	if err != nil {
		return nil, fmt.Errorf("%w: sanitizing %s: %w", provider.ErrNoEligibleCandidate, raw.Path, err)
	}
	return sn, nil
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
