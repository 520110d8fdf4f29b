// Package provider fetches candidate source files from GitHub.
//
// A Provider hands out one candidate file per call. Two strategies exist:
// random public gists and repository code search. Both speak through
// go-github so quota errors arrive typed and carry the reset instant.
package provider

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"time"

	"github.com/google/go-github/v60/github"
	"golang.org/x/oauth2"

	"github.com/whichlang/whichlang/internal/language"
)

// RawFile is one candidate file pulled from the host, before sanitization.
type RawFile struct {
	Path      string
	Language  language.Tag
	Content   string
	SizeBytes int
}

// ErrNoEligibleCandidate reports that a candidate container held no file
// matching the roster. The selector retries on it.
var ErrNoEligibleCandidate = errors.New("no eligible candidate")

// RateLimitedError reports an exhausted API quota and when it resets.
type RateLimitedError struct {
	Reset time.Time
}

func (e *RateLimitedError) Error() string {
	return fmt.Sprintf("rate limited until %s", e.Reset.Format(time.RFC3339))
}

// Provider produces one candidate file per call. Next returns
// ErrNoEligibleCandidate when a fetched batch held nothing usable, and
// *RateLimitedError when the API quota ran out.
type Provider interface {
	Next(ctx context.Context) (*RawFile, error)
}

// Kind selects the candidate discovery strategy.
type Kind string

const (
	KindGist       Kind = "gist"
	KindRepository Kind = "repository"
)

// New builds the provider for the given kind. An empty token means
// unauthenticated requests, which only lowers the quota.
func New(ctx context.Context, kind Kind, token string, rng *rand.Rand) (Provider, error) {
	client, httpc := newClients(ctx, token)
	switch kind {
	case KindGist:
		return NewGists(client, httpc, rng), nil
	case KindRepository:
		return NewRepositories(client, rng), nil
	default:
		return nil, fmt.Errorf("unknown provider kind %q", kind)
	}
}

func newClients(ctx context.Context, token string) (*github.Client, *http.Client) {
	if token == "" {
		return github.NewClient(nil), http.DefaultClient
	}
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	tc := oauth2.NewClient(ctx, ts)
	return github.NewClient(tc), tc
}

// ValidateToken checks a configured token against the rate-limit endpoint.
// The quota numbers themselves are not used.
func ValidateToken(ctx context.Context, token string) error {
	client, _ := newClients(ctx, token)
	if _, _, err := client.RateLimit.Get(ctx); err != nil {
		return fmt.Errorf("validating token: %w", mapRateLimit(err))
	}
	return nil
}

// mapRateLimit converts go-github quota errors into *RateLimitedError so
// callers can wait out the reset instead of burning retries.
func mapRateLimit(err error) error {
	var limit *github.RateLimitError
	if errors.As(err, &limit) {
		return &RateLimitedError{Reset: limit.Rate.Reset.Time}
	}
	var abuse *github.AbuseRateLimitError
	if errors.As(err, &abuse) {
		reset := time.Now().Add(30 * time.Second)
		if abuse.RetryAfter != nil {
			reset = time.Now().Add(*abuse.RetryAfter)
		}
		return &RateLimitedError{Reset: reset}
	}
	return err
}

// fetchRaw downloads plain-text content, e.g. a gist's raw URL.
func fetchRaw(ctx context.Context, httpc *http.Client, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("building request: %w", err)
	}
	resp, err := httpc.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetching %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetching %s: unexpected status %d", url, resp.StatusCode)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", url, err)
	}
	return string(data), nil
}
