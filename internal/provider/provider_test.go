package provider

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/google/go-github/v60/github"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/whichlang/whichlang/internal/language"
)

// newTestClient points a real go-github client at a local fake API.
func newTestClient(t *testing.T, mux *http.ServeMux) (*github.Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	client := github.NewClient(nil)
	base, err := url.Parse(srv.URL + "/")
	require.NoError(t, err)
	client.BaseURL = base
	return client, srv
}

func TestGistsNextReturnsEligibleFile(t *testing.T) {
	mux := http.NewServeMux()
	client, srv := newTestClient(t, mux)

	mux.HandleFunc("/gists/public", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `[{
			"id": "g1",
			"files": {
				"main.py": {"filename": "main.py", "language": "Python", "size": 25, "raw_url": %q},
				"notes.txt": {"filename": "notes.txt", "language": "Text", "size": 10, "raw_url": %q}
			}
		}]`, srv.URL+"/raw/main.py", srv.URL+"/raw/notes.txt")
	})
	mux.HandleFunc("/raw/main.py", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "import sys\nprint(sys.argv)\n")
	})

	g := NewGists(client, srv.Client(), rand.New(rand.NewSource(1)))

	raw, err := g.Next(context.Background())
	require.NoError(t, err)
	assert.Equal(t, language.Python, raw.Language)
	assert.Equal(t, "main.py", raw.Path)
	assert.Contains(t, raw.Content, "print(sys.argv)")
	assert.Equal(t, len(raw.Content), raw.SizeBytes)
}

func TestGistsNoRosterMatch(t *testing.T) {
	mux := http.NewServeMux()
	client, srv := newTestClient(t, mux)

	mux.HandleFunc("/gists/public", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[{
			"id": "g1",
			"files": {"a.bf": {"filename": "a.bf", "language": "Brainfuck", "size": 5, "raw_url": "http://unused"}}
		}]`)
	})

	g := NewGists(client, srv.Client(), rand.New(rand.NewSource(1)))

	_, err := g.Next(context.Background())
	assert.ErrorIs(t, err, ErrNoEligibleCandidate)
}

func TestRateLimitIsTyped(t *testing.T) {
	reset := time.Now().Add(90 * time.Second).Truncate(time.Second)

	mux := http.NewServeMux()
	client, srv := newTestClient(t, mux)

	mux.HandleFunc("/gists/public", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-RateLimit-Limit", "60")
		w.Header().Set("X-RateLimit-Remaining", "0")
		w.Header().Set("X-RateLimit-Reset", fmt.Sprint(reset.Unix()))
		w.WriteHeader(http.StatusForbidden)
		fmt.Fprint(w, `{"message": "API rate limit exceeded"}`)
	})

	g := NewGists(client, srv.Client(), rand.New(rand.NewSource(1)))

	_, err := g.Next(context.Background())

	var limited *RateLimitedError
	require.ErrorAs(t, err, &limited)
	assert.Equal(t, reset.Unix(), limited.Reset.Unix())
}

func TestRepositoriesNextDownloadsSearchHit(t *testing.T) {
	mux := http.NewServeMux()
	client, _ := newTestClient(t, mux)

	mux.HandleFunc("/search/repositories", func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.Query().Get("q"), "stars:>20")
		fmt.Fprint(w, `{"total_count": 1, "items": [{"id": 1, "full_name": "octo/widgets"}]}`)
	})
	mux.HandleFunc("/search/code", func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.Query().Get("q"), "repo:octo/widgets")
		fmt.Fprint(w, `{"total_count": 1, "items": [{"name": "widget.x", "path": "src/widget.x"}]}`)
	})
	mux.HandleFunc("/repos/octo/widgets/contents/src/widget.x", func(w http.ResponseWriter, r *http.Request) {
		body := "widget := assemble()\nship(widget)\n"
		fmt.Fprintf(w, `{
			"type": "file", "encoding": "base64", "size": %d,
			"name": "widget.x", "path": "src/widget.x", "content": %q
		}`, len(body), base64.StdEncoding.EncodeToString([]byte(body)))
	})

	p := NewRepositories(client, rand.New(rand.NewSource(1)))

	raw, err := p.Next(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "src/widget.x", raw.Path)
	assert.Contains(t, raw.Content, "ship(widget)")
}

func TestRepositoriesEmptySearch(t *testing.T) {
	mux := http.NewServeMux()
	client, _ := newTestClient(t, mux)

	mux.HandleFunc("/search/repositories", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"total_count": 0, "items": []}`)
	})

	p := NewRepositories(client, rand.New(rand.NewSource(1)))

	_, err := p.Next(context.Background())
	assert.ErrorIs(t, err, ErrNoEligibleCandidate)
}

func TestMapRateLimitPassthrough(t *testing.T) {
	plain := errors.New("boom")
	assert.Equal(t, plain, mapRateLimit(plain))

	retry := 5 * time.Second
	abuse := &github.AbuseRateLimitError{RetryAfter: &retry}
	var limited *RateLimitedError
	require.ErrorAs(t, mapRateLimit(abuse), &limited)
	assert.WithinDuration(t, time.Now().Add(retry), limited.Reset, time.Second)
}

func TestNewRejectsUnknownKind(t *testing.T) {
	_, err := New(context.Background(), Kind("bitbucket"), "", rand.New(rand.NewSource(1)))
	assert.Error(t, err)
}
