package provider

import (
	"context"
	"math/rand"
	"net/http"

	"github.com/google/go-github/v60/github"
	"github.com/rs/zerolog"

	"github.com/whichlang/whichlang/internal/language"
)

// gistPages is the number of public gist listing pages worth sampling.
const gistPages = 100

type gistCandidate struct {
	rawURL string
	path   string
	lang   language.Tag
	size   int
}

// Gists serves candidates from random pages of GitHub's public gists.
// Each listing call yields a batch; candidates are popped one per Next
// and the batch is refilled when drained.
type Gists struct {
	client *github.Client
	httpc  *http.Client
	rng    *rand.Rand
	queue  []gistCandidate
}

// NewGists creates the gist-backed provider.
func NewGists(client *github.Client, httpc *http.Client, rng *rand.Rand) *Gists {
	return &Gists{client: client, httpc: httpc, rng: rng}
}

// Next pops one queued candidate and fetches its raw content.
func (g *Gists) Next(ctx context.Context) (*RawFile, error) {
	if len(g.queue) == 0 {
		if err := g.refill(ctx); err != nil {
			return nil, err
		}
	}

	cand := g.queue[len(g.queue)-1]
	g.queue = g.queue[:len(g.queue)-1]

	content, err := fetchRaw(ctx, g.httpc, cand.rawURL)
	if err != nil {
		return nil, err
	}

	zerolog.Ctx(ctx).Debug().
		Str("path", cand.path).
		Stringer("language", cand.lang).
		Int("bytes", len(content)).
		Msg("fetched gist file")

	return &RawFile{
		Path:      cand.path,
		Language:  cand.lang,
		Content:   content,
		SizeBytes: len(content),
	}, nil
}

// refill lists one random page of public gists and keeps, per gist, the
// first file whose reported language is in the roster.
func (g *Gists) refill(ctx context.Context) error {
	page := g.rng.Intn(gistPages + 1)

	gists, _, err := g.client.Gists.ListAll(ctx, &github.GistListOptions{
		ListOptions: github.ListOptions{Page: page, PerPage: 100},
	})
	if err != nil {
		return mapRateLimit(err)
	}

	for _, gist := range gists {
		for _, file := range gist.Files {
			tag, ok := language.FromLinguist(file.GetLanguage())
			if !ok {
				continue
			}
			g.queue = append(g.queue, gistCandidate{
				rawURL: file.GetRawURL(),
				path:   file.GetFilename(),
				lang:   tag,
				size:   file.GetSize(),
			})
			break
		}
	}

	if len(g.queue) == 0 {
		return ErrNoEligibleCandidate
	}

	g.rng.Shuffle(len(g.queue), func(i, j int) {
		g.queue[i], g.queue[j] = g.queue[j], g.queue[i]
	})

	zerolog.Ctx(ctx).Debug().
		Int("page", page).
		Int("candidates", len(g.queue)).
		Msg("refilled gist queue")
	return nil
}
