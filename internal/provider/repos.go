package provider

import (
	"context"
	"fmt"
	"math/rand"
	"strings"

	"github.com/google/go-github/v60/github"
	"github.com/rs/zerolog"

	"github.com/whichlang/whichlang/internal/language"
)

// searchPages bounds the random page picked from repository search results.
const searchPages = 35

// Repositories finds candidates through the search API: a random roster
// language, a random page of recently updated repositories in it, then one
// code-search hit from a popped repository. Repository names are cached
// per language between calls.
type Repositories struct {
	client *github.Client
	rng    *rand.Rand
	cache  map[language.Tag][]string
}

// NewRepositories creates the repository-search provider.
func NewRepositories(client *github.Client, rng *rand.Rand) *Repositories {
	return &Repositories{
		client: client,
		rng:    rng,
		cache:  make(map[language.Tag][]string),
	}
}

// Next picks a language, pops a cached repository for it, and downloads
// one matching file.
func (r *Repositories) Next(ctx context.Context) (*RawFile, error) {
	lang := language.Random(r.rng)

	if len(r.cache[lang]) == 0 {
		repos, err := r.searchRepos(ctx, lang)
		if err != nil {
			return nil, err
		}
		r.cache[lang] = repos
	}

	names := r.cache[lang]
	name := names[len(names)-1]
	r.cache[lang] = names[:len(names)-1]

	return r.pickFile(ctx, lang, name)
}

func (r *Repositories) searchRepos(ctx context.Context, lang language.Tag) ([]string, error) {
	page := r.rng.Intn(searchPages)
	query := fmt.Sprintf("language:%s stars:>20", lang.Linguist())

	result, _, err := r.client.Search.Repositories(ctx, query, &github.SearchOptions{
		Sort:        "updated",
		ListOptions: github.ListOptions{Page: page, PerPage: 30},
	})
	if err != nil {
		return nil, mapRateLimit(err)
	}

	names := make([]string, 0, len(result.Repositories))
	for _, repo := range result.Repositories {
		names = append(names, repo.GetFullName())
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("%w: no %s repositories on page %d", ErrNoEligibleCandidate, lang, page)
	}

	r.rng.Shuffle(len(names), func(i, j int) {
		names[i], names[j] = names[j], names[i]
	})

	zerolog.Ctx(ctx).Debug().
		Stringer("language", lang).
		Int("page", page).
		Int("repositories", len(names)).
		Msg("refilled repository cache")
	return names, nil
}

func (r *Repositories) pickFile(ctx context.Context, lang language.Tag, name string) (*RawFile, error) {
	query := fmt.Sprintf("language:%s repo:%s", lang.Linguist(), name)

	result, _, err := r.client.Search.Code(ctx, query, nil)
	if err != nil {
		return nil, mapRateLimit(err)
	}
	if len(result.CodeResults) == 0 {
		return nil, fmt.Errorf("%w: no %s files in %s", ErrNoEligibleCandidate, lang, name)
	}

	pick := result.CodeResults[r.rng.Intn(len(result.CodeResults))]

	owner, repo, ok := strings.Cut(name, "/")
	if !ok {
		return nil, fmt.Errorf("malformed repository name %q", name)
	}

	content, _, _, err := r.client.Repositories.GetContents(ctx, owner, repo, pick.GetPath(), nil)
	if err != nil {
		return nil, mapRateLimit(err)
	}
	if content == nil {
		return nil, fmt.Errorf("%w: %s resolved to a directory", ErrNoEligibleCandidate, pick.GetPath())
	}

	text, err := content.GetContent()
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", pick.GetPath(), err)
	}

	zerolog.Ctx(ctx).Debug().
		Str("repository", name).
		Str("path", pick.GetPath()).
		Stringer("language", lang).
		Msg("fetched repository file")

	return &RawFile{
		Path:      pick.GetPath(),
		Language:  lang,
		Content:   text,
		SizeBytes: content.GetSize(),
	}, nil
}
