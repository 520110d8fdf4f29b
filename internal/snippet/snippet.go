// Package snippet turns raw file content into a displayable, sanitized
// snippet with a fixed reveal order.
package snippet

import (
	"errors"
	"math/rand"
	"strings"

	"github.com/whichlang/whichlang/internal/language"
	"github.com/whichlang/whichlang/internal/provider"
)

// ErrEmpty reports that nothing displayable survived sanitization. The
// selector treats it like any other ineligible candidate and retries.
var ErrEmpty = errors.New("no displayable lines")

const (
	defaultLineBudget   = 10
	defaultMaxLineWidth = 96
	tabWidth            = 4
)

// Options controls sanitization. Rand drives both the window choice and the
// shuffled reveal order, so a fixed seed reproduces a round exactly.
type Options struct {
	LineBudget   int
	MaxLineWidth int
	Shuffle      bool
	Rand         *rand.Rand
}

func (o Options) withDefaults() Options {
	if o.LineBudget <= 0 {
		o.LineBudget = defaultLineBudget
	}
	if o.MaxLineWidth <= 0 {
		o.MaxLineWidth = defaultMaxLineWidth
	}
	if o.Rand == nil {
		o.Rand = rand.New(rand.NewSource(1))
	}
	return o
}

// Snippet is the sanitized code shown during one round. Immutable once
// built: both the reveal timer and the renderer read it without locking.
type Snippet struct {
	Language language.Tag
	Lines    []string
	// RevealOrder is a permutation of line indices: identity in sequential
	// mode, shuffled once per snippet otherwise.
	RevealOrder []int
}

// Sanitize cleans raw content for display: it normalizes and truncates
// lines, strips lines that would give the language away (shebangs,
// directives, comment-only lines), collapses blank runs, and windows the
// result to the line budget.
func Sanitize(raw *provider.RawFile, opts Options) (*Snippet, error) {
	opts = opts.withDefaults()

	lines := splitLines(raw.Content, opts.MaxLineWidth)
	lines = stripMarkers(lines)
	lines = collapseBlanks(lines)

	if len(lines) == 0 {
		return nil, ErrEmpty
	}

	lines = window(lines, opts.LineBudget, opts.Rand)
	if len(lines) == 0 {
		return nil, ErrEmpty
	}

	order := make([]int, len(lines))
	if opts.Shuffle {
		copy(order, opts.Rand.Perm(len(lines)))
	} else {
		for i := range order {
			order[i] = i
		}
	}

	return &Snippet{Language: raw.Language, Lines: lines, RevealOrder: order}, nil
}

// splitLines breaks content into display lines: CRs dropped, tabs expanded
// so the dotted placeholders line up, trailing space removed, and anything
// past width truncated with an ellipsis.
func splitLines(content string, width int) []string {
	rawLines := strings.Split(content, "\n")
	lines := make([]string, 0, len(rawLines))

	for _, line := range rawLines {
		line = strings.TrimSuffix(line, "\r")
		line = strings.ReplaceAll(line, "\t", strings.Repeat(" ", tabWidth))
		line = strings.TrimRight(line, " ")

		if runes := []rune(line); len(runes) > width {
			line = string(runes[:width-3]) + "..."
		}
		lines = append(lines, line)
	}
	return lines
}

// Comment and directive prefixes that identify a language on sight. This is
// a best-effort filter over common syntaxes, not a parser.
var markerPrefixes = []string{
	"#!",
	"//",
	"/*",
	"*",
	"#",
	"--",
	";",
	"%",
	"'",
	"<!--",
	"<?php",
	"=begin",
	"rem ",
}

func isMarkerLine(line string) bool {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return false
	}
	lower := strings.ToLower(trimmed)
	for _, prefix := range markerPrefixes {
		if strings.HasPrefix(lower, prefix) {
			return true
		}
	}
	return false
}

// stripMarkers blanks out marker lines; the blanks are collapsed later so
// the surrounding structure survives.
func stripMarkers(lines []string) []string {
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if isMarkerLine(line) {
			out = append(out, "")
			continue
		}
		out = append(out, line)
	}
	return out
}

// collapseBlanks removes consecutive blank lines and trims blank lines at
// both ends.
func collapseBlanks(lines []string) []string {
	out := make([]string, 0, len(lines))
	prevBlank := true // swallows leading blanks
	for _, line := range lines {
		blank := line == ""
		if blank && prevBlank {
			continue
		}
		out = append(out, line)
		prevBlank = blank
	}
	for len(out) > 0 && out[len(out)-1] == "" {
		out = out[:len(out)-1]
	}
	return out
}

// window cuts lines down to at most budget, preferring a window that starts
// right after a blank-line boundary. When no boundary fits, any window is
// acceptable.
func window(lines []string, budget int, rng *rand.Rand) []string {
	if len(lines) <= budget {
		return lines
	}

	var boundaries []int
	for i := 0; i <= len(lines)-budget; i++ {
		if i == 0 || lines[i-1] == "" {
			boundaries = append(boundaries, i)
		}
	}

	var start int
	if len(boundaries) > 0 {
		start = boundaries[rng.Intn(len(boundaries))]
	} else {
		start = rng.Intn(len(lines) - budget + 1)
	}

	out := lines[start : start+budget]
	for len(out) > 0 && out[len(out)-1] == "" {
		out = out[:len(out)-1]
	}
	for len(out) > 0 && out[0] == "" {
		out = out[1:]
	}
	return out
}
