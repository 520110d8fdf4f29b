// Package game holds the round state machine and session scoring. It is
// pure bookkeeping: the TUI drives it and renders from it, but nothing here
// touches the terminal or the network.
package game

import (
	"strings"

	"github.com/whichlang/whichlang/internal/language"
	"github.com/whichlang/whichlang/internal/snippet"
)

// Phase is the round's position in its lifecycle.
type Phase int

const (
	PhaseAwaitingStart Phase = iota
	PhaseRevealing
	PhaseAwaitingGuess
	PhaseResolved
)

func (p Phase) String() string {
	switch p {
	case PhaseAwaitingStart:
		return "awaiting-start"
	case PhaseRevealing:
		return "revealing"
	case PhaseAwaitingGuess:
		return "awaiting-guess"
	case PhaseResolved:
		return "resolved"
	default:
		return "unknown"
	}
}

// Outcome records how one round ended. Guess is nil when the round was
// skipped without an answer.
type Outcome struct {
	Language      language.Tag
	Guess         *language.Tag
	Correct       bool
	LinesRevealed int
}

// Round tracks one snippet through reveal and guess. Lines become visible
// strictly in the snippet's reveal order and never become hidden again.
type Round struct {
	snippet  *snippet.Snippet
	options  []language.Tag
	phase    Phase
	cursor   int // next position in RevealOrder
	revealed []bool
	shown    int // non-blank lines disclosed so far
	outcome  *Outcome
}

// NewRound builds a round in PhaseAwaitingStart. The options are the guess
// list presented before any code is shown.
func NewRound(sn *snippet.Snippet, options []language.Tag) *Round {
	return &Round{
		snippet:  sn,
		options:  options,
		revealed: make([]bool, len(sn.Lines)),
	}
}

func (r *Round) Snippet() *snippet.Snippet { return r.snippet }
func (r *Round) Options() []language.Tag   { return r.options }
func (r *Round) Phase() Phase              { return r.phase }
func (r *Round) Revealed(i int) bool       { return r.revealed[i] }

// LinesRevealed counts the non-blank lines disclosed so far.
func (r *Round) LinesRevealed() int { return r.shown }

// Start moves the round onto the reveal timer. No-op outside
// PhaseAwaitingStart.
func (r *Round) Start() {
	if r.phase == PhaseAwaitingStart {
		r.phase = PhaseRevealing
	}
}

// RevealNext discloses the next line in reveal order. Blank lines cost no
// tick: they are disclosed for free along with the next real line. It
// reports whether a line was revealed; once every line is visible the round
// moves to PhaseAwaitingGuess and waits on input indefinitely.
func (r *Round) RevealNext() bool {
	if r.phase != PhaseRevealing {
		return false
	}

	for r.cursor < len(r.snippet.RevealOrder) {
		idx := r.snippet.RevealOrder[r.cursor]
		r.cursor++
		r.revealed[idx] = true

		if strings.TrimSpace(r.snippet.Lines[idx]) == "" {
			continue
		}

		r.shown++
		if r.cursor == len(r.snippet.RevealOrder) {
			r.phase = PhaseAwaitingGuess
		}
		return true
	}

	r.phase = PhaseAwaitingGuess
	return false
}

// Guess resolves the round against the snippet's language. Valid in any
// phase before resolution, including before the first line is shown.
func (r *Round) Guess(tag language.Tag) Outcome {
	g := tag
	return r.resolve(&g)
}

// Skip resolves the round without a guess. Never correct.
func (r *Round) Skip() Outcome {
	return r.resolve(nil)
}

func (r *Round) resolve(guess *language.Tag) Outcome {
	if r.outcome != nil {
		return *r.outcome
	}
	r.phase = PhaseResolved
	o := Outcome{
		Language:      r.snippet.Language,
		Guess:         guess,
		Correct:       guess != nil && *guess == r.snippet.Language,
		LinesRevealed: r.shown,
	}
	r.outcome = &o
	return o
}
