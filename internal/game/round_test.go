package game

import (
	"fmt"
	"testing"

	"github.com/whichlang/whichlang/internal/language"
	"github.com/whichlang/whichlang/internal/snippet"
)

func testSnippet(lang language.Tag, lines []string) *snippet.Snippet {
	order := make([]int, len(lines))
	for i := range order {
		order[i] = i
	}
	return &snippet.Snippet{Language: lang, Lines: lines, RevealOrder: order}
}

func TestRevealIsMonotonic(t *testing.T) {
	r := NewRound(testSnippet(language.Go, []string{"a", "", "b", "c"}), language.All)
	r.Start()

	if r.Phase() != PhaseRevealing {
		t.Fatalf("expected revealing phase, got %v", r.Phase())
	}

	if !r.RevealNext() {
		t.Fatal("expected first reveal to disclose a line")
	}
	if !r.Revealed(0) || r.LinesRevealed() != 1 {
		t.Errorf("expected line 0 revealed, got shown=%d", r.LinesRevealed())
	}

	// The blank line costs no tick: it comes along with the next real line.
	if !r.RevealNext() {
		t.Fatal("expected second reveal to disclose a line")
	}
	if !r.Revealed(1) || !r.Revealed(2) {
		t.Error("expected blank line 1 and line 2 both visible")
	}
	if r.LinesRevealed() != 2 {
		t.Errorf("blank lines must not count, got %d", r.LinesRevealed())
	}

	// Nothing already revealed may disappear.
	for i := 0; i < 3; i++ {
		if !r.Revealed(i) {
			t.Errorf("line %d became hidden", i)
		}
	}
}

func TestRevealCompletionAwaitsGuess(t *testing.T) {
	r := NewRound(testSnippet(language.Go, []string{"a", "b"}), language.All)
	r.Start()

	r.RevealNext()
	r.RevealNext()

	if r.Phase() != PhaseAwaitingGuess {
		t.Fatalf("expected awaiting-guess after full reveal, got %v", r.Phase())
	}
	if r.RevealNext() {
		t.Error("expected no further reveals after completion")
	}
}

func TestGuessBeforeFirstReveal(t *testing.T) {
	r := NewRound(testSnippet(language.Python, []string{"x = 1"}), language.All)

	o := r.Guess(language.Python)
	if !o.Correct {
		t.Error("expected correct guess")
	}
	if o.LinesRevealed != 0 {
		t.Errorf("expected 0 lines revealed at guess, got %d", o.LinesRevealed)
	}
	if r.Phase() != PhaseResolved {
		t.Errorf("expected resolved phase, got %v", r.Phase())
	}
}

func TestSkipProducesNoGuess(t *testing.T) {
	r := NewRound(testSnippet(language.Ruby, []string{"x = 1"}), language.All)
	r.Start()

	o := r.Skip()
	if o.Guess != nil {
		t.Errorf("expected absent guess, got %v", *o.Guess)
	}
	if o.Correct {
		t.Error("a skip is never correct")
	}
}

func TestResolveIsIdempotent(t *testing.T) {
	r := NewRound(testSnippet(language.Go, []string{"a"}), language.All)
	r.Start()

	first := r.Guess(language.Go)
	second := r.Guess(language.Rust)

	if second != first {
		t.Errorf("second resolution must return the original outcome: %+v vs %+v", second, first)
	}
}

func TestWrongGuessAfterFiveLines(t *testing.T) {
	lines := make([]string, 20)
	for i := range lines {
		lines[i] = fmt.Sprintf("line %d", i)
	}
	r := NewRound(testSnippet(language.Python, lines), language.All)
	r.Start()

	for i := 0; i < 5; i++ {
		r.RevealNext()
	}

	o := r.Guess(language.Go)
	if o.Correct {
		t.Error("Go is not Python")
	}
	if o.Language != language.Python || o.Guess == nil || *o.Guess != language.Go {
		t.Errorf("unexpected outcome: %+v", o)
	}
	if o.LinesRevealed != 5 {
		t.Errorf("expected 5 lines revealed at guess, got %d", o.LinesRevealed)
	}

	var s Session
	s.CurrentStreak = 3
	s.Record(o)
	if s.CurrentStreak != 0 {
		t.Errorf("expected streak reset, got %d", s.CurrentStreak)
	}
}
