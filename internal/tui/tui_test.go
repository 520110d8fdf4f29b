package tui

import (
	"context"
	"math/rand"
	"strconv"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/whichlang/whichlang/internal/game"
	"github.com/whichlang/whichlang/internal/language"
	"github.com/whichlang/whichlang/internal/snippet"
)

func testSnippet() *snippet.Snippet {
	lines := []string{"package main", "", "func main() {", "}"}
	order := make([]int, len(lines))
	for i := range order {
		order[i] = i
	}
	return &snippet.Snippet{Language: language.Go, Lines: lines, RevealOrder: order}
}

// setupModel builds a model sized for rendering with one round in progress.
func setupModel(t *testing.T) Model {
	t.Helper()

	cfg := Config{
		InitialWait: time.Millisecond,
		RevealEvery: time.Millisecond,
		ChromaStyle: "dracula",
	}
	selectFn := func(ctx context.Context) (*snippet.Snippet, error) {
		return testSnippet(), nil
	}

	m := New(context.Background(), cfg, selectFn, &game.Session{}, rand.New(rand.NewSource(1)))

	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	m = updated.(Model)

	updated, _ = m.Update(snippetMsg{sn: testSnippet()})
	return updated.(Model)
}

func press(t *testing.T, m Model, r rune) Model {
	t.Helper()
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	return updated.(Model)
}

func pressKey(t *testing.T, m Model, k tea.KeyType) Model {
	t.Helper()
	updated, _ := m.Update(tea.KeyMsg{Type: k})
	return updated.(Model)
}

func TestRoundStartsAfterSnippet(t *testing.T) {
	m := setupModel(t)

	if m.loading {
		t.Error("expected loading to end once a snippet arrives")
	}
	if m.round == nil {
		t.Fatal("expected an active round")
	}
	if m.round.Phase() != game.PhaseRevealing {
		t.Errorf("expected revealing phase, got %v", m.round.Phase())
	}

	view := m.View()
	if !strings.Contains(view, "·") {
		t.Error("expected hidden lines rendered as dots")
	}
	if !strings.Contains(view, "Round 1") {
		t.Error("expected status bar to show the round counter")
	}
}

func TestRevealTickDisclosesLine(t *testing.T) {
	m := setupModel(t)

	updated, _ := m.Update(revealTickMsg{seq: m.revealSeq})
	m = updated.(Model)

	if got := m.round.LinesRevealed(); got != 1 {
		t.Errorf("expected 1 line revealed after a tick, got %d", got)
	}
	if !strings.Contains(m.View(), "package") {
		t.Error("expected the first line to be visible")
	}
}

func TestGuessBeatsPendingTick(t *testing.T) {
	m := setupModel(t)

	// Go sits at a fixed place in the unshuffled option list.
	goIdx := 0
	for i, opt := range m.round.Options() {
		if opt == language.Go {
			goIdx = i + 1
		}
	}
	staleSeq := m.revealSeq

	for _, r := range strconv.Itoa(goIdx) {
		m = press(t, m, r)
	}
	m = pressKey(t, m, tea.KeyEnter)

	if m.outcome == nil || !m.outcome.Correct {
		t.Fatalf("expected a correct resolved guess, got %+v", m.outcome)
	}
	shown := m.round.LinesRevealed()

	// A tick scheduled before the guess must not reveal anything more.
	updated, _ := m.Update(revealTickMsg{seq: staleSeq})
	m = updated.(Model)

	if m.round.LinesRevealed() != shown {
		t.Errorf("stale tick revealed a line: %d -> %d", shown, m.round.LinesRevealed())
	}
}

func TestSkipResolvesWithoutGuess(t *testing.T) {
	m := setupModel(t)
	m.session.CurrentStreak = 4

	m = press(t, m, 's')

	if m.outcome == nil {
		t.Fatal("expected the round to resolve")
	}
	if m.outcome.Guess != nil {
		t.Errorf("expected no guess on skip, got %v", *m.outcome.Guess)
	}
	if m.session.CurrentStreak != 0 {
		t.Errorf("expected streak reset on skip, got %d", m.session.CurrentStreak)
	}
	if m.session.RoundsPlayed != 1 {
		t.Errorf("expected 1 round recorded, got %d", m.session.RoundsPlayed)
	}
	if !strings.Contains(m.View(), "Skipped") {
		t.Error("expected the skip result on screen")
	}
}

func TestInvalidSubmissionClearsBuffer(t *testing.T) {
	m := setupModel(t)

	m = press(t, m, '9')
	m = press(t, m, '9')
	if m.buffer != "99" {
		t.Fatalf("expected buffer 99, got %q", m.buffer)
	}

	m = pressKey(t, m, tea.KeyEnter)

	if m.outcome != nil {
		t.Error("an out-of-range number must not resolve the round")
	}
	if m.buffer != "" {
		t.Errorf("expected cleared buffer, got %q", m.buffer)
	}
}

func TestEraseRemovesLastDigit(t *testing.T) {
	m := setupModel(t)

	m = press(t, m, '1')
	m = press(t, m, '2')
	m = pressKey(t, m, tea.KeyBackspace)

	if m.buffer != "1" {
		t.Errorf("expected buffer 1 after erase, got %q", m.buffer)
	}
}

func TestHelpToggle(t *testing.T) {
	m := setupModel(t)

	m = press(t, m, '?')
	if !strings.Contains(m.View(), "Keyboard Shortcuts") {
		t.Error("expected help screen")
	}

	// Gameplay keys are ignored while help is open.
	m = press(t, m, 's')
	if m.outcome != nil {
		t.Error("skip must not act behind the help screen")
	}

	m = press(t, m, '?')
	if strings.Contains(m.View(), "Keyboard Shortcuts") {
		t.Error("expected help screen to close")
	}
}

func TestQuitDuringLoadingIsNotAnError(t *testing.T) {
	m := setupModel(t)
	m.cancel()

	// The in-flight selection resolves after the quit; its cancellation
	// must not surface as a failure.
	updated, _ := m.Update(selectFailedMsg{err: context.Canceled})
	m = updated.(Model)

	if m.Err() != nil {
		t.Errorf("expected no error after quit, got %v", m.Err())
	}
}

func TestQuitKey(t *testing.T) {
	m := setupModel(t)

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	m = updated.(Model)

	if cmd == nil {
		t.Fatal("expected a quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
	if m.ctx.Err() == nil {
		t.Error("expected the selection context to be canceled")
	}
}
