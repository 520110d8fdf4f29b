// Package tui implements the Bubble Tea reveal-and-guess interface.
//
// The Bubble Tea event loop is the round's coordinator: reveal ticks and
// key presses are serialized into Update, so input is never blocked by the
// timer and a guess always beats a pending reveal. Tick messages carry a
// sequence number; resolving a round bumps the sequence, which turns any
// in-flight tick into a no-op.
package tui

import (
	"context"
	"errors"
	"math/rand"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/whichlang/whichlang/internal/game"
	"github.com/whichlang/whichlang/internal/language"
	"github.com/whichlang/whichlang/internal/snippet"
)

// resolvePause is how long the resolved answer stays on screen before the
// next round begins.
const resolvePause = 1500 * time.Millisecond

// Config is the slice of settings the interface needs.
type Config struct {
	InitialWait      time.Duration
	RevealEvery      time.Duration
	RandomizeOptions bool
	ChromaStyle      string
}

// SelectFunc produces the next round's snippet. It runs inside a tea.Cmd,
// off the event loop, so network latency never delays keystrokes.
type SelectFunc func(ctx context.Context) (*snippet.Snippet, error)

type (
	snippetMsg      struct{ sn *snippet.Snippet }
	selectFailedMsg struct{ err error }
	revealTickMsg   struct{ seq int }
	nextRoundMsg    struct{}
)

// Model is the top-level Bubble Tea model for whichlang.
type Model struct {
	cfg      Config
	selectFn SelectFunc
	session  *game.Session
	rng      *rand.Rand

	ctx    context.Context
	cancel context.CancelFunc

	width  int
	height int

	spin    spinner.Model
	loading bool

	round       *game.Round
	highlighted []string // chroma-styled lines, indexed like the snippet
	revealSeq   int
	buffer      string // typed option number
	outcome     *game.Outcome

	err      error // fatal selection failure, surfaced after Run
	showHelp bool
}

// New creates the model. The context bounds all selection calls; quitting
// cancels it.
func New(ctx context.Context, cfg Config, selectFn SelectFunc, session *game.Session, rng *rand.Rand) Model {
	ctx, cancel := context.WithCancel(ctx)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = loadingStyle

	return Model{
		cfg:      cfg,
		selectFn: selectFn,
		session:  session,
		rng:      rng,
		ctx:      ctx,
		cancel:   cancel,
		spin:     sp,
		loading:  true,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, m.selectCmd())
}

func (m Model) selectCmd() tea.Cmd {
	return func() tea.Msg {
		sn, err := m.selectFn(m.ctx)
		if err != nil {
			return selectFailedMsg{err}
		}
		return snippetMsg{sn}
	}
}

func (m Model) tick(after time.Duration) tea.Cmd {
	seq := m.revealSeq
	return tea.Tick(after, func(time.Time) tea.Msg {
		return revealTickMsg{seq: seq}
	})
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case snippetMsg:
		return m.startRound(msg.sn)

	case selectFailedMsg:
		// A canceled selection means the player already quit.
		if !errors.Is(msg.err, context.Canceled) {
			m.err = msg.err
		}
		m.cancel()
		return m, tea.Quit

	case revealTickMsg:
		// A stale sequence means a guess already resolved this round.
		if msg.seq != m.revealSeq || m.round == nil {
			return m, nil
		}
		if m.round.RevealNext() && m.round.Phase() == game.PhaseRevealing {
			return m, m.tick(m.cfg.RevealEvery)
		}
		return m, nil

	case nextRoundMsg:
		m.round = nil
		m.outcome = nil
		m.highlighted = nil
		m.loading = true
		return m, tea.Batch(m.spin.Tick, m.selectCmd())

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) startRound(sn *snippet.Snippet) (tea.Model, tea.Cmd) {
	m.loading = false
	m.buffer = ""
	m.outcome = nil
	m.highlighted = highlightLines(sn.Language, sn.Lines, m.cfg.ChromaStyle)
	m.round = game.NewRound(sn, language.Options(m.rng, m.cfg.RandomizeOptions))
	m.round.Start()
	m.revealSeq++
	return m, m.tick(m.cfg.InitialWait)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		// Aborts whatever is in flight: the selection context is canceled
		// and no outcome is recorded for an unresolved round.
		m.cancel()
		return m, tea.Quit

	case key.Matches(msg, keys.Help):
		m.showHelp = !m.showHelp
		return m, nil
	}

	if m.showHelp || m.loading || m.round == nil || m.outcome != nil {
		return m, nil
	}

	switch {
	case key.Matches(msg, keys.Skip):
		return m.resolveRound(m.round.Skip())

	case key.Matches(msg, keys.Erase):
		if len(m.buffer) > 0 {
			m.buffer = m.buffer[:len(m.buffer)-1]
		}
		return m, nil

	case key.Matches(msg, keys.Submit):
		n, err := strconv.Atoi(m.buffer)
		opts := m.round.Options()
		if err != nil || n < 1 || n > len(opts) {
			m.buffer = ""
			return m, nil
		}
		return m.resolveRound(m.round.Guess(opts[n-1]))
	}

	if s := msg.String(); len(s) == 1 && s[0] >= '0' && s[0] <= '9' && len(m.buffer) < 2 {
		m.buffer += s
	}
	return m, nil
}

func (m Model) resolveRound(o game.Outcome) (tea.Model, tea.Cmd) {
	m.outcome = &o
	m.session.Record(o)
	m.buffer = ""
	m.revealSeq++ // invalidates any pending reveal tick
	return m, tea.Tick(resolvePause, func(time.Time) tea.Msg {
		return nextRoundMsg{}
	})
}

// Err returns the fatal selection error, if any, once the program exits.
func (m Model) Err() error { return m.err }

// Run plays rounds until the player quits or selection fails fatally.
func Run(ctx context.Context, cfg Config, selectFn SelectFunc, session *game.Session, rng *rand.Rand) error {
	m := New(ctx, cfg, selectFn, session, rng)
	p := tea.NewProgram(m, tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return err
	}
	if fm, ok := final.(Model); ok {
		return fm.Err()
	}
	return nil
}
