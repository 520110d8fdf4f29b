package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/whichlang/whichlang/internal/game"
)

const optionColumns = 3

// View implements tea.Model.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	if m.showHelp {
		return m.renderHelp()
	}

	if m.err != nil {
		return loadingStyle.Render(fmt.Sprintf("Selection failed: %v", m.err))
	}

	if m.loading || m.round == nil {
		return lipgloss.JoinVertical(lipgloss.Left,
			headerStyle.Render("whichlang"),
			loadingStyle.Render(m.spin.View()+" finding a snippet…"),
		)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		m.renderCode(),
		m.renderPrompt(),
		m.renderOptions(),
		m.renderStatusBar(),
	)
}

func (m Model) renderHeader() string {
	return headerStyle.Render("Which programming language is this?")
}

// renderCode draws the snippet panel: revealed lines with syntax colors,
// everything else as dot placeholders of the same shape.
func (m Model) renderCode() string {
	sn := m.round.Snippet()

	var b strings.Builder
	for i, line := range sn.Lines {
		b.WriteString(lineNumberStyle.Render(fmt.Sprintf("%d", i+1)))
		b.WriteString("  ")
		if m.round.Revealed(i) {
			b.WriteString(m.highlighted[i])
		} else {
			b.WriteString(dottedLineStyle.Render(dotted(line)))
		}
		if i < len(sn.Lines)-1 {
			b.WriteByte('\n')
		}
	}

	width := m.width - 2
	return codePanelStyle.Width(width).Render(b.String())
}

// dotted masks a line, keeping whitespace so indentation still shows.
func dotted(line string) string {
	var b strings.Builder
	for _, r := range line {
		if r == ' ' || r == '\t' {
			b.WriteRune(r)
		} else {
			b.WriteRune('·')
		}
	}
	return b.String()
}

func (m Model) renderPrompt() string {
	if m.outcome != nil {
		return m.renderResult()
	}

	prompt := promptStyle.Render("Type the option number and press enter")
	entry := "> " + m.buffer
	return prompt + "\n" + bufferStyle.Render(entry)
}

func (m Model) renderResult() string {
	o := m.outcome
	if o.Correct {
		return resultCorrectStyle.Render(fmt.Sprintf("Correct! It was %s.", o.Language))
	}
	if o.Guess == nil {
		return resultIncorrectStyle.Render(fmt.Sprintf("Skipped — it was %s.", o.Language))
	}
	return resultIncorrectStyle.Render(fmt.Sprintf("Incorrect — it was %s, not %s.", o.Language, *o.Guess))
}

// renderOptions lays the full roster out in numbered columns. After the
// round resolves, the answer and a wrong guess are recolored in place.
func (m Model) renderOptions() string {
	opts := m.round.Options()
	rows := (len(opts) + optionColumns - 1) / optionColumns

	maxName := 0
	for _, opt := range opts {
		if n := len(opt.String()); n > maxName {
			maxName = n
		}
	}

	var b strings.Builder
	for row := 0; row < rows; row++ {
		for col := 0; col < optionColumns; col++ {
			idx := col*rows + row
			if idx >= len(opts) {
				continue
			}
			opt := opts[idx]

			style := optionStyle
			if m.outcome != nil {
				switch {
				case opt == m.outcome.Language:
					style = optionCorrectStyle
				case m.outcome.Guess != nil && opt == *m.outcome.Guess:
					style = optionIncorrectStyle
				}
			}

			b.WriteString(optionKeyStyle.Render(fmt.Sprintf("[%2d]", idx+1)))
			b.WriteByte(' ')
			b.WriteString(style.Render(fmt.Sprintf("%-*s", maxName, opt.String())))
			b.WriteString("   ")
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func (m Model) renderStatusBar() string {
	left := fmt.Sprintf(" Round %d  Streak %d  Best %d",
		m.session.RoundsPlayed+1, m.session.CurrentStreak, m.session.BestStreak)

	var mid string
	switch m.round.Phase() {
	case game.PhaseRevealing, game.PhaseAwaitingStart:
		mid = fmt.Sprintf("%d line(s) revealed", m.round.LinesRevealed())
	case game.PhaseAwaitingGuess:
		mid = "all lines revealed — your guess"
	case game.PhaseResolved:
		mid = "next round shortly"
	}

	right := "s skip  ? help  q quit "

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(mid) - lipgloss.Width(right)
	if gap < 2 {
		gap = 2
	}
	pad := strings.Repeat(" ", gap/2)

	return statusBarStyle.Width(m.width).Render(left + pad + mid + pad + right)
}

func (m Model) renderHelp() string {
	var b strings.Builder

	b.WriteString(headerStyle.Render("whichlang — Keyboard Shortcuts"))
	b.WriteString("\n\n")

	helpItems := []struct{ key, desc string }{
		{"0-9", "Type an option number"},
		{"enter", "Submit guess"},
		{"backspace", "Erase typed digit"},
		{"s", "Skip the round (resets streak)"},
		{"?", "Toggle this help"},
		{"q", "Quit"},
	}

	for _, item := range helpItems {
		b.WriteString(fmt.Sprintf("  %s  %s\n",
			helpKeyStyle.Width(12).Render(item.key),
			item.desc,
		))
	}

	b.WriteString("\n")
	b.WriteString(helpBarStyle.Render("Press ? to close help"))

	return b.String()
}
