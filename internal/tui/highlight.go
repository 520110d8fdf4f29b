package tui

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/lipgloss"

	"github.com/whichlang/whichlang/internal/language"
)

// highlightLines renders each snippet line with syntax colors for the given
// language. Falls back to unstyled text when no lexer or tokenization is
// available.
func highlightLines(tag language.Tag, lines []string, styleName string) []string {
	lexer := lexerForLanguage(tag)
	if lexer == nil {
		return append([]string(nil), lines...)
	}

	source := strings.Join(lines, "\n")
	iterator, err := lexer.Tokenise(nil, source)
	if err != nil {
		return append([]string(nil), lines...)
	}

	style := styles.Get(styleName)
	if style == nil {
		style = styles.Fallback
	}

	result := make([]string, 0, len(lines))
	var current strings.Builder

	for _, token := range iterator.Tokens() {
		// Split tokens that span multiple lines
		parts := strings.Split(token.Value, "\n")
		for i, part := range parts {
			if i > 0 {
				result = append(result, current.String())
				current.Reset()
			}
			if part == "" {
				continue
			}
			if color := tokenColor(style, token.Type); color != "" {
				current.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render(part))
			} else {
				current.WriteString(part)
			}
		}
	}
	result = append(result, current.String())

	// Pad result if we have fewer lines than input
	for len(result) < len(lines) {
		result = append(result, "")
	}
	return result[:len(lines)]
}

func lexerForLanguage(tag language.Tag) chroma.Lexer {
	lexer := lexers.Get(tag.Linguist())
	if lexer == nil {
		for _, ext := range tag.Exts() {
			if lexer = lexers.Match("file" + ext); lexer != nil {
				break
			}
		}
	}
	if lexer != nil {
		lexer = chroma.Coalesce(lexer)
	}
	return lexer
}

func tokenColor(style *chroma.Style, tt chroma.TokenType) string {
	entry := style.Get(tt)
	if entry.Colour.IsSet() {
		return entry.Colour.String()
	}
	return ""
}
