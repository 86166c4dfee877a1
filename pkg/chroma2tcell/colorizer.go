// Package chroma2tcell renders chroma token streams as tview colour tags.
package chroma2tcell

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/rivo/tview"
)

// DefaultStyle is the chroma style used for the file previewer.
const DefaultStyle = "dracula"

var getStyle = styles.Get

var getFallbackStyle = func() *chroma.Style {
	return styles.Fallback
}

var matchLexer = lexers.Match

var analyseLexer = lexers.Analyse

// Colorize tokenises text with lexer and wraps every coloured token in a tview [color] tag.
// Token text is escaped, so square brackets in the source survive.
func Colorize(text, styleName string, lexer chroma.Lexer) (string, error) {
	iterator, err := lexer.Tokenise(nil, text)
	if err != nil {
		return "", err
	}

	style := getStyle(styleName)
	if style == nil {
		style = getFallbackStyle()
	}

	var sb strings.Builder
	for _, token := range iterator.Tokens() {
		value := tview.Escape(token.Value)
		color := style.Get(token.Type)
		if color.IsZero() || !color.Colour.IsSet() {
			sb.WriteString(value)
			continue
		}
		sb.WriteString("[" + color.Colour.String() + "]")
		sb.WriteString(value)
		sb.WriteString("[-]")
	}

	return sb.String(), nil
}

// LexerFor picks a lexer by file name, then by content, then falls back to plain text.
func LexerFor(fileName, text string) chroma.Lexer {
	if lexer := matchLexer(fileName); lexer != nil {
		return lexer
	}
	if lexer := analyseLexer(text); lexer != nil {
		return lexer
	}
	return lexers.Fallback
}

// ColorizeFile colours the content of a file from the device for the previewer.
func ColorizeFile(fileName, text string) (string, error) {
	return Colorize(text, DefaultStyle, chroma.Coalesce(LexerFor(fileName, text)))
}
