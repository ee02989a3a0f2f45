package render

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/lfmartins/atelier/internal/theme"
)

// HighlightCode renders a fenced code block through chroma. Unrecognized
// language tags fall back to the plain-text lexer, never an error.
func HighlightCode(code, language, highlightTheme string) (string, error) {
	lexer := lexers.Get(language)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return "", err
	}

	var buf strings.Builder
	style := styles.Get(highlightTheme)
	formatter := theme.Formatter()
	if err := formatter.Format(&buf, style, iterator); err != nil {
		return "", err
	}

	return buf.String(), nil
}
