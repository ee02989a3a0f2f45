// Package render converts markdown body text to HTML, with optional syntax
// highlighting of fenced code blocks.
package render

import (
	"errors"
	"fmt"
	"io"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/ast"
	md_html "github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

// ErrRenderFailure is returned when markdown-to-HTML conversion fails.
// It propagates to the caller; the build fails rather than publishing a
// partially rendered page.
var ErrRenderFailure = errors.New("markdown render failed")

// Options controls a Renderer. When SanitizeHTML is false, raw HTML embedded
// in the markdown passes through unescaped. Content here is authored by the
// site owner, so the loader leaves sanitization off.
type Options struct {
	SanitizeHTML       bool
	SyntaxHighlighting bool
	HighlightTheme     string
}

type Renderer struct {
	opts Options
}

func New(opts Options) *Renderer {
	return &Renderer{opts: opts}
}

func (r *Renderer) Options() Options {
	return r.opts
}

// Render converts markdown to HTML. Output is deterministic for a fixed
// input and option set.
func (r *Renderer) Render(md []byte) ([]byte, error) {
	flags := md_html.CommonFlags | md_html.HrefTargetBlank | md_html.FootnoteReturnLinks
	if r.opts.SanitizeHTML {
		flags |= md_html.SkipHTML
	}

	var hookErr error
	opts := md_html.RendererOptions{
		Flags:    flags,
		Comments: [][]byte{[]byte("//"), []byte("#")},
		RenderNodeHook: func(w io.Writer, node ast.Node, entering bool) (ast.WalkStatus, bool) {
			code, ok := node.(*ast.CodeBlock)
			if !ok || !entering || !r.opts.SyntaxHighlighting {
				return ast.GoToNext, false
			}

			var lang string
			if info := code.Info; info != nil {
				lang = string(info)
			}

			highlighted, err := HighlightCode(string(code.Literal), lang, r.opts.HighlightTheme)
			if err != nil {
				hookErr = err
				return ast.Terminate, true
			}

			fmt.Fprintf(w, "<div class=\"highlight\">%s</div>", highlighted)
			return ast.GoToNext, true
		},
	}

	doc := parser.NewWithExtensions(
		parser.Tables | parser.FencedCode | parser.Autolink | parser.Strikethrough | parser.SpaceHeadings |
			parser.HeadingIDs | parser.BackslashLineBreak | parser.SuperSubscript | parser.DefinitionLists | parser.MathJax |
			parser.AutoHeadingIDs | parser.Footnotes | parser.OrderedListStart | parser.Attributes | parser.NonBlockingSpace,
	).Parse(md)
	rendered := markdown.Render(doc, md_html.NewRenderer(opts))

	if hookErr != nil {
		return nil, fmt.Errorf("%w: %v", ErrRenderFailure, hookErr)
	}

	return rendered, nil
}
