package notes

import (
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/styles"
	xansi "github.com/charmbracelet/x/ansi"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Heading is one entry of a note outline.
type Heading struct {
	Level int
	Title string
}

// Outline lists the markdown headings in content, in document order.
func Outline(content string) []Heading {
	source := []byte(content)
	doc := goldmark.DefaultParser().Parse(text.NewReader(source))

	var out []Heading
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering || n.Kind() != ast.KindHeading {
			return ast.WalkContinue, nil
		}
		heading := n.(*ast.Heading)
		title := strings.TrimSpace(string(n.Text(source)))
		if title != "" {
			out = append(out, Heading{Level: heading.Level, Title: title})
		}
		return ast.WalkSkipChildren, nil
	})
	return out
}

var (
	rendererMu sync.Mutex
	renderers  = map[int]*glamour.TermRenderer{}
)

// Render formats content as terminal markdown wrapped to width. Content that
// fails to render is returned as is.
func Render(content string, width int) string {
	content = strings.TrimRight(content, "\n")
	if content == "" {
		return ""
	}
	if width <= 0 {
		width = 80
	}
	r := renderer(width)
	if r == nil {
		return content
	}
	out, err := r.Render(content)
	if err != nil {
		return content
	}
	out = strings.TrimRight(out, "\n")
	return strings.TrimRight(xansi.Hardwrap(out, width, true), "\n")
}

func renderer(width int) *glamour.TermRenderer {
	rendererMu.Lock()
	defer rendererMu.Unlock()
	if r, ok := renderers[width]; ok {
		return r
	}
	style := styles.DarkStyleConfig
	style.Document.StylePrimitive.BlockPrefix = ""
	style.Document.StylePrimitive.BlockSuffix = ""
	zero := uint(0)
	style.Document.Margin = &zero
	r, err := glamour.NewTermRenderer(
		glamour.WithStyles(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil
	}
	renderers[width] = r
	return r
}
