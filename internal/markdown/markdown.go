// Package markdown renders item bodies to HTML.
//
// Image destinations are rewritten relative to the item's public directory so
// that media staged next to the documents resolves from any page URL. The
// rewrite base travels in an explicit RenderContext parameter through the call
// chain; there is no shared "current directory" state, so renders never
// interfere with each other.
package markdown

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// RenderContext carries the per-call rendering inputs.
type RenderContext struct {
	// BaseURL is the public directory of the item being rendered,
	// e.g. "/posts/setup-ssh/". Relative image destinations are joined to it.
	BaseURL string
}

// Renderer converts Markdown bodies (front-matter already removed) to HTML.
type Renderer struct {
	md goldmark.Markdown
}

// New creates a Renderer.
func New() *Renderer {
	return &Renderer{md: goldmark.New()}
}

// Render parses body, rewrites relative image destinations under rc.BaseURL,
// and renders HTML.
func (r *Renderer) Render(body []byte, rc RenderContext) ([]byte, error) {
	root := r.md.Parser().Parse(text.NewReader(body))

	_ = gmast.Walk(root, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		if img, ok := n.(*gmast.Image); ok {
			img.Destination = []byte(RewriteImageURL(string(img.Destination), rc))
		}
		return gmast.WalkContinue, nil
	})

	var buf bytes.Buffer
	if err := r.md.Renderer().Render(&buf, body, root); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// RewriteImageURL joins a relative destination to the context base URL.
// Absolute paths and full URLs pass through unchanged.
func RewriteImageURL(dest string, rc RenderContext) string {
	if dest == "" || rc.BaseURL == "" || !isRelative(dest) {
		return dest
	}
	base := strings.TrimSuffix(rc.BaseURL, "/")
	return base + "/" + strings.TrimPrefix(dest, "./")
}

func isRelative(dest string) bool {
	if strings.HasPrefix(dest, "/") || strings.HasPrefix(dest, "#") {
		return false
	}
	for _, scheme := range []string{"http://", "https://", "data:", "mailto:"} {
		if strings.HasPrefix(dest, scheme) {
			return false
		}
	}
	return true
}
