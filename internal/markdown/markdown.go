// Package markdown converts user-supplied Markdown into HTML that is safe
// to embed verbatim in a page.
package markdown

import (
	"bytes"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/renderer/html"
)

var (
	// Raw HTML is rendered as-is so the sanitizer sees whole elements and
	// can drop dangerous ones together with their content. With the default
	// renderer goldmark strips the tags itself but leaks their inner text.
	md = goldmark.New(goldmark.WithRendererOptions(html.WithUnsafe()))

	// UGC policy: common formatting elements only, no scripts, no inline
	// event handlers, no javascript: URLs.
	policy = bluemonday.UGCPolicy()
)

// Render converts raw Markdown to sanitized HTML. It never fails: if the
// Markdown renderer rejects the input, the raw text is sanitized instead,
// so the caller always gets embeddable output.
func Render(text string) string {
	var buf bytes.Buffer
	if err := md.Convert([]byte(text), &buf); err != nil {
		return policy.Sanitize(text)
	}
	return policy.Sanitize(buf.String())
}
