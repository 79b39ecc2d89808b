// Package markup converts article bodies authored in markdown to HTML and
// sanitizes HTML before it is stored.
package markup

import (
	"bytes"
	"fmt"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

// Format of an article body as submitted
type Format string

const (
	FormatHTML     Format = "html"
	FormatMarkdown Format = "markdown"
)

// Renderer turns submitted bodies into safe HTML
type Renderer struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

// NewRenderer creates a renderer with GFM extensions and a UGC sanitizing policy
func NewRenderer() *Renderer {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			extension.Linkify,
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			html.WithHardWraps(),
			html.WithUnsafe(),
		),
	)

	policy := bluemonday.UGCPolicy()
	policy.AllowAttrs("class").Matching(bluemonday.SpaceSeparatedTokens).OnElements("code", "span", "div", "pre", "p", "figure")
	policy.AllowAttrs("id").Matching(bluemonday.SpaceSeparatedTokens).OnElements("h1", "h2", "h3", "h4", "h5", "h6")
	policy.AllowElements("figure", "figcaption")
	policy.AllowAttrs("loading").Matching(bluemonday.SpaceSeparatedTokens).OnElements("img")

	return &Renderer{md: md, policy: policy}
}

// ToHTML converts markdown to HTML without sanitizing
func (r *Renderer) ToHTML(markdown string) (string, error) {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(markdown), &buf); err != nil {
		return "", fmt.Errorf("failed to convert markdown to HTML: %w", err)
	}
	return buf.String(), nil
}

// Sanitize strips scripts, event handlers and other unsafe markup
func (r *Renderer) Sanitize(htmlContent string) string {
	return r.policy.Sanitize(htmlContent)
}

// Render converts body according to format and sanitizes the result.
// An empty format is treated as HTML.
func (r *Renderer) Render(body string, format Format) (string, error) {
	switch format {
	case "", FormatHTML:
		return r.Sanitize(body), nil
	case FormatMarkdown:
		out, err := r.ToHTML(body)
		if err != nil {
			return "", err
		}
		return r.Sanitize(out), nil
	default:
		return "", fmt.Errorf("unsupported content format %q", format)
	}
}
