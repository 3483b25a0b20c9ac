package service

import (
	"bytes"
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// contentPolicy cleans bulletin text on the way in and renders it on the way
// out. Stored text is always plain; markup only exists in rendered output.
type contentPolicy struct {
	strip    *bluemonday.Policy
	sanitize *bluemonday.Policy
	md       goldmark.Markdown
}

func newContentPolicy() *contentPolicy {
	return &contentPolicy{
		strip:    bluemonday.StrictPolicy(),
		sanitize: bluemonday.UGCPolicy(),
		md:       goldmark.New(goldmark.WithExtensions(extension.Strikethrough, extension.Linkify)),
	}
}

// plain removes any HTML from s. The strict policy entity-escapes what it
// keeps, so the result is unescaped back to the text the user typed.
func (p *contentPolicy) plain(s string) string {
	return strings.TrimSpace(html.UnescapeString(p.strip.Sanitize(s)))
}

// render converts markdown to HTML safe for embedding in a web view.
func (p *contentPolicy) render(s string) string {
	var buf bytes.Buffer
	if err := p.md.Convert([]byte(s), &buf); err != nil {
		return p.sanitize.Sanitize(html.EscapeString(s))
	}
	return string(p.sanitize.SanitizeBytes(buf.Bytes()))
}
