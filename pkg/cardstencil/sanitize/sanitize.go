// Package sanitize converts field markup to plain text for {{text:Field}} tags.
package sanitize

import (
	"strings"

	"golang.org/x/net/html"
)

// Sanitizer turns markup into plain text.
type Sanitizer interface {
	Sanitize(markup string) string
}

// Func adapts a plain function to a Sanitizer.
type Func func(markup string) string

// Sanitize calls f(markup).
func (f Func) Sanitize(markup string) string { return f(markup) }

// HTML strips tags and comments, drops the content of script and style
// elements and decodes character references. Non-breaking spaces become
// ordinary spaces.
type HTML struct{}

// Sanitize implements Sanitizer.
func (HTML) Sanitize(markup string) string {
	z := html.NewTokenizer(strings.NewReader(markup))

	var b strings.Builder
	skip := ""
	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			// io.EOF is the only error a strings.Reader produces
			return strings.ReplaceAll(b.String(), "\u00a0", " ")
		case html.StartTagToken:
			name, _ := z.TagName()
			if tag := string(name); tag == "script" || tag == "style" {
				skip = tag
			}
		case html.EndTagToken:
			name, _ := z.TagName()
			if string(name) == skip {
				skip = ""
			}
		case html.TextToken:
			if skip == "" {
				b.Write(z.Text())
			}
		}
	}
}
