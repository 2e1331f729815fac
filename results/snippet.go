package results

import (
	"html"
	"html/template"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

const (
	markOpen  = "<mark>"
	markClose = "</mark>"
)

var (
	// markPolicy keeps match highlighting and nothing else.
	markPolicy  = bluemonday.NewPolicy().AllowElements("mark")
	stripPolicy = bluemonday.StrictPolicy()
)

// Snippet is a sanitized excerpt of document text. The only markup it can
// carry is <mark>, so it is safe to emit into a page unescaped.
// The zero value is an empty snippet.
type Snippet struct {
	markup string
}

// NewSnippet sanitizes raw backend markup into a Snippet.
func NewSnippet(raw string) Snippet {
	return Snippet{markup: markPolicy.Sanitize(raw)}
}

// HTML returns the sanitized markup for html/template.
func (s Snippet) HTML() template.HTML {
	return template.HTML(s.markup)
}

// String returns the sanitized markup.
func (s Snippet) String() string {
	return s.markup
}

// Plain returns the snippet text without any markup.
func (s Snippet) Plain() string {
	return html.UnescapeString(stripPolicy.Sanitize(s.markup))
}

// Segment is a run of snippet text that is either highlighted or not.
type Segment struct {
	Text   string
	Marked bool
}

// Segments splits the snippet into plain and highlighted runs of text.
func (s Snippet) Segments() []Segment {
	var segments []Segment
	rest := s.markup
	depth := 0

	emit := func(text string) {
		if text == "" {
			return
		}
		segments = append(segments, Segment{Text: html.UnescapeString(text), Marked: depth > 0})
	}

	for rest != "" {
		open := strings.Index(rest, markOpen)
		cls := strings.Index(rest, markClose)

		switch {
		case open < 0 && cls < 0:
			emit(rest)
			rest = ""
		case cls < 0 || (open >= 0 && open < cls):
			emit(rest[:open])
			depth++
			rest = rest[open+len(markOpen):]
		default:
			emit(rest[:cls])
			if depth > 0 {
				depth--
			}
			rest = rest[cls+len(markClose):]
		}
	}
	return segments
}
