package search

import (
	"html"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// StripAccents removes diacritics: "Canción" becomes "Cancion".
func StripAccents(s string) string {
	if s == "" {
		return ""
	}

	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

func fold(s string) string {
	return strings.ToLower(StripAccents(s))
}

// FindKeywordSentences returns the sentences of text containing keyword,
// ignoring case and accents. Each returned sentence is HTML-escaped and
// the occurrences of keyword as typed (case-insensitive) are wrapped in
// <mark>. Sentences that only match after accent folding are returned
// without highlights.
func FindKeywordSentences(seg Segmenter, text, keyword string) []string {
	folded := fold(keyword)
	if strings.TrimSpace(folded) == "" {
		return nil
	}

	text = strings.Join(strings.Fields(text), " ")
	if text == "" {
		return nil
	}

	highlight := regexp.MustCompile("(?i)" + regexp.QuoteMeta(keyword))

	var matches []string
	for _, sentence := range seg.Sentences(text) {
		if !strings.Contains(fold(sentence), folded) {
			continue
		}
		matches = append(matches, markSentence(highlight, strings.TrimSpace(sentence)))
	}
	return matches
}

// markSentence escapes sentence and wraps the spans matched by highlight
// in <mark>. Matching runs on the raw text so entities are never split.
func markSentence(highlight *regexp.Regexp, sentence string) string {
	var b strings.Builder
	last := 0
	for _, loc := range highlight.FindAllStringIndex(sentence, -1) {
		b.WriteString(html.EscapeString(sentence[last:loc[0]]))
		b.WriteString("<mark>")
		b.WriteString(html.EscapeString(sentence[loc[0]:loc[1]]))
		b.WriteString("</mark>")
		last = loc[1]
	}
	b.WriteString(html.EscapeString(sentence[last:]))
	return b.String()
}
