package search

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/jdkato/prose/v2"
)

// Segmenter splits normalized text into sentences.
type Segmenter interface {
	Sentences(text string) []string
}

// NewSegmenter returns the segmenter registered under name. "rule" (or an
// empty name) splits after terminal punctuation; "prose" uses a trained
// sentence tokenizer.
func NewSegmenter(name string) (Segmenter, error) {
	switch strings.ToLower(name) {
	case "", "rule":
		return RuleSegmenter{}, nil
	case "prose":
		return ProseSegmenter{}, nil
	default:
		return nil, fmt.Errorf("unknown segmenter %q: must be one of rule, prose", name)
	}
}

// RuleSegmenter breaks after '.', '!' or '?' when followed by whitespace.
type RuleSegmenter struct{}

func (RuleSegmenter) Sentences(text string) []string {
	var sentences []string

	runes := []rune(text)
	start := 0
	for i := 0; i < len(runes)-1; i++ {
		switch runes[i] {
		case '.', '!', '?':
			if !unicode.IsSpace(runes[i+1]) {
				continue
			}

			sentences = append(sentences, string(runes[start:i+1]))

			// Skip the whitespace run separating the sentences.
			j := i + 1
			for j < len(runes) && unicode.IsSpace(runes[j]) {
				j++
			}
			start = j
			i = j - 1
		}
	}

	if start < len(runes) {
		sentences = append(sentences, string(runes[start:]))
	}
	return sentences
}

// ProseSegmenter uses the prose sentence tokenizer.
type ProseSegmenter struct{}

func (ProseSegmenter) Sentences(text string) []string {
	doc, err := prose.NewDocument(text,
		prose.WithTokenization(false),
		prose.WithTagging(false),
		prose.WithExtraction(false))
	if err != nil {
		return RuleSegmenter{}.Sentences(text)
	}

	sents := doc.Sentences()
	out := make([]string, 0, len(sents))
	for _, s := range sents {
		out = append(out, s.Text)
	}
	return out
}
