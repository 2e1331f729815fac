package document

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// asciiOnly decomposes characters and drops whatever is not ASCII, so
// "Canción.pdf" becomes "Cancion.pdf". Chains are stateful; build one per use.
func asciiOnly() transform.Transformer {
	return transform.Chain(norm.NFKD, runes.Remove(runes.Predicate(func(r rune) bool {
		return r > unicode.MaxASCII
	})))
}

// SecureFilename reduces name to a flat, ASCII-only filename that is safe
// to join to the upload directory. It may return an empty string.
func SecureFilename(name string) string {
	name, _, err := transform.String(asciiOnly(), name)
	if err != nil {
		return ""
	}

	name = strings.NewReplacer("/", " ", `\`, " ").Replace(name)
	name = strings.Join(strings.Fields(name), "_")

	name = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '_', r == '.', r == '-':
			return r
		}
		return -1
	}, name)

	return strings.Trim(name, "._")
}
