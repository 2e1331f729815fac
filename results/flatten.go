package results

import "github.com/abiiranathan/docsearch/models"

// Item is one (file, snippet) pair.
type Item struct {
	Filename string
	Snippet  Snippet
}

// Flatten turns grouped results into one ordered list of items.
// Group order and each group's snippet order are preserved.
func Flatten(groups []models.SearchResultGroup) []Item {
	total := 0
	for _, g := range groups {
		total += len(g.Snippets)
	}

	items := make([]Item, 0, total)
	for _, g := range groups {
		for _, s := range g.Snippets {
			items = append(items, Item{Filename: g.Filename, Snippet: NewSnippet(s)})
		}
	}
	return items
}
