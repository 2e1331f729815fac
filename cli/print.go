package cli

import (
	"fmt"
	"io"

	"github.com/abiiranathan/docsearch/controller"
	"github.com/abiiranathan/docsearch/results"
	"github.com/abiiranathan/docsearch/tui"
)

func printStatus(w io.Writer, s controller.Status) {
	fmt.Fprintln(w, tui.StatusStyle(s).Render(s.Message))
}

// PrintPage writes one page of results followed by the page indicator.
func PrintPage(w io.Writer, page results.Page, msgs controller.Messages) {
	if page.Empty {
		fmt.Fprintln(w, msgs.NoResults)
		return
	}

	for _, item := range page.Items {
		fmt.Fprintf(w, "%s : %s\n", tui.StyleFilename.Render(item.Filename), tui.RenderSnippet(item.Snippet))
	}
	fmt.Fprintln(w, msgs.Indicator(page.Number, page.TotalPages, page.TotalItems))
}
