package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/abiiranathan/docsearch/controller"
	"github.com/abiiranathan/docsearch/results"
)

var (
	ColorPrimary = lipgloss.Color("#7C3AED")
	ColorSuccess = lipgloss.Color("#10B981")
	ColorFailure = lipgloss.Color("#EF4444")
	ColorInfo    = lipgloss.Color("#3B82F6")
	ColorMuted   = lipgloss.Color("#6B7280")
	ColorBorder  = lipgloss.Color("#374151")

	StylePane = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)

	StylePaneFocused = StylePane.
				BorderForeground(ColorPrimary)

	StyleHeader = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#F9FAFB")).
			Background(ColorPrimary).
			Padding(0, 1)

	StyleFilename = lipgloss.NewStyle().Bold(true).Foreground(ColorInfo)
	StyleSuccess  = lipgloss.NewStyle().Foreground(ColorSuccess)
	StyleFailure  = lipgloss.NewStyle().Foreground(ColorFailure)
	StyleMuted    = lipgloss.NewStyle().Foreground(ColorMuted)

	StyleMatch = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FCD34D")).
			Background(lipgloss.Color("#78350F"))
)

// StatusStyle picks the style a form status is drawn with.
func StatusStyle(s controller.Status) lipgloss.Style {
	switch s.State {
	case controller.StateFailed:
		return StyleFailure
	case controller.StateShown:
		return StyleSuccess
	default:
		return StyleMuted
	}
}

// RenderSnippet draws s with its highlighted runs in StyleMatch.
func RenderSnippet(s results.Snippet) string {
	var b strings.Builder
	for _, seg := range s.Segments() {
		if seg.Marked {
			b.WriteString(StyleMatch.Render(seg.Text))
			continue
		}
		b.WriteString(seg.Text)
	}
	return b.String()
}
