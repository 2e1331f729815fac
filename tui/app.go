package tui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/abiiranathan/docsearch/client"
	"github.com/abiiranathan/docsearch/controller"
	"github.com/abiiranathan/docsearch/models"
)

type Focus int

const (
	FocusFiles Focus = iota
	FocusQuery
	FocusResults
	focusCount
)

// DocumentLister lists the documents that can be searched.
type DocumentLister interface {
	Documents(ctx context.Context) ([]string, error)
}

type Model struct {
	ctrl  *controller.Controller
	docs  DocumentLister
	msgs  controller.Messages
	files textinput.Model
	query textinput.Model
	focus Focus
	view  controller.View

	choices []string // "all" followed by the stored documents.
	choice  int
	seq     int // Sequence number of the latest search.
	width   int
}

func New(ctrl *controller.Controller, docs DocumentLister) Model {
	files := textinput.New()
	files.Placeholder = "a.pdf, b.docx"
	files.Prompt = "Archivos: "
	files.CharLimit = 4096
	files.Focus()

	query := textinput.New()
	query.Placeholder = "palabra clave"
	query.Prompt = "Buscar: "
	query.CharLimit = 256

	return Model{
		ctrl:    ctrl,
		docs:    docs,
		msgs:    ctrl.Messages(),
		files:   files,
		query:   query,
		choices: []string{models.AllDocuments},
	}
}

// Run starts the program on the alternate screen and blocks until it quits.
func Run(ctrl *controller.Controller, docs DocumentLister) error {
	_, err := tea.NewProgram(New(ctrl, docs), tea.WithAltScreen()).Run()
	return err
}

func (m Model) Focus() Focus {
	return m.focus
}

// Choice is the document the next search is restricted to.
func (m Model) Choice() string {
	if m.choice >= len(m.choices) {
		return models.AllDocuments
	}
	return m.choices[m.choice]
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.fetchDocuments())
}

func (m Model) fetchDocuments() tea.Cmd {
	return func() tea.Msg {
		docs, err := m.docs.Documents(context.Background())
		return DocumentsLoadedMsg{Documents: docs, Err: err}
	}
}

func (m Model) upload(paths []string) tea.Cmd {
	return func() tea.Msg {
		files := make([]client.File, 0, len(paths))
		for _, path := range paths {
			f, err := os.Open(path)
			if err != nil {
				return UploadDoneMsg{Outcome: controller.UploadOutcome{Status: controller.Status{
					State:   controller.StateFailed,
					Message: fmt.Sprintf("%s %v", m.msgs.UploadFailed, err),
				}}}
			}
			defer f.Close()
			files = append(files, client.File{Name: filepath.Base(path), Reader: f})
		}
		return UploadDoneMsg{Outcome: m.ctrl.Upload(context.Background(), files)}
	}
}

func (m Model) search(seq int, query, choice string) tea.Cmd {
	return func() tea.Msg {
		return SearchDoneMsg{Seq: seq, Outcome: m.ctrl.Search(context.Background(), query, choice)}
	}
}

// splitPaths splits the files field on commas.
func splitPaths(s string) []string {
	var paths []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			paths = append(paths, p)
		}
	}
	return paths
}

func (m *Model) setFocus(f Focus) {
	m.focus = f
	m.files.Blur()
	m.query.Blur()

	switch f {
	case FocusFiles:
		m.files.Focus()
	case FocusQuery:
		m.query.Focus()
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.files.Width = msg.Width - 16
		m.query.Width = msg.Width - 16
		return m, nil

	case DocumentsLoadedMsg:
		if msg.Err != nil {
			return m, nil
		}
		current := m.Choice()
		m.choices = append([]string{models.AllDocuments}, msg.Documents...)
		m.choice = 0
		for i, c := range m.choices {
			if c == current {
				m.choice = i
			}
		}
		return m, nil

	case UploadDoneMsg:
		m.view.ApplyUpload(msg.Outcome)
		if msg.Outcome.Cleared {
			m.files.Reset()
			return m, m.fetchDocuments()
		}
		return m, nil

	case SearchDoneMsg:
		if msg.Seq != m.seq {
			return m, nil
		}
		m.view.ApplySearch(msg.Outcome)
		if m.view.HasResults() {
			m.setFocus(FocusResults)
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, Keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, Keys.Tab):
		m.setFocus((m.focus + 1) % focusCount)
		return m, nil

	case key.Matches(msg, Keys.Scope):
		m.choice = (m.choice + 1) % len(m.choices)
		return m, nil

	case key.Matches(msg, Keys.Enter):
		switch m.focus {
		case FocusFiles:
			m.view.Upload = m.ctrl.Uploading()
			return m, m.upload(splitPaths(m.files.Value()))
		case FocusQuery:
			query := m.query.Value()
			if strings.TrimSpace(query) == "" {
				return m, nil
			}
			m.seq++
			m.view.Search = m.ctrl.Searching(query)
			return m, m.search(m.seq, query, m.Choice())
		}
		return m, nil
	}

	var cmd tea.Cmd
	switch m.focus {
	case FocusFiles:
		m.files, cmd = m.files.Update(msg)
	case FocusQuery:
		m.query, cmd = m.query.Update(msg)
	case FocusResults:
		page := m.view.Page()
		switch {
		case key.Matches(msg, Keys.Prev) && page.HasPrev():
			m.view.GoTo(page.Prev())
		case key.Matches(msg, Keys.Next) && page.HasNext():
			m.view.GoTo(page.Next())
		}
	}
	return m, cmd
}

func (m Model) pane(content string, f Focus) string {
	style := StylePane
	if m.focus == f {
		style = StylePaneFocused
	}
	if m.width > 4 {
		style = style.Width(m.width - 4)
	}
	return style.Render(content)
}

func status(s controller.Status) string {
	if s.Message == "" {
		return ""
	}
	return "\n" + StatusStyle(s).Render(s.Message)
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(StyleHeader.Render("docsearch") + "\n")

	b.WriteString(m.pane(m.files.View()+status(m.view.Upload), FocusFiles) + "\n")

	scope := StyleMuted.Render("Documento: ") + m.Choice()
	b.WriteString(m.pane(m.query.View()+"\n"+scope+status(m.view.Search), FocusQuery) + "\n")

	if m.view.HasResults() {
		b.WriteString(m.pane(m.renderResults(), FocusResults) + "\n")
	}

	help := []key.Help{Keys.Tab.Help(), Keys.Enter.Help(), Keys.Scope.Help(), Keys.Prev.Help(), Keys.Next.Help(), Keys.Quit.Help()}
	parts := make([]string, 0, len(help))
	for _, h := range help {
		parts = append(parts, h.Key+":"+h.Desc)
	}
	b.WriteString(StyleMuted.Render(strings.Join(parts, "  ")))
	return b.String()
}

func (m Model) renderResults() string {
	page := m.view.Page()
	if page.Empty {
		return StyleMuted.Render(m.msgs.NoResults)
	}

	var b strings.Builder
	for _, item := range page.Items {
		b.WriteString(StyleFilename.Render(item.Filename) + "\n")
		b.WriteString(RenderSnippet(item.Snippet) + "\n\n")
	}

	prev, next := StyleMuted.Render(m.msgs.Previous), StyleMuted.Render(m.msgs.Next)
	if page.HasPrev() {
		prev = m.msgs.Previous
	}
	if page.HasNext() {
		next = m.msgs.Next
	}
	indicator := m.msgs.Indicator(page.Number, page.TotalPages, page.TotalItems)
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, prev, "  ", indicator, "  ", next))
	return b.String()
}
