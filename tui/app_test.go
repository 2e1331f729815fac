package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/abiiranathan/docsearch/client"
	"github.com/abiiranathan/docsearch/controller"
	"github.com/abiiranathan/docsearch/models"
)

type fakeBackend struct {
	uploads  [][]string
	searches []models.SearchRequest
	results  []models.SearchResultGroup
	docs     []string
	err      error
}

func (f *fakeBackend) Upload(_ context.Context, files []client.File) (*models.UploadResponse, error) {
	var names []string
	for _, file := range files {
		if _, err := io.ReadAll(file.Reader); err != nil {
			return nil, err
		}
		names = append(names, file.Name)
	}
	f.uploads = append(f.uploads, names)
	if f.err != nil {
		return nil, f.err
	}
	return &models.UploadResponse{Saved: names}, nil
}

func (f *fakeBackend) Search(_ context.Context, req models.SearchRequest) (*models.SearchResponse, error) {
	f.searches = append(f.searches, req)
	if f.err != nil {
		return nil, f.err
	}
	return &models.SearchResponse{Results: f.results}, nil
}

func (f *fakeBackend) Documents(context.Context) ([]string, error) {
	return f.docs, f.err
}

func newModel(b *fakeBackend) Model {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return New(controller.New(b, controller.WithLogger(log)), b)
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func typeText(t *testing.T, m Model, s string) Model {
	t.Helper()
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
	return m
}

func press(t *testing.T, m Model, k tea.KeyType) (Model, tea.Cmd) {
	t.Helper()
	return update(t, m, tea.KeyMsg{Type: k})
}

func sentences(n int) []models.SearchResultGroup {
	snippets := make([]string, n)
	for i := range snippets {
		snippets[i] = fmt.Sprintf("Frase %d con <mark>pez</mark>.", i+1)
	}
	return []models.SearchResultGroup{{Filename: "peces.pdf", Snippets: snippets}}
}

func TestSearchAndPaginate(t *testing.T) {
	b := &fakeBackend{results: sentences(13)}
	m := newModel(b)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})

	m, _ = press(t, m, tea.KeyTab)
	if m.Focus() != FocusQuery {
		t.Fatalf("expected query focus, got %v", m.Focus())
	}
	m = typeText(t, m, "pez")

	m, cmd := press(t, m, tea.KeyEnter)
	if cmd == nil {
		t.Fatal("expected a search command")
	}
	if !strings.Contains(m.View(), `Buscando "pez"...`) {
		t.Errorf("busy status missing:\n%s", m.View())
	}

	m, _ = update(t, m, cmd())
	if len(b.searches) != 1 || b.searches[0].PDFChoice != models.AllDocuments {
		t.Fatalf("unexpected searches: %+v", b.searches)
	}
	if m.Focus() != FocusResults {
		t.Errorf("results should take focus, got %v", m.Focus())
	}

	view := m.View()
	for _, want := range []string{`Se encontraron 13 coincidencia(s) para "pez".`, "Frase 1 con", "Página 1 de 3 · 13 resultados"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
	if strings.Contains(view, "Frase 7 con") {
		t.Error("second page item drawn on the first page")
	}

	m = typeText(t, m, "l")
	m = typeText(t, m, "l")
	m = typeText(t, m, "l")
	view = m.View()
	if !strings.Contains(view, "Página 3 de 3") || !strings.Contains(view, "Frase 13 con") {
		t.Errorf("expected last page:\n%s", view)
	}

	m = typeText(t, m, "h")
	if !strings.Contains(m.View(), "Página 2 de 3") {
		t.Errorf("expected second page:\n%s", m.View())
	}
}

func TestBlankQueryIsSkipped(t *testing.T) {
	b := &fakeBackend{}
	m := newModel(b)

	m, _ = press(t, m, tea.KeyTab)
	m = typeText(t, m, "   ")
	m, cmd := press(t, m, tea.KeyEnter)
	if cmd != nil {
		t.Error("blank query must not start a search")
	}
	if strings.Contains(m.View(), "Buscando") {
		t.Error("blank query must not show a busy status")
	}
}

func TestStaleSearchIsIgnored(t *testing.T) {
	b := &fakeBackend{results: sentences(2)}
	m := newModel(b)

	m, _ = press(t, m, tea.KeyTab)
	m = typeText(t, m, "pez")
	m, first := press(t, m, tea.KeyEnter)
	m, second := press(t, m, tea.KeyEnter)

	late := first().(SearchDoneMsg)
	late.Outcome.Status.Message = "stale"
	m, _ = update(t, m, late)
	if strings.Contains(m.View(), "stale") {
		t.Error("superseded search was applied")
	}

	m, _ = update(t, m, second())
	if !strings.Contains(m.View(), "Se encontraron 2") {
		t.Errorf("latest search not applied:\n%s", m.View())
	}
}

func TestNoMatches(t *testing.T) {
	m := newModel(&fakeBackend{results: []models.SearchResultGroup{}})

	m, _ = press(t, m, tea.KeyTab)
	m = typeText(t, m, "ballena")
	m, cmd := press(t, m, tea.KeyEnter)
	m, _ = update(t, m, cmd())

	view := m.View()
	if !strings.Contains(view, `No se encontraron coincidencias para "ballena".`) {
		t.Errorf("empty status missing:\n%s", view)
	}
	if !strings.Contains(view, "Sin resultados.") {
		t.Errorf("placeholder missing:\n%s", view)
	}
	if strings.Contains(view, "Página") {
		t.Error("empty results must not draw the page indicator")
	}
}

func TestScopeCycle(t *testing.T) {
	b := &fakeBackend{docs: []string{"a.pdf", "b.docx"}}
	m := newModel(b)

	m, _ = update(t, m, m.fetchDocuments()())
	want := []string{"a.pdf", "b.docx", models.AllDocuments}
	for _, w := range want {
		m, _ = press(t, m, tea.KeyCtrlO)
		if m.Choice() != w {
			t.Errorf("expected choice %q, got %q", w, m.Choice())
		}
	}

	m, _ = press(t, m, tea.KeyCtrlO)
	m, _ = press(t, m, tea.KeyTab)
	m = typeText(t, m, "pez")
	m, cmd := press(t, m, tea.KeyEnter)
	update(t, m, cmd())

	if len(b.searches) != 1 || b.searches[0].PDFChoice != "a.pdf" {
		t.Errorf("expected search on a.pdf, got %+v", b.searches)
	}
}

func TestUploadWithoutFiles(t *testing.T) {
	b := &fakeBackend{}
	m := newModel(b)

	m, cmd := press(t, m, tea.KeyEnter)
	m, _ = update(t, m, cmd())

	if len(b.uploads) != 0 {
		t.Error("no request expected without files")
	}
	if !strings.Contains(m.View(), "Por favor selecciona al menos un archivo.") {
		t.Errorf("validation status missing:\n%s", m.View())
	}
}

func TestUpload(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.pdf")
	if err := os.WriteFile(a, []byte("%PDF"), 0o644); err != nil {
		t.Fatal(err)
	}

	b := &fakeBackend{}
	m := newModel(b)
	m = typeText(t, m, a)

	m, cmd := press(t, m, tea.KeyEnter)
	if !strings.Contains(m.View(), "Subiendo archivos...") {
		t.Errorf("busy status missing:\n%s", m.View())
	}

	m, refresh := update(t, m, cmd())
	if refresh == nil {
		t.Error("successful upload should refresh the documents")
	}
	if len(b.uploads) != 1 || b.uploads[0][0] != "a.pdf" {
		t.Fatalf("unexpected uploads: %v", b.uploads)
	}
	if !strings.Contains(m.View(), "Carga completada. Guardados: a.pdf.") {
		t.Errorf("upload summary missing:\n%s", m.View())
	}
	if m.files.Value() != "" {
		t.Error("files field should be cleared")
	}
}

func TestUploadMissingFile(t *testing.T) {
	b := &fakeBackend{}
	m := newModel(b)
	m = typeText(t, m, filepath.Join(t.TempDir(), "missing.pdf"))

	m, cmd := press(t, m, tea.KeyEnter)
	m, _ = update(t, m, cmd())

	if len(b.uploads) != 0 {
		t.Error("no request expected for unreadable files")
	}
	if !strings.Contains(m.View(), "Hubo un error al subir los archivos.") {
		t.Errorf("failure status missing:\n%s", m.View())
	}
}

func TestBackendFailure(t *testing.T) {
	m := newModel(&fakeBackend{err: errors.New("connection refused")})

	m, _ = press(t, m, tea.KeyTab)
	m = typeText(t, m, "pez")
	m, cmd := press(t, m, tea.KeyEnter)
	m, _ = update(t, m, cmd())

	if !strings.Contains(m.View(), "Error al realizar la búsqueda.") {
		t.Errorf("network failure status missing:\n%s", m.View())
	}
}

func TestQuit(t *testing.T) {
	m := newModel(&fakeBackend{})
	_, cmd := press(t, m, tea.KeyEsc)
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("esc should quit")
	}
}

func TestSplitPaths(t *testing.T) {
	got := splitPaths(" a.pdf, ,b.docx ,")
	if len(got) != 2 || got[0] != "a.pdf" || got[1] != "b.docx" {
		t.Errorf("unexpected paths: %q", got)
	}
}
