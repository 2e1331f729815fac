package document

import (
	"archive/zip"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeDocx creates a minimal Word document with one paragraph per entry.
func writeDocx(t *testing.T, path string, paragraphs ...string) {
	t.Helper()

	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	zw := zip.NewWriter(f)
	w, err := zw.Create(docxBody)
	require.NoError(t, err)

	var body strings.Builder
	body.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>`)
	body.WriteString(`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>`)
	for _, p := range paragraphs {
		body.WriteString(`<w:p><w:r><w:t xml:space="preserve">` + p + `</w:t></w:r></w:p>`)
	}
	body.WriteString(`</w:body></w:document>`)

	_, err = w.Write([]byte(body.String()))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
}

func TestAllowed(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"report.pdf", true},
		{"REPORT.PDF", true},
		{"notes.docx", true},
		{"notes.doc", false},
		{"image.png", false},
		{"pdf", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Allowed(tt.name))
		})
	}
}

func TestSecureFilename(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"My cool movie.pdf", "My_cool_movie.pdf"},
		{"../../../etc/passwd", "etc_passwd"},
		{"Canción de cuna.docx", "Cancion_de_cuna.docx"},
		{"i contain cool ümläuts.pdf", "i_contain_cool_umlauts.pdf"},
		{`C:\Users\me\doc.pdf`, "C_Users_me_doc.pdf"},
		{".hidden.pdf", "hidden.pdf"},
		{"中文.pdf", "pdf"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, SecureFilename(tt.in))
		})
	}
}

func TestExtractDocx(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.docx")
	writeDocx(t, path, "Primer párrafo.", "Segundo &amp; último.")

	text, err := Extract(path)
	require.NoError(t, err)
	assert.Equal(t, "Primer párrafo.\nSegundo & último.", text)
}

func TestDocxTabsAndBreaks(t *testing.T) {
	xmlBody := `<w:document xmlns:w="w"><w:body><w:p><w:r><w:t>a</w:t><w:tab/><w:t>b</w:t><w:br/><w:t>c</w:t></w:r></w:p></w:body></w:document>`
	text, err := docxText(strings.NewReader(xmlBody))
	require.NoError(t, err)
	assert.Equal(t, "a\tb\nc", text)
}

func TestExtractErrors(t *testing.T) {
	dir := t.TempDir()

	notZip := filepath.Join(dir, "broken.docx")
	require.NoError(t, os.WriteFile(notZip, []byte("not a zip"), 0o644))
	_, err := Extract(notZip)
	assert.Error(t, err)

	notPDF := filepath.Join(dir, "broken.pdf")
	require.NoError(t, os.WriteFile(notPDF, []byte("not a pdf"), 0o644))
	_, err = Extract(notPDF)
	assert.Error(t, err)

	_, err = Extract(filepath.Join(dir, "notes.txt"))
	assert.Error(t, err)
}

func TestStoreSaveAndList(t *testing.T) {
	s, err := NewStore(filepath.Join(t.TempDir(), "uploads"))
	require.NoError(t, err)

	name, err := s.Save("Mi informe.pdf", strings.NewReader("%PDF"))
	require.NoError(t, err)
	assert.Equal(t, "Mi_informe.pdf", name)

	_, err = s.Save("b.docx", strings.NewReader("zip"))
	require.NoError(t, err)

	_, err = s.Save("notes.txt", strings.NewReader("text"))
	assert.ErrorIs(t, err, ErrNotAllowed)

	_, err = s.Save("中文.pdf", strings.NewReader("x"))
	assert.ErrorIs(t, err, ErrNotAllowed)

	// Files the store does not own are ignored.
	require.NoError(t, os.WriteFile(filepath.Join(s.Dir(), "readme.md"), nil, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(s.Dir(), ".x.pdf"), nil, 0o644))

	names, err := s.List()
	require.NoError(t, err)
	assert.Equal(t, []string{"Mi_informe.pdf", "b.docx"}, names)

	data, err := os.ReadFile(filepath.Join(s.Dir(), "Mi_informe.pdf"))
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(data))
}

func TestStoreSaveReplaces(t *testing.T) {
	s, err := NewStore(t.TempDir())
	require.NoError(t, err)

	_, err = s.Save("a.pdf", strings.NewReader("one"))
	require.NoError(t, err)
	_, err = s.Save("a.pdf", strings.NewReader("two"))
	require.NoError(t, err)

	path, err := s.Path("a.pdf")
	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "two", string(data))
}

func TestStorePathRejectsEscapes(t *testing.T) {
	s, err := NewStore(t.TempDir())
	require.NoError(t, err)

	for _, name := range []string{"", "../a.pdf", "sub/a.pdf", ".a.pdf", "missing.pdf", "a.txt"} {
		_, err := s.Path(name)
		assert.ErrorIs(t, err, ErrNotFound, name)
	}
}
