package document

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"
)

// Extensions of the document types that can be stored and searched.
var AllowedExtensions = []string{".pdf", ".docx"}

// Allowed reports whether name has an allowed extension (case-insensitive).
func Allowed(name string) bool {
	return slices.Contains(AllowedExtensions, strings.ToLower(filepath.Ext(name)))
}

// Extract returns the plain text of the document at path.
func Extract(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return extractPDF(path)
	case ".docx":
		return extractDocx(path)
	default:
		return "", fmt.Errorf("unsupported document type: %s", filepath.Base(path))
	}
}
