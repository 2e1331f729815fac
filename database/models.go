package database

import "time"

// Extracted text of a stored document. Size and ModTime identify the
// version of the file the text was read from.
type Document struct {
	Name    string    // Stored filename, unique.
	Size    int64     // File size in bytes at extraction time.
	ModTime time.Time // File modification time at extraction time.
	Text    string    // Full plain text of the document.
}
