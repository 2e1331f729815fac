package models

// AllDocuments is the pdfChoice value that searches every stored document.
const AllDocuments = "all"

// A group of matched sentences from one document.
type SearchResultGroup struct {
	Filename string   `json:"filename"` // Base name of the stored document.
	Snippets []string `json:"snippets"` // Pre-rendered HTML containing <mark> highlights.
}

// Body of POST /search.
type SearchRequest struct {
	Query     string `json:"query"`
	PDFChoice string `json:"pdfChoice,omitempty"` // Document name or "all".
}

// Successful response of POST /search.
type SearchResponse struct {
	Query   string              `json:"query,omitempty"`
	Results []SearchResultGroup `json:"results"`
}

// Successful response of POST /upload.
type UploadResponse struct {
	OK       bool     `json:"ok,omitempty"`
	Saved    []string `json:"saved"`    // Stored (sanitized) filenames. May be absent.
	Rejected []string `json:"rejected"` // Names rejected for not being pdf/docx. May be absent.
}

// Body of any non-200 response.
type ErrorResponse struct {
	Error string `json:"error,omitempty"`
}

// Response of GET /documents.
type DocumentList struct {
	Documents []string `json:"documents"`
}
