package tui

import "github.com/abiiranathan/docsearch/controller"

type DocumentsLoadedMsg struct {
	Documents []string
	Err       error
}

type UploadDoneMsg struct {
	Outcome controller.UploadOutcome
}

// SearchDoneMsg carries the sequence number of the search that produced
// it; results of superseded searches are dropped.
type SearchDoneMsg struct {
	Seq     int
	Outcome controller.SearchOutcome
}
