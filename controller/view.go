package controller

import "github.com/abiiranathan/docsearch/results"

// View is the state of one visitor's page: both form statuses and the
// results of the last search.
type View struct {
	Upload Status
	Search Status
	Query  string
	Choice string

	results *results.Paginator
	page    results.Page
}

// ApplyUpload records the outcome of an upload.
func (v *View) ApplyUpload(o UploadOutcome) {
	v.Upload = o.Status
}

// ApplySearch replaces the previous search with o and shows its first
// page. Skipped outcomes leave the view untouched.
func (v *View) ApplySearch(o SearchOutcome) {
	if o.Skipped {
		return
	}

	v.Search = o.Status
	v.Query = o.Query
	v.Choice = o.Choice
	v.results = o.Results
	v.page = results.Page{}

	if v.results != nil {
		v.page = v.results.Render(1)
	}
}

// GoTo renders the requested page of the current results.
func (v *View) GoTo(page int) results.Page {
	if v.results != nil {
		v.page = v.results.Render(page)
	}
	return v.page
}

// HasResults reports whether a results area (possibly the empty
// placeholder) should be drawn.
func (v *View) HasResults() bool {
	return v.results != nil
}

// Page returns the page currently shown.
func (v *View) Page() results.Page {
	return v.page
}
