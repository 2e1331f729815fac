package routes

import (
	"context"
	"errors"
	"html/template"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/abiiranathan/docsearch/client"
	"github.com/abiiranathan/docsearch/controller"
	"github.com/abiiranathan/docsearch/models"
	"github.com/abiiranathan/docsearch/results"
	"github.com/abiiranathan/docsearch/session"
)

// DocumentLister lists the documents a search can be scoped to.
type DocumentLister interface {
	Documents(ctx context.Context) ([]string, error)
}

// homePage is the data index.html renders.
type homePage struct {
	Upload     controller.Status
	Search     controller.Status
	Query      string
	Choice     string
	All        string
	Documents  []string
	HasResults bool
	Page       results.Page
	Indicator  string
	Msgs       controller.Messages

	// Base url of the backend serving /download; empty for this server.
	DownloadBase string
}

// Home renders the upload and search forms with the visitor's statuses
// and the requested page of their last search.
func Home(tmpl *template.Template, sessions *session.Store, docs DocumentLister, msgs controller.Messages, downloadBase string, log *logrus.Logger) http.HandlerFunc {
	downloadBase = strings.TrimRight(downloadBase, "/")

	return func(w http.ResponseWriter, r *http.Request) {
		names, err := docs.Documents(r.Context())
		if err != nil {
			log.WithError(err).Warn("unable to list documents")
		}

		sess := sessions.FromRequest(w, r)
		sess.Lock()
		if p := r.URL.Query().Get("page"); p != "" {
			if n, err := strconv.Atoi(p); err == nil {
				sess.View.GoTo(n)
			}
		}

		view := sess.View
		data := homePage{
			Upload:     view.Upload,
			Search:     view.Search,
			Query:      view.Query,
			Choice:     view.Choice,
			All:        models.AllDocuments,
			Documents:  names,
			HasResults: view.HasResults(),
			Page:       view.Page(),
			Msgs:       msgs,

			DownloadBase: downloadBase,
		}
		sess.Unlock()

		if data.Choice == "" {
			data.Choice = models.AllDocuments
		}
		if !data.Page.Empty && data.Page.Number > 0 {
			data.Indicator = msgs.Indicator(data.Page.Number, data.Page.TotalPages, data.Page.TotalItems)
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := tmpl.ExecuteTemplate(w, "index.html", data); err != nil {
			log.WithError(err).Error("unable to render index.html")
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	}
}

// UploadForm forwards the files of the upload form to the backend.
func UploadForm(ctrl *controller.Controller, sessions *session.Store, maxBytes int64, log *logrus.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if maxBytes > 0 {
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
		}

		var outcome controller.UploadOutcome

		err := r.ParseMultipartForm(multipartMemory)
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			outcome.Status = controller.Status{State: controller.StateFailed, Message: ctrl.Messages().UploadFailed}
		} else {
			var headers []*multipart.FileHeader
			if err == nil {
				defer r.MultipartForm.RemoveAll()
				headers = r.MultipartForm.File[client.UploadField]
			}

			outcome = forwardUpload(r.Context(), ctrl, headers, log)
		}

		sess := sessions.FromRequest(w, r)
		sess.Lock()
		sess.View.ApplyUpload(outcome)
		sess.Unlock()

		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}

// forwardUpload opens the uploaded parts and hands them to the controller.
// A part that cannot be read fails the whole upload.
func forwardUpload(ctx context.Context, ctrl *controller.Controller, headers []*multipart.FileHeader, log *logrus.Logger) controller.UploadOutcome {
	files := make([]client.File, 0, len(headers))
	for _, fh := range headers {
		if fh.Filename == "" {
			continue
		}
		f, err := fh.Open()
		if err != nil {
			log.WithError(err).WithField("file", fh.Filename).Error("unable to read upload")
			return controller.UploadOutcome{Status: controller.Status{
				State:   controller.StateFailed,
				Message: ctrl.Messages().UploadFailed,
			}}
		}
		defer f.Close()
		files = append(files, client.File{Name: fh.Filename, Reader: f})
	}
	return ctrl.Upload(ctx, files)
}

// SearchForm runs the search form's query. Blank queries change nothing.
func SearchForm(ctrl *controller.Controller, sessions *session.Store, log *logrus.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			log.WithError(err).Warn("unable to parse search form")
			http.Error(w, "Invalid form", http.StatusBadRequest)
			return
		}

		outcome := ctrl.Search(r.Context(), r.PostForm.Get("query"), r.PostForm.Get("pdfChoice"))
		if !outcome.Skipped {
			sess := sessions.FromRequest(w, r)
			sess.Lock()
			sess.View.ApplySearch(outcome)
			sess.Unlock()
		}

		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}
