package routes

import (
	"html/template"
	"io/fs"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/sirupsen/logrus"

	"github.com/abiiranathan/docsearch/controller"
	"github.com/abiiranathan/docsearch/document"
	"github.com/abiiranathan/docsearch/session"
)

// Backend holds what the upload, search and download endpoints need.
type Backend struct {
	Store          *document.Store
	Searcher       Searcher
	MaxUploadBytes int64
	CORSOrigins    []string
}

// Frontend holds what the web forms need. The forms reach the backend
// only through the controller and the document lister.
type Frontend struct {
	Templates  *template.Template
	Static     fs.FS
	Controller *controller.Controller
	Documents  DocumentLister
	Sessions   *session.Store

	// Base url download links point at. Empty links to this server.
	DownloadBase string
}

// NewRouter builds the router. Either half may be nil to serve only
// the other.
func NewRouter(backend *Backend, frontend *Frontend, log *logrus.Logger) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(Logger(log))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	if backend != nil {
		r.Group(func(r chi.Router) {
			if len(backend.CORSOrigins) > 0 {
				r.Use(cors.Handler(cors.Options{
					AllowedOrigins: backend.CORSOrigins,
					AllowedMethods: []string{"GET", "POST", "OPTIONS"},
					AllowedHeaders: []string{"Accept", "Content-Type"},
					MaxAge:         300,
				}))
			}

			r.Post("/upload", Upload(backend.Store, backend.MaxUploadBytes, log))
			r.Post("/search", Search(backend.Searcher, log))
			r.Get("/documents", Documents(backend.Store))
			r.Get("/download/{filename}", Download(backend.Store))
		})
	}

	if frontend != nil {
		msgs := frontend.Controller.Messages()
		var maxBytes int64
		if backend != nil {
			maxBytes = backend.MaxUploadBytes
		}

		r.Get("/", Home(frontend.Templates, frontend.Sessions, frontend.Documents, msgs, frontend.DownloadBase, log))
		r.Post("/ui/upload", UploadForm(frontend.Controller, frontend.Sessions, maxBytes, log))
		r.Post("/ui/search", SearchForm(frontend.Controller, frontend.Sessions, log))

		if frontend.Static != nil {
			r.Handle("/static/*", http.FileServerFS(frontend.Static))
		}
	}
	return r
}
