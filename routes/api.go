package routes

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"os"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"github.com/abiiranathan/docsearch/client"
	"github.com/abiiranathan/docsearch/document"
	"github.com/abiiranathan/docsearch/models"
)

// Memory ParseMultipartForm may use before spilling parts to disk.
const multipartMemory = 32 << 20

// Searcher runs document searches.
type Searcher interface {
	Search(ctx context.Context, query, choice string) ([]models.SearchResultGroup, error)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, models.ErrorResponse{Error: message})
}

// Upload stores the pdf and docx files posted under the "files" field and
// reports which were saved and which were rejected.
func Upload(store *document.Store, maxBytes int64, log *logrus.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if maxBytes > 0 {
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
		}

		if err := r.ParseMultipartForm(multipartMemory); err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				writeError(w, http.StatusRequestEntityTooLarge,
					fmt.Sprintf("Upload exceeds the %d MB limit", maxBytes>>20))
				return
			}
			writeError(w, http.StatusBadRequest, "No files part in the request")
			return
		}
		defer r.MultipartForm.RemoveAll()

		// Parts without a filename land in Value rather than File.
		headers, hasFiles := r.MultipartForm.File[client.UploadField]
		_, hasEmpty := r.MultipartForm.Value[client.UploadField]
		if !hasFiles && !hasEmpty {
			writeError(w, http.StatusBadRequest, "No files part in the request")
			return
		}

		resp := models.UploadResponse{OK: true, Saved: []string{}, Rejected: []string{}}
		for _, fh := range headers {
			if fh.Filename == "" {
				continue
			}

			if !document.Allowed(fh.Filename) {
				resp.Rejected = append(resp.Rejected, fh.Filename)
				continue
			}

			f, err := fh.Open()
			if err != nil {
				log.WithError(err).WithField("file", fh.Filename).Error("unable to read upload")
				writeError(w, http.StatusInternalServerError, "Unable to read "+fh.Filename)
				return
			}

			name, err := store.Save(fh.Filename, f)
			f.Close()
			if errors.Is(err, document.ErrNotAllowed) {
				resp.Rejected = append(resp.Rejected, fh.Filename)
				continue
			}
			if err != nil {
				log.WithError(err).WithField("file", fh.Filename).Error("unable to store upload")
				writeError(w, http.StatusInternalServerError, "Unable to save "+fh.Filename)
				return
			}
			resp.Saved = append(resp.Saved, name)
		}

		log.WithFields(logrus.Fields{"saved": len(resp.Saved), "rejected": len(resp.Rejected)}).Info("upload complete")
		writeJSON(w, http.StatusOK, resp)
	}
}

// Search answers POST /search with the documents matching the query.
func Search(searcher Searcher, log *logrus.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// A missing or malformed body is an empty query.
		var req models.SearchRequest
		json.NewDecoder(r.Body).Decode(&req)

		query := strings.TrimSpace(req.Query)
		if query == "" {
			writeError(w, http.StatusBadRequest, "Empty search query")
			return
		}

		choice := req.PDFChoice
		if choice == "" {
			choice = models.AllDocuments
		}

		groups, err := searcher.Search(r.Context(), query, choice)
		if err != nil {
			log.WithError(err).WithField("query", query).Error("search failed")
			writeError(w, http.StatusInternalServerError, "Search failed")
			return
		}

		writeJSON(w, http.StatusOK, models.SearchResponse{Query: query, Results: groups})
	}
}

// Download serves a stored document as an attachment.
func Download(store *document.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := chi.URLParam(r, "filename")

		path, err := store.Path(name)
		if err != nil {
			if errors.Is(err, document.ErrNotFound) {
				writeError(w, http.StatusNotFound, "Document not found")
				return
			}
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}

		f, err := os.Open(path)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Unable to open document")
			return
		}
		defer f.Close()

		info, err := f.Stat()
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Unable to open document")
			return
		}

		w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": name}))
		http.ServeContent(w, r, name, info.ModTime(), f)
	}
}

// Documents lists the stored documents.
func Documents(store *document.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		names, err := store.List()
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Unable to list documents")
			return
		}
		if names == nil {
			names = []string{}
		}
		writeJSON(w, http.StatusOK, models.DocumentList{Documents: names})
	}
}
