package controller

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/abiiranathan/docsearch/client"
	"github.com/abiiranathan/docsearch/models"
	"github.com/abiiranathan/docsearch/results"
)

// Backend is the part of the backend api the forms need.
type Backend interface {
	Upload(ctx context.Context, files []client.File) (*models.UploadResponse, error)
	Search(ctx context.Context, req models.SearchRequest) (*models.SearchResponse, error)
}

// Controller turns form submissions into backend requests and statuses.
type Controller struct {
	backend  Backend
	msgs     Messages
	pageSize int
	log      *logrus.Logger
}

type Option func(*Controller)

func WithMessages(m Messages) Option {
	return func(c *Controller) { c.msgs = m }
}

func WithPageSize(n int) Option {
	return func(c *Controller) { c.pageSize = n }
}

func WithLogger(l *logrus.Logger) Option {
	return func(c *Controller) { c.log = l }
}

func New(backend Backend, opts ...Option) *Controller {
	c := &Controller{
		backend:  backend,
		msgs:     DefaultMessages,
		pageSize: results.DefaultPageSize,
		log:      logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Messages returns the catalog the controller renders with.
func (c *Controller) Messages() Messages {
	return c.msgs
}

// UploadOutcome is the result of an upload submission.
type UploadOutcome struct {
	Status   Status
	Saved    []string
	Rejected []string
	Cleared  bool // The file selection should be reset.
}

// SearchOutcome is the result of a search submission.
type SearchOutcome struct {
	Status  Status
	Query   string
	Choice  string
	Results *results.Paginator // nil when the request failed.
	Skipped bool               // Empty query; nothing happened.
}

// Uploading is the status shown while an upload is in flight.
func (c *Controller) Uploading() Status {
	return Status{State: StateBusy, Message: c.msgs.Uploading}
}

// Searching is the status shown while a search for query is in flight.
func (c *Controller) Searching(query string) Status {
	return Status{State: StateBusy, Message: fmt.Sprintf(c.msgs.Searching, strings.TrimSpace(query))}
}

// Upload sends files to the backend. Without files it returns a validation
// status and makes no request.
func (c *Controller) Upload(ctx context.Context, files []client.File) UploadOutcome {
	if len(files) == 0 {
		return UploadOutcome{Status: Status{State: StateInvalid, Message: c.msgs.NoFiles}}
	}

	resp, err := c.backend.Upload(ctx, files)
	if err != nil {
		c.log.WithError(err).WithField("files", len(files)).Error("upload failed")
		return UploadOutcome{Status: c.failure(err, c.msgs.UploadFailed, c.msgs.UploadNetwork)}
	}

	return UploadOutcome{
		Status:   Status{State: StateShown, Message: c.msgs.UploadSummary(resp.Saved, resp.Rejected)},
		Saved:    resp.Saved,
		Rejected: resp.Rejected,
		Cleared:  true,
	}
}

// Search runs query against the documents selected by choice ("all" when
// empty). A blank query is skipped without a request.
func (c *Controller) Search(ctx context.Context, query, choice string) SearchOutcome {
	query = strings.TrimSpace(query)
	if query == "" {
		return SearchOutcome{Skipped: true}
	}
	if choice == "" {
		choice = models.AllDocuments
	}

	out := SearchOutcome{Query: query, Choice: choice}

	resp, err := c.backend.Search(ctx, models.SearchRequest{Query: query, PDFChoice: choice})
	if err != nil {
		c.log.WithError(err).WithField("query", query).Error("search failed")
		out.Status = c.failure(err, c.msgs.SearchFailed, c.msgs.SearchNetwork)
		return out
	}

	items := results.Flatten(resp.Results)
	out.Results = results.NewPaginator(items, c.pageSize)

	if len(items) == 0 {
		out.Status = Status{State: StateEmpty, Message: fmt.Sprintf(c.msgs.NoMatches, query)}
		return out
	}

	out.Status = Status{State: StateShown, Message: fmt.Sprintf(c.msgs.Found, len(items), query)}
	return out
}

// failure prefers the server's explanation, then the generic message for
// http failures, then the network message.
func (c *Controller) failure(err error, generic, network string) Status {
	var se *client.StatusError
	if errors.As(err, &se) {
		if se.Message != "" {
			return Status{State: StateFailed, Message: se.Message}
		}
		return Status{State: StateFailed, Message: generic}
	}
	return Status{State: StateFailed, Message: network}
}
