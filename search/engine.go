package search

import (
	"context"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/abiiranathan/docsearch/database"
	"github.com/abiiranathan/docsearch/document"
	"github.com/abiiranathan/docsearch/models"
)

// TextCache stores extracted document text between searches.
type TextCache interface {
	GetText(ctx context.Context, name string, size int64, modTime time.Time) (string, bool, error)
	PutText(ctx context.Context, doc database.Document) error
}

// Engine searches the documents of a Store.
type Engine struct {
	store       *document.Store
	cache       TextCache
	segmenter   Segmenter
	concurrency int
	extract     func(path string) (string, error)
	log         *logrus.Logger
}

type Option func(*Engine)

// WithCache caches extracted text in c.
func WithCache(c TextCache) Option {
	return func(e *Engine) { e.cache = c }
}

func WithSegmenter(s Segmenter) Option {
	return func(e *Engine) { e.segmenter = s }
}

// WithConcurrency bounds how many documents are read at once.
func WithConcurrency(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.concurrency = n
		}
	}
}

func WithLogger(l *logrus.Logger) Option {
	return func(e *Engine) { e.log = l }
}

// WithExtractor replaces document.Extract.
func WithExtractor(fn func(path string) (string, error)) Option {
	return func(e *Engine) { e.extract = fn }
}

func NewEngine(store *document.Store, opts ...Option) *Engine {
	e := &Engine{
		store:       store,
		segmenter:   RuleSegmenter{},
		concurrency: runtime.NumCPU(),
		extract:     document.Extract,
		log:         logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Search returns one group per document that has at least one sentence
// matching query, in document name order. choice restricts the search to
// the document with that exact name unless it is "all" or empty.
// Documents that cannot be read are skipped.
func (e *Engine) Search(ctx context.Context, query, choice string) ([]models.SearchResultGroup, error) {
	names, err := e.store.List()
	if err != nil {
		return nil, err
	}

	if choice != "" && choice != models.AllDocuments {
		filtered := names[:0]
		for _, name := range names {
			if name == choice {
				filtered = append(filtered, name)
			}
		}
		names = filtered
	}

	snippets := make([][]string, len(names))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.concurrency)

	for i, name := range names {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			text, err := e.Text(gctx, name)
			if err != nil {
				e.log.WithError(err).WithField("document", name).Warn("skipping unreadable document")
				return nil
			}
			snippets[i] = FindKeywordSentences(e.segmenter, text, query)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	groups := []models.SearchResultGroup{}
	for i, name := range names {
		if len(snippets[i]) > 0 {
			groups = append(groups, models.SearchResultGroup{Filename: name, Snippets: snippets[i]})
		}
	}
	return groups, nil
}

// Text returns the plain text of the stored document name, from the cache
// when the file has not changed since it was last extracted.
func (e *Engine) Text(ctx context.Context, name string) (string, error) {
	info, err := e.store.Stat(name)
	if err != nil {
		return "", err
	}

	if e.cache != nil {
		text, ok, err := e.cache.GetText(ctx, name, info.Size(), info.ModTime())
		if err != nil {
			e.log.WithError(err).WithField("document", name).Warn("text cache lookup failed")
		} else if ok {
			return text, nil
		}
	}

	path, err := e.store.Path(name)
	if err != nil {
		return "", err
	}

	text, err := e.extract(path)
	if err != nil {
		return "", err
	}

	if e.cache != nil {
		doc := database.Document{Name: name, Size: info.Size(), ModTime: info.ModTime(), Text: text}
		if err := e.cache.PutText(ctx, doc); err != nil {
			e.log.WithError(err).WithField("document", name).Warn("unable to cache extracted text")
		}
	}
	return text, nil
}
