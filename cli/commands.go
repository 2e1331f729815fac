package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/abiiranathan/docsearch/client"
	"github.com/abiiranathan/docsearch/controller"
	"github.com/abiiranathan/docsearch/database"
	"github.com/abiiranathan/docsearch/document"
	"github.com/abiiranathan/docsearch/search"
	"github.com/abiiranathan/docsearch/tui"
)

func (c *Config) backend() string {
	if c.BackendURL != "" {
		return c.BackendURL
	}
	return fmt.Sprintf("http://127.0.0.1:%d", c.Port)
}

func (c *Config) controller(log *logrus.Logger) (*controller.Controller, *client.Client, error) {
	api, err := client.New(c.backend())
	if err != nil {
		return nil, nil, err
	}
	ctrl := controller.New(api, controller.WithPageSize(c.PageSize), controller.WithLogger(log))
	return ctrl, api, nil
}

// Upload sends the comma separated config.Files to the backend.
func Upload(ctx context.Context, config *Config, out io.Writer, log *logrus.Logger) error {
	ctrl, _, err := config.controller(log)
	if err != nil {
		return err
	}

	var files []client.File
	for _, path := range splitList(config.Files) {
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()
		files = append(files, client.File{Name: filepath.Base(path), Reader: f})
	}

	outcome := ctrl.Upload(ctx, files)
	printStatus(out, outcome.Status)
	if outcome.Status.IsError() {
		return fmt.Errorf("upload failed")
	}
	return nil
}

// Search runs config.Query and prints config.Page of the results.
func Search(ctx context.Context, config *Config, out io.Writer, log *logrus.Logger) error {
	ctrl, _, err := config.controller(log)
	if err != nil {
		return err
	}

	var view controller.View
	view.ApplySearch(ctrl.Search(ctx, config.Query, config.Choice))

	printStatus(out, view.Search)
	if view.Search.IsError() {
		return fmt.Errorf("search failed")
	}
	if view.HasResults() {
		PrintPage(out, view.GoTo(config.Page), ctrl.Messages())
	}
	return nil
}

// TUI starts the terminal front end against the configured backend.
func TUI(config *Config, log *logrus.Logger) error {
	ctrl, api, err := config.controller(log)
	if err != nil {
		return err
	}
	return tui.Run(ctrl, api)
}

// Index extracts every uploaded document into the text cache.
func Index(ctx context.Context, config *Config, out io.Writer, log *logrus.Logger) error {
	store, err := document.NewStore(config.UploadDir)
	if err != nil {
		return err
	}

	db, err := database.Connect(config.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	segmenter, err := search.NewSegmenter(config.Segmenter)
	if err != nil {
		return err
	}

	engine := search.NewEngine(store,
		search.WithCache(db),
		search.WithSegmenter(segmenter),
		search.WithConcurrency(config.MaxConcurrency),
		search.WithLogger(log))

	stats, err := engine.Index(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Indexed %d documents (%d failed, %d stale entries removed)\n",
		stats.Documents, stats.Failed, stats.Pruned)
	return nil
}
