package server

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/abiiranathan/docsearch/cli"
	"github.com/abiiranathan/docsearch/client"
	"github.com/abiiranathan/docsearch/controller"
	"github.com/abiiranathan/docsearch/database"
	"github.com/abiiranathan/docsearch/document"
	"github.com/abiiranathan/docsearch/routes"
	"github.com/abiiranathan/docsearch/search"
	"github.com/abiiranathan/docsearch/session"
)

// Run serves the backend api and the web forms until os.Interrupt.
func Run(config *cli.Config, viewsFs fs.FS, staticFs fs.FS, log *logrus.Logger) error {
	// Parse templates.
	tmpl, err := template.ParseFS(viewsFs, "templates/*.html")
	if err != nil {
		return fmt.Errorf("unable to parse templates: %w", err)
	}

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

	// The forms talk to the backend over http, by default this same server.
	backendURL := config.BackendURL
	if backendURL == "" {
		backendURL = fmt.Sprintf("http://127.0.0.1:%d", config.Port)
	}
	api, err := client.New(backendURL)
	if err != nil {
		return err
	}

	sessions := session.NewStore(config.SessionTTL)

	router := routes.NewRouter(
		&routes.Backend{
			Store:          store,
			Searcher:       engine,
			MaxUploadBytes: int64(config.MaxUploadMB) << 20,
			CORSOrigins:    config.CORSOrigins,
		},
		&routes.Frontend{
			Templates: tmpl,
			Static:    staticFs,
			Controller: controller.New(api,
				controller.WithPageSize(config.PageSize),
				controller.WithLogger(log)),
			Documents: api,
			Sessions:  sessions,

			// Relative links when the backend is this server.
			DownloadBase: config.BackendURL,
		},
		log)

	// Create a new http server to customize the timeouts.
	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", config.Port),
		Handler:           router,
		ReadTimeout:       time.Minute,
		WriteTimeout:      time.Minute,
		ReadHeaderTimeout: time.Second * 5,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Drop idle sessions every minute.
	go sweepSessions(ctx, sessions, time.Minute, log)

	errCh := make(chan error, 1)
	go func() {
		log.Infof("Listening on http://0.0.0.0:%d (backend %s)", config.Port, backendURL)
		errCh <- server.ListenAndServe()
	}()

	return GracefulShutdown(server, errCh, log)
}

func sweepSessions(ctx context.Context, sessions *session.Store, every time.Duration, log *logrus.Logger) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if n := sessions.Sweep(); n > 0 {
				log.Debugf("Removed %d idle sessions", n)
			}
		case <-ctx.Done():
			return
		}
	}
}

// GracefulShutdown waits for os.Interrupt or a server failure, then shuts
// the server down. The default timeout is 10 seconds
// To wait for pending connections.
func GracefulShutdown(server *http.Server, errCh <-chan error, log *logrus.Logger, timeout ...time.Duration) error {
	t := 10 * time.Second
	if len(timeout) > 0 {
		t = timeout[0]
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	defer signal.Stop(quit)

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server terminated with error: %w", err)
	case <-quit:
	}

	ctx, cancel := context.WithTimeout(context.Background(), t)
	defer cancel()

	log.Info("Shutting down the server")
	if err := server.Shutdown(ctx); err != nil {
		return err
	}
	log.Info("shutting down gracefully")
	return nil
}
