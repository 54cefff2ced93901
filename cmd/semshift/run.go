package cmd

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/semshift/semshift/config"
	"github.com/semshift/semshift/pkg/cache"
	"github.com/semshift/semshift/pkg/llms"
	"github.com/semshift/semshift/pkg/models"
	"github.com/semshift/semshift/pkg/server"
	"github.com/semshift/semshift/pkg/vocab"
)

const shutdownTimeout = 10 * time.Second

// run is the entrypoint for the semshift server
func run() {
	cfg, err := config.LoadConfig(cfgFile)
	if err != nil {
		log.Fatalf("Error configuring semshift: %s", err)
	}

	handleCLIOptions(cfg)

	log.Infof("Starting semshift server version %s", config.VersionString)

	config.SetLogLevel(cfg)
	appState := NewAppState(cfg)

	warmCache(appState)

	srv := server.Create(appState)
	setupSignalHandler(srv)

	log.Infof("Listening on: %s", srv.Addr)
	err = srv.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}
}

// NewAppState creates an AppState struct from the config file / ENV,
// loads the vocabulary, and wires the embedding provider and cache.
// Vocabulary load failures other than a missing source file are fatal.
func NewAppState(cfg *config.Config) *models.AppState {
	client, err := llms.NewEmbeddingsClient(cfg)
	if err != nil {
		log.Fatal(err)
	}

	vocabulary, err := vocab.NewStore(cfg.Vocabulary.Path).Load()
	if err != nil {
		log.Fatal(err)
	}

	return &models.AppState{
		EmbeddingsClient: client,
		Cache:            cache.NewCache(cfg, client, vocabulary),
		Vocabulary:       vocabulary,
		Config:           cfg,
	}
}

// warmCache builds or loads the embedding matrix for the default template
// so the first query doesn't pay for it. Failure is not fatal; the lazy
// path retries on the next query.
func warmCache(appState *models.AppState) {
	if _, err := appState.Cache.Ensure(context.Background(), ""); err != nil {
		log.Warnf("embedding cache warm-up failed, will retry on first query: %v", err)
	}
}

// setupSignalHandler drains in-flight requests on termination
func setupSignalHandler(srv *http.Server) {
	signalCh := make(chan os.Signal, 1)
	signal.Notify(signalCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-signalCh
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			log.Errorf("Error shutting down server: %v", err)
		}
	}()
}
