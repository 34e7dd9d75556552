package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/srijanmishra08/playlist-recommender/internal/repositories"
	"github.com/srijanmishra08/playlist-recommender/internal/server"
	"github.com/srijanmishra08/playlist-recommender/internal/services"
	"github.com/srijanmishra08/playlist-recommender/internal/shared"
	"github.com/srijanmishra08/playlist-recommender/internal/web"
	"github.com/urfave/cli/v3"
)

// Serve starts the HTTP server with the full API surface.
//
// The server starts even when credentials are missing so the UI and the
// diagnostic endpoints can explain what is wrong.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	host := r.config.Server.Host
	if cmd.String("host") != "" {
		host = cmd.String("host")
	}
	port := r.config.Server.Port
	if cmd.Int("port") != 0 {
		port = int(cmd.Int("port"))
	}

	if r.credErr != nil {
		r.logger.Warn("starting without catalog access", "error", r.credErr)
	}

	history, closeDB, err := r.openHistory()
	if err != nil {
		r.logger.Warn("history store unavailable", "error", err)
	}
	if closeDB != nil {
		defer closeDB()
	}

	// Typed nils must not leak into the handlers' interface fields.
	var gen server.Generator
	var pub services.Publisher
	var auth server.Authenticator
	var rec server.Recorder
	var verifier server.CredentialsVerifier
	if r.engine != nil {
		gen = r.engine
	}
	if r.catalog != nil {
		pub = r.catalog
		auth = r.catalog
		verifier = r.catalog
	}
	if history != nil {
		rec = history
	}

	router := server.NewBasicRouter()
	router.Use(server.Logging(r.logger))

	router.Handler(server.NewPlaylistHandler(gen, rec, r.logger, r.credErr))
	router.Handler(server.NewSaveHandler(pub, r.logger))
	router.Handler(server.NewAuthHandler(auth, r.logger))
	router.Handler(&server.CallbackHandler{})
	router.Handler(server.NewCredentialsHandler(r.config.Credentials.Spotify, verifier))
	router.Handler(server.NewHistoryHandler(rec))
	router.Handler(&server.HealthHandler{})
	router.Handler(&web.Handler{})

	addr := fmt.Sprintf("%s:%d", host, port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		r.logger.Info("server listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		r.logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)
	}
}

// openHistory opens the history database if it exists. A missing database is
// not an error; run `setup` to create it.
func (r *Runner) openHistory() (*repositories.HistoryRepository, func(), error) {
	path := r.config.Database.Path
	if path == "" {
		return nil, nil, nil
	}
	if _, err := os.Stat(path); err != nil {
		return nil, nil, fmt.Errorf("database not found at %s, run setup first", path)
	}

	db, err := shared.NewDatabase(path)
	if err != nil {
		return nil, nil, err
	}
	shared.ConfigureDatabase(db, r.config.Database.MaxOpenConns, r.config.Database.MaxIdleConns)

	return repositories.NewHistoryRepository(db), func() { db.Close() }, nil
}
