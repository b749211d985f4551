package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/greentwin/aas-cockpit/internal/apikeys"
	"github.com/greentwin/aas-cockpit/internal/backend"
	"github.com/greentwin/aas-cockpit/internal/config"
	"github.com/greentwin/aas-cockpit/internal/services"
	"github.com/greentwin/aas-cockpit/internal/session"
)

func main() {
	// Load environment variables from .env file
	_ = godotenv.Load()

	cfg := config.Load()
	log := newLogger(cfg.App.Dev)

	// Session store: sqlite by default, postgres when configured
	store, err := session.Open(cfg.Session)
	if err != nil {
		log.Fatal().Err(err).Msg("open session store")
	}
	if err := store.Prune(); err != nil {
		log.Warn().Err(err).Msg("prune sessions")
	}
	sessions := session.NewManager(store, cfg.Session.Secret)

	// Clients for the two external services
	aasClient := backend.New(cfg.Backend.BaseURL, cfg.Backend.Timeout, log)
	keyClient := apikeys.New(cfg.Keys.BaseURL, cfg.Keys.MasterKey, cfg.Backend.Timeout)
	collection := services.NewCollection(aasClient, log)

	appHandler := NewApp(aasClient, keyClient, collection, sessions, log)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      withLogging(appHandler, log),
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Server.Port).Bool("dev", cfg.App.Dev).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("error during shutdown")
	}
	log.Info().Msg("server stopped gracefully")
}

// newLogger builds the root logger: pretty console output in dev, JSON
// otherwise.
func newLogger(dev bool) zerolog.Logger {
	if dev {
		return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
			With().Timestamp().Logger().Level(zerolog.DebugLevel)
	}
	return zerolog.New(os.Stderr).With().Timestamp().Logger().Level(zerolog.InfoLevel)
}

// withLogging adds request logging middleware.
func withLogging(next http.Handler, log zerolog.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Dur("duration", time.Since(start)).
			Msg("request")
	})
}
