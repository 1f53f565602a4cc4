// Package ui provides the web dashboard for browsing and editing categories.
package ui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/sessions"
	"golang.org/x/sync/errgroup"

	"github.com/leapstack-labs/shopdash/internal/api"
	"github.com/leapstack-labs/shopdash/internal/i18n"
	"github.com/leapstack-labs/shopdash/internal/ui/notifier"
	"github.com/leapstack-labs/shopdash/internal/ui/router"
)

// Server is the main UI server.
type Server struct {
	categories      api.CategoryService
	catalog         *i18n.Catalog
	sessionStore    *sessions.CookieStore
	port            int
	watch           bool
	dev             bool
	translationsDir string
	logger          *slog.Logger
	notifier        *notifier.Notifier
	reloads         *notifier.Notifier
}

// Config holds configuration for the UI server.
type Config struct {
	Categories      api.CategoryService
	Catalog         *i18n.Catalog
	Port            int
	Watch           bool
	Dev             bool
	SessionSecret   string
	Logger          *slog.Logger
	TranslationsDir string
}

// NewServer creates a new UI server instance.
func NewServer(cfg Config) *Server {
	sessionStore := sessions.NewCookieStore([]byte(cfg.SessionSecret))
	sessionStore.MaxAge(86400 * 30) // 30 days
	sessionStore.Options.Path = "/"
	sessionStore.Options.HttpOnly = true
	sessionStore.Options.SameSite = http.SameSiteLaxMode

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		categories:      cfg.Categories,
		catalog:         cfg.Catalog,
		sessionStore:    sessionStore,
		port:            cfg.Port,
		watch:           cfg.Watch,
		dev:             cfg.Dev,
		translationsDir: cfg.TranslationsDir,
		logger:          logger,
		notifier:        notifier.New(),
	}
	if cfg.Dev {
		s.reloads = notifier.New()
	}
	return s
}

// Handler builds the router with all middleware and feature routes.
func (s *Server) Handler() (http.Handler, error) {
	r := chi.NewMux()
	r.Use(
		middleware.Logger,
		middleware.Recoverer,
		middleware.Compress(5),
	)

	deps := router.Deps{
		Categories:   s.categories,
		SessionStore: s.sessionStore,
		Notifier:     s.notifier,
		Reloads:      s.reloads,
		Logger:       s.logger,
	}
	// A nil *Catalog must stay a nil interface so handlers fall back to
	// untranslated messages.
	if s.catalog != nil {
		deps.Translations = s.catalog
	}

	if err := router.SetupRoutes(r, deps); err != nil {
		return nil, fmt.Errorf("failed to setup routes: %w", err)
	}
	return r, nil
}

// Serve starts the UI server and blocks until the context is cancelled.
func (s *Server) Serve(ctx context.Context) error {
	addr := fmt.Sprintf(":%d", s.port)
	s.logger.Info("starting UI server", "addr", fmt.Sprintf("http://localhost:%d", s.port))

	eg, egctx := errgroup.WithContext(ctx)

	handler, err := s.Handler()
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:    addr,
		Handler: handler,
		BaseContext: func(_ net.Listener) context.Context {
			return egctx
		},
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Reload translations on change if enabled
	if s.watch && s.translationsDir != "" && s.catalog != nil {
		eg.Go(func() error {
			return s.watchTranslations(egctx)
		})
	}

	// Start HTTP server
	eg.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	// Graceful shutdown
	eg.Go(func() error {
		<-egctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Debug("shutting down UI server...")
		return srv.Shutdown(shutdownCtx)
	})

	return eg.Wait()
}

// IsDev reports whether dev-mode page reloading is enabled.
func (s *Server) IsDev() bool {
	return s.dev
}

// Notifier returns the server's notifier for SSE updates.
func (s *Server) Notifier() *notifier.Notifier {
	return s.notifier
}

// watchTranslations reloads the catalog when a translation file changes.
func (s *Server) watchTranslations(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer func() { _ = watcher.Close() }()

	if err := watcher.Add(s.translationsDir); err != nil {
		s.logger.Error("failed to watch translations directory", "dir", s.translationsDir, "error", err)
		// Don't fail - continue without watching
	}

	// Debounce timer
	var debounceTimer *time.Timer

	for {
		select {
		case <-ctx.Done():
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			if filepath.Ext(event.Name) != ".yaml" {
				continue
			}

			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(100*time.Millisecond, func() {
				s.reloadTranslations(event.Name)
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			s.logger.Error("watcher error", "error", err)
		}
	}
}

// reloadTranslations swaps in the current translation files and tells open
// pages to refresh. A broken file keeps the previous catalog.
func (s *Server) reloadTranslations(changed string) {
	s.logger.Debug("translation file changed, reloading", "file", changed)
	if err := s.catalog.Reload(s.translationsDir); err != nil {
		s.logger.Error("failed to reload translations", "error", err)
		return
	}
	s.notifyClients()
}

// notifyClients sends a notification to all connected SSE clients.
func (s *Server) notifyClients() {
	s.notifier.Broadcast(notifier.Change{Reason: notifier.TranslationsReloaded})
	if s.reloads != nil {
		s.reloads.Broadcast(notifier.Change{Reason: notifier.Reload})
	}
}
