package web

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	spotifyauth "github.com/zmb3/spotify/v2/auth"

	"github.com/acrane/wrapped-so-far/internal/cache"
	"github.com/acrane/wrapped-so-far/internal/db"
)

const (
	// DefaultAddr is the default server address.
	DefaultAddr = "127.0.0.1:8080"

	// DefaultRedirectURL must match the Spotify app configuration.
	DefaultRedirectURL = "http://127.0.0.1:8080/callback"
)

// ServerConfig holds server configuration.
type ServerConfig struct {
	Addr         string
	ClientID     string
	ClientSecret string
	RedirectURL  string
	Database     *db.DB // nil disables persistence
}

// Server is the HTTP server for the JSON API.
type Server struct {
	router   chi.Router
	server   *http.Server
	sessions SessionManager
	handlers *Handlers
}

// NewServer creates a new API server.
func NewServer(cfg ServerConfig) (*Server, error) {
	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}
	if cfg.RedirectURL == "" {
		cfg.RedirectURL = DefaultRedirectURL
	}

	auth := spotifyauth.New(
		spotifyauth.WithClientID(cfg.ClientID),
		spotifyauth.WithClientSecret(cfg.ClientSecret),
		spotifyauth.WithRedirectURL(cfg.RedirectURL),
		spotifyauth.WithScopes(
			spotifyauth.ScopeUserTopRead,
			spotifyauth.ScopeUserReadRecentlyPlayed,
			spotifyauth.ScopeUserReadPrivate,
			spotifyauth.ScopeUserReadEmail,
		),
	)

	// Sessions live in the database when one is configured, otherwise
	// in memory.
	var sessions SessionManager
	if cfg.Database != nil {
		sessions = NewDBSessionStore(cfg.Database)
	} else {
		sessions = NewSessionStore()
	}

	handlers := NewHandlers(auth, sessions, cfg.Database, cache.New(cache.DefaultTTL))

	router := chi.NewRouter()

	s := &Server{
		router:   router,
		sessions: sessions,
		handlers: handlers,
	}

	s.setupMiddleware()
	s.setupRoutes()

	s.server = &http.Server{
		Addr:         cfg.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// setupMiddleware configures middleware for the router.
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))
}

// setupRoutes configures routes for the application.
func (s *Server) setupRoutes() {
	s.router.Get("/", s.handlers.Root)

	// Auth routes
	s.router.Get("/auth/login", s.handlers.Login)
	s.router.Get("/callback", s.handlers.Callback)
	s.router.Post("/auth/logout", s.handlers.Logout)

	// API routes require a session
	s.router.Route("/api", func(r chi.Router) {
		r.Use(s.handlers.requireSession)
		r.Get("/me", s.handlers.Me)
		r.Get("/top-artists", s.handlers.TopArtists)
		r.Get("/top-tracks", s.handlers.TopTracks)
		r.Get("/recent", s.handlers.Recent)
		r.Get("/stats", s.handlers.Stats)
		r.Get("/personality", s.handlers.Personality)
		r.Get("/personality/history", s.handlers.PersonalityHistory)
		r.Get("/moods", s.handlers.Moods)
	})
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	log.Printf("Starting server at http://%s", s.server.Addr)
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// Run starts the server and handles graceful shutdown on interrupt signals.
func (s *Server) Run() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		if err := s.Start(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-stop:
		log.Println("Shutting down server...")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := s.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	log.Println("Server stopped")
	return nil
}
