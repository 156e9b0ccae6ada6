package ui

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"datalens/internal/analyze"
	"datalens/internal/config"
)

// Server is the thin transport layer over the profiling engine: it accepts
// uploads, invokes the analyzer, and serializes the result.
type Server struct {
	router   *chi.Mux
	analyzer *analyze.Analyzer

	port      string
	uploadDir string
	maxBytes  int64

	mu          sync.Mutex
	currentFile string // path of the last accepted upload
}

// NewServer creates the HTTP server around a fresh analyzer.
func NewServer(cfg *config.Config) (*Server, error) {
	if err := os.MkdirAll(cfg.Upload.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}

	s := &Server{
		router:    chi.NewRouter(),
		analyzer:  analyze.New(),
		port:      cfg.Server.Port,
		uploadDir: cfg.Upload.Dir,
		maxBytes:  cfg.Upload.MaxBytes,
	}

	s.setupMiddleware()
	s.setupRoutes()
	return s, nil
}

// setupMiddleware configures HTTP middleware
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))
}

// setupRoutes configures the application routes
func (s *Server) setupRoutes() {
	s.router.Post("/upload", s.handleUpload)
	s.router.Get("/analyse", s.handleAnalyse)
	s.router.Get("/healthz", s.handleHealth)
}

// Router exposes the handler tree, mainly for tests.
func (s *Server) Router() http.Handler {
	return s.router
}

// Run serves until the context is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    ":" + s.port,
		Handler: s.router,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		serverLog.Infof("Listening on :%s", s.port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func (s *Server) setCurrentFile(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.currentFile = path
}

func (s *Server) getCurrentFile() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentFile
}
