// Package server provides the read-only HTTP API over ingested jobs: list
// with filters, fetch by id, and the niche configurations the frontend
// needs to render a board.
package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonathan/nichejobs/internal/niche"
	"github.com/jonathan/nichejobs/internal/store"
	"github.com/jonathan/nichejobs/internal/types"
)

// JobReader is the slice of the store the API needs. The write path stays
// private to the aggregation pipeline.
type JobReader interface {
	ListJobs(ctx context.Context, f store.Filters) ([]types.Job, int, error)
	GetJob(ctx context.Context, id string) (*types.Job, error)
}

// Server is the HTTP API server.
type Server struct {
	httpServer *http.Server
	jobs       JobReader
	niches     *niche.Registry
}

// Config holds server configuration.
type Config struct {
	Port int
}

// New creates a server over the given job reader and niche registry.
func New(cfg Config, jobs JobReader, niches *niche.Registry) *Server {
	s := &Server{jobs: jobs, niches: niches}

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.Handler(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

// Handler returns the routed handler with middleware applied. Exposed for
// tests.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /jobs", s.handleListJobs)
	mux.HandleFunc("GET /jobs/{id}", s.handleGetJob)
	mux.HandleFunc("GET /niches", s.handleListNiches)
	mux.HandleFunc("GET /niches/{id}", s.handleGetNiche)
	mux.HandleFunc("GET /health", s.handleHealth)
	return s.withLogging(s.withCORS(mux))
}

// Start listens until SIGINT/SIGTERM, then shuts down gracefully.
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("[server] listening on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("[server] error: %v", err)
		}
	}()

	<-stop
	log.Println("[server] shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	log.Println("[server] stopped")
	return nil
}

// withCORS allows any origin: the API is read-only and public.
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("[server] %s %s completed in %v", r.Method, r.URL.Path, time.Since(start))
	})
}
