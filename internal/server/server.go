// Package server exposes the record store over HTTP for the prototype UI:
// table definitions, the query/CRUD surface, and the record-writer endpoint
// that external stores push snapshots to.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/protoglyph/slatedesk/internal/persist"
	"github.com/protoglyph/slatedesk/pkg/types"
)

// Server wires the store, the file-backed record writer, and the schema
// directory behind the HTTP API.
type Server struct {
	store     types.RecordStore
	files     *persist.FileStore
	schemaDir string
	logger    *zap.Logger
}

// New builds a Server. files may be nil when no record-writer endpoint is
// wanted; schemaDir may be empty when imported definitions should not be
// saved to disk.
func New(store types.RecordStore, files *persist.FileStore, schemaDir string, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{store: store, files: files, schemaDir: schemaDir, logger: logger}
}

// Router assembles the chi route tree.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Route("/tables", func(r chi.Router) {
			r.Get("/", s.handleListTables)
			r.Post("/", s.handleRegisterTable)
			r.Route("/{table}", func(r chi.Router) {
				r.Get("/", s.handleGetTable)
				r.Get("/related", s.handleRelated)
				r.Route("/records", func(r chi.Router) {
					r.Get("/", s.handleQuery)
					r.Post("/", s.handleCreate)
					r.Get("/{id}", s.handleGetOne)
					r.Patch("/{id}", s.handleUpdate)
					r.Delete("/{id}", s.handleDelete)
				})
			})
		})

		// Record writer: external stores push full-table snapshots here.
		r.Post("/records/{table}", s.handleWriteRecords)
	})

	return r
}

// Run serves the API on addr until ctx is canceled, then shuts down
// gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Info("dev server listening", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
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

// requestLogger logs each request with method, path, status, and duration.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("duration", time.Since(start)))
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
