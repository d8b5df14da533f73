// Package server assembles the HTTP surface: the Connect LedgerService,
// Prometheus metrics and optional static files, served over h2c.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/mmynk/splitfriends/internal/auth"
	"github.com/mmynk/splitfriends/internal/config"
	"github.com/mmynk/splitfriends/internal/metrics"
	"github.com/mmynk/splitfriends/internal/middleware"
	"github.com/mmynk/splitfriends/internal/service"
	"github.com/mmynk/splitfriends/internal/storage"
	"github.com/mmynk/splitfriends/internal/storage/sqlite"
	"github.com/mmynk/splitfriends/pkg/api/ledgerconnect"
)

// Server owns the session store and the HTTP handler built on it.
type Server struct {
	cfg      *config.Config
	store    storage.SessionStore
	sessions *auth.SessionManager
	handler  http.Handler
}

// New opens an in-memory session store and builds the handler.
func New(cfg *config.Config) (*Server, error) {
	store, err := sqlite.New()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	sessions, err := auth.NewSessionManager(cfg.SessionSecret, cfg.SessionTTL)
	if err != nil {
		store.Close()
		return nil, err
	}

	registry := prometheus.NewRegistry()
	m := metrics.New(registry, store)

	svc := service.NewLedgerService(store, sessions, service.Options{
		Currency: cfg.Currency,
		NoSeed:   !cfg.Seed,
		Metrics:  m,
	})

	mux := http.NewServeMux()

	// Register Connect services
	ledgerPath, ledgerHandler := ledgerconnect.NewLedgerServiceHandler(svc, connect.WithInterceptors(
		middleware.MetricsInterceptor(m),
		middleware.RequireSession(sessions, ledgerconnect.LedgerServiceCreateSessionProcedure),
		middleware.LoggingInterceptor(),
	))
	mux.Handle(ledgerPath, ledgerHandler)
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry}))

	if cfg.StaticPath != "" {
		staticDir, err := filepath.Abs(cfg.StaticPath)
		if err != nil {
			store.Close()
			return nil, fmt.Errorf("failed to resolve static path: %w", err)
		}
		slog.Info("Serving static files", "path", staticDir)
		mux.Handle("/", staticHandler(staticDir))
	}

	return &Server{
		cfg:      cfg,
		store:    store,
		sessions: sessions,
		handler:  loggingMiddleware(corsMiddleware(mux)),
	}, nil
}

// Handler returns the root handler, wrapped with logging and CORS.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Close discards all sessions.
func (s *Server) Close() error {
	return s.store.Close()
}

// Serve accepts connections on l until ctx is done, then shuts down
// gracefully. Idle sessions are pruned in the background.
func (s *Server) Serve(ctx context.Context, l net.Listener) error {
	// Wrap with h2c for HTTP/2 without TLS (required for Connect)
	srv := &http.Server{
		Handler:           h2c.NewHandler(s.handler, &http2.Server{}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go s.pruneLoop(ctx)

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Connect server starting", "address", l.Addr().String(), "url", "http://"+l.Addr().String())
		errCh <- srv.Serve(l)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	slog.Info("Shutting down server")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down: %w", err)
	}
	return nil
}

// ListenAndServe listens on the configured address and calls Serve.
func (s *Server) ListenAndServe(ctx context.Context) error {
	l, err := net.Listen("tcp", s.cfg.ListenAddr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.cfg.ListenAddr, err)
	}
	return s.Serve(ctx, l)
}

// pruneLoop drops sessions idle for longer than the token lifetime; their
// tokens have expired, so nobody can reach them any more.
func (s *Server) pruneLoop(ctx context.Context) {
	interval := s.sessions.TokenDuration() / 4
	if interval < time.Minute {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			removed, err := s.store.PruneSessions(ctx, now.Add(-s.sessions.TokenDuration()))
			if err != nil {
				slog.Warn("Failed to prune sessions", "error", err)
				continue
			}
			if removed > 0 {
				slog.Info("Pruned idle sessions", "count", removed)
			}
		}
	}
}

// staticHandler serves files from dir, falling back to index.html for
// unknown paths so a single-page frontend can route on the client.
func staticHandler(dir string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Unknown Connect procedures should 404 rather than return the page
		if strings.HasPrefix(r.URL.Path, "/splitfriends.v1.") {
			http.NotFound(w, r)
			return
		}

		urlPath := r.URL.Path
		if urlPath == "/" {
			urlPath = "/index.html"
		}

		filePath := filepath.Join(dir, filepath.Clean("/"+urlPath))
		if _, err := os.Stat(filePath); os.IsNotExist(err) {
			http.ServeFile(w, r, filepath.Join(dir, "index.html"))
			return
		}

		http.ServeFile(w, r, filePath)
	})
}

// loggingMiddleware logs all incoming requests
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		slog.Debug("Request received",
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"user_agent", r.UserAgent(),
		)

		next.ServeHTTP(w, r)

		slog.Debug("Request completed",
			"method", r.Method,
			"path", r.URL.Path,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

// corsMiddleware adds CORS headers for browser access
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, Connect-Protocol-Version, Connect-Timeout-Ms")
		w.Header().Set("Access-Control-Expose-Headers", "Connect-Protocol-Version, Connect-Timeout-Ms")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
