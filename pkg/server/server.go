package server

import (
	"context"
	"net/http"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/stackbar/pkg/pipeline"
)

// DefaultMaxBody caps request bodies.
const DefaultMaxBody = 8 << 20

// Server handles render requests with a shared runner.
type Server struct {
	Runner  *pipeline.Runner
	Logger  *log.Logger
	MaxBody int64
	// AllowedHosts lists the hosts a remote "source" may name. Empty refuses
	// every remote source; "*" allows any host.
	AllowedHosts []string
}

// New creates a server. A nil logger uses log.Default().
func New(runner *pipeline.Runner, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{Runner: runner, Logger: logger, MaxBody: DefaultMaxBody}
}

func (s *Server) allowsSource(ref string) bool {
	if slices.Contains(s.AllowedHosts, "*") {
		return true
	}
	u, err := url.Parse(ref)
	if err != nil {
		return false
	}
	host := u.Hostname()
	return host != "" && slices.ContainsFunc(s.AllowedHosts, func(h string) bool {
		return strings.EqualFold(h, host)
	})
}

// Handler returns the routed handler with middleware applied.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/render", s.handleRender)
		r.Post("/range", s.handleRange)
	})
	return r
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	s.Logger.Info("listening", "addr", addr)

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	s.Logger.Info("server stopped")
	return nil
}
