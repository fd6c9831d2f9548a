package server

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/example/studydash/internal/dashboard"
)

//go:embed templates/*.html
var templateFS embed.FS

// Pinger reports whether the store is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

// Server holds the state for the HTTP server.
type Server struct {
	addr   string
	router *gin.Engine
	logger zerolog.Logger
	http   *http.Server
}

// New builds the router for a dashboard
func New(addr string, dash *dashboard.Dashboard, store Pinger, lgr zerolog.Logger) (*Server, error) {
	tmpl, err := template.New("").Funcs(template.FuncMap{
		"num":   dashboard.FormatNumber,
		"deref": func(f *float64) float64 { return *f },
	}).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	router := gin.New()
	// Paths match exactly, "/api/" is not "/api"
	router.RedirectTrailingSlash = false
	router.SetHTMLTemplate(tmpl)
	router.Use(requestID(), accessLog(lgr), gin.Recovery())

	h := &handler{dash: dash, store: store, logger: lgr}

	router.GET("/healthz", h.health)
	serialized := router.Group("/", serialize(dash))
	{
		serialized.GET("/", h.index)
		serialized.POST("/api", h.api)
	}
	router.NoRoute(notFound)

	return &Server{
		addr:   addr,
		router: router,
		logger: lgr,
	}, nil
}

// Handler returns the HTTP handler, for tests and embedding
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves HTTP until ctx is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context) error {
	s.http = &http.Server{
		Addr:         s.addr,
		Handler:      s.router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Channel to listen for errors starting the server
	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info().Str("url", "http://"+s.addr).Msg("Dashboard server started")
		serverErrors <- s.http.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("error starting server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	return s.Shutdown(context.Background())
}

// Shutdown gracefully stops the server
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if s.http == nil {
		return nil
	}
	s.logger.Info().Msg("Shutting down HTTP server...")
	if err := s.http.Shutdown(ctx); err != nil {
		return fmt.Errorf("HTTP server shutdown error: %w", err)
	}
	s.logger.Info().Msg("HTTP server gracefully stopped.")
	return nil
}
