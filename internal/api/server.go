package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/lottolab/powerpick/internal/metrics"
	"github.com/lottolab/powerpick/internal/service"
	"github.com/lottolab/powerpick/pkg/common/logger"
)

// Server exposes the pick generator and draw cache over HTTP.
type Server struct {
	svc        *service.Service
	version    string
	httpServer *http.Server
}

func NewServer(svc *service.Service, version string) *Server {
	if version == "" {
		version = "dev"
	}
	return &Server{svc: svc, version: version}
}

// Routes assembles the router with the standard middleware stack.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(s.recovery)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/health", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	r.Route("/v1", func(r chi.Router) {
		r.Get("/draws", s.handleListDraws)
		r.Get("/draws/latest", s.handleLatestDraw)
		r.Get("/draws/{date}", s.handleGetDraw)
		r.Get("/jackpot", s.handleJackpot)
		r.Get("/odds", s.handleOdds)
		r.Post("/picks", s.handleGeneratePicks)
		r.Post("/picks/check", s.handleCheckPick)
	})

	return metrics.InstrumentHandler(r)
}

// Start launches the listener in the background.
func (s *Server) Start(port int) {
	s.httpServer = &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: s.Routes(),
	}

	go func() {
		logger.Info("HTTP server started", "port", port, "health_endpoint", "/health")
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server failed", "error", err)
		}
	}()
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}
