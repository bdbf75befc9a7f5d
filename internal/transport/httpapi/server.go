package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sandevgo/coregate/pkg/log"
)

// Server is the thin HTTP binding over the gateway. The core stays
// transport-agnostic; this only translates JSON bodies to gateway calls.
type Server struct {
	srv *http.Server
}

func NewServer(addr string, h *Handlers) *Server {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/healthz", h.Health)
	r.Post("/process", h.Process)
	r.Post("/feedback", h.Feedback)
	r.Get("/context/{userID}", h.Context)
	r.Get("/history/{userID}", h.History)

	return &Server{
		srv: &http.Server{
			Addr:              addr,
			Handler:           r,
			ReadHeaderTimeout: 5 * time.Second,
		},
	}
}

func (s *Server) Start(ctx context.Context) error {
	log.FromCtx(ctx).Info().Str("addr", s.srv.Addr).Msg("http api listening")
	if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	// The parent ctx is already done when services shut down; give the
	// drain its own deadline.
	sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.srv.Shutdown(sctx)
}
