package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// contentType is the exposition format version prometheus expects from a
// plain text scrape target.
const contentType = "text/plain; version=0.0.4; charset=utf-8"

type renderer interface {
	Render() string
}

type bus interface {
	IsConnected() bool
}

type server struct {
	renderer renderer
	bus      bus
	logger   *zap.Logger
}

func New(r renderer, b bus) *server {
	return &server{renderer: r, bus: b, logger: zap.L()}
}

// Routes builds the http handler: the scrape endpoint plus a liveness probe
// reflecting the bus connection.
func (s *server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(LoggingMiddleware)
	r.Get("/metrics", s.getMetrics)
	r.Get("/healthz", s.getHealthz)
	return r
}

func (s *server) getMetrics(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(s.renderer.Render()))
}

func (s *server) getHealthz(w http.ResponseWriter, _ *http.Request) {
	if s.bus != nil && !s.bus.IsConnected() {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("mqtt disconnected"))
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
