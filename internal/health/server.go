// Package health exposes a lightweight HTTP health endpoint for container probes.
package health

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"keyword_pin_bot/internal/logging"
	"keyword_pin_bot/internal/store"
)

const (
	telegramPingTimeout = 2 * time.Second
	readHeaderTimeout   = 2 * time.Second
	healthListenPrefix  = ":"
)

// TelegramChecker reports whether the Bot API is reachable with the configured token.
type TelegramChecker interface {
	Ping(ctx context.Context) error
}

// StatsProvider exposes the in-memory counters.
type StatsProvider interface {
	Stats() store.Stats
}

// Server hosts the health endpoint and owns the underlying HTTP server.
type Server struct {
	server   *http.Server
	logger   *logrus.Entry
	telegram TelegramChecker
	stats    StatsProvider
}

type response struct {
	Status   string `json:"status"`
	Telegram string `json:"telegram,omitempty"`
	store.Stats
}

// NewServer constructs a health server that exposes GET /healthz on the provided port.
func NewServer(port int, telegram TelegramChecker, stats StatsProvider, logger *logrus.Entry) *Server {
	if logger == nil {
		logger = logging.Logger()
	}

	srv := &Server{
		logger:   logger,
		telegram: telegram,
		stats:    stats,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", srv.handleHealth)

	srv.server = &http.Server{
		Addr:              fmt.Sprintf("%s%d", healthListenPrefix, port),
		Handler:           mux,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	return srv
}

// ListenAndServe starts the health server and blocks until shutdown.
func (s *Server) ListenAndServe() error {
	s.logger.WithFields(logging.Fields{
		"event": "health_listen",
		"addr":  s.server.Addr,
	}).Info("starting health server")

	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("health server listen: %w", err)
	}

	s.logger.WithField("event", "health_stopped").Info("health server stopped")
	return nil
}

// Shutdown gracefully stops the health server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s == nil || s.server == nil {
		return nil
	}

	return s.server.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	resp := response{Status: "ok"}
	if s.stats != nil {
		resp.Stats = s.stats.Stats()
	}

	if err := s.pingTelegram(r.Context()); err != nil {
		resp.Status = "degraded"
		resp.Telegram = "error"
		s.logger.WithField("event", "health_telegram_error").WithError(err).Warn("telegram ping failed during health check")
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		s.logger.WithField("event", "health_write_error").WithError(err).Error("failed to encode health response")
	}
}

func (s *Server) pingTelegram(ctx context.Context) error {
	if s.telegram == nil {
		return errors.New("telegram checker is not configured")
	}

	pingCtx, cancel := context.WithTimeout(ctx, telegramPingTimeout)
	defer cancel()

	return s.telegram.Ping(pingCtx)
}
