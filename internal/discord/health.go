package discord

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const (
	healthReadHeaderTimeout = 5 * time.Second
	healthShutdownTimeout   = 5 * time.Second
)

// HealthStatus is the body of GET /health
type HealthStatus struct {
	Status           string    `json:"status"`
	Uptime           string    `json:"uptime"`
	Connected        bool      `json:"connected"`
	APIReachable     bool      `json:"api_reachable"`
	CommandsReceived int64     `json:"commands_received"`
	LastCommandTime  time.Time `json:"last_command_time,omitzero"`
}

// HealthServer serves the bot's liveness endpoint for the container runtime
type HealthServer struct {
	server *http.Server
}

// NewHealthServer builds the health server for bot on port
func NewHealthServer(port string, bot *Bot) *HealthServer {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get("/health", bot.HandleHealth)

	return &HealthServer{server: &http.Server{
		Addr:              ":" + port,
		Handler:           r,
		ReadHeaderTimeout: healthReadHeaderTimeout,
	}}
}

// Start serves in the background
func (h *HealthServer) Start() {
	go func() {
		slog.Info("Starting bot health server", "addr", h.server.Addr)
		if err := h.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Bot health server failed", "error", err)
		}
	}()
}

// Stop shuts the server down, waiting briefly for in-flight probes
func (h *HealthServer) Stop() {
	ctx, cancel := context.WithTimeout(context.Background(), healthShutdownTimeout)
	defer cancel()
	if err := h.server.Shutdown(ctx); err != nil {
		slog.Error("Bot health server shutdown failed", "error", err)
	}
}

// HandleHealth answers 200 when the gateway is up and the core API answers,
// 503 otherwise
func (b *Bot) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	health := HealthStatus{
		Uptime:       time.Since(b.started).Round(time.Second).String(),
		Connected:    b.Connected(),
		APIReachable: b.Client != nil && b.Client.Healthy(),
	}
	if b.Registry != nil {
		health.CommandsReceived, health.LastCommandTime = b.Registry.Stats()
	}

	code := http.StatusOK
	health.Status = "healthy"
	if !health.Connected || !health.APIReachable {
		code = http.StatusServiceUnavailable
		health.Status = "degraded"
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(health); err != nil {
		slog.Warn("Failed to encode health status", "error", err)
	}
}
