package server

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/osse101/RecipeCraft_Go/internal/crafting"
	"github.com/osse101/RecipeCraft_Go/internal/database"
	"github.com/osse101/RecipeCraft_Go/internal/handler"
	"github.com/osse101/RecipeCraft_Go/internal/logger"
	"github.com/osse101/RecipeCraft_Go/internal/metrics"
	"github.com/osse101/RecipeCraft_Go/internal/sse"
)

// Options configures the HTTP surface
type Options struct {
	Port           int
	APIKey         string
	TrustedProxies []string
}

// Dependencies are the services the routes call into
type Dependencies struct {
	Crafting    crafting.Service
	Inventory   handler.PartyInventory
	Professions handler.ProfessionLister
	Toasts      handler.ToastSource
	DBPool      database.Pool // nil with in-memory saves
	Events      *sse.Hub      // nil disables /api/v1/events
}

type Server struct {
	httpServer *http.Server
}

// NewServer creates a new Server instance
func NewServer(opts Options, deps Dependencies) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", opts.Port),
			Handler:           NewRouter(opts, deps),
			ReadHeaderTimeout: DefaultReadHeaderTimeout,
		},
	}
}

// NewRouter builds the chi router with the middleware stack and every route
func NewRouter(opts Options, deps Dependencies) chi.Router {
	r := chi.NewRouter()

	// Chi middleware executes in order defined (outermost to innermost)
	monitor := NewClientMonitor()

	r.Use(SecurityHeadersMiddleware())
	r.Use(loggingMiddleware)
	r.Use(AuthMiddleware(opts.APIKey, opts.TrustedProxies, monitor))
	r.Use(RateLimitMiddleware(opts.TrustedProxies, monitor))
	r.Use(RequestSizeLimitMiddleware(DefaultMaxRequestBodySize))
	r.Use(metrics.Middleware)

	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(deps.DBPool))
	r.Get("/version", handler.HandleVersion())
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/recipes", func(r chi.Router) {
			r.Get("/", handler.HandleListRecipes(deps.Crafting))
			r.Post("/discover", handler.HandleDiscoverRecipe(deps.Crafting))
			r.Post("/initialize", handler.HandleInitializeRecipes(deps.Crafting))
			r.Get("/{name}", handler.HandleGetRecipe(deps.Crafting))
		})

		r.Route("/craft", func(r chi.Router) {
			r.Get("/", handler.HandleCraftStatus(deps.Crafting))
			r.Post("/", handler.HandleStartCraft(deps.Crafting))
		})

		inventoryHandler := handler.NewInventoryHandler(deps.Inventory)
		r.Get("/inventory", inventoryHandler.HandleGetInventory)
		r.Post("/inventory/add", inventoryHandler.HandleAddItem)
		r.Post("/items/use", inventoryHandler.HandleUseItem)

		r.Get("/professions", handler.HandleGetProfessions(deps.Professions))
		r.Get("/professions/{name}", handler.HandleGetProfession(deps.Professions))
		r.Get("/toasts", handler.HandleDrainToasts(deps.Toasts))

		r.Post("/save", handler.HandleSave(deps.Crafting))
		r.Post("/load", handler.HandleLoad(deps.Crafting))

		if deps.Events != nil {
			r.Get("/events", sse.Handler(deps.Events))
		}
	})

	return r
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{
		ResponseWriter: w,
		statusCode:     http.StatusOK,
	}
}

func (rw *responseWriter) WriteHeader(statusCode int) {
	if !rw.written {
		rw.statusCode = statusCode
		rw.written = true
		rw.ResponseWriter.WriteHeader(statusCode)
	}
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.written {
		rw.WriteHeader(http.StatusOK)
	}
	return rw.ResponseWriter.Write(b)
}

// Flush lets streaming handlers flush through the wrapper
func (rw *responseWriter) Flush() {
	if f, ok := rw.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/healthz") ||
			strings.HasPrefix(r.URL.Path, "/readyz") ||
			strings.HasPrefix(r.URL.Path, "/metrics") {
			next.ServeHTTP(w, r)
			return
		}

		start := time.Now()
		ctx := logger.WithRequestID(r.Context(), logger.GenerateRequestID())
		r = r.WithContext(ctx)
		log := logger.FromContext(ctx)

		log.Info(LogMsgRequestStarted,
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"user_agent", r.UserAgent())
		log.Debug(LogMsgRequestHeaders, "headers", redactHeaders(r.Header))

		rw := newResponseWriter(w)
		next.ServeHTTP(rw, r)

		duration := time.Since(start)
		log.Info(LogMsgRequestCompleted,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", duration.Milliseconds())
	})
}

func redactHeaders(h http.Header) http.Header {
	out := make(http.Header, len(h))
	for k, v := range h {
		if strings.EqualFold(k, HeaderAPIKey) || strings.EqualFold(k, HeaderAuthorization) {
			out[k] = []string{RedactedValue}
			continue
		}
		out[k] = v
	}
	return out
}

// Start starts the server
func (s *Server) Start() error {
	logger.Info(LogMsgServerStarting, "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
