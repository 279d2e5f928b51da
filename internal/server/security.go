package server

import (
	"crypto/subtle"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/osse101/RecipeCraft_Go/internal/logger"
)

// AuthMiddleware requires the X-API-Key header on every non-public path
func AuthMiddleware(apiKey string, trustedProxies []string, monitor *ClientMonitor) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isPublicPath(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			providedKey := r.Header.Get(HeaderAPIKey)
			if subtle.ConstantTimeCompare([]byte(providedKey), []byte(apiKey)) != 1 {
				ip := extractIP(r, trustedProxies)
				if monitor != nil {
					monitor.RecordFailedAuth(ip)
				}

				logger.FromContext(r.Context()).Warn(LogMsgAuthFailed,
					"path", r.URL.Path,
					"has_key", providedKey != "",
					"ip", ip)

				http.Error(w, ErrMsgUnauthorized, http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func isPublicPath(path string) bool {
	for _, p := range PublicPaths {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}

// RequestSizeLimitMiddleware limits request body size
func RequestSizeLimitMiddleware(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			next.ServeHTTP(w, r)
		})
	}
}

// ClientMonitor counts requests and failed logins per client IP over a fixed window
type ClientMonitor struct {
	mu              sync.Mutex
	window          time.Duration
	maxRequests     int
	failedAuthAlert int
	failedAuth      map[string]int
	requests        map[string]int
	windowStart     time.Time
	now             func() time.Time
}

// NewClientMonitor creates a monitor with the default window and limits
func NewClientMonitor() *ClientMonitor {
	return &ClientMonitor{
		window:          DefaultMonitorWindow,
		maxRequests:     DefaultMaxRequests,
		failedAuthAlert: DefaultFailedAuthAlert,
		failedAuth:      make(map[string]int),
		requests:        make(map[string]int),
		windowStart:     time.Now(),
		now:             time.Now,
	}
}

// RecordFailedAuth counts a failed authentication and alerts past the threshold
func (m *ClientMonitor) RecordFailedAuth(ip string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.rollWindow()
	m.failedAuth[ip]++

	if m.failedAuth[ip] >= m.failedAuthAlert {
		slog.Warn(SecurityAlertFailedAuth, "ip", ip, "count", m.failedAuth[ip])
	}
}

// Allow counts a request and reports whether ip is still under the rate limit
func (m *ClientMonitor) Allow(ip string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.rollWindow()
	m.requests[ip]++

	if m.requests[ip] > m.maxRequests {
		// One alert per hundred blocked requests
		if m.requests[ip]%100 == 0 {
			slog.Warn(SecurityAlertHighRate, "ip", ip, "count", m.requests[ip])
		}
		return false
	}
	return true
}

// rollWindow clears the counters once the window has passed. Caller holds mu.
func (m *ClientMonitor) rollWindow() {
	if m.now().Sub(m.windowStart) > m.window {
		m.requests = make(map[string]int)
		m.failedAuth = make(map[string]int)
		m.windowStart = m.now()
	}
}

// RateLimitMiddleware rejects clients above the monitor's request limit
func RateLimitMiddleware(trustedProxies []string, monitor *ClientMonitor) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !monitor.Allow(extractIP(r, trustedProxies)) {
				http.Error(w, ErrMsgTooManyRequests, http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// extractIP returns the client IP, trusting X-Forwarded-For only from a trusted proxy
func extractIP(r *http.Request, trustedProxies []string) string {
	remoteIP, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		remoteIP = r.RemoteAddr
	}

	for _, proxy := range trustedProxies {
		if proxy != remoteIP {
			continue
		}
		if forwarded := r.Header.Get(HeaderForwardedFor); forwarded != "" {
			// Rightmost entry is the hop that reached the trusted proxy
			ips := strings.Split(forwarded, ",")
			return strings.TrimSpace(ips[len(ips)-1])
		}
		break
	}

	return remoteIP
}

// SecurityHeadersMiddleware adds security headers to responses
func SecurityHeadersMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set(HeaderContentType, HeaderValueNoSniff)
			w.Header().Set(HeaderFrameOptions, HeaderValueDeny)
			w.Header().Set(HeaderReferrerPolicy, HeaderValueReferrerStrictOrigin)
			next.ServeHTTP(w, r)
		})
	}
}
