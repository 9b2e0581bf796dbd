package mw

import (
	"net/http"
	"strings"

	"github.com/MrSnakeDoc/vitae/internal/logger"
	"github.com/MrSnakeDoc/vitae/internal/utils"
)

const forbiddenBody = `{"success":false,"error":"Forbidden"}` + "\n"

func passthrough(next http.Handler) http.Handler { return next }

func deny(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusForbidden)
	_, _ = w.Write([]byte(forbiddenBody))
}

// EnforceHost rejects requests whose Host header matches none of the
// allowed patterns ("cv.example.com", "*.example.com", "localhost:5000").
// An empty list disables the check.
func EnforceHost(allowedHosts []string, log logger.Logger) func(http.Handler) http.Handler {
	if len(allowedHosts) == 0 {
		return passthrough
	}
	log = log.With(logger.String("guard", "host"))
	log.Debug("host guard enabled", logger.Int("patterns", len(allowedHosts)))

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			for _, pattern := range allowedHosts {
				if matchHost(r.Host, pattern) {
					next.ServeHTTP(w, r)
					return
				}
			}
			log.Warn("host rejected", logger.String("host", r.Host), logger.String("path", r.URL.Path))
			deny(w)
		})
	}
}

// matchHost compares case-insensitively. A pattern without a port
// matches the host on any port.
func matchHost(host, pattern string) bool {
	host = strings.ToLower(host)
	pattern = strings.ToLower(pattern)
	if !strings.Contains(pattern, ":") {
		host = utils.ParseHostNoPort(host)
	}

	if suffix, ok := strings.CutPrefix(pattern, "*"); ok && strings.HasPrefix(suffix, ".") {
		return strings.HasSuffix(host, suffix)
	}
	return host == pattern
}

// AllowClients restricts a route group to client addresses inside the
// given IPs or CIDRs. An empty or unparsable list disables the check.
// trustProxy resolves the client from proxy headers (cloudflared, nginx).
func AllowClients(allowed []string, trustProxy bool, log logger.Logger) func(http.Handler) http.Handler {
	m := utils.NewIPMatcher(allowed)
	if m.IsEmpty() {
		return passthrough
	}
	log = log.With(logger.String("guard", "client_ip"))
	log.Debug("client guard enabled",
		logger.Int("rules", len(allowed)),
		logger.Bool("trust_proxy", trustProxy))

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := utils.ClientIP(r, trustProxy)
			if !m.Allow(ip) {
				log.Warn("client rejected",
					logger.String("client_ip", ip),
					logger.String("remote_addr", r.RemoteAddr),
					logger.String("path", r.URL.Path))
				deny(w)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
