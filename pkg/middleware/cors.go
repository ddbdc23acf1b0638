package middleware

import (
	"net/http"
	"slices"
	"strconv"
	"strings"
)

// CORSConfig holds configuration for the CORS middleware.
type CORSConfig struct {
	// AllowedOrigins lists exact origins such as "https://console.example.com".
	// "*" admits any origin.
	AllowedOrigins []string

	// AllowedMethods defaults to the methods the console routes.
	AllowedMethods []string

	// AllowedHeaders defaults to Accept, Content-Type and X-Correlation-ID.
	AllowedHeaders []string

	// ExposedHeaders lists response headers readable by the browser.
	// Content-Disposition must be exposed for export downloads to keep their name.
	ExposedHeaders []string

	// MaxAge is the preflight cache lifetime in seconds. Defaults to 3600.
	MaxAge int

	AllowCredentials bool

	// Environment "development" admits any origin regardless of AllowedOrigins.
	Environment string
}

var (
	defaultAllowedMethods = []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions}
	defaultAllowedHeaders = []string{"Accept", "Content-Type", CorrelationIDHeader}
)

// DefaultCORSConfig returns an open configuration for local development.
func DefaultCORSConfig() CORSConfig {
	return CORSConfig{
		AllowedOrigins: []string{"*"},
		AllowedMethods: defaultAllowedMethods,
		AllowedHeaders: defaultAllowedHeaders,
		ExposedHeaders: []string{CorrelationIDHeader, "Content-Disposition"},
		MaxAge:         3600,
		Environment:    "development",
	}
}

// NewCORSConfig returns the default configuration restricted to origins for
// the given environment. An empty origin list keeps the wildcard.
func NewCORSConfig(environment string, origins []string) CORSConfig {
	cfg := DefaultCORSConfig()
	cfg.Environment = environment
	if len(origins) > 0 {
		cfg.AllowedOrigins = origins
	}
	return cfg
}

// CORS returns middleware that sets the CORS response headers and answers
// preflight requests with 204 without reaching the router.
func CORS(cfg CORSConfig) func(http.Handler) http.Handler {
	if len(cfg.AllowedMethods) == 0 {
		cfg.AllowedMethods = defaultAllowedMethods
	}
	if len(cfg.AllowedHeaders) == 0 {
		cfg.AllowedHeaders = defaultAllowedHeaders
	}
	if cfg.MaxAge == 0 {
		cfg.MaxAge = 3600
	}

	wildcard := cfg.Environment == "development" || slices.Contains(cfg.AllowedOrigins, "*")
	methods := strings.Join(cfg.AllowedMethods, ", ")
	headers := strings.Join(cfg.AllowedHeaders, ", ")
	exposed := strings.Join(cfg.ExposedHeaders, ", ")
	maxAge := strconv.Itoa(cfg.MaxAge)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			origin := r.Header.Get("Origin")

			switch {
			case wildcard:
				h.Set("Access-Control-Allow-Origin", "*")
			case origin != "" && slices.Contains(cfg.AllowedOrigins, origin):
				h.Set("Access-Control-Allow-Origin", origin)
				h.Add("Vary", "Origin")
			}

			h.Set("Access-Control-Allow-Methods", methods)
			h.Set("Access-Control-Allow-Headers", headers)
			if exposed != "" {
				h.Set("Access-Control-Expose-Headers", exposed)
			}
			h.Set("Access-Control-Max-Age", maxAge)
			if cfg.AllowCredentials {
				h.Set("Access-Control-Allow-Credentials", "true")
			}

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
