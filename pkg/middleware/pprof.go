package middleware

import (
	"log/slog"
	"net"
	"net/http"
	"net/http/pprof"
	"net/netip"
	"strings"

	"github.com/go-chi/chi/v5"

	apperrors "github.com/diqie123/sistem-entri-data-inventaris/pkg/errors"
	"github.com/diqie123/sistem-entri-data-inventaris/pkg/httputil"
)

// RegisterPprof mounts the runtime profiling endpoints under /debug/pprof,
// reachable only from clients inside allowedCIDRs.
func RegisterPprof(r chi.Router, allowedCIDRs []string, logger *slog.Logger) {
	r.Route("/debug/pprof", func(r chi.Router) {
		r.Use(IPAllowlist(allowedCIDRs, logger))
		r.HandleFunc("/cmdline", pprof.Cmdline)
		r.HandleFunc("/profile", pprof.Profile)
		r.HandleFunc("/symbol", pprof.Symbol)
		r.HandleFunc("/trace", pprof.Trace)
		// Index also serves the named profiles (heap, goroutine, ...).
		r.HandleFunc("/*", pprof.Index)
	})
}

// parsePrefixes parses CIDR entries, logging and skipping malformed ones.
func parsePrefixes(cidrs []string, logger *slog.Logger) []netip.Prefix {
	prefixes := make([]netip.Prefix, 0, len(cidrs))
	for _, raw := range cidrs {
		cidr := strings.TrimSpace(raw)
		if cidr == "" {
			continue
		}
		p, err := netip.ParsePrefix(cidr)
		if err != nil {
			logger.Warn("invalid allowlist CIDR, skipping",
				slog.String("cidr", cidr),
				slog.String("error", err.Error()),
			)
			continue
		}
		prefixes = append(prefixes, p.Masked())
	}
	return prefixes
}

// remoteAddr extracts the client address from r.RemoteAddr, with or without
// a port. IPv4-mapped IPv6 addresses are unmapped.
func remoteAddr(r *http.Request) (netip.Addr, bool) {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	addr, err := netip.ParseAddr(host)
	if err != nil {
		return netip.Addr{}, false
	}
	return addr.Unmap(), true
}

// IPAllowlist returns middleware that answers 403 to clients outside cidrs.
// An empty or entirely invalid list denies everyone.
func IPAllowlist(cidrs []string, logger *slog.Logger) func(http.Handler) http.Handler {
	prefixes := parsePrefixes(cidrs, logger)

	allowed := func(addr netip.Addr) bool {
		for _, p := range prefixes {
			if p.Contains(addr) {
				return true
			}
		}
		return false
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			addr, ok := remoteAddr(r)
			if !ok || !allowed(addr) {
				logger.WarnContext(r.Context(), "access denied by IP allowlist",
					slog.String("remote_addr", r.RemoteAddr),
					slog.String("path", r.URL.Path),
				)
				httputil.WriteError(w, r, apperrors.Forbidden("access restricted by IP allowlist"), logger)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
