package middleware

import (
	"net/http"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/diqie123/sistem-entri-data-inventaris/pkg/logger"
)

// Tracing returns middleware that opens a server span per request. Inbound W3C
// trace context is honoured and echoed on the response. The span is renamed
// to the chi route pattern once routing has finished.
func Tracing(serviceName string) func(http.Handler) http.Handler {
	tracer := otel.Tracer(serviceName + "/http")

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			propagator := otel.GetTextMapPropagator()
			ctx := propagator.Extract(r.Context(), propagation.HeaderCarrier(r.Header))

			attrs := []attribute.KeyValue{
				semconv.HTTPMethod(r.Method),
				semconv.HTTPTarget(r.URL.RequestURI()),
				semconv.HTTPScheme(scheme(r)),
				semconv.UserAgentOriginal(r.UserAgent()),
				attribute.String("http.client_ip", r.RemoteAddr),
			}
			if id := logger.CorrelationIDFromContext(ctx); id != "" {
				attrs = append(attrs, attribute.String("correlation_id", id))
			}

			ctx, span := tracer.Start(ctx, r.Method+" "+r.URL.Path,
				trace.WithSpanKind(trace.SpanKindServer),
				trace.WithAttributes(attrs...),
			)
			defer span.End()

			propagator.Inject(ctx, propagation.HeaderCarrier(w.Header()))

			rec := record(w)
			next.ServeHTTP(rec, r.WithContext(ctx))

			if route := routePattern(r); route != unmatchedRoute {
				span.SetName(r.Method + " " + route)
				span.SetAttributes(attribute.String("http.route", route))
			}
			span.SetAttributes(
				semconv.HTTPStatusCode(rec.status),
				attribute.Int("http.response_size", rec.bytes),
			)
			if rec.status >= http.StatusInternalServerError {
				span.SetStatus(codes.Error, http.StatusText(rec.status))
			}
		})
	}
}

// scheme returns the request scheme, trusting X-Forwarded-Proto behind a proxy.
func scheme(r *http.Request) string {
	if r.TLS != nil {
		return "https"
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		return proto
	}
	return "http"
}
