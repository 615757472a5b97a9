package handler

import (
	"context"
	"io"
	"net/http"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

type renderFunc func(w io.Writer) error

func respondHTML(ctx context.Context, rw http.ResponseWriter, status int, render renderFunc) error {
	_, span := otel.GetTracerProvider().Tracer("").Start(ctx, "handler.respond")
	span.SetAttributes(attribute.Int("http.status", status))
	defer span.End()

	rw.Header().Set("Content-Type", "text/html; charset=utf-8")
	rw.WriteHeader(status)
	return render(rw)
}

func respondText(ctx context.Context, rw http.ResponseWriter, status int, msg string) {
	_, span := otel.GetTracerProvider().Tracer("").Start(ctx, "handler.respond")
	span.SetAttributes(attribute.Int("http.status", status))
	defer span.End()

	rw.Header().Set("Content-Type", "text/plain; charset=utf-8")
	rw.WriteHeader(status)
	rw.Write([]byte(msg))
}

// firstValue returns the first non-empty form value among the given keys.
// The signup form posts "name"; API clients send "ownerName".
func firstValue(r *http.Request, keys ...string) string {
	for _, k := range keys {
		if v := r.FormValue(k); v != "" {
			return v
		}
	}
	return ""
}
