// Package middleware adapts chi and go-chi/cors middleware and hosts in house ones
package middleware

import (
	"compress/flate"
	"net/http"
	"strings"
	"time"

	pstrings "hranalytics/internal/platform/strings"

	chimw "github.com/go-chi/chi/v5/middleware"
	chicors "github.com/go-chi/cors"
)

// Middleware is the stdlib middleware shape
type Middleware = func(http.Handler) http.Handler

// RequestID attaches or propagates X-Request-ID and stores it on context
func RequestID() Middleware { return chimw.RequestID }

// RealIP sets RemoteAddr from X-Forwarded-For and X-Real-IP
func RealIP() Middleware { return chimw.RealIP }

// Timeout cancels the request context after d
func Timeout(d time.Duration) Middleware { return chimw.Timeout(d) }

// NoCache disables client and proxy caching, reports are computed per request
func NoCache() Middleware { return chimw.NoCache }

// Compress gzips responses at level
func Compress(level int) Middleware {
	c := chimw.NewCompressor(level)
	return c.Handler
}

// StripSlashes drops a trailing slash from the path
func StripSlashes() Middleware { return chimw.StripSlashes }

// Heartbeat answers GET path with 200 before routing
func Heartbeat(path string) Middleware { return chimw.Heartbeat(path) }

// CORSOptions is a narrow surface over go-chi/cors
type CORSOptions struct {
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
	MaxAge         int
}

// CORS is origin aware CORS for browser facing routes like docs and meta
func CORS(o CORSOptions) Middleware {
	return chicors.Handler(chicors.Options{
		AllowedOrigins: pstrings.IfEmpty(o.AllowedOrigins, []string{"*"}),
		AllowedMethods: pstrings.IfEmpty(o.AllowedMethods, []string{http.MethodGet, http.MethodOptions}),
		AllowedHeaders: pstrings.IfEmpty(o.AllowedHeaders, []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"}),
		MaxAge:         o.MaxAge,
	})
}

// StaticCORS writes a fixed CORS header set on every response and answers OPTIONS with 204
// unlike CORS it does not depend on an Origin header being present
type StaticCORS struct {
	Origin  string
	Methods []string
	Headers []string
}

// ReportCORS is the header set served with analytics reports
var ReportCORS = StaticCORS{
	Origin:  "*",
	Methods: []string{http.MethodOptions, http.MethodGet},
	Headers: []string{"Content-Type", "Authorization"},
}

// Handler returns the middleware
func (s StaticCORS) Handler() Middleware {
	methods := strings.Join(s.Methods, ",")
	headers := strings.Join(s.Headers, ",")
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			h.Set("Access-Control-Allow-Origin", s.Origin)
			h.Set("Access-Control-Allow-Methods", methods)
			h.Set("Access-Control-Allow-Headers", headers)
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// Defaults is the global stack every route gets
// observe runs after the request id is set and outside panic recovery so it sees every response
func Defaults(timeout time.Duration, observe ...Middleware) []Middleware {
	mw := []Middleware{RealIP(), RequestID()}
	mw = append(mw, observe...)
	return append(mw,
		RecoverJSON,
		Timeout(timeout),
		Compress(flate.DefaultCompression),
		NoCache(),
	)
}
