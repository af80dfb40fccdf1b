package httpkit

import (
	"net/http"

	phttp "hranalytics/internal/platform/net/http"
)

// Get registers a handler that takes no input
func Get(r Router, path string, h func(*http.Request) (any, error)) {
	phttp.GetJSON(r, path, h)
}

// GetQuery registers a handler whose input is bound from the query string
func GetQuery[T any](r Router, path string, h func(*http.Request, T) (any, error)) {
	phttp.GetQuery(r, path, h)
}

// Preflight answers OPTIONS on path with 204
// CORS headers come from the surrounding middleware
func Preflight(r Router, path string) {
	r.Options(path, Handle(func(*http.Request) Response { return NoContent() }))
}
