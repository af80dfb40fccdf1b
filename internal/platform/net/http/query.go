package http

import (
	"net/http"

	"hranalytics/internal/platform/logger"
	"hranalytics/internal/platform/net/http/bind"
)

// QueryHandler binds the query string into T and calls fn
// rejected params are logged and fn still runs with what was decoded
func QueryHandler[T any](fn func(*http.Request, T) (any, error)) Handler {
	return Handle(func(r *http.Request) Response {
		in, err := bind.ParseQuery[T](r)
		if err != nil {
			logger.C(r.Context()).Warn().Err(err).Str("query", r.URL.RawQuery).Msg("query params rejected")
		}
		out, err := fn(r, in)
		if err != nil {
			return Error(err)
		}
		return OK(out)
	})
}

// NoInputHandler calls fn and wraps its result
func NoInputHandler(fn func(*http.Request) (any, error)) Handler {
	return Handle(func(r *http.Request) Response {
		out, err := fn(r)
		if err != nil {
			return Error(err)
		}
		return OK(out)
	})
}
