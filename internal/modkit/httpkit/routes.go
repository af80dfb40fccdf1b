package httpkit

import (
	"net/http"

	perr "hranalytics/internal/platform/errors"
)

// MountUnder mounts a subrouter at prefix and applies per-module middlewares
func MountUnder(r Router, prefix string, mw []func(http.Handler) http.Handler, mount func(Router)) {
	r.Route(prefix, func(sub Router) {
		if len(mw) > 0 {
			sub.Use(mw...)
		}
		mount(sub)
	})
}

// JSONFallbacks replaces plain text 404 and 405 responses with the error wire body
func JSONFallbacks(r Router) {
	r.NotFound(Handle(func(req *http.Request) Response {
		return Error(perr.NotFoundf("no route for %s", req.URL.Path))
	}))
	r.MethodNotAllowed(Handle(func(req *http.Request) Response {
		return Error(perr.Newf(perr.ErrorCodeMethodNotAllowed, "method %s not allowed", req.Method))
	}))
}
