// Package http provides the router seam, server, and JSON response helpers
package http

import (
	"encoding/json"
	stdhttp "net/http"

	perr "hranalytics/internal/platform/errors"
	"hranalytics/internal/platform/logger"
	lumnet "hranalytics/internal/platform/net"
)

// JSON writes v as application/json with the given status
func JSON(w stdhttp.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// RespondOK writes body unwrapped with 200
func RespondOK(w stdhttp.ResponseWriter, _ *stdhttp.Request, body any) {
	JSON(w, stdhttp.StatusOK, body)
}

// RespondNoContent writes a bare 204
func RespondNoContent(w stdhttp.ResponseWriter, _ *stdhttp.Request) {
	w.WriteHeader(stdhttp.StatusNoContent)
}

// RespondError writes the error wire body with the mapped status
// the wrapped cause is logged here and never serialized
func RespondError(w stdhttp.ResponseWriter, r *stdhttp.Request, err error) {
	status, wire := perr.HTTP(err)
	wire.RequestID = lumnet.RequestID(r.Context())

	log := logger.C(r.Context())
	ev := log.Warn()
	if status >= stdhttp.StatusInternalServerError {
		ev = log.Error()
	}
	ev.Err(err).Int("status", status).Str("code", wire.Code).Str("path", r.URL.Path).Msg("request failed")

	JSON(w, status, wire)
}

// Response is the return value of return-style handlers
// a Body that is an error is written with RespondError
type Response struct {
	Status int
	Body   any
	Header stdhttp.Header
}

// Handle adapts a Response returning handler to a platform Handler
func Handle(h func(r *stdhttp.Request) Response) Handler {
	return func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		h(r).write(w, r)
	}
}

func (resp Response) write(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	for k, vv := range resp.Header {
		for _, v := range vv {
			w.Header().Add(k, v)
		}
	}
	if err, ok := resp.Body.(error); ok && err != nil {
		RespondError(w, r, err)
		return
	}
	status := resp.Status
	if status == 0 {
		status = stdhttp.StatusOK
	}
	if status == stdhttp.StatusNoContent {
		w.WriteHeader(status)
		return
	}
	JSON(w, status, resp.Body)
}

// OK returns a 200 response with body written flat
func OK(body any) Response { return Response{Status: stdhttp.StatusOK, Body: body} }

// NoContent returns a 204 response
func NoContent() Response { return Response{Status: stdhttp.StatusNoContent} }

// Error returns a response whose status comes from err
func Error(err error) Response { return Response{Body: err} }
