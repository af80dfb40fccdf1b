package middleware_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	perr "hranalytics/internal/platform/errors"
	"hranalytics/internal/platform/net/middleware"
	kit "hranalytics/internal/platform/testkit"
)

var reportHeaders = map[string]string{
	"Access-Control-Allow-Origin":  "*",
	"Access-Control-Allow-Methods": "OPTIONS,GET",
	"Access-Control-Allow-Headers": "Content-Type,Authorization",
}

func chain(h http.Handler, mws ...middleware.Middleware) http.Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}

func TestReportCORS_EveryResponse(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { _, _ = io.WriteString(w, "ok") })
	fail := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusServiceUnavailable) })

	cases := []struct {
		name   string
		h      http.Handler
		method string
		status int
	}{
		{"success", ok, http.MethodGet, http.StatusOK},
		{"failure", fail, http.MethodGet, http.StatusServiceUnavailable},
		{"preflight", ok, http.MethodOptions, http.StatusNoContent},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			req := httptest.NewRequest(c.method, "/api/v1/analytics/usage", nil)
			middleware.ReportCORS.Handler()(c.h).ServeHTTP(rr, req)
			kit.MustStatus(t, rr, c.status)
			kit.MustHeaders(t, rr, reportHeaders)
		})
	}
}

func TestRecoverJSON_KeepsCORSAndWritesWire(t *testing.T) {
	boom := http.HandlerFunc(func(http.ResponseWriter, *http.Request) { panic("kaboom") })
	h := chain(boom, middleware.RequestID(), middleware.RecoverJSON, middleware.ReportCORS.Handler())

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/x", nil))

	kit.MustStatus(t, rr, http.StatusInternalServerError)
	kit.MustHeaders(t, rr, reportHeaders)
	var w perr.Wire
	kit.DecodeJSON(t, rr, &w)
	if w.Code != "panic" || w.Error != "internal error" || w.RequestID == "" {
		t.Fatalf("wire = %+v", w)
	}
	if rr.Header().Get("X-Request-ID") != w.RequestID {
		t.Fatalf("request id header mismatch")
	}
}

func TestRecoverJSON_AbortHandlerRepanics(t *testing.T) {
	h := middleware.RecoverJSON(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic(http.ErrAbortHandler)
	}))
	kit.MustPanic(t, func() {
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	})
}

func TestAccessLog_PassThrough(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(2 * time.Millisecond)
		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, "made")
	})
	for _, slow := range []time.Duration{0, time.Millisecond} {
		rr := httptest.NewRecorder()
		h := chain(next, middleware.RequestID(), middleware.AccessLogZerolog(middleware.AccessLogOptions{Slow: slow}))
		h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/x", nil))
		kit.MustStatus(t, rr, http.StatusCreated)
		if rr.Body.String() != "made" {
			t.Fatalf("body = %q", rr.Body.String())
		}
	}
}

func TestCORS_OriginAware(t *testing.T) {
	h := middleware.CORS(middleware.CORSOptions{AllowedOrigins: []string{"https://hr.example.com"}})(
		http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { _, _ = io.WriteString(w, "ok") }))

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("Origin", "https://hr.example.com")
	h.ServeHTTP(rr, req)
	kit.MustHeaders(t, rr, map[string]string{"Access-Control-Allow-Origin": "https://hr.example.com"})

	rr = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	h.ServeHTTP(rr, req)
	if rr.Header().Get("Access-Control-Allow-Origin") != "" {
		t.Fatalf("disallowed origin should get no CORS header")
	}
}

func TestDefaults(t *testing.T) {
	h := chain(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { _, _ = io.WriteString(w, "ok") }),
		middleware.Defaults(time.Second)...)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	kit.MustStatus(t, rr, http.StatusOK)
	if rr.Header().Get("Cache-Control") == "" {
		t.Fatalf("NoCache headers missing")
	}
}
