package httpkit

import (
	"net/http"
	"net/http/httptest"
	"testing"

	perr "hranalytics/internal/platform/errors"
	phttp "hranalytics/internal/platform/net/http"
	kit "hranalytics/internal/platform/testkit"

	"github.com/go-chi/chi/v5"
)

type rangeIn struct {
	Range string `query:"range" validate:"omitempty,oneof=7d 30d"`
}

func newRouter() (*chi.Mux, Router) {
	mux := chi.NewMux()
	return mux, phttp.AdaptChi(mux)
}

func serve(h http.Handler, method, target string) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(method, target, nil))
	return rr
}

func TestMountAPIV1_GetQueryAndPreflight(t *testing.T) {
	t.Parallel()

	mux, r := newRouter()
	MountAPIV1(r, []func(http.Handler) http.Handler{ReportCORS()}, func(api Router) {
		GetQuery(api, "/echo", func(_ *http.Request, in rangeIn) (any, error) {
			return map[string]string{"range": in.Range}, nil
		})
		Preflight(api, "/echo")
	})

	rr := serve(mux, http.MethodGet, "/api/v1/echo?range=30d")
	kit.MustStatus(t, rr, http.StatusOK)
	kit.MustHeaders(t, rr, map[string]string{
		"Access-Control-Allow-Origin":  "*",
		"Access-Control-Allow-Methods": "OPTIONS,GET",
		"Access-Control-Allow-Headers": "Content-Type,Authorization",
	})
	var body map[string]string
	kit.DecodeJSON(t, rr, &body)
	if body["range"] != "30d" {
		t.Fatalf("body = %v", body)
	}

	rr = serve(mux, http.MethodOptions, "/api/v1/echo")
	kit.MustStatus(t, rr, http.StatusNoContent)
	if rr.Body.Len() != 0 {
		t.Fatalf("preflight should have no body")
	}
}

func TestGet_ErrorMapsToWire(t *testing.T) {
	t.Parallel()

	mux, r := newRouter()
	Get(r, "/down", func(*http.Request) (any, error) {
		return nil, perr.Unavailablef("failed to load analytics records")
	})

	rr := serve(mux, http.MethodGet, "/down")
	kit.MustStatus(t, rr, http.StatusServiceUnavailable)
	var w perr.Wire
	kit.DecodeJSON(t, rr, &w)
	if w.Code != "unavailable" || w.Error != "failed to load analytics records" {
		t.Fatalf("wire = %+v", w)
	}
}

func TestJSONFallbacks(t *testing.T) {
	t.Parallel()

	mux, r := newRouter()
	JSONFallbacks(r)
	Get(r, "/only-get", func(*http.Request) (any, error) { return "ok", nil })

	rr := serve(mux, http.MethodGet, "/missing")
	kit.MustStatus(t, rr, http.StatusNotFound)
	var w perr.Wire
	kit.DecodeJSON(t, rr, &w)
	if w.Code != "not_found" {
		t.Fatalf("wire = %+v", w)
	}

	rr = serve(mux, http.MethodPost, "/only-get")
	kit.MustStatus(t, rr, http.StatusMethodNotAllowed)
	kit.DecodeJSON(t, rr, &w)
	if w.Code != "method_not_allowed" {
		t.Fatalf("wire = %+v", w)
	}
}

func TestCommonStack_RecoversAndStampsRequestID(t *testing.T) {
	t.Parallel()

	mux, r := newRouter()
	r.Use(CommonStack(StackOptions{})...)
	r.Get("/boom", func(http.ResponseWriter, *http.Request) { panic("boom") })

	rr := serve(mux, http.MethodGet, "/boom")
	kit.MustStatus(t, rr, http.StatusInternalServerError)
	var w perr.Wire
	kit.DecodeJSON(t, rr, &w)
	if w.Code != "panic" || w.RequestID == "" {
		t.Fatalf("wire = %+v", w)
	}
}

func TestBrowserCORS(t *testing.T) {
	t.Parallel()

	mux, r := newRouter()
	r.Use(BrowserCORS([]string{"https://hr.example.com"}))
	Get(r, "/healthz", func(*http.Request) (any, error) { return "ok", nil })

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("Origin", "https://hr.example.com")
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)
	kit.MustHeaders(t, rr, map[string]string{"Access-Control-Allow-Origin": "https://hr.example.com"})
}
