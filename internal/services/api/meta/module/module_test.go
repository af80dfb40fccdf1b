package module

import (
	"net/http"
	"net/http/httptest"
	"testing"

	modkit "hranalytics/internal/modkit"
	"hranalytics/internal/platform/config"
	pmetrics "hranalytics/internal/platform/metrics"
	phttp "hranalytics/internal/platform/net/http"
	kit "hranalytics/internal/platform/testkit"

	"github.com/go-chi/chi/v5"
)

func TestMeta_MountsUnderPrefix(t *testing.T) {
	rec := pmetrics.New()
	rec.Report("usage", nil)

	m := New(modkit.Deps{Cfg: config.New().Prefix("META_TEST_"), Metrics: rec})
	if m.Name() != "meta" || m.Ports() != nil {
		t.Fatalf("module = %s %v", m.Name(), m.Ports())
	}

	mux := chi.NewMux()
	m.MountRoutes(phttp.AdaptChi(mux))

	for _, p := range []string{"/meta/health", "/meta/ready", "/meta/version", "/meta/service"} {
		rr := httptest.NewRecorder()
		mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, p, nil))
		kit.MustStatus(t, rr, http.StatusOK)
	}

	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/meta/metrics", nil))
	kit.MustStatus(t, rr, http.StatusOK)
	kit.MustContain(t, rr.Body.String(), `hra_reports_total{outcome="ok",report="usage"} 1`)

}
