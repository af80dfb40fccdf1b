package testkit

import (
	"net/http/httptest"
	"testing"
)

func TestMustPanicAndNotPanic(t *testing.T) {
	MustPanic(t, func() { panic("boom") })
	MustNotPanic(t, func() {})
}

func TestMustContain(t *testing.T) {
	MustContain(t, "report=usage window=7d", "report=usage")
}

func TestRecorderHelpers(t *testing.T) {
	rr := httptest.NewRecorder()
	rr.Header().Set("Access-Control-Allow-Origin", "*")
	rr.WriteHeader(200)
	_, _ = rr.WriteString(`{"total_queries":3}`)

	MustStatus(t, rr, 200)
	MustHeaders(t, rr, map[string]string{"Access-Control-Allow-Origin": "*"})

	var body struct {
		TotalQueries int `json:"total_queries"`
	}
	DecodeJSON(t, rr, &body)
	if body.TotalQueries != 3 {
		t.Fatalf("total_queries = %d", body.TotalQueries)
	}
}
