package testutil

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

// AnalysisServer starts a test double of the Kreyòl Lingua service. It
// answers health checks on GET / and serves analyzeBody, a JSON analysis
// document, for every POST /analyze. The server is shut down when the
// test finishes.
func AnalysisServer(t *testing.T, analyzeBody string) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/analyze", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(analyzeBody))
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"message": "Kreyòl Lingua API is Live", "engine": "Kreyòl Lingua v1.2"}`))
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}
