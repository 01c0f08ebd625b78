package main

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aoideee/bookshelf/internal/config"
	"github.com/aoideee/bookshelf/internal/data"
	"github.com/aoideee/bookshelf/internal/metrics"
)

// newTestApplication wires the app with the production defaults against a
// fresh SQLite file. Tests adjust settings through mutate.
func newTestApplication(t *testing.T, mutate ...func(*config.Config)) *applicationDependencies {
	t.Helper()

	cfg := config.New()
	cfg.DBDSN = filepath.Join(t.TempDir(), "books.db")
	for _, fn := range mutate {
		fn(cfg)
	}

	db, err := data.OpenDB(context.Background(), data.Options{Driver: cfg.DBDriver, DSN: cfg.DBDSN})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	return &applicationDependencies{
		config:  cfg,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		models:  data.NewModels(db, cfg.DBDriver),
		metrics: metrics.New(),
	}
}

// do sends one request through h and returns the recorded response.
func do(h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
	return v
}
