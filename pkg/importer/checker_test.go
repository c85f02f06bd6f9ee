package importer

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
}

func TestCheckAll_Mixed(t *testing.T) {
	srv200 := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv200.Close()

	srv404 := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv404.Close()

	sdb := tempSourceDB(t)
	adapters := []Adapter{
		&fakeAdapter{"ok-source", "d1", "OK source", srv200.URL, "CC0"},
		&fakeAdapter{"notfound-source", "d2", "404 source", srv404.URL, "CC0"},
	}
	if err := sdb.Seed(adapters); err != nil {
		t.Fatalf("Seed: %v", err)
	}

	checker := NewChecker(sdb, testLogger(), time.Hour)
	checker.CheckAll(context.Background())

	sources, err := sdb.ListSources()
	if err != nil {
		t.Fatalf("ListSources: %v", err)
	}

	statusByID := make(map[string]int)
	for _, src := range sources {
		if src.LastStatus != nil {
			statusByID[src.AdapterID] = *src.LastStatus
		}
	}
	if statusByID["ok-source"] != 200 {
		t.Errorf("ok-source: expected 200, got %d", statusByID["ok-source"])
	}
	if statusByID["notfound-source"] != 404 {
		t.Errorf("notfound-source: expected 404, got %d", statusByID["notfound-source"])
	}
}

func TestCheckAll_NetworkError(t *testing.T) {
	sdb := tempSourceDB(t)
	adapters := []Adapter{
		&fakeAdapter{"dead-source", "d1", "dead", "http://127.0.0.1:1", "CC0"},
	}
	if err := sdb.Seed(adapters); err != nil {
		t.Fatalf("Seed: %v", err)
	}

	checker := NewChecker(sdb, testLogger(), time.Hour)
	checker.CheckAll(context.Background())

	sources, _ := sdb.ListSources()
	src := sources[0]
	if src.LastStatus == nil || *src.LastStatus != 0 {
		t.Errorf("expected status 0 for network error, got %v", src.LastStatus)
	}
	if src.LastError == nil || *src.LastError == "" {
		t.Error("expected non-empty last_error for network error")
	}
}

func TestCheckAll_Redirect(t *testing.T) {
	// 301 is recorded as-is and counted as reachable (2xx/3xx).
	srv301 := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Location", "https://example.com/new")
		w.WriteHeader(http.StatusMovedPermanently)
	}))
	defer srv301.Close()

	sdb := tempSourceDB(t)
	if err := sdb.Seed([]Adapter{
		&fakeAdapter{"redirect-source", "d1", "redirect", srv301.URL, "CC0"},
	}); err != nil {
		t.Fatalf("Seed: %v", err)
	}

	checker := NewChecker(sdb, testLogger(), time.Hour)
	checker.CheckAll(context.Background())

	sources, _ := sdb.ListSources()
	src := sources[0]
	if src.LastStatus == nil || *src.LastStatus != 301 {
		t.Errorf("expected status 301, got %v", src.LastStatus)
	}
}

func TestCheckAll_EmptyDB(t *testing.T) {
	sdb := tempSourceDB(t)
	checker := NewChecker(sdb, testLogger(), time.Hour)
	// Must not panic with nothing seeded.
	checker.CheckAll(context.Background())
}

func TestCheckAll_SurvivesMissingDBDir(t *testing.T) {
	dir := t.TempDir()
	sdb, err := OpenSourceDB(filepath.Join(dir, "sources.db"))
	if err != nil {
		t.Fatalf("OpenSourceDB: %v", err)
	}
	defer sdb.Close()

	checker := NewChecker(sdb, testLogger(), time.Hour)
	checker.CheckAll(context.Background())
}
