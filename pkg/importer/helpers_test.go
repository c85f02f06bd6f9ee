package importer

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func TestDownloadFile(t *testing.T) {
	content := "hello world"
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(content))
	}))
	defer ts.Close()

	dest := filepath.Join(t.TempDir(), "test.txt")
	if err := downloadFile(context.Background(), ts.URL, dest); err != nil {
		t.Fatalf("downloadFile: %v", err)
	}

	data, err := os.ReadFile(dest)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(data) != content {
		t.Errorf("content = %q, want %q", string(data), content)
	}
}

func TestDownloadFile_Retry(t *testing.T) {
	attempts := 0
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte("ok"))
	}))
	defer ts.Close()

	dest := filepath.Join(t.TempDir(), "retry.txt")
	if err := downloadFile(context.Background(), ts.URL, dest); err != nil {
		t.Fatalf("downloadFile with retries: %v", err)
	}
	if attempts != 3 {
		t.Errorf("attempts = %d, want 3", attempts)
	}
}

func TestDownloadFile_AllFail(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer ts.Close()

	dest := filepath.Join(t.TempDir(), "fail.txt")
	if err := downloadFile(context.Background(), ts.URL, dest); err == nil {
		t.Error("expected error after all retries exhausted")
	}
}

func TestOpenCSV_Transcoding(t *testing.T) {
	// "José" in Windows-1252: é is 0xE9.
	raw := []byte("name,age\nJos\xe9,42\n")
	path := filepath.Join(t.TempDir(), "latin.csv")
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		t.Fatal(err)
	}

	r, closer, err := openCSV(path, "windows-1252", ',')
	if err != nil {
		t.Fatalf("openCSV: %v", err)
	}
	defer closer.Close()

	if _, err := r.Read(); err != nil {
		t.Fatalf("read header: %v", err)
	}
	row, err := r.Read()
	if err != nil {
		t.Fatalf("read row: %v", err)
	}
	if row[0] != "José" {
		t.Errorf("transcoded cell = %q, want José", row[0])
	}
}

func TestOpenCSV_UTF8Passthrough(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plain.csv")
	if err := os.WriteFile(path, []byte("a;b\n1;2\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	r, closer, err := openCSV(path, "utf-8", ';')
	if err != nil {
		t.Fatalf("openCSV: %v", err)
	}
	defer closer.Close()

	rows, err := r.ReadAll()
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if len(rows) != 2 || rows[1][1] != "2" {
		t.Errorf("rows = %v", rows)
	}
}

func TestOpenCSV_UnknownEncoding(t *testing.T) {
	path := filepath.Join(t.TempDir(), "x.csv")
	if err := os.WriteFile(path, []byte("a\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, _, err := openCSV(path, "no-such-encoding", ','); err == nil {
		t.Error("expected error for unknown encoding")
	}
}
