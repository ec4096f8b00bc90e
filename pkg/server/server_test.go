package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"pyscan/pkg/analyze"
	"pyscan/pkg/pipeline"
)

func newTestServer(t *testing.T, files map[string]string) *Server {
	t.Helper()
	root := t.TempDir()
	for name, content := range files {
		path := filepath.Join(root, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	s, err := New(Config{Root: root}, pipeline.NewRunner(nil, nil), nil)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func get(t *testing.T, s *Server, url string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, url, nil)
	rec := httptest.NewRecorder()
	s.Routes().ServeHTTP(rec, req)
	return rec
}

func TestHealthz(t *testing.T) {
	s := newTestServer(t, map[string]string{"a.py": "import os\n"})
	rec := get(t, s, "/healthz")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body["status"] != "ok" {
		t.Errorf("status field = %q, want ok", body["status"])
	}
}

func TestFrequenciesEndpoint(t *testing.T) {
	s := newTestServer(t, map[string]string{
		"a.py": "import os\nimport pandas\n",
		"b.py": "import os\n",
	})
	rec := get(t, s, "/api/frequencies")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	var freqs []analyze.Frequency
	if err := json.Unmarshal(rec.Body.Bytes(), &freqs); err != nil {
		t.Fatal(err)
	}
	if len(freqs) != 2 {
		t.Fatalf("got %d frequencies, want 2", len(freqs))
	}
	if freqs[0].Name != "os" || freqs[0].Count != 2 {
		t.Errorf("top frequency = %+v, want os/2", freqs[0])
	}
}

func TestFrequenciesTopLimit(t *testing.T) {
	s := newTestServer(t, map[string]string{
		"a.py": "import os\nimport sys\nimport json\n",
	})
	rec := get(t, s, "/api/frequencies?top=1")
	var freqs []analyze.Frequency
	if err := json.Unmarshal(rec.Body.Bytes(), &freqs); err != nil {
		t.Fatal(err)
	}
	if len(freqs) != 1 {
		t.Errorf("got %d frequencies, want 1", len(freqs))
	}
}

func TestImportlessTree(t *testing.T) {
	s := newTestServer(t, map[string]string{"a.py": "x = 1\n"})

	rec := get(t, s, "/api/frequencies")
	if rec.Code != http.StatusOK {
		t.Fatalf("frequencies status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	var freqs []analyze.Frequency
	if err := json.Unmarshal(rec.Body.Bytes(), &freqs); err != nil {
		t.Fatal(err)
	}
	if len(freqs) != 0 {
		t.Errorf("got %d frequencies, want 0", len(freqs))
	}

	rec = get(t, s, "/api/table")
	if rec.Code != http.StatusOK {
		t.Fatalf("table status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"records": []`) {
		t.Errorf("table body should have empty records: %s", rec.Body.String())
	}
}

func TestTableEndpoint(t *testing.T) {
	s := newTestServer(t, map[string]string{"a.py": "import numpy as np\n"})
	rec := get(t, s, "/api/table")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "numpy") || !strings.Contains(body, `"alias": "np"`) {
		t.Errorf("table body missing expected fields: %s", body)
	}
}

func TestPlotEndpoint(t *testing.T) {
	s := newTestServer(t, map[string]string{"a.py": "import requests\n"})
	rec := get(t, s, "/plot/cloud.svg")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "image/svg+xml" {
		t.Errorf("Content-Type = %q, want image/svg+xml", ct)
	}
	if !strings.Contains(rec.Body.String(), "requests") {
		t.Error("svg missing package name")
	}
}

func TestPlotUnknownKind(t *testing.T) {
	s := newTestServer(t, map[string]string{"a.py": "import os\n"})
	rec := get(t, s, "/plot/pie.svg")
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestPlotBadColormap(t *testing.T) {
	s := newTestServer(t, map[string]string{"a.py": "import os\n"})
	rec := get(t, s, "/plot/cloud.svg?colormap=sunset")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400: %s", rec.Code, rec.Body.String())
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body["code"] != "INVALID_COLORMAP" {
		t.Errorf("error code = %q, want INVALID_COLORMAP", body["code"])
	}
}

func TestMemoization(t *testing.T) {
	s := newTestServer(t, map[string]string{"a.py": "import os\n"})

	first := get(t, s, "/api/frequencies")
	if s.memo.Len() != 1 {
		t.Fatalf("memo has %d entries after first request, want 1", s.memo.Len())
	}
	second := get(t, s, "/api/frequencies")
	if first.Body.String() != second.Body.String() {
		t.Error("memoized response differs")
	}

	s.invalidate()
	if s.memo.Len() != 0 {
		t.Errorf("memo has %d entries after invalidate, want 0", s.memo.Len())
	}

	third := get(t, s, "/api/frequencies")
	if third.Code != http.StatusOK {
		t.Errorf("status after invalidate = %d, want 200", third.Code)
	}
}

func TestRelevantPaths(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"pkg/app.py", true},
		{"analysis.ipynb", true},
		{"pyproject.toml", true},
		{"README.md", false},
		{"data.csv", false},
	}
	for _, tt := range tests {
		if got := relevant(tt.path); got != tt.want {
			t.Errorf("relevant(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}
