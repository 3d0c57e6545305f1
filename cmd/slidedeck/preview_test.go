package main

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alnah/go-slidedeck/internal/config"
)

// ---------------------------------------------------------------------------
// TestPreviewServer - Routes
// ---------------------------------------------------------------------------

func TestPreviewServer_Routes(t *testing.T) {
	t.Parallel()

	srv := &previewServer{}
	srv.set("<html>deck</html>", nil)
	ts := httptest.NewServer(srv.routes())
	defer ts.Close()

	tests := []struct {
		path        string
		wantStatus  int
		wantBody    string
		wantContent string
	}{
		{"/", http.StatusOK, "<html>deck</html>", "text/html"},
		{"/healthz", http.StatusOK, `{"status":"ok"}`, "application/json"},
		{"/version", http.StatusOK, "1\n", "text/plain"},
		{"/missing", http.StatusNotFound, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			resp, err := http.Get(ts.URL + tt.path)
			if err != nil {
				t.Fatalf("GET %s: %v", tt.path, err)
			}
			defer resp.Body.Close()
			body, _ := io.ReadAll(resp.Body)

			if resp.StatusCode != tt.wantStatus {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.wantStatus)
			}
			if tt.wantBody != "" && string(body) != tt.wantBody {
				t.Errorf("body = %q, want %q", body, tt.wantBody)
			}
			if !strings.HasPrefix(resp.Header.Get("Content-Type"), tt.wantContent) {
				t.Errorf("Content-Type = %q, want %q", resp.Header.Get("Content-Type"), tt.wantContent)
			}
		})
	}
}

func TestPreviewServer_BuildError(t *testing.T) {
	t.Parallel()

	srv := &previewServer{}
	srv.set("", errBoom)

	rec := httptest.NewRecorder()
	srv.routes().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "building deck: boom") {
		t.Errorf("body = %q", rec.Body)
	}
}

// ---------------------------------------------------------------------------
// TestRenderPreview - HTML Without a Browser
// ---------------------------------------------------------------------------

func TestRenderPreview(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	cfg := config.DefaultConfig()
	cfg.Talk.Checkout = "/src/matplotlib"

	html, err := renderPreview(context.Background(), env.deps, cfg)
	if err != nil {
		t.Fatalf("renderPreview() error = %v", err)
	}
	if html != "<html><title>Slides in Matplotlib</title></html>" {
		t.Errorf("html = %q", html)
	}
	if got := env.builder.deck.Len(); got != 17 {
		t.Errorf("deck has %d slides, want 17", got)
	}
	if !env.builder.closed {
		t.Error("builder should be closed")
	}
}

// ---------------------------------------------------------------------------
// TestWatchFile - Debounced Reload
// ---------------------------------------------------------------------------

func TestWatchFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "slidedeck.yaml")
	if err := os.WriteFile(path, []byte("talk: {}\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changed := make(chan struct{}, 10)
	done := make(chan error, 1)
	go func() {
		done <- watchFile(ctx, path, loggerFromContext(ctx), func() { changed <- struct{}{} })
	}()

	// Give the watcher time to register before writing.
	time.Sleep(100 * time.Millisecond)

	// Unrelated files in the same directory are ignored.
	if err := os.WriteFile(filepath.Join(dir, "other.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 3; i++ {
		if err := os.WriteFile(path, []byte("talk:\n  title: Again\n"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	select {
	case <-changed:
	case <-time.After(5 * time.Second):
		t.Fatal("no reload after writing the config")
	}

	// The burst of writes collapses into one reload.
	select {
	case <-changed:
		t.Error("writes within the reload delay should trigger a single reload")
	case <-time.After(2 * reloadDelay):
	}

	cancel()
	if err := <-done; err != nil {
		t.Errorf("watchFile() error = %v", err)
	}
}
