package fileutil_test

// Notes:
// - the write and close failures of WriteTempFile are not covered; they need
//   a failing disk

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/afero"

	"github.com/alnah/go-slidedeck/internal/fileutil"
)

// ---------------------------------------------------------------------------
// TestWriteTempFile - Scratch HTML for the browser
// ---------------------------------------------------------------------------

func TestWriteTempFile(t *testing.T) {
	t.Parallel()

	const page = "<html><body><section class=\"slide\"></section></body></html>"
	path, cleanup, err := fileutil.WriteTempFile(page, "html")
	if err != nil {
		t.Fatalf("WriteTempFile() error = %v", err)
	}

	if !strings.HasPrefix(filepath.Base(path), "slidedeck-") || filepath.Ext(path) != ".html" {
		t.Errorf("path = %q, want slidedeck-*.html", path)
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(got) != page {
		t.Errorf("content = %q, want %q", got, page)
	}

	cleanup()
	if fileutil.FileExists(path) {
		t.Error("file still exists after cleanup")
	}
}

func TestWriteTempFile_InvalidExtension(t *testing.T) {
	t.Parallel()

	tests := []struct {
		ext     string
		wantErr error
	}{
		{"", fileutil.ErrExtensionEmpty},
		{"../html", fileutil.ErrExtensionPathTraversal},
		{`a\b`, fileutil.ErrExtensionPathTraversal},
		{"ht\x00ml", fileutil.ErrExtensionPathTraversal},
	}

	for _, tt := range tests {
		t.Run(tt.ext, func(t *testing.T) {
			t.Parallel()
			path, cleanup, err := fileutil.WriteTempFile("x", tt.ext)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("WriteTempFile(%q) error = %v, want %v", tt.ext, err, tt.wantErr)
			}
			if path != "" || cleanup != nil {
				t.Errorf("WriteTempFile(%q) = %q, cleanup set: %v", tt.ext, path, cleanup != nil)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestFileExists - Regular files only
// ---------------------------------------------------------------------------

func TestFileExists(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	file := filepath.Join(dir, "talk.yaml")
	if err := os.WriteFile(file, []byte("title: x\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	tests := []struct {
		name string
		path string
		want bool
	}{
		{"regular file", file, true},
		{"directory", dir, false},
		{"missing", filepath.Join(dir, "missing.yaml"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := fileutil.FileExists(tt.path); got != tt.want {
				t.Errorf("FileExists(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestIsFilePath - Config names versus paths
// ---------------------------------------------------------------------------

func TestIsFilePath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  bool
	}{
		{"slidedeck", false},
		{"scipy2023", false},
		{"talk.yaml", false},
		{"./talk.yaml", true},
		{"/etc/slidedeck/talk.toml", true},
		{`C:\talks\talk.yaml`, true},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			if got := fileutil.IsFilePath(tt.input); got != tt.want {
				t.Errorf("IsFilePath(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestWriteFileAtomic - Atomic writes through afero
// ---------------------------------------------------------------------------

func TestWriteFileAtomic(t *testing.T) {
	t.Parallel()

	t.Run("writes content and leaves no temp file", func(t *testing.T) {
		t.Parallel()

		fs := afero.NewMemMapFs()
		if err := fs.MkdirAll("/out", 0o755); err != nil {
			t.Fatalf("MkdirAll: %v", err)
		}

		if err := fileutil.WriteFileAtomic(fs, "/out/slides.pdf", []byte("%PDF-1.4"), 0o644); err != nil {
			t.Fatalf("WriteFileAtomic() error = %v", err)
		}

		got, err := afero.ReadFile(fs, "/out/slides.pdf")
		if err != nil {
			t.Fatalf("ReadFile: %v", err)
		}
		if string(got) != "%PDF-1.4" {
			t.Errorf("content = %q", got)
		}

		entries, err := afero.ReadDir(fs, "/out")
		if err != nil {
			t.Fatalf("ReadDir: %v", err)
		}
		if len(entries) != 1 {
			t.Errorf("directory has %d entries, want 1", len(entries))
		}
	})

	t.Run("overwrites existing file", func(t *testing.T) {
		t.Parallel()

		fs := afero.NewMemMapFs()
		if err := afero.WriteFile(fs, "/slides.pdf", []byte("old"), 0o644); err != nil {
			t.Fatalf("WriteFile: %v", err)
		}
		if err := fileutil.WriteFileAtomic(fs, "/slides.pdf", []byte("new"), 0o644); err != nil {
			t.Fatalf("WriteFileAtomic() error = %v", err)
		}
		got, _ := afero.ReadFile(fs, "/slides.pdf")
		if string(got) != "new" {
			t.Errorf("content = %q, want new", got)
		}
	})

	t.Run("read-only filesystem fails", func(t *testing.T) {
		t.Parallel()

		fs := afero.NewReadOnlyFs(afero.NewMemMapFs())
		if err := fileutil.WriteFileAtomic(fs, "/slides.pdf", []byte("x"), 0o644); err == nil {
			t.Error("expected error on read-only filesystem")
		}
	})
}

// ---------------------------------------------------------------------------
// TestCopyFile - Byte-identical copies
// ---------------------------------------------------------------------------

func TestCopyFile(t *testing.T) {
	t.Parallel()

	t.Run("copies bytes exactly", func(t *testing.T) {
		t.Parallel()

		fs := afero.NewMemMapFs()
		want := []byte("%PDF-1.4\n\x00\xff binary\n%%EOF\n")
		if err := afero.WriteFile(fs, "/slides.pdf", want, 0o644); err != nil {
			t.Fatalf("WriteFile: %v", err)
		}

		if err := fileutil.CopyFile(fs, "/slides.pdf", "/final.pdf"); err != nil {
			t.Fatalf("CopyFile() error = %v", err)
		}

		got, err := afero.ReadFile(fs, "/final.pdf")
		if err != nil {
			t.Fatalf("ReadFile: %v", err)
		}
		if string(got) != string(want) {
			t.Errorf("copy differs: got %q, want %q", got, want)
		}
	})

	t.Run("missing source fails", func(t *testing.T) {
		t.Parallel()

		fs := afero.NewMemMapFs()
		err := fileutil.CopyFile(fs, "/missing.pdf", "/final.pdf")
		if !errors.Is(err, os.ErrNotExist) {
			t.Errorf("CopyFile() error = %v, want os.ErrNotExist", err)
		}
	})
}
