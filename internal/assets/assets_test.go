package assets

// Notes:
// - directory sources are exercised on afero.MemMapFs; BasePathFs wraps it
//   the same way it wraps the OS file system

import (
	"errors"
	"strings"
	"testing"

	"github.com/spf13/afero"
)

func memAssets(t *testing.T, files map[string]string) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	if err := fs.MkdirAll("/talk", 0o755); err != nil {
		t.Fatal(err)
	}
	for name, content := range files {
		if err := afero.WriteFile(fs, "/talk/"+name, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return fs
}

// ---------------------------------------------------------------------------
// TestValidateAssetName - Name Rules
// ---------------------------------------------------------------------------

func TestValidateAssetName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		wantErr bool
	}{
		{"deck", false},
		{"dark-deck", false},
		{"deck_2024", false},
		{"", true},
		{"-deck", true},
		{"deck.css", true},
		{"../deck", true},
		{"a/b", true},
		{`a\b`, true},
		{"déck", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := ValidateAssetName(tt.name)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateAssetName(%q) error = %v, wantErr %v", tt.name, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidAssetName) {
				t.Errorf("error = %v, want ErrInvalidAssetName", err)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestEmbedded - Built-in Assets
// ---------------------------------------------------------------------------

func TestEmbedded(t *testing.T) {
	t.Parallel()

	css, err := LoadStyle(DefaultStyleName)
	if err != nil {
		t.Fatalf("LoadStyle(%q) error = %v", DefaultStyleName, err)
	}
	if !strings.Contains(css, ".slide") {
		t.Error("built-in stylesheet has no .slide rule")
	}

	img, err := LoadImage(SampleImageName)
	if err != nil {
		t.Fatalf("LoadImage(%q) error = %v", SampleImageName, err)
	}
	if img.Name != "sample.svg" || img.MIMEType != "image/svg+xml" || len(img.Data) == 0 {
		t.Errorf("LoadImage() = {%q, %q, %d bytes}", img.Name, img.MIMEType, len(img.Data))
	}

	if _, err := LoadStyle("missing"); !errors.Is(err, ErrStyleNotFound) {
		t.Errorf("LoadStyle(missing) error = %v, want ErrStyleNotFound", err)
	}
	if _, err := LoadImage("missing"); !errors.Is(err, ErrImageNotFound) {
		t.Errorf("LoadImage(missing) error = %v, want ErrImageNotFound", err)
	}
	if _, err := LoadStyle("a/b"); !errors.Is(err, ErrInvalidAssetName) {
		t.Errorf("LoadStyle(a/b) error = %v, want ErrInvalidAssetName", err)
	}
}

// ---------------------------------------------------------------------------
// TestNewDir - Directory Sources
// ---------------------------------------------------------------------------

func TestNewDir(t *testing.T) {
	t.Parallel()

	fs := memAssets(t, map[string]string{"notes.txt": "x"})

	tests := []struct {
		name string
		dir  string
	}{
		{"empty path", ""},
		{"missing directory", "/nowhere"},
		{"regular file", "/talk/notes.txt"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if _, err := NewDir(fs, tt.dir); !errors.Is(err, ErrInvalidBasePath) {
				t.Errorf("NewDir(%q) error = %v, want ErrInvalidBasePath", tt.dir, err)
			}
		})
	}

	src, err := NewDir(fs, "/talk")
	if err != nil {
		t.Fatalf("NewDir(/talk) error = %v", err)
	}
	if src.String() != "/talk" {
		t.Errorf("String() = %q, want /talk", src.String())
	}
}

func TestSource_LoadImageExtensionOrder(t *testing.T) {
	t.Parallel()

	src, err := NewDir(memAssets(t, map[string]string{
		"images/chart.png": "png",
		"images/chart.jpg": "jpg",
		"images/photo.jpg": "jpg",
	}), "/talk")
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name     string
		wantFile string
		wantMIME string
	}{
		{"chart", "chart.png", "image/png"},
		{"photo", "photo.jpg", "image/jpeg"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			img, err := src.LoadImage(tt.name)
			if err != nil {
				t.Fatalf("LoadImage(%q) error = %v", tt.name, err)
			}
			if img.Name != tt.wantFile || img.MIMEType != tt.wantMIME {
				t.Errorf("LoadImage(%q) = {%q, %q}, want {%q, %q}",
					tt.name, img.Name, img.MIMEType, tt.wantFile, tt.wantMIME)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestResolver - Custom First, Embedded Fallback
// ---------------------------------------------------------------------------

func TestResolver(t *testing.T) {
	t.Parallel()

	fs := memAssets(t, map[string]string{
		"styles/deck.css":  ".slide { color: red; }",
		"styles/dark.css":  ".slide { background: black; }",
		"images/logo.svg":  "<svg/>",
		"images/extra.png": "png",
	})

	r, err := NewResolver(fs, "/talk")
	if err != nil {
		t.Fatalf("NewResolver() error = %v", err)
	}
	if !r.HasCustom() {
		t.Error("HasCustom() = false with a directory")
	}

	t.Run("custom style shadows embedded", func(t *testing.T) {
		t.Parallel()
		css, err := r.LoadStyle("deck")
		if err != nil || css != ".slide { color: red; }" {
			t.Errorf("LoadStyle(deck) = %q, %v", css, err)
		}
	})

	t.Run("custom only style", func(t *testing.T) {
		t.Parallel()
		if _, err := r.LoadStyle("dark"); err != nil {
			t.Errorf("LoadStyle(dark) error = %v", err)
		}
	})

	t.Run("image falls back to embedded", func(t *testing.T) {
		t.Parallel()
		img, err := r.LoadImage(SampleImageName)
		if err != nil || img.Name != "sample.svg" {
			t.Errorf("LoadImage(sample) = %v, %v", img, err)
		}
	})

	t.Run("missing everywhere", func(t *testing.T) {
		t.Parallel()
		if _, err := r.LoadImage("missing"); !errors.Is(err, ErrImageNotFound) {
			t.Errorf("LoadImage(missing) error = %v, want ErrImageNotFound", err)
		}
		if _, err := r.LoadStyle("missing"); !errors.Is(err, ErrStyleNotFound) {
			t.Errorf("LoadStyle(missing) error = %v, want ErrStyleNotFound", err)
		}
	})

	t.Run("invalid name is not retried", func(t *testing.T) {
		t.Parallel()
		if _, err := r.LoadStyle("../deck"); !errors.Is(err, ErrInvalidAssetName) {
			t.Errorf("LoadStyle(../deck) error = %v, want ErrInvalidAssetName", err)
		}
	})
}

func TestNewResolver_EmbeddedOnly(t *testing.T) {
	t.Parallel()

	r, err := NewResolver(afero.NewMemMapFs(), "")
	if err != nil {
		t.Fatalf("NewResolver() error = %v", err)
	}
	if r.HasCustom() {
		t.Error("HasCustom() = true without a directory")
	}
	if _, err := r.LoadStyle(DefaultStyleName); err != nil {
		t.Errorf("LoadStyle(%q) error = %v", DefaultStyleName, err)
	}

	if _, err := NewResolver(afero.NewMemMapFs(), "/missing"); !errors.Is(err, ErrInvalidBasePath) {
		t.Errorf("NewResolver(/missing) error = %v, want ErrInvalidBasePath", err)
	}
}
