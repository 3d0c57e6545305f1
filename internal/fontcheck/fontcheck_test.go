package fontcheck

// Notes:
// - Calibri and Carlito are not available in CI, so scanning is tested with
//   the Go fonts from golang.org/x/image, which carry a regular name table
// - Select is tested directly for the four install combinations

import (
	"errors"
	"os"
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

func fakeScanner(files map[string][]byte, order ...string) *Scanner {
	return &Scanner{
		list: func() []string { return order },
		readFile: func(path string) ([]byte, error) {
			if data, ok := files[path]; ok {
				return data, nil
			}
			return nil, os.ErrNotExist
		},
	}
}

// ---------------------------------------------------------------------------
// TestSelect - Selection Rules
// ---------------------------------------------------------------------------

func TestSelect(t *testing.T) {
	t.Parallel()

	calibri := &Face{Family: Calibri, Path: "/fonts/calibrib.ttf"}
	carlito := &Face{Family: Carlito, Path: "/fonts/Carlito-Bold.ttf"}

	tests := []struct {
		name     string
		calibri  *Face
		carlito  *Face
		want     *Selection
		wantErr  error
		numFaces int
	}{
		{
			name:     "both installed",
			calibri:  calibri,
			carlito:  carlito,
			want:     &Selection{LogoFont: *calibri, TextFont: *carlito},
			numFaces: 2,
		},
		{
			name:     "calibri only",
			calibri:  calibri,
			want:     &Selection{LogoFont: *calibri, TextFont: *calibri, Warning: WarnCalibriOnly},
			numFaces: 1,
		},
		{
			name:     "carlito only",
			carlito:  carlito,
			want:     &Selection{LogoFont: *carlito, TextFont: *carlito, Warning: WarnCarlitoOnly},
			numFaces: 1,
		},
		{
			name:    "neither",
			wantErr: ErrNoFont,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := Select(tt.calibri, tt.carlito)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Select() error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr != nil {
				return
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Select() mismatch (-want +got):\n%s", diff)
			}
			if n := len(got.Faces()); n != tt.numFaces {
				t.Errorf("Faces() has %d entries, want %d", n, tt.numFaces)
			}
		})
	}
}

func TestSelection_String(t *testing.T) {
	t.Parallel()

	both, _ := Select(&Face{Family: Calibri, Path: "a.ttf"}, &Face{Family: Carlito, Path: "b.ttf"})
	if got := both.String(); got != "Calibri for logo (a.ttf) and Carlito for remaining text (b.ttf)" {
		t.Errorf("String() = %q", got)
	}

	one, _ := Select(nil, &Face{Family: Carlito, Path: "b.ttf"})
	if got := one.String(); got != "Carlito for all text (b.ttf)" {
		t.Errorf("String() = %q", got)
	}
}

// ---------------------------------------------------------------------------
// TestScanner_Find - Name Table Matching
// ---------------------------------------------------------------------------

func TestScanner_Find(t *testing.T) {
	t.Parallel()

	files := map[string][]byte{
		"/fonts/Go-Regular.ttf": goregular.TTF,
		"/fonts/Go-Bold.ttf":    gobold.TTF,
		"/fonts/Go-Broken.ttf":  []byte("not a font"),
	}

	t.Run("bold face found", func(t *testing.T) {
		t.Parallel()

		s := fakeScanner(files, "/fonts/Go-Regular.ttf", "/fonts/Go-Broken.ttf", "/fonts/Go-Bold.ttf")
		found := s.Find("Go")
		want := map[string]*Face{"Go": {Family: "Go", Path: "/fonts/Go-Bold.ttf"}}
		if diff := cmp.Diff(want, found); diff != "" {
			t.Errorf("Find() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("regular face ignored", func(t *testing.T) {
		t.Parallel()

		s := fakeScanner(files, "/fonts/Go-Regular.ttf")
		if found := s.Find("Go"); len(found) != 0 {
			t.Errorf("Find() = %v, want none", found)
		}
	})

	t.Run("file name must mention the family", func(t *testing.T) {
		t.Parallel()

		s := fakeScanner(map[string][]byte{"/fonts/other.ttf": gobold.TTF}, "/fonts/other.ttf")
		if found := s.Find("Go"); len(found) != 0 {
			t.Errorf("Find() = %v, want none", found)
		}
	})

	t.Run("unreadable file skipped", func(t *testing.T) {
		t.Parallel()

		s := fakeScanner(files, "/fonts/Go-Missing.ttf", "/fonts/Go-Bold.ttf")
		if found := s.Find("Go"); found["Go"] == nil {
			t.Error("readable bold face should still be found")
		}
	})
}

func TestScanner_Check_NoFonts(t *testing.T) {
	t.Parallel()

	s := fakeScanner(map[string][]byte{"/fonts/Go-Bold.ttf": gobold.TTF}, "/fonts/Go-Bold.ttf")
	if _, err := s.Check(); !errors.Is(err, ErrNoFont) {
		t.Errorf("Check() error = %v, want ErrNoFont", err)
	}
}
