package timeline

// Notes:
// - Version parsing must fail fast: a malformed tag is an error, never skipped
// - Pre-release filtering mirrors the tag listing of a real checkout, where
//   candidates and betas carry "rc" or "b" in their name
// - SortByDate is stable; ties keep the order of the tag listing

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		t.Fatalf("bad test date %q: %v", s, err)
	}
	return d
}

// ---------------------------------------------------------------------------
// TestParseVersion - Numeric Version Parsing
// ---------------------------------------------------------------------------

func TestParseVersion(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    Version
		wantErr error
	}{
		{
			name:  "three components",
			input: "3.7.0",
			want:  Version{3, 7, 0},
		},
		{
			name:  "leading v is stripped",
			input: "v3.7.1",
			want:  Version{3, 7, 1},
		},
		{
			name:  "two components",
			input: "v1.0",
			want:  Version{1, 0},
		},
		{
			name:  "four components",
			input: "v1.5.3.1",
			want:  Version{1, 5, 3, 1},
		},
		{
			name:  "multi-digit components",
			input: "v10.12.105",
			want:  Version{10, 12, 105},
		},
		{
			name:    "non-numeric component",
			input:   "v3.x.0",
			wantErr: ErrMalformedTag,
		},
		{
			name:    "single component",
			input:   "v3",
			wantErr: ErrMalformedTag,
		},
		{
			name:    "empty component",
			input:   "v3..0",
			wantErr: ErrMalformedTag,
		},
		{
			name:    "only one v is stripped",
			input:   "vv3.7.0",
			wantErr: ErrMalformedTag,
		},
		{
			name:    "signed component",
			input:   "3.-7.0",
			wantErr: ErrMalformedTag,
		},
		{
			name:    "empty string",
			input:   "",
			wantErr: ErrMalformedTag,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ParseVersion(tt.input)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("ParseVersion(%q) error = %v, want %v", tt.input, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseVersion(%q) unexpected error: %v", tt.input, err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ParseVersion(%q) mismatch (-want +got):\n%s", tt.input, diff)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestVersion_Accessors - Prefix, Micro, Feature
// ---------------------------------------------------------------------------

func TestVersion_Accessors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		version     Version
		wantPrefix  Prefix
		wantMicro   int
		wantFeature bool
		wantString  string
	}{
		{Version{3, 7, 0}, Prefix{3, 7}, 0, true, "3.7.0"},
		{Version{3, 7, 3}, Prefix{3, 7}, 3, false, "3.7.3"},
		{Version{2, 0}, Prefix{2, 0}, 0, true, "2.0"},
		{Version{2, 1}, Prefix{2, 1}, 0, false, "2.1"},
		{Version{1, 5, 3, 1}, Prefix{1, 5}, 3, false, "1.5.3.1"},
	}

	for _, tt := range tests {
		t.Run(tt.wantString, func(t *testing.T) {
			t.Parallel()

			if got := tt.version.Prefix(); got != tt.wantPrefix {
				t.Errorf("Prefix() = %v, want %v", got, tt.wantPrefix)
			}
			if got := tt.version.Micro(); got != tt.wantMicro {
				t.Errorf("Micro() = %d, want %d", got, tt.wantMicro)
			}
			if got := tt.version.IsFeature(); got != tt.wantFeature {
				t.Errorf("IsFeature() = %v, want %v", got, tt.wantFeature)
			}
			if got := tt.version.String(); got != tt.wantString {
				t.Errorf("String() = %q, want %q", got, tt.wantString)
			}
		})
	}
}

func TestPrefix_Less(t *testing.T) {
	t.Parallel()

	// Numeric order: 3.10 sorts after 3.9.
	if !(Prefix{3, 9}).Less(Prefix{3, 10}) {
		t.Error("3.9 should sort before 3.10")
	}
	if (Prefix{3, 10}).Less(Prefix{3, 9}) {
		t.Error("3.10 should not sort before 3.9")
	}
	if !(Prefix{2, 99}).Less(Prefix{3, 0}) {
		t.Error("2.99 should sort before 3.0")
	}
	if (Prefix{3, 7}).Less(Prefix{3, 7}) {
		t.Error("equal prefixes are not less")
	}
}

// ---------------------------------------------------------------------------
// TestIsPreRelease - Candidate and Beta Filtering
// ---------------------------------------------------------------------------

func TestIsPreRelease(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		want bool
	}{
		{"v3.7.0", false},
		{"v3.7.0rc1", true},
		{"v3.8.0b1", true},
		{"v2.0.0", false},
		{"v1.0.1", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := IsPreRelease(tt.name); got != tt.want {
				t.Errorf("IsPreRelease(%q) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestParseTagLines - Tag Listing Parsing
// ---------------------------------------------------------------------------

func TestParseTagLines(t *testing.T) {
	t.Parallel()

	t.Run("parses name and date", func(t *testing.T) {
		t.Parallel()

		out := "v3.7.0 2023-02-13\nv3.7.1 2023-03-04\n\nv3.8.0 2023-09-14\n"
		got, err := ParseTagLines(out)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := []RawTag{
			{Name: "v3.7.0", Date: "2023-02-13"},
			{Name: "v3.7.1", Date: "2023-03-04"},
			{Name: "v3.8.0", Date: "2023-09-14"},
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("ParseTagLines mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("empty listing", func(t *testing.T) {
		t.Parallel()

		got, err := ParseTagLines("")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(got) != 0 {
			t.Errorf("expected no tags, got %d", len(got))
		}
	})

	t.Run("line without date fails", func(t *testing.T) {
		t.Parallel()

		_, err := ParseTagLines("v3.7.0 2023-02-13\nv3.7.1\n")
		if !errors.Is(err, ErrMalformedTagLine) {
			t.Fatalf("error = %v, want ErrMalformedTagLine", err)
		}
	})
}

// ---------------------------------------------------------------------------
// TestParseReleases - Filtering and Parsing
// ---------------------------------------------------------------------------

func TestParseReleases(t *testing.T) {
	t.Parallel()

	t.Run("drops pre-releases", func(t *testing.T) {
		t.Parallel()

		raw := []RawTag{
			{Name: "v3.7.0rc1", Date: "2023-01-20"},
			{Name: "v3.7.0", Date: "2023-02-13"},
			{Name: "v3.8.0b1", Date: "2023-08-01"},
		}
		got, err := ParseReleases(raw)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(got) != 1 || got[0].Tag != "v3.7.0" {
			t.Fatalf("expected only v3.7.0, got %+v", got)
		}
		if !got[0].Date.Equal(mustDate(t, "2023-02-13")) {
			t.Errorf("Date = %v", got[0].Date)
		}
	})

	t.Run("malformed tag aborts", func(t *testing.T) {
		t.Parallel()

		raw := []RawTag{
			{Name: "v3.7.0", Date: "2023-02-13"},
			{Name: "v3.x.0", Date: "2023-03-01"},
		}
		_, err := ParseReleases(raw)
		if !errors.Is(err, ErrMalformedTag) {
			t.Fatalf("error = %v, want ErrMalformedTag", err)
		}
	})

	t.Run("malformed date aborts", func(t *testing.T) {
		t.Parallel()

		_, err := ParseReleases([]RawTag{{Name: "v3.7.0", Date: "13/02/2023"}})
		if !errors.Is(err, ErrMalformedDate) {
			t.Fatalf("error = %v, want ErrMalformedDate", err)
		}
	})
}

// ---------------------------------------------------------------------------
// TestSortByDate - Stable Date Ordering
// ---------------------------------------------------------------------------

func TestSortByDate(t *testing.T) {
	t.Parallel()

	rs := []Release{
		{Tag: "v3.8.0", Version: Version{3, 8, 0}, Date: mustDate(t, "2023-09-14")},
		{Tag: "v3.6.3", Version: Version{3, 6, 3}, Date: mustDate(t, "2023-01-11")},
		{Tag: "v3.7.1", Version: Version{3, 7, 1}, Date: mustDate(t, "2023-03-04")},
		{Tag: "v3.6.4", Version: Version{3, 6, 4}, Date: mustDate(t, "2023-03-04")},
	}
	SortByDate(rs)

	var got []string
	for _, r := range rs {
		got = append(got, r.Tag)
	}
	want := []string{"v3.6.3", "v3.7.1", "v3.6.4", "v3.8.0"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("order mismatch (-want +got):\n%s", diff)
	}
}
