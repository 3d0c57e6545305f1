package slidedeck

// Notes:
// - qpdf is never executed here: lookPath and run are replaced with fakes
//   so each exit status can be exercised deterministically
// - The copy fallback goes through afero, so MemMapFs stands in for disk

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"testing"

	"github.com/spf13/afero"

	"github.com/alnah/go-slidedeck/internal/process"
)

var draftPDF = []byte("%PDF-1.4\n% draft\n%%EOF\n")

func newTestPostProcessor(t *testing.T, lookErr error, code int, runErr error) (*PostProcessor, afero.Fs, *[]string) {
	t.Helper()

	fs := afero.NewMemMapFs()
	if err := afero.WriteFile(fs, "/out/draft.pdf", draftPDF, 0o644); err != nil {
		t.Fatalf("seeding draft: %v", err)
	}

	var args []string
	p := &PostProcessor{
		fs: fs,
		lookPath: func(name string) (string, error) {
			if lookErr != nil {
				return "", lookErr
			}
			return "/usr/bin/" + name, nil
		},
		run: func(_ context.Context, _, name string, a ...string) (*process.Result, error) {
			args = append([]string{name}, a...)
			if runErr != nil {
				return nil, runErr
			}
			if code == 0 || code == qpdfExitWarnings {
				// Simulate qpdf writing its output.
				_ = afero.WriteFile(fs, a[len(a)-1], []byte("%PDF-1.4\n% linearized\n"), 0o644)
			}
			return &process.Result{ExitCode: code, Stderr: []byte("qpdf: something went wrong\n")}, nil
		},
	}
	return p, fs, &args
}

// ---------------------------------------------------------------------------
// TestPostProcessor_Run - Linearize or Copy
// ---------------------------------------------------------------------------

func TestPostProcessor_Run_NoQPDFCopiesDraft(t *testing.T) {
	t.Parallel()

	p, fs, args := newTestPostProcessor(t, exec.ErrNotFound, 0, nil)

	report, err := p.Run(context.Background(), "/out/draft.pdf", "/out/final.pdf")
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if report.Method != MethodCopy || report.Tool != "" || report.Fallback != nil {
		t.Errorf("report = %+v, want plain copy", report)
	}
	if len(*args) != 0 {
		t.Errorf("qpdf should not run, got %v", *args)
	}

	got, err := afero.ReadFile(fs, "/out/final.pdf")
	if err != nil {
		t.Fatalf("reading final: %v", err)
	}
	if !bytes.Equal(got, draftPDF) {
		t.Error("final PDF is not byte-identical to the draft")
	}
}

func TestPostProcessor_Run_Linearizes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		code         int
		wantWarnings bool
	}{
		{"clean exit", 0, false},
		{"exit with warnings", qpdfExitWarnings, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			p, fs, args := newTestPostProcessor(t, nil, tt.code, nil)

			report, err := p.Run(context.Background(), "/out/draft.pdf", "/out/final.pdf")
			if err != nil {
				t.Fatalf("Run() error = %v", err)
			}
			if report.Method != MethodLinearize || report.Tool != "/usr/bin/qpdf" {
				t.Errorf("report = %+v", report)
			}
			if report.Warnings != tt.wantWarnings {
				t.Errorf("Warnings = %v, want %v", report.Warnings, tt.wantWarnings)
			}

			wantArgs := []string{"/usr/bin/qpdf", "/out/draft.pdf", "--object-streams=generate", "--linearize", "/out/final.pdf"}
			if len(*args) != len(wantArgs) {
				t.Fatalf("args = %v, want %v", *args, wantArgs)
			}
			for i := range wantArgs {
				if (*args)[i] != wantArgs[i] {
					t.Errorf("arg %d = %q, want %q", i, (*args)[i], wantArgs[i])
				}
			}

			got, _ := afero.ReadFile(fs, "/out/final.pdf")
			if bytes.Equal(got, draftPDF) {
				t.Error("final PDF should be qpdf's output, not a copy")
			}
		})
	}
}

func TestPostProcessor_Run_FailureFallsBackToCopy(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		code   int
		runErr error
	}{
		{"non-zero exit", 2, nil},
		{"could not start", -1, errors.New("permission denied")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			p, fs, _ := newTestPostProcessor(t, nil, tt.code, tt.runErr)

			report, err := p.Run(context.Background(), "/out/draft.pdf", "/out/final.pdf")
			if err != nil {
				t.Fatalf("Run() error = %v", err)
			}
			if report.Method != MethodCopy {
				t.Errorf("Method = %q, want copy", report.Method)
			}
			if !errors.Is(report.Fallback, ErrPostProcess) {
				t.Errorf("Fallback = %v, want ErrPostProcess", report.Fallback)
			}

			got, _ := afero.ReadFile(fs, "/out/final.pdf")
			if !bytes.Equal(got, draftPDF) {
				t.Error("fallback should copy the draft unchanged")
			}
		})
	}
}

func TestPostProcessor_Run_Errors(t *testing.T) {
	t.Parallel()

	t.Run("missing draft", func(t *testing.T) {
		t.Parallel()

		p, _, _ := newTestPostProcessor(t, exec.ErrNotFound, 0, nil)
		if _, err := p.Run(context.Background(), "/out/absent.pdf", "/out/final.pdf"); !errors.Is(err, ErrWritePDF) {
			t.Errorf("Run() error = %v, want ErrWritePDF", err)
		}
	})

	t.Run("cancelled context", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		p, _, _ := newTestPostProcessor(t, nil, 0, nil)
		if _, err := p.Run(ctx, "/out/draft.pdf", "/out/final.pdf"); !errors.Is(err, context.Canceled) {
			t.Errorf("Run() error = %v, want context.Canceled", err)
		}
	})
}

// ---------------------------------------------------------------------------
// TestWriteDeck - Atomic Output
// ---------------------------------------------------------------------------

func TestWriteDeck(t *testing.T) {
	t.Parallel()

	t.Run("writes file", func(t *testing.T) {
		t.Parallel()

		fs := afero.NewMemMapFs()
		if err := fs.MkdirAll("/out", 0o755); err != nil {
			t.Fatal(err)
		}
		if err := WriteDeck(fs, "/out/slides.pdf", draftPDF); err != nil {
			t.Fatalf("WriteDeck() error = %v", err)
		}
		got, _ := afero.ReadFile(fs, "/out/slides.pdf")
		if !bytes.Equal(got, draftPDF) {
			t.Error("written content mismatch")
		}
	})

	t.Run("read-only filesystem", func(t *testing.T) {
		t.Parallel()

		fs := afero.NewReadOnlyFs(afero.NewMemMapFs())
		if err := WriteDeck(fs, "/out/slides.pdf", draftPDF); !errors.Is(err, ErrWritePDF) {
			t.Errorf("WriteDeck() error = %v, want ErrWritePDF", err)
		}
	})
}
