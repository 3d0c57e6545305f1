package main

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/spf13/afero"

	slidedeck "github.com/alnah/go-slidedeck"
	"github.com/alnah/go-slidedeck/internal/assets"
	"github.com/alnah/go-slidedeck/internal/fileutil"
	"github.com/alnah/go-slidedeck/internal/fontcheck"
	"github.com/alnah/go-slidedeck/internal/process"
	"github.com/alnah/go-slidedeck/internal/timeline"
)

// fakeBuilder records what it was asked to build. It never launches a
// browser; images come from the embedded assets.
type fakeBuilder struct {
	buildErr error
	pages    int // printed pages; zero means one per slide
	closed   bool
	deck     *slidedeck.Deck
	meta     slidedeck.Metadata
}

func (f *fakeBuilder) LoadImage(name string) (*assets.Image, error) {
	return assets.LoadImage(name)
}

func (f *fakeBuilder) RenderHTML(deck *slidedeck.Deck, _ *slidedeck.Style, title string) (string, error) {
	f.deck = deck
	return "<html><title>" + title + "</title></html>", nil
}

func (f *fakeBuilder) Build(_ context.Context, deck *slidedeck.Deck, _ *slidedeck.Style, meta slidedeck.Metadata) (*slidedeck.Result, error) {
	f.deck = deck
	f.meta = meta
	if f.buildErr != nil {
		return nil, f.buildErr
	}
	pages := f.pages
	if pages == 0 {
		pages = deck.Len()
	}
	return &slidedeck.Result{
		HTML:   []byte("<html></html>"),
		PDF:    []byte("%PDF-1.4\n% fake\n%%EOF\n"),
		Pages:  pages,
		Slides: deck.Len(),
	}, nil
}

func (f *fakeBuilder) Close() error {
	f.closed = true
	return nil
}

var testTags = []timeline.RawTag{
	{Name: "v3.5.0", Date: "2021-11-15"},
	{Name: "v3.6.0", Date: "2022-09-15"},
	{Name: "v3.7.0", Date: "2023-02-13"},
	{Name: "v3.7.0rc1", Date: "2023-01-25"},
	{Name: "v3.7.1", Date: "2023-03-04"},
	{Name: "v3.8.0", Date: "2023-09-13"},
	{Name: "v2.0.0", Date: "2017-01-17"},
}

func bothFonts() (*fontcheck.Selection, error) {
	return fontcheck.Select(
		&fontcheck.Face{Family: fontcheck.Calibri, Path: "/fonts/calibrib.ttf"},
		&fontcheck.Face{Family: fontcheck.Carlito, Path: "/fonts/Carlito-Bold.ttf"},
	)
}

// testEnv bundles fake dependencies with their captured output.
type testEnv struct {
	deps    *Dependencies
	stdout  *bytes.Buffer
	stderr  *bytes.Buffer
	fs      afero.Fs
	builder *fakeBuilder
	post    *[]string // draft, final of the last post-process call
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	fs := afero.NewMemMapFs()
	if err := fs.MkdirAll("/out", 0o755); err != nil {
		t.Fatal(err)
	}

	env := &testEnv{
		stdout:  &bytes.Buffer{},
		stderr:  &bytes.Buffer{},
		fs:      fs,
		builder: &fakeBuilder{},
		post:    &[]string{},
	}
	env.deps = &Dependencies{
		Now:    func() time.Time { return time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC) },
		Stdout: env.stdout,
		Stderr: env.stderr,
		Fs:     fs,
		Fonts:  bothFonts,
		ListTags: func(context.Context, string) ([]timeline.RawTag, error) {
			return testTags, nil
		},
		NewBuilder: func(...slidedeck.Option) (deckBuilder, error) {
			return env.builder, nil
		},
		PostProcess: func(_ context.Context, fs afero.Fs, draft, final string) (*slidedeck.PostProcessReport, error) {
			*env.post = []string{draft, final}
			if err := fileutil.CopyFile(fs, draft, final); err != nil {
				return nil, err
			}
			return &slidedeck.PostProcessReport{Method: slidedeck.MethodLinearize, Tool: "/usr/bin/qpdf"}, nil
		},
		LookPath: func(name string) (string, error) {
			return "/usr/bin/" + name, nil
		},
		LookChrome: func() (string, bool) {
			return "/usr/bin/chromium", true
		},
		Run: func(context.Context, string, string, ...string) (*process.Result, error) {
			return &process.Result{Stdout: []byte("Chromium 120.0.6099.71\n")}, nil
		},
	}
	return env
}

var errBoom = errors.New("boom")
