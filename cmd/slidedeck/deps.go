package main

import (
	"context"
	"io"
	"os"
	"os/exec"
	"time"

	"github.com/go-rod/rod/lib/launcher"
	"github.com/spf13/afero"

	slidedeck "github.com/alnah/go-slidedeck"
	"github.com/alnah/go-slidedeck/internal/assets"
	"github.com/alnah/go-slidedeck/internal/fontcheck"
	"github.com/alnah/go-slidedeck/internal/process"
	"github.com/alnah/go-slidedeck/internal/talk"
	"github.com/alnah/go-slidedeck/internal/vcs"
)

// deckBuilder is the part of *slidedeck.Builder the commands use.
type deckBuilder interface {
	LoadImage(name string) (*assets.Image, error)
	RenderHTML(deck *slidedeck.Deck, st *slidedeck.Style, title string) (string, error)
	Build(ctx context.Context, deck *slidedeck.Deck, st *slidedeck.Style, meta slidedeck.Metadata) (*slidedeck.Result, error)
	Close() error
}

var _ deckBuilder = (*slidedeck.Builder)(nil)

// Dependencies holds injectable dependencies for testability.
type Dependencies struct {
	Now    func() time.Time
	Stdout io.Writer
	Stderr io.Writer
	Fs     afero.Fs

	Fonts       func() (*fontcheck.Selection, error)
	ListTags    talk.TagLister
	NewBuilder  func(opts ...slidedeck.Option) (deckBuilder, error)
	PostProcess func(ctx context.Context, fs afero.Fs, draft, final string) (*slidedeck.PostProcessReport, error)

	// Lookups used by doctor.
	LookPath   func(file string) (string, error)
	LookChrome func() (string, bool)
	Run        process.Runner
}

// DefaultDeps returns production dependencies.
func DefaultDeps() *Dependencies {
	return &Dependencies{
		Now:      time.Now,
		Stdout:   os.Stdout,
		Stderr:   os.Stderr,
		Fs:       afero.NewOsFs(),
		Fonts:    fontcheck.Check,
		ListTags: vcs.ListTags,
		NewBuilder: func(opts ...slidedeck.Option) (deckBuilder, error) {
			return slidedeck.NewBuilder(opts...)
		},
		PostProcess: func(ctx context.Context, fs afero.Fs, draft, final string) (*slidedeck.PostProcessReport, error) {
			return slidedeck.NewPostProcessor(fs).Run(ctx, draft, final)
		},
		LookPath:   exec.LookPath,
		LookChrome: launcher.LookPath,
		Run:        process.Run,
	}
}
