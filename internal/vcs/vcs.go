// Package vcs reads release tags from a git checkout.
package vcs

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"

	"github.com/alnah/go-slidedeck/internal/process"
	"github.com/alnah/go-slidedeck/internal/timeline"
)

// Sentinel errors for tag listing.
var (
	ErrCheckoutNotFound = errors.New("checkout not found")
	ErrGitNotFound      = errors.New("git executable not found")
	ErrListTags         = errors.New("listing tags failed")
)

// tagFormat prints one "<name> <date>" line per tag.
const tagFormat = "--format=%(refname:strip=2) %(creatordate:short)"

// Lister lists tags with an injectable git lookup and runner.
type Lister struct {
	lookPath func(string) (string, error)
	run      process.Runner
}

// NewLister returns a Lister that uses git from PATH.
func NewLister() *Lister {
	return &Lister{lookPath: exec.LookPath, run: process.Run}
}

// ListTags returns every tag of the checkout with its creation date, in
// git's listing order.
func ListTags(ctx context.Context, checkout string) ([]timeline.RawTag, error) {
	return NewLister().ListTags(ctx, checkout)
}

// ListTags runs git tag -l in checkout and parses its output.
func (l *Lister) ListTags(ctx context.Context, checkout string) ([]timeline.RawTag, error) {
	info, err := os.Stat(checkout)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCheckoutNotFound, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrCheckoutNotFound, checkout)
	}

	git, err := l.lookPath("git")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGitNotFound, err)
	}

	res, err := l.run(ctx, checkout, git, "tag", "-l", tagFormat)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("%w: %v", ErrListTags, err)
	}
	if res.ExitCode != 0 {
		return nil, fmt.Errorf("%w: git exited with status %d: %s", ErrListTags, res.ExitCode, bytes.TrimSpace(res.Stderr))
	}

	return timeline.ParseTagLines(string(res.Stdout))
}
