package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	slidedeck "github.com/alnah/go-slidedeck"
	"github.com/alnah/go-slidedeck/internal/assets"
	"github.com/alnah/go-slidedeck/internal/config"
	"github.com/alnah/go-slidedeck/internal/fontcheck"
	"github.com/alnah/go-slidedeck/internal/hints"
	"github.com/alnah/go-slidedeck/internal/timeline"
	"github.com/alnah/go-slidedeck/internal/vcs"
)

// ErrUsage marks a malformed command line.
var ErrUsage = errors.New("usage error")

// withHint appends a remedy to errors users can fix themselves.
func withHint(err error, checkout string) error {
	var hint string
	switch {
	case err == nil:
		return nil
	case errors.Is(err, slidedeck.ErrBrowserConnect):
		hint = hints.ForBrowserConnect()
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, slidedeck.ErrPageLoad):
		hint = hints.ForTimeout()
	case errors.Is(err, fontcheck.ErrNoFont):
		hint = hints.ForFonts()
	case errors.Is(err, config.ErrNoCheckout):
		hint = hints.ForCheckout("")
	case errors.Is(err, vcs.ErrCheckoutNotFound):
		hint = hints.ForCheckout(checkout)
	case errors.Is(err, vcs.ErrGitNotFound):
		hint = hints.ForGit()
	case errors.Is(err, timeline.ErrMalformedTag), errors.Is(err, timeline.ErrMalformedDate):
		hint = hints.ForMalformedTag()
	case errors.Is(err, slidedeck.ErrWritePDF):
		hint = hints.ForOutputDirectory()
	case errors.Is(err, slidedeck.ErrStyleNotFound):
		hint = hints.ForStyleNotFound([]string{assets.DefaultStyleName})
	case errors.Is(err, config.ErrConfigNotFound):
		hint = hints.ForConfigNotFound(userConfigPaths())
	}
	if hint == "" {
		return err
	}
	return fmt.Errorf("%w%s", err, hint)
}

// userConfigPaths lists where a named config is looked up outside the
// working directory.
func userConfigPaths() []string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return nil
	}
	return []string{filepath.Join(dir, config.AppName, defaultConfigName+".yaml")}
}
