package main

import (
	"context"
	"errors"
	"os"

	slidedeck "github.com/alnah/go-slidedeck"
	"github.com/alnah/go-slidedeck/internal/config"
	"github.com/alnah/go-slidedeck/internal/fontcheck"
	"github.com/alnah/go-slidedeck/internal/timeline"
	"github.com/alnah/go-slidedeck/internal/vcs"
)

// Exit codes for the slidedeck CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess      = 0   // Deck written
	ExitGeneral      = 1   // General/unexpected error, bad tag data
	ExitUsage        = 2   // Invalid flags, config, or style
	ExitIO           = 3   // File or checkout not found, permission denied
	ExitBrowser      = 4   // Browser/Chrome errors
	ExitRequirements = 5   // Fonts or git missing
	ExitInterrupted  = 130 // SIGINT or SIGTERM
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	if errors.Is(err, context.Canceled) {
		return ExitInterrupted
	}

	// Missing system requirements (exit 5)
	if errors.Is(err, fontcheck.ErrNoFont) ||
		errors.Is(err, vcs.ErrGitNotFound) {
		return ExitRequirements
	}

	// Browser errors (exit 4)
	if errors.Is(err, slidedeck.ErrBrowserConnect) ||
		errors.Is(err, slidedeck.ErrPageCreate) ||
		errors.Is(err, slidedeck.ErrPageLoad) ||
		errors.Is(err, slidedeck.ErrPDFGeneration) {
		return ExitBrowser
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, slidedeck.ErrWritePDF) ||
		errors.Is(err, vcs.ErrCheckoutNotFound) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, ErrUsage) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrConfigInvalid) ||
		errors.Is(err, timeline.ErrInvalidParams) ||
		errors.Is(err, slidedeck.ErrInvalidStyle) ||
		errors.Is(err, slidedeck.ErrStyleNotFound) ||
		errors.Is(err, slidedeck.ErrInvalidAssetPath) {
		return ExitUsage
	}

	return ExitGeneral
}
