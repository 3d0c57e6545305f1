// Package hints turns common build failures into actionable suggestions,
// formatted as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"os"
	"strings"

	"github.com/alnah/go-slidedeck/internal/fileutil"
)

// IsInContainer reports whether the process runs inside Docker.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// ciVars are set by the CI services the deck is usually built on.
var ciVars = []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL", "CIRCLECI"}

// InCI reports whether a CI service variable is set.
func InCI() bool {
	for _, v := range ciVars {
		if os.Getenv(v) != "" {
			return true
		}
	}
	return false
}

// ForBrowserConnect suggests the rod environment variables that usually
// fix a failed Chrome launch.
func ForBrowserConnect() string {
	var hints []string

	if (InCI() || IsInContainer()) && os.Getenv("ROD_NO_SANDBOX") != "1" {
		hints = append(hints, "set ROD_NO_SANDBOX=1 for Docker/CI")
	}
	if os.Getenv("ROD_BROWSER_BIN") == "" {
		hints = append(hints, "set ROD_BROWSER_BIN to use custom Chrome")
	}
	return formatHints(hints)
}

// ForTimeout suggests a longer browser timeout.
func ForTimeout() string {
	return format("printing many slides can be slow, use --timeout 2m")
}

// ForConfigNotFound suggests --config, or creating the file in the user
// config directory when that location was searched.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/talk.yaml"
	for _, p := range searchedPaths {
		if strings.Contains(toSlash(p), ".config/go-slidedeck") {
			hint += " or create " + p
			break
		}
	}
	return format(hint)
}

// ForOutputDirectory returns hints for output write errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForStyleNotFound lists the stylesheets that do exist.
func ForStyleNotFound(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("available: " + strings.Join(available, ", "))
}

// ForFonts explains how to get a usable text font.
func ForFonts() string {
	return format("install Carlito (metric-compatible with Calibri), e.g. fonts-crosextra-carlito")
}

// ForCheckout explains what the positional argument must point at.
func ForCheckout(path string) string {
	if path == "" {
		return format("pass the path to a Matplotlib git checkout")
	}
	return format(path + " must be a git checkout with release tags, e.g. git clone https://github.com/matplotlib/matplotlib")
}

// ForGit suggests installing git.
func ForGit() string {
	return format("install git and make sure it is on PATH")
}

// ForMalformedTag suggests the checkout has tags the timeline cannot read.
func ForMalformedTag() string {
	return format("release tags must look like v3.7.1; delete or rename stray tags with git tag -d")
}

func toSlash(p string) string {
	return strings.ReplaceAll(p, "\\", "/")
}

func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
