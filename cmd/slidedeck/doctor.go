package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/alnah/go-slidedeck/internal/fontcheck"
	"github.com/alnah/go-slidedeck/internal/hints"
)

// ErrDoctor is returned when doctor finds a missing requirement.
var ErrDoctor = errors.New("system is not ready to build the deck")

// Doctor statuses.
const (
	statusReady    = "ready"
	statusWarnings = "warnings"
	statusErrors   = "errors"
)

// doctorResult holds all diagnostic information.
type doctorResult struct {
	Status   string     `json:"status"`
	Chrome   chromeInfo `json:"chrome"`
	Fonts    fontInfo   `json:"fonts"`
	Tools    toolInfo   `json:"tools"`
	Env      envInfo    `json:"environment"`
	Warnings []string   `json:"warnings,omitempty"`
	Errors   []string   `json:"errors,omitempty"`
}

type chromeInfo struct {
	Found   bool   `json:"found"`
	Path    string `json:"path,omitempty"`
	Version string `json:"version,omitempty"`
	Sandbox bool   `json:"sandbox"`
}

type fontInfo struct {
	Text string `json:"text,omitempty"`
	Logo string `json:"logo,omitempty"`
}

// toolInfo holds the external programs a build runs. Empty means absent.
type toolInfo struct {
	Git  string `json:"git,omitempty"`
	QPDF string `json:"qpdf,omitempty"`
}

type envInfo struct {
	OS         string `json:"os"`
	Arch       string `json:"arch"`
	Container  bool   `json:"container"`
	CI         bool   `json:"ci"`
	NoSandbox  string `json:"rod_no_sandbox"`
	BrowserBin string `json:"rod_browser_bin"`
}

func newDoctorCmd(deps *Dependencies) *cobra.Command {
	var jsonOutput bool
	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check Chrome, fonts, git and qpdf",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			result := runDoctor(cmd.Context(), deps)
			if jsonOutput {
				enc := json.NewEncoder(deps.Stdout)
				enc.SetIndent("", "  ")
				if err := enc.Encode(result); err != nil {
					return err
				}
			} else {
				printDoctorResult(deps.Stdout, result)
			}
			if result.Status == statusErrors {
				return ErrDoctor
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "output as JSON")
	return cmd
}

// runDoctor performs all diagnostic checks.
func runDoctor(ctx context.Context, deps *Dependencies) *doctorResult {
	result := &doctorResult{
		Status: statusReady,
		Env: envInfo{
			OS:         runtime.GOOS,
			Arch:       runtime.GOARCH,
			NoSandbox:  os.Getenv("ROD_NO_SANDBOX"),
			BrowserBin: os.Getenv("ROD_BROWSER_BIN"),
		},
	}

	checkChrome(ctx, deps, result)
	checkFonts(deps, result)
	checkTools(deps, result)
	checkEnvironment(result)

	if len(result.Errors) > 0 {
		result.Status = statusErrors
	} else if len(result.Warnings) > 0 {
		result.Status = statusWarnings
	}
	return result
}

// checkChrome locates Chrome the way the builder's launcher does.
func checkChrome(ctx context.Context, deps *Dependencies, result *doctorResult) {
	path := result.Env.BrowserBin
	if path == "" {
		var found bool
		path, found = deps.LookChrome()
		if !found {
			result.Errors = append(result.Errors, "Chrome/Chromium not found. Install Chrome or set ROD_BROWSER_BIN")
			return
		}
	}

	result.Chrome.Found = true
	result.Chrome.Path = path
	result.Chrome.Sandbox = result.Env.NoSandbox != "1"

	res, err := deps.Run(ctx, "", path, "--version")
	if err != nil || res.ExitCode != 0 {
		result.Warnings = append(result.Warnings, "Could not get Chrome version from "+path)
		return
	}
	result.Chrome.Version = string(bytes.TrimSpace(res.Stdout))
}

func checkFonts(deps *Dependencies, result *doctorResult) {
	sel, err := deps.Fonts()
	if err != nil {
		if errors.Is(err, fontcheck.ErrNoFont) {
			result.Errors = append(result.Errors, "No bold Calibri or Carlito font installed")
		} else {
			result.Errors = append(result.Errors, fmt.Sprintf("Font check failed: %v", err))
		}
		return
	}
	result.Fonts = fontInfo{Text: sel.TextFont.Path, Logo: sel.LogoFont.Path}
	if sel.Warning != "" {
		result.Warnings = append(result.Warnings, sel.Warning)
	}
}

func checkTools(deps *Dependencies, result *doctorResult) {
	if p, err := deps.LookPath("git"); err == nil {
		result.Tools.Git = p
	} else {
		result.Errors = append(result.Errors, "git not found. The release history slide reads tags with git")
	}
	if p, err := deps.LookPath("qpdf"); err == nil {
		result.Tools.QPDF = p
	} else {
		result.Warnings = append(result.Warnings, "qpdf not found. The final PDF will be an unlinearized copy")
	}
}

// checkEnvironment detects container and CI environments.
func checkEnvironment(result *doctorResult) {
	result.Env.Container = hints.IsInContainer()
	result.Env.CI = hints.InCI()
	if (result.Env.Container || result.Env.CI) && result.Env.NoSandbox != "1" {
		result.Warnings = append(result.Warnings,
			"Container/CI detected but ROD_NO_SANDBOX not set. Set ROD_NO_SANDBOX=1")
	}
}

// printDoctorResult outputs human-readable diagnostic results.
func printDoctorResult(w io.Writer, r *doctorResult) {
	fmt.Fprintln(w, StyleTitle.Render("slidedeck doctor"))
	fmt.Fprintln(w)

	fmt.Fprintln(w, StyleTitle.Render("Chrome/Chromium"))
	if r.Chrome.Found {
		printSuccess(w, "Found at %s", r.Chrome.Path)
		if r.Chrome.Version != "" {
			printKeyValue(w, "Version", r.Chrome.Version)
		}
		if r.Chrome.Sandbox {
			printKeyValue(w, "Sandbox", "enabled")
		} else {
			printKeyValue(w, "Sandbox", "disabled (ROD_NO_SANDBOX=1)")
		}
	} else {
		printError(w, "Not found")
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, StyleTitle.Render("Fonts"))
	if r.Fonts.Text != "" {
		printKeyValue(w, "Text", r.Fonts.Text)
		printKeyValue(w, "Logo", r.Fonts.Logo)
	} else {
		printError(w, "Not found")
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, StyleTitle.Render("Tools"))
	printTool(w, "git", r.Tools.Git, true)
	printTool(w, "qpdf", r.Tools.QPDF, false)
	fmt.Fprintln(w)

	fmt.Fprintln(w, StyleTitle.Render("Environment"))
	printKeyValue(w, "Platform", r.Env.OS+"/"+r.Env.Arch)
	if r.Env.Container {
		printKeyValue(w, "Container", "detected")
	}
	if r.Env.CI {
		printKeyValue(w, "CI", "detected")
	}
	fmt.Fprintln(w)

	for _, warn := range r.Warnings {
		printWarning(w, "%s", warn)
	}
	for _, e := range r.Errors {
		printError(w, "%s", e)
	}
	if len(r.Warnings)+len(r.Errors) > 0 {
		fmt.Fprintln(w)
	}

	switch r.Status {
	case statusReady:
		fmt.Fprintln(w, "Status: "+styleIconSuccess.Render("READY"))
	case statusWarnings:
		fmt.Fprintln(w, "Status: "+StyleWarning.Render("READY (with warnings)"))
	default:
		fmt.Fprintln(w, "Status: "+styleIconError.Render("NOT READY"))
	}
}

func printTool(w io.Writer, name, path string, required bool) {
	switch {
	case path != "":
		printSuccess(w, "%s: %s", name, path)
	case required:
		printError(w, "%s: not found", name)
	default:
		printWarning(w, "%s: not found", name)
	}
}
