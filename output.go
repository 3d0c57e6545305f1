package slidedeck

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"

	"github.com/spf13/afero"

	"github.com/alnah/go-slidedeck/internal/fileutil"
	"github.com/alnah/go-slidedeck/internal/process"
)

// qpdfName is the linearizer looked up on PATH.
const qpdfName = "qpdf"

// qpdfExitWarnings is qpdf's exit status for "succeeded with warnings".
const qpdfExitWarnings = 3

// WriteDeck writes the PDF to path. The file appears complete or not at all.
func WriteDeck(fs afero.Fs, path string, pdf []byte) error {
	if err := fileutil.WriteFileAtomic(fs, path, pdf, 0o644); err != nil {
		return fmt.Errorf("%w: %v", ErrWritePDF, err)
	}
	return nil
}

// PostProcessMethod says how the final PDF was produced.
type PostProcessMethod string

// Post-processing methods.
const (
	MethodLinearize PostProcessMethod = "qpdf"
	MethodCopy      PostProcessMethod = "copy"
)

// PostProcessReport describes what PostProcess did.
type PostProcessReport struct {
	Method   PostProcessMethod
	Tool     string // resolved qpdf path, empty when absent
	Warnings bool   // qpdf succeeded with warnings
	Fallback error  // why qpdf output was replaced by a copy, if it was
}

// PostProcessor turns the draft PDF into the final one.
type PostProcessor struct {
	fs       afero.Fs
	lookPath func(string) (string, error)
	run      process.Runner
}

// NewPostProcessor creates a PostProcessor that uses qpdf from PATH when
// available and fs for the copy fallback.
func NewPostProcessor(fs afero.Fs) *PostProcessor {
	return &PostProcessor{
		fs:       fs,
		lookPath: exec.LookPath,
		run:      process.Run,
	}
}

// Run linearizes draft into final with object streams. Without qpdf, or when
// qpdf fails, final becomes a byte-identical copy of draft.
func (p *PostProcessor) Run(ctx context.Context, draft, final string) (*PostProcessReport, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	tool, err := p.lookPath(qpdfName)
	if err != nil {
		if err := p.copy(draft, final); err != nil {
			return nil, err
		}
		return &PostProcessReport{Method: MethodCopy}, nil
	}

	res, runErr := p.run(ctx, "", tool, draft, "--object-streams=generate", "--linearize", final)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if runErr == nil && (res.ExitCode == 0 || res.ExitCode == qpdfExitWarnings) {
		return &PostProcessReport{Method: MethodLinearize, Tool: tool, Warnings: res.ExitCode == qpdfExitWarnings}, nil
	}

	var reason error
	if runErr != nil {
		reason = fmt.Errorf("%w: running %s: %v", ErrPostProcess, tool, runErr)
	} else {
		reason = fmt.Errorf("%w: %s exited with status %d: %s", ErrPostProcess, qpdfName, res.ExitCode, bytes.TrimSpace(res.Stderr))
	}

	if err := p.copy(draft, final); err != nil {
		return nil, err
	}
	return &PostProcessReport{Method: MethodCopy, Tool: tool, Fallback: reason}, nil
}

func (p *PostProcessor) copy(draft, final string) error {
	if err := fileutil.CopyFile(p.fs, draft, final); err != nil {
		return fmt.Errorf("%w: %v", ErrWritePDF, err)
	}
	return nil
}
