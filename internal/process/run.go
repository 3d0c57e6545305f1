package process

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
)

// Result is the outcome of a command that ran to completion.
type Result struct {
	ExitCode int
	Stdout   []byte
	Stderr   []byte
}

// Runner runs name with args in dir. The error is non-nil only when the
// command could not be started or was interrupted by ctx; a non-zero exit
// status is reported in Result.ExitCode.
type Runner func(ctx context.Context, dir, name string, args ...string) (*Result, error)

// Compile-time check that Run satisfies Runner.
var _ Runner = Run

// Run executes an external command with os/exec.
func Run(ctx context.Context, dir, name string, args ...string) (*Result, error) {
	cmd := exec.CommandContext(ctx, name, args...) // #nosec G204 -- callers pass fixed tool names
	cmd.Dir = dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, ctxErr
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return &Result{ExitCode: exitErr.ExitCode(), Stdout: stdout.Bytes(), Stderr: stderr.Bytes()}, nil
	}
	if err != nil {
		return nil, err
	}
	return &Result{Stdout: stdout.Bytes(), Stderr: stderr.Bytes()}, nil
}
