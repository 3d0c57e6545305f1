//go:build !windows

package process

import (
	"errors"
	"os/exec"
	"syscall"
	"testing"
	"time"
)

// ---------------------------------------------------------------------------
// TestKillProcessGroup - Whole Tree Termination
// ---------------------------------------------------------------------------

func TestKillProcessGroup(t *testing.T) {
	t.Parallel()

	// The shell leads its own group and forks a sleep into it, the way
	// Chrome forks its helpers.
	cmd := exec.Command("/bin/sh", "-c", "sleep 30 & wait")
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	if err := cmd.Start(); err != nil {
		t.Skipf("cannot start /bin/sh: %v", err)
	}

	done := make(chan error, 1)
	go func() { done <- cmd.Wait() }()

	KillProcessGroup(cmd.Process.Pid)

	select {
	case err := <-done:
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			t.Fatalf("Wait() error = %v, want an exit error", err)
		}
		status, ok := exitErr.Sys().(syscall.WaitStatus)
		if ok && (!status.Signaled() || status.Signal() != syscall.SIGKILL) {
			t.Errorf("process ended with %v, want SIGKILL", status)
		}
	case <-time.After(5 * time.Second):
		_ = cmd.Process.Kill()
		t.Fatal("process group still running after KillProcessGroup")
	}
}

func TestKillProcessGroup_NoSuchProcess(t *testing.T) {
	t.Parallel()

	// ESRCH is ignored.
	KillProcessGroup(999999999)
}
