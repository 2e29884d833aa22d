package system

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
)

type Runner interface {
	Run(ctx context.Context, cmd string, args ...string) (stdout, stderr string, err error)
}

type NoopRunner struct{}

func (NoopRunner) Run(ctx context.Context, cmd string, args ...string) (string, string, error) {
	return "", "", nil
}

// ShellRunner executes commands found on PATH, optionally through sudo.
// It returns stdout, stderr, and an error if the command exits non-zero.
type ShellRunner struct {
	Sudo bool
}

func (r ShellRunner) Run(ctx context.Context, cmd string, args ...string) (string, string, error) {
	name := cmd
	if r.Sudo {
		args = append([]string{cmd}, args...)
		name = "sudo"
	}
	c := exec.CommandContext(ctx, name, args...)
	var outBuf, errBuf bytes.Buffer
	c.Stdout = &outBuf
	c.Stderr = &errBuf
	if err := c.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return outBuf.String(), errBuf.String(), fmt.Errorf("exit %d: %w", exitErr.ExitCode(), err)
		}
		return outBuf.String(), errBuf.String(), err
	}
	return outBuf.String(), errBuf.String(), nil
}
