package adb

import (
	"context"
	"os/exec"
)

// CommandExecutor runs external commands. It exists so that device
// interaction can be tested without a real adb binary.
type CommandExecutor interface {
	// Output runs name with args and returns its combined stdout and stderr.
	// A non-zero exit status is reported as an error alongside the output.
	Output(ctx context.Context, name string, args ...string) ([]byte, error)
}

// ExecCommandExecutor runs commands with os/exec.
type ExecCommandExecutor struct{}

// Output runs the command and returns its combined output.
//
//nolint:wrapcheck // callers wrap with the adb arguments
func (ExecCommandExecutor) Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).CombinedOutput()
}
