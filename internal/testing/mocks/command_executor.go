// Package mocks provides testify mocks for the interfaces used across the
// module, so packages can be tested without adb or a device.
package mocks

import (
	"context"
	"strconv"

	"github.com/stretchr/testify/mock"
)

// MockCommandExecutor is a testify mock for adb.CommandExecutor.
//
// Example:
//
//	exec := &mocks.MockCommandExecutor{}
//	exec.On("Output", mock.Anything, "adb", []string{"version"}).
//		Return([]byte("Android Debug Bridge version 1.0.41"), nil)
type MockCommandExecutor struct {
	mock.Mock
}

// Output records the call and returns the configured output and error.
func (m *MockCommandExecutor) Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	called := m.Called(ctx, name, args)
	var out []byte
	if v := called.Get(0); v != nil {
		out = v.([]byte)
	}
	//nolint:wrapcheck // mock returns are wrapped by the caller
	return out, called.Error(1)
}

// ExitError mimics *exec.ExitError for commands that ran and failed.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string { return "exit status " + strconv.Itoa(e.Code) }

// ExitCode returns the configured exit status.
func (e *ExitError) ExitCode() int { return e.Code }
