package adb

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrADBUnavailable means the adb binary could not be executed.
	ErrADBUnavailable = errors.New("adb is not available")

	// ErrTimeout means an adb invocation exceeded the configured timeout.
	ErrTimeout = errors.New("adb command timed out")

	// ErrNoDevices means no device in the "device" state is attached.
	ErrNoDevices = errors.New("no connected devices")

	// ErrDeviceNotFound means a requested serial is not attached.
	ErrDeviceNotFound = errors.New("device not found")

	// ErrStartFailed means am reported that an activity could not be started.
	ErrStartFailed = errors.New("activity start failed")
)

// CommandError records a failed adb invocation together with its output.
type CommandError struct {
	Args   []string
	Output string
	Err    error
}

func (e *CommandError) Error() string {
	msg := fmt.Sprintf("adb %s: %v", strings.Join(e.Args, " "), e.Err)
	if e.Output != "" {
		msg += ": " + firstLine(e.Output)
	}
	return msg
}

func (e *CommandError) Unwrap() error { return e.Err }

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return strings.TrimSpace(s[:i])
	}
	return s
}
