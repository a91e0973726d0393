// Package adb drives Android devices through the Android Debug Bridge.
// Device implements platform.Platform on top of the getprop, pm, cmd package
// and am shell tools.
package adb

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"go.uber.org/zap"
)

// DefaultTimeout bounds a single adb invocation.
const DefaultTimeout = 30 * time.Second

// Client runs adb commands.
type Client struct {
	path    string
	timeout time.Duration
	exec    CommandExecutor
	logger  *zap.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithExecutor replaces the command executor.
func WithExecutor(e CommandExecutor) Option {
	return func(c *Client) { c.exec = e }
}

// WithTimeout sets the per-command timeout. Non-positive values are ignored.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// NewClient creates a client for the adb binary at path. An empty path is
// resolved with ResolvePath.
func NewClient(path string, logger *zap.Logger, opts ...Option) *Client {
	c := &Client{
		path:    ResolvePath(path),
		timeout: DefaultTimeout,
		exec:    ExecCommandExecutor{},
		logger:  logger.Named("adb"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Path returns the adb binary in use.
func (c *Client) Path() string { return c.path }

// run executes adb with args, targeting serial when it is non-empty.
// The returned output is trimmed.
func (c *Client) run(ctx context.Context, serial string, args ...string) (string, error) {
	full := args
	if serial != "" {
		full = append([]string{"-s", serial}, args...)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	out, err := c.exec.Output(ctx, c.path, full...)
	text := strings.TrimSpace(string(out))

	c.logger.Debug("adb command",
		zap.Strings("args", full),
		zap.Int("output_bytes", len(text)),
		zap.Error(err))

	if err != nil {
		switch ctxErr := ctx.Err(); {
		case errors.Is(ctxErr, context.DeadlineExceeded):
			err = fmt.Errorf("%w: %w", ErrTimeout, ctxErr)
		case ctxErr != nil:
			// adb was killed because the caller gave up; its exit status means nothing.
			err = ctxErr
		case errors.Is(err, exec.ErrNotFound):
			err = fmt.Errorf("%w: %w", ErrADBUnavailable, err)
		}
		return text, &CommandError{Args: full, Output: text, Err: err}
	}
	return text, nil
}

// Version returns the adb client version, e.g. "1.0.41".
func (c *Client) Version(ctx context.Context) (string, error) {
	out, err := c.run(ctx, "", "version")
	if err != nil {
		return "", err
	}
	v := parseVersion(out)
	if v == "" {
		return "", fmt.Errorf("unrecognised adb version output: %q", firstLine(out))
	}
	return v, nil
}

// Devices lists every attached device regardless of state.
func (c *Client) Devices(ctx context.Context) ([]Entry, error) {
	out, err := c.run(ctx, "", "devices", "-l")
	if err != nil {
		return nil, err
	}
	return parseDevices(out), nil
}

// OnlineSerials returns the serials of devices in the "device" state.
func (c *Client) OnlineSerials(ctx context.Context) ([]string, error) {
	entries, err := c.Devices(ctx)
	if err != nil {
		return nil, err
	}
	var serials []string
	for _, e := range entries {
		if e.Online() {
			serials = append(serials, e.Serial)
		}
	}
	return serials, nil
}

// Select returns the online devices to operate on. With no targets every
// online device is returned. Targets that are not attached are logged and
// skipped; ErrDeviceNotFound is returned only if none of them is attached.
func (c *Client) Select(ctx context.Context, targets []string) ([]string, error) {
	online, err := c.OnlineSerials(ctx)
	if err != nil {
		return nil, err
	}
	if len(online) == 0 {
		return nil, ErrNoDevices
	}
	if len(targets) == 0 {
		return online, nil
	}

	attached := make(map[string]bool, len(online))
	for _, s := range online {
		attached[s] = true
	}

	var selected []string
	for _, t := range targets {
		if attached[t] {
			selected = append(selected, t)
			continue
		}
		c.logger.Warn("Requested device is not connected", zap.String("serial", t))
	}
	if len(selected) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrDeviceNotFound, strings.Join(targets, ", "))
	}
	return selected, nil
}

// Device returns a handle for the device with the given serial. An empty
// serial lets adb pick the only attached device.
func (c *Client) Device(serial string) *Device {
	return &Device{client: c, serial: serial}
}
