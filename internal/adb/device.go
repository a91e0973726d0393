package adb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v5"
	"go.uber.org/zap"

	"github.com/Guliveer/autostarter/internal/intent"
	"github.com/Guliveer/autostarter/internal/models"
	"github.com/Guliveer/autostarter/internal/platform"
)

// System properties read from the device.
const (
	PropBrand        = "ro.product.brand"
	PropManufacturer = "ro.product.manufacturer"
	PropModel        = "ro.product.model"
	PropRelease      = "ro.build.version.release"
	PropSDK          = "ro.build.version.sdk"
	PropBootComplete = "sys.boot_completed"
)

// matchDefaultOnly is PackageManager.MATCH_DEFAULT_ONLY for --query-flags.
const matchDefaultOnly = "0x00010000"

// ErrBooting means the device is attached but has not finished booting.
var ErrBooting = errors.New("device is still booting")

var _ platform.Platform = (*Device)(nil)

// Device is a single attached Android device.
type Device struct {
	client *Client
	serial string
}

// Name returns the device serial, or "default" when adb picks the device.
func (d *Device) Name() string {
	if d.serial == "" {
		return "default"
	}
	return d.serial
}

func (d *Device) shell(ctx context.Context, args ...string) (string, error) {
	return d.client.run(ctx, d.serial, append([]string{"shell"}, args...)...)
}

// Property reads a system property with getprop.
func (d *Device) Property(ctx context.Context, name string) (string, error) {
	return d.shell(ctx, "getprop", name)
}

// Brand returns ro.product.brand, the value behind Build.BRAND.
func (d *Device) Brand(ctx context.Context) (string, error) {
	brand, err := d.Property(ctx, PropBrand)
	if err != nil {
		return "", fmt.Errorf("reading brand: %w", err)
	}
	return brand, nil
}

// Info gathers model, vendor and OS version. Individual properties that
// cannot be read are left empty; the error of the first failure is returned
// only when nothing could be read.
func (d *Device) Info(ctx context.Context) (models.DeviceInfo, error) {
	info := models.DeviceInfo{Serial: d.serial}
	props := []struct {
		name string
		dst  *string
	}{
		{PropModel, &info.Model},
		{PropManufacturer, &info.Manufacturer},
		{PropBrand, &info.Brand},
		{PropRelease, &info.AndroidVersion},
		{PropSDK, &info.APILevel},
	}

	var firstErr error
	read := 0
	for _, p := range props {
		v, err := d.Property(ctx, p.name)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		*p.dst = v
		read++
	}
	if read == 0 && firstErr != nil {
		return info, fmt.Errorf("reading device info: %w", firstErr)
	}
	return info, nil
}

// BootCompleted reports whether the system server finished starting. Until
// then the package manager cannot answer queries.
func (d *Device) BootCompleted(ctx context.Context) (bool, error) {
	v, err := d.Property(ctx, PropBootComplete)
	if err != nil {
		return false, fmt.Errorf("reading boot state: %w", err)
	}
	return v == "1", nil
}

// WaitBootCompleted polls BootCompleted using b until the device has booted
// or maxWait elapses. Transport errors are retried as well, since a device
// that was just attached may briefly report as offline.
func (d *Device) WaitBootCompleted(ctx context.Context, b backoff.BackOff, maxWait time.Duration) error {
	_, err := backoff.Retry(ctx, func() (struct{}, error) {
		booted, err := d.BootCompleted(ctx)
		if err != nil {
			if errors.Is(err, ErrADBUnavailable) {
				return struct{}{}, backoff.Permanent(err)
			}
			return struct{}{}, err
		}
		if !booted {
			return struct{}{}, ErrBooting
		}
		return struct{}{}, nil
	}, backoff.WithBackOff(b), backoff.WithMaxElapsedTime(maxWait))
	if err != nil {
		return fmt.Errorf("waiting for %s: %w", d.Name(), err)
	}
	return nil
}

// PackageInstalled asks the package manager for the APK path of pkg.
func (d *Device) PackageInstalled(ctx context.Context, pkg string) (bool, error) {
	out, err := d.shell(ctx, "pm", "path", pkg)
	if hasInstalledPath(out) {
		return true, nil
	}
	if err != nil && (transportFailure(out) || !isExitError(err)) {
		return false, fmt.Errorf("checking package %s: %w", pkg, err)
	}
	return false, nil
}

// ActivityFound resolves in with the package manager, matching only
// activities that accept CATEGORY_DEFAULT.
func (d *Device) ActivityFound(ctx context.Context, in intent.Intent) (bool, error) {
	args := append([]string{"cmd", "package", "resolve-activity", "--brief", "--query-flags", matchDefaultOnly}, in.Args()...)
	out, err := d.shell(ctx, args...)
	if err != nil && (transportFailure(out) || !isExitError(err)) {
		return false, fmt.Errorf("resolving %s: %w", in, err)
	}

	component := parseResolvedActivity(out)
	d.client.logger.Debug("Resolved activity",
		zap.String("device", d.Name()),
		zap.Stringer("intent", in),
		zap.String("component", component))
	return component != "", nil
}

// StartActivity launches in with am start.
func (d *Device) StartActivity(ctx context.Context, in intent.Intent) error {
	args := append([]string{"am", "start"}, in.Args()...)
	out, err := d.shell(ctx, args...)
	if err != nil {
		return fmt.Errorf("starting %s: %w", in, err)
	}
	if line := startFailure(out); line != "" {
		return fmt.Errorf("starting %s: %w: %s", in, ErrStartFailed, line)
	}
	return nil
}

// isExitError reports whether the remote command ran and exited non-zero,
// as opposed to adb itself failing to run or timing out.
func isExitError(err error) bool {
	var cmdErr *CommandError
	if !errors.As(err, &cmdErr) {
		return false
	}
	if errors.Is(err, ErrTimeout) || errors.Is(err, ErrADBUnavailable) || errors.Is(err, context.Canceled) {
		return false
	}
	var exitErr interface{ ExitCode() int }
	return errors.As(cmdErr.Err, &exitErr)
}
