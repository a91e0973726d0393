// Package platform abstracts the Android facilities the autostart helper needs:
// reading the device brand, checking package installation, resolving
// activities and launching them. The adb package provides the implementation
// used by the CLI; tests use a mock.
package platform

import (
	"context"

	"github.com/Guliveer/autostarter/internal/intent"
)

// Platform is a single Android device (or a stand-in for one).
type Platform interface {
	// Name identifies the platform in logs, e.g. the device serial.
	Name() string

	// Brand returns the raw Build.BRAND value.
	Brand(ctx context.Context) (string, error)

	// PackageInstalled reports whether pkg is installed. A missing package is
	// (false, nil); only failures to ask return an error.
	PackageInstalled(ctx context.Context, pkg string) (bool, error)

	// ActivityFound reports whether at least one default-category activity
	// can handle in.
	ActivityFound(ctx context.Context, in intent.Intent) (bool, error)

	// StartActivity launches in.
	StartActivity(ctx context.Context, in intent.Intent) error
}
