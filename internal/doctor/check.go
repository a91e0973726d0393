// Package doctor runs environment diagnostics: host details, the adb binary,
// the adb server process and the attached devices.
package doctor

import (
	"context"
	"errors"
)

// ErrAdvisory marks a check result that deserves attention but does not
// prevent autostarter from working.
var ErrAdvisory = errors.New("advisory")

// Check is a single diagnostic.
type Check interface {
	// Name returns the unique identifier for this check.
	Name() string

	// Run performs the check and returns a human-readable detail line.
	// Errors wrapping ErrAdvisory are reported as warnings.
	Run(ctx context.Context) (string, error)

	// IsAvailable reports whether the check applies to the current host.
	IsAvailable() bool
}
