//go:build !linux && !darwin && !windows

package loginitem

type unsupportedManager struct{}

// New returns a Manager whose operations fail with ErrUnsupported.
func New() Manager { return unsupportedManager{} }

func (unsupportedManager) Location() string { return "" }
func (unsupportedManager) IsInstalled() (bool, error) { return false, ErrUnsupported }
func (unsupportedManager) Install(Command) error { return ErrUnsupported }
func (unsupportedManager) Uninstall() error { return ErrUnsupported }
