//go:build windows

package loginitem

import (
	"errors"
	"fmt"

	"golang.org/x/sys/windows/registry"
)

const runKey = `Software\Microsoft\Windows\CurrentVersion\Run`

// windowsManager implements Manager with a value under the per-user Run key.
type windowsManager struct{}

// New returns a Manager that uses HKCU\...\Run.
func New() Manager {
	return &windowsManager{}
}

func (w *windowsManager) Location() string { return `HKCU\` + runKey + `\` + Name }

func (w *windowsManager) IsInstalled() (bool, error) {
	k, err := registry.OpenKey(registry.CURRENT_USER, runKey, registry.QUERY_VALUE)
	if err != nil {
		if errors.Is(err, registry.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("opening Run key: %w", err)
	}
	defer k.Close()

	_, _, err = k.GetStringValue(Name)
	if errors.Is(err, registry.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("reading Run value: %w", err)
	}
	return true, nil
}

func (w *windowsManager) Install(cmd Command) error {
	k, _, err := registry.CreateKey(registry.CURRENT_USER, runKey, registry.SET_VALUE)
	if err != nil {
		return fmt.Errorf("opening Run key: %w", err)
	}
	defer k.Close()

	if err := k.SetStringValue(Name, cmd.Line()); err != nil {
		return fmt.Errorf("writing Run value: %w", err)
	}
	return nil
}

func (w *windowsManager) Uninstall() error {
	k, err := registry.OpenKey(registry.CURRENT_USER, runKey, registry.SET_VALUE)
	if err != nil {
		if errors.Is(err, registry.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("opening Run key: %w", err)
	}
	defer k.Close()

	if err := k.DeleteValue(Name); err != nil && !errors.Is(err, registry.ErrNotExist) {
		return fmt.Errorf("deleting Run value: %w", err)
	}
	return nil
}
