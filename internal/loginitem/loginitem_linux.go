//go:build linux

package loginitem

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/spf13/afero"
)

// linuxManager implements Manager with a systemd user unit.
type linuxManager struct {
	fs       afero.Fs
	unitPath string
	run      func(name string, args ...string) error
}

// New returns a Manager that uses systemd --user.
func New() Manager {
	return &linuxManager{
		fs:       afero.NewOsFs(),
		unitPath: filepath.Join(xdg.ConfigHome, "systemd", "user", Name+".service"),
		run:      runCommand,
	}
}

func runCommand(name string, args ...string) error {
	return exec.Command(name, args...).Run()
}

func (l *linuxManager) Location() string { return l.unitPath }

// IsInstalled checks whether the unit file exists.
func (l *linuxManager) IsInstalled() (bool, error) {
	_, err := l.fs.Stat(l.unitPath)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("checking unit file: %w", err)
	}
	return true, nil
}

// Install writes the unit file, reloads the user manager, enables and starts the unit.
func (l *linuxManager) Install(cmd Command) error {
	if err := l.fs.MkdirAll(filepath.Dir(l.unitPath), 0o755); err != nil {
		return fmt.Errorf("creating unit directory: %w", err)
	}
	if err := afero.WriteFile(l.fs, l.unitPath, []byte(renderUnit(cmd)), 0o644); err != nil {
		return fmt.Errorf("writing unit file: %w", err)
	}

	commands := [][]string{
		{"systemctl", "--user", "daemon-reload"},
		{"systemctl", "--user", "enable", "--now", Name + ".service"},
	}
	for _, args := range commands {
		if err := l.run(args[0], args[1:]...); err != nil {
			return fmt.Errorf("running %s: %w", strings.Join(args, " "), err)
		}
	}
	return nil
}

// Uninstall stops, disables and removes the unit.
func (l *linuxManager) Uninstall() error {
	// Best effort; the unit may already be inactive.
	_ = l.run("systemctl", "--user", "disable", "--now", Name+".service")

	if err := l.fs.Remove(l.unitPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing unit file: %w", err)
	}

	_ = l.run("systemctl", "--user", "daemon-reload")
	return nil
}
