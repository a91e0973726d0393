//go:build darwin

package loginitem

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
)

type darwinManager struct {
	plistPath string
	logDir    string
}

// New returns a Manager that installs a per-user LaunchAgent.
func New() Manager {
	home, _ := os.UserHomeDir()
	return &darwinManager{
		plistPath: filepath.Join(home, "Library", "LaunchAgents", Label+".plist"),
		logDir:    filepath.Join(home, "Library", "Logs", "autostarter"),
	}
}

func (d *darwinManager) Location() string { return d.plistPath }

func (d *darwinManager) IsInstalled() (bool, error) {
	_, err := os.Stat(d.plistPath)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("checking plist file: %w", err)
	}
	return true, nil
}

func (d *darwinManager) Install(cmd Command) error {
	if err := os.MkdirAll(d.logDir, 0o755); err != nil {
		return fmt.Errorf("creating log directory: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(d.plistPath), 0o755); err != nil {
		return fmt.Errorf("creating LaunchAgents directory: %w", err)
	}
	if err := os.WriteFile(d.plistPath, []byte(renderPlist(cmd, d.logDir)), 0o644); err != nil {
		return fmt.Errorf("creating plist: %w", err)
	}
	if err := exec.Command("launchctl", "load", "-w", d.plistPath).Run(); err != nil {
		return fmt.Errorf("loading plist: %w", err)
	}
	return nil
}

func (d *darwinManager) Uninstall() error {
	_ = exec.Command("launchctl", "unload", d.plistPath).Run()
	if err := os.Remove(d.plistPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing plist: %w", err)
	}
	return nil
}
