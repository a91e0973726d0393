//go:build windows

package config

import (
	"os"
	"path/filepath"
)

func configSearchPaths() []string {
	return []string{
		filepath.Join(os.Getenv("APPDATA"), "Autostarter", "config.yaml"),
		filepath.Join(os.Getenv("ProgramData"), "Autostarter", "config.yaml"),
	}
}
