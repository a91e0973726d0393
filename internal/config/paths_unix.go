//go:build !windows

package config

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

func configSearchPaths() []string {
	home, _ := os.UserHomeDir()
	return []string{
		filepath.Join(home, ".autostarter", "config.yaml"),
		filepath.Join(xdg.ConfigHome, "autostarter", "config.yaml"),
		"/etc/autostarter/config.yaml",
	}
}
