//go:build linux

package loginitem

import (
	"errors"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(t *testing.T) (*linuxManager, *[]string) {
	t.Helper()
	var calls []string
	return &linuxManager{
		fs:       afero.NewMemMapFs(),
		unitPath: "/home/u/.config/systemd/user/" + Name + ".service",
		run: func(name string, args ...string) error {
			calls = append(calls, name+" "+strings.Join(args, " "))
			return nil
		},
	}, &calls
}

func TestLinuxManager_InstallUninstall(t *testing.T) {
	m, calls := newTestManager(t)

	installed, err := m.IsInstalled()
	require.NoError(t, err)
	assert.False(t, installed)

	require.NoError(t, m.Install(WatchCommand("/usr/bin/autostarter", "")))

	installed, err = m.IsInstalled()
	require.NoError(t, err)
	assert.True(t, installed)

	data, err := afero.ReadFile(m.fs, m.Location())
	require.NoError(t, err)
	assert.Contains(t, string(data), "ExecStart=/usr/bin/autostarter watch")
	assert.Equal(t, []string{
		"systemctl --user daemon-reload",
		"systemctl --user enable --now autostarter-watch.service",
	}, *calls)

	require.NoError(t, m.Uninstall())
	installed, err = m.IsInstalled()
	require.NoError(t, err)
	assert.False(t, installed)

	// Uninstalling twice is fine.
	assert.NoError(t, m.Uninstall())
}

func TestLinuxManager_InstallCommandFails(t *testing.T) {
	m, _ := newTestManager(t)
	m.run = func(string, ...string) error { return errors.New("no user bus") }

	err := m.Install(WatchCommand("/usr/bin/autostarter", ""))
	assert.ErrorContains(t, err, "systemctl --user daemon-reload")
}
