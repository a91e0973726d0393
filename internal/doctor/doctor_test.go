package doctor

import (
	"context"
	"errors"
	"testing"

	"github.com/shirou/gopsutil/v3/host"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Guliveer/autostarter/internal/adb"
	"github.com/Guliveer/autostarter/internal/models"
)

type fakeClient struct {
	version    string
	versionErr error
	devices    []adb.Entry
	devicesErr error
}

func (f *fakeClient) Path() string { return "/sdk/platform-tools/adb" }

func (f *fakeClient) Version(context.Context) (string, error) {
	return f.version, f.versionErr
}

func (f *fakeClient) Devices(context.Context) ([]adb.Entry, error) {
	return f.devices, f.devicesErr
}

type stubCheck struct {
	name      string
	detail    string
	err       error
	available bool
}

func (s stubCheck) Name() string { return s.name }
func (s stubCheck) Run(context.Context) (string, error) { return s.detail, s.err }
func (s stubCheck) IsAvailable() bool { return s.available }

func TestRegistry_RunAll(t *testing.T) {
	reg := NewRegistry(zap.NewNop())
	reg.Register(stubCheck{name: "a", detail: "fine", available: true})
	reg.Register(stubCheck{name: "skipped", available: false})
	reg.Register(stubCheck{name: "b", err: errors.New("broken"), available: true})
	reg.Register(stubCheck{name: "c", detail: "meh", err: ErrAdvisory, available: true})

	require.Len(t, reg.Checks(), 3)

	results := reg.RunAll(context.Background())
	require.Len(t, results, 3)

	assert.Equal(t, "a", results[0].Name)
	assert.Equal(t, models.StatusOK, results[0].Status)
	assert.Equal(t, "fine", results[0].Detail)

	assert.Equal(t, "b", results[1].Name)
	assert.Equal(t, models.StatusFail, results[1].Status)
	assert.Equal(t, "broken", results[1].Detail)

	assert.Equal(t, models.StatusWarn, results[2].Status)
	assert.Equal(t, "meh", results[2].Detail)

	assert.False(t, Healthy(results))
	assert.True(t, Healthy(results[2:]))
}

func TestHostCheck(t *testing.T) {
	c := &HostCheck{info: func(context.Context) (*host.InfoStat, error) {
		return &host.InfoStat{
			OS:                   "linux",
			Platform:             "ubuntu",
			PlatformVersion:      "24.04",
			KernelArch:           "x86_64",
			VirtualizationSystem: "docker",
			VirtualizationRole:   "guest",
		}, nil
	}}

	detail, err := c.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ubuntu 24.04 (x86_64), guest of docker", detail)

	c.info = func(context.Context) (*host.InfoStat, error) { return nil, errors.New("denied") }
	_, err = c.Run(context.Background())
	assert.ErrorContains(t, err, "denied")
}

func TestServerCheck(t *testing.T) {
	c := &ServerCheck{list: func(context.Context) ([]processInfo, error) {
		return []processInfo{{PID: 1, Name: "init"}, {PID: 4242, Name: "ADB.EXE"}}, nil
	}}
	detail, err := c.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "running (pid 4242)", detail)

	c.list = func(context.Context) ([]processInfo, error) {
		return []processInfo{{PID: 1, Name: "init"}}, nil
	}
	_, err = c.Run(context.Background())
	assert.ErrorIs(t, err, ErrAdvisory)
}

func TestVersionCheck(t *testing.T) {
	c := NewVersionCheck(&fakeClient{version: "1.0.41"})
	detail, err := c.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "/sdk/platform-tools/adb (version 1.0.41)", detail)

	c = NewVersionCheck(&fakeClient{version: "1.0.32"})
	detail, err = c.Run(context.Background())
	assert.Equal(t, "/sdk/platform-tools/adb (version 1.0.32)", detail)
	assert.ErrorIs(t, err, ErrAdvisory)

	c = NewVersionCheck(&fakeClient{versionErr: adb.ErrADBUnavailable})
	_, err = c.Run(context.Background())
	assert.ErrorIs(t, err, adb.ErrADBUnavailable)
}

func TestDevicesCheck(t *testing.T) {
	tests := []struct {
		name    string
		devices []adb.Entry
		want    string
		wantErr error
	}{
		{
			name:    "none",
			wantErr: adb.ErrNoDevices,
		},
		{
			name:    "online",
			devices: []adb.Entry{{Serial: "emulator-5554", State: "device"}, {Serial: "R58M", State: "device"}},
			want:    "2 online: emulator-5554, R58M",
		},
		{
			name:    "some unauthorized",
			devices: []adb.Entry{{Serial: "a", State: "device"}, {Serial: "b", State: "unauthorized"}},
			want:    "1 online: a; not ready: b unauthorized",
			wantErr: ErrAdvisory,
		},
		{
			name:    "only offline",
			devices: []adb.Entry{{Serial: "b", State: "offline"}},
			want:    "0 online; not ready: b offline",
			wantErr: adb.ErrNoDevices,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			detail, err := NewDevicesCheck(&fakeClient{devices: tt.devices}).Run(context.Background())
			assert.Equal(t, tt.want, detail)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestRegisterDefaults(t *testing.T) {
	reg := NewRegistry(zap.NewNop())
	RegisterDefaults(reg, &fakeClient{})

	names := make([]string, 0)
	for _, c := range reg.Checks() {
		names = append(names, c.Name())
	}
	assert.Equal(t, []string{"host", "adb", "adb-server", "devices"}, names)
}

func TestIsADBProcess(t *testing.T) {
	assert.True(t, isADBProcess("adb"))
	assert.True(t, isADBProcess("adb.exe"))
	assert.False(t, isADBProcess("adbd"))
}
