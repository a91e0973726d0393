package doctor

import (
	"context"
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/samber/lo"

	"github.com/Guliveer/autostarter/internal/adb"
)

// ADBClient is the part of *adb.Client the adb checks use.
type ADBClient interface {
	Path() string
	Version(ctx context.Context) (string, error)
	Devices(ctx context.Context) ([]adb.Entry, error)
}

// MinADBVersion is the oldest adb release known to print transport ids and
// to support every shell command autostarter uses.
var MinADBVersion = semver.MustParse("1.0.39")

// VersionCheck verifies that the adb binary runs and is recent enough.
type VersionCheck struct {
	client ADBClient
}

func NewVersionCheck(client ADBClient) *VersionCheck {
	return &VersionCheck{client: client}
}

func (c *VersionCheck) Name() string { return "adb" }

func (c *VersionCheck) Run(ctx context.Context) (string, error) {
	v, err := c.client.Version(ctx)
	if err != nil {
		return "", err
	}
	detail := fmt.Sprintf("%s (version %s)", c.client.Path(), v)

	parsed, err := semver.NewVersion(v)
	if err != nil {
		return detail, fmt.Errorf("%w: cannot parse adb version %q", ErrAdvisory, v)
	}
	if parsed.LessThan(MinADBVersion) {
		return detail, fmt.Errorf("%w: adb %s is older than %s, update platform-tools", ErrAdvisory, v, MinADBVersion)
	}
	return detail, nil
}

func (c *VersionCheck) IsAvailable() bool { return true }

// DevicesCheck reports attached devices. Devices waiting for USB debugging
// authorization are called out because they are the usual setup mistake.
type DevicesCheck struct {
	client ADBClient
}

func NewDevicesCheck(client ADBClient) *DevicesCheck {
	return &DevicesCheck{client: client}
}

func (c *DevicesCheck) Name() string { return "devices" }

func (c *DevicesCheck) Run(ctx context.Context) (string, error) {
	entries, err := c.client.Devices(ctx)
	if err != nil {
		return "", err
	}
	online, other := lo.FilterReject(entries, func(e adb.Entry, _ int) bool {
		return e.Online()
	})
	if len(online) == 0 && len(other) == 0 {
		return "", adb.ErrNoDevices
	}

	serials := lo.Map(online, func(e adb.Entry, _ int) string { return e.Serial })
	detail := fmt.Sprintf("%d online", len(online))
	if len(serials) > 0 {
		detail += ": " + strings.Join(serials, ", ")
	}
	if len(other) == 0 {
		return detail, nil
	}

	states := lo.Map(other, func(e adb.Entry, _ int) string { return e.Serial + " " + e.State })
	detail += "; not ready: " + strings.Join(states, ", ")
	if len(online) == 0 {
		return detail, fmt.Errorf("%w: no device is ready", adb.ErrNoDevices)
	}
	return detail, fmt.Errorf("%w: some devices are not ready", ErrAdvisory)
}

func (c *DevicesCheck) IsAvailable() bool { return true }

// RegisterDefaults adds every built-in check to reg.
func RegisterDefaults(reg *Registry, client ADBClient) {
	reg.Register(NewHostCheck())
	reg.Register(NewVersionCheck(client))
	reg.Register(NewServerCheck())
	reg.Register(NewDevicesCheck(client))
}
