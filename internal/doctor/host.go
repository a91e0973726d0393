package doctor

import (
	"context"
	"fmt"

	"github.com/shirou/gopsutil/v3/host"
)

// HostCheck reports the host operating system. It always passes unless the
// platform cannot be queried at all.
type HostCheck struct {
	info func(context.Context) (*host.InfoStat, error)
}

// NewHostCheck creates a host check backed by gopsutil.
func NewHostCheck() *HostCheck {
	return &HostCheck{info: host.InfoWithContext}
}

func (c *HostCheck) Name() string { return "host" }

func (c *HostCheck) Run(ctx context.Context) (string, error) {
	info, err := c.info(ctx)
	if err != nil {
		return "", fmt.Errorf("reading host info: %w", err)
	}
	platform := info.Platform
	if platform == "" {
		platform = info.OS
	}
	detail := fmt.Sprintf("%s %s (%s)", platform, info.PlatformVersion, info.KernelArch)
	if info.VirtualizationRole == "guest" && info.VirtualizationSystem != "" {
		detail += ", guest of " + info.VirtualizationSystem
	}
	return detail, nil
}

func (c *HostCheck) IsAvailable() bool { return true }
