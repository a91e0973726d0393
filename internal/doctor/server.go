package doctor

import (
	"context"
	"fmt"
	"strings"

	"github.com/shirou/gopsutil/v3/process"
)

// processInfo is the subset of a process the server check needs.
type processInfo struct {
	PID  int32
	Name string
}

// ServerCheck looks for a running adb server. adb starts one on demand, so a
// missing server is only advisory.
type ServerCheck struct {
	list func(context.Context) ([]processInfo, error)
}

// NewServerCheck creates a server check backed by gopsutil.
func NewServerCheck() *ServerCheck {
	return &ServerCheck{list: listProcesses}
}

func (c *ServerCheck) Name() string { return "adb-server" }

func (c *ServerCheck) Run(ctx context.Context) (string, error) {
	procs, err := c.list(ctx)
	if err != nil {
		return "", fmt.Errorf("listing processes: %w", err)
	}
	for _, p := range procs {
		if isADBProcess(p.Name) {
			return fmt.Sprintf("running (pid %d)", p.PID), nil
		}
	}
	return "not running, adb will start it on first use", fmt.Errorf("%w: adb server not running", ErrAdvisory)
}

func (c *ServerCheck) IsAvailable() bool { return true }

func isADBProcess(name string) bool {
	name = strings.ToLower(name)
	return name == "adb" || name == "adb.exe"
}

// listProcesses skips processes whose name cannot be read, which is common
// for processes owned by other users.
func listProcesses(ctx context.Context) ([]processInfo, error) {
	procs, err := process.ProcessesWithContext(ctx)
	if err != nil {
		return nil, err
	}
	infos := make([]processInfo, 0, len(procs))
	for _, p := range procs {
		name, err := p.NameWithContext(ctx)
		if err != nil {
			continue
		}
		infos = append(infos, processInfo{PID: p.Pid, Name: name})
	}
	return infos, nil
}
