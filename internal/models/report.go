// Package models defines the report structures printed by the CLI.
// They are serialized to JSON when -json is given.
package models

import "time"

// DeviceInfo describes a connected Android device.
type DeviceInfo struct {
	Serial         string `json:"serial"`
	Model          string `json:"model,omitempty"`
	Manufacturer   string `json:"manufacturer,omitempty"`
	Brand          string `json:"brand,omitempty"`
	AndroidVersion string `json:"android_version,omitempty"`
	APILevel       string `json:"api_level,omitempty"`
}

// DeviceReport is the outcome of one command on one device.
type DeviceReport struct {
	Timestamp    time.Time  `json:"timestamp"`
	Device       DeviceInfo `json:"device"`
	Manufacturer string     `json:"manufacturer,omitempty"`
	Supported    bool       `json:"supported"`
	// Result is the boolean answer of the command: screen opened (open),
	// screen exists (check) or permission present (available).
	Result bool   `json:"result"`
	Error  string `json:"error,omitempty"`
}

// Failed reports whether the command could not be carried out.
func (r DeviceReport) Failed() bool {
	return r.Error != ""
}

// Summary aggregates reports for a multi-device run.
type Summary struct {
	Command string         `json:"command"`
	Total   int            `json:"total"`
	Success int            `json:"success"`
	Failed  []string       `json:"failed,omitempty"`
	Reports []DeviceReport `json:"reports"`
}

// Summarize builds a Summary from reports. A device counts as a success when
// the command ran and its result is true.
func Summarize(command string, reports []DeviceReport) Summary {
	s := Summary{
		Command: command,
		Total:   len(reports),
		Reports: reports,
	}
	for _, r := range reports {
		if !r.Failed() && r.Result {
			s.Success++
			continue
		}
		s.Failed = append(s.Failed, r.Device.Serial)
	}
	return s
}

// Check statuses.
const (
	StatusOK   = "ok"
	StatusWarn = "warn"
	StatusFail = "fail"
)

// CheckResult is the outcome of one diagnostic check.
type CheckResult struct {
	Name     string        `json:"name"`
	Status   string        `json:"status"`
	Detail   string        `json:"detail,omitempty"`
	Duration time.Duration `json:"duration_ns"`
}
