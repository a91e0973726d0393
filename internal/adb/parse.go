package adb

import (
	"bufio"
	"regexp"
	"strings"
)

// activityRegexp matches a "package/class" token as printed by
// cmd package resolve-activity --brief and dumpsys.
var activityRegexp = regexp.MustCompile(`^[A-Za-z][\w.]*/[\w.$]+$`)

// Entry is one line of "adb devices -l".
type Entry struct {
	Serial      string `json:"serial"`
	State       string `json:"state"`
	Product     string `json:"product,omitempty"`
	Model       string `json:"model,omitempty"`
	Device      string `json:"device,omitempty"`
	TransportID string `json:"transport_id,omitempty"`
}

// Online reports whether the device accepts commands.
func (e Entry) Online() bool { return e.State == "device" }

// parseDevices parses the output of "adb devices" or "adb devices -l".
func parseDevices(output string) []Entry {
	var entries []Entry
	scanner := bufio.NewScanner(strings.NewReader(output))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "List of devices") || strings.HasPrefix(line, "*") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		e := Entry{Serial: fields[0], State: fields[1]}
		for _, kv := range fields[2:] {
			key, value, ok := strings.Cut(kv, ":")
			if !ok {
				continue
			}
			switch key {
			case "product":
				e.Product = value
			case "model":
				e.Model = value
			case "device":
				e.Device = value
			case "transport_id":
				e.TransportID = value
			}
		}
		entries = append(entries, e)
	}
	return entries
}

// parseVersion extracts "1.0.41" from "Android Debug Bridge version 1.0.41".
func parseVersion(output string) string {
	const marker = "Android Debug Bridge version "
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, marker) {
			return strings.TrimSpace(strings.TrimPrefix(line, marker))
		}
	}
	return ""
}

// parseResolvedActivity returns the component printed by
// "cmd package resolve-activity --brief", or "" when nothing resolved.
func parseResolvedActivity(output string) string {
	if strings.Contains(output, "No activity found") {
		return ""
	}
	lines := strings.Split(output, "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		line := strings.TrimSpace(lines[i])
		if activityRegexp.MatchString(line) {
			return line
		}
	}
	return ""
}

// hasInstalledPath reports whether "pm path" printed an APK location.
func hasInstalledPath(output string) bool {
	for _, line := range strings.Split(output, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "package:") {
			return true
		}
	}
	return false
}

// startFailure returns the failing line of "am start" output, or "".
// am exits 0 for many failures, so the text has to be inspected.
func startFailure(output string) string {
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(line, "Error:"),
			strings.Contains(line, "Exception"),
			strings.Contains(line, "Permission Denial"):
			return line
		}
	}
	return ""
}

// transportFailure reports output produced by adb itself rather than by the
// remote command, e.g. "error: device offline".
func transportFailure(output string) bool {
	out := strings.TrimSpace(output)
	return strings.HasPrefix(out, "error:") ||
		strings.HasPrefix(out, "adb: ") ||
		strings.Contains(out, "device offline") ||
		strings.Contains(out, "no devices/emulators found")
}
