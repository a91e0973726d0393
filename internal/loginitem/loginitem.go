// Package loginitem registers "autostarter watch" to start when the user logs
// in, using the native per-user mechanism of the host: a systemd user unit on
// Linux, a LaunchAgent on macOS and the Run registry key on Windows.
package loginitem

import (
	"bytes"
	"encoding/xml"
	"errors"
	"strings"
)

const (
	// Name identifies the login item on Linux and Windows.
	Name = "autostarter-watch"
	// Label identifies the LaunchAgent on macOS.
	Label = "io.github.guliveer.autostarter.watch"
)

// ErrUnsupported is returned on hosts without a known login item mechanism.
var ErrUnsupported = errors.New("login items are not supported on this platform")

// Manager installs and removes the login item.
type Manager interface {
	IsInstalled() (bool, error)
	Install(cmd Command) error
	Uninstall() error
	// Location describes where the login item lives, for display.
	Location() string
}

// Command is the program started at login.
type Command struct {
	Exec string
	Args []string
}

// WatchCommand returns the command that runs the device watcher with an
// optional config file.
func WatchCommand(execPath, configPath string) Command {
	cmd := Command{Exec: execPath}
	if configPath != "" {
		cmd.Args = append(cmd.Args, "-config", configPath)
	}
	cmd.Args = append(cmd.Args, "watch")
	return cmd
}

// Argv returns the executable followed by its arguments.
func (c Command) Argv() []string {
	return append([]string{c.Exec}, c.Args...)
}

// Line renders the command as a single line with arguments containing
// whitespace or quotes double-quoted. Both systemd ExecStart and the Windows
// Run key accept this form.
func (c Command) Line() string {
	parts := make([]string, 0, len(c.Args)+1)
	for _, a := range c.Argv() {
		parts = append(parts, quote(a))
	}
	return strings.Join(parts, " ")
}

func quote(s string) string {
	if s != "" && !strings.ContainsAny(s, " \t\"") {
		return s
	}
	return `"` + strings.ReplaceAll(s, `"`, `\"`) + `"`
}

// renderUnit returns the systemd user unit for cmd.
func renderUnit(cmd Command) string {
	var b strings.Builder
	b.WriteString("[Unit]\n")
	b.WriteString("Description=Open autostart settings on attached Android devices\n")
	b.WriteString("\n[Service]\n")
	b.WriteString("Type=simple\n")
	b.WriteString("ExecStart=" + cmd.Line() + "\n")
	b.WriteString("Restart=on-failure\n")
	b.WriteString("RestartSec=10\n")
	b.WriteString("SyslogIdentifier=" + Name + "\n")
	b.WriteString("\n[Install]\n")
	b.WriteString("WantedBy=default.target\n")
	return b.String()
}

// renderPlist returns the LaunchAgent property list for cmd. Output of the
// watcher goes to logDir.
func renderPlist(cmd Command, logDir string) string {
	var b bytes.Buffer
	b.WriteString(xml.Header)
	b.WriteString(`<!DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd">` + "\n")
	b.WriteString("<plist version=\"1.0\">\n<dict>\n")
	plistString(&b, "Label", Label)
	b.WriteString("    <key>ProgramArguments</key>\n    <array>\n")
	for _, a := range cmd.Argv() {
		b.WriteString("        <string>")
		_ = xml.EscapeText(&b, []byte(a))
		b.WriteString("</string>\n")
	}
	b.WriteString("    </array>\n")
	b.WriteString("    <key>RunAtLoad</key>\n    <true/>\n")
	b.WriteString("    <key>KeepAlive</key>\n    <true/>\n")
	plistString(&b, "StandardOutPath", logDir+"/"+Name+".stdout.log")
	plistString(&b, "StandardErrorPath", logDir+"/"+Name+".stderr.log")
	b.WriteString("</dict>\n</plist>\n")
	return b.String()
}

func plistString(b *bytes.Buffer, key, value string) {
	b.WriteString("    <key>" + key + "</key>\n    <string>")
	_ = xml.EscapeText(b, []byte(value))
	b.WriteString("</string>\n")
}
