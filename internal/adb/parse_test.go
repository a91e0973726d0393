package adb

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseDevices(t *testing.T) {
	output := `* daemon not running; starting now at tcp:5037
* daemon started successfully
List of devices attached
R58M123ABC             device usb:1-1 product:beyond1lteeea model:SM_G973F device:beyond1 transport_id:3
emulator-5554          offline transport_id:1
192.168.1.20:5555      unauthorized

`
	got := parseDevices(output)

	assert.Equal(t, []Entry{
		{Serial: "R58M123ABC", State: "device", Product: "beyond1lteeea", Model: "SM_G973F", Device: "beyond1", TransportID: "3"},
		{Serial: "emulator-5554", State: "offline", TransportID: "1"},
		{Serial: "192.168.1.20:5555", State: "unauthorized"},
	}, got)
	assert.True(t, got[0].Online())
	assert.False(t, got[1].Online())
}

func TestParseDevicesEmpty(t *testing.T) {
	assert.Empty(t, parseDevices("List of devices attached\n\n"))
}

func TestParseVersion(t *testing.T) {
	out := "Android Debug Bridge version 1.0.41\nVersion 34.0.5-10900879\nInstalled as /usr/bin/adb\n"
	assert.Equal(t, "1.0.41", parseVersion(out))
	assert.Equal(t, "", parseVersion("command not found"))
}

func TestParseResolvedActivity(t *testing.T) {
	tests := []struct {
		name string
		out  string
		want string
	}{
		{
			name: "explicit component",
			out: "priority=0 preferredOrder=0 match=0x108000 specificIndex=-1 isDefault=true\n" +
				"com.miui.securitycenter/com.miui.permcenter.autostart.AutoStartManagementActivity",
			want: "com.miui.securitycenter/com.miui.permcenter.autostart.AutoStartManagementActivity",
		},
		{
			name: "resolver",
			out:  "priority=0 preferredOrder=0 match=0x0 specificIndex=-1 isDefault=false\nandroid/com.android.internal.app.ResolverActivity",
			want: "android/com.android.internal.app.ResolverActivity",
		},
		{
			name: "inner class",
			out:  "com.android.settings/com.android.settings.Settings$AppInfoActivity",
			want: "com.android.settings/com.android.settings.Settings$AppInfoActivity",
		},
		{name: "not found", out: "No activity found", want: ""},
		{name: "empty", out: "", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseResolvedActivity(tt.out))
		})
	}
}

func TestHasInstalledPath(t *testing.T) {
	assert.True(t, hasInstalledPath("package:/data/app/~~abc==/com.miui.securitycenter-1/base.apk"))
	assert.True(t, hasInstalledPath("package:/system/priv-app/A/A.apk\npackage:/data/app/split.apk"))
	assert.False(t, hasInstalledPath(""))
	assert.False(t, hasInstalledPath("error: device offline"))
}

func TestStartFailure(t *testing.T) {
	tests := []struct {
		out  string
		want string
	}{
		{"Starting: Intent { cmp=a/.B }", ""},
		{"Starting: Intent { cmp=a/.B }\nWarning: Activity not started, its current task has been brought to the front", ""},
		{"Starting: Intent { cmp=a/.B }\nError type 3\nError: Activity class {a/a.B} does not exist.", "Error: Activity class {a/a.B} does not exist."},
		{"Starting: Intent { cmp=a/.B }\nException occurred while executing 'start':\njava.lang.SecurityException: Permission Denial", "Exception occurred while executing 'start':"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, startFailure(tt.out), tt.out)
	}
}

func TestTransportFailure(t *testing.T) {
	assert.True(t, transportFailure("error: device offline"))
	assert.True(t, transportFailure("adb: device 'xyz' not found"))
	assert.True(t, transportFailure("adb: no devices/emulators found"))
	assert.False(t, transportFailure(""))
	assert.False(t, transportFailure("No activity found"))
}
