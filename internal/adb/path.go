package adb

import (
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
)

// binaryName is the adb executable name on the host OS.
func binaryName() string {
	if runtime.GOOS == "windows" {
		return "adb.exe"
	}
	return "adb"
}

// ResolvePath picks the adb binary. Precedence: the configured path,
// $ANDROID_HOME, $ANDROID_SDK_ROOT, the Android Studio SDK location recorded
// in the Windows registry, and finally PATH. If nothing is found the bare
// binary name is returned so that exec reports a meaningful error.
func ResolvePath(configured string) string {
	if configured != "" {
		return configured
	}

	var sdkRoots []string
	for _, env := range []string{"ANDROID_HOME", "ANDROID_SDK_ROOT"} {
		if dir := os.Getenv(env); dir != "" {
			sdkRoots = append(sdkRoots, dir)
		}
	}
	if dir := registrySDKPath(); dir != "" {
		sdkRoots = append(sdkRoots, dir)
	}

	for _, root := range sdkRoots {
		candidate := filepath.Join(root, "platform-tools", binaryName())
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate
		}
	}

	if p, err := exec.LookPath(binaryName()); err == nil {
		return p
	}
	return binaryName()
}
