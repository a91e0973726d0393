//go:build !windows

package adb

// registrySDKPath is only meaningful on Windows.
func registrySDKPath() string { return "" }
