//go:build windows

package adb

import (
	"golang.org/x/sys/windows/registry"
)

// registrySDKPath returns the SDK directory Android Studio records in the
// registry, checking the per-user key before the machine-wide one.
func registrySDKPath() string {
	roots := []registry.Key{registry.CURRENT_USER, registry.LOCAL_MACHINE}
	for _, root := range roots {
		k, err := registry.OpenKey(root, `SOFTWARE\Android Studio`, registry.QUERY_VALUE)
		if err != nil {
			continue
		}
		path, _, err := k.GetStringValue("SdkPath")
		k.Close()
		if err == nil && path != "" {
			return path
		}
	}
	return ""
}
