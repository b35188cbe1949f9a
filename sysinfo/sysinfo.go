// Package sysinfo reports the operating system name and version.
package sysinfo

import "runtime"

// Info is the static platform description shown by the shell.
type Info struct {
	OS      string `json:"os"`
	Version string `json:"version"`
}

// Get returns the platform info. It has no state and can be called anywhere.
func Get() Info {
	v, err := osVersion()
	if err != nil || v == "" {
		v = "unknown"
	}
	return Info{OS: osName(runtime.GOOS), Version: v}
}

func osName(goos string) string {
	if goos == "darwin" {
		return "macOS"
	}
	return goos
}
