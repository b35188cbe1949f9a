//go:build !linux && !freebsd && !netbsd && !openbsd && !darwin && !windows

package sysinfo

func osVersion() (string, error) {
	return "", nil
}
