//go:build darwin

package sysinfo

import "golang.org/x/sys/unix"

func osVersion() (string, error) {
	// Product version (14.2.1), not the kernel release.
	v, err := unix.Sysctl("kern.osproductversion")
	if err == nil && v != "" {
		return v, nil
	}
	var u unix.Utsname
	if err := unix.Uname(&u); err != nil {
		return "", err
	}
	return unix.ByteSliceToString(u.Release[:]), nil
}
