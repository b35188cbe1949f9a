//go:build linux || freebsd || netbsd || openbsd

package sysinfo

import "golang.org/x/sys/unix"

func osVersion() (string, error) {
	var u unix.Utsname
	if err := unix.Uname(&u); err != nil {
		return "", err
	}
	return unix.ByteSliceToString(u.Release[:]), nil
}
