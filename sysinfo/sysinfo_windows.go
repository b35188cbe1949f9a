//go:build windows

package sysinfo

import (
	"fmt"

	"golang.org/x/sys/windows"
)

func osVersion() (string, error) {
	v := windows.RtlGetVersion()
	return fmt.Sprintf("%d.%d.%d", v.MajorVersion, v.MinorVersion, v.BuildNumber), nil
}
