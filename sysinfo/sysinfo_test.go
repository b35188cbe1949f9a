package sysinfo

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGet_ReportsPlatform(t *testing.T) {
	info := Get()
	assert.Equal(t, osName(runtime.GOOS), info.OS)
	assert.NotEmpty(t, info.Version)
}

func TestOSName(t *testing.T) {
	assert.Equal(t, "macOS", osName("darwin"))
	assert.Equal(t, "linux", osName("linux"))
	assert.Equal(t, "windows", osName("windows"))
}
