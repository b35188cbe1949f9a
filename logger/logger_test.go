package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestGet_FallsBackWithoutInit(t *testing.T) {
	Set(nil)
	assert.NotNil(t, Get())
}

func TestInit_Environments(t *testing.T) {
	for _, env := range []string{"production", "development"} {
		require.NoError(t, Init(env))
		assert.NotNil(t, Get())
	}
	Set(zap.NewNop())
	Info("info")
	Warn("warn")
	Debug("debug")
	Error("error")
	assert.NoError(t, Sync())
}
