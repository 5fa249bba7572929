package logging

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestSetup(t *testing.T) {
	t.Cleanup(func() { Logger = zap.NewNop() })

	require.NoError(t, Setup(false, "mybundle", "test"))
	assert.False(t, Logger.Core().Enabled(zap.InfoLevel))
	assert.True(t, Logger.Core().Enabled(zap.WarnLevel))

	require.NoError(t, Setup(true, "mybundle", "test"))
	assert.True(t, Logger.Core().Enabled(zap.DebugLevel))
	assert.Same(t, Logger, zap.L())
}

func TestIsRegularFile(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "log")
	require.NoError(t, err)
	defer f.Close()

	assert.True(t, isRegularFile(f))

	require.NoError(t, f.Close())
	assert.False(t, isRegularFile(f))
}
