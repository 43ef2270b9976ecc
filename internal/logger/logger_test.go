package logger

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewBuildsBothModes(t *testing.T) {
	for _, env := range []string{"production", "development", ""} {
		l, err := New(env)
		require.NoError(t, err, env)
		require.NotNil(t, l)
		_ = l.Sync()
	}
}

func TestMustNeverReturnsNil(t *testing.T) {
	require.NotNil(t, Must("production"))
}
