package logger

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsolatedLoggerGetLogs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	l := NewIsolatedLogger(path)

	l.Info("TRANSCRIPT", "uploaded", map[string]interface{}{"id": "t1"})
	l.Warn("COMPOSITOR", "fallback used", nil)
	l.Error("COMPOSITOR", "render failed", map[string]interface{}{"error": errors.New("boom")})
	require.NoError(t, l.Sync())

	all, err := l.GetLogs("", 10, 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "render failed", all[0].Message)
	assert.Equal(t, "COMPOSITOR", all[0].Module)
	assert.Equal(t, "uploaded", all[2].Message)

	warns, err := l.GetLogs("WARN", 10, 0)
	require.NoError(t, err)
	require.Len(t, warns, 1)
	assert.Equal(t, "fallback used", warns[0].Message)

	page, err := l.GetLogs("", 1, 1)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "fallback used", page[0].Message)
}

func TestNopLogger(t *testing.T) {
	l := NewNopLogger()
	assert.NotPanics(t, func() {
		l.Info("X", "ignored", nil)
	})
	logs, err := l.GetLogs("", 10, 0)
	require.NoError(t, err)
	assert.Empty(t, logs)
}
