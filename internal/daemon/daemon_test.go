package daemon

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthCheckerCheck(t *testing.T) {
	next := time.Now().Add(time.Minute)
	checker := NewHealthChecker("1.0.0", func() time.Time { return next })

	status := checker.Check()
	require.NotNil(t, status)
	assert.Equal(t, "ok", status.Status)
	assert.Equal(t, "1.0.0", status.Version)
	assert.GreaterOrEqual(t, status.Goroutines, 1)
	assert.GreaterOrEqual(t, status.MemoryMB, 0.0)
	assert.Equal(t, next, status.NextReminder)
}

func TestHealthCheckerNilNextRun(t *testing.T) {
	checker := NewHealthChecker("1.0.0", nil)
	status := checker.Check()
	assert.True(t, status.NextReminder.IsZero())
}

func TestPIDFileRoundTrip(t *testing.T) {
	p := &PIDFile{path: filepath.Join(t.TempDir(), "sub", "talkdoc.pid")}

	_, err := p.Read()
	assert.ErrorIs(t, err, ErrNotRunning)

	require.NoError(t, p.WritePID(12345))
	pid, err := p.Read()
	require.NoError(t, err)
	assert.Equal(t, 12345, pid)

	require.NoError(t, p.Remove())
	_, err = p.Read()
	assert.ErrorIs(t, err, ErrNotRunning)

	// Removing an absent file is fine
	require.NoError(t, p.Remove())
}

func TestIsProcessRunning(t *testing.T) {
	assert.False(t, IsProcessRunning(0))
	assert.False(t, IsProcessRunning(-1))
	// This test's own process
	assert.True(t, IsProcessRunning(selfPID(t)))
}

func selfPID(t *testing.T) int {
	t.Helper()
	p := &PIDFile{path: filepath.Join(t.TempDir(), "self.pid")}
	require.NoError(t, p.Write())
	pid, err := p.Read()
	require.NoError(t, err)
	return pid
}

func TestFormatUptime(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{30 * time.Second, "30s"},
		{5 * time.Minute, "5m"},
		{2 * time.Hour, "2h"},
		{2*time.Hour + 30*time.Minute, "2h 30m"},
		{26 * time.Hour, "1d 2h"},
		{48 * time.Hour, "2d"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, formatUptime(tt.d))
	}
}
