package utils

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileExists(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "present")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))

	assert.True(t, FileExists(path))
	assert.False(t, FileExists(filepath.Join(dir, "absent")))
	assert.False(t, FileExists(dir))
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{30 * time.Second, "30 second(s)"},
		{5 * time.Minute, "5 minute(s)"},
		{3 * time.Hour, "3 hour(s)"},
		{49 * time.Hour, "2 day(s)"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatDuration(tt.d))
	}
}

func TestFormatTimeUsesConfiguredLocation(t *testing.T) {
	defer InitTimezone(nil, "2006-01-02 15:04:05")

	loc, err := time.LoadLocation("America/Sao_Paulo")
	require.NoError(t, err)
	InitTimezone(loc, "2006-01-02 15:04")

	utc := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, "2026-06-01 09:00", FormatTime(utc))
}
