package logger

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	require.Equal(t, slog.LevelDebug, parseLevel("DEBUG"))
	require.Equal(t, slog.LevelWarn, parseLevel("warn"))
	require.Equal(t, slog.LevelError, parseLevel("error"))
	require.Equal(t, slog.LevelInfo, parseLevel(""))
}

func TestNewFileWritesToRotatingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "directory.log")
	log, closer, err := NewFile(FileOptions{Path: path, MaxSizeMB: 1})
	require.NoError(t, err)
	log.Info("[DIRECTORY_INPUT] pharmacy near Fremont")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.True(t, strings.Contains(string(data), "[DIRECTORY_INPUT] pharmacy near Fremont"))
}

func TestNewFileWithoutPathDiscards(t *testing.T) {
	log, closer, err := NewFile(FileOptions{})
	require.NoError(t, err)
	log.Info("ignored")
	require.NoError(t, closer.Close())
}

func TestNewFileReportsUnusableDirectory(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "not-a-dir")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	log, closer, err := NewFile(FileOptions{Path: filepath.Join(blocker, "logs", "directory.log")})
	require.Error(t, err)
	require.Contains(t, err.Error(), "create log dir")
	require.Nil(t, log)
	require.Nil(t, closer)
}
