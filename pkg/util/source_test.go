package util

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadSource(t *testing.T) {
	dir := t.TempDir()

	t.Run("regular file", func(t *testing.T) {
		path := filepath.Join(dir, "a.jsx")
		require.NoError(t, os.WriteFile(path, []byte("const a = 1;\n"), 0644))

		got, err := ReadSource(path, nil)
		require.NoError(t, err)
		assert.Equal(t, "const a = 1;\n", string(got))
	})

	t.Run("content survives rewrite", func(t *testing.T) {
		path := filepath.Join(dir, "b.js")
		require.NoError(t, os.WriteFile(path, []byte("before"), 0644))

		got, err := ReadSource(path, nil)
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(path, []byte("after!"), 0644))
		assert.Equal(t, "before", string(got))
	})

	t.Run("empty file", func(t *testing.T) {
		path := filepath.Join(dir, "empty.js")
		require.NoError(t, os.WriteFile(path, nil, 0644))

		got, err := ReadSource(path, nil)
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := ReadSource(filepath.Join(dir, "nope.js"), nil)
		assert.Error(t, err)
	})

	t.Run("directory", func(t *testing.T) {
		_, err := ReadSource(dir, nil)
		assert.Error(t, err)
	})
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want LogLevel
	}{
		{"debug", LevelDebug},
		{"DEBUG", LevelDebug},
		{"warning", LevelWarn},
		{"error", LevelError},
		{"", LevelInfo},
		{"bogus", LevelInfo},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, ParseLogLevel(tc.in), tc.in)
	}
}

func TestGetOptimalPoolSizeWithOverride(t *testing.T) {
	assert.Equal(t, 3, GetOptimalPoolSizeWithOverride(3))

	size := GetOptimalPoolSizeWithOverride(0)
	assert.GreaterOrEqual(t, size, 4)
	assert.LessOrEqual(t, size, 32)
}
