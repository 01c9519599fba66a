package converter

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gnana997/react2ts/pkg/util"
)

func TestDiscover(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{
		"src/App.jsx",
		"src/util.js",
		"src/types.ts",
		"src/legacy/Old.jsx",
		"node_modules/react/index.js",
		"src/__tests__/App.test.js",
	} {
		writeFile(t, filepath.Join(dir, name), "\n")
	}
	abs := func(name string) string { return filepath.Join(dir, name) }

	t.Run("directory", func(t *testing.T) {
		files, err := Discover([]string{dir}, DefaultExclude)
		require.NoError(t, err)
		assert.Equal(t, []string{
			abs("src/App.jsx"),
			abs("src/__tests__/App.test.js"),
			abs("src/legacy/Old.jsx"),
			abs("src/util.js"),
		}, files)
	})

	t.Run("exclude", func(t *testing.T) {
		files, err := Discover([]string{dir}, append([]string{"**/__tests__/**", "**/legacy/**"}, DefaultExclude...))
		require.NoError(t, err)
		assert.Equal(t, []string{abs("src/App.jsx"), abs("src/util.js")}, files)
	})

	t.Run("glob", func(t *testing.T) {
		files, err := Discover([]string{filepath.Join(dir, "src", "**", "*.jsx")}, nil)
		require.NoError(t, err)
		assert.Equal(t, []string{abs("src/App.jsx"), abs("src/legacy/Old.jsx")}, files)
	})

	t.Run("explicit file is kept and deduplicated", func(t *testing.T) {
		files, err := Discover([]string{abs("src/types.ts"), abs("src/util.js"), abs("src/util.js")}, nil)
		require.NoError(t, err)
		assert.Equal(t, []string{abs("src/types.ts"), abs("src/util.js")}, files)
	})

	t.Run("invalid exclude", func(t *testing.T) {
		_, err := Discover([]string{dir}, []string{"[unclosed"})
		assert.Error(t, err)
	})
}

func TestWorkerPoolRecoversPanics(t *testing.T) {
	logger := util.NewLogger(util.LoggerConfig{Level: util.LevelError})
	pool := NewWorkerPool(context.Background(), 2, func(_ context.Context, job FileJob) *FileResult {
		if job.JobID == 1 {
			panic("bad node")
		}
		return &FileResult{Path: job.FilePath, Status: StatusConverted}
	}, logger)
	pool.Start()

	go func() {
		defer pool.Stop()
		for i, f := range []string{"a.js", "b.js", "c.js"} {
			assert.NoError(t, pool.Submit(FileJob{FilePath: f, JobID: i}))
		}
	}()

	byJob := map[int]*FileResult{}
	for r := range pool.Results() {
		byJob[r.JobID] = r
	}

	require.Len(t, byJob, 3)
	assert.Equal(t, StatusFailed, byJob[1].Status)
	assert.Contains(t, byJob[1].Error, "bad node")
	assert.Equal(t, StatusConverted, byJob[2].Status)

	stats := pool.GetStats()
	assert.Equal(t, int64(3), stats.JobsSubmitted)
	assert.Equal(t, int64(2), stats.JobsProcessed)
	assert.Equal(t, int64(1), stats.JobsFailed)
	assert.Error(t, pool.Submit(FileJob{FilePath: "late.js"}))
}
