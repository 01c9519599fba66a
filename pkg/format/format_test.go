package format

import (
	"context"
	"errors"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetect(t *testing.T) {
	src := []byte("import React from 'react';\n\nfunction A() {\n    return <div className='x' />;\n}\n")
	o := Detect(src)

	require.NotNil(t, o.TabWidth)
	assert.Equal(t, 4, *o.TabWidth)
	assert.False(t, *o.UseTabs)
	assert.True(t, *o.Semi)
	assert.True(t, *o.SingleQuote)
	assert.Equal(t, 80, *o.PrintWidth)

	noSemi := Detect([]byte("import x from \"y\"\n\tfoo(\"a\")\n"))
	assert.True(t, *noSemi.UseTabs)
	assert.Nil(t, noSemi.TabWidth)
	assert.False(t, *noSemi.Semi)
	assert.False(t, *noSemi.SingleQuote)
}

func TestMergeAndFlags(t *testing.T) {
	width := 100
	semi := true
	comma := "all"
	detected := Detect([]byte("a()\n"))
	merged := detected.Merge(Options{PrintWidth: &width, Semi: &semi, TrailingComma: &comma})

	assert.Equal(t, []string{
		"--print-width", "100",
		"--tab-width", "2",
		"--trailing-comma", "all",
	}, merged.Flags())
}

type fakeFormatter struct {
	out  []byte
	err  error
	opts Options
}

func (f *fakeFormatter) Format(_ context.Context, _ string, _ []byte, opts Options) ([]byte, error) {
	f.opts = opts
	return f.out, f.err
}

func TestRunner(t *testing.T) {
	ctx := context.Background()

	t.Run("disabled", func(t *testing.T) {
		r := NewRunner(Config{}, &fakeFormatter{out: []byte("x")}, nil)
		out, err := r.Run(ctx, "a.tsx", nil, []byte("raw"))
		require.NoError(t, err)
		assert.Equal(t, "raw", string(out))
	})

	t.Run("explicit options win", func(t *testing.T) {
		tabs := true
		fake := &fakeFormatter{out: []byte("formatted")}
		r := NewRunner(Config{Enabled: true, Options: Options{UseTabs: &tabs}}, fake, nil)
		out, err := r.Run(ctx, "a.tsx", []byte("a;\n  b;\n"), []byte("raw"))
		require.NoError(t, err)
		assert.Equal(t, "formatted", string(out))
		assert.True(t, *fake.opts.UseTabs)
		assert.Equal(t, 2, *fake.opts.TabWidth)
	})

	t.Run("failure", func(t *testing.T) {
		fake := &fakeFormatter{err: ErrFormatter}
		_, err := NewRunner(Config{Enabled: true}, fake, nil).Run(ctx, "a.tsx", nil, []byte("raw"))
		assert.ErrorIs(t, err, ErrFormatter)
	})

	t.Run("failure ignored", func(t *testing.T) {
		fake := &fakeFormatter{err: errors.New("boom")}
		out, err := NewRunner(Config{Enabled: true, IgnoreErrors: true}, fake, nil).Run(ctx, "a.tsx", nil, []byte("raw"))
		require.NoError(t, err)
		assert.Equal(t, "raw", string(out))
	})
}

func TestPrettierProcess(t *testing.T) {
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
	ctx := context.Background()

	// `sh -c cat` echoes stdin and ignores the prettier flags.
	echo := &Prettier{Command: "sh", Args: []string{"-c", "cat", "--"}}
	out, err := echo.Format(ctx, "a.tsx", []byte("const a = 1;\n"), Options{})
	require.NoError(t, err)
	assert.Equal(t, "const a = 1;\n", string(out))

	failing := &Prettier{Command: "sh", Args: []string{"-c", "echo bad input >&2; exit 2", "--"}}
	_, err = failing.Format(ctx, "a.tsx", []byte("x"), Options{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrFormatter)
	assert.Contains(t, err.Error(), "bad input")
}
