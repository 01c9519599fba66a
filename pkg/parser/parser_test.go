package parser

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectLanguage(t *testing.T) {
	tests := []struct {
		path string
		want Language
	}{
		{"src/App.js", LanguageJavaScript},
		{"src/App.jsx", LanguageJavaScript},
		{"src/App.mjs", LanguageJavaScript},
		{"src/App.tsx", LanguageTypeScript},
		{"src/App.TS", LanguageTypeScript},
		{"README.md", LanguageUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectLanguage(tt.path))
		})
	}
}

func TestTSXPath(t *testing.T) {
	assert.Equal(t, "a/Button.tsx", TSXPath("a/Button.jsx"))
	assert.Equal(t, "a/Button.tsx", TSXPath("a/Button.js"))
	assert.Equal(t, "a/Button.tsx", TSXPath("a/Button.tsx"))
	assert.Equal(t, "a/util.mjs", TSXPath("a/util.mjs"))
	assert.True(t, IsConvertible("x.JSX"))
	assert.False(t, IsConvertible("x.ts"))
}

func TestParseTSX(t *testing.T) {
	pm := NewParserManager(nil)
	defer pm.Close()

	src := []byte(`class A extends React.Component<AProps, {}> {
  render() { return <div>{this.props.x}</div>; }
}
`)
	tree, err := pm.ParseTSX(src)
	require.NoError(t, err)
	defer tree.Close()

	root := tree.RootNode()
	assert.Equal(t, "program", root.Kind())
	assert.False(t, root.HasError())
}

func TestParseUnknownLanguage(t *testing.T) {
	pm := NewParserManager(nil)
	defer pm.Close()

	_, err := pm.Parse([]byte("x"), LanguageUnknown, false)
	require.Error(t, err)
}

func TestPreflight(t *testing.T) {
	pm := NewParserManager(nil)
	defer pm.Close()

	t.Run("valid jsx", func(t *testing.T) {
		err := pm.Preflight("Hello.jsx", []byte("const Hello = () => <div>hi</div>;\n"))
		assert.NoError(t, err)
	})

	t.Run("type annotations are not javascript", func(t *testing.T) {
		err := pm.Preflight("Hello.js", []byte("let x: number = 1;\n"))
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrSyntax))
	})

	t.Run("broken input reports position", func(t *testing.T) {
		err := pm.Preflight("Broken.jsx", []byte("function (\n"))
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrSyntax)
		assert.Contains(t, err.Error(), "Broken.jsx at 1:")
	})

	t.Run("unsupported extension", func(t *testing.T) {
		err := pm.Preflight("style.css", []byte("a {}"))
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrSyntax)
	})
}

func TestConcurrentParsing(t *testing.T) {
	pm := NewParserManager(nil)
	defer pm.Close()

	src := []byte("const Greeting = (props) => <h1>{props.name}</h1>;\n")

	var wg sync.WaitGroup
	errs := make(chan error, 32)
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tree, err := pm.ParseTSX(src)
			if err != nil {
				errs <- err
				return
			}
			tree.Close()
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("concurrent parse failed: %v", err)
	}

	stats := pm.GetStats()
	assert.Equal(t, 32, stats.ParsesCalled)
	assert.LessOrEqual(t, stats.ParsersCreated, getDefaultPoolSize())
	assert.Greater(t, stats.ParsersCreated, 0)
}
