package proptypes

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	ts "github.com/tree-sitter/go-tree-sitter"

	"github.com/gnana997/react2ts/pkg/parser"
	"github.com/gnana997/react2ts/pkg/syntax"
	"github.com/gnana997/react2ts/pkg/typeexpr"
)

func parse(t *testing.T, src string) *syntax.File {
	t.Helper()
	pm := parser.NewParserManager(nil)
	t.Cleanup(func() { pm.Close() })

	f, err := syntax.Parse(pm, "test.jsx", []byte(src))
	require.NoError(t, err)
	t.Cleanup(f.Close)
	return f
}

// lastValue returns the right-hand side of the last top-level assignment.
func lastValue(f *syntax.File) *ts.Node {
	stmts := f.TopLevelStatements()
	expr := stmts[len(stmts)-1].NamedChild(0)
	return expr.ChildByFieldName("right")
}

func translateExpr(t *testing.T, expr string) string {
	t.Helper()
	f := parse(t, "import PropTypes from 'prop-types';\nx = "+expr+";\n")
	vocab := DefaultVocabulary()
	return typeexpr.Render(Translate(Decode(f, lastValue(f), vocab), vocab))
}

func TestTranslatePrimitives(t *testing.T) {
	tests := []struct {
		tag  string
		want string
	}{
		{"string", "string"},
		{"bool", "boolean"},
		{"number", "number"},
		{"object", "object"},
		{"array", "any[]"},
		{"func", "(...args: any[]) => any"},
		{"node", "React.ReactNode"},
		{"element", "JSX.Element"},
		{"any", "any"},
		{"symbol", "any"},
	}

	for _, tt := range tests {
		t.Run(tt.tag, func(t *testing.T) {
			assert.Equal(t, tt.want, translateExpr(t, "PropTypes."+tt.tag))
			assert.Equal(t, tt.want, translateExpr(t, "PropTypes."+tt.tag+".isRequired"))
		})
	}
}

func TestTranslateCombinators(t *testing.T) {
	tests := []struct {
		expr string
		want string
	}{
		{"PropTypes.oneOf(['a', 'b', 3])", "'a' | 'b' | 3"},
		{"PropTypes.oneOf([a, 'b'])", "any"},
		{"PropTypes.oneOf(values)", "any"},
		{"PropTypes.oneOfType([PropTypes.string, PropTypes.number, PropTypes.string])", "string | number"},
		{"PropTypes.arrayOf(PropTypes.number)", "number[]"},
		{"PropTypes.arrayOf(PropTypes.oneOfType([PropTypes.string, PropTypes.func]))", "(string | ((...args: any[]) => any))[]"},
		{"PropTypes.objectOf(PropTypes.bool)", "{ [key: string]: boolean; }"},
		{"PropTypes.shape({ a: PropTypes.string.isRequired, b: PropTypes.number })", "{ a: string; b: number | undefined; }"},
		{"PropTypes.shape(other)", "any"},
		{"PropTypes.instanceOf(Date)", "any"},
		{"React.PropTypes.string", "string"},
		{"customValidator", "any"},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			assert.Equal(t, tt.want, translateExpr(t, tt.expr))
		})
	}
}

func TestLibraryRootsFollowLocalNames(t *testing.T) {
	f := parse(t, "import T from 'prop-types';\nconst P = require('prop-types');\nx = { a: T.string.isRequired, b: P.number.isRequired };\n")
	vocab := DefaultVocabulary()

	assert.Contains(t, vocab.LibraryRoots(f), "T")
	assert.Contains(t, vocab.LibraryRoots(f), "P")
	assert.Equal(t, "{ a: string; b: number; }", typeexpr.Render(BuildShape(f, lastValue(f), vocab)))
}

func TestBuildShape(t *testing.T) {
	f := parse(t, `x = {
  children: PropTypes.node,
  name: PropTypes.string.isRequired,
  'data-id': PropTypes.number,
  onClick: PropTypes.func,
  ...rest,
  shorthand,
  method() {},
  [computed]: PropTypes.string,
};
`)
	shape := BuildShape(f, lastValue(f), DefaultVocabulary())

	want := &typeexpr.Shape{Fields: []typeexpr.Field{
		{Name: "name", Type: typeexpr.String},
		{Name: "'data-id'", Type: typeexpr.Optional(typeexpr.Number)},
		{Name: "onClick", Type: typeexpr.Optional(typeexpr.AnyFunction())},
	}}
	if diff := cmp.Diff(want, shape); diff != "" {
		t.Errorf("BuildShape mismatch (-want +got):\n%s", diff)
	}
}

func TestOptionalNeverBare(t *testing.T) {
	for _, tag := range []string{"string", "bool", "number", "object", "array", "func", "node", "element", "any"} {
		f := parse(t, "x = { p: PropTypes."+tag+" };\n")
		shape := BuildShape(f, lastValue(f), DefaultVocabulary())
		require.Len(t, shape.Fields, 1)

		u, ok := shape.Fields[0].Type.(typeexpr.Union)
		require.True(t, ok, "optional %s should be a union", tag)
		assert.Equal(t, typeexpr.Undefined, u.Members[len(u.Members)-1])
		assert.False(t, shape.Fields[0].Optional)
	}
}

// The shape combinator and the object builder must agree field for field.
func TestShapeCombinatorMatchesBuilder(t *testing.T) {
	objects := []string{
		"{}",
		"{ a: PropTypes.string }",
		"{ a: PropTypes.string.isRequired, b: PropTypes.arrayOf(PropTypes.number).isRequired, c: PropTypes.oneOf(['x']) }",
		"{ children: PropTypes.node, nested: PropTypes.shape({ d: PropTypes.bool }).isRequired }",
	}

	for _, obj := range objects {
		t.Run(obj, func(t *testing.T) {
			f := parse(t, "a = "+obj+";\nb = PropTypes.shape("+obj+");\n")
			vocab := DefaultVocabulary()
			stmts := f.TopLevelStatements()

			direct := BuildShape(f, stmts[0].NamedChild(0).ChildByFieldName("right"), vocab)
			viaCombinator := Translate(Decode(f, stmts[1].NamedChild(0).ChildByFieldName("right"), vocab), vocab)

			if diff := cmp.Diff(typeexpr.Type(direct), viaCombinator); diff != "" {
				t.Errorf("shape paths diverge (-builder +combinator):\n%s", diff)
			}
		})
	}
}

func TestVocabularyWithDefaults(t *testing.T) {
	v := Vocabulary{NodeType: "ReactNode"}.WithDefaults()
	assert.Equal(t, "ReactNode", v.NodeType)
	assert.Equal(t, "setState", v.StateMethod)
	assert.Equal(t, []string{"PropTypes", "React.PropTypes"}, v.LibraryNames)
}
