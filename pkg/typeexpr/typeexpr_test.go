package typeexpr

import (
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gnana997/react2ts/pkg/parser"
)

// readAlias parses `type T = <text>;` and reads the alias value.
func readAlias(t *testing.T, text string) Type {
	t.Helper()
	pm := parser.NewParserManager(nil)
	defer pm.Close()

	src := []byte("type T = " + text + ";\n")
	tree, err := pm.ParseTSX(src)
	require.NoError(t, err)
	defer tree.Close()

	alias := tree.RootNode().NamedChild(0)
	require.Equal(t, "type_alias_declaration", alias.Kind())
	return Read(src, alias.ChildByFieldName("value"))
}

func TestRender(t *testing.T) {
	tests := []struct {
		name string
		in   Type
		want string
	}{
		{"keyword", Number, "number"},
		{"optional", Optional(String), "string | undefined"},
		{"function in union", Optional(AnyFunction()), "((...args: any[]) => any) | undefined"},
		{"union in array", ArrayOf(NewUnion(String, Number)), "(string | number)[]"},
		{"union in intersection", NewIntersection(NewUnion(String, Number), Named("Foo")), "(string | number) & Foo"},
		{"ref with args", Named("React.FC", Named("FooProps")), "React.FC<FooProps>"},
		{"empty shape", EmptyShape(), "{}"},
		{"record", Record(Number), "{ [key: string]: number; }"},
		{
			"shape",
			&Shape{Fields: []Field{{Name: "foo", Type: Number}, {Name: "bar", Type: String, Optional: true}}},
			"{ foo: number; bar?: string; }",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Render(tt.in))
		})
	}
}

func TestFormatBreaksLargeShapes(t *testing.T) {
	small := &Shape{Fields: []Field{{Name: "foo", Type: Number}, {Name: "bar", Type: Number}}}
	assert.Equal(t, "{ foo: number; bar: number; }", Format(small, "  "))

	nested := &Shape{Fields: []Field{
		{Name: "a", Type: String},
		{Name: "b", Type: Optional(&Shape{Fields: []Field{{Name: "c", Type: Number}}})},
	}}
	want := "{\n" +
		"    a: string;\n" +
		"    b: { c: number; } | undefined;\n" +
		"}"
	assert.Equal(t, want, Format(nested, "    "))
}

func TestNewUnion(t *testing.T) {
	u := NewUnion(String, NewUnion(Number, String), Undefined, Number)
	assert.Equal(t, "string | number | undefined", Render(u))
	assert.Equal(t, String, NewUnion(String, String))
	assert.Equal(t, Never, NewUnion())
}

func TestRead(t *testing.T) {
	tests := []struct {
		text string
		want Type
	}{
		{"string", String},
		{"'a' | 'b'", Union{Members: []Type{Literal{Text: "'a'"}, Literal{Text: "'b'"}}}},
		{"number | undefined", Union{Members: []Type{Number, Undefined}}},
		{"Foo[]", Array{Elem: Ref{Name: "Foo"}}},
		{"React.ReactNode", Ref{Name: "React.ReactNode"}},
		{"Array<string>", Ref{Name: "Array", Args: []Type{String}}},
		{"(...args: any[]) => any", AnyFunction()},
		{"{ a: string; b?: number }", &Shape{Fields: []Field{
			{Name: "a", Type: String},
			{Name: "b", Type: Number, Optional: true},
		}}},
		{"{ [key: string]: number }", Record(Number)},
		{"{ a: 1 } & { b: 2 } & Foo", Intersection{Members: []Type{
			&Shape{Fields: []Field{{Name: "a", Type: Literal{Text: "1"}}}},
			&Shape{Fields: []Field{{Name: "b", Type: Literal{Text: "2"}}}},
			Ref{Name: "Foo"},
		}}},
		{"[string, number]", Raw{Text: "[string, number]"}},
		{"{ m(): void }", Raw{Text: "{ m(): void }"}},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got := readAlias(t, tt.text)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Read(%q) mismatch (-want +got):\n%s", tt.text, diff)
			}
		})
	}
}

func TestCollapse(t *testing.T) {
	got, ok := Collapse(readAlias(t, "{ foo: number; } & { bar: number; } & { foo: string; bar: number; }"))
	require.True(t, ok)
	assert.Equal(t, "{ foo: number | string; bar: number; }", Render(got))

	t.Run("nested intersections", func(t *testing.T) {
		in := NewIntersection(
			&Shape{Fields: []Field{{Name: "a", Type: String}}},
			Intersection{Members: []Type{&Shape{Fields: []Field{{Name: "b", Type: Number}}}}},
		)
		got, ok := Collapse(in)
		require.True(t, ok)
		assert.Equal(t, "{ a: string; b: number; }", Render(got))
	})

	t.Run("optional only when optional everywhere", func(t *testing.T) {
		got, ok := Collapse(readAlias(t, "{ a?: string } & { a: string; b?: number } & { b?: number }"))
		require.True(t, ok)
		assert.Equal(t, "{ a: string; b?: number; }", Render(got))
	})

	t.Run("index signatures", func(t *testing.T) {
		got, ok := Collapse(readAlias(t, "{ [k: string]: number } & { [k: string]: string; a: boolean }"))
		require.True(t, ok)
		assert.Equal(t, "{ [k: string]: number | string; a: boolean; }", Render(got))
	})

	t.Run("non-shape member", func(t *testing.T) {
		in := readAlias(t, "{ a: string } & Foo")
		got, ok := Collapse(in)
		assert.False(t, ok)
		assert.True(t, Equal(in, got))
	})

	t.Run("union member", func(t *testing.T) {
		_, ok := Collapse(readAlias(t, "{ a: string } & ({ b: number } | undefined)"))
		assert.False(t, ok)
	})

	t.Run("not an intersection", func(t *testing.T) {
		_, ok := Collapse(String)
		assert.False(t, ok)
	})
}

func TestCollapseIsOrderIndependent(t *testing.T) {
	a := &Shape{Fields: []Field{{Name: "a", Type: String}}}
	b := &Shape{Fields: []Field{{Name: "b", Type: Number}}}

	ab, ok := Collapse(NewIntersection(a, b))
	require.True(t, ok)
	ba, ok := Collapse(NewIntersection(b, a))
	require.True(t, ok)

	sorted := func(s *Shape) []Field {
		out := append([]Field(nil), s.Fields...)
		sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
		return out
	}
	if diff := cmp.Diff(sorted(ab.(*Shape)), sorted(ba.(*Shape))); diff != "" {
		t.Errorf("collapse depends on member order (-ab +ba):\n%s", diff)
	}
}
