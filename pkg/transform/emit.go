package transform

import (
	ts "github.com/tree-sitter/go-tree-sitter"

	"github.com/gnana997/react2ts/pkg/syntax"
	"github.com/gnana997/react2ts/pkg/typeexpr"
)

// anchor returns the statement a declaration's aliases go in front of:
// the enclosing export statement when there is one.
func anchor(decl *ts.Node) *ts.Node {
	if parent := decl.Parent(); syntax.IsKind(parent, "export_statement") {
		return parent
	}
	return decl
}

// aliasText renders `type name = t;` followed by a line break that puts
// the anchored statement back at its own indentation.
func aliasText(f *syntax.File, at *ts.Node, name string, t typeexpr.Type) string {
	indent := syntax.IndentAt(f.Source, at.StartByte())
	body := syntax.Reindent(typeexpr.Format(t, syntax.DetectIndent(f.Source)), "", indent)
	return "type " + name + " = " + body + ";\n" + indent
}

// typeArgument returns the alias name for a non-empty shape, or the
// inline type when the shape is empty.
func typeArgument(t typeexpr.Type, alias string) (string, bool) {
	if s, ok := t.(*typeexpr.Shape); ok && s.Empty() {
		return "{}", false
	}
	return alias, true
}

// removeMember deletes a class member together with a trailing `;` token.
func removeMember(f *syntax.File, member *ts.Node) syntax.Edit {
	end := member.EndByte()
	if next := member.NextSibling(); next != nil && next.Kind() == ";" {
		end = next.EndByte()
	}
	start, end := syntax.ExpandToLines(f.Source, member.StartByte(), end)
	return syntax.Delete(start, end)
}

// staticPropTypes returns the static propTypes member of a class, field
// form first, then getter form.
func staticPropTypes(f *syntax.File, class *ts.Node) (field, getter *ts.Node) {
	for _, m := range syntax.ClassMembers(class) {
		if !syntax.HasStaticModifier(m) || !f.IsNamedPropTypesMember(m) {
			continue
		}
		switch {
		case syntax.IsFieldDefinition(m) && field == nil:
			field = m
		case syntax.IsGetter(m) && getter == nil:
			getter = m
		}
	}
	return field, getter
}
