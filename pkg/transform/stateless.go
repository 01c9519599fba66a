package transform

import (
	"strings"

	ts "github.com/tree-sitter/go-tree-sitter"

	"github.com/gnana997/react2ts/pkg/proptypes"
	"github.com/gnana997/react2ts/pkg/syntax"
)

// InferStatelessTypes types function components that have a
// `Name.propTypes = {...}` assignment. A function declaration becomes
// `const Name: React.FC<NameProps> = (params) => body;`; a variable
// initialised with a function only gains the annotation. The assignment
// itself is kept.
func InferStatelessTypes(ctx *Context) Transform {
	return func(f *syntax.File) (*syntax.File, error) {
		var edits []syntax.Edit
		done := make(map[string]bool)

		for _, a := range f.RuntimePropTypeAssignments() {
			obj := syntax.StripParens(a.Value)
			if !a.Simple || done[a.Component] || !syntax.IsObjectLiteral(obj) {
				continue
			}
			stmt, decl := findFunctionComponent(f, a.Component)
			if decl == nil {
				continue
			}
			done[a.Component] = true

			props := proptypes.BuildShape(f, obj, ctx.Vocabulary)
			arg, emit := typeArgument(props, a.Component+"Props")
			typeText := ctx.Vocabulary.StatelessType + "<" + arg + ">"

			if emit {
				edits = append(edits, syntax.Insert(stmt.StartByte(), aliasText(f, stmt, arg, props)))
			}
			edits = append(edits, rewriteComponent(f, stmt, decl, a.Component, typeText))

			ctx.Logger.Debug("typed function component",
				"file", f.Path, "component", a.Component, "props", arg)
		}
		return f.Apply(edits)
	}
}

// findFunctionComponent returns the top-level statement declaring name as
// a function, and the declaration inside it: a function declaration, or a
// variable declarator whose initializer is a function. Declarations that
// already carry a type annotation are not returned.
func findFunctionComponent(f *syntax.File, name string) (stmt, decl *ts.Node) {
	for _, s := range f.TopLevelStatements() {
		d := syntax.Unwrap(s)
		if syntax.IsDefaultExport(s) && d == s {
			d = syntax.StripParens(s.ChildByFieldName("value"))
		}
		switch {
		case syntax.IsFunctionExpression(d) && syntax.IsDefaultExport(s):
			if f.Field(d, "name") == name && d.ChildByFieldName("type_parameters") == nil {
				return s, d
			}
		case syntax.IsFunctionDeclaration(d):
			if f.Field(d, "name") == name && d.ChildByFieldName("type_parameters") == nil {
				return s, d
			}
		case syntax.IsVariableStatement(d):
			declarators := syntax.NamedChildren(d)
			if len(declarators) != 1 || declarators[0].Kind() != "variable_declarator" {
				continue
			}
			v := declarators[0]
			if f.Field(v, "name") != name || v.ChildByFieldName("type") != nil {
				continue
			}
			init := syntax.StripParens(v.ChildByFieldName("value"))
			if syntax.IsArrowFunction(init) || syntax.IsFunctionExpression(init) {
				return s, v
			}
		}
	}
	return nil, nil
}

func rewriteComponent(f *syntax.File, stmt, decl *ts.Node, name, typeText string) syntax.Edit {
	if decl.Kind() == "variable_declarator" {
		return syntax.Insert(decl.ChildByFieldName("name").EndByte(), ": "+typeText)
	}

	var b strings.Builder
	b.WriteString("const ")
	b.WriteString(name)
	b.WriteString(": ")
	b.WriteString(typeText)
	b.WriteString(" = ")
	if syntax.IsAsync(decl) {
		b.WriteString("async ")
	}
	b.WriteString(f.Field(decl, "parameters"))
	if rt := decl.ChildByFieldName("return_type"); rt != nil {
		b.WriteString(f.Text(rt))
	}
	b.WriteString(" => ")
	b.WriteString(f.Field(decl, "body"))
	b.WriteString(";")

	// `export default const` is not valid, so the export moves to its own
	// statement.
	if syntax.IsDefaultExport(stmt) {
		indent := syntax.IndentAt(f.Source, stmt.StartByte())
		b.WriteString("\n")
		b.WriteString(indent)
		b.WriteString("export default ")
		b.WriteString(name)
		b.WriteString(";")
		return syntax.Replace(stmt, b.String())
	}
	return syntax.Replace(decl, b.String())
}
