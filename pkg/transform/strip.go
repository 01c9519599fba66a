package transform

import (
	"strings"

	ts "github.com/tree-sitter/go-tree-sitter"

	"github.com/gnana997/react2ts/pkg/syntax"
)

// StripPropTypesAssignments removes every top-level `X.propTypes = ...`
// and `X.propTypes.field = ...` statement.
func StripPropTypesAssignments(ctx *Context) Transform {
	return func(f *syntax.File) (*syntax.File, error) {
		var edits []syntax.Edit
		for _, a := range f.RuntimePropTypeAssignments() {
			edits = append(edits, f.RemoveNode(a.Statement))
		}
		if len(edits) > 0 {
			ctx.Logger.Debug("removed propTypes assignments", "file", f.Path, "count", len(edits))
		}
		return f.Apply(edits)
	}
}

// StripStaticPropTypes removes static propTypes fields and getters from
// component classes.
func StripStaticPropTypes(ctx *Context) Transform {
	return func(f *syntax.File) (*syntax.File, error) {
		var edits []syntax.Edit
		syntax.Walk(f.Root(), func(n *ts.Node) bool {
			if !syntax.IsClassDeclaration(n) || !f.IsComponentClass(n, ctx.Oracle, ctx.Vocabulary.BaseComponent) {
				return true
			}
			for _, m := range syntax.ClassMembers(n) {
				if !syntax.HasStaticModifier(m) || !f.IsNamedPropTypesMember(m) {
					continue
				}
				if syntax.IsFieldDefinition(m) || syntax.IsGetter(m) {
					edits = append(edits, removeMember(f, m))
				}
			}
			return true
		})
		return f.Apply(edits)
	}
}

// StripPropTypesImports removes imports (and requires) of the prop-types
// module, and the PropTypes binding from framework imports. A framework
// import left without named bindings keeps its default binding, or is
// removed when it has none.
func StripPropTypesImports(ctx *Context) Transform {
	return func(f *syntax.File) (*syntax.File, error) {
		vocab := ctx.Vocabulary
		var edits []syntax.Edit

		for _, stmt := range f.TopLevelStatements() {
			switch {
			case syntax.IsImportStatement(stmt):
				switch f.Unquote(stmt.ChildByFieldName("source")) {
				case vocab.LibraryModule:
					edits = append(edits, f.RemoveNode(stmt))
				case vocab.BaseModule:
					if e, ok := stripNamedBinding(f, stmt, bareLibraryNames(vocab.LibraryNames)); ok {
						edits = append(edits, e)
					}
				}
			case syntax.IsVariableStatement(stmt):
				if isLibraryRequire(f, stmt, vocab.LibraryModule) {
					edits = append(edits, f.RemoveNode(stmt))
				}
			}
		}
		return f.Apply(edits)
	}
}

// bareLibraryNames keeps the names that can appear as import specifiers.
func bareLibraryNames(names []string) map[string]bool {
	out := make(map[string]bool)
	for _, n := range names {
		if !strings.Contains(n, ".") {
			out[n] = true
		}
	}
	return out
}

func stripNamedBinding(f *syntax.File, stmt *ts.Node, names map[string]bool) (syntax.Edit, bool) {
	var clause, named, def *ts.Node
	for _, c := range syntax.NamedChildren(stmt) {
		if c.Kind() == "import_clause" {
			clause = c
		}
	}
	for _, c := range syntax.NamedChildren(clause) {
		switch c.Kind() {
		case "named_imports":
			named = c
		case "identifier":
			def = c
		}
	}
	if named == nil {
		return syntax.Edit{}, false
	}

	var kept []string
	removed := false
	for _, spec := range syntax.NamedChildren(named) {
		if spec.Kind() == "import_specifier" && names[f.Field(spec, "name")] {
			removed = true
			continue
		}
		kept = append(kept, f.Text(spec))
	}
	switch {
	case !removed:
		return syntax.Edit{}, false
	case len(kept) > 0:
		return syntax.Replace(named, "{ "+strings.Join(kept, ", ")+" }"), true
	case def != nil:
		return syntax.Replace(clause, f.Text(def)), true
	}
	return f.RemoveNode(stmt), true
}

func isLibraryRequire(f *syntax.File, stmt *ts.Node, module string) bool {
	declarators := syntax.NamedChildren(stmt)
	if len(declarators) != 1 {
		return false
	}
	call := syntax.StripParens(declarators[0].ChildByFieldName("value"))
	if !syntax.IsCallExpression(call) || f.Field(call, "function") != "require" {
		return false
	}
	args := syntax.NamedChildren(call.ChildByFieldName("arguments"))
	return len(args) == 1 && syntax.IsStringLiteral(args[0]) && f.Unquote(args[0]) == module
}
