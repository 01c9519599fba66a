package transform

import (
	"strings"

	ts "github.com/tree-sitter/go-tree-sitter"

	"github.com/gnana997/react2ts/pkg/syntax"
)

// HoistPropTypes moves `Name.propTypes = <expr>` into class Name as
// `static propTypes = <expr>;`, the first member of the class body, and
// deletes the assignment. Assignments naming no class are left alone, as
// are classes that already declare a static propTypes.
func HoistPropTypes(ctx *Context) Transform {
	return func(f *syntax.File) (*syntax.File, error) {
		var edits []syntax.Edit
		done := make(map[string]bool)

		for _, a := range f.RuntimePropTypeAssignments() {
			if !a.Simple || done[a.Component] {
				continue
			}
			class := f.FindClass(a.Component)
			if class == nil {
				continue
			}
			if field, getter := staticPropTypes(f, class); field != nil || getter != nil {
				ctx.Logger.Debug("class already declares propTypes, not hoisting",
					"file", f.Path, "component", a.Component)
				continue
			}
			done[a.Component] = true

			edits = append(edits, hoistInto(f, class, a), f.RemoveNode(a.Statement))
			ctx.Logger.Debug("hoisted propTypes", "file", f.Path, "component", a.Component)
		}
		return f.Apply(edits)
	}
}

func hoistInto(f *syntax.File, class *ts.Node, a syntax.PropTypesAssignment) syntax.Edit {
	body := class.ChildByFieldName("body")
	classIndent := syntax.IndentAt(f.Source, class.StartByte())

	indent := classIndent + syntax.DetectIndent(f.Source)
	members := syntax.ClassMembers(class)
	if len(members) > 0 {
		indent = syntax.IndentAt(f.Source, members[0].StartByte())
	}

	value := syntax.Reindent(f.Text(a.Value), syntax.IndentAt(f.Source, a.Statement.StartByte()), indent)

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(indent)
	b.WriteString("static propTypes = ")
	b.WriteString(value)
	b.WriteString(";")
	if len(members) == 0 && !strings.Contains(f.Text(body), "\n") {
		b.WriteString("\n")
		b.WriteString(classIndent)
	}
	return syntax.Insert(body.StartByte()+1, b.String())
}
