package transform

import (
	ts "github.com/tree-sitter/go-tree-sitter"

	"github.com/gnana997/react2ts/pkg/syntax"
	"github.com/gnana997/react2ts/pkg/typeexpr"
)

// CollapseIntersections rewrites type aliases whose value intersects only
// plain object types into a single object type.
func CollapseIntersections(ctx *Context) Transform {
	return func(f *syntax.File) (*syntax.File, error) {
		var edits []syntax.Edit
		unit := syntax.DetectIndent(f.Source)

		syntax.Walk(f.Root(), func(n *ts.Node) bool {
			if !syntax.IsTypeAlias(n) {
				return true
			}
			value := n.ChildByFieldName("value")
			if !syntax.IsKind(value, "intersection_type") {
				return false
			}
			collapsed, ok := typeexpr.Collapse(typeexpr.Read(f.Source, value))
			if !ok {
				ctx.Logger.Debug("intersection kept", "file", f.Path, "alias", f.Field(n, "name"))
				return false
			}
			indent := syntax.IndentAt(f.Source, n.StartByte())
			edits = append(edits, syntax.Replace(value, syntax.Reindent(typeexpr.Format(collapsed, unit), "", indent)))
			return false
		})
		return f.Apply(edits)
	}
}
