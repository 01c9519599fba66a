package syntax

import (
	ts "github.com/tree-sitter/go-tree-sitter"
)

// Children returns every child of n, anonymous tokens included.
func Children(n *ts.Node) []*ts.Node {
	if n == nil {
		return nil
	}
	out := make([]*ts.Node, 0, n.ChildCount())
	for i := uint(0); i < n.ChildCount(); i++ {
		out = append(out, n.Child(i))
	}
	return out
}

// NamedChildren returns the named children of n, skipping comments.
func NamedChildren(n *ts.Node) []*ts.Node {
	if n == nil {
		return nil
	}
	out := make([]*ts.Node, 0, n.NamedChildCount())
	for i := uint(0); i < n.NamedChildCount(); i++ {
		child := n.NamedChild(i)
		if child.Kind() == "comment" {
			continue
		}
		out = append(out, child)
	}
	return out
}

// Walk visits n and its descendants in pre-order. Returning false from fn
// skips the children of the node just visited.
func Walk(n *ts.Node, fn func(*ts.Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	for i := uint(0); i < n.ChildCount(); i++ {
		Walk(n.Child(i), fn)
	}
}

// SameNode reports whether a and b are the same node of one tree.
func SameNode(a, b *ts.Node) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Id() == b.Id()
}

// TopLevelStatement returns the ancestor of n (or n itself) whose parent
// is the program node.
func TopLevelStatement(n *ts.Node) *ts.Node {
	for n != nil {
		parent := n.Parent()
		if parent == nil {
			return nil
		}
		if parent.Kind() == "program" {
			return n
		}
		n = parent
	}
	return nil
}

// TopLevelStatements returns the statements of the program in order.
func (f *File) TopLevelStatements() []*ts.Node {
	return NamedChildren(f.Root())
}

// Unwrap returns the declaration inside an export statement, or stmt itself.
func Unwrap(stmt *ts.Node) *ts.Node {
	if stmt != nil && stmt.Kind() == "export_statement" {
		if decl := stmt.ChildByFieldName("declaration"); decl != nil {
			return decl
		}
	}
	return stmt
}

// IsDefaultExport reports whether stmt is `export default <declaration>`.
func IsDefaultExport(stmt *ts.Node) bool {
	if stmt == nil || stmt.Kind() != "export_statement" {
		return false
	}
	for _, c := range Children(stmt) {
		if c.Kind() == "default" {
			return true
		}
	}
	return false
}

// Classes returns every class declaration at the top level of the file,
// looking through export statements.
func (f *File) Classes() []*ts.Node {
	var out []*ts.Node
	for _, stmt := range f.TopLevelStatements() {
		if decl := Unwrap(stmt); IsClassDeclaration(decl) {
			out = append(out, decl)
		}
	}
	return out
}

// FindClass returns the top-level class declaration named name.
func (f *File) FindClass(name string) *ts.Node {
	for _, class := range f.Classes() {
		if f.Field(class, "name") == name {
			return class
		}
	}
	return nil
}

// Unquote returns the contents of a string literal node.
func (f *File) Unquote(n *ts.Node) string {
	text := f.Text(n)
	if len(text) >= 2 {
		switch text[0] {
		case '"', '\'', '`':
			if text[len(text)-1] == text[0] {
				return text[1 : len(text)-1]
			}
		}
	}
	return text
}
