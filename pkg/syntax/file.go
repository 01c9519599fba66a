// Package syntax holds the source file model shared by every transform pass:
// a parsed tree over immutable bytes, byte-range edits that produce a new
// file, and the node predicates the passes classify components with.
package syntax

import (
	"errors"
	"fmt"
	"sync/atomic"

	ts "github.com/tree-sitter/go-tree-sitter"

	"github.com/gnana997/react2ts/pkg/parser"
)

// ErrParse is returned when a source cannot be turned into a tree.
var ErrParse = errors.New("parse failed")

var generations atomic.Uint64

// File is one parsed source file. Source and Tree are never mutated;
// Apply produces a new File and leaves the receiver usable.
type File struct {
	Path   string
	Source []byte
	Tree   *ts.Tree

	// Generation is unique per parse and keys caches bound to one tree.
	Generation uint64

	pm *parser.ParserManager
}

// Parse parses src with the TSX grammar. The caller owns the returned File
// and must Close it.
func Parse(pm *parser.ParserManager, path string, src []byte) (*File, error) {
	if pm == nil {
		return nil, fmt.Errorf("%w: nil parser manager", ErrParse)
	}
	tree, err := pm.ParseTSX(src)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrParse, path, err)
	}
	return &File{
		Path:       path,
		Source:     src,
		Tree:       tree,
		Generation: generations.Add(1),
		pm:         pm,
	}, nil
}

// Root returns the program node.
func (f *File) Root() *ts.Node {
	return f.Tree.RootNode()
}

// Text returns the source text covered by n, or "" for a nil node.
func (f *File) Text(n *ts.Node) string {
	if n == nil {
		return ""
	}
	return n.Utf8Text(f.Source)
}

// Field returns the text of n's child in the named field.
func (f *File) Field(n *ts.Node, name string) string {
	if n == nil {
		return ""
	}
	return f.Text(n.ChildByFieldName(name))
}

// Diagnostic describes the first syntax error in a tree.
type Diagnostic struct {
	Line   int
	Column int
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%d:%d", d.Line, d.Column)
}

// FirstError reports the first ERROR or MISSING node, 1-based.
func (f *File) FirstError() (Diagnostic, bool) {
	pos, ok := parser.FirstErrorPosition(f.Root())
	if !ok {
		return Diagnostic{}, false
	}
	return Diagnostic{Line: int(pos.Row) + 1, Column: int(pos.Column) + 1}, true
}

// Close releases the tree. Safe to call on a nil File.
func (f *File) Close() {
	if f == nil || f.Tree == nil {
		return
	}
	f.Tree.Close()
	f.Tree = nil
}
