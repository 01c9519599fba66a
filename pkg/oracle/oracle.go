// Package oracle answers type queries about expressions in a parsed file.
//
// There is no type checker behind it: types are inferred syntactically from
// literals, operators and the declarations identifiers resolve to, and
// anything beyond that is reported as any. Callers must treat every answer
// as a best effort.
package oracle

import (
	"log/slog"

	lru "github.com/hashicorp/golang-lru/v2"
	ts "github.com/tree-sitter/go-tree-sitter"

	"github.com/gnana997/react2ts/pkg/proptypes"
	"github.com/gnana997/react2ts/pkg/syntax"
	"github.com/gnana997/react2ts/pkg/typeexpr"
)

// Oracle is the type-query service passes consult.
type Oracle interface {
	// TypeOf returns the static type of an expression node.
	TypeOf(f *syntax.File, n *ts.Node) typeexpr.Type
	// SymbolName resolves an expression to the exported name it refers to,
	// or "" when it cannot be resolved.
	SymbolName(f *syntax.File, n *ts.Node) string
}

// DefaultCacheSize bounds the memo of TypeOf answers.
const DefaultCacheSize = 4096

// maxDepth bounds identifier chasing through declarations.
const maxDepth = 16

type cacheKey struct {
	generation uint64
	node       uintptr
}

// Syntactic is the built-in Oracle. It is safe for concurrent use.
type Syntactic struct {
	vocab  proptypes.Vocabulary
	cache  *lru.Cache[cacheKey, typeexpr.Type]
	logger *slog.Logger
}

var _ Oracle = (*Syntactic)(nil)

// New creates a syntactic oracle. cacheSize <= 0 uses DefaultCacheSize.
func New(vocab proptypes.Vocabulary, cacheSize int, logger *slog.Logger) *Syntactic {
	if logger == nil {
		logger = slog.Default()
	}
	if cacheSize <= 0 {
		cacheSize = DefaultCacheSize
	}
	cache, err := lru.New[cacheKey, typeexpr.Type](cacheSize)
	if err != nil {
		// Only reachable with a non-positive size.
		panic(err)
	}
	return &Syntactic{
		vocab:  vocab.WithDefaults(),
		cache:  cache,
		logger: logger,
	}
}

// TypeOf implements Oracle.
func (o *Syntactic) TypeOf(f *syntax.File, n *ts.Node) typeexpr.Type {
	if n == nil {
		return typeexpr.Any
	}
	key := cacheKey{generation: f.Generation, node: n.Id()}
	if t, ok := o.cache.Get(key); ok {
		return t
	}
	t := o.typeOf(f, n, 0)
	o.cache.Add(key, t)
	return t
}

// CacheLen reports how many answers are memoised.
func (o *Syntactic) CacheLen() int {
	return o.cache.Len()
}

// SymbolName implements Oracle. It follows imports from the framework
// module: a named import resolves to its imported name, and a member of
// a default or namespace import resolves to the member. Local class
// declarations resolve to themselves.
func (o *Syntactic) SymbolName(f *syntax.File, n *ts.Node) string {
	n = syntax.StripParens(n)
	switch {
	case syntax.IsKind(n, "identifier"):
		name := f.Text(n)
		for _, b := range o.frameworkBindings(f) {
			if b.local == name {
				return b.imported
			}
		}
		if f.FindClass(name) != nil {
			return name
		}
	case syntax.IsMemberExpression(n):
		object := n.ChildByFieldName("object")
		if !syntax.IsKind(object, "identifier") {
			return ""
		}
		name := f.Text(object)
		for _, b := range o.frameworkBindings(f) {
			if b.local == name && b.module {
				return f.Field(n, "property")
			}
		}
	}
	return ""
}

type binding struct {
	local    string
	imported string
	// module is set for default and namespace imports.
	module bool
}

func (o *Syntactic) frameworkBindings(f *syntax.File) []binding {
	var out []binding
	for _, stmt := range f.TopLevelStatements() {
		if !syntax.IsImportStatement(stmt) || f.Unquote(stmt.ChildByFieldName("source")) != o.vocab.BaseModule {
			continue
		}
		for _, clause := range syntax.NamedChildren(stmt) {
			if clause.Kind() != "import_clause" {
				continue
			}
			for _, c := range syntax.NamedChildren(clause) {
				switch c.Kind() {
				case "identifier":
					out = append(out, binding{local: f.Text(c), module: true})
				case "namespace_import":
					if id := c.NamedChild(0); id != nil {
						out = append(out, binding{local: f.Text(id), module: true})
					}
				case "named_imports":
					for _, spec := range syntax.NamedChildren(c) {
						if spec.Kind() != "import_specifier" {
							continue
						}
						imported := f.Field(spec, "name")
						local := imported
						if alias := spec.ChildByFieldName("alias"); alias != nil {
							local = f.Text(alias)
						}
						out = append(out, binding{local: local, imported: imported})
					}
				}
			}
		}
	}
	return out
}
