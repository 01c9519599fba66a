package proptypes

import (
	"strings"

	ts "github.com/tree-sitter/go-tree-sitter"

	"github.com/gnana997/react2ts/pkg/syntax"
)

// Vocabulary names the framework and library spellings the converter
// recognises and emits.
type Vocabulary struct {
	// LibraryNames are the expressions the validation combinators hang off.
	LibraryNames []string `mapstructure:"library_names" yaml:"library_names"`
	// LibraryModule is the module the validation library is imported from.
	LibraryModule string `mapstructure:"library_module" yaml:"library_module"`
	// BaseModule is the UI framework module.
	BaseModule string `mapstructure:"base_module" yaml:"base_module"`
	// BaseComponent is the class name component classes extend.
	BaseComponent string `mapstructure:"base_component" yaml:"base_component"`
	// StateMethod is the per-instance state update method.
	StateMethod string `mapstructure:"state_method" yaml:"state_method"`

	NodeType      string `mapstructure:"node_type" yaml:"node_type"`
	ElementType   string `mapstructure:"element_type" yaml:"element_type"`
	StatelessType string `mapstructure:"stateless_type" yaml:"stateless_type"`
}

// DefaultVocabulary returns the React spellings.
func DefaultVocabulary() Vocabulary {
	return Vocabulary{
		LibraryNames:  []string{"PropTypes", "React.PropTypes"},
		LibraryModule: "prop-types",
		BaseModule:    "react",
		BaseComponent: "Component",
		StateMethod:   "setState",
		NodeType:      "React.ReactNode",
		ElementType:   "JSX.Element",
		StatelessType: "React.FC",
	}
}

// WithDefaults fills empty fields from DefaultVocabulary.
func (v Vocabulary) WithDefaults() Vocabulary {
	d := DefaultVocabulary()
	if len(v.LibraryNames) == 0 {
		v.LibraryNames = d.LibraryNames
	}
	if v.LibraryModule == "" {
		v.LibraryModule = d.LibraryModule
	}
	if v.BaseModule == "" {
		v.BaseModule = d.BaseModule
	}
	if v.BaseComponent == "" {
		v.BaseComponent = d.BaseComponent
	}
	if v.StateMethod == "" {
		v.StateMethod = d.StateMethod
	}
	if v.NodeType == "" {
		v.NodeType = d.NodeType
	}
	if v.ElementType == "" {
		v.ElementType = d.ElementType
	}
	if v.StatelessType == "" {
		v.StatelessType = d.StatelessType
	}
	return v
}

// LibraryRoots returns every spelling of the validation library in f:
// the configured names plus local names bound by import or require of
// the library module.
func (v Vocabulary) LibraryRoots(f *syntax.File) []string {
	roots := append([]string(nil), v.LibraryNames...)
	for _, stmt := range f.TopLevelStatements() {
		switch {
		case syntax.IsImportStatement(stmt):
			if f.Unquote(stmt.ChildByFieldName("source")) != v.LibraryModule {
				continue
			}
			roots = append(roots, importedNames(f, stmt)...)
		case syntax.IsVariableStatement(stmt):
			for _, decl := range syntax.NamedChildren(stmt) {
				if decl.Kind() != "variable_declarator" || !v.isRequireOfLibrary(f, decl.ChildByFieldName("value")) {
					continue
				}
				if name := decl.ChildByFieldName("name"); syntax.IsKind(name, "identifier") {
					roots = append(roots, f.Text(name))
				}
			}
		}
	}
	return roots
}

// importedNames returns the default and namespace bindings of an import.
func importedNames(f *syntax.File, stmt *ts.Node) []string {
	var names []string
	for _, c := range syntax.NamedChildren(stmt) {
		if c.Kind() != "import_clause" {
			continue
		}
		for _, b := range syntax.NamedChildren(c) {
			switch b.Kind() {
			case "identifier":
				names = append(names, f.Text(b))
			case "namespace_import":
				if id := b.NamedChild(0); id != nil {
					names = append(names, f.Text(id))
				}
			}
		}
	}
	return names
}

func (v Vocabulary) isRequireOfLibrary(f *syntax.File, n *ts.Node) bool {
	if !syntax.IsCallExpression(n) || f.Field(n, "function") != "require" {
		return false
	}
	args := syntax.NamedChildren(n.ChildByFieldName("arguments"))
	return len(args) == 1 && syntax.IsStringLiteral(args[0]) && f.Unquote(args[0]) == v.LibraryModule
}

func isLibraryRoot(text string, roots []string) bool {
	for _, r := range roots {
		if text == r {
			return true
		}
	}
	return strings.HasSuffix(text, ".PropTypes")
}
