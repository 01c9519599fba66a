package oracle

import (
	ts "github.com/tree-sitter/go-tree-sitter"

	"github.com/gnana997/react2ts/pkg/syntax"
)

type bindingKind int

const (
	bindNone bindingKind = iota
	// bindVariable: node is a variable_declarator binding the name directly.
	bindVariable
	// bindParameter: node is the parameter (identifier or required_parameter).
	bindParameter
	// bindLoopElement: node is a for-of statement whose left side is the name.
	bindLoopElement
	bindFunction
	// bindOther covers destructuring, catch clauses, classes and imports.
	bindOther
)

type scopeBinding struct {
	kind bindingKind
	node *ts.Node
}

// resolve finds the declaration an identifier refers to by walking its
// enclosing scopes outwards.
func resolve(f *syntax.File, id *ts.Node, name string) scopeBinding {
	for scope := id.Parent(); scope != nil; scope = scope.Parent() {
		switch scope.Kind() {
		case "statement_block", "program", "switch_case", "switch_default", "class_static_block":
			if b := scanStatements(f, scope, name); b.kind != bindNone {
				return b
			}
		case "for_in_statement":
			left := scope.ChildByFieldName("left")
			if patternBinds(f, left, name) {
				if syntax.IsKind(left, "identifier") && f.Field(scope, "operator") == "of" {
					return scopeBinding{kind: bindLoopElement, node: scope}
				}
				return scopeBinding{kind: bindOther, node: scope}
			}
		case "for_statement":
			if b := scanDeclaration(f, scope.ChildByFieldName("initializer"), name); b.kind != bindNone {
				return b
			}
		case "catch_clause":
			if patternBinds(f, scope.ChildByFieldName("parameter"), name) {
				return scopeBinding{kind: bindOther, node: scope}
			}
		case "arrow_function", "function_expression", "function_declaration",
			"generator_function", "generator_function_declaration", "method_definition":
			if b := scanParameters(f, scope, name); b.kind != bindNone {
				return b
			}
		}
	}
	return scopeBinding{}
}

func scanStatements(f *syntax.File, block *ts.Node, name string) scopeBinding {
	for _, stmt := range syntax.NamedChildren(block) {
		decl := syntax.Unwrap(stmt)
		switch {
		case syntax.IsVariableStatement(decl):
			if b := scanDeclaration(f, decl, name); b.kind != bindNone {
				return b
			}
		case syntax.IsKind(decl, "function_declaration", "generator_function_declaration"):
			if f.Field(decl, "name") == name {
				return scopeBinding{kind: bindFunction, node: decl}
			}
		case syntax.IsClassDeclaration(decl):
			if f.Field(decl, "name") == name {
				return scopeBinding{kind: bindOther, node: decl}
			}
		case syntax.IsImportStatement(decl):
			found := false
			syntax.Walk(decl, func(n *ts.Node) bool {
				if syntax.IsKind(n, "identifier") && f.Text(n) == name {
					found = true
				}
				return !found
			})
			if found {
				return scopeBinding{kind: bindOther, node: decl}
			}
		}
	}
	return scopeBinding{}
}

func scanDeclaration(f *syntax.File, decl *ts.Node, name string) scopeBinding {
	if !syntax.IsVariableStatement(decl) {
		return scopeBinding{}
	}
	for _, d := range syntax.NamedChildren(decl) {
		if d.Kind() != "variable_declarator" {
			continue
		}
		pattern := d.ChildByFieldName("name")
		if !patternBinds(f, pattern, name) {
			continue
		}
		if syntax.IsKind(pattern, "identifier") {
			return scopeBinding{kind: bindVariable, node: d}
		}
		return scopeBinding{kind: bindOther, node: d}
	}
	return scopeBinding{}
}

func scanParameters(f *syntax.File, fn *ts.Node, name string) scopeBinding {
	if p := fn.ChildByFieldName("parameter"); p != nil {
		if patternBinds(f, p, name) {
			return scopeBinding{kind: bindParameter, node: p}
		}
		return scopeBinding{}
	}
	for _, p := range syntax.NamedChildren(fn.ChildByFieldName("parameters")) {
		pattern := p
		if syntax.IsKind(p, "required_parameter", "optional_parameter") {
			pattern = p.ChildByFieldName("pattern")
		}
		if !patternBinds(f, pattern, name) {
			continue
		}
		if syntax.IsKind(pattern, "identifier") {
			return scopeBinding{kind: bindParameter, node: p}
		}
		return scopeBinding{kind: bindOther, node: p}
	}
	return scopeBinding{}
}

// patternBinds reports whether a binding pattern introduces name.
func patternBinds(f *syntax.File, pattern *ts.Node, name string) bool {
	if pattern == nil {
		return false
	}
	if syntax.IsKind(pattern, "lexical_declaration", "variable_declaration") {
		return scanDeclaration(f, pattern, name).kind != bindNone
	}
	found := false
	syntax.Walk(pattern, func(n *ts.Node) bool {
		if found {
			return false
		}
		switch n.Kind() {
		case "identifier", "shorthand_property_identifier_pattern":
			if f.Text(n) == name {
				found = true
			}
		case "pair_pattern":
			// Only the value side binds.
			found = patternBinds(f, n.ChildByFieldName("value"), name)
			return false
		case "assignment_pattern", "object_assignment_pattern":
			found = patternBinds(f, n.ChildByFieldName("left"), name)
			return false
		}
		return true
	})
	return found
}
