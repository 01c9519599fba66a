package syntax

import (
	"strings"

	ts "github.com/tree-sitter/go-tree-sitter"
)

// IsKind reports whether n is non-nil and of one of the given kinds.
func IsKind(n *ts.Node, kinds ...string) bool {
	if n == nil {
		return false
	}
	k := n.Kind()
	for _, want := range kinds {
		if k == want {
			return true
		}
	}
	return false
}

func IsClassDeclaration(n *ts.Node) bool {
	return IsKind(n, "class_declaration", "abstract_class_declaration")
}

func IsFunctionDeclaration(n *ts.Node) bool { return IsKind(n, "function_declaration") }

// IsVariableStatement matches const/let (lexical) and var declarations.
func IsVariableStatement(n *ts.Node) bool {
	return IsKind(n, "lexical_declaration", "variable_declaration")
}

func IsExpressionStatement(n *ts.Node) bool { return IsKind(n, "expression_statement") }
func IsObjectLiteral(n *ts.Node) bool       { return IsKind(n, "object") }
func IsArrayLiteral(n *ts.Node) bool        { return IsKind(n, "array") }
func IsCallExpression(n *ts.Node) bool      { return IsKind(n, "call_expression") }
func IsMemberExpression(n *ts.Node) bool    { return IsKind(n, "member_expression") }
func IsAssignment(n *ts.Node) bool          { return IsKind(n, "assignment_expression") }
func IsArrowFunction(n *ts.Node) bool       { return IsKind(n, "arrow_function") }
func IsFunctionExpression(n *ts.Node) bool  { return IsKind(n, "function_expression") }
func IsStringLiteral(n *ts.Node) bool       { return IsKind(n, "string") }
func IsNumberLiteral(n *ts.Node) bool       { return IsKind(n, "number") }
func IsTypeAlias(n *ts.Node) bool           { return IsKind(n, "type_alias_declaration") }
func IsImportStatement(n *ts.Node) bool     { return IsKind(n, "import_statement") }
func IsReturnStatement(n *ts.Node) bool     { return IsKind(n, "return_statement") }
func IsMethodDefinition(n *ts.Node) bool    { return IsKind(n, "method_definition") }
func IsFieldDefinition(n *ts.Node) bool     { return IsKind(n, "public_field_definition", "field_definition") }

// IsFunctionLike matches every node that opens a new function body.
func IsFunctionLike(n *ts.Node) bool {
	return IsKind(n, "function_declaration", "function_expression", "arrow_function",
		"generator_function_declaration", "generator_function", "method_definition")
}

// HasStaticModifier reports whether a class member carries `static`.
func HasStaticModifier(member *ts.Node) bool {
	return hasToken(member, "static")
}

// IsGetter reports whether a method definition is a `get` accessor.
func IsGetter(member *ts.Node) bool {
	return IsMethodDefinition(member) && hasToken(member, "get")
}

// IsAsync reports whether a function-like node carries `async`.
func IsAsync(fn *ts.Node) bool {
	return hasToken(fn, "async")
}

// hasToken looks for an anonymous keyword among the children that precede
// the member's name.
func hasToken(n *ts.Node, token string) bool {
	if n == nil {
		return false
	}
	for _, c := range Children(n) {
		if c.IsNamed() {
			if c.Kind() == "decorator" || c.Kind() == "accessibility_modifier" || c.Kind() == "override_modifier" {
				continue
			}
			return false
		}
		if c.Kind() == token {
			return true
		}
	}
	return false
}

// MemberName returns the declared name of a class member.
func (f *File) MemberName(member *ts.Node) string {
	name := member.ChildByFieldName("name")
	if name == nil && member.Kind() == "field_definition" {
		name = member.ChildByFieldName("property")
	}
	if IsStringLiteral(name) {
		return f.Unquote(name)
	}
	return f.Text(name)
}

// IsNamedPropTypesMember reports whether member is declared as `propTypes`.
func (f *File) IsNamedPropTypesMember(member *ts.Node) bool {
	return f.MemberName(member) == "propTypes"
}

// ClassMembers returns the members of a class body, skipping comments and
// stray semicolons.
func ClassMembers(class *ts.Node) []*ts.Node {
	return NamedChildren(class.ChildByFieldName("body"))
}

// ExtendsClause returns the extends clause of a class, if any.
func ExtendsClause(class *ts.Node) *ts.Node {
	for _, c := range Children(class) {
		if c.Kind() != "class_heritage" {
			continue
		}
		for _, h := range Children(c) {
			if h.Kind() == "extends_clause" {
				return h
			}
		}
	}
	return nil
}

func heritageClauses(class *ts.Node) []*ts.Node {
	for _, c := range Children(class) {
		if c.Kind() == "class_heritage" {
			return NamedChildren(c)
		}
	}
	return nil
}

// ExtendsValues returns the base expressions listed in an extends clause.
func ExtendsValues(clause *ts.Node) []*ts.Node {
	var out []*ts.Node
	for i := uint(0); i < clause.ChildCount(); i++ {
		if clause.FieldNameForChild(uint32(i)) == "value" {
			out = append(out, clause.Child(i))
		}
	}
	return out
}

// ExtendsTypeArguments returns the type_arguments node attached to the
// extends clause's base expression, if present.
func ExtendsTypeArguments(clause *ts.Node) *ts.Node {
	if clause == nil {
		return nil
	}
	for _, c := range Children(clause) {
		if c.Kind() == "type_arguments" {
			return c
		}
	}
	return nil
}

// MatchesComponentBase reports whether a base-class spelling names the
// component base type. Only the last dotted segment is compared, and any
// name ending in base qualifies so PureComponent is accepted too.
func MatchesComponentBase(text, base string) bool {
	if base == "" {
		return false
	}
	text = strings.TrimSpace(text)
	if i := strings.IndexByte(text, '<'); i >= 0 {
		text = strings.TrimSpace(text[:i])
	}
	if i := strings.LastIndexByte(text, '.'); i >= 0 {
		text = text[i+1:]
	}
	return strings.HasSuffix(text, base)
}

// SymbolResolver resolves an expression to the name of the symbol it
// refers to. An empty result means the symbol could not be resolved.
type SymbolResolver interface {
	SymbolName(f *File, n *ts.Node) string
}

// IsComponentHeritage reports whether clause is an extends clause with a
// single base whose text names the component base type.
func (f *File) IsComponentHeritage(clause *ts.Node, base string) bool {
	if !IsKind(clause, "extends_clause") {
		return false
	}
	values := ExtendsValues(clause)
	return len(values) == 1 && MatchesComponentBase(f.Text(values[0]), base)
}

// IsComponentClass reports whether class has exactly one heritage clause,
// an extends clause with one base, and that base resolves (or, failing
// resolution, reads) as the component base type.
func (f *File) IsComponentClass(class *ts.Node, resolver SymbolResolver, base string) bool {
	if !IsClassDeclaration(class) {
		return false
	}
	clauses := heritageClauses(class)
	if len(clauses) != 1 || clauses[0].Kind() != "extends_clause" {
		return false
	}
	values := ExtendsValues(clauses[0])
	if len(values) != 1 {
		return false
	}
	if resolver != nil {
		if name := resolver.SymbolName(f, values[0]); name != "" {
			return MatchesComponentBase(name, base)
		}
	}
	return MatchesComponentBase(f.Text(values[0]), base)
}

// PropTypesAssignment describes a top-level `<Name>.propTypes = value`
// or `<Name>.propTypes.<field> = value` statement.
type PropTypesAssignment struct {
	Statement *ts.Node
	// Component is the text before the first dot of the target.
	Component string
	// Value is the right-hand side.
	Value *ts.Node
	// Nested is set for the `.propTypes.<field>` form.
	Nested bool
	// Simple is set when the target is exactly `<identifier>.propTypes`.
	Simple bool
}

// IsRuntimePropTypeAssignment reports whether stmt is a top-level runtime
// propTypes assignment in either form.
func (f *File) IsRuntimePropTypeAssignment(stmt *ts.Node) bool {
	_, ok := f.RuntimePropTypeAssignment(stmt)
	return ok
}

// RuntimePropTypeAssignment decodes stmt as a runtime propTypes assignment.
func (f *File) RuntimePropTypeAssignment(stmt *ts.Node) (PropTypesAssignment, bool) {
	if !IsExpressionStatement(stmt) || TopLevelStatement(stmt) == nil || !SameNode(TopLevelStatement(stmt), stmt) {
		return PropTypesAssignment{}, false
	}
	expr := stmt.NamedChild(0)
	if !IsAssignment(expr) {
		return PropTypesAssignment{}, false
	}
	left := expr.ChildByFieldName("left")
	if !IsMemberExpression(left) {
		return PropTypesAssignment{}, false
	}

	out := PropTypesAssignment{Statement: stmt, Value: expr.ChildByFieldName("right")}
	object := left.ChildByFieldName("object")
	switch {
	case f.Field(left, "property") == "propTypes":
		out.Simple = IsKind(object, "identifier")
	case IsMemberExpression(object) && f.Field(object, "property") == "propTypes":
		out.Nested = true
	default:
		return PropTypesAssignment{}, false
	}

	target := f.Text(left)
	if i := strings.IndexByte(target, '.'); i > 0 {
		out.Component = strings.TrimSpace(target[:i])
	}
	return out, out.Component != ""
}

// RuntimePropTypeAssignments returns every top-level runtime propTypes
// assignment in source order.
func (f *File) RuntimePropTypeAssignments() []PropTypesAssignment {
	var out []PropTypesAssignment
	for _, stmt := range f.TopLevelStatements() {
		if a, ok := f.RuntimePropTypeAssignment(stmt); ok {
			out = append(out, a)
		}
	}
	return out
}

// FirstReturn returns the expression of the first return statement in a
// function body, not descending into nested functions.
func FirstReturn(body *ts.Node) *ts.Node {
	var found *ts.Node
	Walk(body, func(n *ts.Node) bool {
		if found != nil {
			return false
		}
		if !SameNode(n, body) && IsFunctionLike(n) {
			return false
		}
		if IsReturnStatement(n) {
			found = n.NamedChild(0)
			if found == nil {
				found = n
			}
			return false
		}
		return true
	})
	if IsReturnStatement(found) {
		return nil
	}
	return found
}

// StripParens removes any parentheses around an expression.
func StripParens(n *ts.Node) *ts.Node {
	for IsKind(n, "parenthesized_expression") {
		inner := n.NamedChild(0)
		if inner == nil {
			break
		}
		n = inner
	}
	return n
}
