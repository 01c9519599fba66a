package transform

import (
	ts "github.com/tree-sitter/go-tree-sitter"

	"github.com/gnana997/react2ts/pkg/proptypes"
	"github.com/gnana997/react2ts/pkg/syntax"
	"github.com/gnana997/react2ts/pkg/typeexpr"
)

// InferClassTypes gives every component class Props and State type
// arguments. Props come from a static propTypes field or getter; State
// merges the initial state with the argument of every state update call
// found in the class. Non-empty types are emitted as `<Name>Props` and
// `<Name>State` aliases in front of the class.
//
// Classes whose base already carries type arguments and which declare no
// propTypes are considered migrated and skipped.
func InferClassTypes(ctx *Context) Transform {
	return func(f *syntax.File) (*syntax.File, error) {
		var edits []syntax.Edit
		syntax.Walk(f.Root(), func(n *ts.Node) bool {
			if syntax.IsClassDeclaration(n) {
				edits = append(edits, inferClass(ctx, f, n)...)
			}
			return true
		})
		return f.Apply(edits)
	}
}

func inferClass(ctx *Context, f *syntax.File, class *ts.Node) []syntax.Edit {
	vocab := ctx.Vocabulary
	name := f.Field(class, "name")
	if name == "" || !f.IsComponentClass(class, ctx.Oracle, vocab.BaseComponent) {
		return nil
	}
	clause := syntax.ExtendsClause(class)
	existing := syntax.ExtendsTypeArguments(clause)

	propsObj := propTypesObject(f, class)
	if existing != nil && propsObj == nil {
		ctx.Logger.Debug("class already typed", "file", f.Path, "component", name)
		return nil
	}

	props := typeexpr.EmptyShape()
	if propsObj != nil {
		props = proptypes.BuildShape(f, propsObj, vocab)
	}
	state := inferState(ctx, f, class)

	at := anchor(class)
	var aliases string
	propsArg, emit := typeArgument(props, name+"Props")
	if emit {
		aliases += aliasText(f, at, propsArg, props)
	}
	stateArg, emit := typeArgument(state, name+"State")
	if emit {
		aliases += aliasText(f, at, stateArg, state)
	}

	args := "<" + propsArg + ", " + stateArg + ">"
	edits := []syntax.Edit{}
	if aliases != "" {
		edits = append(edits, syntax.Insert(at.StartByte(), aliases))
	}
	if existing != nil {
		edits = append(edits, syntax.Replace(existing, args))
	} else {
		values := syntax.ExtendsValues(clause)
		edits = append(edits, syntax.Insert(values[0].EndByte(), args))
	}

	ctx.Logger.Debug("inferred class types",
		"file", f.Path,
		"component", name,
		"props", propsArg,
		"state", stateArg)
	return edits
}

// propTypesObject returns the object literal a class declares as its
// static propTypes: the field initializer, else the getter's first
// returned value.
func propTypesObject(f *syntax.File, class *ts.Node) *ts.Node {
	field, getter := staticPropTypes(f, class)
	if field != nil {
		if v := syntax.StripParens(field.ChildByFieldName("value")); syntax.IsObjectLiteral(v) {
			return v
		}
	}
	if getter != nil {
		if v := syntax.StripParens(syntax.FirstReturn(getter.ChildByFieldName("body"))); syntax.IsObjectLiteral(v) {
			return v
		}
	}
	return nil
}

// inferState combines the initial state with every update site. No
// contribution at all yields the empty shape.
func inferState(ctx *Context, f *syntax.File, class *ts.Node) typeexpr.Type {
	var parts []typeexpr.Type
	if initial := initialState(f, class); initial != nil {
		parts = append(parts, ctx.Oracle.TypeOf(f, initial))
	}
	for _, arg := range stateUpdates(ctx, f, class) {
		if t := updateType(ctx, f, arg); t != nil {
			parts = append(parts, t)
		}
	}

	switch len(parts) {
	case 0:
		return typeexpr.EmptyShape()
	case 1:
		return parts[0]
	}
	return typeexpr.Intersection{Members: parts}
}

// initialState returns the expression a class initialises its state
// with: a `state` field, else `this.state = ...` directly in the
// constructor body.
func initialState(f *syntax.File, class *ts.Node) *ts.Node {
	members := syntax.ClassMembers(class)
	for _, m := range members {
		if syntax.IsFieldDefinition(m) && !syntax.HasStaticModifier(m) && f.MemberName(m) == "state" {
			if v := m.ChildByFieldName("value"); v != nil {
				return v
			}
		}
	}
	for _, m := range members {
		if !syntax.IsMethodDefinition(m) || f.MemberName(m) != "constructor" {
			continue
		}
		for _, stmt := range syntax.NamedChildren(m.ChildByFieldName("body")) {
			expr := stmt.NamedChild(0)
			if syntax.IsExpressionStatement(stmt) && syntax.IsAssignment(expr) && f.Field(expr, "left") == "this.state" {
				return expr.ChildByFieldName("right")
			}
		}
	}
	return nil
}

// stateUpdates returns the first argument of every state update call in
// the class's methods and function-valued fields, at any depth.
func stateUpdates(ctx *Context, f *syntax.File, class *ts.Node) []*ts.Node {
	var bodies []*ts.Node
	for _, m := range syntax.ClassMembers(class) {
		if syntax.HasStaticModifier(m) {
			continue
		}
		switch {
		case syntax.IsMethodDefinition(m):
			bodies = append(bodies, m.ChildByFieldName("body"))
		case syntax.IsFieldDefinition(m):
			if v := syntax.StripParens(m.ChildByFieldName("value")); syntax.IsArrowFunction(v) || syntax.IsFunctionExpression(v) {
				bodies = append(bodies, v)
			}
		}
	}

	var args []*ts.Node
	for _, body := range bodies {
		syntax.Walk(body, func(n *ts.Node) bool {
			if !syntax.IsCallExpression(n) || !isStateUpdate(ctx, f, n.ChildByFieldName("function")) {
				return true
			}
			if list := syntax.NamedChildren(n.ChildByFieldName("arguments")); len(list) > 0 {
				args = append(args, list[0])
			}
			return true
		})
	}
	return args
}

// isStateUpdate matches `<receiver>.<StateMethod>`. A `this` receiver is
// the component itself; any other receiver is accepted on the method name
// alone since aliases like `self` cannot be resolved.
func isStateUpdate(ctx *Context, f *syntax.File, callee *ts.Node) bool {
	if !syntax.IsMemberExpression(callee) || f.Field(callee, "property") != ctx.Vocabulary.StateMethod {
		return false
	}
	if object := callee.ChildByFieldName("object"); !syntax.IsKind(object, "this") {
		ctx.Logger.Debug("state update matched by name",
			"file", f.Path, "receiver", f.Text(object))
	}
	return true
}

// updateType is the state contribution of one update argument. An updater
// function contributes the object it returns.
func updateType(ctx *Context, f *syntax.File, arg *ts.Node) typeexpr.Type {
	arg = syntax.StripParens(arg)
	switch {
	case syntax.IsArrowFunction(arg):
		body := arg.ChildByFieldName("body")
		if !syntax.IsKind(body, "statement_block") {
			return ctx.Oracle.TypeOf(f, body)
		}
		if ret := syntax.FirstReturn(body); ret != nil {
			return ctx.Oracle.TypeOf(f, ret)
		}
		return nil
	case syntax.IsFunctionExpression(arg):
		if ret := syntax.FirstReturn(arg.ChildByFieldName("body")); ret != nil {
			return ctx.Oracle.TypeOf(f, ret)
		}
		return nil
	}
	return ctx.Oracle.TypeOf(f, arg)
}
