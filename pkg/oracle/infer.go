package oracle

import (
	ts "github.com/tree-sitter/go-tree-sitter"

	"github.com/gnana997/react2ts/pkg/syntax"
	"github.com/gnana997/react2ts/pkg/typeexpr"
)

func (o *Syntactic) typeOf(f *syntax.File, n *ts.Node, depth int) typeexpr.Type {
	n = syntax.StripParens(n)
	if n == nil || depth > maxDepth {
		return typeexpr.Any
	}

	switch n.Kind() {
	case "number":
		return typeexpr.Number
	case "string", "template_string":
		return typeexpr.String
	case "true", "false":
		return typeexpr.Boolean
	case "null":
		return typeexpr.Null
	case "undefined":
		return typeexpr.Undefined
	case "regex":
		return typeexpr.Named("RegExp")
	case "object":
		return o.objectType(f, n, depth)
	case "array":
		return o.arrayType(f, n, depth)
	case "arrow_function", "function_expression", "generator_function":
		return typeexpr.AnyFunction()
	case "jsx_element", "jsx_self_closing_element", "jsx_fragment":
		return typeexpr.Named(o.vocab.ElementType)
	case "unary_expression":
		return o.unaryType(f, n, depth)
	case "update_expression":
		return typeexpr.Number
	case "binary_expression":
		return o.binaryType(f, n, depth)
	case "ternary_expression":
		return typeexpr.NewUnion(
			o.typeOf(f, n.ChildByFieldName("consequence"), depth+1),
			o.typeOf(f, n.ChildByFieldName("alternative"), depth+1),
		)
	case "assignment_expression":
		return o.typeOf(f, n.ChildByFieldName("right"), depth+1)
	case "sequence_expression":
		children := syntax.NamedChildren(n)
		if len(children) > 0 {
			return o.typeOf(f, children[len(children)-1], depth+1)
		}
	case "as_expression", "satisfies_expression":
		children := syntax.NamedChildren(n)
		if len(children) == 2 {
			return typeexpr.Read(f.Source, children[1])
		}
	case "new_expression":
		ctor := n.ChildByFieldName("constructor")
		if syntax.IsKind(ctor, "identifier", "member_expression") {
			return typeexpr.Named(f.Text(ctor))
		}
	case "call_expression":
		switch f.Field(n, "function") {
		case "String":
			return typeexpr.String
		case "Number", "parseInt", "parseFloat":
			return typeexpr.Number
		case "Boolean":
			return typeexpr.Boolean
		}
	case "member_expression":
		if s, ok := o.typeOf(f, n.ChildByFieldName("object"), depth+1).(*typeexpr.Shape); ok {
			if field, ok := s.Lookup(f.Field(n, "property")); ok {
				return field.Type
			}
		}
	case "identifier":
		return o.identifierType(f, n, depth)
	}
	return typeexpr.Any
}

func (o *Syntactic) objectType(f *syntax.File, n *ts.Node, depth int) typeexpr.Type {
	shape := typeexpr.EmptyShape()
	for _, prop := range syntax.NamedChildren(n) {
		switch prop.Kind() {
		case "pair":
			key := prop.ChildByFieldName("key")
			if syntax.IsKind(key, "computed_property_name") {
				continue
			}
			shape.Set(typeexpr.Field{Name: f.Text(key), Type: o.typeOf(f, prop.ChildByFieldName("value"), depth+1)})
		case "shorthand_property_identifier":
			shape.Set(typeexpr.Field{Name: f.Text(prop), Type: o.identifierType(f, prop, depth)})
		case "method_definition":
			shape.Set(typeexpr.Field{Name: f.MemberName(prop), Type: typeexpr.AnyFunction()})
		case "spread_element":
			if inner, ok := o.typeOf(f, prop.NamedChild(0), depth+1).(*typeexpr.Shape); ok {
				for _, field := range inner.Fields {
					shape.Set(field)
				}
				shape.Indexes = append(shape.Indexes, inner.Indexes...)
			}
		}
	}
	return shape
}

func (o *Syntactic) arrayType(f *syntax.File, n *ts.Node, depth int) typeexpr.Type {
	var elems []typeexpr.Type
	for _, el := range syntax.NamedChildren(n) {
		if el.Kind() == "spread_element" {
			if arr, ok := o.typeOf(f, el.NamedChild(0), depth+1).(typeexpr.Array); ok {
				elems = append(elems, arr.Elem)
			} else {
				elems = append(elems, typeexpr.Any)
			}
			continue
		}
		elems = append(elems, o.typeOf(f, el, depth+1))
	}
	if len(elems) == 0 {
		return typeexpr.ArrayOf(typeexpr.Any)
	}
	return typeexpr.ArrayOf(typeexpr.NewUnion(elems...))
}

func (o *Syntactic) unaryType(f *syntax.File, n *ts.Node, depth int) typeexpr.Type {
	switch f.Field(n, "operator") {
	case "!", "delete":
		return typeexpr.Boolean
	case "typeof":
		return typeexpr.String
	case "void":
		return typeexpr.Undefined
	case "-", "+", "~":
		return typeexpr.Number
	}
	return typeexpr.Any
}

func (o *Syntactic) binaryType(f *syntax.File, n *ts.Node, depth int) typeexpr.Type {
	left := func() typeexpr.Type { return o.typeOf(f, n.ChildByFieldName("left"), depth+1) }
	right := func() typeexpr.Type { return o.typeOf(f, n.ChildByFieldName("right"), depth+1) }

	switch f.Field(n, "operator") {
	case "-", "*", "/", "%", "**", "&", "|", "^", "<<", ">>", ">>>":
		return typeexpr.Number
	case "+":
		l, r := left(), right()
		switch {
		case typeexpr.Equal(l, typeexpr.String) || typeexpr.Equal(r, typeexpr.String):
			return typeexpr.String
		case typeexpr.Equal(l, typeexpr.Number) && typeexpr.Equal(r, typeexpr.Number):
			return typeexpr.Number
		}
	case "==", "===", "!=", "!==", "<", ">", "<=", ">=", "instanceof", "in":
		return typeexpr.Boolean
	case "&&":
		return right()
	case "||", "??":
		return typeexpr.NewUnion(left(), right())
	}
	return typeexpr.Any
}

func (o *Syntactic) identifierType(f *syntax.File, id *ts.Node, depth int) typeexpr.Type {
	name := f.Text(id)
	switch name {
	case "undefined":
		return typeexpr.Undefined
	case "NaN", "Infinity":
		return typeexpr.Number
	}

	b := resolve(f, id, name)
	switch b.kind {
	case bindVariable:
		if id.StartByte() >= b.node.StartByte() && id.EndByte() <= b.node.EndByte() {
			// Self-referencing initializer.
			return typeexpr.Any
		}
		if t := b.node.ChildByFieldName("type"); t != nil {
			return typeexpr.Read(f.Source, t)
		}
		return o.typeOf(f, b.node.ChildByFieldName("value"), depth+1)
	case bindParameter:
		if t := b.node.ChildByFieldName("type"); t != nil {
			return typeexpr.Read(f.Source, t)
		}
	case bindLoopElement:
		if arr, ok := o.typeOf(f, b.node.ChildByFieldName("right"), depth+1).(typeexpr.Array); ok {
			return arr.Elem
		}
	case bindFunction:
		return typeexpr.AnyFunction()
	}
	return typeexpr.Any
}
