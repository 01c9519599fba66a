package typeexpr

import (
	"strings"

	ts "github.com/tree-sitter/go-tree-sitter"
)

// Read converts a tree-sitter type node into a Type. Constructs the model
// does not cover come back as Raw with their source text.
func Read(src []byte, n *ts.Node) Type {
	if n == nil {
		return Any
	}
	text := n.Utf8Text(src)

	switch n.Kind() {
	case "type_annotation":
		return Read(src, firstNamed(n))
	case "predefined_type":
		return Keyword{Name: text}
	case "literal_type":
		inner := firstNamed(n)
		if inner != nil && (inner.Kind() == "null" || inner.Kind() == "undefined") {
			return Keyword{Name: inner.Kind()}
		}
		return Literal{Text: text}
	case "type_identifier", "nested_type_identifier", "this_type":
		return Ref{Name: text}
	case "generic_type":
		ref := Ref{Name: n.ChildByFieldName("name").Utf8Text(src)}
		if args := n.ChildByFieldName("type_arguments"); args != nil {
			for i := uint(0); i < args.NamedChildCount(); i++ {
				ref.Args = append(ref.Args, Read(src, args.NamedChild(i)))
			}
		}
		return ref
	case "array_type":
		return Array{Elem: Read(src, firstNamed(n))}
	case "parenthesized_type":
		return Read(src, firstNamed(n))
	case "union_type":
		return NewUnion(readOperands(src, n)...)
	case "intersection_type":
		return NewIntersection(readOperands(src, n)...)
	case "function_type":
		params := n.ChildByFieldName("parameters")
		result := n.ChildByFieldName("return_type")
		if params == nil || result == nil || n.ChildByFieldName("type_parameters") != nil {
			return Raw{Text: text}
		}
		p := params.Utf8Text(src)
		p = strings.TrimSuffix(strings.TrimPrefix(p, "("), ")")
		return Function{Params: p, Result: Read(src, result)}
	case "object_type":
		if s, ok := readObject(src, n); ok {
			return s
		}
	}
	return Raw{Text: text}
}

func firstNamed(n *ts.Node) *ts.Node {
	for i := uint(0); i < n.NamedChildCount(); i++ {
		if c := n.NamedChild(i); c.Kind() != "comment" {
			return c
		}
	}
	return nil
}

// readOperands reads the operands of a binary union or intersection node.
// A leading `|` or `&` is tolerated by the grammar and yields no operand.
func readOperands(src []byte, n *ts.Node) []Type {
	var out []Type
	for i := uint(0); i < n.NamedChildCount(); i++ {
		c := n.NamedChild(i)
		if c.Kind() == "comment" {
			continue
		}
		out = append(out, Read(src, c))
	}
	return out
}

func readObject(src []byte, n *ts.Node) (*Shape, bool) {
	s := &Shape{}
	for i := uint(0); i < n.NamedChildCount(); i++ {
		member := n.NamedChild(i)
		switch member.Kind() {
		case "comment":
		case "property_signature":
			f, ok := readProperty(src, member)
			if !ok {
				return nil, false
			}
			s.Fields = append(s.Fields, f)
		case "index_signature":
			idx, ok := readIndex(src, member)
			if !ok {
				return nil, false
			}
			s.Indexes = append(s.Indexes, idx)
		default:
			return nil, false
		}
	}
	return s, true
}

func readProperty(src []byte, n *ts.Node) (Field, bool) {
	name := n.ChildByFieldName("name")
	if name == nil || name.Kind() == "computed_property_name" {
		return Field{}, false
	}
	f := Field{Name: name.Utf8Text(src), Type: Any}
	for i := uint(0); i < n.ChildCount(); i++ {
		c := n.Child(i)
		if c.IsNamed() {
			continue
		}
		switch c.Kind() {
		case "?":
			f.Optional = true
		case "readonly", "static":
			return Field{}, false
		}
	}
	if t := n.ChildByFieldName("type"); t != nil {
		f.Type = Read(src, t)
	}
	return f, true
}

func readIndex(src []byte, n *ts.Node) (Index, bool) {
	name := n.ChildByFieldName("name")
	keyType := n.ChildByFieldName("index_type")
	value := n.ChildByFieldName("type")
	if name == nil || keyType == nil || value == nil {
		return Index{}, false
	}
	for i := uint(0); i < n.ChildCount(); i++ {
		if k := n.Child(i).Kind(); k == "readonly" || k == "mapped_type_clause" {
			return Index{}, false
		}
	}
	return Index{Key: name.Utf8Text(src), KeyType: Read(src, keyType), Value: Read(src, value)}, true
}
