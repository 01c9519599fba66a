package proptypes

import (
	ts "github.com/tree-sitter/go-tree-sitter"

	"github.com/gnana997/react2ts/pkg/syntax"
	"github.com/gnana997/react2ts/pkg/typeexpr"
)

// Translate maps a descriptor to a static type. Unknown tags and
// combinators become any.
func Translate(d Descriptor, vocab Vocabulary) typeexpr.Type {
	vocab = vocab.WithDefaults()
	return translate(d, vocab)
}

func translate(d Descriptor, vocab Vocabulary) typeexpr.Type {
	switch v := d.(type) {
	case Primitive:
		return primitive(v.Tag, vocab)
	case Required:
		return translate(v.Inner, vocab)
	case OneOf:
		lits := make([]typeexpr.Type, 0, len(v.Literals))
		for _, l := range v.Literals {
			lits = append(lits, typeexpr.Literal{Text: l})
		}
		return typeexpr.NewUnion(lits...)
	case OneOfType:
		if len(v.Options) == 0 {
			return typeexpr.Any
		}
		opts := make([]typeexpr.Type, 0, len(v.Options))
		for _, o := range v.Options {
			opts = append(opts, translate(o, vocab))
		}
		return typeexpr.NewUnion(opts...)
	case ArrayOf:
		return typeexpr.ArrayOf(translate(v.Elem, vocab))
	case ObjectOf:
		return typeexpr.Record(translate(v.Value, vocab))
	case Shape:
		return translateShape(v, vocab)
	}
	return typeexpr.Any
}

func primitive(tag string, vocab Vocabulary) typeexpr.Type {
	switch tag {
	case "string":
		return typeexpr.String
	case "bool":
		return typeexpr.Boolean
	case "number":
		return typeexpr.Number
	case "object":
		return typeexpr.Object
	case "array":
		return typeexpr.ArrayOf(typeexpr.Any)
	case "func":
		return typeexpr.AnyFunction()
	case "node":
		return typeexpr.Named(vocab.NodeType)
	case "element":
		return typeexpr.Named(vocab.ElementType)
	}
	return typeexpr.Any
}

// translateShape turns each field into a named field. Fields without
// .isRequired become `T | undefined`.
func translateShape(s Shape, vocab Vocabulary) *typeexpr.Shape {
	out := typeexpr.EmptyShape()
	for _, f := range s.Fields {
		t := translate(f.Desc, vocab)
		if !IsRequired(f.Desc) {
			t = typeexpr.Optional(t)
		}
		out.Set(typeexpr.Field{Name: f.Name, Type: t})
	}
	return out
}

// BuildShape converts a propTypes object literal into a shape. It shares
// its path with the shape combinator so both always agree.
func BuildShape(f *syntax.File, obj *ts.Node, vocab Vocabulary) *typeexpr.Shape {
	vocab = vocab.WithDefaults()
	return translateShape(NewDecoder(f, vocab).DecodeObject(obj), vocab)
}
