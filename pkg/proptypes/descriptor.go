// Package proptypes decodes runtime prop-type declarations into a closed
// descriptor model and translates descriptors into static types.
package proptypes

import (
	ts "github.com/tree-sitter/go-tree-sitter"

	"github.com/gnana997/react2ts/pkg/syntax"
)

// Descriptor is one decoded runtime type constraint.
type Descriptor interface {
	descriptor()
}

// Primitive is a bare tag such as PropTypes.string.
type Primitive struct {
	Tag string
}

// Required wraps a descriptor suffixed with .isRequired.
type Required struct {
	Inner Descriptor
}

// OneOf is oneOf([...]) over string and number literals, in source spelling.
type OneOf struct {
	Literals []string
}

// OneOfType is oneOfType([...]).
type OneOfType struct {
	Options []Descriptor
}

// ArrayOf is arrayOf(elem).
type ArrayOf struct {
	Elem Descriptor
}

// ObjectOf is objectOf(value).
type ObjectOf struct {
	Value Descriptor
}

// Shape is shape({...}) or exact({...}), and also a whole propTypes object.
type Shape struct {
	Fields []FieldDescriptor
}

// FieldDescriptor is one entry of a Shape. Name keeps its source spelling.
type FieldDescriptor struct {
	Name string
	Desc Descriptor
}

// Unknown is anything the decoder does not recognise.
type Unknown struct {
	Text string
}

func (Primitive) descriptor() {}
func (Required) descriptor()  {}
func (OneOf) descriptor()     {}
func (OneOfType) descriptor() {}
func (ArrayOf) descriptor()   {}
func (ObjectOf) descriptor()  {}
func (Shape) descriptor()     {}
func (Unknown) descriptor()   {}

// IsRequired reports whether d carries .isRequired.
func IsRequired(d Descriptor) bool {
	_, ok := d.(Required)
	return ok
}

// Decoder decodes descriptor expressions of one file.
type Decoder struct {
	file  *syntax.File
	roots []string
}

// NewDecoder resolves the library spellings of f once.
func NewDecoder(f *syntax.File, vocab Vocabulary) *Decoder {
	return &Decoder{file: f, roots: vocab.WithDefaults().LibraryRoots(f)}
}

// Decode decodes a single descriptor expression.
func Decode(f *syntax.File, n *ts.Node, vocab Vocabulary) Descriptor {
	return NewDecoder(f, vocab).Decode(n)
}

// Decode never fails: unrecognised input yields Unknown.
func (d *Decoder) Decode(n *ts.Node) Descriptor {
	n = syntax.StripParens(n)
	if n == nil {
		return Unknown{}
	}
	f := d.file

	switch n.Kind() {
	case "member_expression":
		object := n.ChildByFieldName("object")
		prop := f.Field(n, "property")
		if prop == "isRequired" {
			return Required{Inner: d.Decode(object)}
		}
		if isLibraryRoot(f.Text(object), d.roots) {
			return Primitive{Tag: prop}
		}

	case "call_expression":
		callee := n.ChildByFieldName("function")
		if !syntax.IsMemberExpression(callee) || !isLibraryRoot(f.Field(callee, "object"), d.roots) {
			break
		}
		args := syntax.NamedChildren(n.ChildByFieldName("arguments"))
		if len(args) == 0 {
			break
		}
		arg := syntax.StripParens(args[0])

		switch f.Field(callee, "property") {
		case "oneOf":
			if lits, ok := d.literals(arg); ok {
				return OneOf{Literals: lits}
			}
		case "oneOfType":
			if syntax.IsArrayLiteral(arg) {
				var opts []Descriptor
				for _, el := range syntax.NamedChildren(arg) {
					opts = append(opts, d.Decode(el))
				}
				return OneOfType{Options: opts}
			}
		case "arrayOf":
			return ArrayOf{Elem: d.Decode(arg)}
		case "objectOf":
			return ObjectOf{Value: d.Decode(arg)}
		case "shape", "exact":
			if syntax.IsObjectLiteral(arg) {
				return d.DecodeObject(arg)
			}
		}
	}
	return Unknown{Text: f.Text(n)}
}

// literals accepts an array of string and number literals only.
func (d *Decoder) literals(arr *ts.Node) ([]string, bool) {
	if !syntax.IsArrayLiteral(arr) {
		return nil, false
	}
	var out []string
	for _, el := range syntax.NamedChildren(arr) {
		switch {
		case syntax.IsStringLiteral(el), syntax.IsNumberLiteral(el):
		case syntax.IsKind(el, "unary_expression") && d.file.Field(el, "operator") == "-" &&
			syntax.IsNumberLiteral(el.ChildByFieldName("argument")):
		default:
			return nil, false
		}
		out = append(out, d.file.Text(el))
	}
	return out, len(out) > 0
}

// DecodeObject decodes a prop-name to descriptor object literal. Only
// plain key: value pairs are considered and `children` is always skipped.
func (d *Decoder) DecodeObject(obj *ts.Node) Shape {
	var s Shape
	for _, prop := range syntax.NamedChildren(obj) {
		if prop.Kind() != "pair" {
			continue
		}
		key := prop.ChildByFieldName("key")
		var name, bare string
		switch key.Kind() {
		case "property_identifier", "number":
			name = d.file.Text(key)
			bare = name
		case "string":
			name = d.file.Text(key)
			bare = d.file.Unquote(key)
		default:
			continue
		}
		if bare == "children" {
			continue
		}

		field := FieldDescriptor{Name: name, Desc: d.Decode(prop.ChildByFieldName("value"))}
		replaced := false
		for i := range s.Fields {
			if s.Fields[i].Name == name {
				s.Fields[i] = field
				replaced = true
			}
		}
		if !replaced {
			s.Fields = append(s.Fields, field)
		}
	}
	return s
}
