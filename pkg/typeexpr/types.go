// Package typeexpr models the static TypeScript type expressions the
// converter emits: keywords, literals, references, arrays, functions,
// unions, intersections and object shapes. Types are compared by their
// canonical rendering, so two structurally equal values always render the
// same text.
package typeexpr

// Type is one of the variants declared in this package.
type Type interface {
	typeExpr()
}

// Keyword is a predefined type such as any, string or undefined.
type Keyword struct {
	Name string
}

// Literal is a singleton literal type, kept in source spelling ('a', 1, true).
type Literal struct {
	Text string
}

// Ref is a named type reference with optional type arguments.
type Ref struct {
	Name string
	Args []Type
}

// Array is T[].
type Array struct {
	Elem Type
}

// Function is a function type. Params is the parameter list without the
// surrounding parentheses.
type Function struct {
	Params string
	Result Type
}

// Union is A | B. Build unions with NewUnion to keep them flat and deduplicated.
type Union struct {
	Members []Type
}

// Intersection is A & B.
type Intersection struct {
	Members []Type
}

// Field is a named member of a Shape. Name is kept as spelled in source,
// quotes included.
type Field struct {
	Name     string
	Type     Type
	Optional bool
}

// Index is a `[Key: KeyType]: Value` signature.
type Index struct {
	Key     string
	KeyType Type
	Value   Type
}

// Shape is an object type literal.
type Shape struct {
	Fields  []Field
	Indexes []Index
}

// Raw is type text the model does not interpret.
type Raw struct {
	Text string
}

func (Keyword) typeExpr()      {}
func (Literal) typeExpr()      {}
func (Ref) typeExpr()          {}
func (Array) typeExpr()        {}
func (Function) typeExpr()     {}
func (Union) typeExpr()        {}
func (Intersection) typeExpr() {}
func (*Shape) typeExpr()       {}
func (Raw) typeExpr()          {}

var (
	Any       Type = Keyword{Name: "any"}
	String    Type = Keyword{Name: "string"}
	Number    Type = Keyword{Name: "number"}
	Boolean   Type = Keyword{Name: "boolean"}
	Object    Type = Keyword{Name: "object"}
	Undefined Type = Keyword{Name: "undefined"}
	Null      Type = Keyword{Name: "null"}
	Void      Type = Keyword{Name: "void"}
	Never     Type = Keyword{Name: "never"}
)

// AnyFunction is the variadic function type `(...args: any[]) => any`.
func AnyFunction() Type {
	return Function{Params: "...args: any[]", Result: Any}
}

// ArrayOf returns Elem[].
func ArrayOf(elem Type) Type {
	return Array{Elem: elem}
}

// Named returns a reference, parsing a dotted name as a single identifier.
func Named(name string, args ...Type) Type {
	return Ref{Name: name, Args: args}
}

// Record returns `{ [key: string]: value; }`.
func Record(value Type) *Shape {
	return &Shape{Indexes: []Index{{Key: "key", KeyType: String, Value: value}}}
}

// EmptyShape returns `{}`.
func EmptyShape() *Shape {
	return &Shape{}
}

// Empty reports whether the shape has neither fields nor index signatures.
func (s *Shape) Empty() bool {
	return s == nil || (len(s.Fields) == 0 && len(s.Indexes) == 0)
}

// Lookup returns the field named name.
func (s *Shape) Lookup(name string) (Field, bool) {
	if s == nil {
		return Field{}, false
	}
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Set adds a field, replacing any existing field of the same name in place.
func (s *Shape) Set(field Field) {
	for i, f := range s.Fields {
		if f.Name == field.Name {
			s.Fields[i] = field
			return
		}
	}
	s.Fields = append(s.Fields, field)
}

// NewUnion flattens nested unions and drops duplicate members. A single
// remaining member is returned as is; no members yields never.
func NewUnion(members ...Type) Type {
	var flat []Type
	seen := make(map[string]bool)
	var add func(t Type)
	add = func(t Type) {
		if u, ok := t.(Union); ok {
			for _, m := range u.Members {
				add(m)
			}
			return
		}
		key := Render(t)
		if seen[key] {
			return
		}
		seen[key] = true
		flat = append(flat, t)
	}
	for _, m := range members {
		if m != nil {
			add(m)
		}
	}

	switch len(flat) {
	case 0:
		return Never
	case 1:
		return flat[0]
	}
	return Union{Members: flat}
}

// NewIntersection flattens nested intersections. Duplicates are kept since
// each member may stand for a distinct contribution.
func NewIntersection(members ...Type) Type {
	var flat []Type
	for _, m := range members {
		switch v := m.(type) {
		case nil:
		case Intersection:
			flat = append(flat, v.Members...)
		default:
			flat = append(flat, v)
		}
	}
	if len(flat) == 1 {
		return flat[0]
	}
	return Intersection{Members: flat}
}

// Optional returns t | undefined.
func Optional(t Type) Type {
	return NewUnion(t, Undefined)
}

// Equal reports structural equality.
func Equal(a, b Type) bool {
	return Render(a) == Render(b)
}
