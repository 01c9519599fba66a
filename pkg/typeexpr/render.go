package typeexpr

import (
	"strings"
)

// maxInline is the longest shape rendered on one line.
const maxInline = 60

// Render returns the single-line canonical spelling of t.
func Render(t Type) string {
	var b strings.Builder
	write(&b, t, "", "", false)
	return b.String()
}

// Format renders t for a declaration at column zero. Small flat shapes
// stay on one line; anything larger is broken into one member per line
// using indent as the unit.
func Format(t Type, indent string) string {
	var b strings.Builder
	write(&b, t, indent, "", true)
	return b.String()
}

func write(b *strings.Builder, t Type, unit, base string, multiline bool) {
	switch v := t.(type) {
	case nil:
		b.WriteString("any")
	case Keyword:
		b.WriteString(v.Name)
	case Literal:
		b.WriteString(v.Text)
	case Raw:
		b.WriteString(v.Text)
	case Ref:
		b.WriteString(v.Name)
		if len(v.Args) > 0 {
			b.WriteByte('<')
			for i, a := range v.Args {
				if i > 0 {
					b.WriteString(", ")
				}
				write(b, a, unit, base, multiline)
			}
			b.WriteByte('>')
		}
	case Array:
		writeMember(b, v.Elem, unit, base, multiline, needsParensInArray)
		b.WriteString("[]")
	case Function:
		b.WriteByte('(')
		b.WriteString(v.Params)
		b.WriteString(") => ")
		write(b, v.Result, unit, base, multiline)
	case Union:
		for i, m := range v.Members {
			if i > 0 {
				b.WriteString(" | ")
			}
			writeMember(b, m, unit, base, multiline, needsParensInUnion)
		}
	case Intersection:
		for i, m := range v.Members {
			if i > 0 {
				b.WriteString(" & ")
			}
			writeMember(b, m, unit, base, multiline, needsParensInIntersection)
		}
	case *Shape:
		writeShape(b, v, unit, base, multiline)
	}
}

func writeMember(b *strings.Builder, t Type, unit, base string, multiline bool, parens func(Type) bool) {
	if parens(t) {
		b.WriteByte('(')
		write(b, t, unit, base, multiline)
		b.WriteByte(')')
		return
	}
	write(b, t, unit, base, multiline)
}

func needsParensInUnion(t Type) bool {
	_, fn := t.(Function)
	return fn
}

func needsParensInIntersection(t Type) bool {
	switch t.(type) {
	case Function, Union:
		return true
	}
	return false
}

func needsParensInArray(t Type) bool {
	switch t.(type) {
	case Function, Union, Intersection:
		return true
	}
	return false
}

func writeShape(b *strings.Builder, s *Shape, unit, base string, multiline bool) {
	if s.Empty() {
		b.WriteString("{}")
		return
	}

	if !multiline || fitsInline(s) {
		b.WriteString("{ ")
		for _, idx := range s.Indexes {
			writeIndex(b, idx, unit, base, false)
			b.WriteString("; ")
		}
		for _, f := range s.Fields {
			writeField(b, f, unit, base, false)
			b.WriteString("; ")
		}
		b.WriteByte('}')
		return
	}

	inner := base + unit
	b.WriteString("{\n")
	for _, idx := range s.Indexes {
		b.WriteString(inner)
		writeIndex(b, idx, unit, inner, true)
		b.WriteString(";\n")
	}
	for _, f := range s.Fields {
		b.WriteString(inner)
		writeField(b, f, unit, inner, true)
		b.WriteString(";\n")
	}
	b.WriteString(base)
	b.WriteByte('}')
}

func writeField(b *strings.Builder, f Field, unit, base string, multiline bool) {
	b.WriteString(f.Name)
	if f.Optional {
		b.WriteByte('?')
	}
	b.WriteString(": ")
	write(b, f.Type, unit, base, multiline)
}

func writeIndex(b *strings.Builder, idx Index, unit, base string, multiline bool) {
	b.WriteByte('[')
	b.WriteString(idx.Key)
	b.WriteString(": ")
	write(b, idx.KeyType, unit, base, multiline)
	b.WriteString("]: ")
	write(b, idx.Value, unit, base, multiline)
}

// fitsInline reports whether s is short and has no non-empty nested shapes.
func fitsInline(s *Shape) bool {
	for _, f := range s.Fields {
		if containsShape(f.Type) {
			return false
		}
	}
	for _, idx := range s.Indexes {
		if containsShape(idx.Value) {
			return false
		}
	}
	return len(Render(s)) <= maxInline
}

func containsShape(t Type) bool {
	switch v := t.(type) {
	case *Shape:
		return !v.Empty()
	case Array:
		return containsShape(v.Elem)
	case Union:
		for _, m := range v.Members {
			if containsShape(m) {
				return true
			}
		}
	case Intersection:
		for _, m := range v.Members {
			if containsShape(m) {
				return true
			}
		}
	case Ref:
		for _, a := range v.Args {
			if containsShape(a) {
				return true
			}
		}
	}
	return false
}
