package typeexpr

// Collapse flattens an intersection whose members are all plain shapes
// into a single shape. A field seen with several distinct types gets the
// union of them, and stays optional only when every occurrence is
// optional. Index signatures are merged by key type the same way.
//
// Any other input, including an intersection with a single non-shape
// member, is returned unchanged with ok false.
func Collapse(t Type) (Type, bool) {
	inter, ok := t.(Intersection)
	if !ok {
		return t, false
	}
	members := NewIntersection(inter.Members...)
	flat, ok := members.(Intersection)
	if !ok {
		flat = Intersection{Members: []Type{members}}
	}

	shapes := make([]*Shape, 0, len(flat.Members))
	for _, m := range flat.Members {
		s, ok := m.(*Shape)
		if !ok {
			return t, false
		}
		shapes = append(shapes, s)
	}
	return Merge(shapes...), true
}

// Merge combines shapes field by field.
func Merge(shapes ...*Shape) *Shape {
	type fieldAcc struct {
		name     string
		types    []Type
		optional bool
	}
	type indexAcc struct {
		key     string
		keyType Type
		values  []Type
	}

	var fields []*fieldAcc
	byName := make(map[string]*fieldAcc)
	var indexes []*indexAcc
	byKey := make(map[string]*indexAcc)

	for _, s := range shapes {
		if s == nil {
			continue
		}
		for _, f := range s.Fields {
			acc, ok := byName[f.Name]
			if !ok {
				acc = &fieldAcc{name: f.Name, optional: true}
				byName[f.Name] = acc
				fields = append(fields, acc)
			}
			acc.types = append(acc.types, f.Type)
			acc.optional = acc.optional && f.Optional
		}
		for _, idx := range s.Indexes {
			k := Render(idx.KeyType)
			acc, ok := byKey[k]
			if !ok {
				acc = &indexAcc{key: idx.Key, keyType: idx.KeyType}
				byKey[k] = acc
				indexes = append(indexes, acc)
			}
			acc.values = append(acc.values, idx.Value)
		}
	}

	out := &Shape{}
	for _, acc := range indexes {
		out.Indexes = append(out.Indexes, Index{Key: acc.key, KeyType: acc.keyType, Value: NewUnion(acc.values...)})
	}
	for _, acc := range fields {
		out.Fields = append(out.Fields, Field{Name: acc.name, Type: NewUnion(acc.types...), Optional: acc.optional})
	}
	return out
}
