package value

// Equal reports whether a and b are structurally the same. Lists compare element by
// element in order, mappings compare as sets of entries regardless of order, numbers
// compare with == (so NaN is never equal), everything IsNull reports is equal to Null,
// and procedures are equal only to themselves.
// Symbols and strings compare by their text, since neither JSON nor YAML can tell them
// apart and a symbol always reads back as a string.
func Equal(a, b T) bool {
	if IsNull(a) || IsNull(b) {
		return IsNull(a) && IsNull(b)
	}
	if at, ok := text(a); ok {
		bt, ok := text(b)
		return ok && at == bt
	}
	if a.Kind() != b.Kind() {
		return false
	}
	switch x := a.(type) {
	case Number, Bool, Null:
		return a == b
	case *List:
		y := b.(*List)
		if len(x.items) != len(y.items) {
			return false
		}
		for i := range x.items {
			if !Equal(x.items[i], y.items[i]) {
				return false
			}
		}
		return true
	case *Mapping:
		y := b.(*Mapping)
		if len(x.entries) != len(y.entries) {
			return false
		}
		for _, e := range x.entries {
			w, ok := y.Get(e.Key)
			if !ok || !Equal(e.Value, w) {
				return false
			}
		}
		return true
	case *Procedure:
		return x == b.(*Procedure)
	}
	return false
}

func text(v T) (s string, ok bool) {
	switch x := v.(type) {
	case Symbol:
		return string(x), true
	case String:
		return string(x), true
	}
	return
}

// Walk visits v and then its children depth first, in order. Returning false from fn stops
// the walk, and Walk reports whether it ran to completion.
func Walk(v T, fn func(v T) bool) bool {
	if !fn(v) {
		return false
	}
	if IsNull(v) {
		return true
	}
	switch x := v.(type) {
	case *List:
		for _, c := range x.items {
			if !Walk(c, fn) {
				return false
			}
		}
	case *Mapping:
		for _, e := range x.entries {
			if !Walk(e.Value, fn) {
				return false
			}
		}
	}
	return true
}

// ContainsProcedure reports whether a Procedure appears anywhere in v.
func ContainsProcedure(v T) bool {
	return !Walk(v, func(v T) bool { return IsNull(v) || v.Kind() != KindProcedure })
}
