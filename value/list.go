package value

// List is an ordered sequence of values.
type List struct {
	items []T
}

func (*List) Kind() Kind { return KindList }
func (*List) sealed()    {}

// NewList builds a list holding a copy of items. Nil items become Null.
func NewList(items ...T) T {
	l := &List{items: make([]T, len(items))}
	for i, v := range items {
		if v == nil {
			v = Null{}
		}
		l.items[i] = v
	}
	return l
}

// Len is the number of elements.
func (l *List) Len() int { return len(l.items) }

// At returns element i, or nil and false when i is out of range.
func (l *List) At(i int) (v T, ok bool) {
	if i < 0 || i >= len(l.items) {
		return
	}
	return l.items[i], true
}

// Items returns a copy of the elements.
func (l *List) Items() []T {
	out := make([]T, len(l.items))
	copy(out, l.items)
	return out
}

// Each calls fn for every element in order until fn returns false.
func (l *List) Each(fn func(i int, v T) bool) {
	for i, v := range l.items {
		if !fn(i, v) {
			return
		}
	}
}
