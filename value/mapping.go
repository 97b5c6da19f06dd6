package value

// KeyValue is one entry of a Mapping.
type KeyValue struct {
	Key   string
	Value T
}

// KV makes a KeyValue.
func KV(key string, v T) KeyValue { return KeyValue{Key: key, Value: v} }

// Mapping is a collection of text keys to values. Keys are unique and entries keep the
// order in which their keys first appeared.
type Mapping struct {
	entries []KeyValue
	index   map[string]int
}

func (*Mapping) Kind() Kind { return KindMapping }
func (*Mapping) sealed()    {}

// NewMapping builds a mapping from entries. When a key repeats, the later value replaces
// the earlier one and the entry stays where the key was first seen. Nil values become Null.
func NewMapping(entries ...KeyValue) T {
	m := &Mapping{
		entries: make([]KeyValue, 0, len(entries)),
		index:   make(map[string]int, len(entries)),
	}
	for _, e := range entries {
		if e.Value == nil {
			e.Value = Null{}
		}
		if i, ok := m.index[e.Key]; ok {
			m.entries[i].Value = e.Value
			continue
		}
		m.index[e.Key] = len(m.entries)
		m.entries = append(m.entries, e)
	}
	return m
}

// Len is the number of entries.
func (m *Mapping) Len() int { return len(m.entries) }

// Get returns the value stored under key.
func (m *Mapping) Get(key string) (v T, ok bool) {
	var i int
	if i, ok = m.index[key]; !ok {
		return
	}
	return m.entries[i].Value, true
}

// Has reports whether key is present.
func (m *Mapping) Has(key string) bool {
	_, ok := m.index[key]
	return ok
}

// Keys returns the keys in entry order.
func (m *Mapping) Keys() []string {
	keys := make([]string, len(m.entries))
	for i, e := range m.entries {
		keys[i] = e.Key
	}
	return keys
}

// Entries returns a copy of the entries in order.
func (m *Mapping) Entries() []KeyValue {
	out := make([]KeyValue, len(m.entries))
	copy(out, m.entries)
	return out
}

// Each calls fn for every entry in order until fn returns false.
func (m *Mapping) Each(fn func(key string, v T) bool) {
	for _, e := range m.entries {
		if !fn(e.Key, e.Value) {
			return
		}
	}
}
