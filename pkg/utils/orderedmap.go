package utils

// Implements a string-keyed map that iterates in insertion order.
// Register maps are emitted in declaration order, so every named collection
// of the model (fields, registers, enum entries) must remember the order its
// keys were first inserted in.
type OrderedMap[Value any] struct {
	keys   []string
	values map[string]Value
}

// Creates an empty ordered map
func MakeOrderedMap[Value any]() *OrderedMap[Value] {
	return &OrderedMap[Value]{
		values: make(map[string]Value),
	}
}

// Inserts or overwrites a key. Overwriting keeps the original insertion position
func (m *OrderedMap[Value]) Set(key string, value Value) {
	if _, exists := m.values[key]; !exists {
		m.keys = append(m.keys, key)
	}

	m.values[key] = value
}

// Returns the value stored under a key, if any
func (m *OrderedMap[Value]) Get(key string) (Value, bool) {
	value, ok := m.values[key]
	return value, ok
}

func (m *OrderedMap[Value]) Has(key string) bool {
	_, ok := m.values[key]
	return ok
}

func (m *OrderedMap[Value]) Len() int {
	return len(m.keys)
}

// Returns all keys in insertion order
func (m *OrderedMap[Value]) Keys() []string {
	keys := make([]string, len(m.keys))
	copy(keys, m.keys)
	return keys
}

// Returns all values in insertion order
func (m *OrderedMap[Value]) Values() []Value {
	values := make([]Value, 0, len(m.keys))

	for _, key := range m.keys {
		values = append(values, m.values[key])
	}

	return values
}

// Returns all (key, value) pairs in insertion order
func (m *OrderedMap[Value]) Entries() []Pair[string, Value] {
	entries := make([]Pair[string, Value], 0, len(m.keys))

	for _, key := range m.keys {
		entries = append(entries, MakePair(key, m.values[key]))
	}

	return entries
}
