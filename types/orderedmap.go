// SPDX-License-Identifier: MIT
package types

type (
	// Entry is a single key-value pair of an OrderedMap.
	Entry struct {
		Key   string
		Value interface{}
	}

	// OrderedMap is a string keyed mapping that remembers the insertion order of its keys.
	//
	// Decoders produce it to retain the source order of object keys; the zero value is ready for
	// use.
	OrderedMap struct {
		entries []Entry
		index   map[string]int
	}
)

// NewOrderedMap instantiates an OrderedMap with room for capacity entries.
func NewOrderedMap(capacity int) *OrderedMap {
	return &OrderedMap{
		entries: make([]Entry, 0, capacity),
		index:   make(map[string]int, capacity),
	}
}

// Set a key's value.
//
// An existing key keeps its position & has its value replaced.
func (m *OrderedMap) Set(key string, value interface{}) (replaced bool) {
	if m.index == nil {
		m.index = make(map[string]int)
	}

	if pos, ok := m.index[key]; ok {
		m.entries[pos].Value = value
		return true
	}

	m.index[key] = len(m.entries)
	m.entries = append(m.entries, Entry{Key: key, Value: value})

	return
}

// Get a key's value.
func (m *OrderedMap) Get(key string) (value interface{}, ok bool) {
	var pos int
	if pos, ok = m.index[key]; ok {
		value = m.entries[pos].Value
	}

	return
}

// Has checks for the existence of a key.
func (m *OrderedMap) Has(key string) (ok bool) {
	_, ok = m.index[key]
	return
}

// Len is the number of entries.
func (m *OrderedMap) Len() int { return len(m.entries) }

// Keys in insertion order.
func (m *OrderedMap) Keys() (keys []string) {
	keys = make([]string, len(m.entries))
	for index := range m.entries {
		keys[index] = m.entries[index].Key
	}

	return
}

// Entries returns a copy of the entries in insertion order.
func (m *OrderedMap) Entries() (entries []Entry) {
	entries = make([]Entry, len(m.entries))
	copy(entries, m.entries)

	return
}

// Range calls fn for every entry in insertion order, stopping at the first error.
func (m *OrderedMap) Range(fn func(key string, value interface{}) error) (err error) {
	for index := range m.entries {
		if err = fn(m.entries[index].Key, m.entries[index].Value); err != nil {
			return
		}
	}

	return
}
