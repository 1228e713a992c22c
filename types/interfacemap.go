// SPDX-License-Identifier: MIT
package types

type (
	// InterfaceMap is a generic decoded mapping, as produced by `encoding/json` & `yaml` decoders
	// targeting `map[string]interface{}`.
	InterfaceMap map[string]interface{}
)

// Keys of the `InterfaceMap` in ascending order.
func (a *InterfaceMap) Keys() []string { return SortedKeys(*a) }

// ToOrderedMap converts the `InterfaceMap` into an OrderedMap with keys in ascending order.
func (a *InterfaceMap) ToOrderedMap() (m *OrderedMap) {
	m = NewOrderedMap(len(*a))
	for _, key := range a.Keys() {
		m.Set(key, (*a)[key])
	}

	return
}
