// SPDX-License-Identifier: MIT
package types

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/exp/constraints"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

type (
	// StringSlice for `string`.
	StringSlice []string
)

// Conversion errors.
var (
	ErrNotSlice  = errors.New("not a sequence")
	ErrNotString = errors.New("not a string")
)

// ToStringSlice converts a decoded sequence into a StringSlice.
//
// Accepts `[]interface{}` holding only strings, `[]string` & StringSlice; the result never aliases
// the source.
func ToStringSlice(val interface{}) (result StringSlice, err error) {
	switch src := val.(type) {
	case StringSlice:
		result = slices.Clone(src)
	case []string:
		result = slices.Clone(src)
	case []interface{}:
		result = make(StringSlice, len(src))

		var ok bool
		for index := range src {
			if result[index], ok = src[index].(string); !ok {
				err = fmt.Errorf("element %d (%T) %w", index, src[index], ErrNotString)
				result = nil
				return
			}
		}
	default:
		err = fmt.Errorf("%T is %w", val, ErrNotSlice)
	}

	if result == nil && err == nil {
		// Keep empty lists distinguishable from failed conversions.
		result = StringSlice{}
	}

	return
}

// SortedKeys lists a map's keys in ascending order.
func SortedKeys[K constraints.Ordered, V any](m map[K]V) (keys []K) {
	keys = maps.Keys(m)
	slices.Sort(keys)

	return
}

// Locate for `StringSlice`.
func (sl *StringSlice) Locate(val string) int { return slices.Index(*sl, val) }

// UniqueAppend to `StringSlice`.
func (sl *StringSlice) UniqueAppend(values ...string) {
	for index := range values {
		if sl.Locate(values[index]) > -1 {
			continue
		}

		*sl = append(*sl, values[index])
	}
}

// String is the fmt.Stringer implementation for `StringSlice`.
func (sl StringSlice) String() string { return "[" + strings.Join(sl, ", ") + "]" }
