// SPDX-License-Identifier: MIT
package orgchart

import (
	"context"
	"errors"
	"fmt"

	"github.com/davecgh/go-spew/spew"

	"gitlab.com/fisherprime/orgchart/types"
)

// Import errors.
var (
	ErrImport        = errors.New("failed to import organization")
	ErrInvalidFormat = errors.New("invalid organization format")
	ErrPanicked      = errors.New("recovery from panic")
)

// Import builds an [Organization] from a decoded value: a mapping of employee names to sequences of
// report names.
//
// Accepted mappings are *types.OrderedMap (keeping source order), types.InterfaceMap,
// map[string]interface{} & map[string][]string (ascending key order). Accepted sequences are
// []interface{} holding strings, []string & types.StringSlice.
//
// The value is validated in one pass; the first structural violation rejects the whole value with
// ErrInvalidFormat. Report names lacking an entry of their own are accepted here & only fail
// traversals.
func Import(ctx context.Context, value interface{}, options ...Option) (o *Organization, err error) {
	o = newOrganization(options...)
	cfg := o.cfg

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrPanicked, r)
		}

		if err != nil {
			// Skip expensive operation if not debug.
			if cfg.Debug {
				cfg.Logger.Debugf("import source: %s", spew.Sdump(value))
			}

			o, err = nil, fmt.Errorf("%w: %w", ErrImport, err)
		}
	}()

	switch src := value.(type) {
	case *types.OrderedMap:
		if src == nil {
			err = fmt.Errorf("%w: top level is nil", ErrInvalidFormat)
			return
		}
		err = src.Range(func(key string, val interface{}) error { return o.insert(ctx, key, val) })
	case types.OrderedMap:
		err = src.Range(func(key string, val interface{}) error { return o.insert(ctx, key, val) })
	case types.InterfaceMap:
		err = src.ToOrderedMap().Range(func(key string, val interface{}) error { return o.insert(ctx, key, val) })
	case map[string]interface{}:
		err = importMap(ctx, o, src)
	case map[string][]string:
		err = importMap(ctx, o, src)
	case nil:
		err = fmt.Errorf("%w: top level is nil", ErrInvalidFormat)
	default:
		err = fmt.Errorf("%w: top level is %T, not a mapping", ErrInvalidFormat, value)
	}
	if err != nil {
		return
	}

	o.indexManagers()

	if cfg.Debug {
		cfg.Logger.Debugf("imported %d employees, roots: %v", o.Len(), o.Roots())
	}

	return
}

// importMap inserts an unordered mapping in ascending key order to keep imports reproducible.
func importMap[V any](ctx context.Context, o *Organization, src map[string]V) (err error) {
	for _, key := range types.SortedKeys(src) {
		if err = o.insert(ctx, key, src[key]); err != nil {
			return
		}
	}

	return
}

// insert an employee's entry, validating the reports' shape.
func (o *Organization) insert(ctx context.Context, name string, val interface{}) (err error) {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	reports, err := types.ToStringSlice(val)
	if err != nil {
		return fmt.Errorf("%w: reports of (%s): %w", ErrInvalidFormat, name, err)
	}

	if _, ok := o.people[name]; !ok {
		o.order = append(o.order, name)
	}
	o.people[name] = reports

	return
}

// indexManagers populates the reverse (report → managers) index.
func (o *Organization) indexManagers() {
	for _, manager := range o.order {
		for _, report := range o.people[manager] {
			list := o.managers[report]
			list.UniqueAppend(manager)
			o.managers[report] = list
		}
	}
}
