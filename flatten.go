// SPDX-License-Identifier: MIT
package orgchart

import "context"

type (
	// FlattenOption defines the functional option type for flattening operations.
	FlattenOption func(*flattenOpts)

	flattenOpts struct {
		unique bool
	}
)

// WithUnique lists every employee once.
//
// An employee reporting to several managers is listed at its first occurrence; later occurrences
// are skipped along with their (already listed) reports.
func WithUnique() FlattenOption { return func(f *flattenOpts) { f.unique = true } }

func newFlattenOpts(options ...FlattenOption) *flattenOpts {
	f := &flattenOpts{}
	for _, opt := range options {
		opt(f)
	}

	return f
}

// Flatten lists the sub-organization led by start: start followed by all of its transitive reports.
//
// The list is a pre-order, depth-first traversal; managers precede their reports & siblings keep
// their source order. Any missing name fails the whole operation with ErrNotFound & no partial
// list is returned.
func (o *Organization) Flatten(ctx context.Context, start string, options ...FlattenOption) (names []string, err error) {
	opts := newFlattenOpts(options...)

	var seen map[string]struct{}
	if opts.unique {
		seen = make(map[string]struct{})
	}

	names = make([]string, 0, 1)
	err = o.Walk(ctx, start, func(name string, _ int, _ []string) error {
		if seen != nil {
			if _, ok := seen[name]; ok {
				return SkipReports
			}
			seen[name] = struct{}{}
		}

		names = append(names, name)

		return nil
	})
	if err != nil {
		return nil, err
	}

	if o.cfg.Debug {
		o.cfg.Logger.Debugf("flattened (%s): %+v", start, names)
	}

	return
}

// Subordinates lists the sub-organization led by start, omitting start.
func (o *Organization) Subordinates(ctx context.Context, start string, options ...FlattenOption) (names []string, err error) {
	if names, err = o.Flatten(ctx, start, options...); err != nil {
		return
	}

	// Omit self from the list.
	return names[1:], nil
}

// Leaves lists the employees without reports in the sub-organization led by start, in pre-order.
func (o *Organization) Leaves(ctx context.Context, start string, options ...FlattenOption) (leaves []string, err error) {
	opts := newFlattenOpts(options...)

	var seen map[string]struct{}
	if opts.unique {
		seen = make(map[string]struct{})
	}

	leaves = make([]string, 0)
	err = o.Walk(ctx, start, func(name string, _ int, reports []string) error {
		if seen != nil {
			if _, ok := seen[name]; ok {
				return SkipReports
			}
			seen[name] = struct{}{}
		}

		if len(reports) < 1 {
			leaves = append(leaves, name)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return
}
