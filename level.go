// SPDX-License-Identifier: MIT
package orgchart

import (
	"context"
	"fmt"
)

// FlattenByLevel lists the sub-organization led by start by level (breadth-first).
//
// Level 0 holds start, level n the employees n reports below it with siblings in source order.
// A chain of command longer than the organization's size can only come from a cycle & fails with
// ErrCyclic, as does any cycle when WithUnique is set.
func (o *Organization) FlattenByLevel(ctx context.Context, start string, options ...FlattenOption) (levels [][]string, err error) {
	opts := newFlattenOpts(options...)

	var seen map[string]struct{}
	if opts.unique {
		// Skipping listed employees also hides cycles from the level count; the depth-first walk
		// still reports them.
		if _, err = o.Flatten(ctx, start, options...); err != nil {
			return nil, err
		}
		seen = map[string]struct{}{start: {}}
	}

	levels = make([][]string, 0)
	peers := []string{start}

	for len(peers) > 0 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		if len(levels) > o.Len() {
			return nil, fmt.Errorf("(%s) %w", start, ErrCyclic)
		}
		levels = append(levels, peers)

		var next []string
		for _, name := range peers {
			reports, lookupErr := o.lookup(name)
			if lookupErr != nil {
				return nil, lookupErr
			}

			for _, report := range reports {
				if seen != nil {
					if _, ok := seen[report]; ok {
						continue
					}
					seen[report] = struct{}{}
				}

				next = append(next, report)
			}
		}
		peers = next
	}

	if o.cfg.Debug {
		o.cfg.Logger.Debugf("levels of (%s): %+v", start, levels)
	}

	return
}
