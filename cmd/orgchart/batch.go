// SPDX-License-Identifier: MIT
package main

import (
	"context"
	"fmt"

	"github.com/panjf2000/ants/v2"

	"gitlab.com/fisherprime/orgchart"
	"gitlab.com/fisherprime/orgchart/types"
)

// subOrganization is the flattened sub-organization led by Start.
type subOrganization struct {
	Start string   `json:"start" yaml:"start"`
	Names []string `json:"names" yaml:"names"`
}

// flattenAll flattens the sub-organizations of starts over a worker pool, keeping the order of
// starts in the results.
//
// The Organization is only read, so the queries share it without locking.
func (a *app) flattenAll(ctx context.Context, org *orgchart.Organization, starts []string, options ...orgchart.FlattenOption) (results []subOrganization, err error) {
	pool, err := ants.NewPool(a.cfg.Workers, ants.WithLogger(a.logger))
	if err != nil {
		return nil, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	results = make([]subOrganization, len(starts))

	done := make(chan struct{}, len(starts))
	errChan := make(chan error, len(starts))

	var completed types.SafeCounter

	for index := range starts {
		index := index

		if err = pool.Submit(func() {
			names, err := org.Flatten(ctx, starts[index], options...)
			if err != nil {
				errChan <- err
				return
			}

			results[index] = subOrganization{Start: starts[index], Names: names}
			completed.Inc()
			done <- struct{}{}
		}); err != nil {
			return nil, fmt.Errorf("submit query (%s): %w", starts[index], err)
		}
	}

	err = types.MonitorChannels(ctx, len(starts), done, errChan, "flatten")

	a.logger.WithField("completed", completed.Value()).WithField("requested", len(starts)).Debug("batch flatten")

	if err != nil {
		return nil, err
	}

	return
}
