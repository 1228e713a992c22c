// SPDX-License-Identifier: MIT
package orgchart

import (
	"context"
	"errors"
	"fmt"

	"gitlab.com/fisherprime/orgchart/types"
)

type (
	// WalkFunc is called for every employee visited by [Organization.Walk].
	//
	// depth is 0 for the starting employee; reports is the employee's own list & must not be
	// modified. Returning SkipReports skips the employee's reports, any other error stops the walk.
	WalkFunc func(name string, depth int, reports []string) error

	// walkFrame is a pending employee on the walk's work stack.
	walkFrame struct {
		name    string
		reports types.StringSlice

		// next is the index of the next report to visit.
		next int
	}
)

// SkipReports is used as a return value from a WalkFunc to skip the visited employee's reports.
var SkipReports = errors.New("skip reports")

// Walk performs a pre-order, depth-first, left-to-right traversal of the sub-organization led by
// start, calling fn for each employee.
//
// An explicit work stack replaces recursion so that the hierarchy's depth does not bound the call
// stack. Employees are looked up before fn is called: a missing name stops the walk with
// ErrNotFound. Re-entering an employee on the current chain of command stops the walk with
// ErrCyclic.
func (o *Organization) Walk(ctx context.Context, start string, fn WalkFunc) (err error) {
	// onPath holds the chain of command from start to the employee being visited.
	onPath := make(map[string]struct{})
	stack := make([]walkFrame, 0, 8)

	enter := func(name string, depth int) (err error) {
		if _, ok := onPath[name]; ok {
			return fmt.Errorf("(%s) %w", name, ErrCyclic)
		}

		reports, err := o.lookup(name)
		if err != nil {
			return
		}

		if err = fn(name, depth, reports); err != nil {
			if errors.Is(err, SkipReports) {
				err = nil
			}

			return
		}

		onPath[name] = struct{}{}
		stack = append(stack, walkFrame{name: name, reports: reports})

		return
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		if err = enter(start, 0); err != nil {
			return
		}
	}

	for len(stack) > 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		top := &stack[len(stack)-1]
		if top.next >= len(top.reports) {
			// All reports visited, pop.
			delete(onPath, top.name)
			stack = stack[:len(stack)-1]

			continue
		}

		report := top.reports[top.next]
		top.next++

		if err = enter(report, len(stack)); err != nil {
			return
		}
	}

	return
}
