// SPDX-License-Identifier: MIT

// Package orgchart holds a flat reporting hierarchy (employee → ordered direct reports) & lists the
// sub-organization led by any of its employees.
package orgchart

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"golang.org/x/exp/slices"

	"gitlab.com/fisherprime/orgchart/types"
)

type (
	// Organization is a name keyed table of direct reports.
	//
	// Synchronization is unnecessary, the type is built once by Import & only read afterwards.
	Organization struct {
		// cfg contains a pointer to a [Config] shared with the Organization's operations.
		cfg *Config

		// people maps an employee to the ordered names reporting directly to them.
		people map[string]types.StringSlice

		// order holds the employees in insertion order.
		order types.StringSlice

		// managers maps an employee to the employees listing them as a direct report.
		managers map[string]types.StringSlice
	}

	// Config defines configuration options for [Organization] operations.
	Config struct {
		// Logger for [Organization] messages.
		//
		// Preferring a public field to allow for sharing.
		Logger logrus.FieldLogger
		Debug  bool
	}

	// Option defines the Organization functional option type.
	Option func(*Organization)
)

const (
	notFoundErrFmt = "(%s) %w"
)

// Errors encountered when handling an Organization.
var (
	ErrNotFound = errors.New("not found")
	ErrCyclic   = errors.New("reports to itself; hierarchy is cyclic")
)

var defConfig = DefConfig()

// DefConfig obtains the package's default [Config].
func DefConfig() *Config {
	return &Config{
		Logger: logrus.New(),
		Debug:  false,
	}
}

// WithConfig configures the [Organization] [Config].
func WithConfig(cfg *Config) Option {
	return func(o *Organization) {
		if cfg.Logger == nil {
			cfg.Logger = defConfig.Logger
		}
		o.cfg = cfg
	}
}

func newOrganization(options ...Option) *Organization {
	o := &Organization{
		cfg:      defConfig,
		people:   make(map[string]types.StringSlice),
		managers: make(map[string]types.StringSlice),
	}

	for _, opt := range options {
		opt(o)
	}

	return o
}

// Config retrieves the [Organization]'s Config.
func (o *Organization) Config() *Config { return o.cfg }

// Len is the number of employees keyed in the [Organization].
func (o *Organization) Len() int { return len(o.order) }

// Has checks for an employee's entry.
func (o *Organization) Has(name string) (ok bool) {
	_, ok = o.people[name]
	return
}

// Names lists the employees in insertion order.
func (o *Organization) Names() (names []string) {
	names = make([]string, len(o.order))
	copy(names, o.order)

	return
}

// Reports retrieves the ordered direct reports of an employee.
func (o *Organization) Reports(name string) (reports []string, err error) {
	list, ok := o.people[name]
	if !ok {
		err = fmt.Errorf(notFoundErrFmt, name, ErrNotFound)
		return
	}

	return slices.Clone(list), nil
}

// Managers retrieves the employees listing name as a direct report, in insertion order.
//
// A top level employee has no managers; a name that is neither keyed nor listed as a report is
// not found.
func (o *Organization) Managers(name string) (managers []string, err error) {
	list, ok := o.managers[name]
	if !ok && !o.Has(name) {
		err = fmt.Errorf(notFoundErrFmt, name, ErrNotFound)
		return
	}

	managers = slices.Clone(list)
	if managers == nil {
		managers = []string{}
	}

	return
}

// Roots lists the employees that are nobody's direct report, in insertion order.
func (o *Organization) Roots() (roots []string) {
	roots = []string{}
	for _, name := range o.order {
		if _, ok := o.managers[name]; !ok {
			roots = append(roots, name)
		}
	}

	return
}

// lookup is the unchecked form of Reports for traversals.
func (o *Organization) lookup(name string) (reports types.StringSlice, err error) {
	var ok bool
	if reports, ok = o.people[name]; !ok {
		err = fmt.Errorf(notFoundErrFmt, name, ErrNotFound)
	}

	return
}
