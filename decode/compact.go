// SPDX-License-Identifier: MIT
package decode

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"

	"gitlab.com/fisherprime/orgchart/lexer"
	"gitlab.com/fisherprime/orgchart/types"
)

// Compact form errors.
var (
	ErrExcessiveValues     = errors.New("the compact source has values lacking end markers")
	ErrExcessiveEndMarkers = errors.New("the compact source has excessive end markers")
	ErrUnexpectedItem      = errors.New("unexpected item")
	ErrDuplicateEntry      = errors.New("reports defined more than once")
)

type (
	// compactFrame is a name whose reports are being read.
	compactFrame struct {
		name string

		// locked is set for a repeated name that already has reports; it only acts as a reference.
		locked bool
	}

	// compactParser builds the name → reports table from lexed Items.
	compactParser struct {
		reports map[string]types.StringSlice
		order   []string

		stack       []compactFrame
		expectValue bool
	}
)

// decodeCompact parses the compact marker form, e.g. `Abida Begum,Dave Bunt),James Ray))`.
//
// Every name is followed by its reports & an end marker; a splitter precedes every name but the
// first. Several top level names yield a forest. A repeated name without reports references the
// earlier entry.
func decodeCompact(ctx context.Context, r io.Reader, opts ...lexer.Option) (value interface{}, err error) {
	lexCtx, lexCancel := context.WithCancel(ctx)
	defer lexCancel()

	l := lexer.New(append(opts, lexer.WithSource(bufio.NewReader(r)))...)
	go l.Lex(lexCtx)

	p := &compactParser{reports: make(map[string]types.StringSlice), expectValue: true}

	for {
		item, proceed := l.Item()
		if !proceed {
			// Cancelled before the lexer reached the end of the source.
			err = ctx.Err()
			if err == nil {
				err = io.ErrUnexpectedEOF
			}

			return
		}

		switch item.ID {
		case lexer.ItemError:
			err = fmt.Errorf("%w: %v", ErrSyntax, item.Err)
			return
		case lexer.ItemEOF:
			return p.finish(l)
		case lexer.ItemValue:
			err = p.value(string(item.Val))
		case lexer.ItemSplitter:
			err = p.splitter()
		case lexer.ItemEndMarker:
			err = p.endMarker(l)
		}

		if err != nil {
			return
		}
	}
}

func (p *compactParser) value(name string) (err error) {
	if !p.expectValue {
		return fmt.Errorf("%w: value (%s) lacks a preceding splitter", ErrUnexpectedItem, name)
	}
	p.expectValue = false

	if depth := len(p.stack); depth > 0 {
		parent := p.stack[depth-1]
		if parent.locked {
			return fmt.Errorf("(%s) %w", parent.name, ErrDuplicateEntry)
		}
		p.reports[parent.name] = append(p.reports[parent.name], name)
	}

	existing, ok := p.reports[name]
	if !ok {
		p.reports[name] = types.StringSlice{}
		p.order = append(p.order, name)
	}
	p.stack = append(p.stack, compactFrame{name: name, locked: len(existing) > 0})

	return
}

func (p *compactParser) splitter() error {
	if p.expectValue {
		return fmt.Errorf("%w: splitter lacks a preceding value", ErrUnexpectedItem)
	}
	p.expectValue = true

	return nil
}

func (p *compactParser) endMarker(l *lexer.Lexer) error {
	if p.expectValue && len(p.order) > 0 {
		return fmt.Errorf("%w: end marker follows a splitter", ErrUnexpectedItem)
	}

	depth := len(p.stack)
	if depth < 1 {
		return fmt.Errorf("%w: unmatched %s", ErrExcessiveEndMarkers, string(l.EndMarker()))
	}
	p.stack = p.stack[:depth-1]

	return nil
}

func (p *compactParser) finish(l *lexer.Lexer) (value interface{}, err error) {
	if len(p.order) < 1 {
		err = ErrEmptySource
		return
	}

	if open := len(p.stack); open > 0 {
		err = fmt.Errorf("%w: +%d", ErrExcessiveValues, open)
		return
	}
	if p.expectValue {
		err = fmt.Errorf("%w: trailing splitter", ErrUnexpectedItem)
		return
	}

	m := types.NewOrderedMap(len(p.order))
	for _, name := range p.order {
		m.Set(name, p.reports[name])
	}
	// The lexer is done with its counters once it emits ItemEOF.
	l.Logger().Debugf("compact source: %d names, %d end markers", l.ValueCounter(), l.EndCounter())

	return m, nil
}
