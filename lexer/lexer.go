// SPDX-License-Identifier: MIT
package lexer

// REF: https://github.com/sh4t/sql-parser
// REF: https://gitlab.com/fisherprime/go-ddbms/-/blob/master/internal/v1/lexer.go

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/sirupsen/logrus"
)

type (
	// NextOperation type for the next function to be executed
	NextOperation func(context.Context) NextOperation

	// ValidationFunction type for functions that validate rune identities
	ValidationFunction func(rune) bool

	// Lexer defines a type to capture names & markers from the compact form.
	Lexer struct {
		debug     bool
		endMarker rune
		splitter  rune
		logger    logrus.FieldLogger

		// c is a channel for communicating lexed Items.
		c chan Item

		// source is the input source.
		source io.RuneReader
		// sourceErr holds the first non io.EOF read failure.
		sourceErr error

		// buffer is a slice of runes being lexed.
		buffer []rune
		// bufferIndex is the current buffer position.
		//
		// When this value reaches the length of buffer, the buffer is populated from the source.
		bufferIndex int

		valueCounter int
		endCounter   int
	}

	// Option defines the Lexer functional option type
	Option func(*Lexer)
)

const (
	sourceLimit   = 32
	defBufferSize = 10
)

// Lexing errors.
var (
	ErrInvalidPeekLength   = errors.New("invalid peek length")
	ErrInvalidBackupAmount = errors.New("invalid backup amount")
	ErrUnknownTokens       = errors.New("unknown tokens")
)

// Improves on performance compared to ORs.
var whitespace = [256]bool{
	' ':  true,
	'\t': true,
	'\r': true,
	'\n': true,
}

// New creates a new scanner, the source defaults to an empty reader.
func New(opts ...Option) *Lexer {
	l := &Lexer{
		endMarker: DefaultEndMarker,
		splitter:  DefaultSplitter,
		logger:    logrus.New(),

		c: make(chan Item, defBufferSize),

		buffer: make([]rune, 0, defBufferSize),
		source: strings.NewReader(""),
	}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

// WithSource configures the source option.
func WithSource(source io.RuneReader) Option { return func(l *Lexer) { l.source = source } }

// EndMarker obtains the configured end marker.
func (l *Lexer) EndMarker() rune { return l.endMarker }

// Splitter obtains the configured value splitter.
func (l *Lexer) Splitter() rune { return l.splitter }

// ValueCounter obtains the number of values lexed so far.
func (l *Lexer) ValueCounter() int { return l.valueCounter }

// EndCounter obtains the number of end markers lexed so far.
func (l *Lexer) EndCounter() int { return l.endCounter }

// Logger obtains the logger.
func (l *Lexer) Logger() logrus.FieldLogger { return l.logger }

// Lex lexes the input by executing state functions, closing the Item channel when done.
//
// A cancelled context.Context stops the lexer; consumers abandoning the Item channel early should
// cancel it to release the goroutine.
func (l *Lexer) Lex(ctx context.Context) {
	defer close(l.c)

	for stateFunction := l.LexWhitespace; stateFunction != nil; {
		select {
		case <-ctx.Done():
			return
		default:
			stateFunction = stateFunction(ctx)
		}
	}
}

// LexWhitespace discards whitespace & dispatches on the next rune.
func (l *Lexer) LexWhitespace(ctx context.Context) NextOperation {
	if err := l.AcceptWhile(isWhitespace); err != nil {
		l.Discard()
		l.EmitError(ctx, err)
		return nil
	}
	// Ignore white spaces, discard instead of emit.
	l.Discard()

	next, err := l.Next()
	if err != nil {
		l.EmitError(ctx, err)
		return nil
	}

	switch {
	case next == l.endMarker:
		l.endCounter++
		l.Emit(ctx, ItemEndMarker)

		return l.LexWhitespace
	case next == l.splitter:
		l.Emit(ctx, ItemSplitter)

		return l.LexWhitespace
	case l.isValue(next):
		return l.LexValue
	default:
		if err = l.Backup(); err != nil {
			l.EmitError(ctx, err)
			return nil
		}

		nextRunes, _ := l.PeekN(sourceLimit)
		l.EmitError(ctx, fmt.Errorf("%w: %q", ErrUnknownTokens, string(nextRunes)))

		return nil
	}
}

// LexValue captures a name.
//
// Names run up to the next splitter, end marker or control character.
func (l *Lexer) LexValue(ctx context.Context) NextOperation {
	err := l.AcceptWhile(l.isValue)

	l.valueCounter++
	l.Emit(ctx, ItemValue)

	if err != nil {
		l.EmitError(ctx, err)
		return nil
	}

	return l.LexWhitespace
}

// Next return the Next rune in the input.
func (l *Lexer) Next() (r rune, err error) {
	if l.bufferIndex >= len(l.buffer) {
		// Request data from the source.
		if l.Source(0) < 1 {
			err = io.EOF
			if l.sourceErr != nil {
				err = l.sourceErr
			}

			return
		}
	}

	r = l.buffer[l.bufferIndex]
	l.bufferIndex++

	return
}

// Peek return the next rune, without updating the index.
func (l *Lexer) Peek() (r rune, err error) {
	list, err := l.PeekN(1)
	if err != nil {
		return
	}
	r = list[0]

	return
}

// PeekN return the next N runes, without updating the index.
//
// This operation will return a shorter slice if the the end of the source is reached.
func (l *Lexer) PeekN(n int) (list []rune, err error) {
	if n < 1 {
		err = fmt.Errorf("%w: %d", ErrInvalidPeekLength, n)
		return
	}

	if missing := l.bufferIndex + n - len(l.buffer); missing > 0 {
		// Request data from the source.
		l.Source(missing)
	}

	limit := l.bufferIndex + n
	if limit > len(l.buffer) {
		limit = len(l.buffer)
	}
	if limit <= l.bufferIndex {
		err = io.EOF
		return
	}

	list = l.buffer[l.bufferIndex:limit]

	return
}

// Backup step back one rune.
func (l *Lexer) Backup() error { return l.BackupN(1) }

// BackupN step back N runes.
func (l *Lexer) BackupN(n int) (err error) {
	if n < 0 || l.bufferIndex < n {
		err = fmt.Errorf("%w: amount %d index: %d", ErrInvalidBackupAmount, n, l.bufferIndex)
		return
	}
	l.bufferIndex -= n

	return
}

// Discard the buffer content before the current buffer index.
func (l *Lexer) Discard() {
	l.buffer = l.buffer[l.bufferIndex:]
	l.bufferIndex = 0
}

// Source runes from the source reader, returning the amount read.
func (l *Lexer) Source(amount int) (sourced int) {
	if amount < defBufferSize {
		amount = defBufferSize
	}

	for ; sourced < amount; sourced++ {
		r, _, err := l.source.ReadRune()
		if err == nil {
			l.buffer = append(l.buffer, r)
			continue
		}

		if !errors.Is(err, io.EOF) && l.sourceErr == nil {
			l.sourceErr = err
		}

		break
	}

	return
}

// AcceptWhile consumes runes while condition is true.
func (l *Lexer) AcceptWhile(fn ValidationFunction) (err error) {
	for {
		var r rune
		if r, err = l.Next(); err != nil {
			// End of input.
			return
		}

		// End of current token type.
		if !fn(r) {
			return l.Backup()
		}
	}
}

// Emit sends the buffered runes as an Item over the communication channel.
func (l *Lexer) Emit(ctx context.Context, t ItemID) {
	buf := []byte(string(l.buffer[:l.bufferIndex]))
	if t == ItemValue {
		buf = bytes.TrimSpace(buf)
	}

	if l.debug {
		l.logger.Debugf("lexer emit %s: %q", t, buf)
	}

	l.send(ctx, Item{ID: t, Val: buf})
	l.Discard()
}

// EmitEOF sends an ItemEOF Item over the communication channel.
func (l *Lexer) EmitEOF(ctx context.Context) { l.send(ctx, Item{ID: ItemEOF}) }

// EmitError sends an error over the Lexer's channel.
//
// This terminates the scan process with an error or an ItemEOF for io.EOF.
func (l *Lexer) EmitError(ctx context.Context, err error) {
	if errors.Is(err, io.EOF) {
		l.EmitEOF(ctx)
		return
	}

	l.send(ctx, Item{ID: ItemError, Err: err})
}

func (l *Lexer) send(ctx context.Context, item Item) {
	select {
	case <-ctx.Done():
	case l.c <- item:
	}
}

// Item return a lexed Item from the input.
func (l *Lexer) Item() (i Item, ok bool) {
	i, ok = <-l.c
	return
}

// isValue return true for runes allowed in a name.
func (l *Lexer) isValue(r rune) bool {
	return r != l.splitter && r != l.endMarker && !unicode.IsControl(r)
}

// isWhitespace return true for whitespace, newline & carriage return.
func isWhitespace(r rune) bool { return r < 256 && whitespace[r] }
