// SPDX-License-Identifier: MIT

// Package decode turns serialized reporting hierarchies into the generic values consumed by
// orgchart.Import.
package decode

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"gitlab.com/fisherprime/orgchart/lexer"
)

// Format identifies a serialization format.
type Format string

// Supported formats.
const (
	FormatJSON    Format = "json"
	FormatYAML    Format = "yaml"
	FormatCompact Format = "compact"
)

// Decoding errors.
var (
	ErrEmptySource   = errors.New("empty decoding source")
	ErrSyntax        = errors.New("syntax error")
	ErrUnknownFormat = errors.New("unknown format")
)

var extensions = map[string]Format{
	".json": FormatJSON,
	".yaml": FormatYAML,
	".yml":  FormatYAML,
	".org":  FormatCompact,
	".txt":  FormatCompact,
}

// ParseFormat validates a format name.
func ParseFormat(name string) (f Format, err error) {
	switch f = Format(strings.ToLower(strings.TrimSpace(name))); f {
	case FormatJSON, FormatYAML, FormatCompact:
	default:
		err = fmt.Errorf("%w: %q", ErrUnknownFormat, name)
	}

	return
}

// FormatFromPath infers a format from a file extension.
func FormatFromPath(path string) (f Format, ok bool) {
	f, ok = extensions[strings.ToLower(filepath.Ext(path))]
	return
}

// Decode reads a serialized hierarchy from r.
//
// The result is a *types.OrderedMap for well-formed mappings; any other shape is returned as
// decoded, leaving shape validation to orgchart.Import. JSON & YAML sources hold a single
// document; trailing content & duplicate mapping keys fail with ErrSyntax. The lexer options apply
// to FormatCompact.
func Decode(ctx context.Context, r io.Reader, format Format, opts ...lexer.Option) (value interface{}, err error) {
	select {
	case <-ctx.Done():
		err = ctx.Err()
		return
	default:
	}

	switch format {
	case FormatJSON, FormatYAML:
		value, err = decodeNode(r)
	case FormatCompact:
		value, err = decodeCompact(ctx, r, opts...)
	default:
		err = fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}

	if err != nil {
		err = fmt.Errorf("decode %s: %w", format, err)
	}

	return
}
