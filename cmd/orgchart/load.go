// SPDX-License-Identifier: MIT
package main

import (
	"context"
	"fmt"
	"io"

	"gitlab.com/fisherprime/orgchart"
	"gitlab.com/fisherprime/orgchart/decode"
	"gitlab.com/fisherprime/orgchart/lexer"
)

// inputFormat resolves the input format: the flag, else the file extension, else JSON.
func (a *app) inputFormat() (format decode.Format, err error) {
	if a.cfg.Format != "" {
		return decode.ParseFormat(a.cfg.Format)
	}

	if a.cfg.Input != stdinPath {
		if f, ok := decode.FormatFromPath(a.cfg.Input); ok {
			return f, nil
		}
	}

	return decode.FormatJSON, nil
}

// load decodes & imports the configured hierarchy source.
func (a *app) load(ctx context.Context) (org *orgchart.Organization, err error) {
	format, err := a.inputFormat()
	if err != nil {
		return
	}

	var r io.Reader = a.stdin
	if a.cfg.Input != stdinPath && a.cfg.Input != "" {
		f, err := a.fs.Open(a.cfg.Input)
		if err != nil {
			return nil, fmt.Errorf("open input: %w", err)
		}
		defer f.Close()

		r = f
	}

	a.logger.WithField("input", a.cfg.Input).WithField("format", format).Debug("loading hierarchy")

	value, err := decode.Decode(ctx, r, format, lexer.WithConfig(a.lexerConfig()))
	if err != nil {
		return
	}

	return orgchart.Import(ctx, value, orgchart.WithConfig(&orgchart.Config{
		Logger: a.logger,
		Debug:  a.cfg.Debug,
	}))
}
