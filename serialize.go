// SPDX-License-Identifier: MIT
package orgchart

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode"

	"gitlab.com/fisherprime/orgchart/lexer"
)

// Serialization errors.
var (
	ErrReservedRune = errors.New("cannot be written in the compact form")
)

// Serialize writes the sub-organization led by start in the compact form read by the lexer.
//
// Each name is followed by its reports & an end marker, a splitter precedes every name but the
// first: `Abida Begum,Dave Bunt),James Ray))`. An employee met again through another manager is
// written without its reports.
func (o *Organization) Serialize(ctx context.Context, start string, cfg *lexer.Config) (output string, err error) {
	if cfg == nil {
		cfg = lexer.DefaultConfig()
	} else {
		// Defaults are filled in on a copy.
		c := *cfg
		cfg = &c
	}
	cfg.Validate()

	var buffer strings.Builder
	seen := make(map[string]struct{})
	prevDepth := -1

	err = o.Walk(ctx, start, func(name string, depth int, _ []string) error {
		if err := validCompactName(cfg, name); err != nil {
			return err
		}

		if prevDepth > -1 {
			// Close the previous employee & any finished ancestors.
			for closed := prevDepth; closed >= depth; closed-- {
				buffer.WriteRune(cfg.EndMarker)
			}
			buffer.WriteRune(cfg.Splitter)
		}
		buffer.WriteString(name)
		prevDepth = depth

		if _, ok := seen[name]; ok {
			return SkipReports
		}
		seen[name] = struct{}{}

		return nil
	})
	if err != nil {
		return
	}

	for ; prevDepth > -1; prevDepth-- {
		buffer.WriteRune(cfg.EndMarker)
	}
	output = buffer.String()

	if cfg.Debug {
		cfg.Logger.Debugf("serialized (%s): %s", start, output)
	}

	return
}

// validCompactName checks that the lexer would read name back unchanged.
func validCompactName(cfg *lexer.Config, name string) error {
	if name == "" || strings.TrimSpace(name) != name ||
		strings.ContainsRune(name, cfg.Splitter) || strings.ContainsRune(name, cfg.EndMarker) ||
		strings.IndexFunc(name, unicode.IsControl) > -1 {
		return fmt.Errorf("(%q) %w", name, ErrReservedRune)
	}

	return nil
}
