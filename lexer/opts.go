// SPDX-License-Identifier: MIT
package lexer

import (
	"github.com/sirupsen/logrus"
)

type (
	// Config defines options shared by the Lexer & the compact serializer.
	Config struct {
		Logger    logrus.FieldLogger
		Debug     bool
		EndMarker rune
		Splitter  rune
	}
)

const (
	// DefaultEndMarker a `rune` indicating the end of an employee's reports.
	DefaultEndMarker = ')'

	// DefaultSplitter is the character separating names in the compact form.
	DefaultSplitter = ','

	emptyRune rune = 0
)

// DefaultConfig creates a Config populated with defaults.
func DefaultConfig() *Config {
	return &Config{
		EndMarker: DefaultEndMarker,
		Splitter:  DefaultSplitter,
		Logger:    logrus.New(),
	}
}

// Validate populates missing Config entries with defaults.
func (c *Config) Validate() {
	if c.EndMarker == emptyRune {
		c.EndMarker = DefaultEndMarker
	}
	if c.Splitter == emptyRune {
		c.Splitter = DefaultSplitter
	}
	if c.Logger == nil {
		c.Logger = logrus.New()
	}
}

// WithDebug configures the debug option.
func WithDebug(debug bool) Option { return func(l *Lexer) { l.debug = debug } }

// WithEndMarker configures the endMarker option.
func WithEndMarker(r rune) Option { return func(l *Lexer) { l.endMarker = r } }

// WithSplitter configures the splitter option.
func WithSplitter(r rune) Option { return func(l *Lexer) { l.splitter = r } }

// WithLogger configures the logger option.
func WithLogger(logger logrus.FieldLogger) Option { return func(l *Lexer) { l.logger = logger } }

// WithConfig applies a Config, defaulting its missing entries without modifying it.
func WithConfig(cfg *Config) Option {
	return func(l *Lexer) {
		c := *cfg
		c.Validate()
		l.debug, l.endMarker, l.splitter, l.logger = c.Debug, c.EndMarker, c.Splitter, c.Logger
	}
}
