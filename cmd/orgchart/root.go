// SPDX-License-Identifier: MIT
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"unicode/utf8"

	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"gitlab.com/fisherprime/orgchart/lexer"
)

type (
	// cliConfig holds the settings shared by every command, populated from the config file & then
	// the flags.
	cliConfig struct {
		Input     string `yaml:"input"`
		Format    string `yaml:"format"`
		Output    string `yaml:"output"`
		Workers   int    `yaml:"workers"`
		Unique    bool   `yaml:"unique"`
		Debug     bool   `yaml:"debug"`
		Splitter  string `yaml:"splitter"`
		EndMarker string `yaml:"end_marker"`
	}

	// app carries the I/O endpoints & the resolved configuration of one invocation.
	app struct {
		fs     afero.Fs
		stdin  io.Reader
		stdout io.Writer
		stderr io.Writer

		configPath string
		cfg        cliConfig
		logger     *logrus.Logger
	}
)

// Output formats.
const (
	outputText = "text"
	outputJSON = "json"
	outputYAML = "yaml"
)

const stdinPath = "-"

// CLI errors.
var (
	ErrInvalidOutput  = errors.New("invalid output format")
	ErrInvalidWorkers = errors.New("invalid worker count")
	ErrInvalidMarker  = errors.New("marker must be a single rune")
)

func defCLIConfig() cliConfig {
	return cliConfig{
		Input:     stdinPath,
		Output:    outputText,
		Workers:   runtime.NumCPU(),
		Splitter:  string(lexer.DefaultSplitter),
		EndMarker: string(lexer.DefaultEndMarker),
	}
}

func newApp(fs afero.Fs, stdin io.Reader, stdout, stderr io.Writer) *app {
	logger := logrus.New()
	logger.SetOutput(stderr)
	logger.SetFormatter(formatterFor(stderr))

	return &app{
		fs:     fs,
		stdin:  stdin,
		stdout: stdout,
		stderr: stderr,
		cfg:    defCLIConfig(),
		logger: logger,
	}
}

// execute runs the command line in args, logging any failure.
func execute(ctx context.Context, fs afero.Fs, stdin io.Reader, stdout, stderr io.Writer, args []string) (err error) {
	a := newApp(fs, stdin, stdout, stderr)

	cmd := a.rootCmd()
	cmd.SetArgs(args)

	if err = cmd.ExecuteContext(ctx); err != nil {
		a.logger.Error(err)
	}

	return
}

func (a *app) rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "orgchart",
		Short: "Query a reporting hierarchy",
		Long: `Query a reporting hierarchy: a mapping of employee names to their ordered direct reports,
read as JSON, YAML or the compact marker form (e.g. "Abida Begum,Dave Bunt),James Ray))").`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}
	cmd.SetIn(a.stdin)
	cmd.SetOut(a.stdout)
	cmd.SetErr(a.stderr)

	a.bindFlags(cmd.PersistentFlags())

	cmd.AddCommand(
		a.flattenCmd(),
		a.subordinatesCmd(),
		a.levelsCmd(),
		a.leavesCmd(),
		a.treeCmd(),
		a.managersCmd(),
		a.rootsCmd(),
		a.serializeCmd(),
	)

	return cmd
}

func (a *app) bindFlags(flags *pflag.FlagSet) {
	flags.StringVar(&a.configPath, "config", "", "YAML file holding defaults for the flags below")
	flags.StringVarP(&a.cfg.Input, "input", "i", a.cfg.Input, `hierarchy source path, "-" for stdin`)
	flags.StringVarP(&a.cfg.Format, "format", "f", a.cfg.Format, "input format: json, yaml or compact (default: from the file extension, else json)")
	flags.StringVarP(&a.cfg.Output, "output", "o", a.cfg.Output, "output format: text, json or yaml")
	flags.IntVar(&a.cfg.Workers, "workers", a.cfg.Workers, "concurrent queries for multi-name commands")
	flags.BoolVar(&a.cfg.Unique, "unique", a.cfg.Unique, "list employees with several managers once")
	flags.BoolVar(&a.cfg.Debug, "debug", a.cfg.Debug, "enable debug logging")
	flags.StringVar(&a.cfg.Splitter, "splitter", a.cfg.Splitter, "compact form name splitter")
	flags.StringVar(&a.cfg.EndMarker, "end-marker", a.cfg.EndMarker, "compact form end marker")
}

// setup merges the config file under the flags, validates the result & configures the logger.
func (a *app) setup(cmd *cobra.Command, _ []string) (err error) {
	if a.configPath != "" {
		if err = a.mergeConfigFile(cmd.Flags()); err != nil {
			return
		}
	}

	if a.cfg.Debug {
		a.logger.SetLevel(logrus.DebugLevel)
	}

	switch a.cfg.Output {
	case outputText, outputJSON, outputYAML:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidOutput, a.cfg.Output)
	}

	if a.cfg.Workers < 1 {
		return fmt.Errorf("%w: %d", ErrInvalidWorkers, a.cfg.Workers)
	}

	for _, marker := range []string{a.cfg.Splitter, a.cfg.EndMarker} {
		if utf8.RuneCountInString(marker) != 1 {
			return fmt.Errorf("%w: %q", ErrInvalidMarker, marker)
		}
	}

	if a.cfg.Debug {
		a.logger.WithField("config", fmt.Sprintf("%+v", a.cfg)).Debug("configured")
	}

	return
}

// mergeConfigFile reads the YAML config file, keeping values of flags set on the command line.
func (a *app) mergeConfigFile(flags *pflag.FlagSet) (err error) {
	data, err := afero.ReadFile(a.fs, a.configPath)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	file := defCLIConfig()
	if err = yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("parse config (%s): %w", a.configPath, err)
	}

	fields := map[string]func(){
		"input":      func() { a.cfg.Input = file.Input },
		"format":     func() { a.cfg.Format = file.Format },
		"output":     func() { a.cfg.Output = file.Output },
		"workers":    func() { a.cfg.Workers = file.Workers },
		"unique":     func() { a.cfg.Unique = file.Unique },
		"debug":      func() { a.cfg.Debug = file.Debug },
		"splitter":   func() { a.cfg.Splitter = file.Splitter },
		"end-marker": func() { a.cfg.EndMarker = file.EndMarker },
	}
	for name, apply := range fields {
		if !flags.Changed(name) {
			apply()
		}
	}

	return
}

// lexerConfig obtains the compact form settings.
func (a *app) lexerConfig() *lexer.Config {
	splitter, _ := utf8.DecodeRuneInString(a.cfg.Splitter)
	endMarker, _ := utf8.DecodeRuneInString(a.cfg.EndMarker)

	return &lexer.Config{
		Logger:    a.logger,
		Debug:     a.cfg.Debug,
		Splitter:  splitter,
		EndMarker: endMarker,
	}
}

// formatterFor picks human readable logs for terminals & JSON logs otherwise.
func formatterFor(w io.Writer) logrus.Formatter {
	if f, ok := w.(*os.File); ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())) {
		return &logrus.TextFormatter{FullTimestamp: true}
	}

	return &logrus.JSONFormatter{}
}
