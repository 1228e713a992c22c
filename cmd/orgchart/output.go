// SPDX-License-Identifier: MIT
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

type (
	// textRenderer is implemented by results with a plain text form.
	textRenderer interface {
		renderText(w io.Writer) error
	}

	nameList  []string
	levelList [][]string
	batchList []subOrganization

	// compactForm is a subtree in the compact marker form.
	compactForm struct {
		Start   string `json:"start" yaml:"start"`
		Compact string `json:"compact" yaml:"compact"`
	}

	treeLine struct {
		Name  string `json:"name" yaml:"name"`
		Depth int    `json:"depth" yaml:"depth"`
	}
	treeLines []treeLine
)

const treeIndent = "  "

// render writes a command result in the configured output format.
func (a *app) render(result textRenderer) (err error) {
	switch a.cfg.Output {
	case outputJSON:
		encoder := json.NewEncoder(a.stdout)
		encoder.SetIndent("", "  ")
		err = encoder.Encode(result)
	case outputYAML:
		encoder := yaml.NewEncoder(a.stdout)
		encoder.SetIndent(2)
		if err = encoder.Encode(result); err == nil {
			err = encoder.Close()
		}
	default:
		err = result.renderText(a.stdout)
	}

	if err != nil {
		err = fmt.Errorf("render %s: %w", a.cfg.Output, err)
	}

	return
}

func (l nameList) renderText(w io.Writer) (err error) {
	for _, name := range l {
		if _, err = fmt.Fprintln(w, name); err != nil {
			return
		}
	}

	return
}

func (l levelList) renderText(w io.Writer) (err error) {
	for depth, level := range l {
		if _, err = fmt.Fprintf(w, "%d: %s\n", depth, strings.Join(level, ", ")); err != nil {
			return
		}
	}

	return
}

// renderText separates the sub-organizations with blank lines.
func (l batchList) renderText(w io.Writer) (err error) {
	for index, sub := range l {
		if index > 0 {
			if _, err = fmt.Fprintln(w); err != nil {
				return
			}
		}

		if err = nameList(sub.Names).renderText(w); err != nil {
			return
		}
	}

	return
}

func (c compactForm) renderText(w io.Writer) (err error) {
	_, err = fmt.Fprintln(w, c.Compact)
	return
}

func (l treeLines) renderText(w io.Writer) (err error) {
	for _, line := range l {
		if _, err = fmt.Fprintf(w, "%s%s\n", strings.Repeat(treeIndent, line.Depth), line.Name); err != nil {
			return
		}
	}

	return
}
