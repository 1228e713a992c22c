// SPDX-License-Identifier: MIT
package main

import (
	"github.com/spf13/cobra"

	"gitlab.com/fisherprime/orgchart"
)

func (a *app) flattenOptions() (options []orgchart.FlattenOption) {
	if a.cfg.Unique {
		options = append(options, orgchart.WithUnique())
	}

	return
}

func (a *app) flattenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "flatten NAME...",
		Short: "List the sub-organization led by each NAME, manager before reports",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			org, err := a.load(cmd.Context())
			if err != nil {
				return err
			}

			results, err := a.flattenAll(cmd.Context(), org, args, a.flattenOptions()...)
			if err != nil {
				return err
			}

			return a.render(batchList(results))
		},
	}
}

func (a *app) subordinatesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "subordinates NAME",
		Short: "List the sub-organization led by NAME, omitting NAME",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			org, err := a.load(cmd.Context())
			if err != nil {
				return err
			}

			names, err := org.Subordinates(cmd.Context(), args[0], a.flattenOptions()...)
			if err != nil {
				return err
			}

			return a.render(nameList(names))
		},
	}
}

func (a *app) levelsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "levels NAME",
		Short: "List the sub-organization led by NAME one level of reports at a time",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			org, err := a.load(cmd.Context())
			if err != nil {
				return err
			}

			levels, err := org.FlattenByLevel(cmd.Context(), args[0], a.flattenOptions()...)
			if err != nil {
				return err
			}

			return a.render(levelList(levels))
		},
	}
}

func (a *app) leavesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "leaves NAME",
		Short: "List the employees without reports in the sub-organization led by NAME",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			org, err := a.load(cmd.Context())
			if err != nil {
				return err
			}

			leaves, err := org.Leaves(cmd.Context(), args[0], a.flattenOptions()...)
			if err != nil {
				return err
			}

			return a.render(nameList(leaves))
		},
	}
}

func (a *app) treeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tree NAME",
		Short: "Print the sub-organization led by NAME indented by rank",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			org, err := a.load(cmd.Context())
			if err != nil {
				return err
			}

			seen := make(map[string]struct{})
			lines := treeLines{}

			err = org.Walk(cmd.Context(), args[0], func(name string, depth int, _ []string) error {
				lines = append(lines, treeLine{Name: name, Depth: depth})

				if a.cfg.Unique {
					// Repeated employees are listed without their reports.
					if _, ok := seen[name]; ok {
						return orgchart.SkipReports
					}
					seen[name] = struct{}{}
				}

				return nil
			})
			if err != nil {
				return err
			}

			return a.render(lines)
		},
	}
}

func (a *app) managersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "managers NAME",
		Short: "List the direct managers of NAME",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			org, err := a.load(cmd.Context())
			if err != nil {
				return err
			}

			managers, err := org.Managers(args[0])
			if err != nil {
				return err
			}

			return a.render(nameList(managers))
		},
	}
}

func (a *app) rootsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "roots",
		Short: "List the employees that report to nobody",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			org, err := a.load(cmd.Context())
			if err != nil {
				return err
			}

			return a.render(nameList(org.Roots()))
		},
	}
}

func (a *app) serializeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serialize NAME",
		Short: "Print the sub-organization led by NAME in the compact marker form",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			org, err := a.load(cmd.Context())
			if err != nil {
				return err
			}

			out, err := org.Serialize(cmd.Context(), args[0], a.lexerConfig())
			if err != nil {
				return err
			}

			return a.render(compactForm{Start: args[0], Compact: out})
		},
	}
}
