// Package main provides the housekeeping CLI.
//
// housekeeping validates warning filter files and explains which action a
// filter list assigns to a given warning:
//   - check: parse a YAML or TOML filter file and list its rules
//   - explain: resolve the action for a category, message, package and line
package main

import (
	"os"

	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "housekeeping",
		Short:         "Inspect deprecation warning filters",
		Long:          `housekeeping validates warning filter files and explains how they dispatch deprecation warnings`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			mode, err := cmd.Flags().GetString("color")
			if err != nil {
				return err
			}

			return setColorMode(mode)
		},
	}

	root.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")

	root.AddCommand(newCheckCmd())
	root.AddCommand(newExplainCmd())

	return root
}

func main() {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		root.PrintErrln(errorColor.Sprint("error: ") + err.Error())
		os.Exit(1)
	}
}
