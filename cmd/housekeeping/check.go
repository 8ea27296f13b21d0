package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"housekeeping/warnings"
)

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <filters.yaml|filters.toml>",
		Short: "Validate a warning filter file",
		Long:  `Parse a YAML or TOML warning filter file and list its rules in evaluation order`,
		Args:  cobra.ExactArgs(1),
		RunE:  runCheck,
	}
}

func runCheck(cmd *cobra.Command, args []string) error {
	filters, err := warnings.LoadFilters(args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, headerColor.Sprintf("%s: %d filters", args[0], len(filters)))

	for i, f := range filters {
		fmt.Fprintf(out, "%3d  %s  %s\n", i+1, actionColor.Sprintf("%-7s", f.Action), f)
	}

	return nil
}
