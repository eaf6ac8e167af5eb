// Package cli holds the logstat command tree.
package cli

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

func NewRootCommand(version, commit string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "logstat",
		Short: "Log statistics service and parser",
		Long: `logstat turns plain-text log files into statistics: per-level counts,
per-user line counts and actions, collected errors and a chronological timeline.

Run "logstat serve" for the upload service or "logstat parse" for a one-off file.`,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(newServeCommand())
	rootCmd.AddCommand(newParseCommand())
	rootCmd.AddCommand(newVersionCommand(version, commit))

	return rootCmd
}

func newVersionCommand(version, commit string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			if version == "" {
				version = "dev"
			}
			if commit == "" {
				commit = "local-build"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "logstat %s (%s) %s %s/%s\n",
				version, commit, runtime.Version(), runtime.GOOS, runtime.GOARCH)
		},
	}
}
