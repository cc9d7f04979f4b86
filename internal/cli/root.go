// Package cli implements the aspectd command tree.
package cli

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:          "aspectd",
	Short:        "Demo daemon running operations through an interception pipeline",
	Long:         `aspectd serves a single login endpoint whose service call is wrapped by before, after and around logging advice.`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
