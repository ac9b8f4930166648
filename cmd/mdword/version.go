package main

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

// Build metadata, set via ldflags by the mage Build target.
var (
	commit = "unknown"
	date   = "unknown"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version of mdword",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(versionString())
	},
}

func versionString() string {
	return fmt.Sprintf("mdword %s (commit %s, built %s, %s)", version, commit, date, runtime.Version())
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
