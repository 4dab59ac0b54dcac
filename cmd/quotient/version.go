package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/quotient"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of quotient",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "quotient version %s\n", strings.TrimSpace(quotient.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
