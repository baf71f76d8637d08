package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/phanxgames/lectern"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of lectern",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "lectern version %s\n", lectern.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
