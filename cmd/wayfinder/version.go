package main

import (
	"fmt"

	"github.com/aretw0/wayfinder"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of wayfinder",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "wayfinder version %s\n", wayfinder.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
