package main

import (
	"github.com/spf13/cobra"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Summarize the flow",
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := openEngine(cmd.Context())
		if err != nil {
			return err
		}
		report, err := eng.Report(cmd.Context())
		if err != nil {
			return err
		}
		return writeJSON(cmd.OutOrStdout(), report)
	},
}

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Preview the payload served for testStepId",
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := openEngine(cmd.Context())
		if err != nil {
			return err
		}
		preview, err := eng.Preview(cmd.Context())
		if err != nil {
			return err
		}
		return writeJSON(cmd.OutOrStdout(), preview)
	},
}

var toolCmd = &cobra.Command{
	Use:   "tool",
	Short: "Print the lookup tool declaration offered to agents",
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := openEngine(cmd.Context())
		if err != nil {
			return err
		}
		return writeJSON(cmd.OutOrStdout(), eng.Tool())
	},
}

func init() {
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(toolCmd)
}
