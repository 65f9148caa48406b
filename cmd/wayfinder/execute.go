package main

import (
	"github.com/aretw0/wayfinder"
	"github.com/spf13/cobra"
)

var executeCmd = &cobra.Command{
	Use:   "execute",
	Short: "Run every batch item of the flow",
	Long: `Runs every item of the parameter source. Items in aiTool mode produce a
report, items in test mode a preview of their testStepId.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		continueOnFail, _ := cmd.Flags().GetBool("continue-on-fail")

		eng, err := openEngine(cmd.Context(), wayfinder.WithContinueOnFail(continueOnFail))
		if err != nil {
			return err
		}
		results, err := eng.Execute(cmd.Context())
		if err != nil {
			if len(results) > 0 {
				_ = writeJSON(cmd.OutOrStdout(), results)
			}
			return err
		}
		return writeJSON(cmd.OutOrStdout(), results)
	},
}

func init() {
	rootCmd.AddCommand(executeCmd)
	executeCmd.Flags().Bool("continue-on-fail", false, "Record failing items and keep going")
}
