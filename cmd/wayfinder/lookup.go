package main

import (
	"fmt"

	"github.com/aretw0/wayfinder/internal/presentation/tui"
	"github.com/aretw0/wayfinder/internal/runtime"
	"github.com/aretw0/wayfinder/pkg/runner"
	"github.com/spf13/cobra"
)

var lookupCmd = &cobra.Command{
	Use:   "lookup <step-id>",
	Short: "Resolve a step ID and print the agent payload",
	Long: `Resolves the step ID against the flow (exact match first, typo tolerant
match second) and prints what an agent calling the lookup tool would receive.
Unknown IDs print a diagnostic listing every available ID.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query, err := runner.SanitizeQuery(args[0], settings.Query.MaxSize)
		if err != nil {
			return err
		}

		eng, err := openEngine(cmd.Context())
		if err != nil {
			return err
		}
		res, cfg, err := eng.Resolve(cmd.Context(), query)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		pretty, _ := cmd.Flags().GetBool("pretty")
		if res.Found() && (pretty || tui.IsTerminal(out)) {
			render, err := tui.NewRenderer()
			if err != nil {
				return err
			}
			text, err := render(tui.StepMarkdown(cfg.Identity, res))
			if err != nil {
				return err
			}
			fmt.Fprint(out, text)
			return nil
		}

		fmt.Fprintln(out, runtime.Format(res, cfg))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(lookupCmd)
	lookupCmd.Flags().Bool("pretty", false, "Render found steps as markdown even when not on a terminal")
}
