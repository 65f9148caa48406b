package main

import (
	"os/signal"
	"syscall"

	"github.com/aretw0/wayfinder/internal/presentation/tui"
	"github.com/aretw0/wayfinder/pkg/runner"
	"github.com/spf13/cobra"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Answer step lookups read from standard input",
	Long: `Reads one step ID per line and prints the agent answer for each, until
the input ends. With --json every line may be {"step_id": "..."} and every
answer is a JSON object, which suits pipes and test harnesses.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		jsonMode, _ := cmd.Flags().GetBool("json")

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		eng, err := openEngine(ctx)
		if err != nil {
			return err
		}

		in, out := cmd.InOrStdin(), cmd.OutOrStdout()
		var handler runner.IOHandler
		if jsonMode {
			handler = runner.NewJSONHandler(in, out)
		} else {
			var opts []runner.TextHandlerOption
			if tui.IsTerminal(out) {
				tui.PrintBanner(out)
				if render, err := tui.NewRenderer(); err == nil {
					opts = append(opts, runner.WithTextHandlerRenderer(func(s string) (string, error) {
						return render("```json\n" + s + "\n```")
					}))
				}
			} else {
				opts = append(opts, runner.WithPrompt(""))
			}
			handler = runner.NewTextHandler(in, out, opts...)
		}

		r := runner.NewRunner(
			runner.WithLookuper(eng),
			runner.WithInputHandler(handler),
			runner.WithLogger(logger),
			runner.WithMaxQuerySize(settings.Query.MaxSize),
		)
		return r.Run(ctx)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().Bool("json", false, "Run in JSON mode (NDJSON input/output)")
}
