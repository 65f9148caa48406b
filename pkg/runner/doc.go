/*
Package runner implements the query loop that serves step lookups over a
stream.

The runner reads one query per line through an IOHandler, answers it with a
ports.Lookuper and writes the answer back. It is what `wayfinder run` uses to
act as a long-lived tool process for hosts that talk over pipes.

# Key Components

  - Runner: the loop. It stops on EOF or when the context is cancelled.
  - TextHandler: prompt-based IO for terminals, with optional markdown rendering.
  - JSONHandler: JSON-Lines IO for programmatic hosts.
  - SanitizeQuery: size and control-character limits applied to every query.

# Usage

	r := runner.NewRunner(
		runner.WithLookuper(engine),
		runner.WithInputHandler(runner.NewJSONHandler(os.Stdin, os.Stdout)),
	)

	if err := r.Run(ctx); err != nil {
		log.Fatal(err)
	}
*/
package runner
