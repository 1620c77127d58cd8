// Command phrasekit queries and edits vocal synth projects phrase by phrase.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/roach88/phrasekit/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := cli.NewRootCommand().ExecuteContext(ctx)
	stop()
	if err != nil {
		if !cli.IsReported(err) {
			fmt.Fprintln(os.Stderr, "phrasekit:", err)
		}
		os.Exit(cli.GetExitCode(err))
	}
}
