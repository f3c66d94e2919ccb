// Command tnsdedup merges adjacent duplicate nonzeros of a sorted sparse
// tensor, summing their values.
//
//	tnsdedup [flags] <tensor> <nmodes> <output.tns>
//
// A summary line "seen: N pruned: M" is printed to standard error.
package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/davidvella/tnsdedup"
	"github.com/davidvella/tnsdedup/internal/cmdutil"
	"github.com/urfave/cli/v2"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return cmdutil.Main(ctx, newApp(os.Stdout, os.Stderr), os.Args, os.Stderr)
}

func newApp(stdout, stderr io.Writer) *cli.App {
	return &cli.App{
		Name:            "tnsdedup",
		Usage:           "merge adjacent duplicate nonzeros of a sorted sparse tensor",
		ArgsUsage:       "<tensor> <nmodes> <output.tns>",
		Flags:           cmdutil.Flags("TNSDEDUP"),
		Writer:          stdout,
		ErrWriter:       stderr,
		HideHelpCommand: true,
		ExitErrHandler:  func(*cli.Context, error) {},
		Action: func(c *cli.Context) error {
			if c.NArg() != 3 {
				return cmdutil.UsageError(c)
			}
			nmodes, err := cmdutil.ParseModes(c.Args().Get(1))
			if err != nil {
				return err
			}

			env, err := cmdutil.Setup(c)
			if err != nil {
				return err
			}

			stats, err := tnsdedup.Dedup(c.Context, c.Args().Get(0), c.Args().Get(2), nmodes, env.Options()...)
			return env.Finish(c, stats, err)
		},
	}
}
