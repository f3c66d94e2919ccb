// Command tnsmerge merges several sorted shards of a sparse tensor into one
// file, summing the values of nonzeros that share coordinates.
//
//	tnsmerge [flags] <nmodes> <output.tns> <shard>...
//
// Shards may be given as glob patterns. A summary line "seen: N pruned: M"
// is printed to standard error.
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
		Name:            "tnsmerge",
		Usage:           "merge sorted tensor shards and collapse duplicate nonzeros",
		ArgsUsage:       "<nmodes> <output.tns> <shard>...",
		Flags:           cmdutil.Flags("TNSMERGE"),
		Writer:          stdout,
		ErrWriter:       stderr,
		HideHelpCommand: true,
		ExitErrHandler:  func(*cli.Context, error) {},
		Action: func(c *cli.Context) error {
			if c.NArg() < 3 {
				return cmdutil.UsageError(c)
			}
			nmodes, err := cmdutil.ParseModes(c.Args().Get(0))
			if err != nil {
				return err
			}
			shards, err := cmdutil.ExpandGlobs(c.Args().Slice()[2:])
			if err != nil {
				return err
			}

			env, err := cmdutil.Setup(c)
			if err != nil {
				return err
			}
			env.Metrics.Shards.Set(float64(len(shards)))

			stats, err := tnsdedup.Merge(c.Context, shards, c.Args().Get(1), nmodes, env.Options()...)
			return env.Finish(c, stats, err)
		},
	}
}
