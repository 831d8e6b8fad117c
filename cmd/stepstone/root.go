package main

import (
	"fmt"
	"io"
	"log/slog"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/stepstone/transport"
)

type rootOptions struct {
	verbose int
	stderr  io.Writer
}

func newRootCommand(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	o := &rootOptions{stderr: stderr}

	cmd := &cobra.Command{
		Use:   "stepstone",
		Short: "Transportation problem solver (stepping-stone / MODI method)",
		Long: `stepstone balances a transportation problem, builds an initial plan by the
north-west corner or minimum cost method, and improves it by stepping-stone
pivots guided by MODI potentials until the plan is optimal.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.SetIn(stdin)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.PersistentFlags().CountVarP(&o.verbose, "verbose", "v", "debug logging to stderr (-vv for trace)")

	cmd.AddCommand(
		newCommandSolve(o),
		newCommandGen(),
		newCommandVersion(),
	)

	return cmd
}

// logger returns nil when logging is off.
func (o *rootOptions) logger() *slog.Logger {
	if o.verbose == 0 {
		return nil
	}
	level := slog.LevelDebug
	if o.verbose >= 2 {
		level = transport.LevelTrace
	}

	return slog.New(slog.NewTextHandler(o.stderr, &slog.HandlerOptions{Level: level}))
}

func newCommandVersion() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			version := "(devel)"
			if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
				version = info.Main.Version
			}
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "stepstone %s\n", version)

			return err
		},
	}
}
