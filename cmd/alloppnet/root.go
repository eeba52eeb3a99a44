package main

import (
	"context"

	"alloppnet"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

type ctxKey int

const loggerKey ctxKey = 0

func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}

func execute() error {
	var verbose bool
	root := &cobra.Command{
		Use:          "alloppnet",
		Short:        "allopolyploid species network likelihoods",
		Long:         "alloppnet evaluates gene trees against an allopolyploid species network described in a TOML file.",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := log.InfoLevel
			if verbose {
				level = log.DebugLevel
			}
			cmd.SetContext(withLogger(cmd.Context(), alloppnet.NewLogger(level)))
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "trace mullab trees and per-gene results")
	root.AddCommand(newLogLikeCmd(&verbose))
	root.AddCommand(newMulLabCmd(&verbose))
	return root.ExecuteContext(context.Background())
}
