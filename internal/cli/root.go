// Package cli implements the snapkit command-line tool: offline replay of
// drag scenarios and token issuing for the server.
package cli

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/inamate/snapkit/internal/logging"
)

var version = "dev"

func SetVersion(v string) {
	version = v
}

func Execute() error {
	return newRootCmd().ExecuteContext(context.Background())
}

func newRootCmd() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:          "snapkit",
		Short:        "Drag, resize and snap tooling",
		Version:      version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := "info"
			if verbose {
				level = "debug"
			}
			logging.Install(os.Stderr, level)
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newReplayCmd())
	root.AddCommand(newTokenCmd())
	return root
}
