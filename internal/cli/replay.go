package cli

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/inamate/snapkit/internal/replay"
)

func newReplayCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "replay <scenario.toml>...",
		Short: "Replay drag scenarios and print the resulting geometry",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, path := range args {
				s, err := replay.Load(path)
				if err != nil {
					return err
				}
				slog.Debug("replaying scenario", "path", path, "steps", len(s.Steps))
				r, err := replay.Run(s)
				if err != nil {
					return fmt.Errorf("replay %s: %w", path, err)
				}
				if asJSON {
					enc := json.NewEncoder(out)
					enc.SetIndent("", "  ")
					if err := enc.Encode(r); err != nil {
						return fmt.Errorf("encode report: %w", err)
					}
					continue
				}
				if err := replay.Render(out, r); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the report as JSON")
	return cmd
}
