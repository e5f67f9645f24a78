package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/cobra"

	"github.com/inamate/snapkit/internal/auth"
	"github.com/inamate/snapkit/internal/config"
)

func newTokenCmd() *cobra.Command {
	var ttl time.Duration

	cmd := &cobra.Command{
		Use:   "token <subject>",
		Short: "Issue a bearer token signed with JWT_SECRET",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var cfg config.Config
			if err := envconfig.Process("", &cfg); err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if cfg.AuthDisabled {
				return errors.New("AUTH_DISABLED is set; the server accepts any request")
			}
			token, err := auth.NewService(cfg.JWTSecret, false).IssueToken(args[0], ttl)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	cmd.Flags().DurationVar(&ttl, "ttl", auth.DefaultTTL, "token lifetime")
	return cmd
}
