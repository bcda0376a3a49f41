package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/vfg2006/meta-insights-connector/internal/domain"
)

func newTokenCmd(build DepsFunc) *cobra.Command {
	var (
		name  string
		admin bool
		ttl   time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue a bearer token for the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := build()
			if err != nil {
				return err
			}

			role := domain.RoleViewer
			if admin {
				role = domain.RoleAdmin
			}

			token, err := deps.Auth.IssueToken(name, role, ttl)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), token)
			return err
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "who the token is for")
	cmd.Flags().BoolVar(&admin, "admin", false, "grant the admin role")
	cmd.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "token lifetime")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}
