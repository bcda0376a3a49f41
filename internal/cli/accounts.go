package cli

import (
	"github.com/spf13/cobra"
	"github.com/vfg2006/meta-insights-connector/internal/render"
)

func newAccountsCmd(build DepsFunc, global *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "accounts",
		Short: "List the ad accounts the access token can read",
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := build()
			if err != nil {
				return err
			}

			accounts, err := deps.Reporter.ListAdAccounts(cmd.Context())
			if err != nil {
				return err
			}

			w, format, closeOut, err := global.output(cmd)
			if err != nil {
				return err
			}
			defer closeOut()

			return render.Accounts(w, accounts, format)
		},
	}
}
