package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/openclaw/gauth/pkg/auth"
)

func newTokenCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "token <alias>",
		Short: "Print a currently valid access token for an alias",
		Long: "Print a currently valid access token for an alias, refreshing " +
			"the stored credential first if it is expired or about to expire.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := getRuntime(cmd)
			if err != nil {
				return err
			}
			refresher, err := rt.newRefresher(cmd.Context())
			if err != nil {
				return err
			}
			provider := auth.TokenProvider{Refresher: refresher}
			token, err := provider.Token(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(rt.Writer(), token)
			return nil
		},
	}
}
