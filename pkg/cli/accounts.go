package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/openclaw/gauth/pkg/auth"
	"github.com/openclaw/gauth/pkg/output"
)

func newAccountsCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "accounts",
		Aliases: []string{"list"},
		Short:   "List stored account aliases with advisory token status",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := getRuntime(cmd)
			if err != nil {
				return err
			}
			format, err := rt.OutputFormat()
			if err != nil {
				return err
			}
			st, err := rt.openStore()
			if err != nil {
				return err
			}
			aliases, err := st.Aliases()
			if err != nil {
				return err
			}

			// Status here is a snapshot of the stored record; nothing is
			// refreshed and a row shown as expired may still be recoverable
			// through its refresh token.
			now := time.Now()
			accounts := make([]output.Account, 0, len(aliases))
			for _, alias := range aliases {
				rec, ok := st.Load(alias)
				if !ok {
					continue
				}
				status := "expired"
				if rec.Valid(now, auth.ExpirySkew) {
					status = "valid"
				}
				accounts = append(accounts, output.Account{
					Alias:     alias,
					Status:    status,
					ExpiresAt: time.Unix(rec.ExpiresAt, 0).UTC(),
					Refresh:   rec.HasRefreshToken(),
					Scope:     rec.Scope,
				})
			}

			if format == output.FormatTable {
				output.WriteAccountTable(rt.Writer(), accounts)
				return nil
			}
			return output.WriteObject(rt.Writer(), format, accounts)
		},
	}
}
