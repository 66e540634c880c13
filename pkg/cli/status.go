package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/openclaw/gauth/pkg/auth"
	"github.com/openclaw/gauth/pkg/output"
)

type statusReport struct {
	Alias     string    `json:"alias" yaml:"alias"`
	Status    string    `json:"status" yaml:"status"`
	ExpiresAt time.Time `json:"expiresAt" yaml:"expiresAt"`
	Refresh   bool      `json:"refreshToken" yaml:"refreshToken"`
	Scope     string    `json:"scope,omitempty" yaml:"scope,omitempty"`
	// Verified fields come from the provider's tokeninfo endpoint and are
	// only set with --verify.
	Verified bool   `json:"verified,omitempty" yaml:"verified,omitempty"`
	Email    string `json:"email,omitempty" yaml:"email,omitempty"`
}

func newStatusCommand() *cobra.Command {
	var verify bool

	cmd := &cobra.Command{
		Use:   "status <alias>",
		Short: "Show the stored credential status for an alias",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := getRuntime(cmd)
			if err != nil {
				return err
			}
			alias := args[0]
			format, err := rt.OutputFormat()
			if err != nil {
				return err
			}
			st, err := rt.openStore()
			if err != nil {
				return err
			}

			rec, ok := st.Load(alias)
			if !ok {
				return fmt.Errorf("no credential stored for account %q; run \"gauth login %s\" to authenticate", alias, alias)
			}

			report := statusReport{
				Alias:     alias,
				Status:    "expired",
				ExpiresAt: time.Unix(rec.ExpiresAt, 0).UTC(),
				Refresh:   rec.HasRefreshToken(),
				Scope:     rec.Scope,
			}
			if rec.Valid(time.Now(), auth.ExpirySkew) {
				report.Status = "valid"
			}

			if verify {
				refresher, err := rt.newRefresher(cmd.Context())
				if err != nil {
					return err
				}
				token, err := refresher.EnsureValid(cmd.Context(), alias)
				if err != nil {
					return err
				}
				tokenInfoURL := ""
				if rt.cfg != nil {
					tokenInfoURL = rt.cfg.TokenInfoURL
				}
				info, err := auth.FetchTokenInfo(cmd.Context(), tokenInfoURL, token)
				if err != nil {
					return err
				}
				report.Status = "valid"
				report.Verified = true
				report.Email = info.Email
				if info.Scope != "" {
					report.Scope = info.Scope
				}
				// The refresher may have rotated the record just now.
				if current, ok := st.Load(alias); ok {
					report.ExpiresAt = time.Unix(current.ExpiresAt, 0).UTC()
					report.Refresh = current.HasRefreshToken()
				}
			}

			if format != output.FormatTable {
				return output.WriteObject(rt.Writer(), format, report)
			}

			w := rt.Writer()
			_, _ = fmt.Fprintf(w, "Account:  %s\n", report.Alias)
			_, _ = fmt.Fprintf(w, "Status:   %s\n", report.Status)
			_, _ = fmt.Fprintf(w, "Expires:  %s\n", report.ExpiresAt.Format(time.RFC3339))
			refresh := "no"
			if report.Refresh {
				refresh = "yes"
			}
			_, _ = fmt.Fprintf(w, "Refresh:  %s\n", refresh)
			if report.Email != "" {
				_, _ = fmt.Fprintf(w, "Email:    %s\n", report.Email)
			}
			if report.Scope != "" {
				_, _ = fmt.Fprintf(w, "Scope:    %s\n", report.Scope)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&verify, "verify", false, "Check the token against the provider's tokeninfo endpoint")

	return cmd
}
