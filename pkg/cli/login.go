package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/openclaw/gauth/pkg/auth"
)

func newLoginCommand() *cobra.Command {
	var (
		port    int
		timeout time.Duration
	)

	cmd := &cobra.Command{
		Use:   "login <alias>",
		Short: "Authorize a Google account and store its credential under an alias",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := getRuntime(cmd)
			if err != nil {
				return err
			}
			alias := args[0]

			creds, err := auth.ClientCredentialsFromEnv()
			if err != nil {
				return err
			}
			st, err := rt.openStore()
			if err != nil {
				return err
			}
			if port == 0 {
				port = rt.callbackPort()
			}

			result, err := auth.Login(cmd.Context(), creds, st, alias, auth.LoginOptions{
				Port:      port,
				Timeout:   timeout,
				NoBrowser: rt.noBrowser,
				Scopes:    rt.scopes(),
				Endpoints: rt.endpointConfig(),
				Out:       rt.Writer(),
			})
			if err != nil {
				return err
			}

			who := ""
			if result.Email != "" {
				who = " as " + result.Email
			}
			expires := time.Unix(result.Record.ExpiresAt, 0).UTC().Format(time.RFC3339)
			_, _ = fmt.Fprintf(rt.Writer(), "Authenticated %q%s. Token expires at %s\n", alias, who, expires)
			return nil
		},
	}

	cmd.Flags().IntVar(&port, "port", 0, "Loopback port for the redirect (default 8085)")
	cmd.Flags().DurationVar(&timeout, "timeout", auth.DefaultCallbackTimeout, "How long to wait for the browser callback")

	return cmd
}
