// Package cli wires the gauth commands: login, accounts, token, status,
// logout, completion and version.
package cli

import (
	"context"
	"errors"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/openclaw/gauth/pkg/auth"
	"github.com/openclaw/gauth/pkg/config"
	"github.com/openclaw/gauth/pkg/output"
	"github.com/openclaw/gauth/pkg/store"
	"github.com/openclaw/gauth/pkg/system"
)

type Config struct {
	ConfigPath   string
	OutputWriter io.Writer
}

type runtimeState struct {
	configPath           string
	cfg                  *config.Config
	outputFormat         string
	tokenStorageOverride string
	noBrowser            bool
	verbose              bool
	writer               io.Writer
	log                  *zap.SugaredLogger
}

type runtimeKey struct{}

func DefaultConfig() Config {
	return Config{
		ConfigPath:   config.DefaultConfigPath(),
		OutputWriter: os.Stdout,
	}
}

func NewRootCommand(cfg Config) *cobra.Command {
	rt := &runtimeState{configPath: cfg.ConfigPath, writer: cfg.OutputWriter}

	root := &cobra.Command{
		Use:           "gauth",
		Short:         "Google account authentication for the command line",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if rt.writer == nil {
				rt.writer = os.Stdout
			}
			if rt.configPath == "" {
				rt.configPath = config.DefaultConfigPath()
			}
			if rt.outputFormat == "" {
				rt.outputFormat = os.Getenv("GAUTH_OUTPUT")
			}
			if rt.tokenStorageOverride == "" {
				rt.tokenStorageOverride = os.Getenv("GAUTH_TOKEN_STORAGE")
			}
			if !rt.noBrowser {
				rt.noBrowser = strings.EqualFold(os.Getenv("GAUTH_NO_BROWSER"), "true")
			}
			if !rt.verbose {
				rt.verbose = strings.EqualFold(os.Getenv("GAUTH_VERBOSE"), "true")
			}
			rt.log = system.NewCLILogger(rt.verbose)

			if cmd.Name() == "version" || cmd.Name() == "completion" {
				return nil
			}

			loaded, err := config.Load(rt.configPath)
			if err != nil {
				return err
			}
			rt.cfg = loaded
			return nil
		},
	}

	root.PersistentFlags().StringVar(&rt.configPath, "config", rt.configPath, "Path to config file")
	root.PersistentFlags().StringVarP(&rt.outputFormat, "output", "o", "", "Output format: table, json, yaml")
	root.PersistentFlags().StringVar(&rt.tokenStorageOverride, "token-storage", "", "Token storage backend: file or keychain")
	root.PersistentFlags().BoolVar(&rt.noBrowser, "no-browser", false, "Print the authorization URL instead of opening a browser")
	root.PersistentFlags().BoolVarP(&rt.verbose, "verbose", "v", false, "Enable verbose logging")

	root.SetContext(context.WithValue(context.Background(), runtimeKey{}, rt))

	root.AddCommand(
		newLoginCommand(),
		newAccountsCommand(),
		newTokenCommand(),
		newStatusCommand(),
		newLogoutCommand(),
		newCompletionCommand(),
		newVersionCommand(),
	)

	return root
}

func getRuntime(cmd *cobra.Command) (*runtimeState, error) {
	rt, ok := cmd.Context().Value(runtimeKey{}).(*runtimeState)
	if !ok || rt == nil {
		return nil, errors.New("runtime not initialized")
	}
	return rt, nil
}

func (rt *runtimeState) Writer() io.Writer {
	if rt.writer != nil {
		return rt.writer
	}
	return os.Stdout
}

func (rt *runtimeState) OutputFormat() (output.Format, error) {
	name := rt.outputFormat
	if name == "" && rt.cfg != nil {
		name = rt.cfg.Settings.OutputFormat
	}
	return output.ParseFormat(name)
}

func (rt *runtimeState) TokenStorage() string {
	if rt.tokenStorageOverride != "" {
		return rt.tokenStorageOverride
	}
	if rt.cfg != nil {
		return rt.cfg.TokenStorage
	}
	return ""
}

func (rt *runtimeState) openStore() (store.Store, error) {
	return store.New(rt.TokenStorage(), config.Dir())
}

func (rt *runtimeState) endpointConfig() auth.EndpointConfig {
	if rt.cfg == nil {
		return auth.EndpointConfig{}
	}
	return auth.EndpointConfig{
		Issuer:   rt.cfg.Issuer,
		AuthURL:  rt.cfg.AuthURL,
		TokenURL: rt.cfg.TokenURL,
	}
}

func (rt *runtimeState) scopes() []string {
	if rt.cfg != nil && len(rt.cfg.Scopes) > 0 {
		return rt.cfg.Scopes
	}
	return nil
}

func (rt *runtimeState) callbackPort() int {
	if rt.cfg != nil && rt.cfg.CallbackPort != 0 {
		return rt.cfg.CallbackPort
	}
	return auth.DefaultCallbackPort
}

// newRefresher builds the refresher every non-interactive command shares. It
// needs the environment credentials and the resolved token endpoint, both of
// which can fail, so commands call it lazily.
func (rt *runtimeState) newRefresher(ctx context.Context) (*auth.Refresher, error) {
	creds, err := auth.ClientCredentialsFromEnv()
	if err != nil {
		return nil, err
	}
	endpoint, err := auth.ResolveEndpoint(ctx, nil, rt.endpointConfig())
	if err != nil {
		return nil, err
	}
	st, err := rt.openStore()
	if err != nil {
		return nil, err
	}
	return &auth.Refresher{
		Store:  st,
		Config: auth.BuildOAuthConfig(creds, endpoint, "", rt.scopes()),
		Log:    rt.log,
	}, nil
}
