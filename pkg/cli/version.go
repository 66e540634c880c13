package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/openclaw/gauth/pkg/output"
	"github.com/openclaw/gauth/pkg/version"
)

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show gauth version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := getRuntime(cmd)
			if err != nil {
				return err
			}
			format, err := rt.OutputFormat()
			if err != nil {
				return err
			}
			info := version.GetBuildInfo()
			if format != output.FormatTable {
				return output.WriteObject(rt.Writer(), format, info)
			}
			_, _ = fmt.Fprintf(rt.Writer(), "gauth %s (commit: %s, built: %s)\n", info.Version, info.GitCommit, info.BuildDate)
			return nil
		},
	}
}
