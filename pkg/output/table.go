package output

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"
)

// Account is one row of `gauth accounts`: a stored alias plus advisory
// validity, computed without refreshing anything.
type Account struct {
	Alias     string    `json:"alias" yaml:"alias"`
	Status    string    `json:"status" yaml:"status"`
	ExpiresAt time.Time `json:"expiresAt" yaml:"expiresAt"`
	Refresh   bool      `json:"refreshToken" yaml:"refreshToken"`
	Scope     string    `json:"scope,omitempty" yaml:"scope,omitempty"`
}

func WriteAccountTable(w io.Writer, accounts []Account) {
	tw := tabwriter.NewWriter(w, 2, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "ALIAS\tSTATUS\tEXPIRES\tREFRESH")
	for _, a := range accounts {
		expires := "-"
		if !a.ExpiresAt.IsZero() {
			expires = formatTime(a.ExpiresAt)
		}
		refresh := "no"
		if a.Refresh {
			refresh = "yes"
		}
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", a.Alias, a.Status, expires, refresh)
	}
	_ = tw.Flush()
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
