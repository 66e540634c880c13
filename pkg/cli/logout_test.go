package cli

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openclaw/gauth/pkg/config"
	"github.com/openclaw/gauth/pkg/store"
)

func TestLogoutCommand_RemovesRecord(t *testing.T) {
	root, buf := newTestRoot(t)
	seedRecord(t, "work", store.Record{
		AccessToken: "A1",
		ExpiresAt:   time.Now().Add(time.Hour).Unix(),
	})

	require.NoError(t, execute(t, root, "logout", "work"))
	assert.Contains(t, buf.String(), `Removed credential for "work"`)

	st := store.NewFileStore(config.Dir())
	_, ok := st.Load("work")
	assert.False(t, ok)
}

func TestLogoutCommand_UnknownAliasIsQuiet(t *testing.T) {
	root, _ := newTestRoot(t)

	require.NoError(t, execute(t, root, "logout", "nope"))
}
