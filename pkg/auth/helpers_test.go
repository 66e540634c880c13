package auth

import (
	"net"
	"os"
	"path/filepath"
	"testing"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/require"
)

// corruptRecordFile overwrites a stored record with garbage on disk.
func corruptRecordFile(t *testing.T, dir, alias string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, alias+".json"), []byte("{definitely not json"), 0o600))
}

// freePort grabs a port the kernel considers free right now.
func freePort(t *testing.T) int {
	t.Helper()
	ln, err := net.Listen("tcp", "localhost:0")
	require.NoError(t, err)
	port := ln.Addr().(*net.TCPAddr).Port
	require.NoError(t, ln.Close())
	return port
}

// signedIDToken builds a syntactically valid id_token carrying the claims.
func signedIDToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-key"))
	require.NoError(t, err)
	return token
}
