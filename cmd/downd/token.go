package main

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/catnapper321/downd/internal/config"
)

// tokenCmd prints the bearer token the HTTP/SSE surface expects in its
// Authorization header, mirroring surge/cmd/token.go. The control
// socket itself carries no auth, per spec.md's Non-goals.
var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "print the bearer token used by the HTTP/SSE surface",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(ensureAuthToken())
	},
}

// ensureAuthToken reads the persisted token, generating and persisting
// a fresh 32-byte hex token on first use.
func ensureAuthToken() string {
	path := config.TokenFilePath()
	if data, err := os.ReadFile(path); err == nil {
		if tok := strings.TrimSpace(string(data)); tok != "" {
			return tok
		}
	}
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return ""
	}
	token := hex.EncodeToString(buf)
	_ = os.WriteFile(path, []byte(token), 0o600)
	return token
}
