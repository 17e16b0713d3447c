// Package sandboxtest runs a seeded sandbox API on a loopback port for tests.
package sandboxtest

import (
	"fmt"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"motoparts/internal/config"
	"motoparts/internal/sandbox"
)

// Harness is a running sandbox.
type Harness struct {
	// URL is the API base, e.g. http://127.0.0.1:53122/api.
	URL    string
	Server *sandbox.Server
}

// Start launches a seeded sandbox backed by a private in-memory database and
// stops it when the test ends.
func Start(t testing.TB) *Harness {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := sandbox.OpenDatabase(fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", name, time.Now().UnixNano()))
	require.NoError(t, err)

	cfg := config.Sandbox{JWTSecret: "sandboxtest-secret", TokenTTL: time.Hour}
	server := sandbox.New(cfg, db, nil, nil)
	require.NoError(t, server.Seed())

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	go func() {
		_ = server.App.Listener(ln)
	}()
	t.Cleanup(func() {
		_ = server.App.Shutdown()
	})

	return &Harness{
		URL:    "http://" + ln.Addr().String() + "/api",
		Server: server,
	}
}
