package app

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/melitabakes/bakery/internal/config"
	"github.com/melitabakes/bakery/internal/daemon"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer

	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)

	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		dumpJSON = false
	})

	err := rootCmd.ExecuteContext(context.Background())

	return out.String(), err
}

func TestConfigDump(t *testing.T) {
	out, err := run(t, "config", "dump", "--config", "../etc/")
	require.NoError(t, err)
	assert.Contains(t, out, `Title = "Melita Bakes"`)

	out, err = run(t, "config", "dump", "--json", "--config", "../etc/")
	require.NoError(t, err)

	var dumped config.Config
	require.NoError(t, json.Unmarshal([]byte(out), &dumped))
	assert.Equal(t, 8080, dumped.Webserver.Port)
}

func TestConfigDumpMissingFile(t *testing.T) {
	_, err := run(t, "config", "dump", "--config", t.TempDir()+"/")
	require.Error(t, err)
}

func TestAdminAdd(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "bakery.db")

	override, err := json.Marshal(map[string]any{
		"DB":      map[string]any{"GormEngine": config.EngineSQLite, "Path": dbPath},
		"Storage": map[string]any{"Driver": config.StorageDriverMemory},
		"Log":     map[string]any{"Console": map[string]any{"Enabled": false}},
	})
	require.NoError(t, err)
	t.Setenv(config.EnvConfigJSON, string(override))

	out, err := run(t, "admin", "add", "--config", "../etc/", "--email", "Baker@Example.com", "--password", "flour")
	require.NoError(t, err)
	assert.Contains(t, out, "admin baker@example.com created")

	st, _, err := daemon.OpenStore(context.Background(), &cfg)
	require.NoError(t, err)

	a, err := st.AuthenticateAdmin(context.Background(), "baker@example.com", "flour")
	require.NoError(t, err)
	assert.True(t, a.IsHashed())
}
