package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"WAREHOUSE_ADDR", "SERVICE_NAME", "ENV", "LOG_FILE"} {
		t.Setenv(key, "")
	}

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "warehouse", cfg.ServiceName)
	assert.Equal(t, "dev", cfg.Env)
}

func TestLoad_FileThenEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "warehouse.yaml")
	require.NoError(t, os.WriteFile(path, []byte("addr: \":9090\"\nservice_name: warehouse-staging\n"), 0o644))

	t.Setenv("ENV", "staging")
	t.Setenv("WAREHOUSE_ADDR", ":7070")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":7070", cfg.Addr, "env beats file")
	assert.Equal(t, "warehouse-staging", cfg.ServiceName)
	assert.Equal(t, "staging", cfg.Env)
}

func TestLoad_MissingFileIsIgnored(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Addr)
}

func TestLoad_MalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "warehouse.yaml")
	require.NoError(t, os.WriteFile(path, []byte("addr: [broken"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}
