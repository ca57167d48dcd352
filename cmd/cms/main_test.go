package main

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/hashmessi/custom-Content-Management-System-CMS/pkg/cms/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestConfigShow_RedactsSecrets(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://cms:hunter2@db:5432/cms")
	t.Setenv("STORAGE_TYPE", "s3")
	t.Setenv("S3_BUCKET", "media")
	t.Setenv("S3_SECRET_ACCESS_KEY", "very-secret")

	out, err := execute(t, "config", "show")
	require.NoError(t, err)

	assert.NotContains(t, out, "hunter2")
	assert.NotContains(t, out, "very-secret")

	var cfg config.Config
	require.NoError(t, json.Unmarshal([]byte(out), &cfg))
	assert.Equal(t, config.DatabasePostgres, cfg.Database.Type)
	assert.Equal(t, "postgres://cms:xxxxx@db:5432/cms", cfg.Database.URL)
	assert.Equal(t, redacted, cfg.Storage.S3.SecretAccessKey)
}

func TestConfigEnv(t *testing.T) {
	out, err := execute(t, "config", "env")
	require.NoError(t, err)
	assert.Contains(t, out, "DATABASE_TYPE")
	assert.Contains(t, out, "CACHE_TTL")
}

func TestMigrate_RequiresPostgres(t *testing.T) {
	t.Setenv("DATABASE_TYPE", "memory")

	_, err := execute(t, "migrate", "version")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_TYPE=postgres")
}

func TestImport_MemoryStore(t *testing.T) {
	t.Setenv("DATABASE_TYPE", "memory")
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "hello.md"), []byte("---\ntitle: Hello\n---\nHello world.\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.md"), []byte("---\ntitle: Broken\n---\n"), 0o644))

	out, err := execute(t, "import", "--draft", dir)
	require.Error(t, err)
	assert.Contains(t, out, "DATABASE_TYPE=memory, imported posts are discarded")
	assert.Contains(t, out, "Checked 1 post(s), 1 failed (nothing was saved)")
	assert.NotContains(t, out, "Imported 1 post(s)")

	out, err = execute(t, "import", filepath.Join(dir, "hello.md"))
	require.NoError(t, err)
	assert.Contains(t, out, "Checked 1 post(s), 0 failed (nothing was saved)")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, parseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, parseLevel("warning"))
	assert.Equal(t, slog.LevelError, parseLevel("error"))
	assert.Equal(t, slog.LevelInfo, parseLevel("nonsense"))
}
