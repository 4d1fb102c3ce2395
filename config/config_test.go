package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg := LoadConfig("")
	assert.Equal(t, "postgres", cfg.Database.Type)
	assert.Equal(t, 1816, cfg.Web.Port)
}

func TestLoadConfigFileAndEnvOverride(t *testing.T) {
	dir := t.TempDir()
	cfile := filepath.Join(dir, "catalogd.yml")
	content := `
system:
  appid: catalogd
  location: UTC
web:
  host: 127.0.0.1
  port: 9090
database:
  type: sqlite
  name: catalog.db
logger:
  mode: development
`
	require.NoError(t, os.WriteFile(cfile, []byte(content), 0o644))

	t.Setenv("CATALOGD_WEB_PORT", "9191")
	t.Setenv("CATALOGD_DB_NAME", "other.db")

	cfg := LoadConfig(cfile)
	assert.Equal(t, "127.0.0.1", cfg.Web.Host)
	assert.Equal(t, 9191, cfg.Web.Port, "env wins over file")
	assert.Equal(t, "sqlite", cfg.Database.Type)
	assert.Equal(t, "other.db", cfg.Database.Name)
}

func TestDsn(t *testing.T) {
	pg := DBConfig{Type: "postgres", Host: "db1", Port: 5432, User: "u", Passwd: "p", Name: "catalog"}
	assert.Contains(t, pg.Dsn(), "host=db1")
	assert.Contains(t, pg.Dsn(), "dbname=catalog")

	lite := DBConfig{Type: "sqlite", Name: "catalog.db"}
	assert.Equal(t, "catalog.db", lite.Dsn())
}
