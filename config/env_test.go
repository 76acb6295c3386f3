package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadFromFiles_Precedence(t *testing.T) {
	dir := t.TempDir()
	jsonPath := writeFile(t, dir, "app.json", `{"db_driver":"postgres","app_port":"9000","rate_limit":50}`)
	envPath := writeFile(t, dir, ".env", "APP_PORT=9100\nJWT_TTL=2h\n# comment\nMONGO_DATABASE=\"shop_test\"\n")

	require.NoError(t, loadFromFiles(jsonPath, envPath))
	t.Cleanup(func() { _ = loadFromFiles(filepath.Join(dir, "none.json"), filepath.Join(dir, "none.env")) })

	assert.Equal(t, "postgres", get("DB_DRIVER", ""))
	assert.Equal(t, "9100", get("APP_PORT", ""), ".env overrides app.json")
	assert.Equal(t, "shop_test", get("MONGO_DATABASE", ""))
	assert.Equal(t, 50, getInt("RATE_LIMIT", 0))
	assert.Equal(t, 2*time.Hour, getDuration("JWT_TTL", time.Minute))

	t.Setenv("APP_PORT", "9200")
	assert.Equal(t, "9200", get("APP_PORT", ""), "environment overrides files")
}

func TestLoadFromFiles_MissingFilesKeepDefaults(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, loadFromFiles(filepath.Join(dir, "app.json"), filepath.Join(dir, ".env")))

	assert.Equal(t, defaultJWTIssuer, get("JWT_ISSUER", ""))
	assert.True(t, getBool("DB_AUTO_MIGRATE", false))
}

func TestLoadFromFiles_BadJSON(t *testing.T) {
	dir := t.TempDir()
	jsonPath := writeFile(t, dir, "app.json", `{not json`)

	err := loadFromFiles(jsonPath, filepath.Join(dir, ".env"))
	assert.Error(t, err)
}

func TestDatabaseDriver_FallsBackOnUnknown(t *testing.T) {
	t.Setenv("DB_DRIVER", "oracle")
	assert.Equal(t, defaultDatabaseDriver, DatabaseDriver())

	t.Setenv("DB_DRIVER", "Mongo")
	assert.Equal(t, "mongo", DatabaseDriver())
	assert.False(t, IsSQLDriver("mongo"))
	assert.True(t, IsSQLDriver("sqlite"))
}

func TestTypedGetters_IgnoreGarbage(t *testing.T) {
	t.Setenv("JWT_TTL", "forever")
	t.Setenv("BCRYPT_COST", "lots")

	assert.Equal(t, 24*time.Hour, JWTTTL())
	assert.Equal(t, 10, BcryptCost())
}
