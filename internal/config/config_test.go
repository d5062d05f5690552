package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConfig = `
[server]
http_port = 8090

[database]
host = "localhost"
user = "hall"
password = "${HALL_DB_PASSWORD}"
dbname = "halls"

[redis]
addr = "localhost:6379"
ttl = 120

[metrics]
enabled = true
`

func TestLoad_ExpandsEnvAndAppliesDefaults(t *testing.T) {
	t.Setenv("HALL_DB_PASSWORD", "s3cret")

	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(sampleConfig), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8090, cfg.Server.HTTPPort)
	assert.Equal(t, 15, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "s3cret", cfg.Database.Password)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "host=localhost port=5432 user=hall password=s3cret dbname=halls sslmode=disable", cfg.Database.DSN())
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
	assert.True(t, cfg.Redis.CacheEnabled())
	assert.Equal(t, 2*time.Minute, cfg.Redis.CacheTTL())
	assert.Equal(t, 3, cfg.Booking.TxMaxRetries)
	assert.Equal(t, "info", cfg.Logs.Level)
}

func TestParse_Validation(t *testing.T) {
	_, err := Parse(`[database]
dbname = "halls"`)
	assert.ErrorContains(t, err, "database.host")

	_, err = Parse(`[database]
host = "db"
dbname = "halls"
[redis]
ttl = -1`)
	assert.ErrorContains(t, err, "redis.ttl")

	_, err = Parse(`not toml = = =`)
	assert.Error(t, err)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	assert.Error(t, err)
}

func TestBookingConfig_Location(t *testing.T) {
	assert.Equal(t, time.Local, BookingConfig{Timezone: "Nowhere/Void"}.Location())
}
