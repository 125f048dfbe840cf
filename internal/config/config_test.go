package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoad(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		// Given: an empty config file
		path := writeConfig(t, "{}\n")

		// When
		conf, err := Load(path)

		// Then: every field has its default
		require.NoError(t, err)
		assert.Equal(t, "info", conf.LogLevel)
		assert.Equal(t, "9090", conf.HTTPPort)
		assert.Equal(t, StorageMemory, conf.Storage)
		assert.Equal(t, "localhost:6379", conf.Redis.GetRedisAddr())
		assert.Equal(t, ResolutionLocal, conf.Resolution.Mode)
		assert.Equal(t, 5*time.Second, conf.Resolution.Timeout)
		assert.Equal(t, 15*time.Second, conf.Events.Heartbeat)
	})

	t.Run("File values", func(t *testing.T) {
		path := writeConfig(t, `
log-level: debug
storage: redis
redis:
  host: cache
  port: "6380"
resolution:
  mode: remote
  base-url: http://boards:8000
  timeout: 2s
events:
  heartbeat: 1m
`)

		conf, err := Load(path)

		require.NoError(t, err)
		assert.Equal(t, "debug", conf.LogLevel)
		assert.Equal(t, StorageRedis, conf.Storage)
		assert.Equal(t, "cache:6380", conf.Redis.GetRedisAddr())
		assert.Equal(t, ResolutionRemote, conf.Resolution.Mode)
		assert.Equal(t, "http://boards:8000", conf.Resolution.BaseURL)
		assert.Equal(t, 2*time.Second, conf.Resolution.Timeout)
		assert.Equal(t, time.Minute, conf.Events.Heartbeat)
	})

	t.Run("Environment overrides", func(t *testing.T) {
		path := writeConfig(t, "http-port: \"8080\"\n")
		t.Setenv("HTTP_PORT", "7070")

		conf, err := Load(path)

		require.NoError(t, err)
		assert.Equal(t, "7070", conf.HTTPPort)
	})

	t.Run("Unknown storage", func(t *testing.T) {
		_, err := Load(writeConfig(t, "storage: sqlite\n"))

		require.Error(t, err)
	})

	t.Run("Unknown resolution mode", func(t *testing.T) {
		_, err := Load(writeConfig(t, "resolution:\n  mode: grpc\n"))

		require.Error(t, err)
	})

	t.Run("Missing file", func(t *testing.T) {
		assert.Panics(t, func() { MustLoad(filepath.Join(t.TempDir(), "absent.yml")) })
	})
}

func TestConfig_Validate(t *testing.T) {
	t.Run("Redis storage needs host and port", func(t *testing.T) {
		// Given: redis storage with an incomplete address
		for _, redis := range []Redis{{Host: "", Port: "6379"}, {Host: "cache", Port: ""}} {
			conf := &Config{Storage: StorageRedis, Redis: redis, Resolution: Resolution{Mode: ResolutionLocal}}

			// When
			err := conf.Validate()

			// Then: it is refused before anything dials
			require.Error(t, err, "%+v", redis)
			assert.Contains(t, err.Error(), "redis host and port")
		}
	})

	t.Run("Complete redis address", func(t *testing.T) {
		conf := &Config{
			Storage:    StorageRedis,
			Redis:      Redis{Host: "cache", Port: "6379"},
			Resolution: Resolution{Mode: ResolutionLocal},
		}

		require.NoError(t, conf.Validate())
	})

	t.Run("Memory storage ignores redis", func(t *testing.T) {
		conf := &Config{Storage: StorageMemory, Resolution: Resolution{Mode: ResolutionLocal}}

		require.NoError(t, conf.Validate())
	})
}
