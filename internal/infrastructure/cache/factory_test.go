package cache

import (
	"errors"
	"testing"

	"github.com/agro/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func failingConnect(RedisConfig) (*RedisReportCache, error) {
	return nil, errors.New("dial tcp: connection refused")
}

func TestReportCacheFactory_CreateCache(t *testing.T) {
	t.Run("redis disabled uses in-memory", func(t *testing.T) {
		f := NewReportCacheFactory(config.RedisConfig{Enabled: false})

		c, err := f.CreateCache()

		require.NoError(t, err)
		assert.IsType(t, &InMemoryReportCache{}, c)
	})

	t.Run("unreachable redis falls back with a warning", func(t *testing.T) {
		core, logs := observer.New(zapcore.WarnLevel)
		f := NewReportCacheFactory(config.RedisConfig{Enabled: true, Host: "redis", Port: 6379},
			WithLogger(zap.New(core)))
		f.connect = failingConnect

		c, err := f.CreateCache()

		require.NoError(t, err)
		assert.IsType(t, &InMemoryReportCache{}, c)
		require.Equal(t, 1, logs.Len())
		assert.Equal(t, "redis:6379", logs.All()[0].ContextMap()["addr"])
	})

	t.Run("fallback disabled returns the error", func(t *testing.T) {
		f := NewReportCacheFactory(config.RedisConfig{Enabled: true, Host: "redis", Port: 6379},
			WithInMemoryFallback(false))
		f.connect = failingConnect

		c, err := f.CreateCache()

		require.Error(t, err)
		assert.Nil(t, c)
		assert.Contains(t, err.Error(), "connection refused")
	})
}
