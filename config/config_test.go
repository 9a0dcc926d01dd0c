package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("APP_PORT", "")
	t.Setenv("DB_PORT", "not-a-number")
	t.Setenv("KAFKA_ENABLED", "")
	t.Setenv("DB_SQLITE_PATH", "")

	cfg := Load()

	assert.Equal(t, "8002", cfg.Port)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "cinema_booking.db", cfg.Database.SQLitePath)
	assert.False(t, cfg.Kafka.Enabled)
	assert.Equal(t, "00:10", cfg.Sweep.PromoteAt)
	assert.Equal(t, "00:20", cfg.Sweep.EndAt)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_SQLITE_PATH", "/tmp/cinema.db")
	t.Setenv("KAFKA_ENABLED", "true")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092,")
	t.Setenv("REDIS_DB", "3")

	cfg := Load()

	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "/tmp/cinema.db", cfg.Database.SQLitePath)
	assert.True(t, cfg.Kafka.Enabled)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, 3, cfg.Redis.DB)
}
