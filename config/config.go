package config

import (
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/joho/godotenv"
)

var loadEnv sync.Once

// Config func to get env value
func Config(key string) string {
	loadEnv.Do(func() {
		// .env is optional, real deployments inject the environment directly
		_ = godotenv.Load(".env")
	})
	return os.Getenv(key)
}

type AppConfig struct {
	Port        string
	Timezone    string
	CorsOrigins string
	LogDir      string
	LogLevel    string

	Database DatabaseConfig
	JWT      JWTConfig
	Admin    AdminConfig
	Sweep    SweepConfig
	Redis    RedisConfig
	Kafka    KafkaConfig
}

type DatabaseConfig struct {
	Driver string
	// SQLitePath is used when Driver is "sqlite".
	SQLitePath string
	Host       string
	Port       int
	User       string
	Password   string
	Name       string
	SSLMode    string
}

type JWTConfig struct {
	Secret     string
	TTLMinutes int
}

type AdminConfig struct {
	Email    string
	Password string
	Name     string
}

type SweepConfig struct {
	PromoteAt         string
	EndAt             string
	ScheduleCloseCron string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type KafkaConfig struct {
	Enabled bool
	Brokers []string
	Topic   string
}

func Load() *AppConfig {
	return &AppConfig{
		Port:        getEnv("APP_PORT", "8002"),
		Timezone:    getEnv("APP_TIMEZONE", "Asia/Seoul"),
		CorsOrigins: getEnv("CORS_ORIGINS", "http://localhost:5173"),
		LogDir:      getEnv("LOG_DIR", ""),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		Database: DatabaseConfig{
			Driver:     getEnv("DB_DRIVER", "postgres"),
			SQLitePath: getEnv("DB_SQLITE_PATH", "cinema_booking.db"),
			Host:       getEnv("DB_HOST", "localhost"),
			Port:       getEnvInt("DB_PORT", 5432),
			User:       getEnv("DB_USER", "postgres"),
			Password:   getEnv("DB_PASSWORD", ""),
			Name:       getEnv("DB_NAME", "movieing"),
			SSLMode:    getEnv("DB_SSLMODE", "disable"),
		},
		JWT: JWTConfig{
			Secret:     getEnv("JWT_SECRET", ""),
			TTLMinutes: getEnvInt("JWT_TTL_MINUTES", 60),
		},
		Admin: AdminConfig{
			Email:    getEnv("ADMIN_EMAIL", "admin@movieing.com"),
			Password: getEnv("ADMIN_PASSWORD", "admin1234"),
			Name:     getEnv("ADMIN_NAME", "admin"),
		},
		Sweep: SweepConfig{
			PromoteAt:         getEnv("SWEEP_PROMOTE_AT", "00:10"),
			EndAt:             getEnv("SWEEP_END_AT", "00:20"),
			ScheduleCloseCron: getEnv("SCHEDULE_CLOSE_CRON", "*/5 * * * *"),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		Kafka: KafkaConfig{
			Enabled: getEnvBool("KAFKA_ENABLED", false),
			Brokers: getEnvList("KAFKA_BROKERS", []string{"localhost:9092"}),
			Topic:   getEnv("KAFKA_TOPIC", "cinema.lifecycle"),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := Config(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := Config(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := Config(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvList(key string, defaultValue []string) []string {
	value := Config(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
