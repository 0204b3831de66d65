package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config - структура для хранения конфигурации приложения
type Config struct {
	DatabaseURL string `env:"DATABASE_URL"`
	HTTPPort    string `env:"HTTP_PORT" envDefault:"8080"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// Пул соединений PostgreSQL
	DBMaxConns int32 `env:"DB_MAX_CONNS" envDefault:"10"`
	DBMinConns int32 `env:"DB_MIN_CONNS" envDefault:"0"`

	// Redis Config
	RedisAddr string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPass string `env:"REDIS_PASSWORD"`
	RedisDB   int    `env:"REDIS_DB" envDefault:"0"`

	// Подпись обратных вызовов о доставке push-уведомлений
	WebhookSecret string `env:"WEBHOOK_SECRET"`

	// Идентификация заявителя по JWT (необязательна)
	JWTSecret string `env:"JWT_SECRET"`

	// Classifier
	ModelPath string `env:"MODEL_PATH"`

	// Stats Config
	TimeZone         *time.Location `env:"TIMEZONE" envDefault:"UTC"`
	StatsCacheTTL    time.Duration  `env:"STATS_CACHE_TTL" envDefault:"10s"`
	IncidentCacheTTL time.Duration  `env:"INCIDENT_CACHE_TTL" envDefault:"5m"`

	// MQTT шлюз BLE-маяков
	MQTTBroker         string        `env:"MQTT_BROKER"`
	MQTTClientID       string        `env:"MQTT_CLIENT_ID" envDefault:"accident-alert-system"`
	MQTTUsername       string        `env:"MQTT_USERNAME"`
	MQTTPassword       string        `env:"MQTT_PASSWORD"`
	MQTTBroadcastTopic string        `env:"MQTT_BROADCAST_TOPIC" envDefault:"alerts/ble/broadcast"`
	MQTTPublishTimeout time.Duration `env:"MQTT_PUBLISH_TIMEOUT" envDefault:"3s"`

	// AWS SNS mobile push
	AWSRegion      string `env:"AWS_REGION" envDefault:"eu-central-1"`
	SNSPlatformARN string `env:"SNS_PLATFORM_ARN"`

	// API Keys for authentication
	APIKeys []string `env:"API_KEYS"`
}

// LoadConfig загружает конфигурацию из переменных окружения и .env файла
func LoadConfig() (*Config, error) {
	// Загрузка переменных окружения из .env файла (если есть)
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("ошибка загрузки файла .env: %w", err)
	}

	cfg := &Config{
		DatabaseURL:        os.Getenv("DATABASE_URL"),
		HTTPPort:           getEnv("HTTP_PORT", "8080"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		DBMaxConns:         int32(getEnvAsInt("DB_MAX_CONNS", 10)),
		DBMinConns:         int32(getEnvAsInt("DB_MIN_CONNS", 0)),
		RedisAddr:          getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPass:          os.Getenv("REDIS_PASSWORD"),
		RedisDB:            getEnvAsInt("REDIS_DB", 0),
		WebhookSecret:      os.Getenv("WEBHOOK_SECRET"),
		JWTSecret:          os.Getenv("JWT_SECRET"),
		ModelPath:          os.Getenv("MODEL_PATH"),
		StatsCacheTTL:      getEnvAsDuration("STATS_CACHE_TTL", 10*time.Second),
		IncidentCacheTTL:   getEnvAsDuration("INCIDENT_CACHE_TTL", 5*time.Minute),
		MQTTBroker:         os.Getenv("MQTT_BROKER"),
		MQTTClientID:       getEnv("MQTT_CLIENT_ID", "accident-alert-system"),
		MQTTUsername:       os.Getenv("MQTT_USERNAME"),
		MQTTPassword:       os.Getenv("MQTT_PASSWORD"),
		MQTTBroadcastTopic: getEnv("MQTT_BROADCAST_TOPIC", "alerts/ble/broadcast"),
		MQTTPublishTimeout: getEnvAsDuration("MQTT_PUBLISH_TIMEOUT", 3*time.Second),
		AWSRegion:          getEnv("AWS_REGION", "eu-central-1"),
		SNSPlatformARN:     os.Getenv("SNS_PLATFORM_ARN"),
	}

	loc, err := time.LoadLocation(getEnv("TIMEZONE", "UTC"))
	if err != nil {
		return nil, fmt.Errorf("некорректная временная зона TIMEZONE: %w", err)
	}
	cfg.TimeZone = loc

	// Загрузка API ключей
	apiKeysStr := os.Getenv("API_KEYS")
	if apiKeysStr != "" {
		cfg.APIKeys = strings.Split(apiKeysStr, ",")
		for i, key := range cfg.APIKeys {
			cfg.APIKeys[i] = strings.TrimSpace(key)
		}
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is required")
	}

	return cfg, nil
}

// getEnv возвращает значение переменной окружения или значение по умолчанию
func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt возвращает значение переменной окружения как int или значение по умолчанию
func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsDuration возвращает значение переменной окружения как time.Duration или значение по умолчанию
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if durationValue, err := time.ParseDuration(value); err == nil {
			return durationValue
		}
	}
	return defaultValue
}
