package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Server  ServerConfig
	Email   EmailConfig
	Redis   RedisConfig
	Kafka   KafkaConfig
	Storage StorageConfig
	Auth    AuthConfig
	OTP     OTPConfig
}

type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

type EmailConfig struct {
	SMTPHost     string
	SMTPPort     string
	SMTPUsername string
	SMTPPassword string
	FromAddress  string
	Enabled      bool
}

type RedisConfig struct {
	Addr    string
	Enabled bool
}

type KafkaConfig struct {
	Brokers  []string
	Topic    string
	Enabled  bool
	MockMode bool
}

type StorageConfig struct {
	DataDir     string
	UsersDoc    string
	BookingsDoc string
}

type AuthConfig struct {
	JWTSecret  string
	SessionTTL time.Duration
}

type OTPConfig struct {
	Expiry time.Duration
}

func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port:         getEnv("PORT", ":8080"),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		Email: EmailConfig{
			SMTPHost:     getEnv("SMTP_HOST", "smtp.gmail.com"),
			SMTPPort:     getEnv("SMTP_PORT", "587"),
			SMTPUsername: getEnv("SMTP_USERNAME", ""),
			SMTPPassword: getEnv("SMTP_PASSWORD", ""),
			FromAddress:  getEnv("SMTP_FROM", getEnv("SMTP_USERNAME", "")),
			Enabled:      getEnvBool("SMTP_ENABLED", true),
		},
		Redis: RedisConfig{
			Addr:    getEnv("REDIS_ADDR", "localhost:6379"),
			Enabled: getEnvBool("REDIS_ENABLED", false),
		},
		Kafka: KafkaConfig{
			Brokers:  []string{getEnv("KAFKA_BROKERS", "localhost:9092")},
			Topic:    getEnv("KAFKA_TOPIC_BOOKINGS", "railbooking.tickets"),
			Enabled:  getEnvBool("KAFKA_ENABLED", false),
			MockMode: getEnvBool("KAFKA_MOCK_MODE", false),
		},
		Storage: StorageConfig{
			DataDir:     getEnv("DATA_DIR", "data"),
			UsersDoc:    getEnv("USERS_DOC", "users.json"),
			BookingsDoc: getEnv("BOOKINGS_DOC", "railway_data.json"),
		},
		Auth: AuthConfig{
			JWTSecret:  getEnv("JWT_SECRET", "replace-this-with-a-secure-random-value"),
			SessionTTL: time.Duration(getEnvInt("SESSION_TTL_MINUTES", 60)) * time.Minute,
		},
		OTP: OTPConfig{
			Expiry: time.Duration(getEnvInt("OTP_EXPIRY_MINUTES", 5)) * time.Minute,
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
