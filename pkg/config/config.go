package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config는 모든 서비스가 공유하는 설정입니다
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	JWT      JWTConfig
	Redis    RedisConfig
	RabbitMQ RabbitMQConfig
	Mongo    MongoConfig
	Gateway  GatewayConfig
	Log      LogConfig
}

type ServerConfig struct {
	GatewayPort     int
	AuthPort        int
	UserPort        int
	ShutdownTimeout time.Duration
}

type DatabaseConfig struct {
	Driver   string
	DSN      string
	Host     string
	Port     int
	User     string
	Password string
	Name     string
}

type JWTConfig struct {
	Secret string
	Expiry time.Duration
	Issuer string
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// Enabled는 Redis 호스트가 설정되어 있는지 여부입니다
func (c RedisConfig) Enabled() bool {
	return c.Host != ""
}

type RabbitMQConfig struct {
	URL string
}

type MongoConfig struct {
	URI      string
	Database string
}

type GatewayConfig struct {
	AuthServiceURL  string
	UserServiceURL  string
	RateLimit       float64
	RateBurst       int
	UpstreamTimeout time.Duration
}

type LogConfig struct {
	Level string
}

// Load는 .env 파일과 환경 변수에서 설정을 읽습니다
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("⚠️ Failed to load .env file: %v", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			GatewayPort:     getIntEnv("GATEWAY_PORT", 5001),
			AuthPort:        getIntEnv("AUTH_PORT", 5002),
			UserPort:        getIntEnv("USER_PORT", 5003),
			ShutdownTimeout: getDurationEnv("SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Database: DatabaseConfig{
			Driver:   getEnv("DB_DRIVER", DriverMySQL),
			DSN:      getEnv("DB_DSN", ""),
			Host:     getEnv("DB_HOST", "radar-mysql"),
			Port:     getIntEnv("DB_PORT", 3306),
			User:     getEnv("DB_USER", "root"),
			Password: getEnv("DB_PASSWORD", "sample"),
			Name:     getEnv("DB_NAME", "radar"),
		},
		JWT: JWTConfig{
			Secret: getEnv("JWT_SECRET", ""),
			Expiry: getDurationEnv("JWT_EXPIRY", 24*time.Hour),
			Issuer: getEnv("JWT_ISSUER", "radar"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", ""),
			Port:     getIntEnv("REDIS_PORT", 6379),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getIntEnv("REDIS_DB", 0),
		},
		RabbitMQ: RabbitMQConfig{
			URL: getEnv("RABBITMQ_URL", ""),
		},
		Mongo: MongoConfig{
			URI:      getEnv("MONGO_URI", "mongodb://radar-mongo:27017"),
			Database: getEnv("MONGO_DATABASE", "radar"),
		},
		Gateway: GatewayConfig{
			AuthServiceURL:  getEnv("AUTH_SERVICE_URL", "http://radar-auth:5002"),
			UserServiceURL:  getEnv("USER_SERVICE_URL", "http://radar-user:5003"),
			RateLimit:       getFloatEnv("GATEWAY_RATE_LIMIT", 20),
			RateBurst:       getIntEnv("GATEWAY_RATE_BURST", 40),
			UpstreamTimeout: getDurationEnv("GATEWAY_UPSTREAM_TIMEOUT", 15*time.Second),
		},
		Log: LogConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate는 필수 설정값을 검사합니다
func (c *Config) Validate() error {
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if c.JWT.Expiry <= 0 {
		return fmt.Errorf("JWT_EXPIRY must be positive")
	}

	switch c.Database.Driver {
	case DriverMySQL, DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.Database.Driver)
	}

	for name, port := range map[string]int{
		"GATEWAY_PORT": c.Server.GatewayPort,
		"AUTH_PORT":    c.Server.AuthPort,
		"USER_PORT":    c.Server.UserPort,
	} {
		if port <= 0 || port > 65535 {
			return fmt.Errorf("%s must be between 1 and 65535, got %d", name, port)
		}
	}

	if c.Gateway.RateLimit <= 0 || c.Gateway.RateBurst <= 0 {
		return fmt.Errorf("gateway rate limit and burst must be positive")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("⚠️ Invalid int for %s=%q, using default %d", key, value, defaultValue)
		return defaultValue
	}
	return n
}

func getFloatEnv(key string, defaultValue float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		log.Printf("⚠️ Invalid float for %s=%q, using default %v", key, value, defaultValue)
		return defaultValue
	}
	return f
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		log.Printf("⚠️ Invalid duration for %s=%q, using default %v", key, value, defaultValue)
		return defaultValue
	}
	return d
}
