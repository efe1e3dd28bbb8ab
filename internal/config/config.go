package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Kafka     KafkaConfig
	Log       LogConfig
	Pricing   PricingConfig
	Valuation ValuationConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port string
	Host string
}

// Addr returns the listen address
func (s ServerConfig) Addr() string {
	return s.Host + ":" + s.Port
}

// DatabaseConfig holds PostgreSQL configuration
type DatabaseConfig struct {
	Host           string
	Port           string
	User           string
	Password       string
	DBName         string
	SSLMode        string
	MigrationsPath string
}

// RedisConfig holds the price cache configuration
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	Enabled  bool
}

// KafkaConfig holds Kafka configuration
type KafkaConfig struct {
	Brokers          []string
	PriceTopic       string
	AlertTopic       string
	TransactionTopic string
	TradeTopic       string
	ConsumerGroup    string
	Enabled          bool
	ConsumeTrades    bool
}

// LogConfig holds logger configuration
type LogConfig struct {
	Level  string
	Pretty bool
}

// PricingConfig holds the price simulation schedule
type PricingConfig struct {
	UpdateCron string
	Seed       bool
}

// ValuationConfig selects the valuation policies
type ValuationConfig struct {
	AllowShort bool
	OmitClosed bool
}

// Load reads configuration from environment variables. A .env file in the
// working directory is loaded first when present.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "8080"),
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
		},
		Database: DatabaseConfig{
			Host:           getEnv("DB_HOST", "localhost"),
			Port:           getEnv("DB_PORT", "5432"),
			User:           getEnv("DB_USER", "postgres"),
			Password:       getEnv("DB_PASSWORD", "postgres"),
			DBName:         getEnv("DB_NAME", "portfolio"),
			SSLMode:        getEnv("DB_SSLMODE", "disable"),
			MigrationsPath: getEnv("DB_MIGRATIONS_PATH", "db/migrations"),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
			Enabled:  getEnvBool("REDIS_ENABLED", true),
		},
		Kafka: KafkaConfig{
			Brokers:          getEnvList("KAFKA_BROKERS", "localhost:9092"),
			PriceTopic:       getEnv("KAFKA_PRICE_TOPIC", "price-events"),
			AlertTopic:       getEnv("KAFKA_ALERT_TOPIC", "alert-events"),
			TransactionTopic: getEnv("KAFKA_TRANSACTION_TOPIC", "transaction-events"),
			TradeTopic:       getEnv("KAFKA_TRADE_TOPIC", "trading.orders"),
			ConsumerGroup:    getEnv("KAFKA_CONSUMER_GROUP", "portfolio-service"),
			Enabled:          getEnvBool("KAFKA_ENABLED", true),
			ConsumeTrades:    getEnvBool("KAFKA_CONSUME_TRADES", true),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Pretty: getEnvBool("LOG_PRETTY", false),
		},
		Pricing: PricingConfig{
			UpdateCron: getEnv("PRICE_UPDATE_CRON", "*/30 * * * * *"),
			Seed:       getEnvBool("SEED_STOCKS", true),
		},
		Valuation: ValuationConfig{
			AllowShort: getEnvBool("VALUATION_ALLOW_SHORT", false),
			OmitClosed: getEnvBool("VALUATION_OMIT_CLOSED", false),
		},
	}
}

// ConnectionString returns the PostgreSQL connection string
func (d *DatabaseConfig) ConnectionString() string {
	return "postgres://" + d.User + ":" + d.Password + "@" + d.Host + ":" + d.Port + "/" + d.DBName + "?sslmode=" + d.SSLMode
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if n, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return n
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if b, err := strconv.ParseBool(os.Getenv(key)); err == nil {
		return b
	}
	return defaultValue
}

// getEnvList splits a comma separated value, dropping empty entries
func getEnvList(key, defaultValue string) []string {
	var list []string
	for _, item := range strings.Split(getEnv(key, defaultValue), ",") {
		if item = strings.TrimSpace(item); item != "" {
			list = append(list, item)
		}
	}
	return list
}
