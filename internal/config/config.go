package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

var (
	// ErrReadConfig возвращается, когда не удалось прочитать файл конфигурации
	ErrReadConfig = errors.New("config: failed to read config file")

	// ErrInvalidConfig возвращается, когда конфигурация не прошла валидацию
	ErrInvalidConfig = errors.New("config: invalid configuration")
)

// Переменные окружения, переопределяющие значения из config.toml
const (
	envDBPassword       = "DB_PASSWORD"
	envPaymentSecretKey = "PAYMENT_SECRET_KEY"
	envRedisPassword    = "REDIS_PASSWORD"
	envRabbitMQURL      = "RABBITMQ_URL"
	envHTTPPort         = "HTTP_PORT"
)

// Config конфигурация сервиса
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Database DatabaseConfig `toml:"database"`
	Redis    RedisConfig    `toml:"redis"`
	Session  SessionConfig  `toml:"session"`
	Payment  PaymentConfig  `toml:"payment"`
	Breaker  BreakerConfig  `toml:"breaker"`
	RabbitMQ RabbitMQConfig `toml:"rabbitmq"`
	Logs     LogsConfig     `toml:"logs"`
	Metrics  MetricsConfig  `toml:"metrics"`
}

// ServerConfig настройки HTTP сервера (таймауты в секундах)
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// DatabaseConfig настройки подключения к PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
}

// DSN возвращает строку подключения к БД
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// RedisConfig настройки Redis (хранилище сессий бронирования)
type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

// SessionConfig настройки сессии бронирования
type SessionConfig struct {
	CookieName        string `toml:"cookie_name"`
	PendingTTLMinutes int    `toml:"pending_ttl_minutes"`
	Secure            bool   `toml:"secure"`
}

// PendingTTL время жизни незавершённого бронирования
func (s SessionConfig) PendingTTL() time.Duration {
	return time.Duration(s.PendingTTLMinutes) * time.Minute
}

// PaymentConfig настройки платёжного шлюза
type PaymentConfig struct {
	BaseURL        string `toml:"base_url"`
	SecretKey      string `toml:"secret_key"`
	Currency       string `toml:"currency"`
	MinAmountMinor int64  `toml:"min_amount_minor"`
	SuccessURL     string `toml:"success_url"`
	CancelURL      string `toml:"cancel_url"`
	Timeout        int    `toml:"timeout"`

	// Подписка врача на рекомендацию, отмена возвращает на cancel_url
	RecommendationAmountMinor int64  `toml:"recommendation_amount_minor"`
	RecommendationSuccessURL  string `toml:"recommendation_success_url"`
}

// BreakerConfig настройки circuit breaker для платёжного шлюза
type BreakerConfig struct {
	MaxRequests         uint32 `toml:"max_requests"`
	Interval            int    `toml:"interval"`
	Timeout             int    `toml:"timeout"`
	ConsecutiveFailures uint32 `toml:"consecutive_failures"`
}

// RabbitMQConfig настройки публикации событий
type RabbitMQConfig struct {
	Enabled  bool   `toml:"enabled"`
	URL      string `toml:"url"`
	Exchange string `toml:"exchange"`
}

// LogsConfig настройки логирования
type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// MetricsConfig настройки Prometheus метрик
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// Load загружает конфигурацию из TOML файла
// Секреты могут быть переданы через .env или переменные окружения
func Load(path string) (*Config, error) {
	cfg := defaultConfig()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrReadConfig, path, err)
	}

	// .env необязателен
	_ = godotenv.Load()

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     15,
			WriteTimeout:    15,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Database: DatabaseConfig{
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Redis: RedisConfig{
			Addr: "localhost:6379",
		},
		Session: SessionConfig{
			CookieName:        "booking_session",
			PendingTTLMinutes: 60,
		},
		Payment: PaymentConfig{
			Currency:       "usd",
			MinAmountMinor: 50,
			Timeout:        10,

			RecommendationAmountMinor: 299,
		},
		Breaker: BreakerConfig{
			MaxRequests:         1,
			Interval:            60,
			Timeout:             30,
			ConsecutiveFailures: 5,
		},
		RabbitMQ: RabbitMQConfig{
			Exchange: "appointments",
		},
		Logs: LogsConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Path:        "/metrics",
			ServiceName: "appointment-service",
		},
	}
}

func (c *Config) applyEnv() error {
	if v, ok := os.LookupEnv(envDBPassword); ok {
		c.Database.Password = v
	}
	if v, ok := os.LookupEnv(envPaymentSecretKey); ok {
		c.Payment.SecretKey = v
	}
	if v, ok := os.LookupEnv(envRedisPassword); ok {
		c.Redis.Password = v
	}
	if v, ok := os.LookupEnv(envRabbitMQURL); ok {
		c.RabbitMQ.URL = v
	}
	if v, ok := os.LookupEnv(envHTTPPort); ok {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %s must be integer: %v", ErrInvalidConfig, envHTTPPort, err)
		}
		c.Server.HTTPPort = port
	}
	return nil
}

// Validate проверяет обязательные поля конфигурации
func (c *Config) Validate() error {
	switch {
	case c.Server.HTTPPort <= 0:
		return fmt.Errorf("%w: server.http_port must be positive", ErrInvalidConfig)
	case c.Database.Host == "":
		return fmt.Errorf("%w: database.host is required", ErrInvalidConfig)
	case c.Database.DBName == "":
		return fmt.Errorf("%w: database.dbname is required", ErrInvalidConfig)
	case c.Redis.Addr == "":
		return fmt.Errorf("%w: redis.addr is required", ErrInvalidConfig)
	case c.Session.CookieName == "":
		return fmt.Errorf("%w: session.cookie_name is required", ErrInvalidConfig)
	case c.Session.PendingTTLMinutes <= 0:
		return fmt.Errorf("%w: session.pending_ttl_minutes must be positive", ErrInvalidConfig)
	case c.Payment.BaseURL == "":
		return fmt.Errorf("%w: payment.base_url is required", ErrInvalidConfig)
	case c.Payment.SecretKey == "":
		return fmt.Errorf("%w: payment.secret_key is required (or %s)", ErrInvalidConfig, envPaymentSecretKey)
	case c.Payment.MinAmountMinor <= 0:
		return fmt.Errorf("%w: payment.min_amount_minor must be positive", ErrInvalidConfig)
	case c.Payment.SuccessURL == "" || c.Payment.CancelURL == "":
		return fmt.Errorf("%w: payment.success_url and payment.cancel_url are required", ErrInvalidConfig)
	case c.Payment.RecommendationAmountMinor < c.Payment.MinAmountMinor:
		return fmt.Errorf("%w: payment.recommendation_amount_minor must be at least payment.min_amount_minor", ErrInvalidConfig)
	case c.Payment.RecommendationSuccessURL == "":
		return fmt.Errorf("%w: payment.recommendation_success_url is required", ErrInvalidConfig)
	case c.RabbitMQ.Enabled && c.RabbitMQ.URL == "":
		return fmt.Errorf("%w: rabbitmq.url is required when rabbitmq is enabled", ErrInvalidConfig)
	}
	return nil
}
