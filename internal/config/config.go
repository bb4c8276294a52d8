package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix префикс переменных окружения, переопределяющих файл конфигурации
const EnvPrefix = "MUCAMAS"

const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// Config конфигурация сервиса
type Config struct {
	Server         ServerConfig   `toml:"server" envconfig:"SERVER"`
	Database       DatabaseConfig `toml:"database" envconfig:"DATABASE"`
	Logs           LogsConfig     `toml:"logs" envconfig:"LOGS"`
	Metrics        MetricsConfig  `toml:"metrics" envconfig:"METRICS"`
	AccountService ClientConfig   `toml:"account_service" envconfig:"ACCOUNT_SERVICE"`
	CatalogService CatalogConfig  `toml:"catalog_service" envconfig:"CATALOG_SERVICE"`
	Booking        BookingConfig  `toml:"booking" envconfig:"BOOKING"`
	RabbitMQ       RabbitMQConfig `toml:"rabbitmq" envconfig:"RABBITMQ"`
	Auth           AuthConfig     `toml:"auth" envconfig:"AUTH"`
	OTP            OTPConfig      `toml:"otp" envconfig:"OTP"`
	Tracing        TracingConfig  `toml:"tracing" envconfig:"TRACING"`
}

// ServerConfig параметры HTTP сервера (таймауты в секундах)
type ServerConfig struct {
	HTTPPort        int `toml:"http_port" split_words:"true"`
	ReadTimeout     int `toml:"read_timeout" split_words:"true"`
	WriteTimeout    int `toml:"write_timeout" split_words:"true"`
	IdleTimeout     int `toml:"idle_timeout" split_words:"true"`
	ShutdownTimeout int `toml:"shutdown_timeout" split_words:"true"`
}

// DatabaseConfig параметры подключения к PostgreSQL.
// Driver = "memory" запускает сервис на хранилище в памяти (один экземпляр, без сохранения).
type DatabaseConfig struct {
	Driver          string `toml:"driver" split_words:"true"`
	Host            string `toml:"host" split_words:"true"`
	Port            int    `toml:"port" split_words:"true"`
	User            string `toml:"user" split_words:"true"`
	Password        string `toml:"password" split_words:"true"`
	DBName          string `toml:"dbname" split_words:"true"`
	SSLMode         string `toml:"sslmode" split_words:"true"`
	MaxOpenConns    int    `toml:"max_open_conns" split_words:"true"`
	MaxIdleConns    int    `toml:"max_idle_conns" split_words:"true"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime" split_words:"true"`
	NotifyChannel   string `toml:"notify_channel" split_words:"true"`
}

// DSN строка подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(d.User, d.Password),
		Host:   fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:   "/" + d.DBName,
	}
	q := u.Query()
	q.Set("sslmode", d.SSLMode)
	u.RawQuery = q.Encode()
	return u.String()
}

// LogsConfig параметры логирования
type LogsConfig struct {
	File  string `toml:"file" split_words:"true"`
	Level string `toml:"level" split_words:"true"`
}

// MetricsConfig параметры prometheus
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled" split_words:"true"`
	Path        string `toml:"path" split_words:"true"`
	ServiceName string `toml:"service_name" split_words:"true"`
}

// ClientConfig параметры HTTP клиента внешнего сервиса (таймаут в секундах)
type ClientConfig struct {
	URL     string `toml:"url" split_words:"true"`
	Timeout int    `toml:"timeout" split_words:"true"`
}

// CatalogConfig параметры каталога услуг
type CatalogConfig struct {
	URL          string `toml:"url" split_words:"true"`
	Timeout      int    `toml:"timeout" split_words:"true"`
	PollInterval int    `toml:"poll_interval" split_words:"true"`
}

// BookingConfig параметры протокола бронирования
type BookingConfig struct {
	MaxClaimAttempts int    `toml:"max_claim_attempts" split_words:"true"`
	StepTimeout      int    `toml:"step_timeout" split_words:"true"`
	Timezone         string `toml:"timezone" split_words:"true"`
}

// Location часовой пояс, в котором заданы даты и время бронирований
func (b BookingConfig) Location() (*time.Location, error) {
	if b.Timezone == "" {
		return time.UTC, nil
	}
	return time.LoadLocation(b.Timezone)
}

// RabbitMQConfig параметры брокера сообщений.
// Если выключен, уведомления только логируются.
type RabbitMQConfig struct {
	Enabled  bool   `toml:"enabled" split_words:"true"`
	URL      string `toml:"url" split_words:"true"`
	Exchange string `toml:"exchange" split_words:"true"`
}

// AuthConfig параметры JWT
type AuthConfig struct {
	JWTSecret       string `toml:"jwt_secret" split_words:"true"`
	TokenTTLMinutes int    `toml:"token_ttl_minutes" split_words:"true"`
}

// OTPConfig параметры одноразовых кодов
type OTPConfig struct {
	CodeLength     int     `toml:"code_length" split_words:"true"`
	RatePerMinute  float64 `toml:"rate_per_minute" split_words:"true"`
	Burst          int     `toml:"burst" split_words:"true"`
	SendTimeout    int     `toml:"send_timeout" split_words:"true"`
	CodeTTLSeconds int     `toml:"code_ttl" split_words:"true"`
}

// TracingConfig параметры OpenTelemetry
type TracingConfig struct {
	Enabled     bool   `toml:"enabled" split_words:"true"`
	Endpoint    string `toml:"endpoint" split_words:"true"`
	ServiceName string `toml:"service_name" split_words:"true"`
	Version     string `toml:"version" split_words:"true"`
	Environment string `toml:"environment" split_words:"true"`
}

// Load читает конфигурацию из TOML файла и переопределяет значения переменными окружения
// вида MUCAMAS_<SECTION>_<KEY>
func Load(path string) (*Config, error) {
	cfg := Default()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrDecode, path, err)
	}

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEnv, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default значения, используемые для ключей, отсутствующих в файле
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     10,
			WriteTimeout:    15,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Database: DatabaseConfig{
			Driver:          DriverPostgres,
			Host:            "localhost",
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
			NotifyChannel:   "reservation_changes",
		},
		Logs: LogsConfig{Level: "info"},
		Metrics: MetricsConfig{
			Path:        "/metrics",
			ServiceName: "mucamas-booking",
		},
		AccountService: ClientConfig{Timeout: 5},
		CatalogService: CatalogConfig{Timeout: 5, PollInterval: 30},
		Booking: BookingConfig{
			MaxClaimAttempts: 3,
			StepTimeout:      5,
			Timezone:         "UTC",
		},
		RabbitMQ: RabbitMQConfig{Exchange: "mucamas.events"},
		Auth:     AuthConfig{TokenTTLMinutes: 60},
		OTP: OTPConfig{
			CodeLength:     6,
			RatePerMinute:  3,
			Burst:          1,
			SendTimeout:    5,
			CodeTTLSeconds: 300,
		},
		Tracing: TracingConfig{
			Endpoint:    "localhost:4317",
			ServiceName: "mucamas-booking",
			Version:     "dev",
			Environment: "local",
		},
	}
}

// Validate проверяет обязательные параметры
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port %d", ErrInvalidConfig, c.Server.HTTPPort)
	}

	switch c.Database.Driver {
	case DriverPostgres:
		if c.Database.Host == "" || c.Database.DBName == "" {
			return fmt.Errorf("%w: database.host and database.dbname are required", ErrInvalidConfig)
		}
	case DriverMemory:
	default:
		return fmt.Errorf("%w: database.driver %q", ErrInvalidConfig, c.Database.Driver)
	}

	if c.AccountService.URL == "" {
		return fmt.Errorf("%w: account_service.url is required", ErrInvalidConfig)
	}
	if c.CatalogService.URL == "" {
		return fmt.Errorf("%w: catalog_service.url is required", ErrInvalidConfig)
	}

	if c.Booking.MaxClaimAttempts <= 0 {
		return fmt.Errorf("%w: booking.max_claim_attempts must be positive", ErrInvalidConfig)
	}
	if c.Booking.StepTimeout <= 0 {
		return fmt.Errorf("%w: booking.step_timeout must be positive", ErrInvalidConfig)
	}
	if _, err := c.Booking.Location(); err != nil {
		return fmt.Errorf("%w: booking.timezone: %v", ErrInvalidConfig, err)
	}

	if c.RabbitMQ.Enabled && c.RabbitMQ.URL == "" {
		return fmt.Errorf("%w: rabbitmq.url is required when rabbitmq is enabled", ErrInvalidConfig)
	}
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("%w: auth.jwt_secret is required", ErrInvalidConfig)
	}
	if c.OTP.CodeLength < 4 {
		return fmt.Errorf("%w: otp.code_length must be at least 4", ErrInvalidConfig)
	}
	if c.Tracing.Enabled && c.Tracing.Endpoint == "" {
		return fmt.Errorf("%w: tracing.endpoint is required when tracing is enabled", ErrInvalidConfig)
	}

	return nil
}
