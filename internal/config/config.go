package config

import (
	"fmt"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/evelone226/salon-appointment-service/internal/domain"
)

// Config конфигурация сервиса, загружается из config.toml
type Config struct {
	Server         ServerConfig      `toml:"server"`
	Database       DatabaseConfig    `toml:"database"`
	Logs           LogsConfig        `toml:"logs"`
	Metrics        MetricsConfig     `toml:"metrics"`
	CatalogService IntegrationConfig `toml:"catalog_service"`
	UserService    IntegrationConfig `toml:"user_service"`
	Policy         PolicyConfig      `toml:"policy"`
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

// DSN собирает строку подключения
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// LogsConfig настройки логирования
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig настройки prometheus метрик
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// IntegrationConfig настройки внешнего сервиса (таймаут в секундах)
type IntegrationConfig struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"`
}

// PolicyConfig бизнес-политика бронирования.
// Нулевые значения заменяются дефолтами из domain при загрузке.
type PolicyConfig struct {
	CancellationNoticeMinutes int `toml:"cancellation_notice_minutes"`
	BookingHorizonMonths      int `toml:"booking_horizon_months"`
	MinDurationMinutes        int `toml:"min_duration_minutes"`
	MaxDurationMinutes        int `toml:"max_duration_minutes"`
	DurationStepMinutes       int `toml:"duration_step_minutes"`
	SlotStepMinutes           int `toml:"slot_step_minutes"`
}

// ToDomain конвертирует конфигурацию политики в domain.Policy
func (p PolicyConfig) ToDomain() domain.Policy {
	policy := domain.DefaultPolicy()

	if p.CancellationNoticeMinutes > 0 {
		policy.CancellationNotice = time.Duration(p.CancellationNoticeMinutes) * time.Minute
	}
	if p.BookingHorizonMonths > 0 {
		policy.BookingHorizonMonths = p.BookingHorizonMonths
	}
	if p.MinDurationMinutes > 0 {
		policy.MinDurationMinutes = p.MinDurationMinutes
	}
	if p.MaxDurationMinutes > 0 {
		policy.MaxDurationMinutes = p.MaxDurationMinutes
	}
	if p.DurationStepMinutes > 0 {
		policy.DurationStepMinutes = p.DurationStepMinutes
	}
	if p.SlotStepMinutes > 0 {
		policy.SlotStepMinutes = p.SlotStepMinutes
	}

	return policy
}

// Load читает и валидирует конфигурацию из TOML файла
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("config: failed to decode %s: %w", path, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Server.HTTPPort <= 0 {
		return fmt.Errorf("config: server.http_port must be positive")
	}
	if c.Database.Host == "" || c.Database.DBName == "" {
		return fmt.Errorf("config: database host and dbname are required")
	}
	if c.CatalogService.URL == "" {
		return fmt.Errorf("config: catalog_service.url is required")
	}
	if c.UserService.URL == "" {
		return fmt.Errorf("config: user_service.url is required")
	}
	if c.Metrics.Enabled && c.Metrics.Path == "" {
		return fmt.Errorf("config: metrics.path is required when metrics are enabled")
	}
	return nil
}
