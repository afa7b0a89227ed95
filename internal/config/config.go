package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/m04kA/SMC-TableBooking/internal/domain"
	"github.com/m04kA/SMC-TableBooking/pkg/types"
)

// EnvConfigPath переменная окружения с путём к файлу конфигурации
const EnvConfigPath = "CONFIG_PATH"

// DefaultPath путь к конфигурации по умолчанию
const DefaultPath = "config.toml"

// ErrInvalidConfig возвращается при некорректных значениях конфигурации
var ErrInvalidConfig = errors.New("config: invalid configuration")

type Config struct {
	Server       ServerConfig       `toml:"server"`
	Database     DatabaseConfig     `toml:"database"`
	Logs         LogsConfig         `toml:"logs"`
	Metrics      MetricsConfig      `toml:"metrics"`
	Availability AvailabilityConfig `toml:"availability"`
	Cache        CacheConfig        `toml:"cache"`
	Events       EventsConfig       `toml:"events"`
	RateLimit    RateLimitConfig    `toml:"rate_limit"`
}

type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`     // секунды
	WriteTimeout    int `toml:"write_timeout"`    // секунды
	IdleTimeout     int `toml:"idle_timeout"`     // секунды
	ShutdownTimeout int `toml:"shutdown_timeout"` // секунды
}

type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // секунды
}

// DSN строка подключения для lib/pq
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"` // пусто - только stdout
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// AvailabilityConfig часы работы ресторана, одинаковые для всех столов и дней
type AvailabilityConfig struct {
	OpenTime  string `toml:"open_time"`
	CloseTime string `toml:"close_time"`
}

// Window возвращает окно работы. Значения проверены в Validate.
func (c AvailabilityConfig) Window() domain.OpeningWindow {
	return domain.OpeningWindow{
		Open:  types.TimeString(c.OpenTime),
		Close: types.TimeString(c.CloseTime),
	}
}

type CacheConfig struct {
	Enabled  bool   `toml:"enabled"`
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
	TTL      int    `toml:"ttl"` // секунды
}

func (c CacheConfig) TTLDuration() time.Duration {
	return time.Duration(c.TTL) * time.Second
}

type EventsConfig struct {
	Enabled        bool     `toml:"enabled"`
	Brokers        []string `toml:"brokers"`
	Topic          string   `toml:"topic"`
	BatchTimeoutMs int      `toml:"batch_timeout_ms"`
}

func (c EventsConfig) BatchTimeout() time.Duration {
	return time.Duration(c.BatchTimeoutMs) * time.Millisecond
}

type RateLimitConfig struct {
	Enabled           bool     `toml:"enabled"`
	RequestsPerSecond float64  `toml:"requests_per_second"`
	Burst             int      `toml:"burst"`
	IdleTTL           int      `toml:"idle_ttl"`        // секунды, после которых лимитер IP забывается
	TrustedProxies    []string `toml:"trusted_proxies"` // IP или CIDR; только им верим в X-Forwarded-For
}

func (c RateLimitConfig) IdleTTLDuration() time.Duration {
	return time.Duration(c.IdleTTL) * time.Second
}

// TrustedNets разбирает trusted_proxies. Одиночный IP превращается в сеть из одного адреса.
func (c RateLimitConfig) TrustedNets() ([]*net.IPNet, error) {
	nets := make([]*net.IPNet, 0, len(c.TrustedProxies))
	for _, entry := range c.TrustedProxies {
		entry = strings.TrimSpace(entry)
		if !strings.Contains(entry, "/") {
			ip := net.ParseIP(entry)
			if ip == nil {
				return nil, fmt.Errorf("invalid proxy address %q", entry)
			}
			bits := 8 * net.IPv6len
			if ip.To4() != nil {
				ip = ip.To4()
				bits = 8 * net.IPv4len
			}
			nets = append(nets, &net.IPNet{IP: ip, Mask: net.CIDRMask(bits, bits)})
			continue
		}

		_, ipNet, err := net.ParseCIDR(entry)
		if err != nil {
			return nil, fmt.Errorf("invalid proxy network %q: %v", entry, err)
		}
		nets = append(nets, ipNet)
	}
	return nets, nil
}

// Default конфигурация со значениями по умолчанию
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     10,
			WriteTimeout:    10,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			User:            "postgres",
			DBName:          "bistro",
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Logs: LogsConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Path:        "/metrics",
			ServiceName: "table-booking",
		},
		Availability: AvailabilityConfig{
			OpenTime:  string(domain.DefaultOpeningTime),
			CloseTime: string(domain.DefaultClosingTime),
		},
		Cache: CacheConfig{
			Addr: "localhost:6379",
			TTL:  60,
		},
		Events: EventsConfig{
			Topic:          "booking-events",
			BatchTimeoutMs: 50,
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 5,
			Burst:             20,
			IdleTTL:           600,
		},
	}
}

// Path возвращает путь к файлу конфигурации с учётом CONFIG_PATH
func Path() string {
	if path := os.Getenv(EnvConfigPath); path != "" {
		return path
	}
	return DefaultPath
}

// Load читает TOML файл поверх значений по умолчанию и проверяет результат
func Load(path string) (*Config, error) {
	cfg := Default()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate проверяет значения конфигурации
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port must be in 1..65535, got %d", ErrInvalidConfig, c.Server.HTTPPort)
	}

	if c.Database.Host == "" {
		return fmt.Errorf("%w: database.host is required", ErrInvalidConfig)
	}
	if c.Database.Port <= 0 || c.Database.Port > 65535 {
		return fmt.Errorf("%w: database.port must be in 1..65535, got %d", ErrInvalidConfig, c.Database.Port)
	}

	open, err := types.NewTimeStringFromString(c.Availability.OpenTime)
	if err != nil {
		return fmt.Errorf("%w: availability.open_time: %v", ErrInvalidConfig, err)
	}
	closing, err := types.NewTimeStringFromString(c.Availability.CloseTime)
	if err != nil {
		return fmt.Errorf("%w: availability.close_time: %v", ErrInvalidConfig, err)
	}
	if !open.IsBefore(closing) {
		return fmt.Errorf("%w: availability.open_time %s must be before close_time %s", ErrInvalidConfig, open, closing)
	}

	if c.Cache.Enabled && c.Cache.Addr == "" {
		return fmt.Errorf("%w: cache.addr is required when cache is enabled", ErrInvalidConfig)
	}

	if c.Events.Enabled && (len(c.Events.Brokers) == 0 || c.Events.Topic == "") {
		return fmt.Errorf("%w: events.brokers and events.topic are required when events are enabled", ErrInvalidConfig)
	}

	if c.RateLimit.Enabled && (c.RateLimit.RequestsPerSecond <= 0 || c.RateLimit.Burst <= 0) {
		return fmt.Errorf("%w: rate_limit.requests_per_second and rate_limit.burst must be positive", ErrInvalidConfig)
	}
	if c.RateLimit.Enabled && c.RateLimit.IdleTTL <= 0 {
		return fmt.Errorf("%w: rate_limit.idle_ttl must be positive", ErrInvalidConfig)
	}
	if _, err := c.RateLimit.TrustedNets(); err != nil {
		return fmt.Errorf("%w: rate_limit.trusted_proxies: %v", ErrInvalidConfig, err)
	}

	return nil
}
