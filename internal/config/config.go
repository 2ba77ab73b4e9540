package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/m04kA/SMC-BarberService/internal/domain"
)

const (
	StorageDriverPostgres = "postgres"
	StorageDriverFile     = "file"
)

var (
	ErrReadConfig    = errors.New("config: failed to read config file")
	ErrInvalidConfig = errors.New("config: invalid configuration")
)

// Config конфигурация сервиса
type Config struct {
	Server    ServerConfig    `toml:"server"`
	Database  DatabaseConfig  `toml:"database"`
	Storage   StorageConfig   `toml:"storage"`
	Redis     RedisConfig     `toml:"redis"`
	Logs      LogsConfig      `toml:"logs"`
	Metrics   MetricsConfig   `toml:"metrics"`
	Shop      ShopConfig      `toml:"shop"`
	Webhook   WebhookConfig   `toml:"webhook"`
	Messaging MessagingConfig `toml:"messaging"`
	Twilio    TwilioConfig    `toml:"twilio"`
	Meta      MetaConfig      `toml:"meta"`
	Catalog   CatalogConfig   `toml:"catalog"`
}

// ServerConfig таймауты в секундах
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
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
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// URL строка подключения для golang-migrate
func (d DatabaseConfig) URL() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.User, d.Password),
		Host:     fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:     d.DBName,
		RawQuery: "sslmode=" + d.SSLMode,
	}
	return u.String()
}

// StorageConfig driver: postgres | file
type StorageConfig struct {
	Driver string `toml:"driver"`
	Path   string `toml:"path"` // JSON файл для driver = "file"
}

// RedisConfig при Enabled = false дедупликация в памяти, блокировки внутри процесса
type RedisConfig struct {
	Enabled  bool   `toml:"enabled"`
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
	LockTTL  int    `toml:"lock_ttl"` // секунды
}

type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

type ShopConfig struct {
	Timezone string `toml:"timezone"`
}

// Location часовой пояс салона; после Validate ошибки не бывает
func (s ShopConfig) Location() (*time.Location, error) {
	return time.LoadLocation(s.Timezone)
}

type WebhookConfig struct {
	// TwilioPublicURL адрес вебхука для проверки подписи Twilio (за прокси)
	TwilioPublicURL string  `toml:"twilio_public_url"`
	DedupTTL        int     `toml:"dedup_ttl"` // секунды
	RateLimitRPS    float64 `toml:"rate_limit_rps"`
	RateLimitBurst  int     `toml:"rate_limit_burst"`
}

type MessagingConfig struct {
	DefaultProvider string `toml:"default_provider"` // twilio | meta
	SendTimeout     int    `toml:"send_timeout"`     // секунды
}

type TwilioConfig struct {
	Enabled    bool   `toml:"enabled"`
	BaseURL    string `toml:"base_url"`
	AccountSID string `toml:"account_sid"`
	AuthToken  string `toml:"auth_token"`
	From       string `toml:"from"`
	Timeout    int    `toml:"timeout"` // секунды
}

type MetaConfig struct {
	Enabled       bool   `toml:"enabled"`
	GraphAPIBase  string `toml:"graph_api_base"`
	AccessToken   string `toml:"access_token"`
	PhoneNumberID string `toml:"phone_number_id"`
	AppSecret     string `toml:"app_secret"`
	VerifyToken   string `toml:"verify_token"`
	Timeout       int    `toml:"timeout"` // секунды
}

// CatalogConfig каталог услуг и барберы; порядок в файле сохраняется
type CatalogConfig struct {
	Services []ServiceEntry `toml:"services"`
	Barbers  []BarberEntry  `toml:"barbers"`
}

type ServiceEntry struct {
	ID              string  `toml:"id"`
	Name            string  `toml:"name"`
	DurationMinutes int     `toml:"duration"`
	Price           float64 `toml:"price"`
	Category        string  `toml:"category"`
}

type BarberEntry struct {
	ID   string `toml:"id"`
	Name string `toml:"name"`
}

// ToDomainCatalog каталог услуг в порядке конфигурации
func (c CatalogConfig) ToDomainCatalog() domain.Catalog {
	catalog := make(domain.Catalog, 0, len(c.Services))
	for _, s := range c.Services {
		catalog = append(catalog, domain.ServiceDefinition{
			ID:              s.ID,
			Name:            s.Name,
			DurationMinutes: s.DurationMinutes,
			Price:           s.Price,
			Category:        s.Category,
		})
	}
	return catalog
}

// ToDomainRoster список барберов в порядке конфигурации
func (c CatalogConfig) ToDomainRoster() domain.Roster {
	roster := make(domain.Roster, 0, len(c.Barbers))
	for _, b := range c.Barbers {
		roster = append(roster, domain.Barber{ID: domain.BarberID(b.ID), Name: b.Name})
	}
	return roster
}

// Load читает TOML файл, подгружает .env (если есть) и применяет переменные окружения.
// Секреты задаются через окружение, а не в файле.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := defaults()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrReadConfig, path, err)
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func defaults() *Config {
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
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Storage: StorageConfig{
			Driver: StorageDriverFile,
			Path:   "data/bookings.json",
		},
		Redis: RedisConfig{
			Addr:    "localhost:6379",
			LockTTL: 5,
		},
		Logs: LogsConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Path:        "/metrics",
			ServiceName: "barber_service",
		},
		Shop: ShopConfig{
			Timezone: "Africa/Johannesburg",
		},
		Webhook: WebhookConfig{
			DedupTTL:       86400,
			RateLimitRPS:   10,
			RateLimitBurst: 20,
		},
		Messaging: MessagingConfig{
			DefaultProvider: "twilio",
			SendTimeout:     10,
		},
		Twilio: TwilioConfig{Timeout: 10},
		Meta:   MetaConfig{Timeout: 10},
	}
}

// applyEnv переопределяет значения из окружения
func (c *Config) applyEnv() {
	setString(&c.Database.Password, "DATABASE_PASSWORD")
	setString(&c.Redis.Password, "REDIS_PASSWORD")
	setString(&c.Twilio.AccountSID, "TWILIO_ACCOUNT_SID")
	setString(&c.Twilio.AuthToken, "TWILIO_AUTH_TOKEN")
	setString(&c.Meta.AccessToken, "META_ACCESS_TOKEN")
	setString(&c.Meta.AppSecret, "META_APP_SECRET")
	setString(&c.Meta.VerifyToken, "META_VERIFY_TOKEN")
	setString(&c.Storage.Driver, "STORAGE_DRIVER")
	setString(&c.Logs.Level, "LOG_LEVEL")

	if v, ok := os.LookupEnv("HTTP_PORT"); ok {
		if port, err := strconv.Atoi(v); err == nil {
			c.Server.HTTPPort = port
		}
	}
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}

// Validate отклоняет конфигурации, с которыми сервис не сможет работать
func (c *Config) Validate() error {
	var problems []string

	switch c.Storage.Driver {
	case StorageDriverPostgres:
		if c.Database.Host == "" || c.Database.DBName == "" {
			problems = append(problems, "database host and dbname are required for postgres storage")
		}
	case StorageDriverFile:
		if c.Storage.Path == "" {
			problems = append(problems, "storage path is required for file storage")
		}
	default:
		problems = append(problems, fmt.Sprintf("unknown storage driver %q", c.Storage.Driver))
	}

	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		problems = append(problems, fmt.Sprintf("invalid http_port %d", c.Server.HTTPPort))
	}

	if _, err := c.Shop.Location(); err != nil {
		problems = append(problems, fmt.Sprintf("invalid shop timezone %q", c.Shop.Timezone))
	}

	if len(c.Catalog.Services) == 0 {
		problems = append(problems, "catalog must contain at least one service")
	}
	seen := make(map[string]bool, len(c.Catalog.Services))
	for _, s := range c.Catalog.Services {
		if strings.TrimSpace(s.ID) == "" || strings.TrimSpace(s.Name) == "" {
			problems = append(problems, "catalog service requires id and name")
			continue
		}
		key := strings.ToLower(s.ID)
		if seen[key] {
			problems = append(problems, fmt.Sprintf("duplicate service id %q", s.ID))
		}
		seen[key] = true
	}
	for _, b := range c.Catalog.Barbers {
		if strings.TrimSpace(b.ID) == "" || strings.TrimSpace(b.Name) == "" {
			problems = append(problems, "barber requires id and name")
		}
	}

	switch c.Messaging.DefaultProvider {
	case "twilio", "meta":
	default:
		problems = append(problems, fmt.Sprintf("unknown default provider %q", c.Messaging.DefaultProvider))
	}

	if c.Redis.Enabled && c.Redis.Addr == "" {
		problems = append(problems, "redis addr is required when redis is enabled")
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
	}
	return nil
}
