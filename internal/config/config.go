// Package config loads runtime settings from the environment, an optional .env
// file and an optional YAML file. Environment variables win over the file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	AppName  string         `yaml:"app_name"`
	Env      string         `yaml:"env"`
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	Kafka    KafkaConfig    `yaml:"kafka"`
	Report   ReportConfig   `yaml:"report"`
	CORS     CORSConfig     `yaml:"cors"`
}

type ServerConfig struct {
	Port            string        `yaml:"port"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

type DatabaseConfig struct {
	Host            string        `yaml:"host"`
	Port            string        `yaml:"port"`
	User            string        `yaml:"user"`
	Password        string        `yaml:"password"`
	Name            string        `yaml:"name"`
	SSLMode         string        `yaml:"ssl_mode"`
	MaxRetries      int           `yaml:"max_retries"`
	MaxOpenConns    int           `yaml:"max_open_conns"`
	MaxIdleConns    int           `yaml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime"`
	AutoMigrate     bool          `yaml:"auto_migrate"`
}

// DSN returns the key/value connection string understood by the pgx driver.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		d.Host, d.User, d.Password, d.Name, d.Port, d.SSLMode,
	)
}

// RedisConfig with an empty Addr disables caching and idempotency.
type RedisConfig struct {
	Addr       string `yaml:"addr"`
	Password   string `yaml:"password"`
	DB         int    `yaml:"db"`
	MaxRetries int    `yaml:"max_retries"`
}

func (r RedisConfig) Enabled() bool { return r.Addr != "" }

type KafkaConfig struct {
	Brokers      []string      `yaml:"brokers"`
	GroupID      string        `yaml:"group_id"`
	PollInterval time.Duration `yaml:"poll_interval"`
	MaxRetries   int           `yaml:"max_retries"`
}

type ReportConfig struct {
	CacheTTL time.Duration `yaml:"cache_ttl"`
	// Timezone decides which calendar day "today" is for the dashboard.
	Timezone string `yaml:"timezone"`
}

// Location resolves Timezone, falling back to UTC.
func (r ReportConfig) Location() *time.Location {
	if r.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(r.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins"`
}

func defaults() Config {
	return Config{
		AppName: "HRMS Lite",
		Env:     "development",
		Server: ServerConfig{
			Port:            "8000",
			ReadTimeout:     5 * time.Second,
			WriteTimeout:    10 * time.Second,
			IdleTimeout:     60 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            "5432",
			User:            "postgres",
			Password:        "postgres",
			Name:            "hrms_lite",
			SSLMode:         "disable",
			MaxRetries:      5,
			MaxOpenConns:    25,
			MaxIdleConns:    10,
			ConnMaxLifetime: time.Hour,
		},
		Redis: RedisConfig{MaxRetries: 5},
		Kafka: KafkaConfig{
			GroupID:      "hrms-lite-report-cache",
			PollInterval: 3 * time.Second,
			MaxRetries:   5,
		},
		Report: ReportConfig{
			CacheTTL: 5 * time.Minute,
			Timezone: "UTC",
		},
		CORS: CORSConfig{
			AllowedOrigins: []string{
				"http://localhost:5173",
				"http://localhost:5174",
				"http://localhost:5175",
				"http://localhost:3000",
			},
		},
	}
}

// Load reads .env (if present), then CONFIG_FILE (if set), then the process
// environment. All malformed variables are reported in one error.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := defaults()
	if path := strings.TrimSpace(os.Getenv("CONFIG_FILE")); path != "" {
		if err := loadFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	e := &envReader{}
	e.str("APP_NAME", &cfg.AppName)
	e.str("APP_ENV", &cfg.Env)

	e.str("PORT", &cfg.Server.Port)
	e.duration("HTTP_READ_TIMEOUT", &cfg.Server.ReadTimeout)
	e.duration("HTTP_WRITE_TIMEOUT", &cfg.Server.WriteTimeout)
	e.duration("HTTP_IDLE_TIMEOUT", &cfg.Server.IdleTimeout)
	e.duration("HTTP_SHUTDOWN_TIMEOUT", &cfg.Server.ShutdownTimeout)

	e.str("DB_HOST", &cfg.Database.Host)
	e.str("DB_PORT", &cfg.Database.Port)
	e.str("DB_USER", &cfg.Database.User)
	e.str("DB_PASSWORD", &cfg.Database.Password)
	e.str("DB_NAME", &cfg.Database.Name)
	e.str("DB_SSLMODE", &cfg.Database.SSLMode)
	e.integer("DB_MAX_RETRIES", &cfg.Database.MaxRetries)
	e.integer("DB_MAX_OPEN_CONNS", &cfg.Database.MaxOpenConns)
	e.integer("DB_MAX_IDLE_CONNS", &cfg.Database.MaxIdleConns)
	e.duration("DB_CONN_MAX_LIFETIME", &cfg.Database.ConnMaxLifetime)
	e.boolean("DB_AUTO_MIGRATE", &cfg.Database.AutoMigrate)

	e.str("REDIS_ADDR", &cfg.Redis.Addr)
	e.str("REDIS_PASSWORD", &cfg.Redis.Password)
	e.integer("REDIS_DB", &cfg.Redis.DB)

	e.list("KAFKA_BROKER", &cfg.Kafka.Brokers)
	e.str("KAFKA_GROUP_ID", &cfg.Kafka.GroupID)
	e.duration("OUTBOX_POLL_INTERVAL", &cfg.Kafka.PollInterval)

	e.duration("REPORT_CACHE_TTL", &cfg.Report.CacheTTL)
	e.str("APP_TIMEZONE", &cfg.Report.Timezone)

	e.list("CORS_ORIGINS", &cfg.CORS.AllowedOrigins)

	if _, err := time.LoadLocation(cfg.Report.Timezone); err != nil {
		e.invalid = append(e.invalid, "APP_TIMEZONE")
	}
	if len(e.invalid) > 0 {
		return Config{}, fmt.Errorf("config: invalid environment values: %s", strings.Join(e.invalid, ", "))
	}

	return cfg, nil
}

// IsProduction switches logging and gin to their production modes.
func (c Config) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}

func loadFile(path string, cfg *Config) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: read file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return fmt.Errorf("config: parse yaml: %w", err)
	}
	return nil
}

var errEmpty = errors.New("empty")

type envReader struct {
	invalid []string
}

func lookup(key string) (string, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return "", errEmpty
	}
	return v, nil
}

func (e *envReader) str(key string, dst *string) {
	if v, err := lookup(key); err == nil {
		*dst = v
	}
}

func (e *envReader) integer(key string, dst *int) {
	v, err := lookup(key)
	if err != nil {
		return
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		e.invalid = append(e.invalid, key)
		return
	}
	*dst = n
}

func (e *envReader) boolean(key string, dst *bool) {
	v, err := lookup(key)
	if err != nil {
		return
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		e.invalid = append(e.invalid, key)
		return
	}
	*dst = b
}

func (e *envReader) duration(key string, dst *time.Duration) {
	v, err := lookup(key)
	if err != nil {
		return
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		e.invalid = append(e.invalid, key)
		return
	}
	*dst = d
}

func (e *envReader) list(key string, dst *[]string) {
	v, err := lookup(key)
	if err != nil {
		return
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	*dst = out
}
