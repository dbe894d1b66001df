package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server     ServerConfig
	DB         DBConfig
	Log        LogConfig
	CORS       CORSConfig
	Auth       AuthConfig
	Cache      CacheConfig
	Rates      RatesConfig
	MarketData MarketDataConfig
	S3         S3Config
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`

	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	ConnectTimeout  time.Duration `mapstructure:"connect_timeout"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// AuthConfig holds settings for verifying tokens issued by the identity provider.
type AuthConfig struct {
	JWTSecret string `mapstructure:"jwt_secret"`
	Issuer    string `mapstructure:"issuer"`
	AdminRole string `mapstructure:"admin_role"`
}

// CacheConfig holds refresh intervals per data category. A zero interval means
// the category never expires on its own.
type CacheConfig struct {
	TreatyTTL          time.Duration `mapstructure:"treaty_ttl"`
	InfrastructureTTL  time.Duration `mapstructure:"infrastructure_ttl"`
	BusinessPatternTTL time.Duration `mapstructure:"business_pattern_ttl"`
	TariffRateTTL      time.Duration `mapstructure:"tariff_rate_ttl"`
	ShippingRateTTL    time.Duration `mapstructure:"shipping_rate_ttl"`
	CountryRiskTTL     time.Duration `mapstructure:"country_risk_ttl"`
	PolicyOverlayTTL   time.Duration `mapstructure:"policy_overlay_ttl"`
	StaleRetention     time.Duration `mapstructure:"stale_retention"`
	VolatileOrigins    []string      `mapstructure:"volatile_origins"`
}

// RatesConfig holds rate resolution and comparison settings.
type RatesConfig struct {
	FetchTimeout         time.Duration `mapstructure:"fetch_timeout"`
	Concurrency          int           `mapstructure:"concurrency"`
	MaterialityThreshold float64       `mapstructure:"materiality_threshold"`
	TreatyVersion        string        `mapstructure:"treaty_version"`
	DefaultShippingMode  string        `mapstructure:"default_shipping_mode"`
}

// MarketDataConfig holds settings for the shipping/risk data provider.
type MarketDataConfig struct {
	BaseURL        string `mapstructure:"base_url"`
	APIKey         string `mapstructure:"api_key"`
	TimeoutSecs    int    `mapstructure:"timeout_secs"`
	RequestsPerMin int    `mapstructure:"requests_per_min"`
}

// Enabled reports whether a market data provider is configured.
func (m *MarketDataConfig) Enabled() bool {
	return m.BaseURL != ""
}

// S3Config holds AWS S3 settings for the comparison report archive.
type S3Config struct {
	Region        string `mapstructure:"region"`
	Bucket        string `mapstructure:"bucket"`
	Endpoint      string `mapstructure:"endpoint"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	PresignExpiry int64  `mapstructure:"presign_expiry"`
	ReportPrefix  string `mapstructure:"report_prefix"`
}

// Enabled reports whether report archiving is configured.
func (s *S3Config) Enabled() bool {
	return s.Bucket != ""
}

// Load reads configuration from environment variables with the TRADEFLOW_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("TRADEFLOW")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.environment", "development")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "tradeflow")
	v.SetDefault("db.password", "tradeflow_secret")
	v.SetDefault("db.name", "tradeflow_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)
	v.SetDefault("db.conn_max_lifetime", "30m")
	v.SetDefault("db.connect_timeout", "10s")

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// Auth defaults
	v.SetDefault("auth.jwt_secret", "change-me-in-production")
	v.SetDefault("auth.issuer", "")
	v.SetDefault("auth.admin_role", "admin")

	// Cache refresh intervals
	v.SetDefault("cache.treaty_ttl", "0s")
	v.SetDefault("cache.infrastructure_ttl", "0s")
	v.SetDefault("cache.business_pattern_ttl", "8760h")
	v.SetDefault("cache.tariff_rate_ttl", "1h")
	v.SetDefault("cache.shipping_rate_ttl", "4h")
	v.SetDefault("cache.country_risk_ttl", "24h")
	v.SetDefault("cache.policy_overlay_ttl", "1h")
	v.SetDefault("cache.stale_retention", "168h")
	v.SetDefault("cache.volatile_origins", "CN,VN,TH,IN,ID,MY,KH")

	// Rates defaults
	v.SetDefault("rates.fetch_timeout", "5s")
	v.SetDefault("rates.concurrency", 8)
	v.SetDefault("rates.materiality_threshold", 1000)
	v.SetDefault("rates.treaty_version", "USMCA-2020")
	v.SetDefault("rates.default_shipping_mode", "ocean")

	// Market data defaults
	v.SetDefault("market_data.base_url", "")
	v.SetDefault("market_data.api_key", "")
	v.SetDefault("market_data.timeout_secs", 10)
	v.SetDefault("market_data.requests_per_min", 60)

	// S3 defaults
	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.bucket", "")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.presign_expiry", 3600)
	v.SetDefault("s3.report_prefix", "comparison-reports")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":                  "TRADEFLOW_SERVER_PORT",
		"server.read_timeout":          "TRADEFLOW_SERVER_READ_TIMEOUT",
		"server.write_timeout":         "TRADEFLOW_SERVER_WRITE_TIMEOUT",
		"server.environment":           "TRADEFLOW_SERVER_ENVIRONMENT",
		"db.host":                      "TRADEFLOW_DB_HOST",
		"db.port":                      "TRADEFLOW_DB_PORT",
		"db.user":                      "TRADEFLOW_DB_USER",
		"db.password":                  "TRADEFLOW_DB_PASSWORD",
		"db.name":                      "TRADEFLOW_DB_NAME",
		"db.sslmode":                   "TRADEFLOW_DB_SSLMODE",
		"db.max_open":                  "TRADEFLOW_DB_MAX_OPEN",
		"db.max_idle":                  "TRADEFLOW_DB_MAX_IDLE",
		"db.conn_max_lifetime":         "TRADEFLOW_DB_CONN_MAX_LIFETIME",
		"db.connect_timeout":           "TRADEFLOW_DB_CONNECT_TIMEOUT",
		"log.level":                    "TRADEFLOW_LOG_LEVEL",
		"log.format":                   "TRADEFLOW_LOG_FORMAT",
		"cors.allowed_origins":         "TRADEFLOW_CORS_ALLOWED_ORIGINS",
		"auth.jwt_secret":              "TRADEFLOW_AUTH_JWT_SECRET",
		"auth.issuer":                  "TRADEFLOW_AUTH_ISSUER",
		"auth.admin_role":              "TRADEFLOW_AUTH_ADMIN_ROLE",
		"cache.treaty_ttl":             "TRADEFLOW_CACHE_TREATY_TTL",
		"cache.infrastructure_ttl":     "TRADEFLOW_CACHE_INFRASTRUCTURE_TTL",
		"cache.business_pattern_ttl":   "TRADEFLOW_CACHE_BUSINESS_PATTERN_TTL",
		"cache.tariff_rate_ttl":        "TRADEFLOW_CACHE_TARIFF_RATE_TTL",
		"cache.shipping_rate_ttl":      "TRADEFLOW_CACHE_SHIPPING_RATE_TTL",
		"cache.country_risk_ttl":       "TRADEFLOW_CACHE_COUNTRY_RISK_TTL",
		"cache.policy_overlay_ttl":     "TRADEFLOW_CACHE_POLICY_OVERLAY_TTL",
		"cache.stale_retention":        "TRADEFLOW_CACHE_STALE_RETENTION",
		"cache.volatile_origins":       "TRADEFLOW_CACHE_VOLATILE_ORIGINS",
		"rates.fetch_timeout":          "TRADEFLOW_RATES_FETCH_TIMEOUT",
		"rates.concurrency":            "TRADEFLOW_RATES_CONCURRENCY",
		"rates.materiality_threshold":  "TRADEFLOW_RATES_MATERIALITY_THRESHOLD",
		"rates.treaty_version":         "TRADEFLOW_RATES_TREATY_VERSION",
		"rates.default_shipping_mode":  "TRADEFLOW_RATES_DEFAULT_SHIPPING_MODE",
		"market_data.base_url":         "TRADEFLOW_MARKET_DATA_BASE_URL",
		"market_data.api_key":          "TRADEFLOW_MARKET_DATA_API_KEY",
		"market_data.timeout_secs":     "TRADEFLOW_MARKET_DATA_TIMEOUT_SECS",
		"market_data.requests_per_min": "TRADEFLOW_MARKET_DATA_REQUESTS_PER_MIN",
		"s3.region":                    "TRADEFLOW_S3_REGION",
		"s3.bucket":                    "TRADEFLOW_S3_BUCKET",
		"s3.endpoint":                  "TRADEFLOW_S3_ENDPOINT",
		"s3.access_key":                "TRADEFLOW_S3_ACCESS_KEY",
		"s3.secret_key":                "TRADEFLOW_S3_SECRET_KEY",
		"s3.presign_expiry":            "TRADEFLOW_S3_PRESIGN_EXPIRY",
		"s3.report_prefix":             "TRADEFLOW_S3_REPORT_PREFIX",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if TRADEFLOW_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("TRADEFLOW_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.DB = DBConfig{
		Host:     v.GetString("db.host"),
		Port:     v.GetInt("db.port"),
		User:     v.GetString("db.user"),
		Password: v.GetString("db.password"),
		Name:     v.GetString("db.name"),
		SSLMode:  v.GetString("db.sslmode"),
		MaxOpen:  v.GetInt("db.max_open"),
		MaxIdle:  v.GetInt("db.max_idle"),

		ConnMaxLifetime: v.GetDuration("db.conn_max_lifetime"),
		ConnectTimeout:  v.GetDuration("db.connect_timeout"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: splitList(v.GetString("cors.allowed_origins")),
	}
	cfg.Auth = AuthConfig{
		JWTSecret: v.GetString("auth.jwt_secret"),
		Issuer:    v.GetString("auth.issuer"),
		AdminRole: v.GetString("auth.admin_role"),
	}

	var volatile []string
	for _, c := range splitList(v.GetString("cache.volatile_origins")) {
		volatile = append(volatile, strings.ToUpper(c))
	}
	cfg.Cache = CacheConfig{
		TreatyTTL:          v.GetDuration("cache.treaty_ttl"),
		InfrastructureTTL:  v.GetDuration("cache.infrastructure_ttl"),
		BusinessPatternTTL: v.GetDuration("cache.business_pattern_ttl"),
		TariffRateTTL:      v.GetDuration("cache.tariff_rate_ttl"),
		ShippingRateTTL:    v.GetDuration("cache.shipping_rate_ttl"),
		CountryRiskTTL:     v.GetDuration("cache.country_risk_ttl"),
		PolicyOverlayTTL:   v.GetDuration("cache.policy_overlay_ttl"),
		StaleRetention:     v.GetDuration("cache.stale_retention"),
		VolatileOrigins:    volatile,
	}

	cfg.Rates = RatesConfig{
		FetchTimeout:         v.GetDuration("rates.fetch_timeout"),
		Concurrency:          v.GetInt("rates.concurrency"),
		MaterialityThreshold: v.GetFloat64("rates.materiality_threshold"),
		TreatyVersion:        v.GetString("rates.treaty_version"),
		DefaultShippingMode:  v.GetString("rates.default_shipping_mode"),
	}
	if cfg.Rates.Concurrency <= 0 {
		return nil, fmt.Errorf("rates.concurrency must be positive, got %d", cfg.Rates.Concurrency)
	}
	if cfg.Rates.MaterialityThreshold < 0 {
		return nil, fmt.Errorf("rates.materiality_threshold must not be negative")
	}

	cfg.MarketData = MarketDataConfig{
		BaseURL:        strings.TrimRight(v.GetString("market_data.base_url"), "/"),
		APIKey:         v.GetString("market_data.api_key"),
		TimeoutSecs:    v.GetInt("market_data.timeout_secs"),
		RequestsPerMin: v.GetInt("market_data.requests_per_min"),
	}

	cfg.S3 = S3Config{
		Region:        v.GetString("s3.region"),
		Bucket:        v.GetString("s3.bucket"),
		Endpoint:      v.GetString("s3.endpoint"),
		AccessKey:     v.GetString("s3.access_key"),
		SecretKey:     v.GetString("s3.secret_key"),
		PresignExpiry: v.GetInt64("s3.presign_expiry"),
		ReportPrefix:  v.GetString("s3.report_prefix"),
	}

	return cfg, nil
}

// splitList parses a comma-separated string, dropping blanks.
func splitList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}
