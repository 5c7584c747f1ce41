package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	App         AppConfig
	Database    DatabaseConfig
	Redis       RedisConfig
	JWT         JWTConfig
	Log         LogConfig
	HTTP        HTTPConfig
	Delivery    DeliveryConfig
	SMTP        SMTPConfig
	Idempotency IdempotencyConfig
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, console
	Output string // stdout, stderr, or file path
}

// AppConfig holds application-specific settings
type AppConfig struct {
	Name string
	Env  string
	Port string
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime int // in minutes
	ConnMaxIdleTime int // in minutes
}

// RedisConfig holds Redis connection settings
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// JWTConfig holds JWT settings
type JWTConfig struct {
	Secret                 string
	AccessTokenExpiration  time.Duration
	RefreshTokenExpiration time.Duration
	Issuer                 string
	RefreshSecret          string
	MaxRefreshCount        int
}

// HTTPConfig holds HTTP server configuration
type HTTPConfig struct {
	ReadTimeout           time.Duration
	WriteTimeout          time.Duration
	IdleTimeout           time.Duration
	MaxHeaderBytes        int
	MaxBodySize           int64
	RateLimitEnabled      bool
	RateLimitRequests     int
	RateLimitWindow       time.Duration
	AuthRateLimitEnabled  bool
	AuthRateLimitRequests int
	AuthRateLimitWindow   time.Duration
	CORSAllowOrigins      []string
	CORSAllowMethods      []string
	CORSAllowHeaders      []string
	TrustedProxies        []string
}

// DeliveryConfig holds courier pricing settings:
// cost = base_cost + per_kg_rate * total order weight
type DeliveryConfig struct {
	BaseCost  float64
	PerKgRate float64
}

// SMTPConfig holds outgoing mail settings for order status notifications
type SMTPConfig struct {
	Enabled  bool
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// IdempotencyConfig holds duplicate checkout detection settings
type IdempotencyConfig struct {
	Enabled bool
	TTL     time.Duration
}

// Load reads configuration from config.toml and the environment.
// Priority, highest first:
// 1. Environment variables with SHOP_ prefix (e.g. SHOP_DATABASE_PASSWORD)
// 2. config.toml
// 3. Built-in defaults
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")
	v.AddConfigPath("./backend")
	v.AddConfigPath("/app")

	// A missing config file is fine; env vars and defaults cover everything
	if err := v.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	v.SetEnvPrefix("SHOP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{
		App:         loadApp(v),
		Database:    loadDatabase(v),
		Redis:       loadRedis(v),
		JWT:         loadJWT(v),
		Log:         loadLog(v),
		HTTP:        loadHTTP(v),
		Delivery:    loadDelivery(v),
		SMTP:        loadSMTP(v),
		Idempotency: loadIdempotency(v),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadApp(v *viper.Viper) AppConfig {
	cfg := AppConfig{
		Name: v.GetString("app.name"),
		Env:  v.GetString("app.env"),
		Port: v.GetString("app.port"),
	}
	setDefaultString(&cfg.Name, "delivery-backend")
	setDefaultString(&cfg.Env, "development")
	setDefaultString(&cfg.Port, "8080")
	return cfg
}

func loadDatabase(v *viper.Viper) DatabaseConfig {
	cfg := DatabaseConfig{
		Host:            v.GetString("database.host"),
		Port:            v.GetInt("database.port"),
		User:            v.GetString("database.user"),
		Password:        v.GetString("database.password"),
		DBName:          v.GetString("database.dbname"),
		SSLMode:         v.GetString("database.sslmode"),
		MaxOpenConns:    v.GetInt("database.max_open_conns"),
		MaxIdleConns:    v.GetInt("database.max_idle_conns"),
		ConnMaxLifetime: v.GetInt("database.conn_max_lifetime"),
		ConnMaxIdleTime: v.GetInt("database.conn_max_idle_time"),
	}
	setDefaultString(&cfg.Host, "localhost")
	setDefaultInt(&cfg.Port, 5432)
	setDefaultString(&cfg.User, "postgres")
	setDefaultString(&cfg.DBName, "delivery")
	setDefaultString(&cfg.SSLMode, "disable")
	setDefaultInt(&cfg.MaxOpenConns, 25)
	setDefaultInt(&cfg.MaxIdleConns, 5)
	setDefaultInt(&cfg.ConnMaxLifetime, 60)
	setDefaultInt(&cfg.ConnMaxIdleTime, 30)
	return cfg
}

func loadRedis(v *viper.Viper) RedisConfig {
	cfg := RedisConfig{
		Host:     v.GetString("redis.host"),
		Port:     v.GetInt("redis.port"),
		Password: v.GetString("redis.password"),
		DB:       v.GetInt("redis.db"),
	}
	setDefaultString(&cfg.Host, "localhost")
	setDefaultInt(&cfg.Port, 6379)
	return cfg
}

func loadJWT(v *viper.Viper) JWTConfig {
	cfg := JWTConfig{
		Secret:                 v.GetString("jwt.secret"),
		AccessTokenExpiration:  v.GetDuration("jwt.access_token_expiration"),
		RefreshTokenExpiration: v.GetDuration("jwt.refresh_token_expiration"),
		Issuer:                 v.GetString("jwt.issuer"),
		RefreshSecret:          v.GetString("jwt.refresh_secret"),
		MaxRefreshCount:        v.GetInt("jwt.max_refresh_count"),
	}
	setDefaultDuration(&cfg.AccessTokenExpiration, 15*time.Minute)
	setDefaultDuration(&cfg.RefreshTokenExpiration, 168*time.Hour)
	setDefaultString(&cfg.Issuer, "delivery-backend")
	setDefaultInt(&cfg.MaxRefreshCount, 10)
	return cfg
}

func loadLog(v *viper.Viper) LogConfig {
	cfg := LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
		Output: v.GetString("log.output"),
	}
	setDefaultString(&cfg.Level, "info")
	setDefaultString(&cfg.Format, "console")
	setDefaultString(&cfg.Output, "stdout")
	return cfg
}

func loadHTTP(v *viper.Viper) HTTPConfig {
	cfg := HTTPConfig{
		ReadTimeout:           v.GetDuration("http.read_timeout"),
		WriteTimeout:          v.GetDuration("http.write_timeout"),
		IdleTimeout:           v.GetDuration("http.idle_timeout"),
		MaxHeaderBytes:        v.GetInt("http.max_header_bytes"),
		MaxBodySize:           v.GetInt64("http.max_body_size"),
		RateLimitEnabled:      v.GetBool("http.rate_limit_enabled"),
		RateLimitRequests:     v.GetInt("http.rate_limit_requests"),
		RateLimitWindow:       v.GetDuration("http.rate_limit_window"),
		AuthRateLimitEnabled:  v.GetBool("http.auth_rate_limit_enabled"),
		AuthRateLimitRequests: v.GetInt("http.auth_rate_limit_requests"),
		AuthRateLimitWindow:   v.GetDuration("http.auth_rate_limit_window"),
		CORSAllowOrigins:      v.GetStringSlice("http.cors_allow_origins"),
		CORSAllowMethods:      v.GetStringSlice("http.cors_allow_methods"),
		CORSAllowHeaders:      v.GetStringSlice("http.cors_allow_headers"),
		TrustedProxies:        v.GetStringSlice("http.trusted_proxies"),
	}
	setDefaultDuration(&cfg.ReadTimeout, 15*time.Second)
	setDefaultDuration(&cfg.WriteTimeout, 15*time.Second)
	setDefaultDuration(&cfg.IdleTimeout, 60*time.Second)
	setDefaultInt(&cfg.MaxHeaderBytes, 1<<20)
	if cfg.MaxBodySize == 0 {
		cfg.MaxBodySize = 10 << 20
	}
	setDefaultInt(&cfg.RateLimitRequests, 100)
	setDefaultDuration(&cfg.RateLimitWindow, time.Minute)
	// stricter limits on credential endpoints to slow down brute force
	setDefaultInt(&cfg.AuthRateLimitRequests, 5)
	setDefaultDuration(&cfg.AuthRateLimitWindow, time.Minute)
	// CORS origins deliberately have no "*" fallback: an empty list means
	// no cross-origin requests until origins are configured explicitly,
	// e.g. ["http://localhost:3000"] in development
	if len(cfg.CORSAllowMethods) == 0 {
		cfg.CORSAllowMethods = []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"}
	}
	if len(cfg.CORSAllowHeaders) == 0 {
		cfg.CORSAllowHeaders = []string{"Content-Type", "Authorization", "X-Request-ID"}
	}
	return cfg
}

func loadDelivery(v *viper.Viper) DeliveryConfig {
	cfg := DeliveryConfig{
		BaseCost:  v.GetFloat64("delivery.base_cost"),
		PerKgRate: v.GetFloat64("delivery.per_kg_rate"),
	}
	if cfg.BaseCost == 0 {
		cfg.BaseCost = 5.0
	}
	if cfg.PerKgRate == 0 {
		cfg.PerKgRate = 2.0
	}
	return cfg
}

func loadSMTP(v *viper.Viper) SMTPConfig {
	cfg := SMTPConfig{
		Enabled:  v.GetBool("smtp.enabled"),
		Host:     v.GetString("smtp.host"),
		Port:     v.GetInt("smtp.port"),
		Username: v.GetString("smtp.username"),
		Password: v.GetString("smtp.password"),
		From:     v.GetString("smtp.from"),
	}
	setDefaultInt(&cfg.Port, 587)
	return cfg
}

func loadIdempotency(v *viper.Viper) IdempotencyConfig {
	cfg := IdempotencyConfig{
		Enabled: v.GetBool("idempotency.enabled"),
		TTL:     v.GetDuration("idempotency.ttl"),
	}
	setDefaultDuration(&cfg.TTL, 24*time.Hour)
	return cfg
}

func setDefaultString(field *string, def string) {
	if *field == "" {
		*field = def
	}
}

func setDefaultInt(field *int, def int) {
	if *field == 0 {
		*field = def
	}
}

func setDefaultDuration(field *time.Duration, def time.Duration) {
	if *field == 0 {
		*field = def
	}
}

// validate rejects configurations that would misbehave at runtime.
// Production mode adds hard requirements on secrets and TLS.
func (c *Config) validate() error {
	if c.Database.MaxOpenConns <= 0 {
		return fmt.Errorf("database.max_open_conns must be positive")
	}
	if c.Database.MaxIdleConns < 0 {
		return fmt.Errorf("database.max_idle_conns cannot be negative")
	}
	if c.Database.MaxIdleConns > c.Database.MaxOpenConns {
		return fmt.Errorf("database.max_idle_conns (%d) cannot exceed database.max_open_conns (%d)",
			c.Database.MaxIdleConns, c.Database.MaxOpenConns)
	}

	if c.Delivery.BaseCost < 0 {
		return fmt.Errorf("delivery.base_cost cannot be negative")
	}
	if c.Delivery.PerKgRate < 0 {
		return fmt.Errorf("delivery.per_kg_rate cannot be negative")
	}

	if c.SMTP.Enabled {
		if c.SMTP.Host == "" {
			return fmt.Errorf("smtp.host is required when smtp is enabled")
		}
		if c.SMTP.From == "" {
			return fmt.Errorf("smtp.from is required when smtp is enabled")
		}
	}

	if c.App.Env == "production" {
		if c.JWT.Secret == "" {
			return fmt.Errorf("jwt.secret is required in production")
		}
		if len(c.JWT.Secret) < 32 {
			return fmt.Errorf("jwt.secret must be at least 32 characters in production")
		}
		if c.Database.Password == "" {
			return fmt.Errorf("database.password is required in production")
		}
		if c.Database.SSLMode == "disable" {
			return fmt.Errorf("database.sslmode cannot be 'disable' in production")
		}
		for _, origin := range c.HTTP.CORSAllowOrigins {
			if origin == "*" {
				return fmt.Errorf("cors_allow_origins cannot be '*' in production (use specific origins)")
			}
		}
	}

	return nil
}

// DSN returns the postgres connection URL with credentials escaped
func (d *DatabaseConfig) DSN() string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(d.User, d.Password),
		Host:   fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:   d.DBName,
	}
	q := u.Query()
	q.Set("sslmode", d.SSLMode)
	u.RawQuery = q.Encode()
	return u.String()
}
