package config

import (
	"time"

	"github.com/shopspring/decimal"
)

// Config is the root application configuration.
type Config struct {
	Server       ServerConfig       `yaml:"server"`
	Log          LogConfig          `yaml:"log"`
	CORS         CORSConfig         `yaml:"cors"`
	RateLimit    RateLimitConfig    `yaml:"rate_limit"`
	Quiz         QuizConfig         `yaml:"quiz"`
	Dictionary   DictionaryConfig   `yaml:"dictionary"`
	Payment      PaymentConfig      `yaml:"payment"`
	Registration RegistrationConfig `yaml:"registration"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,DELETE,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Content-Type,X-Request-Id"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"false"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}

// RateLimitConfig holds per-client request limits.
type RateLimitConfig struct {
	RequestsPerMinute int           `yaml:"requests_per_minute" env:"RATE_LIMIT_RPM"     env-default:"120"`
	Burst             int           `yaml:"burst"               env:"RATE_LIMIT_BURST"   env-default:"20"`
	MaxClients        int           `yaml:"max_clients"         env:"RATE_LIMIT_CLIENTS" env-default:"10000"`
	IdleTTL           time.Duration `yaml:"idle_ttl"            env:"RATE_LIMIT_IDLE"    env-default:"10m"`
}

// QuizConfig holds quiz engine settings. Clients declare their layout and
// the server picks the matching time limit.
type QuizConfig struct {
	WideTimeLimit   time.Duration `yaml:"wide_time_limit"   env:"QUIZ_WIDE_TIME_LIMIT"   env-default:"150s"`
	NarrowTimeLimit time.Duration `yaml:"narrow_time_limit" env:"QUIZ_NARROW_TIME_LIMIT" env-default:"120s"`
	TickInterval    time.Duration `yaml:"tick_interval"     env:"QUIZ_TICK_INTERVAL"     env-default:"1s"`
	BankPath        string        `yaml:"bank_path"         env:"QUIZ_BANK_PATH"`
	MaxSessions     int           `yaml:"max_sessions"      env:"QUIZ_MAX_SESSIONS"      env-default:"10000"`
	SessionTTL      time.Duration `yaml:"session_ttl"       env:"QUIZ_SESSION_TTL"       env-default:"2h"`
}

// TimeLimit returns the limit for a client layout: "narrow" or anything else (wide).
func (c QuizConfig) TimeLimit(layout string) time.Duration {
	if layout == LayoutNarrow {
		return c.NarrowTimeLimit
	}
	return c.WideTimeLimit
}

// Client layouts.
const (
	LayoutWide   = "wide"
	LayoutNarrow = "narrow"
)

// Dictionary sources.
const (
	DictionarySourceStatic = "static"
	DictionarySourceRemote = "remote"
)

// DictionaryConfig holds word lookup settings.
type DictionaryConfig struct {
	Source        string        `yaml:"source"         env:"DICTIONARY_SOURCE"         env-default:"static"`
	TablePath     string        `yaml:"table_path"     env:"DICTIONARY_TABLE_PATH"`
	BaseURL       string        `yaml:"base_url"       env:"DICTIONARY_BASE_URL"       env-default:"https://api.dictionaryapi.dev/api/v2/entries/en"`
	RelayURL      string        `yaml:"relay_url"      env:"DICTIONARY_RELAY_URL"`
	Timeout       time.Duration `yaml:"timeout"        env:"DICTIONARY_TIMEOUT"        env-default:"10s"`
	RetryDelay    time.Duration `yaml:"retry_delay"    env:"DICTIONARY_RETRY_DELAY"    env-default:"500ms"`
	CacheSize     int           `yaml:"cache_size"     env:"DICTIONARY_CACHE_SIZE"     env-default:"1024"`
	CacheTTL      time.Duration `yaml:"cache_ttl"      env:"DICTIONARY_CACHE_TTL"      env-default:"1h"`
	SpeechEnabled bool          `yaml:"speech_enabled" env:"DICTIONARY_SPEECH_ENABLED" env-default:"true"`
}

// PaymentConfig holds the price list and the simulated processing delay.
// Amounts are decimal strings, parsed during validation.
type PaymentConfig struct {
	BasicPriceRaw   string        `yaml:"basic_price"   env:"PAYMENT_BASIC_PRICE"   env-default:"19.00"`
	PremiumPriceRaw string        `yaml:"premium_price" env:"PAYMENT_PREMIUM_PRICE" env-default:"39.00"`
	TaxRateRaw      string        `yaml:"tax_rate"      env:"PAYMENT_TAX_RATE"      env-default:"0.20"`
	ProcessingDelay time.Duration `yaml:"processing_delay" env:"PAYMENT_PROCESSING_DELAY" env-default:"1500ms"`

	// BasicPrice, PremiumPrice and TaxRate are parsed from the raw fields during validation.
	BasicPrice   decimal.Decimal `yaml:"-" env:"-"`
	PremiumPrice decimal.Decimal `yaml:"-" env:"-"`
	TaxRate      decimal.Decimal `yaml:"-" env:"-"`
}

// RegistrationConfig holds the sign-up stub settings.
type RegistrationConfig struct {
	Delay time.Duration `yaml:"delay" env:"REGISTRATION_DELAY" env-default:"1500ms"`
}
