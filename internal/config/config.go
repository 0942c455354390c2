package config

import "time"

// Config is the root application configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Auth      AuthConfig      `yaml:"auth"`
	Supabase  SupabaseConfig  `yaml:"supabase"`
	Log       LogConfig       `yaml:"log"`
	CORS      CORSConfig      `yaml:"cors"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Tracing   TracingConfig   `yaml:"tracing"`
	Items     ItemsConfig     `yaml:"items"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,PATCH,DELETE,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Authorization,Content-Type"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"true"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
	PublicURL       string        `yaml:"public_url"       env:"SERVER_PUBLIC_URL"       env-default:"http://localhost:3000"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"25"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"5"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
	MigrateOnStart  bool          `yaml:"migrate_on_start"   env:"DATABASE_MIGRATE_ON_START"   env-default:"false"`
}

// Auth providers for magic-link sign-in.
const (
	AuthProviderBuiltin  = "builtin"
	AuthProviderSupabase = "supabase"
)

// AuthConfig holds token and magic-link settings.
type AuthConfig struct {
	Provider        string        `yaml:"provider"          env:"AUTH_PROVIDER"          env-default:"builtin"`
	JWTSecret       string        `yaml:"jwt_secret"        env:"AUTH_JWT_SECRET"        env-required:"true"`
	JWTIssuer       string        `yaml:"jwt_issuer"        env:"AUTH_JWT_ISSUER"        env-default:"offmind"`
	AccessTokenTTL  time.Duration `yaml:"access_token_ttl"  env:"AUTH_ACCESS_TOKEN_TTL"  env-default:"15m"`
	RefreshTokenTTL time.Duration `yaml:"refresh_token_ttl" env:"AUTH_REFRESH_TOKEN_TTL" env-default:"720h"`
	MagicLinkTTL    time.Duration `yaml:"magic_link_ttl"    env:"AUTH_MAGIC_LINK_TTL"    env-default:"15m"`
	MagicLinkPath   string        `yaml:"magic_link_path"   env:"AUTH_MAGIC_LINK_PATH"   env-default:"/auth/callback"`
}

// SupabaseConfig holds the hosted identity settings used when auth.provider is "supabase".
type SupabaseConfig struct {
	URL            string        `yaml:"url"             env:"SUPABASE_URL"`
	AnonKey        string        `yaml:"anon_key"        env:"SUPABASE_ANON_KEY"`
	BreakerTimeout time.Duration `yaml:"breaker_timeout" env:"SUPABASE_BREAKER_TIMEOUT" env-default:"30s"`
	MaxFailures    uint32        `yaml:"max_failures"    env:"SUPABASE_MAX_FAILURES"    env-default:"5"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// RateLimitConfig limits unauthenticated auth endpoints per client IP.
type RateLimitConfig struct {
	AuthPerMinute   int           `yaml:"auth_per_minute"  env:"RATE_LIMIT_AUTH_PER_MINUTE" env-default:"10"`
	CleanupInterval time.Duration `yaml:"cleanup_interval" env:"RATE_LIMIT_CLEANUP"         env-default:"5m"`
}

// TracingConfig configures the OTLP trace exporter. Tracing is off when Endpoint is empty.
type TracingConfig struct {
	Endpoint    string  `yaml:"endpoint"     env:"TRACING_ENDPOINT"`
	Insecure    bool    `yaml:"insecure"     env:"TRACING_INSECURE"     env-default:"true"`
	SampleRatio float64 `yaml:"sample_ratio" env:"TRACING_SAMPLE_RATIO" env-default:"1.0"`
}

// ItemsConfig bounds item listings.
type ItemsConfig struct {
	DefaultPageSize int `yaml:"default_page_size" env:"ITEMS_DEFAULT_PAGE_SIZE" env-default:"50"`
	MaxPageSize     int `yaml:"max_page_size"     env:"ITEMS_MAX_PAGE_SIZE"     env-default:"200"`
}

// Enabled reports whether traces are exported.
func (c TracingConfig) Enabled() bool { return c.Endpoint != "" }

// UsesSupabase reports whether magic links are delegated to the hosted identity service.
func (c AuthConfig) UsesSupabase() bool { return c.Provider == AuthProviderSupabase }
