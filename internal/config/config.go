package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Auth     AuthConfig
	Redis    RedisConfig
	Fanout   FanoutConfig
	HTTP     HTTPConfig
	JobFeed  JobFeedConfig
}

type AppConfig struct {
	AppName       string
	Environment   string
	HTTPPort      string
	MigrationsDir string
}

type DatabaseConfig struct {
	DBHost     string
	DBPort     string
	DBName     string
	DBUser     string
	DBPassword string
	DBSSLMode  string

	ConnectTimeout        time.Duration
	PoolMaxConns          int32
	PoolMinConns          int32
	PoolMaxConnLifetime   time.Duration
	PoolMaxConnIdleTime   time.Duration
	PoolHealthCheckPeriod time.Duration
	SlowQuery             time.Duration
}

// AuthConfig holds the one signing secret shared by the HTTP middleware and
// the websocket handshake.
type AuthConfig struct {
	JWTSecret    string
	JWTExpiresIn time.Duration
}

type RedisConfig struct {
	Host           string
	Port           string
	Password       string
	SearchCacheTTL time.Duration
}

type FanoutConfig struct {
	Workers   int
	QueueSize int
}

type HTTPConfig struct {
	CORSAllowOrigins []string
	RateLimitMax     int
	RateLimitWindow  time.Duration
}

type JobFeedConfig struct {
	Enabled       bool
	Cron          string
	AdzunaAppID   string
	AdzunaAppKey  string
	AdzunaCountry string
	AdzunaQuery   string
	AdzunaPages   int
	BaseURL       string
}

var errMissingRequiredEnv = errors.New("missing required environment variables")

// Load reads configuration from the environment. A .env file in the working
// directory is loaded first when present; real environment variables win.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{}

	var missing []string
	var invalid []string
	req := func(key string) string {
		v := strings.TrimSpace(os.Getenv(key))
		if v == "" {
			missing = append(missing, key)
		}
		return v
	}
	opt := func(key string) string {
		return strings.TrimSpace(os.Getenv(key))
	}
	optDefault := func(key, def string) string {
		if v := opt(key); v != "" {
			return v
		}
		return def
	}
	optInt := func(key string, def int) int {
		raw := opt(key)
		if raw == "" {
			return def
		}
		v, err := strconv.Atoi(raw)
		if err != nil {
			invalid = append(invalid, key)
			return def
		}
		return v
	}
	optDuration := func(key string, def time.Duration) time.Duration {
		raw := opt(key)
		if raw == "" {
			return def
		}
		d, err := time.ParseDuration(raw)
		if err != nil {
			invalid = append(invalid, key)
			return def
		}
		return d
	}

	cfg.App = AppConfig{
		AppName:       req("APP_NAME"),
		Environment:   req("APP_ENV"),
		HTTPPort:      req("HTTP_PORT"),
		MigrationsDir: opt("MIGRATIONS_DIR"),
	}

	cfg.Database = DatabaseConfig{
		DBHost:     opt("DB_HOST"),
		DBPort:     opt("DB_PORT"),
		DBName:     opt("DB_NAME"),
		DBUser:     opt("DB_USER"),
		DBPassword: opt("DB_PASSWORD"),
		DBSSLMode:  optDefault("DB_SSL_MODE", "disable"),

		ConnectTimeout:        optDuration("DB_CONNECT_TIMEOUT", 5*time.Second),
		PoolMaxConns:          int32(optInt("DB_POOL_MAX_CONNS", 10)),
		PoolMinConns:          int32(optInt("DB_POOL_MIN_CONNS", 0)),
		PoolMaxConnLifetime:   optDuration("DB_POOL_MAX_CONN_LIFETIME", time.Hour),
		PoolMaxConnIdleTime:   optDuration("DB_POOL_MAX_CONN_IDLE_TIME", 30*time.Minute),
		PoolHealthCheckPeriod: optDuration("DB_POOL_HEALTH_CHECK_PERIOD", time.Minute),
		SlowQuery:             optDuration("DB_SLOW_QUERY", 500*time.Millisecond),
	}

	cfg.Auth = AuthConfig{
		JWTSecret:    req("JWT_SECRET"),
		JWTExpiresIn: optDuration("JWT_EXPIRES_IN", 24*time.Hour),
	}

	cfg.Redis = RedisConfig{
		Host:           optDefault("REDIS_HOST", "localhost"),
		Port:           optDefault("REDIS_PORT", "6379"),
		Password:       opt("REDIS_PASSWORD"),
		SearchCacheTTL: optDuration("SEARCH_CACHE_TTL", 60*time.Second),
	}

	cfg.Fanout = FanoutConfig{
		Workers:   optInt("FANOUT_WORKERS", 4),
		QueueSize: optInt("FANOUT_QUEUE", 256),
	}

	cfg.HTTP = HTTPConfig{
		CORSAllowOrigins: splitList(optDefault("CORS_ALLOW_ORIGINS", "*")),
		RateLimitMax:     optInt("RATE_LIMIT_MAX", 120),
		RateLimitWindow:  optDuration("RATE_LIMIT_WINDOW", time.Minute),
	}

	cfg.JobFeed = JobFeedConfig{
		Enabled:       strings.EqualFold(optDefault("JOB_FEED_ENABLED", "true"), "true"),
		Cron:          optDefault("JOB_FEED_CRON", "@every 5m"),
		AdzunaAppID:   opt("ADZUNA_APP_ID"),
		AdzunaAppKey:  opt("ADZUNA_APP_KEY"),
		AdzunaCountry: optDefault("ADZUNA_COUNTRY", "in"),
		AdzunaQuery:   optDefault("ADZUNA_QUERY", "developer"),
		AdzunaPages:   optInt("ADZUNA_PAGES", 1),
		BaseURL:       optDefault("ADZUNA_BASE_URL", "https://api.adzuna.com/v1/api"),
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errMissingRequiredEnv, strings.Join(missing, ", "))
	}
	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("invalid environment variables: %s", strings.Join(invalid, ", "))
	}

	return cfg, nil
}

func splitList(raw string) []string {
	out := make([]string, 0)
	for _, p := range strings.Split(raw, ",") {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
