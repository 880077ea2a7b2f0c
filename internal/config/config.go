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
	Redis    RedisConfig
	JWT      JWTConfig
	Storage  StorageConfig
}

type AppConfig struct {
	AppName     string
	Environment string
	HTTPPort    string
	WSPort      string
	BodyLimit   int
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
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	TTL      time.Duration
}

type JWTConfig struct {
	AccessSecret     string
	RefreshSecret    string
	AccessExpiresIn  time.Duration
	RefreshExpiresIn time.Duration
}

type StorageConfig struct {
	SupabaseURL    string
	SupabaseKey    string
	Bucket         string
	MaxUploadBytes int64
}

var errMissingRequiredEnv = errors.New("missing required environment variables")

// Load reads configuration from the environment. A .env file in the working
// directory, when present, is loaded first without overriding set variables.
func Load() (Config, error) {
	_ = godotenv.Load()
	return FromEnv(os.Getenv)
}

func FromEnv(getenv func(string) string) (Config, error) {
	env := &envReader{getenv: getenv}
	cfg := Config{}

	cfg.App = AppConfig{
		AppName:     env.opt("APP_NAME", "hiretop"),
		Environment: env.opt("APP_ENV", "development"),
		HTTPPort:    env.req("HTTP_PORT"),
		WSPort:      env.opt("WS_PORT", "8081"),
		BodyLimit:   env.optInt("HTTP_BODY_LIMIT", 8*1024*1024),
	}

	cfg.Database = databaseFromEnv(env)

	cfg.Redis = RedisConfig{
		Host:     env.opt("REDIS_HOST", "localhost"),
		Port:     env.opt("REDIS_PORT", "6379"),
		Password: getenv("REDIS_PASSWORD"),
		DB:       env.optInt("REDIS_DB", 0),
		TTL:      env.optDur("REDIS_TTL", 10*time.Minute),
	}

	cfg.JWT = JWTConfig{
		AccessSecret:     env.req("JWT_ACCESS_SECRET"),
		RefreshSecret:    env.req("JWT_REFRESH_SECRET"),
		AccessExpiresIn:  env.optDur("JWT_ACCESS_EXPIRES_IN", 15*time.Minute),
		RefreshExpiresIn: env.optDur("JWT_REFRESH_EXPIRES_IN", 7*24*time.Hour),
	}

	cfg.Storage = StorageConfig{
		SupabaseURL:    env.opt("SUPABASE_URL", ""),
		SupabaseKey:    getenv("SUPABASE_SERVICE_ROLE_KEY"),
		Bucket:         env.opt("STORAGE_BUCKET", "hiretop"),
		MaxUploadBytes: int64(env.optInt("STORAGE_MAX_UPLOAD_BYTES", 5*1024*1024)),
	}

	if err := env.err(); err != nil {
		return Config{}, err
	}
	if cfg.JWT.AccessSecret == cfg.JWT.RefreshSecret {
		return Config{}, errors.New("JWT_ACCESS_SECRET and JWT_REFRESH_SECRET must differ")
	}

	return cfg, nil
}

// LoadDatabase reads only the database section, for tools that never serve
// HTTP.
func LoadDatabase() (DatabaseConfig, error) {
	_ = godotenv.Load()
	return DatabaseFromEnv(os.Getenv)
}

func DatabaseFromEnv(getenv func(string) string) (DatabaseConfig, error) {
	env := &envReader{getenv: getenv}
	cfg := databaseFromEnv(env)
	if err := env.err(); err != nil {
		return DatabaseConfig{}, err
	}
	return cfg, nil
}

func databaseFromEnv(env *envReader) DatabaseConfig {
	return DatabaseConfig{
		DBHost:     env.req("DB_HOST"),
		DBPort:     env.opt("DB_PORT", "5432"),
		DBName:     env.req("DB_NAME"),
		DBUser:     env.req("DB_USER"),
		DBPassword: env.getenv("DB_PASSWORD"),
		DBSSLMode:  env.opt("DB_SSL_MODE", "disable"),

		ConnectTimeout:        env.optDur("DB_CONNECT_TIMEOUT", 5*time.Second),
		PoolMaxConns:          int32(env.optInt("DB_POOL_MAX_CONNS", 10)),
		PoolMinConns:          int32(env.optInt("DB_POOL_MIN_CONNS", 0)),
		PoolMaxConnLifetime:   env.optDur("DB_POOL_MAX_CONN_LIFETIME", time.Hour),
		PoolMaxConnIdleTime:   env.optDur("DB_POOL_MAX_CONN_IDLE_TIME", 30*time.Minute),
		PoolHealthCheckPeriod: env.optDur("DB_POOL_HEALTH_CHECK_PERIOD", time.Minute),
	}
}

// envReader collects every missing or malformed key so one error can name
// them all.
type envReader struct {
	getenv  func(string) string
	missing []string
	invalid []string
}

func (e *envReader) req(key string) string {
	v := strings.TrimSpace(e.getenv(key))
	if v == "" {
		e.missing = append(e.missing, key)
	}
	return v
}

func (e *envReader) opt(key, def string) string {
	v := strings.TrimSpace(e.getenv(key))
	if v == "" {
		return def
	}
	return v
}

func (e *envReader) optInt(key string, def int) int {
	raw := strings.TrimSpace(e.getenv(key))
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		e.invalid = append(e.invalid, key)
		return def
	}
	return v
}

func (e *envReader) optDur(key string, def time.Duration) time.Duration {
	raw := strings.TrimSpace(e.getenv(key))
	if raw == "" {
		return def
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		e.invalid = append(e.invalid, key)
		return def
	}
	return d
}

func (e *envReader) err() error {
	if len(e.missing) > 0 {
		return fmt.Errorf("%w: %s", errMissingRequiredEnv, strings.Join(e.missing, ", "))
	}
	if len(e.invalid) > 0 {
		return fmt.Errorf("invalid environment values: %s", strings.Join(e.invalid, ", "))
	}
	return nil
}

func (c Config) IsProduction() bool {
	return strings.EqualFold(c.App.Environment, "production")
}

func (c RedisConfig) Addr() string {
	return c.Host + ":" + c.Port
}
