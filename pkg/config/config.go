package config

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env       string
	Port      int
	APIPrefix string

	Database  DatabaseConfig
	Redis     RedisConfig
	JWT       JWTConfig
	CORS      CORSConfig
	Log       LogConfig
	Documents DocumentsConfig
	Reminders RemindersConfig
	Exports   ExportsConfig
	Shortlink ShortlinkConfig
	Audit     AuditConfig
	DemoSeed  DemoSeedConfig
}

type DatabaseConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type JWTConfig struct {
	Secret            string
	Expiration        time.Duration
	RefreshExpiration time.Duration
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// DocumentsConfig bounds list queries over the archive.
type DocumentsConfig struct {
	DefaultPageSize int
	MaxPageSize     int
}

// RemindersConfig sets the default urgency thresholds and rail cache TTL.
type RemindersConfig struct {
	DangerDays  int
	WarningDays int
	CacheTTL    time.Duration
}

// ExportsConfig controls stored export copies and their signed URLs.
type ExportsConfig struct {
	StorageDir      string
	SignedURLSecret string
	SignedURLTTL    time.Duration
	CleanupTTL      time.Duration
}

// ShortlinkConfig tunes the shortlink resolver.
type ShortlinkConfig struct {
	CacheTTL   time.Duration
	CodeLength int
}

// AuditConfig sizes the async audit writer.
type AuditConfig struct {
	Workers    int
	BufferSize int
}

// DemoSeedConfig enables startup seeding with generated sample archives.
type DemoSeedConfig struct {
	Enabled  bool
	Archives []string
	RowCount int
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")

	cfg.Database = DatabaseConfig{
		Host:         v.GetString("DB_HOST"),
		Port:         v.GetInt("DB_PORT"),
		User:         v.GetString("DB_USER"),
		Password:     v.GetString("DB_PASSWORD"),
		Name:         v.GetString("DB_NAME"),
		SSLMode:      v.GetString("DB_SSL_MODE"),
		MaxOpenConns: v.GetInt("DB_MAX_OPEN_CONNS"),
		MaxIdleConns: v.GetInt("DB_MAX_IDLE_CONNS"),
	}

	cfg.Redis = RedisConfig{
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.JWT = JWTConfig{
		Secret:            v.GetString("JWT_SECRET"),
		Expiration:        parseDuration(v.GetString("JWT_EXPIRATION"), 24*time.Hour),
		RefreshExpiration: parseDuration(v.GetString("REFRESH_TOKEN_EXPIRATION"), 7*24*time.Hour),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Documents = DocumentsConfig{
		DefaultPageSize: v.GetInt("DOCUMENTS_DEFAULT_PAGE_SIZE"),
		MaxPageSize:     v.GetInt("DOCUMENTS_MAX_PAGE_SIZE"),
	}

	cfg.Reminders = RemindersConfig{
		DangerDays:  v.GetInt("REMINDER_DANGER_DAYS"),
		WarningDays: v.GetInt("REMINDER_WARNING_DAYS"),
		CacheTTL:    parseDuration(v.GetString("REMINDER_CACHE_TTL"), 5*time.Minute),
	}

	cfg.Exports = ExportsConfig{
		StorageDir:      v.GetString("EXPORTS_STORAGE_DIR"),
		SignedURLSecret: v.GetString("EXPORTS_SIGNED_URL_SECRET"),
		SignedURLTTL:    parseDuration(v.GetString("EXPORTS_SIGNED_URL_TTL"), 30*time.Minute),
		CleanupTTL:      parseDuration(v.GetString("EXPORTS_CLEANUP_TTL"), 24*time.Hour),
	}

	cfg.Shortlink = ShortlinkConfig{
		CacheTTL:   parseDuration(v.GetString("SHORTLINK_CACHE_TTL"), time.Hour),
		CodeLength: v.GetInt("SHORTLINK_CODE_LENGTH"),
	}

	cfg.Audit = AuditConfig{
		Workers:    v.GetInt("AUDIT_WORKERS"),
		BufferSize: v.GetInt("AUDIT_BUFFER_SIZE"),
	}

	cfg.DemoSeed = DemoSeedConfig{
		Enabled:  v.GetBool("ENABLE_DEMO_SEED"),
		Archives: splitAndTrim(v.GetString("DEMO_SEED_ARCHIVES")),
		RowCount: v.GetInt("DEMO_SEED_ROW_COUNT"),
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_PREFIX", "/api/v1")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "siadil")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("JWT_SECRET", "dev_secret")
	v.SetDefault("JWT_EXPIRATION", "24h")
	v.SetDefault("REFRESH_TOKEN_EXPIRATION", "168h")

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("DOCUMENTS_DEFAULT_PAGE_SIZE", 10)
	v.SetDefault("DOCUMENTS_MAX_PAGE_SIZE", 100)

	v.SetDefault("REMINDER_DANGER_DAYS", 14)
	v.SetDefault("REMINDER_WARNING_DAYS", 60)
	v.SetDefault("REMINDER_CACHE_TTL", "5m")

	v.SetDefault("EXPORTS_STORAGE_DIR", "./exports")
	v.SetDefault("EXPORTS_SIGNED_URL_SECRET", "dev_exports_secret")
	v.SetDefault("EXPORTS_SIGNED_URL_TTL", "30m")
	v.SetDefault("EXPORTS_CLEANUP_TTL", "24h")

	v.SetDefault("SHORTLINK_CACHE_TTL", "1h")
	v.SetDefault("SHORTLINK_CODE_LENGTH", 7)

	v.SetDefault("AUDIT_WORKERS", 1)
	v.SetDefault("AUDIT_BUFFER_SIZE", 64)

	v.SetDefault("ENABLE_DEMO_SEED", false)
	v.SetDefault("DEMO_SEED_ARCHIVES", "Teknologi Informasi & Komunikasi,Licenses,Finance,Legal")
	v.SetDefault("DEMO_SEED_ROW_COUNT", 25)
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
