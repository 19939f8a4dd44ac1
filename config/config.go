package config

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// AppConfig holds environment driven configuration values.
// Sensitive data should never have defaults inside code and must be provided via config files or the environment.
type AppConfig struct {
	AppPort       string
	JWTSecret     string
	TokenTTLHours int

	DatabaseURI string
	DBHost      string
	DBPort      string
	DBUser      string
	DBPassword  string
	DBName      string

	// Redis for caching and token revocation; empty host disables both.
	RedisHost     string
	RedisPort     int
	RedisDB       int
	RedisPassword string

	RateLimitPerMinute int
	AllowedOrigins     []string

	// Gin framework configuration
	GinMode string
	GinPath string

	// Logging configuration
	LogLevel      string
	LogPath       string
	LogMaxSizeMB  int
	LogMaxBackups int
	LogMaxAgeDays int
	LogCompress   bool
}

var cfg AppConfig
var loaded bool

// Load loads the application configuration. It should be called once during boot.
// Precedence: config/config.json -> defaults -> environment variable overrides.
func Load() AppConfig {
	if loaded {
		return cfg
	}

	_ = loadJSONConfig(filepath.Join("config", "config.json"), &cfg)
	applyDefaults(&cfg)
	applyEnvOverrides(&cfg)

	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET must be set in environment variables")
	}

	loaded = true
	return cfg
}

// Get returns the cached configuration, loading it if necessary.
func Get() AppConfig {
	if !loaded {
		return Load()
	}
	return cfg
}

// loadJSONConfig reads a flat JSON object into out if present. Returns error only for invalid JSON.
func loadJSONConfig(path string, out *AppConfig) error {
	f, err := os.Open(path)
	if err != nil {
		return nil // silently ignore missing file
	}
	defer f.Close()

	var raw map[string]any
	if err := json.NewDecoder(f).Decode(&raw); err != nil {
		return err
	}

	setStr := func(key string, dst *string) {
		if v, ok := raw[key].(string); ok && v != "" {
			*dst = v
		}
	}
	setInt := func(key string, dst *int) {
		switch v := raw[key].(type) {
		case float64:
			*dst = int(v)
		case string:
			if n, err := strconv.Atoi(v); err == nil {
				*dst = n
			}
		}
	}
	setBool := func(key string, dst *bool) {
		if v, ok := raw[key].(bool); ok {
			*dst = v
		}
	}

	setStr("app_port", &out.AppPort)
	setStr("jwt_secret", &out.JWTSecret)
	setInt("token_ttl_hours", &out.TokenTTLHours)
	setStr("database_uri", &out.DatabaseURI)
	setStr("db_host", &out.DBHost)
	setStr("db_port", &out.DBPort)
	setStr("db_user", &out.DBUser)
	setStr("db_password", &out.DBPassword)
	setStr("db_name", &out.DBName)
	setStr("redis_host", &out.RedisHost)
	setInt("redis_port", &out.RedisPort)
	setInt("redis_db", &out.RedisDB)
	setStr("redis_password", &out.RedisPassword)
	setInt("rate_limit_per_minute", &out.RateLimitPerMinute)
	setStr("gin_mode", &out.GinMode)
	setStr("gin_path", &out.GinPath)
	setStr("log_level", &out.LogLevel)
	setStr("log_path", &out.LogPath)
	setInt("log_max_size_mb", &out.LogMaxSizeMB)
	setInt("log_max_backups", &out.LogMaxBackups)
	setInt("log_max_age_days", &out.LogMaxAgeDays)
	setBool("log_compress", &out.LogCompress)

	if v, ok := raw["allowed_origins"]; ok {
		switch t := v.(type) {
		case string:
			out.AllowedOrigins = splitAndTrim(t)
		case []any:
			var origins []string
			for _, item := range t {
				if s, ok := item.(string); ok && strings.TrimSpace(s) != "" {
					origins = append(origins, strings.TrimSpace(s))
				}
			}
			if len(origins) > 0 {
				out.AllowedOrigins = origins
			}
		}
	}

	return nil
}

func applyDefaults(c *AppConfig) {
	if c.AppPort == "" {
		c.AppPort = "8080"
	}
	if c.TokenTTLHours <= 0 {
		c.TokenTTLHours = 72
	}
	if c.DBHost == "" {
		c.DBHost = "127.0.0.1"
	}
	if c.DBPort == "" {
		c.DBPort = "3306"
	}
	if c.DBUser == "" {
		c.DBUser = "quill"
	}
	if c.DBName == "" {
		c.DBName = "quill"
	}
	if c.RedisPort == 0 {
		c.RedisPort = 6379
	}
	if c.RateLimitPerMinute <= 0 {
		c.RateLimitPerMinute = 60
	}
	if len(c.AllowedOrigins) == 0 {
		c.AllowedOrigins = []string{"*"}
	}
	if c.GinMode == "" {
		c.GinMode = "release"
	}
	if c.GinPath == "" {
		c.GinPath = "logs/gin.log"
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.LogPath == "" {
		c.LogPath = "logs/app.log"
	}
	if c.LogMaxSizeMB == 0 {
		c.LogMaxSizeMB = 100
	}
	if c.LogMaxBackups == 0 {
		c.LogMaxBackups = 3
	}
	if c.LogMaxAgeDays == 0 {
		c.LogMaxAgeDays = 7
	}
}

func applyEnvOverrides(c *AppConfig) {
	c.AppPort = getEnv("APP_PORT", c.AppPort)
	c.JWTSecret = getEnv("JWT_SECRET", c.JWTSecret)
	if v := os.Getenv("TOKEN_TTL_HOURS"); v != "" {
		c.TokenTTLHours = mustParseInt(v)
	}
	c.DatabaseURI = getEnv("DATABASE_URI", c.DatabaseURI)
	c.DBHost = getEnv("DB_HOST", c.DBHost)
	c.DBPort = getEnv("DB_PORT", c.DBPort)
	c.DBUser = getEnv("DB_USER", c.DBUser)
	c.DBPassword = getEnv("DB_PASSWORD", c.DBPassword)
	c.DBName = getEnv("DB_NAME", c.DBName)
	c.RedisHost = getEnv("REDIS_HOST", c.RedisHost)
	if v := os.Getenv("REDIS_PORT"); v != "" {
		c.RedisPort = mustParseInt(v)
	}
	if v := os.Getenv("REDIS_DB"); v != "" {
		c.RedisDB = mustParseInt(v)
	}
	c.RedisPassword = getEnv("REDIS_PASSWORD", c.RedisPassword)
	if v := os.Getenv("RATE_LIMIT_PER_MINUTE"); v != "" {
		c.RateLimitPerMinute = mustParseInt(v)
	}
	if v := os.Getenv("ALLOWED_ORIGINS"); v != "" {
		c.AllowedOrigins = splitAndTrim(v)
	}
	c.GinMode = getEnv("GIN_MODE", c.GinMode)
	c.GinPath = getEnv("GIN_PATH", c.GinPath)
	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)
	c.LogPath = getEnv("LOG_PATH", c.LogPath)
	if v := os.Getenv("LOG_MAX_SIZE_MB"); v != "" {
		c.LogMaxSizeMB = mustParseInt(v)
	}
	if v := os.Getenv("LOG_MAX_BACKUPS"); v != "" {
		c.LogMaxBackups = mustParseInt(v)
	}
	if v := os.Getenv("LOG_MAX_AGE_DAYS"); v != "" {
		c.LogMaxAgeDays = mustParseInt(v)
	}
	if v := os.Getenv("LOG_COMPRESS"); v != "" {
		c.LogCompress = strings.EqualFold(v, "true") || v == "1"
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func mustParseInt(val string) int {
	n, err := strconv.Atoi(val)
	if err != nil {
		log.Fatalf("invalid integer value %q in environment", val)
	}
	return n
}

func splitAndTrim(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
