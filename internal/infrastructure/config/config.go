package config

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Supported driver values
const (
	DBDriverMySQL  = "mysql"
	DBDriverSQLite = "sqlite"

	StorageDriverLocal = "local"
	StorageDriverS3    = "s3"
)

// Config stores all configuration of the application
type Config struct {
	// Environment type
	EnvType string

	// Database
	DBDriver        string
	DBHost          string
	DBUser          string
	DBPassword      string
	DBName          string
	DBPort          string
	DBPath          string // sqlite file, ignored by mysql
	DBMigrationMode string // "auto" (default) or "drop"
	DBLogLevel      string
	DBMaxOpenConns  int // 0 keeps the pool default; ignored by sqlite
	DBMaxIdleConns  int

	// Server
	ServerPort      string
	CORSAllowOrigin string
	BodyLimitMB     int
	FrontendURL     string

	// API rate limit per client IP; RateLimitRPS 0 disables it
	RateLimitRPS   int
	RateLimitBurst int

	// Redis
	RedisEnabled  bool
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int

	// JWT Authentication
	JWTSecretKey string
	JWTTTLHours  int

	// Admin
	DefaultAdminUsername string
	DefaultAdminPassword string

	// Asset storage
	StorageDriver     string
	StoragePath       string
	MaxUploadMB       int
	S3Bucket          string
	S3Region          string
	S3Endpoint        string
	S3AccessKeyID     string
	S3SecretAccessKey string
	S3PublicURL       string

	// Translation service
	TranslationURL            string
	TranslationTimeoutSeconds int
	TranslationCacheTTLHours  int
	TranslationConcurrency    int
	TranslationLanguages      []string
	TranslationSourceLang     string

	// MQTT
	MQTTEnabled     bool
	MQTTBrokerURL   string // e.g. tcp://broker.example.com:1883
	MQTTClientID    string
	MQTTUsername    string
	MQTTPassword    string
	MQTTQoS         int // 0, 1, 2
	MQTTTopicPrefix string

	// Logging
	LogDir   string
	LogLevel string
}

// Load reads the configuration from environment variables based on ENV_TYPE.
// Every missing required variable is reported in a single error.
func Load() (*Config, error) {
	envType := strings.ToUpper(getEnv("ENV_TYPE", "LOCAL"))
	prefix := ""

	switch envType {
	case "LOCAL":
		prefix = "LOCAL_"
	case "SERVER":
		prefix = "SERVER_"
	default:
		fmt.Printf("Warning: Unknown ENV_TYPE '%s', defaulting to LOCAL environment\n", envType)
		prefix = "LOCAL_"
		envType = "LOCAL"
	}

	r := &reader{prefix: prefix}

	cfg := &Config{
		EnvType: envType,

		DBDriver:        strings.ToLower(r.prefixed("DB_DRIVER", DBDriverMySQL)),
		DBHost:          r.prefixed("DB_HOST", "localhost"),
		DBUser:          r.prefixed("DB_USER", "root"),
		DBPassword:      r.prefixed("DB_PASSWORD", ""),
		DBName:          r.prefixed("DB_NAME", "minerals"),
		DBPort:          r.prefixed("DB_PORT", "3306"),
		DBPath:          r.prefixed("DB_PATH", "data/minerals.db"),
		DBMigrationMode: strings.ToLower(r.prefixed("DB_MIGRATION_MODE", "auto")),
		DBLogLevel:      strings.ToLower(getEnv("DB_LOG_LEVEL", "warn")),
		DBMaxOpenConns:  getEnvAsInt("DB_MAX_OPEN_CONNS", 0),
		DBMaxIdleConns:  getEnvAsInt("DB_MAX_IDLE_CONNS", 0),

		ServerPort:      r.prefixed("SERVER_PORT", "8080"),
		CORSAllowOrigin: getEnv("CORS_ALLOW_ORIGIN", "http://localhost:5173"),
		BodyLimitMB:     getEnvAsInt("BODY_LIMIT_MB", 100),
		FrontendURL:     strings.TrimRight(getEnv("FRONTEND_URL", "http://localhost:5173"), "/"),
		RateLimitRPS:    getEnvAsInt("RATE_LIMIT_RPS", 20),
		RateLimitBurst:  getEnvAsInt("RATE_LIMIT_BURST", 40),

		RedisEnabled:  getEnvAsBool("REDIS_ENABLED", true),
		RedisHost:     r.prefixed("REDIS_HOST", "localhost"),
		RedisPort:     r.prefixed("REDIS_PORT", "6379"),
		RedisPassword: r.prefixed("REDIS_PASSWORD", ""),
		RedisDB:       getEnvAsInt("REDIS_DB", 0),

		JWTSecretKey: r.required("JWT_SECRET"),
		JWTTTLHours:  getEnvAsInt("JWT_TTL_HOURS", 72),

		DefaultAdminUsername: getEnv("DEFAULT_ADMIN_USERNAME", "admin"),
		DefaultAdminPassword: getEnv("DEFAULT_ADMIN_PASSWORD", ""),

		StorageDriver:     strings.ToLower(getEnv("STORAGE_DRIVER", StorageDriverLocal)),
		StoragePath:       getEnv("STORAGE_PATH", "storage"),
		MaxUploadMB:       getEnvAsInt("MAX_UPLOAD_MB", 50),
		S3Bucket:          getEnv("S3_BUCKET", ""),
		S3Region:          getEnv("S3_REGION", "auto"),
		S3Endpoint:        getEnv("S3_ENDPOINT", ""),
		S3AccessKeyID:     getEnv("S3_ACCESS_KEY_ID", ""),
		S3SecretAccessKey: getEnv("S3_SECRET_ACCESS_KEY", ""),
		S3PublicURL:       strings.TrimRight(getEnv("S3_PUBLIC_URL", ""), "/"),

		TranslationURL:            strings.TrimRight(getEnv("TRANSLATION_URL", "http://localhost:5050"), "/"),
		TranslationTimeoutSeconds: getEnvAsInt("TRANSLATION_TIMEOUT_SECONDS", 10),
		TranslationCacheTTLHours:  getEnvAsInt("TRANSLATION_CACHE_TTL_HOURS", 24),
		TranslationConcurrency:    getEnvAsInt("TRANSLATION_CONCURRENCY", 4),
		TranslationLanguages:      getEnvAsList("TRANSLATION_LANGUAGES", []string{"ru", "en", "es", "fr", "de"}),
		TranslationSourceLang:     strings.ToLower(getEnv("TRANSLATION_SOURCE_LANG", "ru")),

		MQTTEnabled:     getEnvAsBool("MQTT_ENABLED", false),
		MQTTBrokerURL:   getEnv("MQTT_BROKER_URL", "tcp://localhost:1883"),
		MQTTClientID:    getEnv("MQTT_CLIENT_ID", "mineral_catalog"),
		MQTTUsername:    getEnv("MQTT_USERNAME", ""),
		MQTTPassword:    getEnv("MQTT_PASSWORD", ""),
		MQTTQoS:         getEnvAsInt("MQTT_QOS", 1),
		MQTTTopicPrefix: strings.Trim(getEnv("MQTT_TOPIC_PREFIX", "minerals"), "/"),

		LogDir:   getEnv("LOG_DIR", "logs"),
		LogLevel: strings.ToLower(getEnv("LOG_LEVEL", "info")),
	}

	if cfg.StorageDriver == StorageDriverS3 {
		cfg.S3Bucket = r.required("S3_BUCKET")
		cfg.S3PublicURL = strings.TrimRight(r.required("S3_PUBLIC_URL"), "/")
	}

	if err := r.err(); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	var errs []error
	switch c.DBDriver {
	case DBDriverMySQL, DBDriverSQLite:
	default:
		errs = append(errs, fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver))
	}
	switch c.DBMigrationMode {
	case "auto", "drop":
	default:
		errs = append(errs, fmt.Errorf("unsupported DB_MIGRATION_MODE %q", c.DBMigrationMode))
	}
	switch c.StorageDriver {
	case StorageDriverLocal, StorageDriverS3:
	default:
		errs = append(errs, fmt.Errorf("unsupported STORAGE_DRIVER %q", c.StorageDriver))
	}
	if c.MQTTQoS < 0 || c.MQTTQoS > 2 {
		errs = append(errs, fmt.Errorf("MQTT_QOS must be 0, 1 or 2, got %d", c.MQTTQoS))
	}
	if c.MaxUploadMB <= 0 {
		errs = append(errs, fmt.Errorf("MAX_UPLOAD_MB must be positive, got %d", c.MaxUploadMB))
	}
	if c.RateLimitRPS < 0 || c.RateLimitBurst < 0 {
		errs = append(errs, fmt.Errorf("RATE_LIMIT_RPS and RATE_LIMIT_BURST must not be negative"))
	}
	if c.TranslationConcurrency <= 0 {
		c.TranslationConcurrency = 1
	}
	return errors.Join(errs...)
}

// GetDSN returns the database connection string
func (c *Config) GetDSN() string {
	if c.DBDriver == DBDriverSQLite {
		return c.DBPath
	}
	return c.DBUser + ":" + c.DBPassword + "@tcp(" + c.DBHost + ":" + c.DBPort + ")/" + c.DBName + "?charset=utf8mb4&parseTime=True&loc=Local&allowNativePasswords=true"
}

// GetRedisAddr returns the Redis address
func (c *Config) GetRedisAddr() string {
	return c.RedisHost + ":" + c.RedisPort
}

// MaxUploadBytes returns the upload size limit in bytes
func (c *Config) MaxUploadBytes() int64 {
	return int64(c.MaxUploadMB) << 20
}

// JWTTTL returns the token lifetime
func (c *Config) JWTTTL() time.Duration {
	return time.Duration(c.JWTTTLHours) * time.Hour
}

// TranslationTimeout returns the outbound translation request timeout
func (c *Config) TranslationTimeout() time.Duration {
	return time.Duration(c.TranslationTimeoutSeconds) * time.Second
}

// TranslationCacheTTL returns how long translations stay cached
func (c *Config) TranslationCacheTTL() time.Duration {
	return time.Duration(c.TranslationCacheTTLHours) * time.Hour
}

// reader resolves prefixed variables and collects missing required ones
type reader struct {
	prefix  string
	missing []string
}

// prefixed returns PREFIX_KEY, then KEY, then the default
func (r *reader) prefixed(key, defaultValue string) string {
	return getEnv(r.prefix+key, getEnv(key, defaultValue))
}

func (r *reader) required(key string) string {
	if value := r.prefixed(key, ""); value != "" {
		return value
	}
	r.missing = append(r.missing, key)
	return ""
}

func (r *reader) err() error {
	if len(r.missing) == 0 {
		return nil
	}
	sort.Strings(r.missing)
	return fmt.Errorf("required environment variables not set: %s", strings.Join(r.missing, ", "))
}

// Helper function to get environment variable with default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// Helper function to get environment variable as integer with default value
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// Helper function to get environment variable as boolean with default value
func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// getEnvAsList splits a comma separated variable, dropping blanks and duplicates
func getEnvAsList(key string, defaultValue []string) []string {
	valueStr := strings.TrimSpace(getEnv(key, ""))
	if valueStr == "" {
		return defaultValue
	}
	seen := make(map[string]bool)
	var out []string
	for _, part := range strings.Split(valueStr, ",") {
		part = strings.ToLower(strings.TrimSpace(part))
		if part == "" || seen[part] {
			continue
		}
		seen[part] = true
		out = append(out, part)
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
