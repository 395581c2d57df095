package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/x/mongo/driver/connstring"
)

const defaultDatabaseName = "workshop"

// Config holds all API service configuration
type Config struct {
	// Server configuration
	Server ServerConfig `json:"server"`

	// Database configuration
	Database DatabaseConfig `json:"database"`

	// Auth configuration
	Auth AuthConfig `json:"auth"`

	// Logging configuration
	Logging LoggingConfig `json:"logging"`

	// CORS configuration
	CORS CORSConfig `json:"cors"`

	// Rate limiting configuration (disabled when Redis.Addr is empty)
	Redis     RedisConfig     `json:"redis"`
	RateLimit RateLimitConfig `json:"rate_limit"`

	// Registration notifications (disabled when MQTT.BrokerHost is empty)
	MQTT MQTTConfig `json:"mqtt"`
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port            string        `json:"port"`
	ReadTimeout     time.Duration `json:"read_timeout"`
	WriteTimeout    time.Duration `json:"write_timeout"`
	IdleTimeout     time.Duration `json:"idle_timeout"`
	ShutdownTimeout time.Duration `json:"shutdown_timeout"`
}

// DatabaseConfig holds MongoDB configuration
type DatabaseConfig struct {
	URI            string        `json:"-"`
	Name           string        `json:"name"`
	ConnectTimeout time.Duration `json:"connect_timeout"`
}

// AuthConfig holds token signing configuration
type AuthConfig struct {
	JWTSecret     string        `json:"-"`
	TokenDuration time.Duration `json:"token_duration"`
	Admin         AdminConfig   `json:"admin"`
}

// AdminConfig holds the credentials used by the seed command
type AdminConfig struct {
	Username string `json:"username"`
	Password string `json:"-"`
}

// LoggingConfig holds logging-related configuration
type LoggingConfig struct {
	Level        string `json:"level"`
	Format       string `json:"format"` // json or text
	Output       string `json:"output"` // stdout or stderr
	EnableCaller bool   `json:"enable_caller"`
}

// CORSConfig holds CORS-related configuration
type CORSConfig struct {
	AllowedOrigins []string `json:"allowed_origins"`
	AllowedMethods []string `json:"allowed_methods"`
	AllowedHeaders []string `json:"allowed_headers"`
	MaxAge         int      `json:"max_age"`
}

// AllowAllOrigins reports whether the origin list is the wildcard
func (c CORSConfig) AllowAllOrigins() bool {
	return len(c.AllowedOrigins) == 0 || (len(c.AllowedOrigins) == 1 && c.AllowedOrigins[0] == "*")
}

// RedisConfig holds the Redis connection used by the rate limiter
type RedisConfig struct {
	Addr        string        `json:"addr"`
	Password    string        `json:"-"`
	DB          int           `json:"db"`
	DialTimeout time.Duration `json:"dial_timeout"`
}

// Enabled reports whether a Redis address was configured
func (c RedisConfig) Enabled() bool {
	return c.Addr != ""
}

// RateLimitConfig holds fixed-window limits for public endpoints
type RateLimitConfig struct {
	Max    int           `json:"max"`
	Window time.Duration `json:"window"`
}

// MQTTConfig holds MQTT broker configuration for registration events
type MQTTConfig struct {
	BrokerHost        string        `json:"broker_host"`
	BrokerPort        int           `json:"broker_port"`
	BrokerUser        string        `json:"broker_user"`
	BrokerPass        string        `json:"-"`
	UseTLS            bool          `json:"use_tls"`
	ClientID          string        `json:"client_id"`
	RegistrationTopic string        `json:"registration_topic"`
	PublishTimeout    time.Duration `json:"publish_timeout"`
}

// Enabled reports whether a broker host was configured
func (c MQTTConfig) Enabled() bool {
	return c.BrokerHost != ""
}

// BrokerURL returns the MQTT broker URL
func (c MQTTConfig) BrokerURL() string {
	scheme := "tcp"
	if c.UseTLS {
		scheme = "tcps"
	}
	return fmt.Sprintf("%s://%s:%d", scheme, c.BrokerHost, c.BrokerPort)
}

// SeedConfig holds configuration for the admin seed command
type SeedConfig struct {
	Database DatabaseConfig `json:"database"`
	Admin    AdminConfig    `json:"admin"`
	Logging  LoggingConfig  `json:"logging"`
}

// LoadApiConfig loads configuration for the API service
func LoadApiConfig() (*Config, error) {
	loadDotEnv()

	env := &envReader{}
	config := &Config{
		Server: ServerConfig{
			Port:            env.str("PORT", "5000"),
			ReadTimeout:     env.duration("READ_TIMEOUT", 30*time.Second),
			WriteTimeout:    env.duration("WRITE_TIMEOUT", 30*time.Second),
			IdleTimeout:     env.duration("IDLE_TIMEOUT", 120*time.Second),
			ShutdownTimeout: env.duration("SHUTDOWN_TIMEOUT", 30*time.Second),
		},
		Database: loadDatabaseConfig(env),
		Auth: AuthConfig{
			JWTSecret:     env.str("JWT_SECRET", ""),
			TokenDuration: env.duration("JWT_TOKEN_DURATION", 5*time.Hour),
		},
		Logging: loadLoggingConfig(env),
		CORS: CORSConfig{
			AllowedOrigins: env.list("CORS_ALLOWED_ORIGINS", []string{"*"}),
			AllowedMethods: env.list("CORS_ALLOWED_METHODS", []string{"GET", "POST", "OPTIONS"}),
			AllowedHeaders: env.list("CORS_ALLOWED_HEADERS", []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"}),
			MaxAge:         env.integer("CORS_MAX_AGE", 43200), // 12 hours
		},
		Redis: RedisConfig{
			Addr:        env.str("REDIS_ADDR", ""),
			Password:    env.str("REDIS_PASSWORD", ""),
			DB:          env.integer("REDIS_DB", 0),
			DialTimeout: env.duration("REDIS_DIAL_TIMEOUT", 5*time.Second),
		},
		RateLimit: RateLimitConfig{
			Max:    env.integer("RATE_LIMIT_MAX", 20),
			Window: env.duration("RATE_LIMIT_WINDOW", time.Minute),
		},
		MQTT: MQTTConfig{
			BrokerHost:        env.str("BROKER_HOST", ""),
			BrokerPort:        env.integer("BROKER_PORT", 1883),
			BrokerUser:        env.str("BROKER_USER", ""),
			BrokerPass:        env.str("BROKER_PASS", ""),
			UseTLS:            env.boolean("BROKER_TLS", false),
			ClientID:          env.str("MQTT_CLIENT_ID", "workshop-api"),
			RegistrationTopic: env.str("MQTT_REGISTRATION_TOPIC", "workshop/registrations"),
			PublishTimeout:    env.duration("MQTT_PUBLISH_TIMEOUT", 5*time.Second),
		},
	}
	if env.err != nil {
		return nil, env.err
	}

	// Validate configuration
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// LoadSeedConfig loads configuration for the admin seed command
func LoadSeedConfig() (*SeedConfig, error) {
	loadDotEnv()

	env := &envReader{}
	config := &SeedConfig{
		Database: loadDatabaseConfig(env),
		Admin: AdminConfig{
			Username: env.str("ADMIN_USERNAME", ""),
			Password: env.str("ADMIN_PASSWORD", ""),
		},
		Logging: loadLoggingConfig(env),
	}
	if env.err != nil {
		return nil, env.err
	}

	if config.Database.URI == "" {
		return nil, errors.New("MONGO_URI is required")
	}
	if config.Admin.Username == "" || config.Admin.Password == "" {
		return nil, errors.New("ADMIN_USERNAME and ADMIN_PASSWORD are required")
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.URI == "" {
		return errors.New("MONGO_URI is required")
	}
	if c.Auth.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}
	if c.Auth.TokenDuration <= 0 {
		return errors.New("JWT_TOKEN_DURATION must be positive")
	}
	if c.Redis.Enabled() && (c.RateLimit.Max <= 0 || c.RateLimit.Window <= 0) {
		return errors.New("RATE_LIMIT_MAX and RATE_LIMIT_WINDOW must be positive when REDIS_ADDR is set")
	}
	if c.MQTT.Enabled() && c.MQTT.RegistrationTopic == "" {
		return errors.New("MQTT_REGISTRATION_TOPIC is required when BROKER_HOST is set")
	}
	return nil
}

func loadDotEnv() {
	// A missing .env file is fine; variables may be set directly
	_ = godotenv.Load()
}

func loadDatabaseConfig(env *envReader) DatabaseConfig {
	uri := env.str("MONGO_URI", "")
	return DatabaseConfig{
		URI:            uri,
		Name:           env.str("MONGO_DB", databaseFromURI(uri)),
		ConnectTimeout: env.duration("MONGO_CONNECT_TIMEOUT", 20*time.Second),
	}
}

func loadLoggingConfig(env *envReader) LoggingConfig {
	return LoggingConfig{
		Level:        env.str("LOG_LEVEL", "info"),
		Format:       env.str("LOG_FORMAT", "text"),
		Output:       env.str("LOG_OUTPUT", "stdout"),
		EnableCaller: env.boolean("LOG_ENABLE_CALLER", false),
	}
}

// databaseFromURI returns the database named in the connection string path
func databaseFromURI(uri string) string {
	if uri == "" {
		return defaultDatabaseName
	}
	cs, err := connstring.Parse(uri)
	if err != nil || cs.Database == "" {
		return defaultDatabaseName
	}
	return cs.Database
}

// envReader reads typed environment variables and keeps the first parse error
type envReader struct {
	err error
}

func (e *envReader) fail(key string, err error) {
	if e.err == nil {
		e.err = fmt.Errorf("invalid %s: %w", key, err)
	}
}

func (e *envReader) str(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func (e *envReader) integer(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		e.fail(key, err)
		return defaultValue
	}
	return intValue
}

func (e *envReader) boolean(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	switch strings.ToLower(value) {
	case "1", "true":
		return true
	case "0", "false":
		return false
	}
	e.fail(key, fmt.Errorf("%q (expected true/false or 1/0)", value))
	return defaultValue
}

func (e *envReader) duration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		e.fail(key, err)
		return defaultValue
	}
	return d
}

func (e *envReader) list(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parts := make([]string, 0)
	for _, part := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return parts
}
