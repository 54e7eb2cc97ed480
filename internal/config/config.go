package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/time/rate"
	"gopkg.in/yaml.v3"

	"github.com/mmuslimabdulj/spyroom/internal/domain"
)

// Config holds all application configuration
type Config struct {
	// Server
	Port string `yaml:"port"`
	Env  string `yaml:"env"`

	// Security
	AllowedOrigins []string `yaml:"allowedOrigins"`

	// Rate Limiting
	RateLimitAPI    rate.Limit `yaml:"rateLimitApi"`
	RateLimitWS     rate.Limit `yaml:"rateLimitWs"`
	RateLimitIntent rate.Limit `yaml:"rateLimitIntent"`

	// Logging
	LogLevel   string `yaml:"logLevel"` // debug, info, warn, error, silent
	LogBackend string `yaml:"logBackend"`

	// WebSocket
	MaxMessageSize int `yaml:"maxMessageSize"`

	// Rooms
	ResetDelay      time.Duration   `yaml:"resetDelay"`
	HostLeavePolicy string          `yaml:"hostLeavePolicy"`
	RoomCodePolicy  string          `yaml:"roomCodePolicy"`
	DefaultSettings domain.Settings `yaml:"defaultSettings"`
}

// DefaultConfig returns configuration with default values
func DefaultConfig() *Config {
	return &Config{
		Port:            "8080",
		Env:             "dev",
		AllowedOrigins:  []string{"http://localhost:8080", "http://localhost:3000"},
		RateLimitAPI:    domain.DefaultRateLimitAPI,
		RateLimitWS:     domain.DefaultRateLimitWS,
		RateLimitIntent: domain.DefaultRateLimitIntent,
		LogLevel:        "info",
		MaxMessageSize:  domain.MaxMessageSize,
		ResetDelay:      domain.ResetDelay,
		HostLeavePolicy: "dissolve",
		RoomCodePolicy:  "reject",
		DefaultSettings: domain.DefaultSettings(),
	}
}

// Load builds the configuration: defaults, then .env, then the YAML file
// named by CONFIG_PATH (if any), then environment variables.
func Load() (*Config, error) {
	// A missing .env is normal outside development
	_ = godotenv.Load()

	cfg := DefaultConfig()
	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}
	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() {
	// Server
	if port := os.Getenv("PORT"); port != "" {
		c.Port = port
	}
	if env := os.Getenv("APP_ENV"); env != "" {
		c.Env = env
	}

	// Security
	if origins := os.Getenv("ALLOWED_ORIGINS"); origins != "" {
		c.AllowedOrigins = parseOrigins(origins)
	}

	// Rate Limiting
	if val, ok := positiveInt("RATE_LIMIT_API"); ok {
		c.RateLimitAPI = rate.Limit(val)
	}
	if val, ok := positiveInt("RATE_LIMIT_WS"); ok {
		c.RateLimitWS = rate.Limit(val)
	}
	if val, ok := positiveInt("RATE_LIMIT_INTENT"); ok {
		c.RateLimitIntent = rate.Limit(val)
	}

	// Logging
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		c.LogLevel = level
	}
	if backend := os.Getenv("LOG_BACKEND"); backend != "" {
		c.LogBackend = backend
	}

	// WebSocket
	if val, ok := positiveInt("MAX_MESSAGE_SIZE"); ok {
		c.MaxMessageSize = val
	}

	// Rooms
	if d := os.Getenv("RESET_DELAY"); d != "" {
		if val, err := time.ParseDuration(d); err == nil && val > 0 {
			c.ResetDelay = val
		}
	}
	if p := os.Getenv("HOST_LEAVE_POLICY"); p != "" {
		c.HostLeavePolicy = strings.ToLower(strings.TrimSpace(p))
	}
	if p := os.Getenv("ROOM_CODE_POLICY"); p != "" {
		c.RoomCodePolicy = strings.ToLower(strings.TrimSpace(p))
	}
	if val, ok := nonNegativeInt("DEFAULT_VILLAGERS"); ok {
		c.DefaultSettings.VillagerCount = val
	}
	if val, ok := nonNegativeInt("DEFAULT_SPIES"); ok {
		c.DefaultSettings.SpyCount = val
	}
	if val, ok := nonNegativeInt("DEFAULT_WHITE_HATS"); ok {
		c.DefaultSettings.WhiteHatCount = val
	}
}

// Validate rejects values the server cannot run with
func (c *Config) Validate() error {
	var errs []error
	if c.Port == "" {
		errs = append(errs, errors.New("port is required"))
	}
	switch c.HostLeavePolicy {
	case "dissolve", "retain":
	default:
		errs = append(errs, fmt.Errorf("unknown host leave policy %q", c.HostLeavePolicy))
	}
	switch c.RoomCodePolicy {
	case "reject", "overwrite":
	default:
		errs = append(errs, fmt.Errorf("unknown room code policy %q", c.RoomCodePolicy))
	}
	switch c.LogBackend {
	case "", "std", "zap":
	default:
		errs = append(errs, fmt.Errorf("unknown log backend %q", c.LogBackend))
	}
	if c.MaxMessageSize <= 0 {
		errs = append(errs, errors.New("max message size must be positive"))
	}
	if c.ResetDelay <= 0 {
		errs = append(errs, errors.New("reset delay must be positive"))
	}
	if err := c.DefaultSettings.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("default settings: %w", err))
	}
	return errors.Join(errs...)
}

func positiveInt(key string) (int, bool) {
	val, err := strconv.Atoi(os.Getenv(key))
	if err != nil || val <= 0 {
		return 0, false
	}
	return val, true
}

func nonNegativeInt(key string) (int, bool) {
	raw := os.Getenv(key)
	if raw == "" {
		return 0, false
	}
	val, err := strconv.Atoi(raw)
	if err != nil || val < 0 {
		return 0, false
	}
	return val, true
}

// parseOrigins parses comma-separated origins
func parseOrigins(origins string) []string {
	parts := strings.Split(origins, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			result = append(result, p)
		}
	}
	return result
}
