package config

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

// Config holds the server configuration read from the environment
type Config struct {
	Port          string
	Env           string
	DatabaseURL   string
	FeaturesPath  string
	BaseLayerPath string
	OverpassURL   string
	OverpassBBox  string
	InitialHour   float64
	LoadTimeout   time.Duration
	LogLevel      string
	LogFormat     string

	// messages from Load, written by LogLoadNotes once logging is set up
	notes []loadNote
}

type loadNote struct {
	level  log.Level
	fields log.Fields
	msg    string
}

// Load reads .env when present, then the environment. Nothing is logged
// here; call LogLoadNotes after the logger is initialised.
func Load() *Config {
	cfg := &Config{}
	if err := godotenv.Load(); err != nil {
		cfg.note(log.DebugLevel, nil, "No .env file found, using system environment")
	}

	cfg.Port = getEnv("PORT", "8080")
	cfg.Env = getEnv("GO_ENV", "development")
	cfg.DatabaseURL = getEnv("DATABASE_URL", "")
	cfg.FeaturesPath = getEnv("FEATURES_PATH", "data/processed/low_emission_simulation.geojson")
	cfg.BaseLayerPath = getEnv("BASE_LAYER_PATH", "belek_osm_verisi.geojson")
	cfg.OverpassURL = getEnv("OVERPASS_URL", "")
	cfg.OverpassBBox = getEnv("OVERPASS_BBOX", "36.84,31.02,36.88,31.10")
	cfg.InitialHour = cfg.getEnvFloat("INITIAL_HOUR", 8)
	cfg.LoadTimeout = cfg.getEnvDuration("LOAD_TIMEOUT", 30*time.Second)
	cfg.LogLevel = getEnv("LOG_LEVEL", "info")
	cfg.LogFormat = getEnv("LOG_FORMAT", "text")

	return cfg
}

// LogLoadNotes writes the messages collected by Load
func (c *Config) LogLoadNotes() {
	for _, n := range c.notes {
		log.WithFields(n.fields).Log(n.level, n.msg)
	}
	c.notes = nil
}

func (c *Config) note(level log.Level, fields log.Fields, format string, args ...interface{}) {
	c.notes = append(c.notes, loadNote{level: level, fields: fields, msg: fmt.Sprintf(format, args...)})
}

// Validate checks that all configuration values are usable
func (c *Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("config: PORT is required")
	}
	if _, err := strconv.Atoi(c.Port); err != nil {
		return fmt.Errorf("config: PORT must be numeric, got %q", c.Port)
	}
	if math.IsNaN(c.InitialHour) || math.IsInf(c.InitialHour, 0) {
		return fmt.Errorf("config: INITIAL_HOUR must be a finite number")
	}
	if c.LoadTimeout <= 0 {
		return fmt.Errorf("config: LOAD_TIMEOUT must be positive")
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.LogLevel] {
		return fmt.Errorf("config: LOG_LEVEL must be one of: debug, info, warn, error")
	}
	validFormats := map[string]bool{"json": true, "text": true}
	if !validFormats[c.LogFormat] {
		return fmt.Errorf("config: LOG_FORMAT must be one of: json, text")
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func (c *Config) getEnvFloat(key string, defaultValue float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		c.note(log.WarnLevel, log.Fields{"key": key}, "Invalid number %q, using default %v", value, defaultValue)
		return defaultValue
	}
	return f
}

func (c *Config) getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		c.note(log.WarnLevel, log.Fields{"key": key}, "Invalid duration %q, using default %s", value, defaultValue)
		return defaultValue
	}
	return d
}
