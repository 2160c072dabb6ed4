package config

import (
	"errors"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Server ServerConfig `yaml:"server"`
	Store  StoreConfig  `yaml:"store"`
	Log    LogConfig    `yaml:"log"`
}

type ServerConfig struct {
	Addr                string `yaml:"addr"`
	ReadTimeoutSeconds  int    `yaml:"read_timeout_seconds"`
	WriteTimeoutSeconds int    `yaml:"write_timeout_seconds"`
}

type StoreConfig struct {
	Path string `yaml:"path"`
}

type LogConfig struct {
	Level    string `yaml:"level"`  // debug, info, warn, error
	Format   string `yaml:"format"` // json, console
	GelfAddr string `yaml:"gelf_addr"`
}

func (s ServerConfig) ReadTimeout() time.Duration {
	return time.Duration(s.ReadTimeoutSeconds) * time.Second
}

func (s ServerConfig) WriteTimeout() time.Duration {
	return time.Duration(s.WriteTimeoutSeconds) * time.Second
}

// Load builds the configuration from, in increasing priority: defaults, the
// YAML file at path (optional), a .env file in the working directory and the
// process environment.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, err
		}
	}
	cfg.applyEnv()
	cfg.fillDefaults()
	return cfg, nil
}

func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:                ":8080",
			ReadTimeoutSeconds:  10,
			WriteTimeoutSeconds: 30,
		},
		Store: StoreConfig{Path: "results.xlsx"},
		Log:   LogConfig{Level: "info", Format: "json"},
	}
}

func (c *Config) applyEnv() {
	c.Server.Addr = getEnv("SURVEY_ADDR", c.Server.Addr)
	c.Server.ReadTimeoutSeconds = getEnvInt("SURVEY_READ_TIMEOUT", c.Server.ReadTimeoutSeconds)
	c.Server.WriteTimeoutSeconds = getEnvInt("SURVEY_WRITE_TIMEOUT", c.Server.WriteTimeoutSeconds)
	c.Store.Path = getEnv("SURVEY_DATA_FILE", c.Store.Path)
	c.Log.Level = strings.ToLower(getEnv("SURVEY_LOG_LEVEL", c.Log.Level))
	c.Log.Format = strings.ToLower(getEnv("SURVEY_LOG_FORMAT", c.Log.Format))
	c.Log.GelfAddr = getEnv("SURVEY_GELF_ADDR", c.Log.GelfAddr)
}

// fillDefaults restores defaults for keys a YAML file set to zero values.
func (c *Config) fillDefaults() {
	d := Default()
	if c.Server.Addr == "" {
		c.Server.Addr = d.Server.Addr
	}
	if c.Server.ReadTimeoutSeconds <= 0 {
		c.Server.ReadTimeoutSeconds = d.Server.ReadTimeoutSeconds
	}
	if c.Server.WriteTimeoutSeconds <= 0 {
		c.Server.WriteTimeoutSeconds = d.Server.WriteTimeoutSeconds
	}
	if c.Store.Path == "" {
		c.Store.Path = d.Store.Path
	}
	if c.Log.Level == "" {
		c.Log.Level = d.Log.Level
	}
	if c.Log.Format == "" {
		c.Log.Format = d.Log.Format
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n := 0
	for _, c := range v {
		if c < '0' || c > '9' {
			return fallback
		}
		n = n*10 + int(c-'0')
	}
	return n
}
