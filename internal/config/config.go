package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"
)

const (
	EnvAPIKey  = "RAPIDAPI_KEY"
	EnvAPIHost = "RAPIDAPI_HOST"
	EnvPort    = "YT_RELAY_PORT"
)

type Config struct {
	APIKey                 string  `json:"api_key"`
	APIHost                string  `json:"api_host"`
	APIBaseURL             string  `json:"api_base_url"`
	ProxyPort              int     `json:"proxy_port"`
	StaticDir              string  `json:"static_dir"`
	UpstreamTimeoutSeconds int     `json:"upstream_timeout_seconds"`
	RateLimitRPS           float64 `json:"rate_limit_rps"`
	RateLimitBurst         int     `json:"rate_limit_burst"`
}

// Default returns the settings used when no config file is present.
func Default() Config {
	return Config{
		APIHost:                "youtube-info-download-api.p.rapidapi.com",
		APIBaseURL:             "https://youtube-info-download-api.p.rapidapi.com",
		ProxyPort:              8084,
		StaticDir:              "./web",
		UpstreamTimeoutSeconds: 30,
		RateLimitRPS:           10,
		RateLimitBurst:         20,
	}
}

// Load reads path over the defaults and then applies environment overrides.
// A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return cfg, err
	}
	if err == nil {
		if err := json.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// ApplyEnv overlays environment values. lookup is os.LookupEnv outside tests.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvAPIKey); ok && v != "" {
		c.APIKey = v
	}
	if v, ok := lookup(EnvAPIHost); ok && v != "" {
		c.APIHost = v
	}
	if v, ok := lookup(EnvPort); ok && v != "" {
		port, err := strconv.Atoi(v)
		if err != nil || port <= 0 {
			return fmt.Errorf("invalid %s %q", EnvPort, v)
		}
		c.ProxyPort = port
	}
	return nil
}

func (c Config) UpstreamTimeout() time.Duration {
	if c.UpstreamTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(c.UpstreamTimeoutSeconds) * time.Second
}

func (c Config) Addr() string {
	return fmt.Sprintf(":%d", c.ProxyPort)
}
