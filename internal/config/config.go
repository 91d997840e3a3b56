package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Port string `yaml:"port"`
	} `yaml:"server"`
	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
		TTL      string `yaml:"ttl"`
	} `yaml:"redis"`
	Postgres struct {
		URL string `yaml:"url"`
	} `yaml:"postgres"`
	Content struct {
		TTL string `yaml:"ttl"`
	} `yaml:"content"`
	// Game holds the scoring and pacing tunables. Zero values fall back to
	// the defaults, so a config file may set only what it overrides.
	Game struct {
		BasePoints            int `yaml:"basePoints"`
		SpeedBonus            int `yaml:"speedBonus"`
		SpeedThresholdSeconds int `yaml:"speedThresholdSeconds"`
		StealPoints           int `yaml:"stealPoints"`
		StealWindowSeconds    int `yaml:"stealWindowSeconds"`
		WrongPenalty          int `yaml:"wrongPenalty"`
		ShowdownRounds        int `yaml:"showdownRounds"`
	} `yaml:"game"`
}

// Load reads YAML config from path.
func Load(path string) (Config, error) {
	cfg := Config{}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// TTLDuration parses a duration string or returns the fallback if empty or
// invalid.
func TTLDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	return fallback
}
