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
	Words struct {
		TTL string `yaml:"ttl"`
	} `yaml:"words"`
	Engine struct {
		XPPerCorrect    int     `yaml:"xp_per_correct"`
		LeaderboardSize int     `yaml:"leaderboard_size"`
		Levels          []Level `yaml:"levels"`
	} `yaml:"engine"`
}

// Level is one (xp cutoff, label) pair of the classifier configuration.
type Level struct {
	MinXP int    `yaml:"min_xp"`
	Label string `yaml:"label"`
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

// TTLDuration parses a duration string or returns the fallback if empty.
func TTLDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	return fallback
}
