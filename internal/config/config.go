package config

import (
	"errors"
	"io/fs"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Default content endpoints, the public documents the quiz was first published with.
const (
	DefaultQuizURL    = "http://proto.io/en/jobs/candidate-questions/quiz.json"
	DefaultResultsURL = "http://proto.io/en/jobs/candidate-questions/result.json"
)

type Config struct {
	Server struct {
		Port           string   `yaml:"port"`
		AllowedOrigins []string `yaml:"allowed_origins"`
	} `yaml:"server"`
	Content struct {
		QuizURL    string `yaml:"quiz_url"`
		ResultsURL string `yaml:"results_url"`
		QuizID     string `yaml:"quiz_id"`
		Timeout    string `yaml:"timeout"`
		TTL        string `yaml:"ttl"`
	} `yaml:"content"`
	Quiz struct {
		FeedbackDelay string `yaml:"feedback_delay"`
	} `yaml:"quiz"`
	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
		TTL      string `yaml:"ttl"`
	} `yaml:"redis"`
	Postgres struct {
		URL string `yaml:"url"`
	} `yaml:"postgres"`
}

// Load reads YAML config from path. A missing file yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Default returns the configuration used when no file is present.
func Default() Config {
	cfg := Config{}
	cfg.Server.Port = "8080"
	cfg.Content.QuizURL = DefaultQuizURL
	cfg.Content.ResultsURL = DefaultResultsURL
	cfg.Content.QuizID = "default"
	cfg.Content.Timeout = "10s"
	cfg.Content.TTL = "10m"
	cfg.Quiz.FeedbackDelay = "300ms"
	return cfg
}

// Duration parses a duration string or returns the fallback if empty or invalid.
func Duration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	return fallback
}
