package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server  ServerConfig  `yaml:"server"`
	OpenAI  OpenAIConfig  `yaml:"openai"`
	Notes   NotesConfig   `yaml:"notes"`
	Mongo   MongoConfig   `yaml:"mongo"`
	Paths   PathsConfig   `yaml:"paths"`
	Logging LoggingConfig `yaml:"logging"`
	Watch   WatchConfig   `yaml:"watch"`
}

type ServerConfig struct {
	Addr string `yaml:"addr"`
}

type OpenAIConfig struct {
	APIKey          string `yaml:"api_key"`
	TranscribeModel string `yaml:"transcribe_model"`
	NotesModel      string `yaml:"notes_model"`
}

type NotesConfig struct {
	Provider      string   `yaml:"provider"`
	GeminiModel   string   `yaml:"gemini_model"`
	GeminiAPIKeys []string `yaml:"gemini_api_keys"`
}

type MongoConfig struct {
	URI        string `yaml:"uri"`
	Database   string `yaml:"database"`
	Collection string `yaml:"collection"`
}

type PathsConfig struct {
	Uploads string `yaml:"uploads"`
	Results string `yaml:"results"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

type WatchConfig struct {
	Enabled       bool   `yaml:"enabled"`
	Input         string `yaml:"input"`
	MaxConcurrent int    `yaml:"max_concurrent"`
}

// Load reads a yaml config file, applies environment overrides for secrets,
// and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}

// applyEnv pulls secrets from the environment. Environment values win over
// anything committed to the yaml file.
func (c *Config) applyEnv() {
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		c.OpenAI.APIKey = v
	}
	if v := os.Getenv("MONGO_URI"); v != "" {
		c.Mongo.URI = v
	}
	if v := os.Getenv("GEMINI_API_KEYS"); v != "" {
		c.Notes.GeminiAPIKeys = nil
		for _, k := range strings.Split(v, ",") {
			if k = strings.TrimSpace(k); k != "" {
				c.Notes.GeminiAPIKeys = append(c.Notes.GeminiAPIKeys, k)
			}
		}
	}
}

func (c *Config) Validate() error {
	if c.OpenAI.APIKey == "" {
		return fmt.Errorf("openai.api_key is required (or set OPENAI_API_KEY)")
	}

	if c.Notes.Provider == "" {
		c.Notes.Provider = "openai"
	}
	switch c.Notes.Provider {
	case "openai":
	case "gemini":
		if len(c.Notes.GeminiAPIKeys) == 0 {
			return fmt.Errorf("notes.gemini_api_keys is required when notes.provider is gemini (or set GEMINI_API_KEYS)")
		}
	default:
		return fmt.Errorf("notes.provider must be openai or gemini, got %q", c.Notes.Provider)
	}

	if c.Watch.Enabled && c.Watch.Input == "" {
		return fmt.Errorf("watch.input is required when watch.enabled is true")
	}

	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.OpenAI.TranscribeModel == "" {
		c.OpenAI.TranscribeModel = "whisper-1"
	}
	if c.OpenAI.NotesModel == "" {
		c.OpenAI.NotesModel = "gpt-4o-mini"
	}
	if c.Notes.GeminiModel == "" {
		c.Notes.GeminiModel = "gemini-2.5-flash"
	}
	if c.Mongo.URI == "" {
		c.Mongo.URI = "mongodb://localhost:27017"
	}
	if c.Mongo.Database == "" {
		c.Mongo.Database = "transcription_db"
	}
	if c.Mongo.Collection == "" {
		c.Mongo.Collection = "transcriptions"
	}
	if c.Paths.Uploads == "" {
		c.Paths.Uploads = "uploads"
	}
	if c.Paths.Results == "" {
		c.Paths.Results = "results"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Watch.MaxConcurrent == 0 {
		c.Watch.MaxConcurrent = 2
	}

	return nil
}
