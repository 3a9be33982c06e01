// Package config provides configuration loading and structs for the embedserve server.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment variables honoured on top of the config file. Only values a
// hosting platform injects are read from the environment.
const (
	EnvCustomHandlerPort = "FUNCTIONS_CUSTOMHANDLER_PORT"
	EnvOpenAIAPIKey      = "OPENAI_API_KEY"
)

// Config holds all configuration for the application.
type Config struct {
	Debug     bool            `yaml:"debug"`
	Server    ServerConfig    `yaml:"server"`
	Embedding EmbeddingConfig `yaml:"embedding"`
	Tracing   TracingConfig   `yaml:"tracing"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
	// BasePath mounts every route under a prefix, e.g. "/api".
	BasePath       string        `yaml:"base_path"`
	MaxBodyBytes   int64         `yaml:"max_body_bytes"`
	RequestTimeout time.Duration `yaml:"request_timeout"`
}

// Addr returns the listen address.
func (s *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// EmbeddingConfig selects and configures the encoder backend.
type EmbeddingConfig struct {
	// Backend is one of "onnx", "openai" or "mock".
	Backend    string `yaml:"backend"`
	ModelID    string `yaml:"model_id"`
	Dimensions int    `yaml:"dimensions"`

	ONNX   ONNXConfig   `yaml:"onnx"`
	OpenAI OpenAIConfig `yaml:"openai"`
}

// ONNXConfig holds ONNX Runtime encoder settings.
type ONNXConfig struct {
	LibraryPath    string   `yaml:"library_path"`
	ModelPath      string   `yaml:"model_path"`
	VocabPath      string   `yaml:"vocab_path"`
	MaxTokens      int      `yaml:"max_tokens"`
	InputNames     []string `yaml:"input_names"`
	OutputName     string   `yaml:"output_name"`
	Pooling        string   `yaml:"pooling"`
	Normalize      bool     `yaml:"normalize"`
	Lowercase      *bool    `yaml:"lowercase"`
	IntraOpThreads int      `yaml:"intra_op_threads"`

	CLSToken string `yaml:"cls_token"`
	SEPToken string `yaml:"sep_token"`
	UnkToken string `yaml:"unk_token"`
}

// LowercaseOrDefault returns whether input is lowercased before tokenization; defaults to true when unset.
func (o *ONNXConfig) LowercaseOrDefault() bool {
	if o.Lowercase != nil {
		return *o.Lowercase
	}
	return true
}

// OpenAIConfig holds settings for an OpenAI-compatible embeddings endpoint.
type OpenAIConfig struct {
	BaseURL string `yaml:"base_url"`
	APIKey  string `yaml:"api_key"`
	Model   string `yaml:"model"`
}

// TracingConfig holds OpenTelemetry exporter settings.
type TracingConfig struct {
	Enabled     bool   `yaml:"enabled"`
	Endpoint    string `yaml:"endpoint"`
	URLPath     string `yaml:"url_path"`
	Insecure    bool   `yaml:"insecure"`
	ServiceName string `yaml:"service_name"`
}

// Load reads and parses the config file at path, expands paths, applies defaults
// and environment overrides. Returns an error if the file cannot be read or parsed.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	ApplyDefaults(&cfg)

	configDir := filepath.Dir(path)
	cfg.Embedding.ONNX.ModelPath = expandPath(cfg.Embedding.ONNX.ModelPath, configDir)
	cfg.Embedding.ONNX.VocabPath = expandPath(cfg.Embedding.ONNX.VocabPath, configDir)
	cfg.Embedding.ONNX.LibraryPath = expandPath(cfg.Embedding.ONNX.LibraryPath, configDir)

	if err := ApplyEnv(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns the built-in configuration with environment overrides applied.
// Used when no config file exists, e.g. on a hosting platform that only sets a port.
func Default() (*Config, error) {
	cfg := &Config{}
	ApplyDefaults(cfg)
	if err := ApplyEnv(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv loads a .env file from the working directory if present and applies
// the hosting-platform overrides.
func ApplyEnv(cfg *Config) error {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to load .env: %w", err)
	}
	if v := os.Getenv(EnvCustomHandlerPort); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil || port <= 0 || port > 65535 {
			return fmt.Errorf("invalid %s=%q", EnvCustomHandlerPort, v)
		}
		cfg.Server.Port = port
	}
	if cfg.Embedding.OpenAI.APIKey == "" {
		cfg.Embedding.OpenAI.APIKey = os.Getenv(EnvOpenAIAPIKey)
	}
	return nil
}

// Save writes the config to path.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// expandPath converts a path to absolute. Paths starting with "./" are relative to configDir;
// other relative paths are relative to the home directory. Empty paths stay empty.
func expandPath(path string, configDir string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	if strings.HasPrefix(path, "./") || path == "." {
		return filepath.Join(configDir, path)
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, path)
	}
	return path
}
