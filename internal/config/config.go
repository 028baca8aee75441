// Package config provides configuration management for memoria.
// It loads settings from environment variables with the MEMORIA_ prefix
// and provides sensible defaults for all configuration options.
package config

import (
	"os"
	"strconv"
)

// Config holds all configuration settings for the memoria application.
type Config struct {
	Storage    StorageConfig
	LLM        LLMConfig
	Chat       ChatConfig
	Characters CharactersConfig
}

// StorageConfig contains document-store configuration.
type StorageConfig struct {
	Engine      string // storage engine: sqlite, postgres (default: sqlite)
	DataPath    string // path to the data directory for sqlite (default: ./data)
	PostgresDSN string // PostgreSQL connection string when Engine is postgres
}

// LLMConfig contains text-generation provider configuration.
type LLMConfig struct {
	Provider          string  // LLM provider: ollama, openai, anthropic (default: ollama)
	OllamaURL         string  // Ollama API URL (default: http://localhost:11434)
	OllamaModel       string  // Ollama model name (default: qwen2.5:7b)
	OpenAIAPIKey      string  // OpenAI API key
	OpenAIModel       string  // OpenAI model name (default: gpt-4o-mini)
	AnthropicAPIKey   string  // Anthropic API key
	AnthropicModel    string  // Anthropic model name (default: claude-sonnet-4-20250514)
	RequestsPerSecond float64 // outbound request rate limit, 0 disables (default: 2)
}

// ChatConfig contains turn-handling cadence settings.
type ChatConfig struct {
	HistoryWindow      int // transcript messages sent per completion (default: 20)
	ChatMaxTokens      int // max output tokens for character replies (default: 1000)
	ExtractionInterval int // run fact extraction every Nth message (default: 5)
	CompactionInterval int // run bucket compaction every Nth message (default: 50)
}

// CharactersConfig contains persona registry settings.
type CharactersConfig struct {
	Path  string // path to characters YAML file; empty uses built-in personas
	Watch bool   // reload the file on change (default: false)
}

// LoadConfig loads configuration from environment variables with sensible
// defaults. All environment variables use the MEMORIA_ prefix.
func LoadConfig() *Config {
	return &Config{
		Storage: StorageConfig{
			Engine:      getEnv("MEMORIA_STORAGE_ENGINE", "sqlite"),
			DataPath:    getEnv("MEMORIA_DATA_PATH", "./data"),
			PostgresDSN: getEnv("MEMORIA_POSTGRES_DSN", ""),
		},
		LLM: LLMConfig{
			Provider:          getEnv("MEMORIA_LLM_PROVIDER", "ollama"),
			OllamaURL:         getEnv("MEMORIA_OLLAMA_URL", "http://localhost:11434"),
			OllamaModel:       getEnv("MEMORIA_OLLAMA_MODEL", "qwen2.5:7b"),
			OpenAIAPIKey:      getEnv("MEMORIA_OPENAI_API_KEY", ""),
			OpenAIModel:       getEnv("MEMORIA_OPENAI_MODEL", "gpt-4o-mini"),
			AnthropicAPIKey:   getEnv("MEMORIA_ANTHROPIC_API_KEY", ""),
			AnthropicModel:    getEnv("MEMORIA_ANTHROPIC_MODEL", "claude-sonnet-4-20250514"),
			RequestsPerSecond: getEnvFloat("MEMORIA_LLM_RPS", 2),
		},
		Chat: ChatConfig{
			HistoryWindow:      getEnvInt("MEMORIA_HISTORY_WINDOW", 20),
			ChatMaxTokens:      getEnvInt("MEMORIA_CHAT_MAX_TOKENS", 1000),
			ExtractionInterval: getEnvInt("MEMORIA_EXTRACTION_INTERVAL", 5),
			CompactionInterval: getEnvInt("MEMORIA_COMPACTION_INTERVAL", 50),
		},
		Characters: CharactersConfig{
			Path:  getEnv("MEMORIA_CHARACTERS_FILE", ""),
			Watch: getEnvBool("MEMORIA_CHARACTERS_WATCH", false),
		},
	}
}

// getEnv retrieves a string environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt retrieves an integer environment variable or returns a default
// value. If the variable exists but cannot be parsed, the default is used.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvFloat retrieves a float environment variable or returns a default
// value. If the variable exists but cannot be parsed, the default is used.
func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

// getEnvBool retrieves a boolean environment variable or returns a default
// value. It recognizes "true", "1", "yes" and "false", "0", "no".
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		switch value {
		case "true", "1", "yes", "True", "TRUE", "Yes", "YES":
			return true
		case "false", "0", "no", "False", "FALSE", "No", "NO":
			return false
		}
	}
	return defaultValue
}
