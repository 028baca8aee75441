package llm

import (
	"fmt"

	"github.com/memoria-chat/memoria/internal/config"
)

// NewTextGenerator creates the appropriate TextGenerator for the configured
// provider.
func NewTextGenerator(cfg config.LLMConfig) (TextGenerator, error) {
	switch cfg.Provider {
	case "anthropic":
		return NewAnthropicClient(AnthropicConfig{
			APIKey:            cfg.AnthropicAPIKey,
			Model:             cfg.AnthropicModel,
			RequestsPerSecond: cfg.RequestsPerSecond,
		}), nil
	case "openai":
		return NewOpenAIClient(OpenAIConfig{
			APIKey:            cfg.OpenAIAPIKey,
			Model:             cfg.OpenAIModel,
			RequestsPerSecond: cfg.RequestsPerSecond,
		}), nil
	case "ollama", "":
		return NewOllamaClient(OllamaConfig{
			BaseURL:           cfg.OllamaURL,
			Model:             cfg.OllamaModel,
			RequestsPerSecond: cfg.RequestsPerSecond,
		}), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %q", cfg.Provider)
	}
}
