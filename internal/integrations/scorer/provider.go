package scorer

import (
	"context"
	"fmt"
	"os"
	"strings"
)

// Provider identifies the active scoring backend.
type Provider string

const (
	ProviderGemini Provider = "gemini"
	ProviderOpenAI Provider = "openai"
)

// Config holds scorer settings from the config file.
type Config struct {
	Provider             string `yaml:"provider,omitempty"`
	BaseURL              string `yaml:"base_url,omitempty"`
	APIKey               string `yaml:"api_key,omitempty"`
	Model                string `yaml:"model,omitempty"`
	MaxRequestsPerMinute int    `yaml:"max_requests_per_minute,omitempty"`
}

// backend is a JSON-mode chat completion provider.
type backend interface {
	completeJSON(ctx context.Context, system, user string) (map[string]any, error)
	Close() error
}

// ResolveProvider selects the provider and API key.
//
// Selection order:
//  1. An explicit provider in config, with its key from config or env.
//  2. If GEMINI_API_KEY is set, Gemini.
//  3. If OPENAI_API_KEY or QWEN_API_KEY is set, the OpenAI-compatible backend.
//  4. A bare config key, provider inferred from its prefix.
func ResolveProvider(cfg Config) (Provider, string, error) {
	configKey := strings.TrimSpace(cfg.APIKey)
	geminiKey := strings.TrimSpace(os.Getenv("GEMINI_API_KEY"))
	openAIKey := strings.TrimSpace(os.Getenv("OPENAI_API_KEY"))
	if openAIKey == "" {
		openAIKey = strings.TrimSpace(os.Getenv("QWEN_API_KEY"))
	}

	switch Provider(strings.ToLower(cfg.Provider)) {
	case ProviderGemini:
		if configKey != "" {
			return ProviderGemini, configKey, nil
		}
		if geminiKey != "" {
			return ProviderGemini, geminiKey, nil
		}
		return "", "", fmt.Errorf("gemini provider selected but no API key found")
	case ProviderOpenAI:
		if configKey != "" {
			return ProviderOpenAI, configKey, nil
		}
		if openAIKey != "" {
			return ProviderOpenAI, openAIKey, nil
		}
		return "", "", fmt.Errorf("openai provider selected but no API key found")
	}

	switch {
	case geminiKey != "":
		return ProviderGemini, geminiKey, nil
	case openAIKey != "":
		return ProviderOpenAI, openAIKey, nil
	case configKey != "":
		return inferProviderFromKey(configKey), configKey, nil
	default:
		return "", "", fmt.Errorf("no scorer API key found (set GEMINI_API_KEY, OPENAI_API_KEY or QWEN_API_KEY)")
	}
}

func inferProviderFromKey(apiKey string) Provider {
	// OpenAI-compatible services commonly use sk-* prefixes.
	if strings.HasPrefix(strings.TrimSpace(apiKey), "sk-") {
		return ProviderOpenAI
	}
	return ProviderGemini
}
