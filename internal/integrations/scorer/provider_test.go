package scorer

import "testing"

func TestResolveProviderPrefersGeminiWhenBothEnvKeysSet(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "gemini-env-key")
	t.Setenv("OPENAI_API_KEY", "sk-openai-env-key")
	t.Setenv("QWEN_API_KEY", "")

	provider, key, err := ResolveProvider(Config{})
	if err != nil {
		t.Fatalf("ResolveProvider returned error: %v", err)
	}
	if provider != ProviderGemini {
		t.Fatalf("expected provider %q, got %q", ProviderGemini, provider)
	}
	if key != "gemini-env-key" {
		t.Fatalf("expected Gemini env key, got %q", key)
	}
}

func TestResolveProviderUsesQwenKeyWhenOpenAIMissing(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("QWEN_API_KEY", "sk-qwen-env-key")

	provider, key, err := ResolveProvider(Config{})
	if err != nil {
		t.Fatalf("ResolveProvider returned error: %v", err)
	}
	if provider != ProviderOpenAI {
		t.Fatalf("expected provider %q, got %q", ProviderOpenAI, provider)
	}
	if key != "sk-qwen-env-key" {
		t.Fatalf("expected Qwen env key, got %q", key)
	}
}

func TestResolveProviderExplicitConfigWinsOverEnv(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "gemini-env-key")
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("QWEN_API_KEY", "")

	provider, key, err := ResolveProvider(Config{Provider: "openai", APIKey: "sk-config-key"})
	if err != nil {
		t.Fatalf("ResolveProvider returned error: %v", err)
	}
	if provider != ProviderOpenAI {
		t.Fatalf("expected provider %q, got %q", ProviderOpenAI, provider)
	}
	if key != "sk-config-key" {
		t.Fatalf("expected config key, got %q", key)
	}
}

func TestResolveProviderExplicitProviderWithoutKeyErrors(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("QWEN_API_KEY", "")

	if _, _, err := ResolveProvider(Config{Provider: "gemini"}); err == nil {
		t.Fatal("expected error when explicit provider has no key")
	}
}

func TestResolveProviderInfersFromConfigKeyPrefix(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("QWEN_API_KEY", "")

	provider, _, err := ResolveProvider(Config{APIKey: "sk-some-key"})
	if err != nil {
		t.Fatalf("ResolveProvider returned error: %v", err)
	}
	if provider != ProviderOpenAI {
		t.Fatalf("expected sk- prefix to infer %q, got %q", ProviderOpenAI, provider)
	}

	provider, _, err = ResolveProvider(Config{APIKey: "AIzaSomething"})
	if err != nil {
		t.Fatalf("ResolveProvider returned error: %v", err)
	}
	if provider != ProviderGemini {
		t.Fatalf("expected non sk- prefix to infer %q, got %q", ProviderGemini, provider)
	}
}

func TestResolveProviderErrorsWhenNoKeyAvailable(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("QWEN_API_KEY", "")

	if _, _, err := ResolveProvider(Config{}); err == nil {
		t.Fatal("expected error when no provider key is set")
	}
}
