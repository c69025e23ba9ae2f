package factory

import (
	"fmt"

	"faq-chat-be/pkg/llm"
	"faq-chat-be/pkg/llm/ollama"
	"faq-chat-be/pkg/llm/openai"
)

func NewLLMProvider(providerType, modelName, apiKey, baseURL string) (llm.LLMProvider, error) {
	switch providerType {
	case "openai":
		if apiKey == "" {
			return nil, fmt.Errorf("openai provider requires an API key")
		}
		if baseURL != "" {
			return openai.NewOpenAIProviderWithBaseURL(apiKey, modelName, baseURL), nil
		}
		return openai.NewOpenAIProvider(apiKey, modelName), nil
	case "ollama":
		if baseURL == "" {
			baseURL = "http://localhost:11434" // Default
		}
		return ollama.NewOllamaProvider(baseURL, modelName), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", providerType)
	}
}
