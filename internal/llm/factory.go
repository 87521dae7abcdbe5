package llm

import (
	"fmt"

	"docufill/internal/config"
	"docufill/internal/port"
)

// ProviderFactory is a function that creates a ChatModel from a provider config.
type ProviderFactory func(cfg *config.LLMProviderConfig) (port.ChatModel, error)

// registry of chat-model provider factories, populated by init() in each
// provider package or explicitly via RegisterProvider.
var providers = map[string]ProviderFactory{}

// RegisterProvider registers a chat-model provider factory by name.
func RegisterProvider(name string, factory ProviderFactory) {
	providers[name] = factory
}

// NewModel creates a ChatModel from a provider config using the registered factory.
func NewModel(cfg *config.LLMProviderConfig) (port.ChatModel, error) {
	factory, ok := providers[cfg.Provider]
	if !ok {
		return nil, fmt.Errorf("unknown chat-model provider: %s", cfg.Provider)
	}
	return factory(cfg)
}

// NewFromConfig assembles the configured model chain: the primary provider,
// wrapped in a FallbackModel with the secondary when one is configured.
func NewFromConfig(cfg *config.LLMConfig) (port.ChatModel, error) {
	primary, err := NewModel(&cfg.Primary)
	if err != nil {
		return nil, fmt.Errorf("creating primary model: %w", err)
	}

	secondaryCfg := cfg.SecondaryConfig()
	if secondaryCfg == nil {
		return primary, nil
	}

	secondary, err := NewModel(secondaryCfg)
	if err != nil {
		return nil, fmt.Errorf("creating secondary model: %w", err)
	}

	return NewFallbackModel(
		[]port.ChatModel{primary, secondary},
		[]string{cfg.Primary.Provider, secondaryCfg.Provider},
	), nil
}
