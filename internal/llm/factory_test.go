package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docufill/internal/config"
	"docufill/internal/port"
)

func stubFactory(model port.ChatModel) ProviderFactory {
	return func(cfg *config.LLMProviderConfig) (port.ChatModel, error) {
		return model, nil
	}
}

func TestNewModel_UnknownProvider(t *testing.T) {
	_, err := NewModel(&config.LLMProviderConfig{Provider: "does-not-exist"})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unknown chat-model provider")
}

func TestNewModel_RegisteredProvider(t *testing.T) {
	stub := &stubModel{reply: "hi"}
	RegisterProvider("stub-single", stubFactory(stub))

	model, err := NewModel(&config.LLMProviderConfig{Provider: "stub-single"})
	require.NoError(t, err)
	assert.Same(t, port.ChatModel(stub), model)
}

func TestNewFromConfig_PrimaryOnly(t *testing.T) {
	RegisterProvider("stub-primary", stubFactory(&stubModel{}))

	model, err := NewFromConfig(&config.LLMConfig{
		Primary: config.LLMProviderConfig{Provider: "stub-primary", APIKey: "k"},
	})
	require.NoError(t, err)

	// No secondary configured, the primary is returned unwrapped
	_, isFallback := model.(*FallbackModel)
	assert.False(t, isFallback)
}

func TestNewFromConfig_WithSecondary(t *testing.T) {
	RegisterProvider("stub-a", stubFactory(&stubModel{}))
	RegisterProvider("stub-b", stubFactory(&stubModel{}))

	model, err := NewFromConfig(&config.LLMConfig{
		Primary:   config.LLMProviderConfig{Provider: "stub-a", APIKey: "k1"},
		Secondary: config.LLMProviderConfig{Provider: "stub-b", APIKey: "k2"},
	})
	require.NoError(t, err)

	fallback, ok := model.(*FallbackModel)
	require.True(t, ok)
	assert.Len(t, fallback.models, 2)
	assert.Equal(t, []string{"stub-a", "stub-b"}, fallback.names)
}
