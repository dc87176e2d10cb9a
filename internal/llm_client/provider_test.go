package llm_client

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitRejectsUnknownBackend(t *testing.T) {
	err := Init(Config{Backend: "claude"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported LLM backend")
}

func TestInitOllamaSelectsBackend(t *testing.T) {
	require.NoError(t, Init(Config{Backend: "ollama"}))

	assert.Equal(t, "ollama", ActiveBackend())
	require.NotNil(t, Active())
	assert.Equal(t, "phi4:latest", Active().DefaultModel())
}
