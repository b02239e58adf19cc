package ai

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mvhoek/wired/internal/config"
)

func testConfig(vision bool) *config.Config {
	return &config.Config{
		OllamaHost: "http://localhost:11434",
		Model:      "test-model",
		Persona:    "test persona",
		Variant:    config.Variant{Name: "test", Vision: vision},
	}
}

func TestNewTextVariantSkipsVisionClient(t *testing.T) {
	res, err := New(Params{Config: testConfig(false)})

	require.NoError(t, err)
	require.NotNil(t, res.Querier)
	require.Nil(t, res.Vision)
}

func TestNewVisionVariantBuildsBothClients(t *testing.T) {
	res, err := New(Params{Config: testConfig(true)})

	require.NoError(t, err)
	require.NotNil(t, res.Querier)
	require.NotNil(t, res.Vision)
}
