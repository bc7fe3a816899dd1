package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llm-d-incubation/kvcache-capacity-planner/pkg/dtype"
)

const scenarioYAML = `
model:
  name: llama-2-7b
  numLayers: 32
  numAttentionHeads: 32
  numKVHeads: 32
  headDim: 128
  modelDtype: fp16
  kvCacheDtype: fp16
  modelSizeGB: 14
system:
  availableMemoryGB: 80
traffic:
  avgConversationLength: 5
  conversationArrivalRate: 2
  withinConversationInterval: 10
  avgSequenceLength: 512
`

func TestParseScenario(t *testing.T) {
	scenario, err := ParseScenario([]byte(scenarioYAML))
	require.NoError(t, err)

	assert.Equal(t, "llama-2-7b", scenario.Model.Name)
	assert.Equal(t, 32, scenario.Model.NumLayers)
	assert.Equal(t, dtype.FP16, scenario.Model.KVCacheDtype)
	assert.Equal(t, 80.0, scenario.System.AvailableMemoryGB)
	assert.Equal(t, 5.0, scenario.Traffic.AvgConversationLength)
	assert.Equal(t, 512, scenario.Traffic.AvgSequenceLength)

	// missing policy section falls back to defaults
	require.NotNil(t, scenario.Policy)
	assert.Equal(t, DefaultRuntimeOverheadFactor, scenario.Policy.RuntimeOverheadFactor)
}

func TestParseScenarioPolicyOverride(t *testing.T) {
	withPolicy := scenarioYAML + `
policy:
  runtimeOverheadFactor: 1.5
  recommendationCeilingFactor: 3
  targetHitRate: 0.9
`
	scenario, err := ParseScenario([]byte(withPolicy))
	require.NoError(t, err)
	assert.Equal(t, 1.5, scenario.Policy.RuntimeOverheadFactor)
	assert.Equal(t, 3.0, scenario.Policy.RecommendationCeilingFactor)
	assert.Equal(t, 0.9, scenario.Policy.TargetHitRate)
}

func TestParseScenarioInvalid(t *testing.T) {
	_, err := ParseScenario([]byte("model: [not, a, mapping]"))
	assert.Error(t, err)

	bad := `
model:
  numLayers: 0
system:
  availableMemoryGB: 80
traffic:
  avgConversationLength: 5
  conversationArrivalRate: 2
  withinConversationInterval: 10
  avgSequenceLength: 512
`
	_, err = ParseScenario([]byte(bad))
	assert.ErrorIs(t, err, ErrInvalidSpec)
}

func TestReadScenario(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(scenarioYAML), 0o644))

	scenario, err := ReadScenario(path)
	require.NoError(t, err)
	assert.Equal(t, 14.0, scenario.Model.ModelSizeGB)

	_, err = ReadScenario(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
