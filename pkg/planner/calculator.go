// Package planner estimates KV-cache hit rates and memory requirements
// for LLM inference servers from closed-form analytical formulas. It is
// a capacity-planning calculator: it never stores tokens or observes
// live traffic, it only derives numbers from configuration records.
//
// All calculations are pure functions over immutable inputs and may be
// called concurrently without coordination.
package planner

import (
	"github.com/llm-d-incubation/kvcache-capacity-planner/pkg/config"
	"github.com/llm-d-incubation/kvcache-capacity-planner/pkg/dtype"
)

// bytes per gibibyte
const GiB = float64(1 << 30)

// KVCacheBytesPerToken calculates the memory occupied by one token in the
// KV cache. Each layer stores a Key and a Value tensor per token, hence
// the factor 2. The result may be fractional for sub-byte cache dtypes.
func KVCacheBytesPerToken(model *config.ModelSpec) (float64, error) {
	width, err := dtype.KVCacheWidth(model.KVCacheDtype)
	if err != nil {
		return 0, err
	}
	return 2 * float64(model.NumLayers) * float64(model.NumKVHeads) *
		float64(model.HeadDim) * width, nil
}

// DerivedQPS estimates the aggregate request rate of the system from the
// traffic statistics using Little's Law: each arriving conversation
// generates avgConversationLength requests over its lifetime, so in
// steady state the request rate is the conversation arrival rate times
// the requests per conversation.
//
// This is the formula used by the metrics and optimizer aggregators.
// See PerIntervalQPS for the alternative interval-based derivation.
func DerivedQPS(traffic *config.TrafficSpec) float64 {
	return traffic.ConversationArrivalRate * traffic.AvgConversationLength
}

// PerIntervalQPS is an alternative throughput derivation that divides the
// per-request token load by the think time between rounds. It produces
// materially different magnitudes than DerivedQPS and is NOT used by the
// aggregators; it is exposed for callers who model request pacing rather
// than conversation population.
func PerIntervalQPS(traffic *config.TrafficSpec) float64 {
	return traffic.ConversationArrivalRate * float64(traffic.AvgSequenceLength) /
		traffic.WithinConversationInterval
}

// TokensPerSecond derives aggregate token throughput from the request
// rate given by DerivedQPS.
func TokensPerSecond(traffic *config.TrafficSpec) float64 {
	return DerivedQPS(traffic) * float64(traffic.AvgSequenceLength)
}

// MaxCachedTokens calculates how many tokens fit in the memory left for
// the KV cache after reserving the model weights inflated by the runtime
// overhead factor. A starved cache yields zero tokens, not an error.
// Fractional tokens are truncated toward zero.
func MaxCachedTokens(model *config.ModelSpec, system *config.SystemSpec,
	policy *config.PolicySpec) (int64, error) {

	bytesPerToken, err := KVCacheBytesPerToken(model)
	if err != nil {
		return 0, err
	}
	policy = policyOrDefault(policy)

	availableForCache := system.AvailableMemoryGB*GiB -
		model.ModelSizeGB*GiB*policy.RuntimeOverheadFactor
	if availableForCache <= 0 {
		return 0, nil
	}
	return int64(availableForCache / bytesPerToken), nil
}

// policy to use when the caller passes nil
func policyOrDefault(policy *config.PolicySpec) *config.PolicySpec {
	if policy == nil {
		return config.DefaultPolicy()
	}
	return policy
}
