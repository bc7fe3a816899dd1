package planner

import (
	"fmt"

	"github.com/llm-d-incubation/kvcache-capacity-planner/pkg/config"
)

// Detailed planning metrics: the hit-rate solution plus memory
// bookkeeping and derived throughput
type Metrics struct {
	HitRateMetrics

	MemoryPerTokenBytes float64 // KV-cache cost per token (bytes, may be fractional)
	ModelMemoryGB       float64 // model weights including runtime overhead (GiB)
	CacheMemoryGB       float64 // memory consumed by a full cache (GiB)
	DerivedQPS          float64 // aggregate request rate (requests/sec)
	TokensPerSecond     float64 // aggregate token throughput (tokens/sec)
	CacheHitsPerSecond  float64 // tokens served from cache per second
	MemoryEfficiency    float64 // alias of cache utilization
}

// DetailedMetrics composes the per-token, throughput, capacity, and
// hit-rate calculations into one result. Pure composition, no new
// modeling.
func DetailedMetrics(model *config.ModelSpec, system *config.SystemSpec,
	traffic *config.TrafficSpec, policy *config.PolicySpec) (*Metrics, error) {

	basic, err := ConversationHitRate(model, system, traffic, policy)
	if err != nil {
		return nil, err
	}
	memoryPerToken, err := KVCacheBytesPerToken(model)
	if err != nil {
		return nil, err
	}
	policy = policyOrDefault(policy)

	qps := DerivedQPS(traffic)
	tokensPerSecond := qps * float64(traffic.AvgSequenceLength)

	return &Metrics{
		HitRateMetrics:      *basic,
		MemoryPerTokenBytes: memoryPerToken,
		ModelMemoryGB:       model.ModelSizeGB * policy.RuntimeOverheadFactor,
		CacheMemoryGB:       float64(basic.MaxCachedTokens) * memoryPerToken / GiB,
		DerivedQPS:          qps,
		TokensPerSecond:     tokensPerSecond,
		CacheHitsPerSecond:  tokensPerSecond * basic.HitRate,
		MemoryEfficiency:    basic.CacheUtilization,
	}, nil
}

func (m *Metrics) String() string {
	return fmt.Sprintf("{%s, bytes/token=%.1f, modelMem=%.1fGB, cacheMem=%.1fGB, qps=%.2f, tokens/sec=%.1f, hits/sec=%.1f}",
		&m.HitRateMetrics, m.MemoryPerTokenBytes, m.ModelMemoryGB, m.CacheMemoryGB,
		m.DerivedQPS, m.TokensPerSecond, m.CacheHitsPerSecond)
}
