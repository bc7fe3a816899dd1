package planner

// Result-mapping field names, in the order callers should iterate them.
// Mapping() returns a fresh map keyed by these names on every call.
var (
	HitRateFields = []string{
		"hit_rate",
		"avg_cached_conversations",
		"cache_utilization",
		"max_cached_tokens",
		"active_conversations",
	}

	MetricsFields = []string{
		"hit_rate",
		"avg_cached_conversations",
		"cache_utilization",
		"max_cached_tokens",
		"active_conversations",
		"memory_per_token_bytes",
		"model_memory_gb",
		"cache_memory_gb",
		"derived_qps",
		"tokens_per_second",
		"cache_hits_per_second",
		"memory_efficiency",
	}

	RecommendationFields = []string{
		"recommended_memory_gb",
		"current_hit_rate",
		"target_hit_rate",
		"additional_memory_needed_gb",
		"achievable",
	}
)

// Mapping returns the hit-rate solution as named numeric fields.
func (m *HitRateMetrics) Mapping() map[string]float64 {
	return map[string]float64{
		"hit_rate":                 m.HitRate,
		"avg_cached_conversations": m.AvgCachedConversations,
		"cache_utilization":        m.CacheUtilization,
		"max_cached_tokens":        float64(m.MaxCachedTokens),
		"active_conversations":     m.ActiveConversations,
	}
}

// Mapping returns the detailed metrics as named numeric fields.
func (m *Metrics) Mapping() map[string]float64 {
	fields := m.HitRateMetrics.Mapping()
	fields["memory_per_token_bytes"] = m.MemoryPerTokenBytes
	fields["model_memory_gb"] = m.ModelMemoryGB
	fields["cache_memory_gb"] = m.CacheMemoryGB
	fields["derived_qps"] = m.DerivedQPS
	fields["tokens_per_second"] = m.TokensPerSecond
	fields["cache_hits_per_second"] = m.CacheHitsPerSecond
	fields["memory_efficiency"] = m.MemoryEfficiency
	return fields
}

// Mapping returns the recommendation as named numeric fields;
// achievable is encoded as 0 or 1.
func (r *Recommendation) Mapping() map[string]float64 {
	achievable := 0.0
	if r.Achievable {
		achievable = 1.0
	}
	return map[string]float64{
		"recommended_memory_gb":       r.RecommendedMemoryGB,
		"current_hit_rate":            r.CurrentHitRate,
		"target_hit_rate":             r.TargetHitRate,
		"additional_memory_needed_gb": r.AdditionalMemoryNeededGB,
		"achievable":                  achievable,
	}
}
