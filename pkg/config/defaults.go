package config

/*
 * Parameters
 */

// Multiplier on static model size accounting for runtime memory overhead
var DefaultRuntimeOverheadFactor = 1.2

// Ceiling on recommended memory as a multiple of currently available memory
// (recommendations beyond a doubling are reported as not achievable)
var DefaultRecommendationCeilingFactor = 2.0

// Default target cache hit rate for memory recommendations
var DefaultTargetHitRate = 0.8

// DefaultPolicy returns a policy spec populated with the default constants.
func DefaultPolicy() *PolicySpec {
	return &PolicySpec{
		RuntimeOverheadFactor:       DefaultRuntimeOverheadFactor,
		RecommendationCeilingFactor: DefaultRecommendationCeilingFactor,
		TargetHitRate:               DefaultTargetHitRate,
	}
}
