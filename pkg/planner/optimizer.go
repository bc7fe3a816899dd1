package planner

import (
	"fmt"

	"github.com/llm-d-incubation/kvcache-capacity-planner/pkg/config"
)

// Memory recommendation for a target hit rate
type Recommendation struct {
	RecommendedMemoryGB      float64 // total memory to provision (GiB)
	CurrentHitRate           float64 // hit rate at the configured memory
	TargetHitRate            float64 // requested hit rate
	AdditionalMemoryNeededGB float64 // recommended minus available (GiB, >= 0)
	Achievable               bool    // recommendation within the ceiling factor
}

// OptimizeMemoryAllocation recommends the memory needed to reach the
// target hit rate. A non-positive target selects the policy default.
//
// If the current configuration already meets the target, the current
// memory is returned unchanged. Otherwise the hit-rate model is
// inverted heuristically: the target hit rate is taken as a direct
// proxy for the fraction of active conversations that must be cache
// resident, which is back-converted into tokens and memory. This is an
// approximation of the forward model, not its exact algebraic inverse;
// in particular it ignores the intra-conversation miss term of the
// capacity-bound branch. A recommendation is reported achievable only
// when it stays within the policy ceiling factor of the currently
// available memory.
func OptimizeMemoryAllocation(model *config.ModelSpec, system *config.SystemSpec,
	traffic *config.TrafficSpec, policy *config.PolicySpec,
	targetHitRate float64) (*Recommendation, error) {

	policy = policyOrDefault(policy)
	if targetHitRate <= 0 {
		targetHitRate = policy.TargetHitRate
	}

	current, err := DetailedMetrics(model, system, traffic, policy)
	if err != nil {
		return nil, err
	}

	if current.HitRate >= targetHitRate {
		return &Recommendation{
			RecommendedMemoryGB: system.AvailableMemoryGB,
			CurrentHitRate:      current.HitRate,
			TargetHitRate:       targetHitRate,
			Achievable:          true,
		}, nil
	}

	// conversations that must be resident to sustain the target
	conversationLifetime := traffic.AvgConversationLength * traffic.WithinConversationInterval
	activeConversations := traffic.ConversationArrivalRate * conversationLifetime
	requiredCachedConversations := activeConversations * targetHitRate

	avgTokensPerConversation := traffic.AvgConversationLength * float64(traffic.AvgSequenceLength)
	requiredTokens := requiredCachedConversations * avgTokensPerConversation
	requiredCacheMemoryGB := requiredTokens * current.MemoryPerTokenBytes / GiB

	requiredTotalMemoryGB := requiredCacheMemoryGB + model.ModelSizeGB*policy.RuntimeOverheadFactor

	return &Recommendation{
		RecommendedMemoryGB:      requiredTotalMemoryGB,
		CurrentHitRate:           current.HitRate,
		TargetHitRate:            targetHitRate,
		AdditionalMemoryNeededGB: max(0, requiredTotalMemoryGB-system.AvailableMemoryGB),
		Achievable:               requiredTotalMemoryGB <= system.AvailableMemoryGB*policy.RecommendationCeilingFactor,
	}, nil
}

func (r *Recommendation) String() string {
	return fmt.Sprintf("{recommended=%.1fGB, current=%.3f, target=%.3f, additional=%.1fGB, achievable=%t}",
		r.RecommendedMemoryGB, r.CurrentHitRate, r.TargetHitRate,
		r.AdditionalMemoryNeededGB, r.Achievable)
}
