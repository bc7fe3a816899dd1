package planner

import (
	"fmt"

	"github.com/llm-d-incubation/kvcache-capacity-planner/pkg/config"
)

// Hit-rate model solution data
type HitRateMetrics struct {
	HitRate                float64 // expected fraction of requests served from cache [0, 1]
	AvgCachedConversations float64 // average number of conversations resident in cache
	CacheUtilization       float64 // fraction of cache capacity in use [0, 1]
	MaxCachedTokens        int64   // token capacity of the cache
	ActiveConversations    float64 // average number of concurrently active conversations
}

// ConversationHitRate estimates the cache hit rate at the conversation
// level, blending an intra-conversation term with an inter-conversation
// capacity term:
//
//   - the first round of any conversation is a cold miss, so a fully
//     resident conversation hits at rate 1 - 1/avgConversationLength;
//   - the number of concurrently active conversations follows Little's
//     Law (arrival rate times conversation lifetime);
//   - when active conversations exceed cache capacity, only the fraction
//     maxCached/active survives LRU eviction pressure, scaling the
//     intra-conversation term down.
//
// Memory starvation (zero token capacity) is a normal zero result.
func ConversationHitRate(model *config.ModelSpec, system *config.SystemSpec,
	traffic *config.TrafficSpec, policy *config.PolicySpec) (*HitRateMetrics, error) {

	maxCachedTokens, err := MaxCachedTokens(model, system, policy)
	if err != nil {
		return nil, err
	}
	if maxCachedTokens <= 0 {
		return &HitRateMetrics{}, nil
	}

	// token budget expressed as a conversation-capacity budget
	avgTokensPerConversation := traffic.AvgConversationLength * float64(traffic.AvgSequenceLength)
	maxCachedConversations := float64(maxCachedTokens) / avgTokensPerConversation

	// Little's Law: conversations resident in the system
	conversationLifetime := traffic.AvgConversationLength * traffic.WithinConversationInterval
	activeConversations := traffic.ConversationArrivalRate * conversationLifetime

	intraConversationHit := 1.0 - 1.0/traffic.AvgConversationLength
	var hitRate float64
	if activeConversations <= maxCachedConversations {
		// every active conversation is cache resident
		hitRate = intraConversationHit
	} else {
		// only a fraction survives eviction pressure
		hitRate = intraConversationHit * (maxCachedConversations / activeConversations)
	}

	cacheUtilization := min(activeConversations/maxCachedConversations, 1.0)

	return &HitRateMetrics{
		HitRate:                min(max(hitRate, 0.0), 1.0),
		AvgCachedConversations: min(activeConversations, maxCachedConversations),
		CacheUtilization:       cacheUtilization,
		MaxCachedTokens:        maxCachedTokens,
		ActiveConversations:    activeConversations,
	}, nil
}

func (m *HitRateMetrics) String() string {
	return fmt.Sprintf("{hitRate=%.3f, cachedConv=%.1f, util=%.3f, maxTokens=%d, activeConv=%.1f}",
		m.HitRate, m.AvgCachedConversations, m.CacheUtilization,
		m.MaxCachedTokens, m.ActiveConversations)
}
