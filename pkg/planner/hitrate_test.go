package planner

import (
	"math"
	"testing"

	"github.com/llm-d-incubation/kvcache-capacity-planner/pkg/config"
)

func TestConversationHitRateStarved(t *testing.T) {
	// weights plus overhead exceed available memory: zero result, not an error
	system := &config.SystemSpec{AvailableMemoryGB: 16}
	metrics, err := ConversationHitRate(testModel(), system, testTraffic(), nil)
	if err != nil {
		t.Fatalf("ConversationHitRate() error = %v", err)
	}
	if metrics.HitRate != 0 || metrics.CacheUtilization != 0 ||
		metrics.MaxCachedTokens != 0 || metrics.ActiveConversations != 0 ||
		metrics.AvgCachedConversations != 0 {
		t.Errorf("starved cache should zero all fields, got %s", metrics)
	}
}

func TestConversationHitRateResident(t *testing.T) {
	// 200 GiB leaves room for ~146 conversations, demand is 100:
	// every active conversation is resident and only first rounds miss
	system := &config.SystemSpec{AvailableMemoryGB: 200}
	metrics, err := ConversationHitRate(testModel(), system, testTraffic(), nil)
	if err != nil {
		t.Fatalf("ConversationHitRate() error = %v", err)
	}

	if want := 1.0 - 1.0/5.0; metrics.HitRate != want {
		t.Errorf("HitRate = %v, want %v", metrics.HitRate, want)
	}
	if metrics.ActiveConversations != 100 {
		t.Errorf("ActiveConversations = %v, want 100 (2/sec * 50sec lifetime)", metrics.ActiveConversations)
	}
	if metrics.AvgCachedConversations != 100 {
		t.Errorf("AvgCachedConversations = %v, want 100 (all resident)", metrics.AvgCachedConversations)
	}
	if metrics.CacheUtilization >= 1 || metrics.CacheUtilization <= 0 {
		t.Errorf("CacheUtilization = %v, want in (0, 1)", metrics.CacheUtilization)
	}
}

func TestConversationHitRateContended(t *testing.T) {
	// 80 GiB caches ~50 conversations against 100 active: the
	// intra-conversation term is scaled by the capacity ratio
	system := &config.SystemSpec{AvailableMemoryGB: 80}
	metrics, err := ConversationHitRate(testModel(), system, testTraffic(), nil)
	if err != nil {
		t.Fatalf("ConversationHitRate() error = %v", err)
	}

	maxCachedConversations := float64(metrics.MaxCachedTokens) / (5.0 * 512.0)
	want := (1.0 - 1.0/5.0) * maxCachedConversations / 100.0
	if math.Abs(metrics.HitRate-want) > 1e-12 {
		t.Errorf("HitRate = %v, want %v", metrics.HitRate, want)
	}
	if metrics.HitRate >= 1.0-1.0/5.0 {
		t.Errorf("contended HitRate = %v, should be below the resident rate", metrics.HitRate)
	}
	if metrics.CacheUtilization != 1.0 {
		t.Errorf("CacheUtilization = %v, want 1.0 under contention", metrics.CacheUtilization)
	}
	if math.Abs(metrics.AvgCachedConversations-maxCachedConversations) > 1e-12 {
		t.Errorf("AvgCachedConversations = %v, want capacity %v", metrics.AvgCachedConversations, maxCachedConversations)
	}
}

func TestConversationHitRateBounds(t *testing.T) {
	// hit rate and utilization stay in [0, 1] across a spread of loads
	tests := []struct {
		name        string
		availableGB float64
		arrivalRate float64
		convLength  float64
	}{
		{"idle system", 80, 0, 5},
		{"light load", 80, 0.01, 5},
		{"heavy load", 80, 1000, 5},
		{"single round conversations", 80, 2, 1},
		{"long conversations", 80, 2, 500},
		{"tiny memory", 17, 2, 5},
		{"huge memory", 4096, 2, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			system := &config.SystemSpec{AvailableMemoryGB: tt.availableGB}
			traffic := testTraffic()
			traffic.ConversationArrivalRate = tt.arrivalRate
			traffic.AvgConversationLength = tt.convLength

			metrics, err := ConversationHitRate(testModel(), system, traffic, nil)
			if err != nil {
				t.Fatalf("ConversationHitRate() error = %v", err)
			}
			if metrics.HitRate < 0 || metrics.HitRate > 1 {
				t.Errorf("HitRate = %v outside [0, 1]", metrics.HitRate)
			}
			if metrics.CacheUtilization < 0 || metrics.CacheUtilization > 1 {
				t.Errorf("CacheUtilization = %v outside [0, 1]", metrics.CacheUtilization)
			}
		})
	}
}

func TestConversationHitRateSingleRound(t *testing.T) {
	// one-round conversations never revisit cached state: hit rate zero
	system := &config.SystemSpec{AvailableMemoryGB: 200}
	traffic := testTraffic()
	traffic.AvgConversationLength = 1

	metrics, err := ConversationHitRate(testModel(), system, traffic, nil)
	if err != nil {
		t.Fatalf("ConversationHitRate() error = %v", err)
	}
	if metrics.HitRate != 0 {
		t.Errorf("HitRate = %v, want 0 for single-round conversations", metrics.HitRate)
	}
}

func TestConversationHitRateIdempotent(t *testing.T) {
	system := &config.SystemSpec{AvailableMemoryGB: 80}
	first, err := ConversationHitRate(testModel(), system, testTraffic(), nil)
	if err != nil {
		t.Fatalf("ConversationHitRate() error = %v", err)
	}
	second, err := ConversationHitRate(testModel(), system, testTraffic(), nil)
	if err != nil {
		t.Fatalf("ConversationHitRate() error = %v", err)
	}
	if *first != *second {
		t.Errorf("repeated calls differ: %s vs %s", first, second)
	}
	if first == second {
		t.Error("results should be fresh values, not a shared instance")
	}
}
