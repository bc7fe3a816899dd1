package planner

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/llm-d-incubation/kvcache-capacity-planner/pkg/config"
)

// One point of a memory sweep
type MemorySweepPoint struct {
	AvailableMemoryGB float64 // memory evaluated at this point (GiB)
	Metrics           *Metrics
}

// One point of a target-hit-rate sweep
type TargetSweepPoint struct {
	TargetHitRate  float64 // target evaluated at this point
	Recommendation *Recommendation
}

// SweepAvailableMemory evaluates the detailed metrics across an evenly
// spaced grid of available-memory sizes, holding model, traffic, and
// policy fixed. Points are independent of each other.
func SweepAvailableMemory(model *config.ModelSpec, traffic *config.TrafficSpec,
	policy *config.PolicySpec, minGB, maxGB float64, points int) ([]MemorySweepPoint, error) {

	if points < 2 || minGB < 0 || maxGB <= minGB {
		return nil, fmt.Errorf("invalid sweep range [%v, %v] with %d points", minGB, maxGB, points)
	}
	grid := floats.Span(make([]float64, points), minGB, maxGB)

	result := make([]MemorySweepPoint, 0, points)
	for _, memGB := range grid {
		system := &config.SystemSpec{AvailableMemoryGB: memGB}
		metrics, err := DetailedMetrics(model, system, traffic, policy)
		if err != nil {
			return nil, err
		}
		result = append(result, MemorySweepPoint{AvailableMemoryGB: memGB, Metrics: metrics})
	}
	return result, nil
}

// SweepTargetHitRate evaluates memory recommendations across an evenly
// spaced grid of target hit rates at the configured memory.
func SweepTargetHitRate(model *config.ModelSpec, system *config.SystemSpec,
	traffic *config.TrafficSpec, policy *config.PolicySpec,
	minTarget, maxTarget float64, points int) ([]TargetSweepPoint, error) {

	if points < 2 || minTarget <= 0 || maxTarget > 1 || maxTarget <= minTarget {
		return nil, fmt.Errorf("invalid target range (%v, %v] with %d points", minTarget, maxTarget, points)
	}
	grid := floats.Span(make([]float64, points), minTarget, maxTarget)

	result := make([]TargetSweepPoint, 0, points)
	for _, target := range grid {
		recommendation, err := OptimizeMemoryAllocation(model, system, traffic, policy, target)
		if err != nil {
			return nil, err
		}
		result = append(result, TargetSweepPoint{TargetHitRate: target, Recommendation: recommendation})
	}
	return result, nil
}
