package config

import (
	"errors"
	"fmt"

	"github.com/llm-d-incubation/kvcache-capacity-planner/pkg/dtype"
)

// configuration record failed validation at construction
var ErrInvalidSpec = errors.New("invalid spec")

// Specifications of transformer model geometry relevant to KV-cache sizing
type ModelSpec struct {
	Name              string      `json:"name" yaml:"name"`                           // model name (optional, for reporting)
	NumLayers         int         `json:"numLayers" yaml:"numLayers"`                 // number of transformer layers
	NumAttentionHeads int         `json:"numAttentionHeads" yaml:"numAttentionHeads"` // number of attention heads
	NumKVHeads        int         `json:"numKVHeads" yaml:"numKVHeads"`               // number of key/value heads (equal to attention heads for MHA, smaller for GQA)
	HeadDim           int         `json:"headDim" yaml:"headDim"`                     // dimension per head
	ModelDtype        dtype.Dtype `json:"modelDtype" yaml:"modelDtype"`               // element type of model weights
	KVCacheDtype      dtype.Dtype `json:"kvCacheDtype" yaml:"kvCacheDtype"`           // element type of KV-cache entries
	ModelSizeGB       float64     `json:"modelSizeGB" yaml:"modelSizeGB"`             // resident model size (GiB)
}

// Specifications of host resources available to the inference process
type SystemSpec struct {
	AvailableMemoryGB float64 `json:"availableMemoryGB" yaml:"availableMemoryGB"` // total memory available (GiB)
}

// Specifications of conversational traffic statistics
type TrafficSpec struct {
	AvgConversationLength      float64 `json:"avgConversationLength" yaml:"avgConversationLength"`           // average conversation length (request rounds, >= 1)
	ConversationArrivalRate    float64 `json:"conversationArrivalRate" yaml:"conversationArrivalRate"`       // new conversation arrival rate (conversations/sec)
	WithinConversationInterval float64 `json:"withinConversationInterval" yaml:"withinConversationInterval"` // average think time between rounds (sec)
	AvgSequenceLength          int     `json:"avgSequenceLength" yaml:"avgSequenceLength"`                   // average sequence length per request (tokens)
}

// Policy constants of the capacity model, overridable for sensitivity analysis
type PolicySpec struct {
	RuntimeOverheadFactor       float64 `json:"runtimeOverheadFactor" yaml:"runtimeOverheadFactor"`             // multiplier on static model size for live residency
	RecommendationCeilingFactor float64 `json:"recommendationCeilingFactor" yaml:"recommendationCeilingFactor"` // max recommended memory as multiple of available memory
	TargetHitRate               float64 `json:"targetHitRate" yaml:"targetHitRate"`                             // default target hit rate for recommendations
}

// Check validity of model geometry
func (s *ModelSpec) Check() error {
	if s.NumLayers <= 0 || s.NumAttentionHeads <= 0 || s.NumKVHeads <= 0 ||
		s.HeadDim <= 0 || s.ModelSizeGB <= 0 {
		return fmt.Errorf("%w: non-positive geometry %s", ErrInvalidSpec, s)
	}
	if s.NumKVHeads > s.NumAttentionHeads {
		return fmt.Errorf("%w: numKVHeads=%d exceeds numAttentionHeads=%d",
			ErrInvalidSpec, s.NumKVHeads, s.NumAttentionHeads)
	}
	if _, err := dtype.ModelWidth(s.ModelDtype); err != nil {
		return err
	}
	if _, err := dtype.KVCacheWidth(s.KVCacheDtype); err != nil {
		return err
	}
	return nil
}

// Check validity of system resources
func (s *SystemSpec) Check() error {
	if s.AvailableMemoryGB < 0 {
		return fmt.Errorf("%w: negative availableMemoryGB=%v", ErrInvalidSpec, s.AvailableMemoryGB)
	}
	return nil
}

// Check validity of traffic statistics.
// A conversation length below one round makes the per-round miss term
// 1/avgConversationLength meaningless, hence the >= 1 requirement.
func (s *TrafficSpec) Check() error {
	if s.AvgConversationLength < 1 {
		return fmt.Errorf("%w: avgConversationLength=%v, must be >= 1",
			ErrInvalidSpec, s.AvgConversationLength)
	}
	if s.ConversationArrivalRate < 0 || s.WithinConversationInterval <= 0 || s.AvgSequenceLength <= 0 {
		return fmt.Errorf("%w: invalid traffic %s", ErrInvalidSpec, s)
	}
	return nil
}

// Check validity of policy constants
func (s *PolicySpec) Check() error {
	if s.RuntimeOverheadFactor < 1 || s.RecommendationCeilingFactor < 1 {
		return fmt.Errorf("%w: overhead=%v, ceiling=%v, factors must be >= 1",
			ErrInvalidSpec, s.RuntimeOverheadFactor, s.RecommendationCeilingFactor)
	}
	if s.TargetHitRate <= 0 || s.TargetHitRate > 1 {
		return fmt.Errorf("%w: targetHitRate=%v outside (0, 1]", ErrInvalidSpec, s.TargetHitRate)
	}
	return nil
}

/*
 * toString() functions
 */

func (s *ModelSpec) String() string {
	return fmt.Sprintf("{name=%s, layers=%d, heads=%d, kvHeads=%d, headDim=%d, dtype=%s, kvDtype=%s, size=%.1fGB}",
		s.Name, s.NumLayers, s.NumAttentionHeads, s.NumKVHeads, s.HeadDim,
		s.ModelDtype, s.KVCacheDtype, s.ModelSizeGB)
}

func (s *SystemSpec) String() string {
	return fmt.Sprintf("{availableMemory=%.1fGB}", s.AvailableMemoryGB)
}

func (s *TrafficSpec) String() string {
	return fmt.Sprintf("{convLength=%.1f, arrivalRate=%.3f/sec, interval=%.1fsec, seqLength=%d}",
		s.AvgConversationLength, s.ConversationArrivalRate,
		s.WithinConversationInterval, s.AvgSequenceLength)
}

func (s *PolicySpec) String() string {
	return fmt.Sprintf("{overhead=%.2fx, ceiling=%.2fx, targetHitRate=%.2f}",
		s.RuntimeOverheadFactor, s.RecommendationCeilingFactor, s.TargetHitRate)
}
