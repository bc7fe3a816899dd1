package dtype

import (
	"errors"
	"fmt"
)

// Named element-type variant for model weights and KV-cache entries
type Dtype string

const (
	FP32 Dtype = "fp32" // 32-bit float
	FP16 Dtype = "fp16" // 16-bit float
	BF16 Dtype = "bf16" // 16-bit brain float
	FP8  Dtype = "fp8"  // 8-bit float
	INT8 Dtype = "int8" // 8-bit integer
	INT4 Dtype = "int4" // 4-bit integer
)

// variant has no entry in the queried width table
var ErrUnsupportedDtype = errors.New("unsupported dtype")

// byte width per scalar element of model weight dtypes
var modelWidths = map[Dtype]float64{
	FP32: 4,
	FP16: 2,
	BF16: 2,
	FP8:  1,
	INT8: 1,
	INT4: 0.5,
}

// byte width per scalar element of KV-cache dtypes
// (sub-byte variants are not supported for cache entries)
var kvCacheWidths = map[Dtype]float64{
	FP32: 4,
	FP16: 2,
	BF16: 2,
	FP8:  1,
	INT8: 1,
}

// ModelWidth returns the byte width of a model-weights element type.
// Widths may be fractional (0.5 for int4).
func ModelWidth(d Dtype) (float64, error) {
	w, ok := modelWidths[d]
	if !ok {
		return 0, fmt.Errorf("%w: %q not in model width table", ErrUnsupportedDtype, d)
	}
	return w, nil
}

// KVCacheWidth returns the byte width of a KV-cache element type.
func KVCacheWidth(d Dtype) (float64, error) {
	w, ok := kvCacheWidths[d]
	if !ok {
		return 0, fmt.Errorf("%w: %q not in kv-cache width table", ErrUnsupportedDtype, d)
	}
	return w, nil
}

func (d Dtype) String() string {
	return string(d)
}
