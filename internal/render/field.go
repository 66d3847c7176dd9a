package render

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"sort"
)

var (
	ErrNoData    = errors.New("render: no simulation data")
	ErrBadShape  = errors.New("render: field shape does not match axes")
	ErrNonFinite = errors.New("render: field contains NaN or Inf")
)

// Field is the KS solution as the backend reports it: u[t][x] on a spatial
// grid X over time axis T, plus the parameters of the run.
type Field struct {
	X      []float64          `json:"x"`
	T      []float64          `json:"t"`
	U      [][]float64        `json:"u"`
	Params map[string]float64 `json:"params,omitempty"`
}

// Decode parses and checks a raw payload.
func Decode(raw json.RawMessage) (*Field, error) {
	if len(raw) == 0 {
		return nil, ErrNoData
	}
	var f Field
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("render: decode field: %w", err)
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

func (f *Field) Validate() error {
	if len(f.X) == 0 || len(f.T) == 0 {
		return ErrNoData
	}
	if len(f.U) != len(f.T) {
		return fmt.Errorf("%w: %d rows for %d times", ErrBadShape, len(f.U), len(f.T))
	}
	for i, row := range f.U {
		if len(row) != len(f.X) {
			return fmt.Errorf("%w: row %d has %d values for %d points", ErrBadShape, i, len(row), len(f.X))
		}
		for _, v := range row {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return ErrNonFinite
			}
		}
	}
	return nil
}

func (f *Field) Frames() int { return len(f.T) }

// Slice returns u(x) at frame k, clamped to the valid range.
func (f *Field) Slice(k int) []float64 {
	return f.U[clamp(k, 0, len(f.U)-1)]
}

// Range returns the min and max of u over the whole field.
func (f *Field) Range() (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, row := range f.U {
		for _, v := range row {
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
	}
	return lo, hi
}

// ParamKeys returns parameter names sorted.
func (f *Field) ParamKeys() []string {
	keys := make([]string, 0, len(f.Params))
	for k := range f.Params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
