package fx

import "math"

// Param is a named, bounded control owned by one effect.
// The record does not clamp; the owning effect clamps on SetParam.
type Param struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
}

// NewParam creates a parameter holding its default value
func NewParam(name string, def, min, max float64) Param {
	return Param{Name: name, Value: def, Min: min, Max: max}
}

// Clamp returns v limited to the parameter range. NaN becomes Min.
func (p Param) Clamp(v float64) float64 {
	if math.IsNaN(v) || v < p.Min {
		return p.Min
	}
	if v > p.Max {
		return p.Max
	}
	return v
}

// Normalized maps the current value into 0-1 (for sliders)
func (p Param) Normalized() float64 {
	if p.Max <= p.Min {
		return 0
	}
	return (p.Value - p.Min) / (p.Max - p.Min)
}
