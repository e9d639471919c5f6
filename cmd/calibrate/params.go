package main

import (
	"github.com/pthm-cable/drift/config"
)

// ParamSpec defines a single calibrated parameter.
type ParamSpec struct {
	Name string  // Human-readable name
	Path string  // Config path for output
	Min  float64 // Lower bound
	Max  float64 // Upper bound
}

// ParamVector holds the calibrated parameters, normalized to [0, 1] for the optimizer.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the damping/drift parameter set.
func NewParamVector() *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			{Name: "damping", Path: "physics.damping", Min: 0.8, Max: 0.9999},
			{Name: "drift", Path: "physics.drift", Min: -0.02, Max: 0},
		},
	}
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

// FromConfig reads the current parameter values.
func (pv *ParamVector) FromConfig(cfg *config.Config) []float64 {
	return []float64{cfg.Physics.Damping, cfg.Physics.Drift}
}

// ApplyToConfig writes raw parameter values into cfg.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, raw []float64) {
	cfg.Physics.Damping = raw[0]
	cfg.Physics.Drift = raw[1]
}

// Normalize maps raw values into [0, 1].
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	out := make([]float64, len(raw))
	for i, s := range pv.Specs {
		out[i] = (raw[i] - s.Min) / (s.Max - s.Min)
	}
	return out
}

// Denormalize maps [0, 1] values back to raw values and clamps them to bounds.
func (pv *ParamVector) Denormalize(x []float64) []float64 {
	out := make([]float64, len(x))
	for i, s := range pv.Specs {
		v := s.Min + x[i]*(s.Max-s.Min)
		out[i] = min(max(v, s.Min), s.Max)
	}
	return out
}
