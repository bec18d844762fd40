package config

import "sort"

// Presets groups named problems by kind ("scalar" or "system"). Fields a
// preset leaves zero are filled from DefaultConfig by GetPreset.
var Presets = map[string]map[string]*Config{
	"scalar": {
		"cubic": {
			Equation: 1, Method: "bisection", Left: -3, Right: -1, Estimate: 1e-4,
		},
		"cubic-newton": {
			Equation: 1, Method: "newton", Left: -3, Right: -1, Estimate: 1e-6,
		},
		"polynomial": {
			Equation: 0, Method: "bisection", Left: -1, Right: 0, Estimate: 1e-5,
		},
		"exp": {
			Equation: 2, Method: "newton", Left: 1, Right: 2, Estimate: 1e-6,
		},
		"exp-secant": {
			Equation: 2, Method: "secant", Left: 1, Right: 2, Estimate: 1e-6,
		},
		"sine": {
			Equation: 3, Method: "secant", Left: -1, Right: 0, Estimate: 1e-5,
		},
	},
	"system": {
		"circle": {
			System: SystemConfig{ID: 0, X0: 1, Y0: 1, Tolerance: 1e-4},
		},
		"circle-mirror": {
			System: SystemConfig{ID: 0, X0: -1, Y0: 1, Tolerance: 1e-4},
		},
		"quadratic": {
			System: SystemConfig{ID: 1, X0: 0.5, Y0: 0.5, Tolerance: 1e-5},
		},
		"trig": {
			System: SystemConfig{ID: 2, X0: 0, Y0: 0, Tolerance: 1e-5},
		},
	},
}

// GetPreset returns a fresh Config for the named preset, or nil.
func GetPreset(kind, name string) *Config {
	group, ok := Presets[kind]
	if !ok {
		return nil
	}
	p, ok := group[name]
	if !ok {
		return nil
	}

	cfg := DefaultConfig()
	if kind == "system" {
		cfg.System = p.System
		return cfg
	}
	cfg.Equation = p.Equation
	cfg.Method = p.Method
	cfg.Left, cfg.Right = p.Left, p.Right
	cfg.Estimate = p.Estimate
	return cfg
}

// ListPresets returns preset names for kind in sorted order.
func ListPresets(kind string) []string {
	group, ok := Presets[kind]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(group))
	for name := range group {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Kinds lists preset groups in sorted order.
func Kinds() []string {
	kinds := make([]string, 0, len(Presets))
	for k := range Presets {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}
