package config

import "sort"

var Presets = map[string]Params{
	"classic": {
		Length: 32 * 3.141592653589793, GridPoints: 128, Duration: 100, Dt: 0.25,
		Viscosity: 1.0, Epochs: 5000, LearningRate: 1e-3,
	},
	"chaotic": {
		Length: 64 * 3.141592653589793, GridPoints: 256, Duration: 200, Dt: 0.25,
		Viscosity: 1.0, Epochs: 10000, LearningRate: 5e-4,
	},
	"mild": {
		Length: 22, GridPoints: 64, Duration: 50, Dt: 0.5,
		Viscosity: 1.0, Epochs: 3000, LearningRate: 1e-3,
	},
	"long": {
		Length: 32 * 3.141592653589793, GridPoints: 128, Duration: 400, Dt: 0.5,
		Viscosity: 1.0, Epochs: 20000, LearningRate: 2e-4,
	},
}

func GetPreset(name string) (Params, bool) {
	p, ok := Presets[name]
	return p, ok
}

// ListPresets returns preset names in stable order.
func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
