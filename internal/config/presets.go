package config

import "sort"

func rate(r float64) *float64 { return &r }

var Presets = map[string]*Config{
	"notebook": {
		Name: "notebook", N0: 1, DoublingTime: 0.5, Dt: 0.01, Duration: 5,
	},
	"coarse": {
		Name: "coarse", N0: 1, DoublingTime: 0.5, Dt: 0.1, Duration: 5,
	},
	"fine": {
		Name: "fine", N0: 1, DoublingTime: 0.5, Dt: 0.001, Duration: 5,
	},
	"decay": {
		Name: "decay", N0: 100, DoublingTime: -1, Dt: 0.05, Duration: 10,
	},
	"flat": {
		Name: "flat", N0: 10, Rate: rate(0), Dt: 0.1, Duration: 2,
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg.Clone()
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
