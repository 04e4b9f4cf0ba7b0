package config

// Presets are named starting points for common binary setups.
var presets = map[string]func(*Config){
	"equal": func(c *Config) {
		// the defaults: an equal-mass binary
	},
	"unequal": func(c *Config) {
		c.NStar1 = 750
		c.NStar2 = 250
	},
	"wide": func(c *Config) {
		c.Separation = 6.0
		c.Steps = 20000
	},
	"tight": func(c *Config) {
		c.Separation = 0.8
		c.Dt = 0.0005
	},
	"quick": func(c *Config) {
		c.NStar1 = 100
		c.NStar2 = 100
		c.Steps = 500
	},
}

// GetPreset returns the named preset applied to the defaults, or nil if the
// name is unknown.
func GetPreset(name string) *Config {
	apply, ok := presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	apply(cfg)
	return cfg
}

// ListPresets returns the known preset names.
func ListPresets() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	return names
}
