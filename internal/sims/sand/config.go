package sand

import "strconv"

// Config controls the sand simulation.
type Config struct {
	Width  int
	Height int

	Seed int64

	// Spawner is one of SpawnerNone, SpawnerSand or SpawnerWater.
	Spawner string
	// WaterFlow is the lateral reach of water painted or spawned by the sim.
	WaterFlow int
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		Width:     256,
		Height:    256,
		Seed:      1337,
		Spawner:   SpawnerSand,
		WaterFlow: DefaultWaterFlow,
	}
}

// FromMap populates the config from a string map (flag-style key/value pairs).
// Malformed values keep their defaults.
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	if v, ok := cfg["w"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Width = parsed
		}
	}
	if v, ok := cfg["h"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Height = parsed
		}
	}
	if v, ok := cfg["seed"]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Seed = parsed
		}
	}
	if v, ok := cfg["spawner"]; ok {
		if _, err := SpawnerRule(v, c.WaterFlow); err == nil {
			c.Spawner = v
		}
	}
	if v, ok := cfg["water_flow"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.WaterFlow = parsed
		}
	}
	return c
}
