package sand

import "fmt"

// SpawnRule injects new cells into the next buffer once per tick, after
// movement has been resolved and before the buffers are committed.
type SpawnRule interface {
	Spawn(g *Grid, rng Random)
}

// SpawnFunc adapts a plain function to SpawnRule.
type SpawnFunc func(g *Grid, rng Random)

// Spawn calls f.
func (f SpawnFunc) Spawn(g *Grid, rng Random) { f(g, rng) }

// TopCenter returns a rule that drops a fresh element of kind at
// (width/2, 0) every tick, overwriting whatever was there.
func TopCenter(kind Kind) SpawnRule {
	return SpawnFunc(func(g *Grid, rng Random) {
		g.Set(g.W/2, 0, NewElement(kind, rng))
	})
}

// Spawner names accepted by configuration.
const (
	SpawnerNone  = "none"
	SpawnerSand  = "sand"
	SpawnerWater = "water"
)

var spawnerNames = []string{SpawnerNone, SpawnerSand, SpawnerWater}

// SpawnerRule maps a spawner name to its rule. "none" maps to nil.
func SpawnerRule(name string, waterFlow int) (SpawnRule, error) {
	switch name {
	case SpawnerNone:
		return nil, nil
	case SpawnerSand:
		return TopCenter(KindSand), nil
	case SpawnerWater:
		return SpawnFunc(func(g *Grid, _ Random) {
			g.Set(g.W/2, 0, WaterWithFlow(waterFlow))
		}), nil
	default:
		return nil, fmt.Errorf("sand: unknown spawner %q", name)
	}
}
