package sand

import (
	"fmt"
	"image/color"
	"strings"
)

// MatterState classifies how an element takes part in movement.
type MatterState uint8

const (
	Gas MatterState = iota
	Liquid
	Solid
)

func (m MatterState) String() string {
	switch m {
	case Gas:
		return "gas"
	case Liquid:
		return "liquid"
	case Solid:
		return "solid"
	default:
		return fmt.Sprintf("MatterState(%d)", uint8(m))
	}
}

// Kind enumerates the element variants the simulation knows about.
type Kind uint8

const (
	KindAir Kind = iota
	KindSand
	KindWater

	kindCount
)

var kindNames = [kindCount]string{"air", "sand", "water"}

func (k Kind) String() string {
	if k < kindCount {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Kinds lists every element kind in declaration order.
func Kinds() []Kind {
	return []Kind{KindAir, KindSand, KindWater}
}

// ParseKind resolves an element name such as "water".
func ParseKind(name string) (Kind, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for k, n := range kindNames {
		if n == name {
			return Kind(k), nil
		}
	}
	return KindAir, fmt.Errorf("sand: unknown element %q", name)
}

// DefaultWaterFlow is the lateral reach of water per movement decision.
const DefaultWaterFlow = 4

// Cell is the value stored at one lattice position. Cells are copied in and
// out of the grid wholesale; only Falling is touched in place during a tick.
type Cell struct {
	Kind         Kind
	State        MatterState
	Color        color.RGBA
	FlowDistance int

	// Falling is recomputed at the start of every tick.
	Falling bool
}

// Air returns the transparent gas that fills an empty grid.
func Air() Cell {
	return Cell{Kind: KindAir, State: Gas, FlowDistance: 1}
}

// Sand returns a solid grain with a randomized shade.
func Sand(rng Random) Cell {
	shade := rng.Float64()*64 + 127
	return Cell{
		Kind:         KindSand,
		State:        Solid,
		Color:        color.RGBA{R: uint8(shade + 30), G: uint8(shade + 20), B: uint8(shade - 70), A: 255},
		FlowDistance: 1,
	}
}

// Water returns a translucent liquid with the default flow distance.
func Water() Cell {
	return WaterWithFlow(DefaultWaterFlow)
}

// WaterWithFlow returns water that spreads up to flow cells sideways.
func WaterWithFlow(flow int) Cell {
	if flow < 1 {
		flow = 1
	}
	return Cell{
		Kind:         KindWater,
		State:        Liquid,
		Color:        color.RGBA{R: 100, G: 100, B: 100, A: 127},
		FlowDistance: flow,
	}
}

// NewElement builds a fresh cell of the given kind. Unknown kinds yield Air.
func NewElement(kind Kind, rng Random) Cell {
	switch kind {
	case KindSand:
		return Sand(rng)
	case KindWater:
		return Water()
	default:
		return Air()
	}
}
