package sand

// scriptedRandom replays a fixed sequence of coin flips.
type scriptedRandom struct {
	bools []bool
	i     int
	f     float64
}

func (s *scriptedRandom) Bool() bool {
	if len(s.bools) == 0 {
		return false
	}
	b := s.bools[s.i%len(s.bools)]
	s.i++
	return b
}

func (s *scriptedRandom) Float64() float64 { return s.f }

func flips(b ...bool) *scriptedRandom { return &scriptedRandom{bools: b} }

var testSand = Sand(&scriptedRandom{})

// place writes cells into next and commits them.
func place(g *Grid, cells map[[2]int]Cell) {
	for p, c := range cells {
		g.FillCell(c, p[0], p[1])
	}
	g.commit()
}

// floor fills the bottom row with c and commits.
func floor(g *Grid, c Cell) {
	g.Fill(c, 0, g.H-1, g.W-1, g.H-1)
	g.commit()
}

func kindsOf(g *Grid) []Kind {
	out := make([]Kind, len(g.Current()))
	for i, c := range g.Current() {
		out[i] = c.Kind
	}
	return out
}
