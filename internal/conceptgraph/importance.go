package conceptgraph

import (
	"fmt"
	"math"
)

// Importance endpoints used for scaling and coloring.
const (
	MinImportance = 1
	MaxImportance = 100

	uniformImportance = 50
)

// Importance returns the node's declared importance, falling back to the
// degree-derived value when the data carries none.
func (gr *Graph) Importance(id int) float64 {
	n, ok := gr.Node(id)
	if !ok {
		return 0
	}
	if n.Importance != nil {
		return *n.Importance
	}
	return gr.degree[id]
}

// DegreeImportance returns the node's degree scaled into 1..100, ignoring
// any declared importance. Unknown ids yield 0.
func (gr *Graph) DegreeImportance(id int) float64 {
	return gr.degree[id]
}

// scaleDegrees maps raw edge counts linearly onto 1..100. When every node
// has the same degree they all get 50.
func scaleDegrees(gr *Graph) map[int]float64 {
	out := make(map[int]float64, len(gr.nodes))
	if len(gr.nodes) == 0 {
		return out
	}

	counts := make(map[int]int, len(gr.nodes))
	lo, hi := math.MaxInt, 0
	for _, n := range gr.nodes {
		d := gr.g.From(int64(n.ID)).Len()
		counts[n.ID] = d
		lo = min(lo, d)
		hi = max(hi, d)
	}

	for id, d := range counts {
		if hi == lo {
			out[id] = uniformImportance
			continue
		}
		ratio := float64(d-lo) / float64(hi-lo)
		out[id] = float64(MinImportance + int(ratio*(MaxImportance-MinImportance)))
	}
	return out
}

// RGB is an 8-bit color.
type RGB struct {
	R, G, B uint8
}

// Hex returns the color as "#rrggbb".
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// String returns the color in CSS rgb() notation.
func (c RGB) String() string {
	return fmt.Sprintf("rgb(%d, %d, %d)", c.R, c.G, c.B)
}

var (
	lowColor  = RGB{180, 120, 60}
	highColor = RGB{255, 255, 255}
)

// ImportanceColor interpolates from orange (importance 0) to white
// (importance 100). Values outside 0..100 are clamped and NaN counts as 0.
func ImportanceColor(importance float64) RGB {
	if math.IsNaN(importance) {
		importance = 0
	}
	ratio := math.Max(0, math.Min(100, importance)) / 100
	mix := func(a, b uint8) uint8 {
		return uint8(math.Round(float64(a) + float64(int(b)-int(a))*ratio))
	}
	return RGB{
		R: mix(lowColor.R, highColor.R),
		G: mix(lowColor.G, highColor.G),
		B: mix(lowColor.B, highColor.B),
	}
}
