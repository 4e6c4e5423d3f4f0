// Package hexagon works with regular flat-top hexagons centered on grid points:
// containment, distance, perimeter walks, and the circumscribing and enclosing
// hexagon searches.
package hexagon

import (
	"fmt"

	"github.com/gravitas-games/hexgeom/pkg/hex"
	"github.com/gravitas-games/hexgeom/pkg/path"
)

// Hexagon is the set of points within Radius steps of Center.
// A zero radius is the single point Center.
type Hexagon struct {
	Center hex.Point `json:"center"`
	Radius int       `json:"radius"`
}

// borderWalk is the order in which BorderPoints traverses the six sides,
// starting from the corner Radius steps to the right of the center.
var borderWalk = [6]hex.Direction{
	hex.DownLeft, hex.Left, hex.UpLeft, hex.UpRight, hex.Right, hex.DownRight,
}

// Contains reports whether p lies inside or on the border of h.
func (h Hexagon) Contains(p hex.Point) bool {
	return hex.Distance(h.Center, p) <= h.Radius
}

// Distance returns the number of steps between the closest points of h and
// other, or 0 when they share a point.
func (h Hexagon) Distance(other Hexagon) int {
	d := hex.Distance(h.Center, other.Center)
	if d <= h.Radius+other.Radius {
		return 0
	}
	return d - h.Radius - other.Radius
}

// BorderPoints returns the ring of points at exactly Radius from the center,
// in walking order: consecutive points are adjacent and the last one is
// adjacent to the first.
func (h Hexagon) BorderPoints() []hex.Point {
	if h.Radius == 0 {
		return []hex.Point{h.Center}
	}
	res := make([]hex.Point, 0, 6*h.Radius)
	corner := h.Center.Add(hex.Right.Delta().Mul(h.Radius))
	for _, d := range borderWalk {
		next := corner.Add(d.Delta().Mul(h.Radius))
		side := path.Between(corner, next)
		res = append(res, side[:len(side)-1]...)
		corner = next
	}
	return res
}

// Points returns every point of h ring by ring, center first.
func (h Hexagon) Points() []hex.Point {
	res := make([]hex.Point, 0, 1+3*h.Radius*(h.Radius+1))
	for r := 0; r <= h.Radius; r++ {
		res = append(res, Hexagon{Center: h.Center, Radius: r}.BorderPoints()...)
	}
	return res
}

func (h Hexagon) String() string {
	return fmt.Sprintf("hexagon(%v, r=%d)", h.Center, h.Radius)
}
