package hexagon

import (
	"fmt"

	"github.com/gravitas-games/hexgeom/pkg/hex"
)

// ByThreePoints finds the smallest hexagon with a, b and c all on its border.
// It reports false when no such hexagon exists. Three equal points give a
// zero-radius hexagon.
//
// With d the largest pairwise distance, the radius is at least ceil(d/2) and,
// when a solution exists at all, at most d. Every center at radius r lies on
// the ring of radius r around a, so scanning those rings is exhaustive.
func ByThreePoints(a, b, c hex.Point) (Hexagon, bool) {
	d := max3(hex.Distance(a, b), hex.Distance(a, c), hex.Distance(b, c))
	for r := half(d); r <= d; r++ {
		for _, p := range (Hexagon{Center: a, Radius: r}).BorderPoints() {
			if hex.Distance(p, b) == r && hex.Distance(p, c) == r {
				return Hexagon{Center: p, Radius: r}, true
			}
		}
	}
	return Hexagon{}, false
}

// MinContaining returns a smallest hexagon covering every point.
// It fails with hex.ErrInvalidArgument when points is empty.
//
// The search anchors on one end of the diameter pair: any center of radius r
// lies within r of it. Radius d always works with the anchor as center.
func MinContaining(points ...hex.Point) (Hexagon, error) {
	if len(points) == 0 {
		return Hexagon{}, fmt.Errorf("min containing hexagon of no points: %w", hex.ErrInvalidArgument)
	}
	anchor, _, d := Diameter(points)
	for r := half(d); r < d; r++ {
		for _, p := range (Hexagon{Center: anchor, Radius: r}).Points() {
			if covers(p, r, points) {
				return Hexagon{Center: p, Radius: r}, nil
			}
		}
	}
	return Hexagon{Center: anchor, Radius: d}, nil
}

// Diameter returns the first pair of points at maximum distance and that
// distance. A single point is its own pair at distance 0.
func Diameter(points []hex.Point) (p1, p2 hex.Point, d int) {
	if len(points) == 0 {
		return
	}
	p1, p2 = points[0], points[0]
	for i := range points {
		for j := i + 1; j < len(points); j++ {
			if dist := hex.Distance(points[i], points[j]); dist > d {
				d, p1, p2 = dist, points[i], points[j]
			}
		}
	}
	return p1, p2, d
}

func covers(center hex.Point, r int, points []hex.Point) bool {
	for _, q := range points {
		if hex.Distance(center, q) > r {
			return false
		}
	}
	return true
}

// half is ceil(d/2) for non-negative d.
func half(d int) int { return (d + 1) / 2 }

func max3(a, b, c int) int {
	if b > a {
		a = b
	}
	if c > a {
		a = c
	}
	return a
}
