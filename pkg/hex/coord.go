package hex

import (
	"fmt"
	"strconv"
	"strings"
)

// Point is a hex on a flat-top grid in axial coordinates.
// X grows to the right along a row, Y grows up-right; X+Y is constant along
// the anti-diagonal. In grid notation the first digit is Y and the second is X:
// "16" is Point{X: 6, Y: 1}.
type Point struct {
	X int `json:"x" yaml:"x"`
	Y int `json:"y" yaml:"y"`
}

// Cube represents cube coordinates (x, y, z) with x+y+z=0.
type Cube struct {
	X int
	Y int
	Z int
}

// Add returns a+b in axial space.
func (a Point) Add(b Point) Point { return Point{a.X + b.X, a.Y + b.Y} }

// Mul scales an axial vector by k.
func (a Point) Mul(k int) Point { return Point{a.X * k, a.Y * k} }

// ToCube converts axial to cube.
func (a Point) ToCube() Cube {
	x := a.X
	z := a.Y
	y := -x - z
	return Cube{X: x, Y: y, Z: z}
}

// ToPoint converts cube to axial.
func (c Cube) ToPoint() Point { return Point{X: c.X, Y: c.Z} }

// Distance returns the hex distance from a to other.
func (a Point) Distance(other Point) int { return Distance(a, other) }

// Neighbors returns the six adjacent points in direction order.
func (a Point) Neighbors() [6]Point {
	var out [6]Point
	for i, d := range deltas {
		out[i] = a.Add(d)
	}
	return out
}

// String renders the point in grid notation, "y.x".
func (a Point) String() string { return fmt.Sprintf("%d.%d", a.Y, a.X) }

// Distance returns hex distance between two points.
func Distance(a, b Point) int {
	return DistanceCube(a.ToCube(), b.ToCube())
}

// DistanceCube returns hex distance between two cube coords.
func DistanceCube(a, b Cube) int {
	dx := abs(a.X - b.X)
	dy := abs(a.Y - b.Y)
	dz := abs(a.Z - b.Z)
	if dx > dy && dx > dz {
		return dx
	}
	if dy > dz {
		return dy
	}
	return dz
}

// ParsePoint reads a point in grid notation. Two bare digits are read as "yx"
// ("41" is Point{X: 1, Y: 4}); anything else must be "y.x" with optional signs.
func ParsePoint(s string) (Point, error) {
	s = strings.TrimSpace(s)
	if len(s) == 2 && isDigit(s[0]) && isDigit(s[1]) {
		return Point{X: int(s[1] - '0'), Y: int(s[0] - '0')}, nil
	}
	ys, xs, ok := strings.Cut(s, ".")
	if !ok {
		return Point{}, fmt.Errorf("point %q: %w", s, ErrInvalidArgument)
	}
	y, err := strconv.Atoi(ys)
	if err != nil {
		return Point{}, fmt.Errorf("point %q: %w", s, ErrInvalidArgument)
	}
	x, err := strconv.Atoi(xs)
	if err != nil {
		return Point{}, fmt.Errorf("point %q: %w", s, ErrInvalidArgument)
	}
	return Point{X: x, Y: y}, nil
}

// MustParsePoint is like ParsePoint but panics on malformed input.
// Intended for literals in tests and examples.
func MustParsePoint(s string) Point {
	p, err := ParsePoint(s)
	if err != nil {
		panic(err)
	}
	return p
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
