package hex

import (
	"fmt"
	"strings"
)

// Direction is one of the six axis-aligned directions on the grid, or
// Incorrect for anything that bends.
type Direction int

const (
	Right     Direction = iota // 30 -> 34
	UpRight                    // 32 -> 62
	UpLeft                     // 25 -> 61
	Left                       // 34 -> 30
	DownLeft                   // 62 -> 32
	DownRight                  // 61 -> 25
	Incorrect                  // 30 -> 55, bends at 35
)

// Directions lists the six valid directions in counter-clockwise order.
var Directions = [6]Direction{Right, UpRight, UpLeft, Left, DownLeft, DownRight}

// deltas holds the unit step of each valid direction, indexed by Direction.
var deltas = [6]Point{
	{+1, 0}, {0, +1}, {-1, +1}, {-1, 0}, {0, -1}, {+1, -1},
}

var directionNames = [...]string{
	"RIGHT", "UP_RIGHT", "UP_LEFT", "LEFT", "DOWN_LEFT", "DOWN_RIGHT", "INCORRECT",
}

// IsValid reports whether d is one of the six geometric directions.
func (d Direction) IsValid() bool { return d >= Right && d <= DownRight }

// Delta returns the unit step for d. Incorrect has no step.
func (d Direction) Delta() Point {
	if !d.IsValid() {
		return Point{}
	}
	return deltas[d]
}

// Opposite returns the direction rotated by 180 degrees.
// Incorrect stays Incorrect.
func (d Direction) Opposite() Direction {
	if !d.IsValid() {
		return Incorrect
	}
	return (d + 3) % 6
}

// Next returns d rotated 60 degrees counter-clockwise.
func (d Direction) Next() (Direction, error) {
	if !d.IsValid() {
		return Incorrect, fmt.Errorf("next of %s: %w", d, ErrInvalidArgument)
	}
	return (d + 1) % 6, nil
}

// IsParallel reports whether d and other run along the same axis.
// Incorrect is parallel to nothing, not even itself.
func (d Direction) IsParallel(other Direction) bool {
	return d.IsValid() && (d == other || d == other.Opposite())
}

func (d Direction) String() string {
	if d < Right || d > Incorrect {
		return fmt.Sprintf("Direction(%d)", int(d))
	}
	return directionNames[d]
}

// ParseDirection accepts the names produced by Direction.String, case-insensitively.
func ParseDirection(s string) (Direction, error) {
	for i, name := range directionNames {
		if strings.EqualFold(s, name) {
			return Direction(i), nil
		}
	}
	return Incorrect, fmt.Errorf("direction %q: %w", s, ErrInvalidArgument)
}

// MarshalText implements encoding.TextMarshaler.
func (d Direction) MarshalText() ([]byte, error) { return []byte(d.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Direction) UnmarshalText(b []byte) error {
	v, err := ParseDirection(string(b))
	if err != nil {
		return err
	}
	*d = v
	return nil
}

// Move shifts p by distance steps along d. A negative distance moves along
// the opposite direction.
func Move(p Point, d Direction, distance int) (Point, error) {
	if !d.IsValid() {
		return p, fmt.Errorf("move along %s: %w", d, ErrInvalidArgument)
	}
	return p.Add(deltas[d].Mul(distance)), nil
}
