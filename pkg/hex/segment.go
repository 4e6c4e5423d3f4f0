package hex

// Segment is a straight piece between two hexes. Endpoint order does not
// matter for equality.
type Segment struct {
	Begin Point `json:"begin"`
	End   Point `json:"end"`
}

// IsValid reports whether the segment runs along one of the three grid axes:
// a shared y (horizontal), a shared x (straight diagonal) or a shared x+y
// (slanted diagonal). A zero-length segment is not valid.
func (s Segment) IsValid() bool {
	b, e := s.Begin, s.End
	return b != e && (b.X == e.X || b.Y == e.Y || b.X+b.Y == e.X+e.Y)
}

// Direction returns the direction from Begin to End, or Incorrect.
func (s Segment) Direction() Direction {
	b, e := s.Begin, s.End
	switch {
	case !s.IsValid():
		return Incorrect
	case b.Y == e.Y:
		if b.X > e.X {
			return Left
		}
		return Right
	case b.X == e.X:
		if b.Y > e.Y {
			return DownLeft
		}
		return UpRight
	default:
		if b.Y > e.Y {
			return DownRight
		}
		return UpLeft
	}
}

// Length is the hex distance between the endpoints.
func (s Segment) Length() int { return Distance(s.Begin, s.End) }

// Equal reports whether both segments join the same two points.
func (s Segment) Equal(other Segment) bool {
	return s.Key() == other.Key()
}

// Key returns the segment with endpoints in canonical order, so that a
// segment and its reverse map to the same key.
func (s Segment) Key() Segment {
	if less(s.End, s.Begin) {
		return Segment{Begin: s.End, End: s.Begin}
	}
	return s
}

func less(a, b Point) bool {
	if a.Y != b.Y {
		return a.Y < b.Y
	}
	return a.X < b.X
}
