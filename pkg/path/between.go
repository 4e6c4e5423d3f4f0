package path

import "github.com/gravitas-games/hexgeom/pkg/hex"

// Between returns one shortest path from `from` to `to`, both included.
// The result has hex.Distance(from, to)+1 points and every consecutive pair
// is adjacent.
func Between(from, to hex.Point) []hex.Point {
	if from.Y < to.Y {
		return upward(from, to)
	}
	p := upward(to, from)
	for i, j := 0, len(p)-1; i < j; i, j = i+1, j-1 {
		p[i], p[j] = p[j], p[i]
	}
	return p
}

// upward builds the path for from.Y <= to.Y. It splits into the same cases
// as the distance metric: a zigzag along the vertical diagonal, a right turn,
// or a left turn before or after the anti-diagonal.
func upward(from, to hex.Point) []hex.Point {
	dx, dy := to.X-from.X, to.Y-from.Y
	res := make([]hex.Point, 1, hex.Distance(from, to)+1)
	res[0] = from
	switch {
	case dy > 0 && dy%2 == 0 && dx == -dy/2:
		for i := 0; i < dy; i++ {
			if i%2 == 0 {
				res = walk(res, hex.UpLeft, 1)
			} else {
				res = walk(res, hex.UpRight, 1)
			}
		}
	case dx >= 0:
		res = walk(res, hex.Right, dx)
		res = walk(res, hex.UpRight, dy)
	case dx+dy <= 0:
		// elbow sits on the target's anti-diagonal
		res = walk(res, hex.Left, -dx-dy)
		res = walk(res, hex.UpLeft, dy)
	default:
		res = walk(res, hex.UpLeft, -dx)
		res = walk(res, hex.UpRight, dy+dx)
	}
	return res
}

// walk appends n unit steps along d, starting from the last point of p.
func walk(p []hex.Point, d hex.Direction, n int) []hex.Point {
	cur := p[len(p)-1]
	step := d.Delta()
	for i := 0; i < n; i++ {
		cur = cur.Add(step)
		p = append(p, cur)
	}
	return p
}
