package path

import (
	"math/rand"
	"testing"

	"github.com/gravitas-games/hexgeom/pkg/hex"
)

func checkShortest(t *testing.T, from, to hex.Point, p []hex.Point) {
	t.Helper()
	d := hex.Distance(from, to)
	if len(p) != d+1 {
		t.Fatalf("path %v -> %v: expected %d points, got %d (%v)", from, to, d+1, len(p), p)
	}
	if p[0] != from || p[len(p)-1] != to {
		t.Fatalf("path %v -> %v has wrong endpoints: %v", from, to, p)
	}
	for i := 1; i < len(p); i++ {
		if hex.Distance(p[i-1], p[i]) != 1 {
			t.Fatalf("path %v -> %v: %v and %v are not adjacent", from, to, p[i-1], p[i])
		}
	}
}

func TestBetweenExample(t *testing.T) {
	got := Between(hex.Point{X: 2, Y: 2}, hex.Point{X: 3, Y: 5})
	want := []hex.Point{{X: 2, Y: 2}, {X: 3, Y: 2}, {X: 3, Y: 3}, {X: 3, Y: 4}, {X: 3, Y: 5}}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestBetweenCases(t *testing.T) {
	tests := []struct {
		name     string
		from, to string
	}{
		{"same point", "33", "33"},
		{"horizontal", "30", "38"},
		{"horizontal reversed", "38", "30"},
		{"zigzag", "34", "72"},
		{"zigzag reversed", "72", "34"},
		{"right then up", "12", "46"},
		{"left before anti-diagonal", "16", "41"},
		{"left after anti-diagonal", "14", "63"},
		{"down", "63", "03"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			from, to := hex.MustParsePoint(tt.from), hex.MustParsePoint(tt.to)
			checkShortest(t, from, to, Between(from, to))
		})
	}
}

func TestBetweenRandom(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for i := 0; i < 2000; i++ {
		from := hex.Point{X: rng.Intn(31) - 15, Y: rng.Intn(31) - 15}
		to := hex.Point{X: rng.Intn(31) - 15, Y: rng.Intn(31) - 15}
		checkShortest(t, from, to, Between(from, to))
	}
}

func TestAStarMatchesDistance(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	center := hex.Point{}
	for i := 0; i < 200; i++ {
		from := hex.Point{X: rng.Intn(11) - 5, Y: rng.Intn(11) - 5}
		to := hex.Point{X: rng.Intn(11) - 5, Y: rng.Intn(11) - 5}
		p := AStar(from, to, HeuristicTo(to), NeighborsWithinDisc(center, 20, nil), UnitCost)
		checkShortest(t, from, to, p)
	}
}

func TestAroundWall(t *testing.T) {
	center := hex.Point{}
	from := hex.Point{X: -2, Y: 0}
	to := hex.Point{X: 2, Y: 0}
	// wall along x=0 with a single gap at the top of the disc
	blocked := map[hex.Point]bool{}
	for y := -4; y <= 3; y++ {
		blocked[hex.Point{X: 0, Y: y}] = true
	}
	p := Around(from, to, blocked, center, 4)
	if p == nil {
		t.Fatalf("expected a path through the gap")
	}
	if p[0] != from || p[len(p)-1] != to {
		t.Fatalf("wrong endpoints: %v", p)
	}
	if len(p)-1 <= hex.Distance(from, to) {
		t.Fatalf("expected a detour longer than %d, got %d", hex.Distance(from, to), len(p)-1)
	}
	for i, a := range p {
		if blocked[a] {
			t.Fatalf("path crosses blocked point %v", a)
		}
		if hex.Distance(center, a) > 4 {
			t.Fatalf("path leaves the disc at %v", a)
		}
		if i > 0 && hex.Distance(p[i-1], a) != 1 {
			t.Fatalf("%v and %v are not adjacent", p[i-1], a)
		}
	}
}

func TestAroundNoRoute(t *testing.T) {
	center := hex.Point{}
	blocked := map[hex.Point]bool{}
	for _, n := range center.Neighbors() {
		blocked[n] = true
	}
	if p := Around(center, hex.Point{X: 3, Y: 0}, blocked, center, 5); p != nil {
		t.Fatalf("expected no path out of an enclosed point, got %v", p)
	}
	if p := Around(center, hex.Point{X: 9, Y: 0}, nil, center, 5); p != nil {
		t.Fatalf("expected nil for a target outside the disc, got %v", p)
	}
	p := Around(hex.Point{X: 1, Y: 1}, hex.Point{X: -1, Y: 3}, nil, center, 5)
	checkShortest(t, hex.Point{X: 1, Y: 1}, hex.Point{X: -1, Y: 3}, p)
}
