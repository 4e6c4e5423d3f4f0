package cache

import (
	"testing"

	"github.com/gravitas-games/hexgeom/pkg/hex"
)

func TestKey(t *testing.T) {
	got := Key("enclose", hex.Point{X: 3, Y: 1}, hex.Point{X: -2, Y: 4})
	if got != "enclose:3,1:-2,4" {
		t.Fatalf("unexpected key %q", got)
	}
	if Key("enclose") != "enclose" {
		t.Fatalf("expected bare query name for no points")
	}
	if Key("c", hex.Point{X: 1, Y: 2}) == Key("c", hex.Point{X: 2, Y: 1}) {
		t.Fatalf("expected distinct keys for swapped coordinates")
	}
}
