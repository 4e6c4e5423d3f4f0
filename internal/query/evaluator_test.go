package query

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/gravitas-games/hexgeom/internal/config"
	"github.com/gravitas-games/hexgeom/internal/network"
	"github.com/gravitas-games/hexgeom/pkg/hex"
	"github.com/gravitas-games/hexgeom/pkg/hexagon"
)

type memCache struct {
	data    map[string][]byte
	failGet bool
}

func (m *memCache) Get(ctx context.Context, key string, dst interface{}) (bool, error) {
	if m.failGet {
		return false, errors.New("cache down")
	}
	data, ok := m.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(data, dst)
}

func (m *memCache) Set(ctx context.Context, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.data[key] = data
	return nil
}

func newEvaluator(c *memCache) *Evaluator {
	if c == nil {
		return New(config.Default().Limits, nil)
	}
	return New(config.Default().Limits, c)
}

func eval(t *testing.T, e *Evaluator, msgType, payload string) interface{} {
	t.Helper()
	res, err := e.Evaluate(context.Background(), msgType, json.RawMessage(payload))
	if err != nil {
		t.Fatalf("%s %s: unexpected error: %v", msgType, payload, err)
	}
	return res
}

func TestEvaluateBasics(t *testing.T) {
	e := newEvaluator(nil)

	if res := eval(t, e, network.MsgTypeDistance, `{"a":{"x":6,"y":1},"b":{"x":1,"y":4}}`).(network.DistanceResult); res.Distance != 5 {
		t.Fatalf("expected distance 5, got %d", res.Distance)
	}

	move := eval(t, e, network.MsgTypeMove, `{"point":{"x":0,"y":3},"direction":"RIGHT","distance":3}`).(network.PointResult)
	if move.Point != (hex.Point{X: 3, Y: 3}) {
		t.Fatalf("expected 3.3, got %v", move.Point)
	}

	seg := eval(t, e, network.MsgTypeSegment, `{"begin":{"x":3,"y":1},"end":{"x":6,"y":2}}`).(network.SegmentResult)
	if seg.Valid || seg.Direction != hex.Incorrect {
		t.Fatalf("expected invalid segment, got %+v", seg)
	}

	dir := eval(t, e, network.MsgTypeDirection, `{"direction":"UP_LEFT","other":"DOWN_RIGHT"}`).(network.DirectionResult)
	if dir.Opposite != hex.DownRight || dir.Next == nil || *dir.Next != hex.Left || dir.Parallel == nil || !*dir.Parallel {
		t.Fatalf("unexpected direction result %+v", dir)
	}
	inc := eval(t, e, network.MsgTypeDirection, `{"direction":"INCORRECT"}`).(network.DirectionResult)
	if inc.Next != nil || inc.Opposite != hex.Incorrect || inc.Parallel != nil {
		t.Fatalf("unexpected result for INCORRECT %+v", inc)
	}

	hd := eval(t, e, network.MsgTypeHexagonDistance, `{"a":{"center":{"x":1,"y":3},"radius":1},"b":{"center":{"x":6,"y":2},"radius":2}}`).(network.DistanceResult)
	if hd.Distance != 2 {
		t.Fatalf("expected hexagon distance 2, got %d", hd.Distance)
	}

	c := eval(t, e, network.MsgTypeContains, `{"hexagon":{"center":{"x":3,"y":3},"radius":1},"point":{"x":4,"y":2}}`).(network.ContainsResult)
	if !c.Contains {
		t.Fatalf("expected point to be contained")
	}

	b := eval(t, e, network.MsgTypeBorder, `{"hexagon":{"center":{"x":3,"y":3},"radius":2}}`).(network.PointsResult)
	if len(b.Points) != 12 {
		t.Fatalf("expected 12 border points, got %d", len(b.Points))
	}

	if e.Served() != 8 {
		t.Fatalf("expected 8 served queries, got %d", e.Served())
	}
}

func TestEvaluatePath(t *testing.T) {
	e := newEvaluator(nil)
	res := eval(t, e, network.MsgTypePath, `{"from":{"x":2,"y":2},"to":{"x":3,"y":5}}`).(network.PointsResult)
	if len(res.Points) != 5 {
		t.Fatalf("expected 5 points, got %v", res.Points)
	}

	blocked := eval(t, e, network.MsgTypePath,
		`{"from":{"x":0,"y":0},"to":{"x":3,"y":0},"blocked":[{"x":1,"y":0},{"x":2,"y":0}]}`).(network.PointsResult)
	if len(blocked.Points) < 5 {
		t.Fatalf("expected a detour, got %v", blocked.Points)
	}
	for _, p := range blocked.Points {
		if p == (hex.Point{X: 1, Y: 0}) || p == (hex.Point{X: 2, Y: 0}) {
			t.Fatalf("path crosses blocked point %v", p)
		}
	}

	none := eval(t, e, network.MsgTypePath,
		`{"from":{"x":0,"y":0},"to":{"x":3,"y":0},"bound":{"center":{"x":0,"y":0},"radius":2}}`).(network.PointsResult)
	if none.Points != nil {
		t.Fatalf("expected no path for a target outside the bound, got %v", none.Points)
	}
}

func TestEvaluateSolvers(t *testing.T) {
	e := newEvaluator(nil)
	res := eval(t, e, network.MsgTypeCircumscribe, `{"a":{"x":3,"y":1},"b":{"x":2,"y":3},"c":{"x":4,"y":4}}`).(network.HexagonResult)
	if !res.Found || res.Hexagon == nil || *res.Hexagon != (hexagon.Hexagon{Center: hex.Point{X: 4, Y: 2}, Radius: 2}) {
		t.Fatalf("unexpected circumscribe result %+v", res)
	}
	res = eval(t, e, network.MsgTypeCircumscribe, `{"a":{"x":3,"y":1},"b":{"x":2,"y":3},"c":{"x":5,"y":4}}`).(network.HexagonResult)
	if res.Found || res.Hexagon != nil {
		t.Fatalf("expected no hexagon, got %+v", res)
	}
	res = eval(t, e, network.MsgTypeEnclose, `{"points":[{"x":3,"y":1},{"x":2,"y":3},{"x":5,"y":4},{"x":8,"y":1}]}`).(network.HexagonResult)
	if !res.Found || res.Hexagon.Radius != 3 {
		t.Fatalf("expected radius 3, got %+v", res)
	}
}

func TestEvaluateCache(t *testing.T) {
	c := &memCache{data: map[string][]byte{}}
	e := newEvaluator(c)
	payload := `{"points":[{"x":0,"y":0},{"x":4,"y":0}]}`
	first := eval(t, e, network.MsgTypeEnclose, payload).(network.HexagonResult)
	second := eval(t, e, network.MsgTypeEnclose, payload).(network.HexagonResult)
	if e.CacheHits() != 1 {
		t.Fatalf("expected 1 cache hit, got %d", e.CacheHits())
	}
	if *first.Hexagon != *second.Hexagon {
		t.Fatalf("cached result differs: %v vs %v", first.Hexagon, second.Hexagon)
	}
	if len(c.data) != 1 {
		t.Fatalf("expected one cached entry, got %d", len(c.data))
	}

	c.failGet = true
	third := eval(t, e, network.MsgTypeEnclose, payload).(network.HexagonResult)
	if *third.Hexagon != *first.Hexagon || e.CacheHits() != 1 {
		t.Fatalf("expected computed result when the cache is down")
	}
}

func TestEvaluateErrors(t *testing.T) {
	e := New(config.LimitsConfig{MaxPoints: 3, MaxRadius: 10, MaxPathLength: 20}, nil)
	tests := []struct {
		name    string
		msgType string
		payload string
		code    string
	}{
		{"unknown type", "teleport", `{}`, network.ErrCodeUnknownType},
		{"empty payload", network.MsgTypeDistance, ``, network.ErrCodeInvalidPayload},
		{"malformed payload", network.MsgTypeDistance, `{"a":1}`, network.ErrCodeInvalidPayload},
		{"bad direction", network.MsgTypeMove, `{"point":{"x":0,"y":0},"direction":"NORTH","distance":1}`, network.ErrCodeInvalidArgument},
		{"move incorrect", network.MsgTypeMove, `{"point":{"x":0,"y":0},"direction":"INCORRECT","distance":1}`, network.ErrCodeInvalidArgument},
		{"enclose empty", network.MsgTypeEnclose, `{"points":[]}`, network.ErrCodeInvalidArgument},
		{"enclose too many", network.MsgTypeEnclose, `{"points":[{"x":0,"y":0},{"x":1,"y":0},{"x":2,"y":0},{"x":3,"y":0}]}`, network.ErrCodeLimitExceeded},
		{"border too large", network.MsgTypeBorder, `{"hexagon":{"center":{"x":0,"y":0},"radius":11}}`, network.ErrCodeLimitExceeded},
		{"negative radius", network.MsgTypeContains, `{"hexagon":{"center":{"x":0,"y":0},"radius":-1},"point":{"x":0,"y":0}}`, network.ErrCodeInvalidArgument},
		{"path too long", network.MsgTypePath, `{"from":{"x":0,"y":0},"to":{"x":21,"y":0}}`, network.ErrCodeLimitExceeded},
		{"circumscribe spread", network.MsgTypeCircumscribe, `{"a":{"x":0,"y":0},"b":{"x":11,"y":0},"c":{"x":0,"y":1}}`, network.ErrCodeLimitExceeded},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.Evaluate(context.Background(), tt.msgType, json.RawMessage(tt.payload))
			if err == nil {
				t.Fatalf("expected error")
			}
			if got := Code(err); got != tt.code {
				t.Fatalf("expected code %s, got %s (%v)", tt.code, got, err)
			}
		})
	}
	if e.Served() != 0 {
		t.Fatalf("failed queries must not count as served, got %d", e.Served())
	}
}
