// Package query evaluates client requests against the hex geometry library.
package query

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync/atomic"

	"github.com/gravitas-games/hexgeom/internal/cache"
	"github.com/gravitas-games/hexgeom/internal/config"
	"github.com/gravitas-games/hexgeom/internal/network"
	"github.com/gravitas-games/hexgeom/pkg/hex"
	"github.com/gravitas-games/hexgeom/pkg/hexagon"
	"github.com/gravitas-games/hexgeom/pkg/path"
)

var (
	ErrUnknownType    = errors.New("unknown query type")
	ErrInvalidPayload = errors.New("invalid payload")
	ErrLimitExceeded  = errors.New("limit exceeded")
)

// Code maps an evaluation error onto its wire error code.
func Code(err error) string {
	switch {
	case errors.Is(err, ErrUnknownType):
		return network.ErrCodeUnknownType
	case errors.Is(err, ErrInvalidPayload):
		return network.ErrCodeInvalidPayload
	case errors.Is(err, ErrLimitExceeded):
		return network.ErrCodeLimitExceeded
	case errors.Is(err, hex.ErrInvalidArgument):
		return network.ErrCodeInvalidArgument
	}
	return network.ErrCodeInvalidMessage
}

// Evaluator answers queries. It is safe for concurrent use.
type Evaluator struct {
	limits config.LimitsConfig
	cache  cache.Cache // nil disables caching

	served atomic.Int64
	hits   atomic.Int64
}

// New creates an evaluator. c may be nil.
func New(limits config.LimitsConfig, c cache.Cache) *Evaluator {
	return &Evaluator{limits: limits, cache: c}
}

// Served returns the number of successfully answered queries.
func (e *Evaluator) Served() int64 { return e.served.Load() }

// CacheHits returns the number of solver answers taken from the cache.
func (e *Evaluator) CacheHits() int64 { return e.hits.Load() }

// Evaluate decodes payload for the given query type and computes the result.
func (e *Evaluator) Evaluate(ctx context.Context, msgType string, payload json.RawMessage) (interface{}, error) {
	var (
		res interface{}
		err error
	)
	switch msgType {
	case network.MsgTypeDistance:
		res, err = e.distance(payload)
	case network.MsgTypeDirection:
		res, err = e.direction(payload)
	case network.MsgTypeMove:
		res, err = e.move(payload)
	case network.MsgTypeSegment:
		res, err = e.segment(payload)
	case network.MsgTypePath:
		res, err = e.path(payload)
	case network.MsgTypeHexagonDistance:
		res, err = e.hexagonDistance(payload)
	case network.MsgTypeContains:
		res, err = e.contains(payload)
	case network.MsgTypeBorder:
		res, err = e.border(payload)
	case network.MsgTypeCircumscribe:
		res, err = e.circumscribe(ctx, payload)
	case network.MsgTypeEnclose:
		res, err = e.enclose(ctx, payload)
	default:
		return nil, fmt.Errorf("%q: %w", msgType, ErrUnknownType)
	}
	if err != nil {
		return nil, err
	}
	e.served.Add(1)
	return res, nil
}

func decode(payload json.RawMessage, dst interface{}) error {
	if len(payload) == 0 {
		return fmt.Errorf("empty payload: %w", ErrInvalidPayload)
	}
	if err := json.Unmarshal(payload, dst); err != nil {
		if errors.Is(err, hex.ErrInvalidArgument) {
			return err
		}
		return fmt.Errorf("%v: %w", err, ErrInvalidPayload)
	}
	return nil
}

func (e *Evaluator) checkHexagon(h hexagon.Hexagon) error {
	if h.Radius < 0 {
		return fmt.Errorf("negative radius %d: %w", h.Radius, hex.ErrInvalidArgument)
	}
	if h.Radius > e.limits.MaxRadius {
		return fmt.Errorf("radius %d over %d: %w", h.Radius, e.limits.MaxRadius, ErrLimitExceeded)
	}
	return nil
}

func (e *Evaluator) distance(payload json.RawMessage) (interface{}, error) {
	var p network.PointPairPayload
	if err := decode(payload, &p); err != nil {
		return nil, err
	}
	return network.DistanceResult{Distance: p.A.Distance(p.B)}, nil
}

func (e *Evaluator) direction(payload json.RawMessage) (interface{}, error) {
	var p network.DirectionPayload
	if err := decode(payload, &p); err != nil {
		return nil, err
	}
	res := network.DirectionResult{Opposite: p.Direction.Opposite()}
	if next, err := p.Direction.Next(); err == nil {
		res.Next = &next
	}
	if p.Other != nil {
		parallel := p.Direction.IsParallel(*p.Other)
		res.Parallel = &parallel
	}
	return res, nil
}

func (e *Evaluator) move(payload json.RawMessage) (interface{}, error) {
	var p network.MovePayload
	if err := decode(payload, &p); err != nil {
		return nil, err
	}
	pt, err := hex.Move(p.Point, p.Direction, p.Distance)
	if err != nil {
		return nil, err
	}
	return network.PointResult{Point: pt}, nil
}

func (e *Evaluator) segment(payload json.RawMessage) (interface{}, error) {
	var p network.SegmentPayload
	if err := decode(payload, &p); err != nil {
		return nil, err
	}
	s := hex.Segment{Begin: p.Begin, End: p.End}
	return network.SegmentResult{Valid: s.IsValid(), Direction: s.Direction(), Length: s.Length()}, nil
}

func (e *Evaluator) path(payload json.RawMessage) (interface{}, error) {
	var p network.PathPayload
	if err := decode(payload, &p); err != nil {
		return nil, err
	}
	d := hex.Distance(p.From, p.To)
	if d > e.limits.MaxPathLength {
		return nil, fmt.Errorf("path length %d over %d: %w", d, e.limits.MaxPathLength, ErrLimitExceeded)
	}
	if len(p.Blocked) == 0 && p.Bound == nil {
		return network.PointsResult{Points: path.Between(p.From, p.To)}, nil
	}
	if len(p.Blocked) > e.limits.MaxPoints {
		return nil, fmt.Errorf("%d blocked points over %d: %w", len(p.Blocked), e.limits.MaxPoints, ErrLimitExceeded)
	}
	bound := hexagon.Hexagon{Center: p.From, Radius: d + len(p.Blocked)}
	if bound.Radius > e.limits.MaxRadius {
		bound.Radius = max(e.limits.MaxRadius, d)
	}
	if p.Bound != nil {
		bound = *p.Bound
	}
	if err := e.checkHexagon(bound); err != nil {
		return nil, err
	}
	blocked := make(map[hex.Point]bool, len(p.Blocked))
	for _, b := range p.Blocked {
		blocked[b] = true
	}
	return network.PointsResult{Points: path.Around(p.From, p.To, blocked, bound.Center, bound.Radius)}, nil
}

func (e *Evaluator) hexagonDistance(payload json.RawMessage) (interface{}, error) {
	var p network.HexagonPairPayload
	if err := decode(payload, &p); err != nil {
		return nil, err
	}
	if p.A.Radius < 0 || p.B.Radius < 0 {
		return nil, fmt.Errorf("negative radius: %w", hex.ErrInvalidArgument)
	}
	return network.DistanceResult{Distance: p.A.Distance(p.B)}, nil
}

func (e *Evaluator) contains(payload json.RawMessage) (interface{}, error) {
	var p network.ContainsPayload
	if err := decode(payload, &p); err != nil {
		return nil, err
	}
	if p.Hexagon.Radius < 0 {
		return nil, fmt.Errorf("negative radius %d: %w", p.Hexagon.Radius, hex.ErrInvalidArgument)
	}
	return network.ContainsResult{Contains: p.Hexagon.Contains(p.Point)}, nil
}

func (e *Evaluator) border(payload json.RawMessage) (interface{}, error) {
	var p network.BorderPayload
	if err := decode(payload, &p); err != nil {
		return nil, err
	}
	if err := e.checkHexagon(p.Hexagon); err != nil {
		return nil, err
	}
	return network.PointsResult{Points: p.Hexagon.BorderPoints()}, nil
}

func (e *Evaluator) circumscribe(ctx context.Context, payload json.RawMessage) (interface{}, error) {
	var p network.CircumscribePayload
	if err := decode(payload, &p); err != nil {
		return nil, err
	}
	_, _, d := hexagon.Diameter([]hex.Point{p.A, p.B, p.C})
	if d > e.limits.MaxRadius {
		return nil, fmt.Errorf("spread %d over %d: %w", d, e.limits.MaxRadius, ErrLimitExceeded)
	}
	key := cache.Key(network.MsgTypeCircumscribe, p.A, p.B, p.C)
	return e.cached(ctx, key, func() network.HexagonResult {
		h, ok := hexagon.ByThreePoints(p.A, p.B, p.C)
		if !ok {
			return network.HexagonResult{}
		}
		return network.HexagonResult{Found: true, Hexagon: &h}
	}), nil
}

func (e *Evaluator) enclose(ctx context.Context, payload json.RawMessage) (interface{}, error) {
	var p network.EnclosePayload
	if err := decode(payload, &p); err != nil {
		return nil, err
	}
	if len(p.Points) > e.limits.MaxPoints {
		return nil, fmt.Errorf("%d points over %d: %w", len(p.Points), e.limits.MaxPoints, ErrLimitExceeded)
	}
	if _, _, d := hexagon.Diameter(p.Points); d > e.limits.MaxRadius {
		return nil, fmt.Errorf("spread %d over %d: %w", d, e.limits.MaxRadius, ErrLimitExceeded)
	}
	if len(p.Points) == 0 {
		return nil, fmt.Errorf("enclose needs at least one point: %w", hex.ErrInvalidArgument)
	}
	return e.cached(ctx, cache.Key(network.MsgTypeEnclose, p.Points...), func() network.HexagonResult {
		// cannot fail on a non-empty set
		h, _ := hexagon.MinContaining(p.Points...)
		return network.HexagonResult{Found: true, Hexagon: &h}
	}), nil
}

// cached returns the stored result for key or computes and stores it.
// Cache failures are logged and never fail the query.
func (e *Evaluator) cached(ctx context.Context, key string, compute func() network.HexagonResult) network.HexagonResult {
	if e.cache != nil {
		var res network.HexagonResult
		found, err := e.cache.Get(ctx, key, &res)
		if err != nil {
			log.Printf("Warning: cache read failed: %v", err)
		} else if found {
			e.hits.Add(1)
			return res
		}
	}
	res := compute()
	if e.cache != nil {
		if err := e.cache.Set(ctx, key, res); err != nil {
			log.Printf("Warning: cache write failed: %v", err)
		}
	}
	return res
}
