package network

import (
	"encoding/json"

	"github.com/gravitas-games/hexgeom/pkg/hex"
	"github.com/gravitas-games/hexgeom/pkg/hexagon"
)

// Message types - Client → Server
const (
	MsgTypeDistance        = "distance"
	MsgTypeDirection       = "direction"
	MsgTypeMove            = "move"
	MsgTypeSegment         = "segment"
	MsgTypePath            = "path"
	MsgTypeHexagonDistance = "hexagon_distance"
	MsgTypeContains        = "contains"
	MsgTypeBorder          = "border"
	MsgTypeCircumscribe    = "circumscribe"
	MsgTypeEnclose         = "enclose"
	MsgTypeStatus          = "status"
	MsgTypePing            = "ping"
)

// Message types - Server → Client
const (
	MsgTypeWelcome       = "welcome"
	MsgTypeResult        = "result"
	MsgTypeSessionStatus = "session_status"
	MsgTypeError         = "error"
	MsgTypePong          = "pong"
)

// Error codes carried in ErrorPayload
const (
	ErrCodeInvalidMessage  = "invalid_message"
	ErrCodeInvalidPayload  = "invalid_payload"
	ErrCodeInvalidArgument = "invalid_argument"
	ErrCodeLimitExceeded   = "limit_exceeded"
	ErrCodeUnknownType     = "unknown_message_type"
	ErrCodeNotAuth         = "not_authenticated"
	ErrCodeSessionFull     = "session_full"
)

// ClientMessage represents any message from client to server
type ClientMessage struct {
	Type    string          `json:"type"`
	ID      string          `json:"id,omitempty"` // echoed back on the response
	Payload json.RawMessage `json:"payload"`
}

// ServerMessage represents any message from server to client
type ServerMessage struct {
	Type    string      `json:"type"`
	ID      string      `json:"id,omitempty"`
	Query   string      `json:"query,omitempty"` // request type a result answers
	Payload interface{} `json:"payload"`
}

// --- Client Message Payloads ---

// PointPairPayload carries two points (distance)
type PointPairPayload struct {
	A hex.Point `json:"a"`
	B hex.Point `json:"b"`
}

// DirectionPayload asks for rotations of a direction
type DirectionPayload struct {
	Direction hex.Direction  `json:"direction"`
	Other     *hex.Direction `json:"other,omitempty"`
}

// MovePayload moves a point along a direction
type MovePayload struct {
	Point     hex.Point     `json:"point"`
	Direction hex.Direction `json:"direction"`
	Distance  int           `json:"distance"`
}

// SegmentPayload classifies a segment
type SegmentPayload struct {
	Begin hex.Point `json:"begin"`
	End   hex.Point `json:"end"`
}

// PathPayload asks for a shortest path, optionally around blocked points.
// Bound limits the search to a hexagon; it defaults to one just large enough
// to hold both endpoints with room to walk around obstacles.
type PathPayload struct {
	From    hex.Point        `json:"from"`
	To      hex.Point        `json:"to"`
	Blocked []hex.Point      `json:"blocked,omitempty"`
	Bound   *hexagon.Hexagon `json:"bound,omitempty"`
}

// HexagonPairPayload carries two hexagons (hexagon_distance)
type HexagonPairPayload struct {
	A hexagon.Hexagon `json:"a"`
	B hexagon.Hexagon `json:"b"`
}

// ContainsPayload tests a point against a hexagon
type ContainsPayload struct {
	Hexagon hexagon.Hexagon `json:"hexagon"`
	Point   hex.Point       `json:"point"`
}

// BorderPayload asks for the border ring of a hexagon
type BorderPayload struct {
	Hexagon hexagon.Hexagon `json:"hexagon"`
}

// CircumscribePayload carries the three points a hexagon must pass through
type CircumscribePayload struct {
	A hex.Point `json:"a"`
	B hex.Point `json:"b"`
	C hex.Point `json:"c"`
}

// EnclosePayload carries the points a hexagon must cover
type EnclosePayload struct {
	Points []hex.Point `json:"points"`
}

// --- Server Message Payloads ---

// WelcomePayload is sent to client after successful connection
type WelcomePayload struct {
	ClientID      string        `json:"client_id"`
	Username      string        `json:"username"`
	SessionID     string        `json:"session_id"`
	SessionStatus SessionStatus `json:"session_status"`
}

// DistanceResult answers distance and hexagon_distance
type DistanceResult struct {
	Distance int `json:"distance"`
}

// DirectionResult answers direction
type DirectionResult struct {
	Opposite hex.Direction  `json:"opposite"`
	Next     *hex.Direction `json:"next,omitempty"` // absent for INCORRECT
	Parallel *bool          `json:"parallel,omitempty"`
}

// PointResult answers move
type PointResult struct {
	Point hex.Point `json:"point"`
}

// SegmentResult answers segment
type SegmentResult struct {
	Valid     bool          `json:"valid"`
	Direction hex.Direction `json:"direction"`
	Length    int           `json:"length"`
}

// PointsResult answers path and border
type PointsResult struct {
	Points []hex.Point `json:"points"`
}

// ContainsResult answers contains
type ContainsResult struct {
	Contains bool `json:"contains"`
}

// HexagonResult answers circumscribe and enclose
type HexagonResult struct {
	Found   bool             `json:"found"`
	Hexagon *hexagon.Hexagon `json:"hexagon,omitempty"`
}

// SessionStatus represents the current session state
type SessionStatus struct {
	State         string `json:"state"`
	ClientCount   int    `json:"client_count"`
	MaxClients    int    `json:"max_clients"`
	QueriesServed int64  `json:"queries_served"`
	CacheHits     int64  `json:"cache_hits"`
	Uptime        int64  `json:"uptime"`
}

// ErrorPayload contains error information
type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
