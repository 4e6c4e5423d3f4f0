package models

import "time"

// Client represents a connected query client
type Client struct {
	// From JWT claims
	ID          string `json:"id"`          // Converted from int64 user_id
	Username    string `json:"username"`    // JWT claim
	Email       string `json:"email"`       // JWT claim
	Permissions int64  `json:"permissions"` // JWT claim: bitwise permission flags
	Activated   int64  `json:"activated"`   // JWT claim: activation timestamp or ban status
	AuthMethod  string `json:"auth_method"` // JWT claim: "password", "oauth" or "anonymous"

	// Connection state
	Connected   bool      `json:"connected"`
	ConnectedAt time.Time `json:"connected_at"`
	LastSeen    time.Time `json:"last_seen"`

	// Session state
	SessionID string `json:"session_id"`
	Queries   int64  `json:"queries"`
}

// NewAnonymous creates a client for servers running without authentication
func NewAnonymous(id string) *Client {
	return &Client{
		ID:         id,
		Username:   "anonymous-" + id,
		Activated:  1,
		AuthMethod: "anonymous",
	}
}

// IsActive checks if the client account is activated and not banned
func (c *Client) IsActive() bool {
	// activated > 0 means activated
	// activated == 0 means not activated
	// activated == -1 means banned
	return c.Activated > 0
}

// IsBanned checks if the client is banned
func (c *Client) IsBanned() bool {
	return c.Activated == -1
}

// IsConnected checks if the client is currently connected
func (c *Client) IsConnected() bool {
	return c.Connected
}
