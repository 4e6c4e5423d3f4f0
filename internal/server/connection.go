package server

import (
	"encoding/json"
	"log"
	"time"

	"github.com/gorilla/websocket"
	"github.com/gravitas-games/hexgeom/internal/network"
	"github.com/gravitas-games/hexgeom/internal/query"
	"github.com/gravitas-games/hexgeom/pkg/models"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period (must be less than pongWait)
	pingPeriod = (pongWait * 9) / 10
)

// Connection represents a WebSocket connection to a client
type Connection struct {
	// WebSocket connection
	ws *websocket.Conn

	// Server reference
	server *Server

	// Client information (set after authentication)
	client *models.Client

	// Buffered channel for outbound messages
	send chan []byte

	// Is connection authenticated
	authenticated bool
}

// NewConnection creates a new connection
func NewConnection(ws *websocket.Conn, server *Server, client *models.Client) *Connection {
	return &Connection{
		ws:            ws,
		server:        server,
		client:        client,
		send:          make(chan []byte, 256),
		authenticated: client != nil,
	}
}

// Handle manages the connection lifecycle
func (c *Connection) Handle() {
	c.ws.SetReadLimit(c.server.config.Limits.MaxMessageSize)
	c.ws.SetReadDeadline(time.Now().Add(pongWait))
	c.ws.SetPongHandler(func(string) error {
		c.ws.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	if !c.join() {
		close(c.send)
		c.writePump()
		return
	}

	go c.writePump()
	c.readPump() // Blocking
}

// join registers the client with the session and greets it
func (c *Connection) join() bool {
	if !c.authenticated || c.client == nil {
		c.SendError("", network.ErrCodeNotAuth, "Connection not authenticated")
		return false
	}

	c.client.Connected = true
	c.client.ConnectedAt = time.Now()
	c.client.SessionID = c.server.session.ID

	if err := c.server.session.AddClient(c.client, c); err != nil {
		log.Printf("Failed to add client to session: %v", err)
		c.SendError("", network.ErrCodeSessionFull, "Session is full")
		return false
	}

	c.SendMessage(&network.ServerMessage{
		Type: network.MsgTypeWelcome,
		Payload: network.WelcomePayload{
			ClientID:      c.client.ID,
			Username:      c.client.Username,
			SessionID:     c.server.session.ID,
			SessionStatus: c.server.session.GetStatus(),
		},
	})
	return true
}

// readPump pumps messages from the WebSocket connection to the server
func (c *Connection) readPump() {
	defer func() {
		c.Close()
	}()

	for {
		_, message, err := c.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket read error: %v", err)
			}
			break
		}

		var clientMsg network.ClientMessage
		if err := json.Unmarshal(message, &clientMsg); err != nil {
			log.Printf("Failed to parse client message: %v", err)
			c.SendError("", network.ErrCodeInvalidMessage, "Failed to parse message")
			continue
		}

		c.client.LastSeen = time.Now()
		c.handleMessage(&clientMsg)
	}
}

// writePump pumps messages from the send channel to the WebSocket connection
func (c *Connection) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.ws.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// Channel closed
				c.ws.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.ws.WriteMessage(websocket.TextMessage, message); err != nil {
				log.Printf("WebSocket write error: %v", err)
				return
			}

		case <-ticker.C:
			c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-c.server.ctx.Done():
			// Server shutting down
			return
		}
	}
}

// handleMessage routes messages to appropriate handlers
func (c *Connection) handleMessage(msg *network.ClientMessage) {
	switch msg.Type {
	case network.MsgTypePing:
		c.SendMessage(&network.ServerMessage{
			Type:    network.MsgTypePong,
			ID:      msg.ID,
			Payload: map[string]interface{}{"timestamp": time.Now().Unix()},
		})

	case network.MsgTypeStatus:
		c.SendMessage(&network.ServerMessage{
			Type:    network.MsgTypeSessionStatus,
			ID:      msg.ID,
			Payload: c.server.session.GetStatus(),
		})

	default:
		c.handleQuery(msg)
	}
}

// handleQuery evaluates a geometry query and replies with its result
func (c *Connection) handleQuery(msg *network.ClientMessage) {
	res, err := c.server.session.evaluator.Evaluate(c.server.ctx, msg.Type, msg.Payload)
	if err != nil {
		log.Printf("Query %s from %s failed: %v", msg.Type, c.client.Username, err)
		c.SendError(msg.ID, query.Code(err), err.Error())
		return
	}

	c.client.Queries++
	c.SendMessage(&network.ServerMessage{
		Type:    network.MsgTypeResult,
		ID:      msg.ID,
		Query:   msg.Type,
		Payload: res,
	})
}

// SendMessage sends a message to the client
func (c *Connection) SendMessage(msg *network.ServerMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("Failed to marshal message: %v", err)
		return
	}

	select {
	case c.send <- data:
	default:
		log.Printf("Send buffer full, dropping message")
	}
}

// SendError sends an error message to the client
func (c *Connection) SendError(id, code, message string) {
	c.SendMessage(&network.ServerMessage{
		Type: network.MsgTypeError,
		ID:   id,
		Payload: network.ErrorPayload{
			Code:    code,
			Message: message,
		},
	})
}

// Close closes the connection
func (c *Connection) Close() {
	if c.authenticated && c.client != nil {
		c.server.session.RemoveClient(c.client.ID)
	}

	// Close send channel; writePump sends the close frame
	close(c.send)
}
