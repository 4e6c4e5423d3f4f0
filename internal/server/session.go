package server

import (
	"errors"
	"log"
	"sync"
	"time"

	"github.com/gravitas-games/hexgeom/internal/config"
	"github.com/gravitas-games/hexgeom/internal/network"
	"github.com/gravitas-games/hexgeom/internal/query"
	"github.com/gravitas-games/hexgeom/pkg/models"
)

// ErrSessionFull is returned when MaxClients are already connected
var ErrSessionFull = errors.New("session is full")

// Session groups the connected clients and the evaluator they share
type Session struct {
	ID        string
	CreatedAt time.Time

	clients     map[string]*models.Client // clientID -> Client
	connections map[string]*Connection    // clientID -> Connection
	mu          sync.RWMutex

	evaluator *query.Evaluator
	config    *config.Config
}

// NewSession creates a new query session
func NewSession(id string, cfg *config.Config, evaluator *query.Evaluator) *Session {
	log.Printf("Creating session: %s", id)

	return &Session{
		ID:          id,
		CreatedAt:   time.Now(),
		clients:     make(map[string]*models.Client),
		connections: make(map[string]*Connection),
		evaluator:   evaluator,
		config:      cfg,
	}
}

// AddClient adds a client to the session
func (s *Session) AddClient(client *models.Client, conn *Connection) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.clients[client.ID]; !exists && len(s.clients) >= s.config.Session.MaxClients {
		return ErrSessionFull
	}

	s.clients[client.ID] = client
	s.connections[client.ID] = conn

	log.Printf("Client %s (%s) joined session %s", client.Username, client.ID, s.ID)
	return nil
}

// RemoveClient removes a client from the session
func (s *Session) RemoveClient(clientID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if client, exists := s.clients[clientID]; exists {
		log.Printf("Client %s (%s) left session %s after %d queries", client.Username, clientID, s.ID, client.Queries)
		delete(s.clients, clientID)
		delete(s.connections, clientID)
	}
}

// GetClient retrieves a client by ID
func (s *Session) GetClient(clientID string) (*models.Client, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	client, exists := s.clients[clientID]
	return client, exists
}

// ClientCount returns the number of connected clients
func (s *Session) ClientCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.clients)
}

// GetStatus returns the current session status
func (s *Session) GetStatus() network.SessionStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()

	state := "idle"
	if len(s.clients) > 0 {
		state = "serving"
	}
	return network.SessionStatus{
		State:         state,
		ClientCount:   len(s.clients),
		MaxClients:    s.config.Session.MaxClients,
		QueriesServed: s.evaluator.Served(),
		CacheHits:     s.evaluator.CacheHits(),
		Uptime:        int64(time.Since(s.CreatedAt).Seconds()),
	}
}
