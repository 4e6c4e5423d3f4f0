package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/gorilla/websocket"
	"github.com/gravitas-games/hexgeom/internal/cache"
	"github.com/gravitas-games/hexgeom/internal/config"
	"github.com/gravitas-games/hexgeom/internal/query"
	"github.com/gravitas-games/hexgeom/pkg/models"
)

// Server represents the geometry query server
type Server struct {
	config       *config.Config
	session      *Session
	upgrader     websocket.Upgrader
	httpSrv      *http.Server
	jwtValidator *JWTValidator // nil when authentication is disabled
	redis        *redis.Client // nil when Redis is disabled

	// Connection tracking
	connections map[*Connection]bool
	connMu      sync.RWMutex
	anonSeq     atomic.Int64

	// Shutdown
	ctx    context.Context
	cancel context.CancelFunc
}

// Option customises a Server
type Option func(*Server)

// WithValidator installs a ready-made JWT validator instead of fetching a key
func WithValidator(v *JWTValidator) Option {
	return func(s *Server) { s.jwtValidator = v }
}

// New creates a new server instance
func New(cfg *config.Config, opts ...Option) (*Server, error) {
	log.Println("Initializing server...")

	ctx, cancel := context.WithCancel(context.Background())

	srv := &Server{
		config:      cfg,
		connections: make(map[*Connection]bool),
		ctx:         ctx,
		cancel:      cancel,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
	for _, opt := range opts {
		opt(srv)
	}

	var resultCache cache.Cache
	if cfg.Redis.Enabled {
		srv.redis = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Address,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})

		if err := srv.redis.Ping(ctx).Err(); err != nil {
			cancel()
			return nil, fmt.Errorf("failed to connect to Redis: %w", err)
		}
		log.Println("Connected to Redis")
		resultCache = cache.NewRedis(srv.redis, cfg.Redis.CachePrefix, cfg.Redis.CacheTTL())
	}

	if cfg.JWT.Enabled && srv.jwtValidator == nil {
		jwtValidator, err := NewJWTValidator(ctx, cfg, srv.redis)
		if err != nil {
			cancel()
			return nil, fmt.Errorf("failed to initialize JWT validator: %w", err)
		}
		srv.jwtValidator = jwtValidator
	}

	srv.session = NewSession("main", cfg, query.New(cfg.Limits, resultCache))

	log.Println("Server initialized successfully")
	return srv, nil
}

// Handler returns the HTTP routes served by Start
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/health", s.handleHealth)
	return mux
}

// Start begins listening for connections
func (s *Server) Start(addr string) error {
	log.Printf("Starting WebSocket server on %s", addr)

	s.httpSrv = &http.Server{
		Addr:         addr,
		Handler:      s.Handler(),
		ReadTimeout:  time.Duration(s.config.Server.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(s.config.Server.WriteTimeoutSec) * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	log.Printf("WebSocket endpoint: ws://%s/ws", addr)
	log.Printf("Health endpoint: http://%s/health", addr)

	if err := s.httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}

	return nil
}

// Shutdown gracefully stops the server
func (s *Server) Shutdown(ctx context.Context) error {
	log.Println("Shutting down server...")

	s.cancel()

	var firstErr error
	if s.httpSrv != nil {
		if err := s.httpSrv.Shutdown(ctx); err != nil {
			log.Printf("HTTP server shutdown error: %v", err)
			firstErr = err
		}
	}

	// Close all WebSocket connections
	s.connMu.Lock()
	for conn := range s.connections {
		conn.ws.Close()
	}
	s.connMu.Unlock()

	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			log.Printf("Redis close error: %v", err)
			if firstErr == nil {
				firstErr = err
			}
		}
	}

	log.Println("Server shutdown complete")
	return firstErr
}

// authenticate resolves the client for a connection request
func (s *Server) authenticate(r *http.Request) (*models.Client, error) {
	if s.jwtValidator == nil {
		return models.NewAnonymous(strconv.FormatInt(s.anonSeq.Add(1), 10)), nil
	}

	tokenString := extractTokenFromHeader(r)
	if tokenString == "" {
		return nil, fmt.Errorf("missing authentication token")
	}
	return s.jwtValidator.ValidateToken(r.Context(), tokenString)
}

// handleWebSocket handles WebSocket connection requests
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	log.Printf("New WebSocket connection request from %s", r.RemoteAddr)

	client, err := s.authenticate(r)
	if err != nil {
		log.Printf("Rejected connection from %s: %v", r.RemoteAddr, err)
		http.Error(w, fmt.Sprintf("Invalid token: %v", err), http.StatusUnauthorized)
		return
	}

	log.Printf("Authenticated client: %s (%s) from %s", client.Username, client.ID, r.RemoteAddr)

	ws, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}

	conn := NewConnection(ws, s, client)

	s.connMu.Lock()
	s.connections[conn] = true
	s.connMu.Unlock()

	// Handle connection (blocking)
	conn.Handle()

	s.connMu.Lock()
	delete(s.connections, conn)
	s.connMu.Unlock()

	log.Printf("WebSocket connection closed: %s (%s)", client.Username, r.RemoteAddr)
}

// handleHealth handles health check requests
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
