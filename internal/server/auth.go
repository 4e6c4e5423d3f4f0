package server

import (
	"context"
	"crypto/ecdsa"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/golang-jwt/jwt/v5"
	"github.com/gravitas-games/hexgeom/internal/config"
	"github.com/gravitas-games/hexgeom/pkg/models"
)

var (
	ErrTokenExpired     = errors.New("token expired")
	ErrTokenBlacklisted = errors.New("token is blacklisted")
	ErrNotActivated     = errors.New("user not activated")
	ErrBanned           = errors.New("user is banned")
)

// JWTValidator handles JWT token validation
type JWTValidator struct {
	config    *config.Config
	publicKey *ecdsa.PublicKey
	keyMu     sync.RWMutex
	redis     *redis.Client // nil skips the blacklist check
	http      *http.Client
}

// Claims represents JWT token claims issued by the login server
type Claims struct {
	UserID      int64  `json:"user_id"`
	Email       string `json:"email"`
	Username    string `json:"username"`
	AuthMethod  string `json:"auth_method"`
	Permissions int64  `json:"permissions"`
	Activated   int64  `json:"activated"`
	jwt.RegisteredClaims
}

// NewJWTValidator creates a validator that fetches its public key from
// cfg.JWT.PublicKeyURL and refreshes it until ctx is done
func NewJWTValidator(ctx context.Context, cfg *config.Config, redisClient *redis.Client) (*JWTValidator, error) {
	validator := &JWTValidator{
		config: cfg,
		redis:  redisClient,
		http:   &http.Client{Timeout: 15 * time.Second},
	}

	if err := validator.RefreshPublicKey(ctx); err != nil {
		return nil, fmt.Errorf("failed to fetch public key: %w", err)
	}

	go validator.periodicKeyRefresh(ctx)

	log.Println("JWT validator initialized")
	return validator, nil
}

// NewJWTValidatorWithKey creates a validator around a fixed public key
func NewJWTValidatorWithKey(cfg *config.Config, key *ecdsa.PublicKey, redisClient *redis.Client) *JWTValidator {
	return &JWTValidator{config: cfg, publicKey: key, redis: redisClient}
}

// RefreshPublicKey fetches the public key from the login server
func (v *JWTValidator) RefreshPublicKey(ctx context.Context) error {
	log.Printf("Fetching public key from %s", v.config.JWT.PublicKeyURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, v.config.JWT.PublicKeyURL, nil)
	if err != nil {
		return fmt.Errorf("failed to build public key request: %w", err)
	}
	resp, err := v.http.Do(req)
	if err != nil {
		return fmt.Errorf("failed to fetch public key: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("public key endpoint returned status %d", resp.StatusCode)
	}

	keyData, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read public key: %w", err)
	}

	key, err := ParsePublicKey(keyData)
	if err != nil {
		return err
	}

	v.keyMu.Lock()
	v.publicKey = key
	v.keyMu.Unlock()

	log.Println("Public key refreshed successfully")
	return nil
}

// ParsePublicKey decodes a PEM-encoded ECDSA public key
func ParsePublicKey(keyData []byte) (*ecdsa.PublicKey, error) {
	block, _ := pem.Decode(keyData)
	if block == nil {
		return nil, fmt.Errorf("failed to decode PEM block")
	}

	pubKey, err := x509.ParsePKIXPublicKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("failed to parse public key: %w", err)
	}

	ecdsaKey, ok := pubKey.(*ecdsa.PublicKey)
	if !ok {
		return nil, fmt.Errorf("public key is not ECDSA")
	}
	return ecdsaKey, nil
}

// periodicKeyRefresh refreshes the public key periodically
func (v *JWTValidator) periodicKeyRefresh(ctx context.Context) {
	refreshInterval := time.Duration(v.config.JWT.PublicKeyRefreshHrs) * time.Hour

	ticker := time.NewTicker(refreshInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := v.RefreshPublicKey(ctx); err != nil {
				log.Printf("Failed to refresh public key: %v", err)
			}
		}
	}
}

// ValidateToken validates a JWT token and returns client information
func (v *JWTValidator) ValidateToken(ctx context.Context, tokenString string) (*models.Client, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodECDSA); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}

		v.keyMu.RLock()
		defer v.keyMu.RUnlock()
		return v.publicKey, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}

	if claims.Issuer != v.config.JWT.Issuer {
		return nil, fmt.Errorf("invalid issuer: expected %s, got %s", v.config.JWT.Issuer, claims.Issuer)
	}

	if claims.Activated == 0 {
		return nil, ErrNotActivated
	}
	if claims.Activated == -1 {
		return nil, ErrBanned
	}

	userIDStr := strconv.FormatInt(claims.UserID, 10)
	if v.redis != nil {
		blacklistKey := v.config.Redis.BlacklistPrefix + userIDStr
		isBlacklisted, err := v.redis.Exists(ctx, blacklistKey).Result()
		if err != nil {
			log.Printf("Warning: Failed to check blacklist: %v", err)
			// Continue anyway - don't fail authentication if Redis is down
		} else if isBlacklisted > 0 {
			return nil, ErrTokenBlacklisted
		}
	}

	return &models.Client{
		ID:          userIDStr,
		Username:    claims.Username,
		Email:       claims.Email,
		Permissions: claims.Permissions,
		Activated:   claims.Activated,
		AuthMethod:  claims.AuthMethod,
	}, nil
}

// extractTokenFromHeader extracts JWT token from WebSocket connection header
func extractTokenFromHeader(r *http.Request) string {
	// Try Sec-WebSocket-Protocol header first (recommended)
	if protocols := r.Header.Get("Sec-WebSocket-Protocol"); protocols != "" {
		// Format: "access_token, <token>"
		parts := splitAndTrim(protocols, ",")
		if len(parts) == 2 && parts[0] == "access_token" {
			return parts[1]
		}
	}

	// Try Authorization header
	if auth := r.Header.Get("Authorization"); strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}

	// Try query parameter (less secure, but supported)
	return r.URL.Query().Get("token")
}

// splitAndTrim splits a string and drops empty, space-trimmed parts
func splitAndTrim(s, sep string) []string {
	var result []string
	for _, part := range strings.Split(s, sep) {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
