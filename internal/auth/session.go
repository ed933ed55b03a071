package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidSession = errors.New("invalid or expired session")
)

// SessionState is the browsing state carried in the session cookie. The
// absence of a valid cookie is the logged-out state; the states cycle
// logged_out -> active -> post_logout -> logged_out.
type SessionState string

const (
	// StateActive means the user is logged in and sees the dashboard.
	StateActive SessionState = "active"
	// StatePostLogout means the user just logged out and sees the
	// farewell screen until they return to the login page.
	StatePostLogout SessionState = "post_logout"
)

// SessionManager issues and validates signed session tokens.
type SessionManager struct {
	secretKey []byte
	ttl       time.Duration
}

// SessionClaims are the custom JWT claims for one browsing session.
type SessionClaims struct {
	Username string       `json:"username,omitempty"`
	State    SessionState `json:"state"`
	jwt.RegisteredClaims
}

// NewSessionManager creates a session manager with the given signing secret
// and token lifetime. secretKey should be a strong random string.
func NewSessionManager(secretKey string, ttl time.Duration) *SessionManager {
	return &SessionManager{
		secretKey: []byte(secretKey),
		ttl:       ttl,
	}
}

// Issue creates a signed session token for the given username and state.
// Post-logout sessions carry no username.
func (m *SessionManager) Issue(username string, state SessionState) (string, error) {
	if state == StatePostLogout {
		username = ""
	}
	claims := &SessionClaims{
		Username: username,
		State:    state,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(m.ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(m.secretKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}
	return tokenString, nil
}

// Validate parses and validates a session token, returning the claims if
// valid.
func (m *SessionManager) Validate(tokenString string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(
		tokenString,
		&SessionClaims{},
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return m.secretKey, nil
		},
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSession, err)
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidSession
	}
	return claims, nil
}
