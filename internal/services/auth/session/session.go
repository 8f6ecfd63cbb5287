// Package session issues and verifies signed session tokens.
//
// A Session is resolved once per request by the web server and passed
// explicitly to handlers and the submission coordinator. Nothing in the
// repository reads the current session from a package-level variable.
package session

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	apperrors "github.com/louisbranch/inpact/internal/platform/errors"
	"github.com/louisbranch/inpact/internal/platform/id"
)

const (
	// DefaultTTL is the session lifetime when none is configured.
	DefaultTTL = 7 * 24 * time.Hour
	// DefaultIssuer names the token issuer.
	DefaultIssuer = "inpact"
	// MinSecretBytes is the shortest accepted HMAC secret.
	MinSecretBytes = 32
)

// ErrInvalid indicates a missing, malformed, or expired session token.
var ErrInvalid = apperrors.New(apperrors.CodeNotAuthenticated, "session is invalid")

// Session is the signed-in identity for one browser.
type Session struct {
	ID          string
	UserID      string
	Email       string
	DisplayName string
	ExpiresAt   time.Time
}

// Authenticated reports whether s carries a user identity. A nil session is
// anonymous.
func (s *Session) Authenticated() bool {
	return s != nil && strings.TrimSpace(s.UserID) != ""
}

// Identity is the account data a session is issued for.
type Identity struct {
	UserID      string
	Email       string
	DisplayName string
}

// Config configures a Manager.
type Config struct {
	Secret []byte
	TTL    time.Duration
	Issuer string
	Now    func() time.Time
}

// Manager signs and verifies HS256 session tokens.
type Manager struct {
	secret []byte
	ttl    time.Duration
	issuer string
	now    func() time.Time
}

type claims struct {
	jwt.RegisteredClaims
	Email       string `json:"email,omitempty"`
	DisplayName string `json:"name,omitempty"`
}

// NewManager validates cfg and returns a Manager.
func NewManager(cfg Config) (*Manager, error) {
	if len(cfg.Secret) < MinSecretBytes {
		return nil, fmt.Errorf("session secret must be at least %d bytes", MinSecretBytes)
	}
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultTTL
	}
	if strings.TrimSpace(cfg.Issuer) == "" {
		cfg.Issuer = DefaultIssuer
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &Manager{secret: cfg.Secret, ttl: cfg.TTL, issuer: cfg.Issuer, now: cfg.Now}, nil
}

// TTL returns the session lifetime.
func (m *Manager) TTL() time.Duration {
	return m.ttl
}

// Issue signs a new session for identity.
func (m *Manager) Issue(identity Identity) (string, Session, error) {
	userID := strings.TrimSpace(identity.UserID)
	if userID == "" {
		return "", Session{}, fmt.Errorf("session user id is required")
	}
	sessionID, err := id.NewID()
	if err != nil {
		return "", Session{}, fmt.Errorf("session id: %w", err)
	}
	now := m.now().UTC().Truncate(time.Second)
	expiresAt := now.Add(m.ttl)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    m.issuer,
			Subject:   userID,
			ID:        sessionID,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		Email:       strings.TrimSpace(identity.Email),
		DisplayName: strings.TrimSpace(identity.DisplayName),
	})
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", Session{}, fmt.Errorf("sign session: %w", err)
	}
	return signed, Session{
		ID:          sessionID,
		UserID:      userID,
		Email:       strings.TrimSpace(identity.Email),
		DisplayName: strings.TrimSpace(identity.DisplayName),
		ExpiresAt:   expiresAt,
	}, nil
}

// Verify parses token and returns its session.
func (m *Manager) Verify(token string) (Session, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return Session{}, ErrInvalid
	}

	var parsed claims
	_, err := jwt.ParseWithClaims(token, &parsed, func(*jwt.Token) (any, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(m.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		return Session{}, mapJWTError(err)
	}
	if strings.TrimSpace(parsed.Subject) == "" || strings.TrimSpace(parsed.ID) == "" {
		return Session{}, ErrInvalid
	}
	return Session{
		ID:          parsed.ID,
		UserID:      parsed.Subject,
		Email:       parsed.Email,
		DisplayName: parsed.DisplayName,
		ExpiresAt:   parsed.ExpiresAt.Time.UTC(),
	}, nil
}

// mapJWTError translates jwt library errors to the session error.
func mapJWTError(err error) error {
	if errors.Is(err, jwt.ErrTokenExpired) {
		return apperrors.Wrap(apperrors.CodeNotAuthenticated, "session is expired", err)
	}
	return apperrors.Wrap(apperrors.CodeNotAuthenticated, ErrInvalid.Message, err)
}
