package session

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"crossgate/internal/config"
	"crossgate/internal/domain"
	"crossgate/internal/port"
)

// Claims is the target application's session credential payload.
type Claims struct {
	jwt.RegisteredClaims
	Email         string `json:"email,omitempty"`
	EmailVerified bool   `json:"email_verified,omitempty"`
}

// Manager issues and validates stateless session credentials for the
// target application. Sessions in source and target are independent;
// nothing here touches the source application's session.
type Manager struct {
	secret []byte
	issuer string
	ttl    time.Duration
}

// NewManager creates a session Manager.
func NewManager(cfg config.SessionConfig) *Manager {
	return &Manager{
		secret: []byte(cfg.Secret),
		issuer: cfg.Issuer,
		ttl:    cfg.TTL,
	}
}

// Issue creates a signed session credential for a verified subject.
func (m *Manager) Issue(subject *domain.Subject) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(m.ttl)

	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject.ID,
			Issuer:    m.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			ID:        uuid.New().String(),
		},
		Email:         subject.Email,
		EmailVerified: subject.EmailVerified,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	value, err := token.SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("signing session credential: %w", err)
	}
	return value, expiresAt, nil
}

// Validate checks a session credential and returns its subject. An
// expired, malformed, or foreign credential is not a live session.
func (m *Manager) Validate(value string) (*domain.Subject, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(value, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, domain.ErrUnauthorized
	}
	if claims.Issuer != m.issuer || claims.Subject == "" {
		return nil, domain.ErrUnauthorized
	}

	return &domain.Subject{
		ID:            claims.Subject,
		Email:         claims.Email,
		EmailVerified: claims.EmailVerified,
	}, nil
}

// Compile-time check.
var _ port.SessionIssuer = (*Manager)(nil)
