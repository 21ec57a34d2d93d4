package token

import (
	"errors"
	"fmt"
	"strings"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
)

const defaultSecret = "blognoitro-secret-change-me"

// Claims is the session token payload: just the anonymous identity id.
type Claims struct {
	IdentityID string `json:"uid"`
	jwtlib.RegisteredClaims
}

// Service mints and verifies anonymous session tokens. The token binds a
// browser to the identity id it was issued, so write endpoints do not have
// to trust a client-supplied authorId.
type Service struct {
	secret []byte
	ttl    time.Duration
}

func NewService(secret string, ttl time.Duration) *Service {
	s := strings.TrimSpace(secret)
	if s == "" {
		s = defaultSecret
	}
	if ttl <= 0 {
		ttl = 365 * 24 * time.Hour
	}
	return &Service{secret: []byte(s), ttl: ttl}
}

// Mint issues a signed session token for the given identity id.
func (s *Service) Mint(identityID string) (string, error) {
	now := time.Now()
	claims := Claims{
		IdentityID: identityID,
		RegisteredClaims: jwtlib.RegisteredClaims{
			IssuedAt:  jwtlib.NewNumericDate(now),
			ExpiresAt: jwtlib.NewNumericDate(now.Add(s.ttl)),
		},
	}
	return jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims).SignedString(s.secret)
}

// Verify parses a session token and returns the identity id it carries.
func (s *Service) Verify(raw string) (string, error) {
	claims := &Claims{}
	tok, err := jwtlib.ParseWithClaims(raw, claims, func(t *jwtlib.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwtlib.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return "", err
	}
	if !tok.Valid || claims.IdentityID == "" {
		return "", errors.New("invalid session token")
	}
	return claims.IdentityID, nil
}
