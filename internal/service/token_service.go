package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"go-course-store/internal/model"
)

// TokenService issues and verifies HS256 session tokens. Tokens are the only
// session state: there is no server-side revocation, an expired token simply
// requires a fresh login.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenService(secret string, ttl time.Duration) (*TokenService, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, errors.New("token secret is required")
	}
	if ttl <= 0 {
		return nil, errors.New("token ttl must be positive")
	}

	return &TokenService{secret: []byte(secret), ttl: ttl}, nil
}

func (s *TokenService) Issue(username string) (model.Session, error) {
	now := time.Now().UTC()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": username,
		"jti": uuid.NewString(),
		"iat": now.Unix(),
		"exp": now.Add(s.ttl).Unix(),
	})

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return model.Session{}, fmt.Errorf("sign token: %w", err)
	}

	return model.Session{
		AccessToken: signed,
		TokenType:   "Bearer",
		ExpiresIn:   int64(s.ttl.Seconds()),
		Username:    username,
	}, nil
}

// Verify returns the subject username of a valid token. Expired and
// malformed tokens map to distinct errors so the middleware can log the
// cause, even though callers see one unauthenticated condition.
func (s *TokenService) Verify(tokenString string) (string, error) {
	parsed, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", token.Method.Alg())
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", model.ErrTokenExpired
		}
		return "", model.ErrTokenInvalid
	}
	if !parsed.Valid {
		return "", model.ErrTokenInvalid
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return "", model.ErrTokenInvalid
	}

	username, _ := claims["sub"].(string)
	if strings.TrimSpace(username) == "" {
		return "", model.ErrTokenInvalid
	}

	return username, nil
}
