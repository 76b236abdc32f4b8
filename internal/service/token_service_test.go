package service

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"go-course-store/internal/model"
)

const testSecret = "test-secret"

func signTestToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestTokenServiceIssueAndVerify(t *testing.T) {
	t.Parallel()

	svc, err := NewTokenService(testSecret, 30*time.Minute)
	require.NoError(t, err)

	session, err := svc.Issue("alice")
	require.NoError(t, err)
	require.Equal(t, "Bearer", session.TokenType)
	require.Equal(t, int64(1800), session.ExpiresIn)
	require.Equal(t, "alice", session.Username)

	username, err := svc.Verify(session.AccessToken)
	require.NoError(t, err)
	require.Equal(t, "alice", username)
}

func TestTokenServiceRejectsTampering(t *testing.T) {
	t.Parallel()

	svc, err := NewTokenService(testSecret, 30*time.Minute)
	require.NoError(t, err)

	session, err := svc.Issue("alice")
	require.NoError(t, err)

	t.Run("flipped payload byte", func(t *testing.T) {
		raw := []byte(session.AccessToken)
		mid := len(raw) / 2
		if raw[mid] == 'a' {
			raw[mid] = 'b'
		} else {
			raw[mid] = 'a'
		}

		_, err := svc.Verify(string(raw))
		require.ErrorIs(t, err, model.ErrTokenInvalid)
	})

	t.Run("signed with a different secret", func(t *testing.T) {
		forged := signTestToken(t, "other-secret", jwt.MapClaims{
			"sub": "alice",
			"exp": time.Now().Add(time.Hour).Unix(),
		})

		_, err := svc.Verify(forged)
		require.ErrorIs(t, err, model.ErrTokenInvalid)
	})

	t.Run("garbage token", func(t *testing.T) {
		_, err := svc.Verify("not-a-jwt")
		require.ErrorIs(t, err, model.ErrTokenInvalid)
	})

	t.Run("missing subject", func(t *testing.T) {
		anonymous := signTestToken(t, testSecret, jwt.MapClaims{
			"exp": time.Now().Add(time.Hour).Unix(),
		})

		_, err := svc.Verify(anonymous)
		require.ErrorIs(t, err, model.ErrTokenInvalid)
	})
}

func TestTokenServiceExpiryBoundary(t *testing.T) {
	t.Parallel()

	svc, err := NewTokenService(testSecret, 30*time.Minute)
	require.NoError(t, err)

	// A token issued 29 minutes ago with a 30-minute lifetime still works.
	issuedAt := time.Now().Add(-29 * time.Minute)
	fresh := signTestToken(t, testSecret, jwt.MapClaims{
		"sub": "alice",
		"iat": issuedAt.Unix(),
		"exp": issuedAt.Add(30 * time.Minute).Unix(),
	})

	username, err := svc.Verify(fresh)
	require.NoError(t, err)
	require.Equal(t, "alice", username)

	// One issued 31 minutes ago is expired, and reported as such.
	issuedAt = time.Now().Add(-31 * time.Minute)
	stale := signTestToken(t, testSecret, jwt.MapClaims{
		"sub": "alice",
		"iat": issuedAt.Unix(),
		"exp": issuedAt.Add(30 * time.Minute).Unix(),
	})

	_, err = svc.Verify(stale)
	require.ErrorIs(t, err, model.ErrTokenExpired)
}

func TestNewTokenServiceValidation(t *testing.T) {
	t.Parallel()

	_, err := NewTokenService("", 30*time.Minute)
	require.Error(t, err)

	_, err = NewTokenService(testSecret, 0)
	require.Error(t, err)
}
