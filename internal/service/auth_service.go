package service

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"go-course-store/internal/model"
	"go-course-store/pkg/apierror"
)

const (
	startingBalance   = 100.0
	minPasswordLength = 6
	bcryptCost        = 12
)

// AuthService is the credential store: registration, login, password
// changes and profile reads. Session issuance is delegated to TokenService.
type AuthService struct {
	users     UserStore
	purchases PurchaseStore
	tokens    *TokenService
}

func NewAuthService(users UserStore, purchases PurchaseStore, tokens *TokenService) *AuthService {
	return &AuthService{users: users, purchases: purchases, tokens: tokens}
}

// Register creates the user and immediately issues a session token.
// The username unique key decides ties between concurrent registrations.
func (s *AuthService) Register(ctx context.Context, username string, password string) (model.Session, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return model.Session{}, apierror.BadRequest("BAD_REQUEST", "username and password are required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return model.Session{}, err
	}

	now := time.Now().UTC()
	err = s.users.Create(ctx, model.User{
		Username:      username,
		PasswordHash:  string(hash),
		Balance:       startingBalance,
		DownloadCount: 0,
		CreatedAt:     now,
		UpdatedAt:     now,
	})
	if errors.Is(err, model.ErrUserAlreadyExists) {
		return model.Session{}, apierror.New("ALREADY_EXISTS", "username already registered", username, http.StatusBadRequest)
	}
	if err != nil {
		return model.Session{}, err
	}

	return s.tokens.Issue(username)
}

func (s *AuthService) Login(ctx context.Context, username string, password string) (model.Session, error) {
	user, err := s.users.FindByUsername(ctx, strings.TrimSpace(username))
	if errors.Is(err, model.ErrUserNotFound) {
		return model.Session{}, apierror.New("INVALID_CREDENTIALS", "incorrect username or password", "", http.StatusUnauthorized)
	}
	if err != nil {
		return model.Session{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return model.Session{}, apierror.New("INVALID_CREDENTIALS", "incorrect username or password", "", http.StatusUnauthorized)
	}

	return s.tokens.Issue(user.Username)
}

func (s *AuthService) ChangePassword(ctx context.Context, username string, currentPassword string, newPassword string) error {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(currentPassword)); err != nil {
		return apierror.BadRequest("INVALID_CREDENTIALS", "incorrect current password")
	}

	if len(newPassword) < minPasswordLength {
		return apierror.BadRequest("POLICY_VIOLATION", "new password must be at least 6 characters long")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcryptCost)
	if err != nil {
		return err
	}

	return s.users.UpdatePassword(ctx, username, string(hash))
}

func (s *AuthService) Profile(ctx context.Context, username string) (model.Profile, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return model.Profile{}, err
	}

	purchases, err := s.purchases.ListByUsername(ctx, username)
	if err != nil {
		return model.Profile{}, err
	}

	return model.Profile{
		Username:      user.Username,
		Balance:       user.Balance,
		DownloadCount: user.DownloadCount,
		Purchases:     purchases,
	}, nil
}
