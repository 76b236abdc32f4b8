package service

import (
	"context"
	"sync"

	"go-course-store/internal/model"
)

// In-memory stores backing the service tests. They uphold the same
// contracts as the Postgres repositories: unique usernames, unique
// (username, item_type, item_id) purchase tuples, atomic counter bumps.

type memUserStore struct {
	mu    sync.Mutex
	users map[string]model.User
}

func newMemUserStore() *memUserStore {
	return &memUserStore{users: map[string]model.User{}}
}

func (s *memUserStore) Create(_ context.Context, u model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.users[u.Username]; exists {
		return model.ErrUserAlreadyExists
	}
	s.users[u.Username] = u
	return nil
}

func (s *memUserStore) FindByUsername(_ context.Context, username string) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, exists := s.users[username]
	if !exists {
		return model.User{}, model.ErrUserNotFound
	}
	return u, nil
}

func (s *memUserStore) UpdatePassword(_ context.Context, username string, passwordHash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, exists := s.users[username]
	if !exists {
		return model.ErrUserNotFound
	}
	u.PasswordHash = passwordHash
	s.users[username] = u
	return nil
}

func (s *memUserStore) IncrementDownloadCount(_ context.Context, username string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, exists := s.users[username]
	if !exists {
		return model.ErrUserNotFound
	}
	u.DownloadCount++
	s.users[username] = u
	return nil
}

type purchaseKey struct {
	username string
	itemType model.ItemType
	itemID   int64
}

type memPurchaseStore struct {
	mu      sync.Mutex
	seen    map[purchaseKey]struct{}
	records []model.Purchase
}

func newMemPurchaseStore() *memPurchaseStore {
	return &memPurchaseStore{seen: map[purchaseKey]struct{}{}}
}

func (s *memPurchaseStore) Create(_ context.Context, p model.Purchase) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := purchaseKey{username: p.Username, itemType: p.ItemType, itemID: p.ItemID}
	if _, exists := s.seen[key]; exists {
		return model.ErrDuplicatePurchase
	}
	s.seen[key] = struct{}{}
	s.records = append(s.records, p)
	return nil
}

func (s *memPurchaseStore) ListByUsername(_ context.Context, username string) ([]model.Purchase, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.Purchase, 0)
	for _, p := range s.records {
		if p.Username == username {
			out = append(out, p)
		}
	}
	return out, nil
}
