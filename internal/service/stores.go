package service

import (
	"context"

	"go-course-store/internal/model"
)

// UserStore is the persistence surface the credential store and access
// resolver need. The Postgres implementation lives in internal/repository;
// tests substitute in-memory fakes.
type UserStore interface {
	Create(ctx context.Context, u model.User) error
	FindByUsername(ctx context.Context, username string) (model.User, error)
	UpdatePassword(ctx context.Context, username string, passwordHash string) error
	IncrementDownloadCount(ctx context.Context, username string) error
}

// PurchaseStore records and lists purchases. Create must reject a duplicate
// (username, item_type, item_id) tuple with model.ErrDuplicatePurchase even
// under concurrent calls.
type PurchaseStore interface {
	Create(ctx context.Context, p model.Purchase) error
	ListByUsername(ctx context.Context, username string) ([]model.Purchase, error)
}
