package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"go-course-store/internal/model"
)

type PurchaseRepository struct {
	pool *pgxpool.Pool
}

func NewPurchaseRepository(pool *pgxpool.Pool) *PurchaseRepository {
	return &PurchaseRepository{pool: pool}
}

// Create inserts one purchase record. The purchases_unique_item constraint
// rejects a second (username, item_type, item_id) row even when two inserts
// race, which is what keeps the no-duplicate-purchase invariant under
// concurrent requests.
func (r *PurchaseRepository) Create(ctx context.Context, p model.Purchase) error {
	createdAt := p.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	_, err := r.pool.Exec(ctx,
		`INSERT INTO purchases (username, item_type, item_id, created_at)
		 VALUES ($1, $2, $3, $4)`,
		p.Username, string(p.ItemType), p.ItemID, createdAt)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return model.ErrDuplicatePurchase
	}
	if err != nil {
		return fmt.Errorf("create purchase: %w", err)
	}
	return nil
}

func (r *PurchaseRepository) ListByUsername(ctx context.Context, username string) ([]model.Purchase, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT username, item_type, item_id, created_at
		 FROM purchases WHERE username = $1 ORDER BY id`, username)
	if err != nil {
		return nil, fmt.Errorf("list purchases: %w", err)
	}
	defer rows.Close()

	purchases := make([]model.Purchase, 0)
	for rows.Next() {
		var p model.Purchase
		var itemType string
		if err := rows.Scan(&p.Username, &itemType, &p.ItemID, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan purchase: %w", err)
		}
		p.ItemType = model.ItemType(itemType)
		purchases = append(purchases, p)
	}
	return purchases, rows.Err()
}
