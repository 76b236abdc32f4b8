package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go-course-store/internal/model"
	"go-course-store/pkg/apierror"
)

// PurchaseService is the entitlement ledger. A purchase is a plain
// (username, item_type, item_id) record; entitlements are derived from it
// by DownloadService, never stored.
type PurchaseService struct {
	catalog   *CatalogService
	purchases PurchaseStore
}

func NewPurchaseService(catalog *CatalogService, purchases PurchaseStore) *PurchaseService {
	return &PurchaseService{catalog: catalog, purchases: purchases}
}

func (s *PurchaseService) Purchase(ctx context.Context, username string, itemType string, itemID int64) (model.Purchase, error) {
	kind := model.ItemType(strings.ToLower(strings.TrimSpace(itemType)))
	if !kind.Valid() {
		return model.Purchase{}, apierror.New("INVALID_ITEM_TYPE", "item_type must be \"video\" or \"category\"", itemType, http.StatusBadRequest)
	}

	if err := s.checkItemExists(kind, itemID); err != nil {
		return model.Purchase{}, err
	}

	purchase := model.Purchase{
		Username:  username,
		ItemType:  kind,
		ItemID:    itemID,
		CreatedAt: time.Now().UTC(),
	}

	err := s.purchases.Create(ctx, purchase)
	if errors.Is(err, model.ErrDuplicatePurchase) {
		return model.Purchase{}, apierror.New("DUPLICATE_PURCHASE", "you have already purchased this item", "", http.StatusBadRequest)
	}
	if err != nil {
		return model.Purchase{}, err
	}

	return purchase, nil
}

func (s *PurchaseService) List(ctx context.Context, username string) ([]model.Purchase, error) {
	return s.purchases.ListByUsername(ctx, username)
}

func (s *PurchaseService) checkItemExists(kind model.ItemType, itemID int64) error {
	switch kind {
	case model.ItemTypeVideo:
		if _, _, ok := s.catalog.FindVideo(itemID); !ok {
			return apierror.NotFound("video not found", fmt.Sprintf("%d", itemID))
		}
	case model.ItemTypeCategory:
		if _, ok := s.catalog.CategoryByID(itemID); !ok {
			return apierror.NotFound("category not found", fmt.Sprintf("%d", itemID))
		}
	}
	return nil
}
