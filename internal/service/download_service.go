package service

import (
	"context"
	"fmt"
	"net/http"

	"go-course-store/internal/model"
	"go-course-store/pkg/apierror"
)

// DownloadService is the access resolver: it reconciles the catalog
// structure against the purchase ledger to decide whether a user may
// download a given video.
type DownloadService struct {
	catalog   *CatalogService
	purchases PurchaseStore
	users     UserStore
}

func NewDownloadService(catalog *CatalogService, purchases PurchaseStore, users UserStore) *DownloadService {
	return &DownloadService{catalog: catalog, purchases: purchases, users: users}
}

// Authorize grants access iff the user purchased the video directly or
// purchased its parent category. Every grant increments the user's
// download_count, repeat downloads of the same video included.
func (s *DownloadService) Authorize(ctx context.Context, username string, videoID int64) (model.Video, error) {
	video, categoryID, ok := s.catalog.FindVideo(videoID)
	if !ok {
		return model.Video{}, apierror.NotFound("video not found", fmt.Sprintf("%d", videoID))
	}

	purchases, err := s.purchases.ListByUsername(ctx, username)
	if err != nil {
		return model.Video{}, err
	}

	if !entitled(purchases, videoID, categoryID) {
		return model.Video{}, apierror.New("FORBIDDEN", "you have not purchased this item", "", http.StatusForbidden)
	}

	if err := s.users.IncrementDownloadCount(ctx, username); err != nil {
		return model.Video{}, err
	}

	return video, nil
}

func entitled(purchases []model.Purchase, videoID int64, categoryID int64) bool {
	for _, p := range purchases {
		if p.ItemType == model.ItemTypeVideo && p.ItemID == videoID {
			return true
		}
		if p.ItemType == model.ItemTypeCategory && p.ItemID == categoryID {
			return true
		}
	}
	return false
}
