package service

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"go-course-store/internal/model"
)

func newTestCatalog(t *testing.T) *CatalogService {
	t.Helper()

	path := writeCatalogFile(t, []model.Category{
		{ID: 1, Name: "go", Price: 128, Videos: []model.Video{
			{ID: 101, Title: "intro", Price: 5},
			{ID: 102, Title: "structs", Price: 5},
		}},
		{ID: 2, Name: "sql", Price: 128, Videos: []model.Video{
			{ID: 201, Title: "joins", Price: 5},
		}},
	})

	catalog, err := NewCatalogService(path)
	require.NoError(t, err)
	return catalog
}

func TestPurchaseRecordsItem(t *testing.T) {
	t.Parallel()

	svc := NewPurchaseService(newTestCatalog(t), newMemPurchaseStore())
	ctx := context.Background()

	purchase, err := svc.Purchase(ctx, "alice", "video", 101)
	require.NoError(t, err)
	require.Equal(t, model.ItemTypeVideo, purchase.ItemType)
	require.Equal(t, int64(101), purchase.ItemID)

	listed, err := svc.List(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, listed, 1)
}

func TestPurchaseValidatesItemType(t *testing.T) {
	t.Parallel()

	svc := NewPurchaseService(newTestCatalog(t), newMemPurchaseStore())

	_, err := svc.Purchase(context.Background(), "alice", "bundle", 101)
	requireCode(t, err, "INVALID_ITEM_TYPE")
}

func TestPurchaseValidatesItemExists(t *testing.T) {
	t.Parallel()

	svc := NewPurchaseService(newTestCatalog(t), newMemPurchaseStore())
	ctx := context.Background()

	_, err := svc.Purchase(ctx, "alice", "video", 999)
	requireCode(t, err, "NOT_FOUND")

	_, err = svc.Purchase(ctx, "alice", "category", 7)
	requireCode(t, err, "NOT_FOUND")
}

func TestPurchaseRejectsDuplicates(t *testing.T) {
	t.Parallel()

	svc := NewPurchaseService(newTestCatalog(t), newMemPurchaseStore())
	ctx := context.Background()

	_, err := svc.Purchase(ctx, "alice", "video", 101)
	require.NoError(t, err)

	_, err = svc.Purchase(ctx, "alice", "video", 101)
	requireCode(t, err, "DUPLICATE_PURCHASE")

	// Same item for another user is fine.
	_, err = svc.Purchase(ctx, "bob", "video", 101)
	require.NoError(t, err)
}

func TestPurchaseDuplicateUnderConcurrency(t *testing.T) {
	t.Parallel()

	svc := NewPurchaseService(newTestCatalog(t), newMemPurchaseStore())
	ctx := context.Background()

	const attempts = 16
	var wg sync.WaitGroup
	errs := make([]error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Purchase(ctx, "alice", "category", 2)
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		} else {
			requireCode(t, err, "DUPLICATE_PURCHASE")
		}
	}
	require.Equal(t, 1, succeeded)

	listed, err := svc.List(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, listed, 1)
}
