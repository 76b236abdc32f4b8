package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"go-course-store/internal/model"
)

type downloadFixture struct {
	download  *DownloadService
	purchases *PurchaseService
	users     *memUserStore
}

func newDownloadFixture(t *testing.T, usernames ...string) downloadFixture {
	t.Helper()

	catalog := newTestCatalog(t)
	purchaseStore := newMemPurchaseStore()
	users := newMemUserStore()

	for _, username := range usernames {
		require.NoError(t, users.Create(context.Background(), model.User{
			Username:  username,
			Balance:   100,
			CreatedAt: time.Now().UTC(),
		}))
	}

	return downloadFixture{
		download:  NewDownloadService(catalog, purchaseStore, users),
		purchases: NewPurchaseService(catalog, purchaseStore),
		users:     users,
	}
}

func TestAuthorizeUnknownVideo(t *testing.T) {
	t.Parallel()

	fx := newDownloadFixture(t, "alice")

	_, err := fx.download.Authorize(context.Background(), "alice", 999)
	requireCode(t, err, "NOT_FOUND")
}

func TestAuthorizeWithoutPurchase(t *testing.T) {
	t.Parallel()

	fx := newDownloadFixture(t, "alice")

	_, err := fx.download.Authorize(context.Background(), "alice", 101)
	requireCode(t, err, "FORBIDDEN")

	user, err := fx.users.FindByUsername(context.Background(), "alice")
	require.NoError(t, err)
	require.Zero(t, user.DownloadCount)
}

func TestAuthorizeDirectVideoPurchase(t *testing.T) {
	t.Parallel()

	fx := newDownloadFixture(t, "alice")
	ctx := context.Background()

	_, err := fx.purchases.Purchase(ctx, "alice", "video", 101)
	require.NoError(t, err)

	video, err := fx.download.Authorize(ctx, "alice", 101)
	require.NoError(t, err)
	require.Equal(t, "intro", video.Title)

	// Owning one video grants nothing else, not even a sibling.
	_, err = fx.download.Authorize(ctx, "alice", 102)
	requireCode(t, err, "FORBIDDEN")
}

func TestAuthorizeCategoryPurchaseCoversAllVideos(t *testing.T) {
	t.Parallel()

	fx := newDownloadFixture(t, "alice")
	ctx := context.Background()

	_, err := fx.purchases.Purchase(ctx, "alice", "category", 1)
	require.NoError(t, err)

	for _, videoID := range []int64{101, 102} {
		_, err := fx.download.Authorize(ctx, "alice", videoID)
		require.NoError(t, err)
	}

	// Videos of another category stay off limits.
	_, err = fx.download.Authorize(ctx, "alice", 201)
	requireCode(t, err, "FORBIDDEN")
}

func TestAuthorizeIncrementsDownloadCountPerCall(t *testing.T) {
	t.Parallel()

	fx := newDownloadFixture(t, "alice")
	ctx := context.Background()

	_, err := fx.purchases.Purchase(ctx, "alice", "video", 101)
	require.NoError(t, err)

	const calls = 5
	for i := 0; i < calls; i++ {
		_, err := fx.download.Authorize(ctx, "alice", 101)
		require.NoError(t, err)
	}

	user, err := fx.users.FindByUsername(ctx, "alice")
	require.NoError(t, err)
	require.Equal(t, calls, user.DownloadCount)
}

func TestPurchaseAndDownloadFlow(t *testing.T) {
	t.Parallel()

	fx := newDownloadFixture(t, "alice")
	ctx := context.Background()

	_, err := fx.purchases.Purchase(ctx, "alice", "video", 101)
	require.NoError(t, err)

	_, err = fx.download.Authorize(ctx, "alice", 101)
	require.NoError(t, err)

	_, err = fx.download.Authorize(ctx, "alice", 201)
	requireCode(t, err, "FORBIDDEN")

	_, err = fx.purchases.Purchase(ctx, "alice", "category", 2)
	require.NoError(t, err)

	_, err = fx.download.Authorize(ctx, "alice", 201)
	require.NoError(t, err)
}
