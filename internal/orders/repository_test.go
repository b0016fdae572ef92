package orders

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hazolabs/storefront-backend/pkg/config"
	"github.com/hazolabs/storefront-backend/pkg/db"
	"github.com/hazolabs/storefront-backend/pkg/db/models"
	"github.com/hazolabs/storefront-backend/pkg/pagination"
)

func setupOrdersRepo(t *testing.T) (*Repository, *db.Client) {
	t.Helper()

	cfg := config.DBConfig{
		Path:         filepath.Join(t.TempDir(), "orders_repo_test.db"),
		BusyTimeout:  5 * time.Second,
		MaxOpenConns: 1,
	}
	client, err := db.New(context.Background(), cfg, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	require.NoError(t, client.DB().AutoMigrate(&models.Order{}, &models.OrderItem{}))
	return NewRepository(client.DB()), client
}

func storedOrder(name string, total int64) *models.Order {
	return &models.Order{
		CustomerName:  name,
		CustomerPhone: "0912345678",
		Subtotal:      decimal.NewFromInt(total),
		TotalAmount:   decimal.NewFromInt(total),
	}
}

func TestRepositorySetOrderNumber(t *testing.T) {
	repo, _ := setupOrdersRepo(t)
	ctx := context.Background()

	order := storedOrder("Mei Lin", 780)
	require.NoError(t, repo.CreateOrder(ctx, order))
	require.NotZero(t, order.ID)

	require.NoError(t, repo.SetOrderNumber(ctx, order.ID, "ORD-2026-000042"))

	reloaded, err := repo.FindByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, "ORD-2026-000042", reloaded.OrderNumber)
}

func TestRepositoryFindByIDPreloadsItems(t *testing.T) {
	repo, _ := setupOrdersRepo(t)
	ctx := context.Background()

	order := storedOrder("Mei Lin", 390)
	require.NoError(t, repo.CreateOrder(ctx, order))
	require.NoError(t, repo.CreateItem(ctx, &models.OrderItem{
		OrderID:     order.ID,
		ProductName: "Mango Ice",
		UnitPrice:   decimal.NewFromInt(390),
		Quantity:    1,
		TotalPrice:  decimal.NewFromInt(390),
	}))

	reloaded, err := repo.FindByID(ctx, order.ID)
	require.NoError(t, err)
	require.Len(t, reloaded.Items, 1)
	assert.Equal(t, "Mango Ice", reloaded.Items[0].ProductName)
	assert.True(t, reloaded.Items[0].TotalPrice.Equal(decimal.NewFromInt(390)))
}

func TestRepositoryListPaginatesNewestFirst(t *testing.T) {
	repo, client := setupOrdersRepo(t)
	ctx := context.Background()

	base := time.Date(2026, time.February, 1, 10, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		order := storedOrder("Mei Lin", 100)
		require.NoError(t, repo.CreateOrder(ctx, order))
		// spread created_at so the ordering is not decided by id alone
		require.NoError(t, client.DB().Model(&models.Order{}).
			Where("id = ?", order.ID).
			Update("created_at", base.Add(time.Duration(i)*time.Minute)).Error)
	}

	rows, total, err := repo.List(ctx, pagination.Params{Page: 1, Limit: 2})
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	require.Len(t, rows, 2)
	assert.True(t, rows[0].CreatedAt.After(rows[1].CreatedAt))

	rest, _, err := repo.List(ctx, pagination.Params{Page: 2, Limit: 2})
	require.NoError(t, err)
	assert.Len(t, rest, 1)
}
