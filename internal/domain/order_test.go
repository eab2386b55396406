package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/domain"
)

func row(orderID, userID, productID string, count int) domain.OrderRow {
	return domain.OrderRow{
		OrderID:   orderID,
		UserID:    userID,
		Username:  "user-" + userID,
		CreatedAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		ProductID: productID,
		Product:   "product-" + productID,
		Count:     count,
	}
}

func TestMergeLineItems(t *testing.T) {
	merged := domain.MergeLineItems([]domain.LineItemRequest{
		{ProductID: "p2", Count: 1},
		{ProductID: "p1", Count: 2},
		{ProductID: "p2", Count: 3},
	})

	assert.Equal(t, []domain.LineItemRequest{
		{ProductID: "p2", Count: 4},
		{ProductID: "p1", Count: 2},
	}, merged)
}

func TestGroupByOrder_FirstSeenOrder(t *testing.T) {
	rows := []domain.OrderRow{
		row("o2", "u1", "p1", 1),
		row("o1", "u1", "p2", 2),
		row("o2", "u1", "p3", 3),
	}

	views := domain.GroupByOrder(rows)

	require.Len(t, views, 2)
	assert.Equal(t, "o2", views[0].OrderID)
	require.Len(t, views[0].Products, 2)
	assert.Equal(t, "p1", views[0].Products[0].ProductID)
	assert.Equal(t, "p3", views[0].Products[1].ProductID)
	assert.Equal(t, "o1", views[1].OrderID)
	assert.Equal(t, 2, views[1].Products[0].Count)
}

func TestGroupByOrder_Empty(t *testing.T) {
	views := domain.GroupByOrder(nil)
	assert.NotNil(t, views)
	assert.Empty(t, views)
}

func TestGroupByUser(t *testing.T) {
	rows := []domain.OrderRow{
		row("o1", "u2", "p1", 1),
		row("o2", "u1", "p1", 1),
		row("o1", "u2", "p2", 5),
		row("o3", "u2", "p3", 1),
	}

	users := domain.GroupByUser(rows)

	require.Len(t, users, 2)
	assert.Equal(t, "u2", users[0].UserID)
	assert.Equal(t, "user-u2", users[0].Username)
	require.Len(t, users[0].Orders, 2)
	assert.Equal(t, "o1", users[0].Orders[0].OrderID)
	assert.Len(t, users[0].Orders[0].Products, 2)
	assert.Equal(t, "o3", users[0].Orders[1].OrderID)

	assert.Equal(t, "u1", users[1].UserID)
	require.Len(t, users[1].Orders, 1)
	assert.Equal(t, "o2", users[1].Orders[0].OrderID)
}
