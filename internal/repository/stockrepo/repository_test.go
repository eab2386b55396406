package stockrepo_test

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperror "storefront/internal/errors"
	"storefront/internal/pkg/cache"
	"storefront/internal/pkg/database"
	"storefront/internal/pkg/logger"
	"storefront/internal/repository/stockrepo"
)

const productID = "6f1f9a4e-4a0a-4c1e-9d59-0d8c1b0f5a11"

var (
	updateSQL = regexp.QuoteMeta("SET stock = stock + $2, updated_at = $3") + `\s+` +
		regexp.QuoteMeta("WHERE id = $1 AND stock + $2 >= 0")
	selectStockSQL = regexp.QuoteMeta("SELECT stock FROM products WHERE id = $1")
)

func newRepo(t *testing.T) (*stockrepo.StockRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return stockrepo.NewStockRepository(db, nil, time.Second, logger.NewNop()), mock
}

func TestAdjustStock(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		repo, mock := newRepo(t)
		now := time.Now().UTC()

		mock.ExpectQuery(updateSQL).
			WithArgs(productID, -2, sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "stock", "category_id", "branch_id", "created_at", "updated_at"}).
				AddRow(productID, "Notebook", 3, "cat-1", "br-1", now, now))

		product, err := repo.AdjustStock(context.Background(), productID, -2)

		require.NoError(t, err)
		assert.Equal(t, 3, product.Stock)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("InsufficientStock", func(t *testing.T) {
		repo, mock := newRepo(t)

		mock.ExpectQuery(updateSQL).
			WithArgs(productID, -5, sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))
		mock.ExpectQuery(selectStockSQL).
			WithArgs(productID).
			WillReturnRows(sqlmock.NewRows([]string{"stock"}).AddRow(2))

		_, err := repo.AdjustStock(context.Background(), productID, -5)

		var stockErr *apperror.InsufficientStockError
		require.ErrorAs(t, err, &stockErr)
		assert.Equal(t, productID, stockErr.ProductID)
		assert.Equal(t, 5, stockErr.Requested)
		assert.Equal(t, 2, stockErr.Available)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("ProductMissing", func(t *testing.T) {
		repo, mock := newRepo(t)

		mock.ExpectQuery(updateSQL).WillReturnRows(sqlmock.NewRows([]string{"id"}))
		mock.ExpectQuery(selectStockSQL).WillReturnRows(sqlmock.NewRows([]string{"stock"}))

		_, err := repo.AdjustStock(context.Background(), productID, -1)

		var notFound *apperror.ProductNotFoundError
		assert.ErrorAs(t, err, &notFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("MalformedIDNeverHitsDB", func(t *testing.T) {
		repo, mock := newRepo(t)

		_, err := repo.AdjustStock(context.Background(), "not-a-uuid", -1)

		var notFound *apperror.ProductNotFoundError
		assert.ErrorAs(t, err, &notFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

// recordingCache registra cada Delete e se o mock SQL já tinha visto o commit naquele momento.
type recordingCache struct {
	mock    sqlmock.Sqlmock
	deleted []string
	afterTx []bool
}

func (c *recordingCache) Get(context.Context, string) (string, error) { return "", cache.ErrCacheMiss }
func (c *recordingCache) Set(context.Context, string, interface{}, time.Duration) error {
	return nil
}
func (c *recordingCache) Delete(_ context.Context, keys ...string) error {
	c.deleted = append(c.deleted, keys...)
	c.afterTx = append(c.afterTx, c.mock.ExpectationsWereMet() == nil)
	return nil
}
func (c *recordingCache) Incr(context.Context, string) (int64, error)         { return 0, nil }
func (c *recordingCache) Expire(context.Context, string, time.Duration) error { return nil }

func TestAdjustStock_InvalidatesCacheAfterCommit(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	rc := &recordingCache{mock: mock}
	repo := stockrepo.NewStockRepository(db, rc, time.Second, logger.NewNop())
	tm := database.NewTxManager(db)
	now := time.Now().UTC()

	mock.ExpectBegin()
	mock.ExpectQuery(updateSQL).
		WithArgs(productID, -2, sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "stock", "category_id", "branch_id", "created_at", "updated_at"}).
			AddRow(productID, "Notebook", 3, "cat-1", "br-1", now, now))
	mock.ExpectCommit()

	err = tm.WithinTx(context.Background(), func(ctx context.Context) error {
		if _, err := repo.AdjustStock(ctx, productID, -2); err != nil {
			return err
		}
		assert.Empty(t, rc.deleted, "cache não pode cair antes do commit")
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, []string{cache.ProductViewKey(productID)}, rc.deleted)
	assert.Equal(t, []bool{true}, rc.afterTx)
}

func TestAdjustStock_RollbackKeepsCache(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	rc := &recordingCache{mock: mock}
	repo := stockrepo.NewStockRepository(db, rc, time.Second, logger.NewNop())
	tm := database.NewTxManager(db)
	now := time.Now().UTC()

	mock.ExpectBegin()
	mock.ExpectQuery(updateSQL).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "stock", "category_id", "branch_id", "created_at", "updated_at"}).
			AddRow(productID, "Notebook", 3, "cat-1", "br-1", now, now))
	mock.ExpectRollback()

	err = tm.WithinTx(context.Background(), func(ctx context.Context) error {
		if _, err := repo.AdjustStock(ctx, productID, -2); err != nil {
			return err
		}
		return apperror.NewInsufficientStockError("outro", 1, 0)
	})

	assert.Error(t, err)
	assert.Empty(t, rc.deleted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetStock(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery(selectStockSQL).
		WithArgs(productID).
		WillReturnRows(sqlmock.NewRows([]string{"stock"}).AddRow(7))

	stock, err := repo.GetStock(context.Background(), productID)

	require.NoError(t, err)
	assert.Equal(t, 7, stock)
}
