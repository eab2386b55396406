package categoryrepo_test

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/domain"
	apperror "storefront/internal/errors"
	"storefront/internal/pkg/logger"
	"storefront/internal/repository/categoryrepo"
)

const categoryID = "5d2c9f3e-8a1b-4c7d-9e6f-0a1b2c3d4e5f"

var categoryCols = []string{"id", "name", "description", "created_at", "updated_at"}

func newRepo(t *testing.T) (*categoryrepo.CategoryRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return categoryrepo.NewCategoryRepository(db, time.Second, logger.NewNop()), mock
}

func TestCreate(t *testing.T) {
	repo, mock := newRepo(t)
	now := time.Now().UTC()

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO categories")).
		WithArgs(sqlmock.AnyArg(), "Ferramentas", "manuais", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows(categoryCols).AddRow(categoryID, "Ferramentas", "manuais", now, now))

	category, err := repo.Create(context.Background(), domain.Category{Name: "Ferramentas", Description: "manuais"})

	require.NoError(t, err)
	assert.Equal(t, categoryID, category.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_DuplicateName(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO categories")).
		WillReturnError(&pq.Error{Code: "23505", Constraint: "categories_name_key"})

	_, err := repo.Create(context.Background(), domain.Category{Name: "Ferramentas"})

	var conflict *apperror.ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "Unique constraint failed for categories_name_key", conflict.Msg)
}

func TestGetByID(t *testing.T) {
	t.Run("Found", func(t *testing.T) {
		repo, mock := newRepo(t)
		now := time.Now().UTC()

		mock.ExpectQuery(regexp.QuoteMeta("FROM categories WHERE id = $1")).
			WithArgs(categoryID).
			WillReturnRows(sqlmock.NewRows(categoryCols).AddRow(categoryID, "Ferramentas", "", now, now))

		category, err := repo.GetByID(context.Background(), categoryID)

		require.NoError(t, err)
		assert.Equal(t, "Ferramentas", category.Name)
	})

	t.Run("MalformedIDSkipsQuery", func(t *testing.T) {
		repo, mock := newRepo(t)

		_, err := repo.GetByID(context.Background(), "abc")

		var notFound *apperror.NotFoundError
		assert.ErrorAs(t, err, &notFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestDelete(t *testing.T) {
	t.Run("InUse", func(t *testing.T) {
		repo, mock := newRepo(t)

		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM categories WHERE id = $1")).
			WithArgs(categoryID).
			WillReturnError(&pq.Error{Code: "23503", Constraint: "products_category_id_fkey"})

		err := repo.Delete(context.Background(), categoryID)

		var conflict *apperror.ConflictError
		assert.ErrorAs(t, err, &conflict)
	})

	t.Run("Missing", func(t *testing.T) {
		repo, mock := newRepo(t)

		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM categories WHERE id = $1")).
			WithArgs(categoryID).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Delete(context.Background(), categoryID)

		var notFound *apperror.NotFoundError
		assert.ErrorAs(t, err, &notFound)
	})

	t.Run("DriverFailure", func(t *testing.T) {
		repo, mock := newRepo(t)

		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM categories")).
			WillReturnError(errors.New("connection reset"))

		err := repo.Delete(context.Background(), categoryID)

		var internal *apperror.InternalError
		assert.ErrorAs(t, err, &internal)
	})
}
