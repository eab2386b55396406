package userrepo_test

import (
	"context"
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
	"storefront/internal/repository/userrepo"
)

func newRepo(t *testing.T) (*userrepo.UserRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return userrepo.NewUserRepository(db, time.Second, logger.NewNop()), mock
}

func TestSave_DuplicateUsername(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO users")).
		WillReturnError(&pq.Error{Code: "23505", Constraint: "users_username_key"})

	_, err := repo.Save(context.Background(), domain.User{Username: "ana"})

	var conflict *apperror.ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "Unique constraint failed for users_username_key", conflict.Msg)
}

func TestFindByUsername(t *testing.T) {
	repo, mock := newRepo(t)
	now := time.Now().UTC()

	mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE username = $1")).
		WithArgs("ana").
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "password_hash", "name", "surname", "profession", "created_at", "updated_at"}).
			AddRow("u-1", "ana", "hash", "Ana", "Silva", "Dev", now, now))

	user, err := repo.FindByUsername(context.Background(), "ana")

	require.NoError(t, err)
	assert.Equal(t, "u-1", user.ID)
	assert.Equal(t, "hash", user.PasswordHash)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindByID_MalformedIDIsNotFound(t *testing.T) {
	repo, mock := newRepo(t)

	_, err := repo.FindByID(context.Background(), "abc")

	var notFound *apperror.NotFoundError
	assert.ErrorAs(t, err, &notFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindAdminByUsername_NotFound(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM admins WHERE username = $1")).
		WithArgs("root").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.FindAdminByUsername(context.Background(), "root")

	var notFound *apperror.NotFoundError
	assert.ErrorAs(t, err, &notFound)
}
