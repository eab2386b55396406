package userservice_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"storefront/internal/domain"
	apperror "storefront/internal/errors"
	"storefront/internal/pkg/logger"
	"storefront/internal/service/userservice"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Save(ctx context.Context, user domain.User) (domain.User, error) {
	args := m.Called(ctx, user)
	return args.Get(0).(domain.User), args.Error(1)
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (domain.User, error) {
	args := m.Called(ctx, username)
	return args.Get(0).(domain.User), args.Error(1)
}

func (m *MockUserRepository) SaveAdmin(ctx context.Context, admin domain.Admin) (domain.Admin, error) {
	args := m.Called(ctx, admin)
	return args.Get(0).(domain.Admin), args.Error(1)
}

func (m *MockUserRepository) FindAdminByUsername(ctx context.Context, username string) (domain.Admin, error) {
	args := m.Called(ctx, username)
	return args.Get(0).(domain.Admin), args.Error(1)
}

type MockTokenService struct {
	mock.Mock
}

func (m *MockTokenService) GenerateToken(userID, username, role string) (string, error) {
	args := m.Called(userID, username, role)
	return args.String(0), args.Error(1)
}

func hashed(t *testing.T, password string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

func TestRegister(t *testing.T) {
	t.Run("HashesPassword", func(t *testing.T) {
		repo, tokens := new(MockUserRepository), new(MockTokenService)
		svc := userservice.NewService(repo, tokens, logger.NewNop())

		repo.On("Save", mock.Anything, mock.MatchedBy(func(u domain.User) bool {
			return u.Username == "ana" && u.Name == "Ana" &&
				bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("segredo1")) == nil
		})).Return(domain.User{ID: "u1", Username: "ana"}, nil)

		user, err := svc.Register(context.Background(), domain.UserRegistration{
			Username: "ana", Password: "segredo1", Name: "Ana", Surname: "Silva",
		})

		require.NoError(t, err)
		assert.Equal(t, "u1", user.ID)
		repo.AssertExpectations(t)
	})

	t.Run("DuplicateUsername", func(t *testing.T) {
		repo, tokens := new(MockUserRepository), new(MockTokenService)
		svc := userservice.NewService(repo, tokens, logger.NewNop())

		repo.On("Save", mock.Anything, mock.Anything).
			Return(domain.User{}, apperror.NewConflictError("Unique constraint failed for users_username_key"))

		_, err := svc.Register(context.Background(), domain.UserRegistration{Username: "ana", Password: "segredo1"})

		var conflict *apperror.ConflictError
		assert.ErrorAs(t, err, &conflict)
	})
}

func TestLogin(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		repo, tokens := new(MockUserRepository), new(MockTokenService)
		svc := userservice.NewService(repo, tokens, logger.NewNop())

		repo.On("FindByUsername", mock.Anything, "ana").Return(domain.User{ID: "u1", Username: "ana", PasswordHash: hashed(t, "segredo1")}, nil)
		tokens.On("GenerateToken", "u1", "ana", "user").Return("jwt-token", nil)

		resp, err := svc.Login(context.Background(), domain.LoginRequest{Username: "ana", Password: "segredo1"})

		require.NoError(t, err)
		assert.Equal(t, "jwt-token", resp.AccessToken)
	})

	t.Run("WrongPassword", func(t *testing.T) {
		repo, tokens := new(MockUserRepository), new(MockTokenService)
		svc := userservice.NewService(repo, tokens, logger.NewNop())

		repo.On("FindByUsername", mock.Anything, "ana").Return(domain.User{ID: "u1", PasswordHash: hashed(t, "segredo1")}, nil)

		_, err := svc.Login(context.Background(), domain.LoginRequest{Username: "ana", Password: "errada"})

		var unauthorized *apperror.UnauthorizedError
		assert.ErrorAs(t, err, &unauthorized)
		tokens.AssertNotCalled(t, "GenerateToken", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("UnknownUserLooksLikeWrongPassword", func(t *testing.T) {
		repo, tokens := new(MockUserRepository), new(MockTokenService)
		svc := userservice.NewService(repo, tokens, logger.NewNop())

		repo.On("FindByUsername", mock.Anything, "ghost").Return(domain.User{}, apperror.NewNotFoundError("User with username ghost was not found"))

		_, err := svc.Login(context.Background(), domain.LoginRequest{Username: "ghost", Password: "x"})

		var unauthorized *apperror.UnauthorizedError
		require.ErrorAs(t, err, &unauthorized)
		assert.NotContains(t, err.Error(), "ghost")
	})
}

func TestAdminLogin(t *testing.T) {
	repo, tokens := new(MockUserRepository), new(MockTokenService)
	svc := userservice.NewService(repo, tokens, logger.NewNop())

	repo.On("FindAdminByUsername", mock.Anything, "root").Return(domain.Admin{ID: "a1", Username: "root", PasswordHash: hashed(t, "admin123")}, nil)
	tokens.On("GenerateToken", "a1", "root", "admin").Return("admin-token", nil)

	resp, err := svc.AdminLogin(context.Background(), domain.LoginRequest{Username: "root", Password: "admin123"})

	require.NoError(t, err)
	assert.Equal(t, "admin-token", resp.AccessToken)
}

func TestEnsureAdmin(t *testing.T) {
	t.Run("CreatesWhenMissing", func(t *testing.T) {
		repo, tokens := new(MockUserRepository), new(MockTokenService)
		svc := userservice.NewService(repo, tokens, logger.NewNop())

		repo.On("FindAdminByUsername", mock.Anything, "root").Return(domain.Admin{}, apperror.NewNotFoundError("Admin with username root was not found"))
		repo.On("SaveAdmin", mock.Anything, mock.MatchedBy(func(a domain.Admin) bool {
			return a.Username == "root" && a.PasswordHash != "admin123"
		})).Return(domain.Admin{ID: "a1", Username: "root"}, nil)

		require.NoError(t, svc.EnsureAdmin(context.Background(), "root", "admin123"))
		repo.AssertExpectations(t)
	})

	t.Run("ExistingIsKept", func(t *testing.T) {
		repo, tokens := new(MockUserRepository), new(MockTokenService)
		svc := userservice.NewService(repo, tokens, logger.NewNop())

		repo.On("FindAdminByUsername", mock.Anything, "root").Return(domain.Admin{ID: "a1"}, nil)

		require.NoError(t, svc.EnsureAdmin(context.Background(), "root", "admin123"))
		repo.AssertNotCalled(t, "SaveAdmin", mock.Anything, mock.Anything)
	})

	t.Run("NotConfigured", func(t *testing.T) {
		repo, tokens := new(MockUserRepository), new(MockTokenService)
		svc := userservice.NewService(repo, tokens, logger.NewNop())

		require.NoError(t, svc.EnsureAdmin(context.Background(), "", ""))
		repo.AssertNotCalled(t, "FindAdminByUsername", mock.Anything, mock.Anything)
	})

	t.Run("StorageFailure", func(t *testing.T) {
		repo, tokens := new(MockUserRepository), new(MockTokenService)
		svc := userservice.NewService(repo, tokens, logger.NewNop())

		repo.On("FindAdminByUsername", mock.Anything, "root").Return(domain.Admin{}, errors.New("timeout"))

		err := svc.EnsureAdmin(context.Background(), "root", "admin123")

		var internal *apperror.InternalError
		assert.ErrorAs(t, err, &internal)
	})
}
