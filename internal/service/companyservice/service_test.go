package companyservice_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"storefront/internal/domain"
	apperror "storefront/internal/errors"
	"storefront/internal/pkg/logger"
	"storefront/internal/service/companyservice"
)

// MockCompanyRepository é uma implementação mock da interface CompanyRepository
type MockCompanyRepository struct {
	mock.Mock
}

func (m *MockCompanyRepository) CreateCompany(ctx context.Context, company domain.Company) (domain.Company, error) {
	args := m.Called(ctx, company)
	return args.Get(0).(domain.Company), args.Error(1)
}

func (m *MockCompanyRepository) GetCompanyByID(ctx context.Context, id string) (domain.Company, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Company), args.Error(1)
}

func (m *MockCompanyRepository) GetAllCompanies(ctx context.Context) ([]domain.Company, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Company), args.Error(1)
}

func (m *MockCompanyRepository) UpdateCompany(ctx context.Context, company domain.Company) (domain.Company, error) {
	args := m.Called(ctx, company)
	return args.Get(0).(domain.Company), args.Error(1)
}

func (m *MockCompanyRepository) DeleteCompany(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockCompanyRepository) CreateBranch(ctx context.Context, branch domain.Branch) (domain.Branch, error) {
	args := m.Called(ctx, branch)
	return args.Get(0).(domain.Branch), args.Error(1)
}

func (m *MockCompanyRepository) GetBranchByID(ctx context.Context, id string) (domain.Branch, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Branch), args.Error(1)
}

func (m *MockCompanyRepository) GetAllBranches(ctx context.Context, companyID string) ([]domain.Branch, error) {
	args := m.Called(ctx, companyID)
	return args.Get(0).([]domain.Branch), args.Error(1)
}

func (m *MockCompanyRepository) UpdateBranch(ctx context.Context, branch domain.Branch) (domain.Branch, error) {
	args := m.Called(ctx, branch)
	return args.Get(0).(domain.Branch), args.Error(1)
}

func (m *MockCompanyRepository) DeleteBranch(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

// --- Testes para empresas ---

func TestCreateCompany_Success(t *testing.T) {
	mockRepo := new(MockCompanyRepository)
	svc := companyservice.NewService(mockRepo, logger.NewNop())

	expected := domain.Company{ID: uuid.NewString(), Name: "ACME"}
	mockRepo.On("CreateCompany", mock.Anything, domain.Company{Name: "ACME"}).Return(expected, nil)

	created, err := svc.CreateCompany(context.Background(), domain.Company{Name: "  ACME "})

	require.NoError(t, err)
	assert.Equal(t, expected, created)
	mockRepo.AssertExpectations(t)
}

func TestCreateCompany_InvalidName(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"Empty", ""},
		{"Blank", "   "},
		{"TooLong", strings.Repeat("a", 101)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockCompanyRepository)
			svc := companyservice.NewService(mockRepo, logger.NewNop())

			_, err := svc.CreateCompany(context.Background(), domain.Company{Name: tt.input})

			var validationErr *apperror.ValidationError
			assert.ErrorAs(t, err, &validationErr)
			mockRepo.AssertNotCalled(t, "CreateCompany", mock.Anything, mock.Anything)
		})
	}
}

func TestCreateCompany_RepositoryError(t *testing.T) {
	mockRepo := new(MockCompanyRepository)
	svc := companyservice.NewService(mockRepo, logger.NewNop())

	mockRepo.On("CreateCompany", mock.Anything, mock.Anything).Return(domain.Company{}, errors.New("db error"))

	_, err := svc.CreateCompany(context.Background(), domain.Company{Name: "ACME"})

	var internal *apperror.InternalError
	assert.ErrorAs(t, err, &internal)
}

func TestDeleteCompany(t *testing.T) {
	t.Run("ReturnsDeleted", func(t *testing.T) {
		mockRepo := new(MockCompanyRepository)
		svc := companyservice.NewService(mockRepo, logger.NewNop())
		company := domain.Company{ID: "c1", Name: "ACME"}

		mockRepo.On("GetCompanyByID", mock.Anything, "c1").Return(company, nil)
		mockRepo.On("DeleteCompany", mock.Anything, "c1").Return(nil)

		deleted, err := svc.DeleteCompany(context.Background(), "c1")

		require.NoError(t, err)
		assert.Equal(t, company, deleted)
	})

	t.Run("StillHasBranches", func(t *testing.T) {
		mockRepo := new(MockCompanyRepository)
		svc := companyservice.NewService(mockRepo, logger.NewNop())

		mockRepo.On("GetCompanyByID", mock.Anything, "c1").Return(domain.Company{ID: "c1"}, nil)
		mockRepo.On("DeleteCompany", mock.Anything, "c1").
			Return(apperror.NewConflictError("Foreign key constraint failed for branches_company_id_fkey"))

		_, err := svc.DeleteCompany(context.Background(), "c1")

		var conflict *apperror.ConflictError
		assert.ErrorAs(t, err, &conflict)
	})
}

// --- Testes para filiais ---

func TestCreateBranch_UnknownCompany(t *testing.T) {
	mockRepo := new(MockCompanyRepository)
	svc := companyservice.NewService(mockRepo, logger.NewNop())

	mockRepo.On("GetCompanyByID", mock.Anything, "c9").
		Return(domain.Company{}, apperror.NewNotFoundError("Company with id c9 was not found"))

	_, err := svc.CreateBranch(context.Background(), domain.Branch{Name: "Centro", CompanyID: "c9"})

	var notFound *apperror.NotFoundError
	assert.ErrorAs(t, err, &notFound)
	mockRepo.AssertNotCalled(t, "CreateBranch", mock.Anything, mock.Anything)
}

func TestCreateBranch_Success(t *testing.T) {
	mockRepo := new(MockCompanyRepository)
	svc := companyservice.NewService(mockRepo, logger.NewNop())

	mockRepo.On("GetCompanyByID", mock.Anything, "c1").Return(domain.Company{ID: "c1"}, nil)
	mockRepo.On("CreateBranch", mock.Anything, domain.Branch{Name: "Centro", CompanyID: "c1"}).
		Return(domain.Branch{ID: "b1", Name: "Centro", CompanyID: "c1"}, nil)

	branch, err := svc.CreateBranch(context.Background(), domain.Branch{ID: "ignored", Name: "Centro", CompanyID: "c1"})

	require.NoError(t, err)
	assert.Equal(t, "b1", branch.ID)
	mockRepo.AssertExpectations(t)
}

func TestUpdateBranch_KeepsCompanyWhenOmitted(t *testing.T) {
	mockRepo := new(MockCompanyRepository)
	svc := companyservice.NewService(mockRepo, logger.NewNop())

	mockRepo.On("GetBranchByID", mock.Anything, "b1").Return(domain.Branch{ID: "b1", Name: "Centro", CompanyID: "c1"}, nil)
	mockRepo.On("UpdateBranch", mock.Anything, domain.Branch{ID: "b1", Name: "Norte", CompanyID: "c1"}).
		Return(domain.Branch{ID: "b1", Name: "Norte", CompanyID: "c1"}, nil)

	branch, err := svc.UpdateBranch(context.Background(), domain.Branch{ID: "b1", Name: "Norte"})

	require.NoError(t, err)
	assert.Equal(t, "Norte", branch.Name)
	mockRepo.AssertNotCalled(t, "GetCompanyByID", mock.Anything, mock.Anything)
}

func TestListBranches_FiltersByCompany(t *testing.T) {
	mockRepo := new(MockCompanyRepository)
	svc := companyservice.NewService(mockRepo, logger.NewNop())

	mockRepo.On("GetAllBranches", mock.Anything, "c1").Return([]domain.Branch{{ID: "b1"}, {ID: "b2"}}, nil)

	branches, err := svc.ListBranches(context.Background(), "c1")

	require.NoError(t, err)
	assert.Len(t, branches, 2)
}
