package company_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"storefront/internal/api/company"
	"storefront/internal/domain"
	apperror "storefront/internal/errors"
	"storefront/internal/pkg/logger"
)

type MockCompanyService struct {
	mock.Mock
}

func (m *MockCompanyService) CreateCompany(ctx context.Context, c domain.Company) (domain.Company, error) {
	args := m.Called(ctx, c)
	return args.Get(0).(domain.Company), args.Error(1)
}

func (m *MockCompanyService) GetCompany(ctx context.Context, id string) (domain.Company, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Company), args.Error(1)
}

func (m *MockCompanyService) ListCompanies(ctx context.Context) ([]domain.Company, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Company), args.Error(1)
}

func (m *MockCompanyService) UpdateCompany(ctx context.Context, c domain.Company) (domain.Company, error) {
	args := m.Called(ctx, c)
	return args.Get(0).(domain.Company), args.Error(1)
}

func (m *MockCompanyService) DeleteCompany(ctx context.Context, id string) (domain.Company, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Company), args.Error(1)
}

func (m *MockCompanyService) CreateBranch(ctx context.Context, b domain.Branch) (domain.Branch, error) {
	args := m.Called(ctx, b)
	return args.Get(0).(domain.Branch), args.Error(1)
}

func (m *MockCompanyService) GetBranch(ctx context.Context, id string) (domain.Branch, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Branch), args.Error(1)
}

func (m *MockCompanyService) ListBranches(ctx context.Context, companyID string) ([]domain.Branch, error) {
	args := m.Called(ctx, companyID)
	return args.Get(0).([]domain.Branch), args.Error(1)
}

func (m *MockCompanyService) UpdateBranch(ctx context.Context, b domain.Branch) (domain.Branch, error) {
	args := m.Called(ctx, b)
	return args.Get(0).(domain.Branch), args.Error(1)
}

func (m *MockCompanyService) DeleteBranch(ctx context.Context, id string) (domain.Branch, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Branch), args.Error(1)
}

func TestCreateCompanyHandler(t *testing.T) {
	svc := new(MockCompanyService)
	h := company.NewHandler(svc, logger.NewNop())

	svc.On("CreateCompany", mock.Anything, domain.Company{Name: "ACME"}).Return(domain.Company{ID: "c1", Name: "ACME"}, nil)

	rec := httptest.NewRecorder()
	h.CreateCompanyHandler(rec, httptest.NewRequest(http.MethodPost, "/v1/companies", strings.NewReader(`{"name":"ACME"}`)))

	assert.Equal(t, http.StatusCreated, rec.Code)
	svc.AssertExpectations(t)
}

func TestCreateBranchHandler_MalformedCompanyID(t *testing.T) {
	svc := new(MockCompanyService)
	h := company.NewHandler(svc, logger.NewNop())

	rec := httptest.NewRecorder()
	h.CreateBranchHandler(rec, httptest.NewRequest(http.MethodPost, "/v1/branches", strings.NewReader(`{"name":"Centro","company_id":"abc"}`)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "company_id")
	svc.AssertNotCalled(t, "CreateBranch", mock.Anything, mock.Anything)
}

func TestListBranchesHandler_CompanyFilter(t *testing.T) {
	svc := new(MockCompanyService)
	h := company.NewHandler(svc, logger.NewNop())

	svc.On("ListBranches", mock.Anything, "c1").Return([]domain.Branch{{ID: "b1", CompanyID: "c1"}}, nil)

	rec := httptest.NewRecorder()
	h.ListBranchesHandler(rec, httptest.NewRequest(http.MethodGet, "/v1/branches?company_id=c1", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	svc.AssertExpectations(t)
}

func TestDeleteCompanyHandler_HasBranches(t *testing.T) {
	svc := new(MockCompanyService)
	h := company.NewHandler(svc, logger.NewNop())

	svc.On("DeleteCompany", mock.Anything, "c1").
		Return(domain.Company{}, apperror.NewConflictError("Foreign key constraint failed for branches_company_id_fkey"))

	req := httptest.NewRequest(http.MethodDelete, "/v1/companies/c1", nil)
	req.SetPathValue("id", "c1")
	rec := httptest.NewRecorder()
	h.DeleteCompanyHandler(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
}
