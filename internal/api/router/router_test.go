package router_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/api/category"
	"storefront/internal/api/company"
	"storefront/internal/api/order"
	"storefront/internal/api/product"
	"storefront/internal/api/router"
	"storefront/internal/api/stock"
	"storefront/internal/api/user"
	"storefront/internal/domain"
	"storefront/internal/pkg/logger"
	"storefront/internal/pkg/token"
)

type stubCategories struct{}

func (stubCategories) CreateCategory(_ context.Context, c domain.Category) (domain.Category, error) {
	c.ID = "cat-1"
	return c, nil
}
func (stubCategories) GetCategory(context.Context, string) (domain.Category, error) {
	return domain.Category{}, nil
}
func (stubCategories) ListCategories(context.Context) ([]domain.Category, error) {
	return []domain.Category{{ID: "cat-1", Name: "Ferramentas"}}, nil
}
func (stubCategories) UpdateCategory(_ context.Context, c domain.Category) (domain.Category, error) {
	return c, nil
}
func (stubCategories) DeleteCategory(context.Context, string) (domain.Category, error) {
	return domain.Category{}, nil
}

func newTestRouter(t *testing.T, limiter func(http.Handler) http.Handler) (http.Handler, *token.Service) {
	t.Helper()
	log := logger.NewNop()
	tokenSvc := token.NewService("segredo-de-teste", time.Hour)

	// Serviços nulos: as rotas exercitadas abaixo param no middleware antes de chegar neles.
	handlers := router.Handlers{
		Product:  product.NewHandler(nil, log),
		Stock:    stock.NewHandler(nil, log),
		User:     user.NewHandler(nil, log),
		Company:  company.NewHandler(nil, log),
		Category: category.NewHandler(stubCategories{}, log),
		Order:    order.NewHandler(nil, log),
	}
	return router.NewRouter(handlers, tokenSvc, limiter), tokenSvc
}

func bearer(t *testing.T, svc *token.Service, role domain.UserRole) string {
	t.Helper()
	tok, err := svc.GenerateToken("id-1", "ana", string(role))
	require.NoError(t, err)
	return "Bearer " + tok
}

func TestRouter_Ping(t *testing.T) {
	r, _ := newTestRouter(t, nil)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "pong", rec.Body.String())
}

func TestRouter_Authorization(t *testing.T) {
	r, tokenSvc := newTestRouter(t, nil)

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		role   domain.UserRole
		want   int
	}{
		{name: "ProductsRequireToken", method: http.MethodGet, path: "/v1/products", want: http.StatusUnauthorized},
		{name: "OrdersRequireToken", method: http.MethodPost, path: "/v1/orders", want: http.StatusUnauthorized},
		{name: "UserCannotCreateProduct", method: http.MethodPost, path: "/v1/products", body: `{}`, role: domain.RoleUser, want: http.StatusForbidden},
		{name: "UserCannotAdjustStock", method: http.MethodPost, path: "/v1/products/p1/stock", body: `{"delta":1}`, role: domain.RoleUser, want: http.StatusForbidden},
		{name: "UserCannotListAllOrders", method: http.MethodGet, path: "/v1/admin/orders", role: domain.RoleUser, want: http.StatusForbidden},
		{name: "AdminCannotPlaceOrder", method: http.MethodPost, path: "/v1/orders", body: `{}`, role: domain.RoleAdmin, want: http.StatusForbidden},
		{name: "UserCannotDeleteCompany", method: http.MethodDelete, path: "/v1/companies/c1", role: domain.RoleUser, want: http.StatusForbidden},
		{name: "UserListsCategories", method: http.MethodGet, path: "/v1/categories", role: domain.RoleUser, want: http.StatusOK},
		{name: "AdminCreatesCategory", method: http.MethodPost, path: "/v1/categories", body: `{"name":"Ferramentas"}`, role: domain.RoleAdmin, want: http.StatusCreated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			if tt.role != "" {
				req.Header.Set("Authorization", bearer(t, tokenSvc, tt.role))
			}
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)

			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestRouter_MethodNotAllowed(t *testing.T) {
	r, _ := newTestRouter(t, nil)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/v1/products", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestRouter_WrapsWithLimiter(t *testing.T) {
	blocked := func(http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		})
	}
	r, _ := newTestRouter(t, blocked)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))

	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}
