package router

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"storefront/internal/api/category"
	"storefront/internal/api/company"
	"storefront/internal/api/order"
	"storefront/internal/api/product"
	"storefront/internal/api/stock"
	"storefront/internal/api/user"
	"storefront/internal/domain"
	"storefront/internal/pkg/middleware"
)

// Handlers reúne os Handlers já inicializados por injeção de dependências.
type Handlers struct {
	Product  *product.Handler
	Stock    *stock.Handler
	User     *user.Handler
	Company  *company.Handler
	Category *category.Handler
	Order    *order.Handler
}

// NewRouter configura e retorna o roteador HTTP principal.
// limiter é opcional; quando presente envolve todas as rotas.
func NewRouter(h Handlers, tokenSvc middleware.TokenService, limiter func(http.Handler) http.Handler) http.Handler {
	mux := http.NewServeMux()

	auth := middleware.NewAuthMiddleware(tokenSvc)
	// Cadeias de autorização: token válido + papel exigido.
	anyRole := func(next http.HandlerFunc) http.HandlerFunc {
		return auth(middleware.PermissionMiddleware(domain.RoleUser, domain.RoleAdmin)(next))
	}
	adminOnly := func(next http.HandlerFunc) http.HandlerFunc {
		return auth(middleware.PermissionMiddleware(domain.RoleAdmin)(next))
	}
	userOnly := func(next http.HandlerFunc) http.HandlerFunc {
		return auth(middleware.PermissionMiddleware(domain.RoleUser)(next))
	}

	// --- 1. Health check, métricas e documentação ---
	mux.HandleFunc("GET /ping", PingHandler)
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.Handle("GET /swagger/", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	// --- 2. Autenticação (pública) ---
	mux.HandleFunc("POST /v1/register", h.User.RegisterUserHandler)
	mux.HandleFunc("POST /v1/login", h.User.LoginUserHandler)
	mux.HandleFunc("POST /v1/admin/login", h.User.LoginAdminHandler)

	// --- 3. Produtos e estoque ---
	mux.HandleFunc("GET /v1/products", anyRole(h.Product.ListProductsHandler))
	mux.HandleFunc("GET /v1/products/{id}", anyRole(h.Product.GetProductByIDHandler))
	mux.HandleFunc("POST /v1/products", adminOnly(h.Product.CreateProductHandler))
	mux.HandleFunc("PATCH /v1/products/{id}", adminOnly(h.Product.UpdateProductHandler))
	mux.HandleFunc("DELETE /v1/products/{id}", adminOnly(h.Product.DeleteProductHandler))
	mux.HandleFunc("POST /v1/products/{id}/stock", adminOnly(h.Stock.AdjustStockHandler))

	// --- 4. Empresas e filiais ---
	mux.HandleFunc("GET /v1/companies", anyRole(h.Company.ListCompaniesHandler))
	mux.HandleFunc("GET /v1/companies/{id}", anyRole(h.Company.GetCompanyHandler))
	mux.HandleFunc("POST /v1/companies", adminOnly(h.Company.CreateCompanyHandler))
	mux.HandleFunc("PUT /v1/companies/{id}", adminOnly(h.Company.UpdateCompanyHandler))
	mux.HandleFunc("DELETE /v1/companies/{id}", adminOnly(h.Company.DeleteCompanyHandler))

	mux.HandleFunc("GET /v1/branches", anyRole(h.Company.ListBranchesHandler))
	mux.HandleFunc("GET /v1/branches/{id}", anyRole(h.Company.GetBranchHandler))
	mux.HandleFunc("POST /v1/branches", adminOnly(h.Company.CreateBranchHandler))
	mux.HandleFunc("PUT /v1/branches/{id}", adminOnly(h.Company.UpdateBranchHandler))
	mux.HandleFunc("DELETE /v1/branches/{id}", adminOnly(h.Company.DeleteBranchHandler))

	// --- 5. Categorias ---
	mux.HandleFunc("GET /v1/categories", anyRole(h.Category.ListCategoriesHandler))
	mux.HandleFunc("GET /v1/categories/{id}", anyRole(h.Category.GetCategoryHandler))
	mux.HandleFunc("POST /v1/categories", adminOnly(h.Category.CreateCategoryHandler))
	mux.HandleFunc("PUT /v1/categories/{id}", adminOnly(h.Category.UpdateCategoryHandler))
	mux.HandleFunc("DELETE /v1/categories/{id}", adminOnly(h.Category.DeleteCategoryHandler))

	// --- 6. Pedidos ---
	mux.HandleFunc("POST /v1/orders", userOnly(h.Order.PlaceOrderHandler))
	mux.HandleFunc("GET /v1/orders", anyRole(h.Order.ListMyOrdersHandler))
	mux.HandleFunc("GET /v1/orders/{id}", anyRole(h.Order.GetOrderHandler))
	mux.HandleFunc("DELETE /v1/orders/{id}", anyRole(h.Order.CancelOrderHandler))
	mux.HandleFunc("GET /v1/admin/orders", adminOnly(h.Order.ListAllOrdersHandler))

	if limiter == nil {
		return mux
	}
	return limiter(mux)
}

// PingHandler é uma função utilitária para o health check.
func PingHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("pong"))
}
