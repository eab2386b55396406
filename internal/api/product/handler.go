package product

import (
	"context"
	"net/http"

	"storefront/internal/api/response"
	"storefront/internal/domain"
	"storefront/internal/pkg/logger"
	"storefront/internal/pkg/middleware"
)

// ProductService define o contrato que o Handler espera da camada de Serviço.
type ProductService interface {
	CreateProduct(ctx context.Context, req domain.CreateProductRequest) (domain.ProductView, error)
	GetProduct(ctx context.Context, id string) (domain.ProductView, error)
	ListProducts(ctx context.Context, params map[string]string) ([]domain.ProductView, error)
	UpdateProduct(ctx context.Context, id string, req domain.UpdateProductRequest) (domain.ProductView, error)
	DeleteProduct(ctx context.Context, id string) (domain.ProductView, error)
}

// Handler agrupa todos os métodos de Handler do produto.
type Handler struct {
	Service ProductService
	Logger  logger.Logger
}

// NewHandler cria uma nova instância do Handler, injetando o Service e o Logger.
func NewHandler(svc ProductService, log logger.Logger) *Handler {
	return &Handler{Service: svc, Logger: log}
}

// filterKeys são os parâmetros de consulta aceitos na listagem.
var filterKeys = []string{"branch_id", "company_id", "category_id", "min_stock", "max_stock"}

// CreateProductHandler lida com a requisição POST /v1/products.
// @Summary Cria um produto
// @Tags products
// @Accept json
// @Produce json
// @Param product body domain.CreateProductRequest true "Dados do produto"
// @Success 201 {object} domain.ProductView "Produto criado"
// @Failure 400 {object} domain.ErrorResponse "Payload inválido"
// @Failure 404 {object} domain.ErrorResponse "Filial ou categoria não encontrada"
// @Failure 409 {object} domain.ErrorResponse "Produto repetido na filial"
// @Security ApiKeyAuth
// @Router /products [post]
func (h *Handler) CreateProductHandler(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateProductRequest
	if err := response.Decode(r, &req); err != nil {
		response.Error(w, r, h.Logger, err)
		return
	}

	if claims, ok := middleware.GetUserClaimsFromContext(r.Context()); ok {
		h.Logger.Info("Criação de produto solicitada.", map[string]interface{}{"user_id": claims.UserID, "role": claims.Role})
	}

	view, err := h.Service.CreateProduct(r.Context(), req)
	response.Write(w, r, h.Logger, view, err, http.StatusCreated)
}

// GetProductByIDHandler lida com a requisição GET /v1/products/{id}.
// @Summary Obtém um produto
// @Tags products
// @Produce json
// @Param id path string true "ID do Produto"
// @Success 200 {object} domain.ProductView
// @Failure 404 {object} domain.ErrorResponse "Produto não encontrado"
// @Security ApiKeyAuth
// @Router /products/{id} [get]
func (h *Handler) GetProductByIDHandler(w http.ResponseWriter, r *http.Request) {
	view, err := h.Service.GetProduct(r.Context(), r.PathValue("id"))
	response.Write(w, r, h.Logger, view, err, http.StatusOK)
}

// ListProductsHandler lida com a requisição GET /v1/products.
// @Summary Lista produtos
// @Tags products
// @Produce json
// @Param branch_id query string false "Filial"
// @Param company_id query string false "Empresa"
// @Param category_id query string false "Categoria"
// @Param min_stock query int false "Estoque mínimo"
// @Param max_stock query int false "Estoque máximo"
// @Success 200 {array} domain.ProductView
// @Failure 400 {object} domain.ErrorResponse "Filtro inválido"
// @Security ApiKeyAuth
// @Router /products [get]
func (h *Handler) ListProductsHandler(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	params := make(map[string]string)
	for _, key := range filterKeys {
		if query.Has(key) {
			params[key] = query.Get(key)
		}
	}

	views, err := h.Service.ListProducts(r.Context(), params)
	response.Write(w, r, h.Logger, views, err, http.StatusOK)
}

// UpdateProductHandler lida com a requisição PATCH /v1/products/{id}.
// @Summary Atualiza nome, categoria ou filial de um produto
// @Tags products
// @Accept json
// @Produce json
// @Param id path string true "ID do Produto"
// @Param product body domain.UpdateProductRequest true "Campos a alterar"
// @Success 200 {object} domain.ProductView
// @Failure 404 {object} domain.ErrorResponse "Produto não encontrado"
// @Security ApiKeyAuth
// @Router /products/{id} [patch]
func (h *Handler) UpdateProductHandler(w http.ResponseWriter, r *http.Request) {
	var req domain.UpdateProductRequest
	if err := response.Decode(r, &req); err != nil {
		response.Error(w, r, h.Logger, err)
		return
	}

	view, err := h.Service.UpdateProduct(r.Context(), r.PathValue("id"), req)
	response.Write(w, r, h.Logger, view, err, http.StatusOK)
}

// DeleteProductHandler lida com a requisição DELETE /v1/products/{id}.
// @Summary Remove um produto
// @Tags products
// @Produce json
// @Param id path string true "ID do Produto"
// @Success 200 {object} domain.ProductView "Produto removido"
// @Failure 404 {object} domain.ErrorResponse "Produto não encontrado"
// @Failure 409 {object} domain.ErrorResponse "Produto referenciado por pedidos"
// @Security ApiKeyAuth
// @Router /products/{id} [delete]
func (h *Handler) DeleteProductHandler(w http.ResponseWriter, r *http.Request) {
	view, err := h.Service.DeleteProduct(r.Context(), r.PathValue("id"))
	response.Write(w, r, h.Logger, view, err, http.StatusOK)
}
