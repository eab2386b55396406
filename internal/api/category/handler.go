package category

import (
	"context"
	"net/http"

	"storefront/internal/api/response"
	"storefront/internal/domain"
	"storefront/internal/pkg/logger"
)

type CategoryService interface {
	CreateCategory(ctx context.Context, category domain.Category) (domain.Category, error)
	GetCategory(ctx context.Context, id string) (domain.Category, error)
	ListCategories(ctx context.Context) ([]domain.Category, error)
	UpdateCategory(ctx context.Context, category domain.Category) (domain.Category, error)
	DeleteCategory(ctx context.Context, id string) (domain.Category, error)
}

type Handler struct {
	Service CategoryService
	Logger  logger.Logger
}

func NewHandler(svc CategoryService, log logger.Logger) *Handler {
	return &Handler{Service: svc, Logger: log}
}

// CreateCategoryHandler lida com a requisição POST /v1/categories.
// @Summary Cria uma categoria
// @Tags categories
// @Accept json
// @Produce json
// @Param category body domain.Category true "Nome e descrição"
// @Success 201 {object} domain.Category
// @Failure 409 {object} domain.ErrorResponse "Nome repetido"
// @Security ApiKeyAuth
// @Router /categories [post]
func (h *Handler) CreateCategoryHandler(w http.ResponseWriter, r *http.Request) {
	var category domain.Category
	if err := response.Decode(r, &category); err != nil {
		response.Error(w, r, h.Logger, err)
		return
	}

	created, err := h.Service.CreateCategory(r.Context(), category)
	response.Write(w, r, h.Logger, created, err, http.StatusCreated)
}

// @Summary Obtém uma categoria
// @Tags categories
// @Produce json
// @Param id path string true "ID da Categoria"
// @Success 200 {object} domain.Category
// @Failure 404 {object} domain.ErrorResponse "Categoria não encontrada"
// @Security ApiKeyAuth
// @Router /categories/{id} [get]
func (h *Handler) GetCategoryHandler(w http.ResponseWriter, r *http.Request) {
	category, err := h.Service.GetCategory(r.Context(), r.PathValue("id"))
	response.Write(w, r, h.Logger, category, err, http.StatusOK)
}

// @Summary Lista categorias
// @Tags categories
// @Produce json
// @Success 200 {array} domain.Category
// @Security ApiKeyAuth
// @Router /categories [get]
func (h *Handler) ListCategoriesHandler(w http.ResponseWriter, r *http.Request) {
	categories, err := h.Service.ListCategories(r.Context())
	response.Write(w, r, h.Logger, categories, err, http.StatusOK)
}

// @Summary Atualiza uma categoria
// @Tags categories
// @Accept json
// @Produce json
// @Param id path string true "ID da Categoria"
// @Param category body domain.Category true "Nome e descrição"
// @Success 200 {object} domain.Category
// @Security ApiKeyAuth
// @Router /categories/{id} [put]
func (h *Handler) UpdateCategoryHandler(w http.ResponseWriter, r *http.Request) {
	var category domain.Category
	if err := response.Decode(r, &category); err != nil {
		response.Error(w, r, h.Logger, err)
		return
	}
	category.ID = r.PathValue("id")

	updated, err := h.Service.UpdateCategory(r.Context(), category)
	response.Write(w, r, h.Logger, updated, err, http.StatusOK)
}

// @Summary Remove uma categoria
// @Tags categories
// @Produce json
// @Param id path string true "ID da Categoria"
// @Success 200 {object} domain.Category "Categoria removida"
// @Failure 409 {object} domain.ErrorResponse "Categoria em uso"
// @Security ApiKeyAuth
// @Router /categories/{id} [delete]
func (h *Handler) DeleteCategoryHandler(w http.ResponseWriter, r *http.Request) {
	deleted, err := h.Service.DeleteCategory(r.Context(), r.PathValue("id"))
	response.Write(w, r, h.Logger, deleted, err, http.StatusOK)
}
