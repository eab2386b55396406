package stock

import (
	"context"
	"net/http"

	"storefront/internal/api/response"
	"storefront/internal/domain"
	"storefront/internal/pkg/logger"
)

// StockService define o contrato que o Handler espera da camada de Serviço.
type StockService interface {
	AdjustStock(ctx context.Context, adjustment domain.StockAdjustmentRequest) (domain.Product, error)
}

// Handler agrupa todos os métodos de Handler de estoque.
type Handler struct {
	Service StockService
	Logger  logger.Logger
}

// NewHandler cria uma nova instância do Handler, injetando o Service e o Logger.
func NewHandler(svc StockService, log logger.Logger) *Handler {
	return &Handler{Service: svc, Logger: log}
}

// AdjustStockHandler lida com a requisição POST /v1/products/{id}/stock.
// @Summary Ajusta o estoque de um produto
// @Description Soma delta ao estoque; o ajuste é recusado se deixar o estoque negativo.
// @Tags stock
// @Accept json
// @Produce json
// @Param id path string true "ID do Produto"
// @Param adjustment body domain.StockAdjustmentRequest true "Delta do ajuste"
// @Success 200 {object} domain.Product "Produto com o novo estoque"
// @Failure 400 {object} domain.ErrorResponse "Delta inválido ou estoque insuficiente"
// @Failure 404 {object} domain.ErrorResponse "Produto não encontrado"
// @Security ApiKeyAuth
// @Router /products/{id}/stock [post]
func (h *Handler) AdjustStockHandler(w http.ResponseWriter, r *http.Request) {
	var adjustment domain.StockAdjustmentRequest
	if err := response.Decode(r, &adjustment); err != nil {
		response.Error(w, r, h.Logger, err)
		return
	}
	adjustment.ProductID = r.PathValue("id")

	product, err := h.Service.AdjustStock(r.Context(), adjustment)
	response.Write(w, r, h.Logger, product, err, http.StatusOK)
}
