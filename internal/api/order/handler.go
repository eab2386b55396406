package order

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"storefront/internal/api/response"
	"storefront/internal/domain"
	apperror "storefront/internal/errors"
	"storefront/internal/pkg/logger"
	"storefront/internal/pkg/middleware"
)

// OrderService define o contrato que o Handler espera da camada de Serviço.
type OrderService interface {
	PlaceOrder(ctx context.Context, userID string, lines []domain.LineItemRequest) (domain.OrderView, error)
	CancelOrder(ctx context.Context, orderID string) (domain.Order, error)
	GetOrder(ctx context.Context, orderID string) (domain.Order, error)
	GetOrderView(ctx context.Context, orderID string) (domain.OrderView, error)
	ListOrdersForUser(ctx context.Context, userID string) ([]domain.OrderView, error)
	ListAllOrders(ctx context.Context) ([]domain.UserOrderView, error)
}

// Handler agrupa todos os métodos de Handler de pedidos.
type Handler struct {
	Service OrderService
	Logger  logger.Logger
}

// NewHandler cria uma nova instância do Handler, injetando o Service e o Logger.
func NewHandler(svc OrderService, log logger.Logger) *Handler {
	return &Handler{Service: svc, Logger: log}
}

// placeOrderPayload mantém count cru para que valores não inteiros virem InvalidQuantity.
type placeOrderPayload struct {
	Products []struct {
		ProductID string          `json:"product_id"`
		Count     json.RawMessage `json:"count"`
	} `json:"products"`
}

// PlaceOrderHandler lida com a requisição POST /v1/orders.
// @Summary Cria um pedido
// @Description Valida o estoque de cada item e cria o pedido numa única transação.
// @Tags orders
// @Accept json
// @Produce json
// @Param order body domain.PlaceOrderRequest true "Itens do pedido"
// @Success 201 {object} domain.OrderView "Pedido criado"
// @Failure 400 {object} domain.ErrorResponse "Quantidade inválida ou estoque insuficiente"
// @Failure 404 {object} domain.ErrorResponse "Produto não encontrado"
// @Security ApiKeyAuth
// @Router /orders [post]
func (h *Handler) PlaceOrderHandler(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetUserClaimsFromContext(r.Context())
	if !ok {
		response.Error(w, r, h.Logger, apperror.NewUnauthorizedError("Authorization required"))
		return
	}

	var payload placeOrderPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		response.Error(w, r, h.Logger, apperror.NewValidationError("Invalid payload. Check the JSON format."))
		return
	}

	lines := make([]domain.LineItemRequest, 0, len(payload.Products))
	for _, p := range payload.Products {
		if len(p.Count) == 0 || string(p.Count) == "null" {
			response.Error(w, r, h.Logger, apperror.NewValidationError(fmt.Sprintf("count is required for product with id %s", p.ProductID)))
			return
		}
		count, err := strconv.Atoi(string(p.Count))
		if err != nil {
			response.Error(w, r, h.Logger, apperror.NewInvalidQuantityError(p.ProductID, string(p.Count)))
			return
		}
		lines = append(lines, domain.LineItemRequest{ProductID: p.ProductID, Count: count})
	}

	view, err := h.Service.PlaceOrder(r.Context(), claims.UserID, lines)
	response.Write(w, r, h.Logger, view, err, http.StatusCreated)
}

// ListMyOrdersHandler lida com a requisição GET /v1/orders.
// @Summary Lista os pedidos do usuário autenticado
// @Tags orders
// @Produce json
// @Success 200 {array} domain.OrderView
// @Security ApiKeyAuth
// @Router /orders [get]
func (h *Handler) ListMyOrdersHandler(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetUserClaimsFromContext(r.Context())
	if !ok {
		response.Error(w, r, h.Logger, apperror.NewUnauthorizedError("Authorization required"))
		return
	}

	orders, err := h.Service.ListOrdersForUser(r.Context(), claims.UserID)
	response.Write(w, r, h.Logger, orders, err, http.StatusOK)
}

// GetOrderHandler lida com a requisição GET /v1/orders/{id}.
// @Summary Obtém um pedido
// @Tags orders
// @Produce json
// @Param id path string true "ID do Pedido"
// @Success 200 {object} domain.OrderView
// @Failure 403 {object} domain.ErrorResponse "Pedido de outro usuário"
// @Failure 404 {object} domain.ErrorResponse "Pedido não encontrado"
// @Security ApiKeyAuth
// @Router /orders/{id} [get]
func (h *Handler) GetOrderHandler(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := h.authorize(r, id); err != nil {
		response.Error(w, r, h.Logger, err)
		return
	}

	view, err := h.Service.GetOrderView(r.Context(), id)
	response.Write(w, r, h.Logger, view, err, http.StatusOK)
}

// CancelOrderHandler lida com a requisição DELETE /v1/orders/{id}.
// @Summary Cancela um pedido
// @Description Devolve o estoque de cada item e remove o pedido.
// @Tags orders
// @Produce json
// @Param id path string true "ID do Pedido"
// @Success 200 {object} domain.Order "Cabeçalho do pedido removido"
// @Failure 403 {object} domain.ErrorResponse "Pedido de outro usuário"
// @Failure 404 {object} domain.ErrorResponse "Pedido não encontrado"
// @Security ApiKeyAuth
// @Router /orders/{id} [delete]
func (h *Handler) CancelOrderHandler(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := h.authorize(r, id); err != nil {
		response.Error(w, r, h.Logger, err)
		return
	}

	order, err := h.Service.CancelOrder(r.Context(), id)
	response.Write(w, r, h.Logger, order, err, http.StatusOK)
}

// ListAllOrdersHandler lida com a requisição GET /v1/admin/orders.
// @Summary Lista todos os pedidos agrupados por usuário
// @Tags orders
// @Produce json
// @Success 200 {array} domain.UserOrderView
// @Security ApiKeyAuth
// @Router /admin/orders [get]
func (h *Handler) ListAllOrdersHandler(w http.ResponseWriter, r *http.Request) {
	orders, err := h.Service.ListAllOrders(r.Context())
	response.Write(w, r, h.Logger, orders, err, http.StatusOK)
}

// authorize libera o dono do pedido ou um admin.
func (h *Handler) authorize(r *http.Request, orderID string) error {
	claims, ok := middleware.GetUserClaimsFromContext(r.Context())
	if !ok {
		return apperror.NewUnauthorizedError("Authorization required")
	}
	if claims.IsAdmin() {
		return nil
	}

	order, err := h.Service.GetOrder(r.Context(), orderID)
	if err != nil {
		return err
	}
	if order.UserID != claims.UserID {
		return apperror.NewForbiddenError("You do not have permission to access this order")
	}
	return nil
}
