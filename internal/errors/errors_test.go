package errors_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	apperror "storefront/internal/errors"
)

func TestMapToHTTPStatus(t *testing.T) {
	tests := []struct {
		name         string
		err          error
		wantStatus   int
		wantCategory string
		wantMessage  string
	}{
		{"InvalidQuantity", apperror.NewInvalidQuantityError("p1", "0"), http.StatusBadRequest, "INVALID_QUANTITY", "Invalid quantity 0 for product with id p1: count must be a positive integer"},
		{"ProductNotFound", apperror.NewProductNotFoundError("p1"), http.StatusNotFound, "PRODUCT_NOT_FOUND", "No product with the id p1 was found"},
		{"InsufficientStock", apperror.NewInsufficientStockError("p1", 3, 2), http.StatusBadRequest, "INSUFFICIENT_STOCK", "Product with id p1 has not enough stock"},
		{"OrderNotFound", apperror.NewOrderNotFoundError("o1"), http.StatusNotFound, "ORDER_NOT_FOUND", "No order with the id o1 was found"},
		{"Conflict", apperror.NewConflictError("Unique constraint failed for users_username_key"), http.StatusConflict, "CONFLICT", "Unique constraint failed for users_username_key"},
		{"Forbidden", apperror.NewForbiddenError("nope"), http.StatusForbidden, "FORBIDDEN", "nope"},
		{"InternalHidesDetail", apperror.NewDBError("Falha ao criar pedido", errors.New("connection reset")), http.StatusInternalServerError, "INTERNAL_ERROR", "An unexpected error occurred."},
		{"Untyped", errors.New("boom"), http.StatusInternalServerError, "UNKNOWN_ERROR", "An unexpected error occurred."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, category, message := apperror.MapToHTTPStatus(tt.err)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantCategory, category)
			assert.Equal(t, tt.wantMessage, message)
		})
	}
}

func TestMapToHTTPStatus_WrappedChain(t *testing.T) {
	wrapped := fmt.Errorf("placing order: %w", apperror.NewInsufficientStockError("p9", 5, 1))

	status, category, _ := apperror.MapToHTTPStatus(wrapped)

	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "INSUFFICIENT_STOCK", category)
}

func TestTranslate(t *testing.T) {
	typed := apperror.NewProductNotFoundError("p1")
	assert.Same(t, typed, apperror.Translate(typed, "ignorado"))

	raw := errors.New("driver failure")
	translated := apperror.Translate(raw, "Falha ao listar pedidos")

	var internal *apperror.InternalError
	assert.True(t, errors.As(translated, &internal))
	assert.ErrorIs(t, translated, raw)
	assert.Nil(t, apperror.Translate(nil, "nada"))
}

func TestCategoryOf(t *testing.T) {
	assert.Equal(t, "ORDER_NOT_FOUND", apperror.CategoryOf(apperror.NewOrderNotFoundError("x")))
	assert.Equal(t, "UNKNOWN_ERROR", apperror.CategoryOf(errors.New("x")))
}
