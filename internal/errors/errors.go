package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError é a interface central para todos os erros customizados da API.
// Ela permite que o Handler acesse a Categoria, o status HTTP e a causa do erro.
type AppError interface {
	Error() string    // Implementa a interface error padrão do Go
	Category() string // Categoria do erro (e.g., "VALIDATION_ERROR", "NOT_FOUND", "INTERNAL_ERROR")
	HTTPStatus() int  // Código HTTP sugerido para o Handler
	Unwrap() error    // Erro subjacente, quando houver
}

// --- Erros genéricos de aplicação ---

// ValidationError representa falhas de validação de dados de entrada.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string    { return e.Msg }
func (e *ValidationError) Category() string { return "VALIDATION_ERROR" }
func (e *ValidationError) HTTPStatus() int  { return http.StatusBadRequest }
func (e *ValidationError) Unwrap() error    { return nil }

// NewValidationError cria um novo erro de validação.
func NewValidationError(msg string) AppError {
	return &ValidationError{Msg: msg}
}

// NotFoundError representa a ausência de um recurso solicitado.
type NotFoundError struct {
	Msg string
}

func (e *NotFoundError) Error() string    { return e.Msg }
func (e *NotFoundError) Category() string { return "NOT_FOUND" }
func (e *NotFoundError) HTTPStatus() int  { return http.StatusNotFound }
func (e *NotFoundError) Unwrap() error    { return nil }

// NewNotFoundError cria um novo erro de recurso não encontrado.
func NewNotFoundError(msg string) AppError {
	return &NotFoundError{Msg: msg}
}

// ConflictError representa violação de unicidade ou de integridade referencial.
type ConflictError struct {
	Msg string
}

func (e *ConflictError) Error() string    { return e.Msg }
func (e *ConflictError) Category() string { return "CONFLICT" }
func (e *ConflictError) HTTPStatus() int  { return http.StatusConflict }
func (e *ConflictError) Unwrap() error    { return nil }

// NewConflictError cria um novo erro de conflito.
func NewConflictError(msg string) AppError {
	return &ConflictError{Msg: msg}
}

// UnauthorizedError indica credenciais ausentes, inválidas ou expiradas.
type UnauthorizedError struct {
	Msg string
}

func (e *UnauthorizedError) Error() string    { return e.Msg }
func (e *UnauthorizedError) Category() string { return "UNAUTHORIZED" }
func (e *UnauthorizedError) HTTPStatus() int  { return http.StatusUnauthorized }
func (e *UnauthorizedError) Unwrap() error    { return nil }

func NewUnauthorizedError(msg string) AppError {
	return &UnauthorizedError{Msg: msg}
}

// ForbiddenError indica um principal autenticado sem permissão para o recurso.
type ForbiddenError struct {
	Msg string
}

func (e *ForbiddenError) Error() string    { return e.Msg }
func (e *ForbiddenError) Category() string { return "FORBIDDEN" }
func (e *ForbiddenError) HTTPStatus() int  { return http.StatusForbidden }
func (e *ForbiddenError) Unwrap() error    { return nil }

func NewForbiddenError(msg string) AppError {
	return &ForbiddenError{Msg: msg}
}

// --- Erros do ciclo de vida de pedidos ---

// InvalidQuantityError: item de pedido com quantidade <= 0 ou não inteira.
type InvalidQuantityError struct {
	ProductID string
	Count     string
}

func (e *InvalidQuantityError) Error() string {
	return fmt.Sprintf("Invalid quantity %s for product with id %s: count must be a positive integer", e.Count, e.ProductID)
}
func (e *InvalidQuantityError) Category() string { return "INVALID_QUANTITY" }
func (e *InvalidQuantityError) HTTPStatus() int  { return http.StatusBadRequest }
func (e *InvalidQuantityError) Unwrap() error    { return nil }

func NewInvalidQuantityError(productID string, count string) AppError {
	return &InvalidQuantityError{ProductID: productID, Count: count}
}

// ProductNotFoundError: o produto referenciado não existe.
type ProductNotFoundError struct {
	ProductID string
}

func (e *ProductNotFoundError) Error() string {
	return fmt.Sprintf("No product with the id %s was found", e.ProductID)
}
func (e *ProductNotFoundError) Category() string { return "PRODUCT_NOT_FOUND" }
func (e *ProductNotFoundError) HTTPStatus() int  { return http.StatusNotFound }
func (e *ProductNotFoundError) Unwrap() error    { return nil }

func NewProductNotFoundError(productID string) AppError {
	return &ProductNotFoundError{ProductID: productID}
}

// InsufficientStockError: o estoque atual não cobre a quantidade pedida.
type InsufficientStockError struct {
	ProductID string
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("Product with id %s has not enough stock", e.ProductID)
}
func (e *InsufficientStockError) Category() string { return "INSUFFICIENT_STOCK" }
func (e *InsufficientStockError) HTTPStatus() int  { return http.StatusBadRequest }
func (e *InsufficientStockError) Unwrap() error    { return nil }

func NewInsufficientStockError(productID string, requested, available int) AppError {
	return &InsufficientStockError{ProductID: productID, Requested: requested, Available: available}
}

// OrderNotFoundError: o pedido referenciado não existe.
type OrderNotFoundError struct {
	OrderID string
}

func (e *OrderNotFoundError) Error() string {
	return fmt.Sprintf("No order with the id %s was found", e.OrderID)
}
func (e *OrderNotFoundError) Category() string { return "ORDER_NOT_FOUND" }
func (e *OrderNotFoundError) HTTPStatus() int  { return http.StatusNotFound }
func (e *OrderNotFoundError) Unwrap() error    { return nil }

func NewOrderNotFoundError(orderID string) AppError {
	return &OrderNotFoundError{OrderID: orderID}
}

// --- Erros de infraestrutura ---

// InternalError representa falhas inesperadas no servidor, serviço ou repositório.
type InternalError struct {
	Msg string
	Err error // Erro original (e.g., erro do driver SQL)
}

func (e *InternalError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}
func (e *InternalError) Category() string { return "INTERNAL_ERROR" }
func (e *InternalError) HTTPStatus() int  { return http.StatusInternalServerError }
func (e *InternalError) Unwrap() error    { return e.Err }

// NewInternalError cria um erro de servidor (para falhas de lógica ou código não esperado).
func NewInternalError(msg string, err error) AppError {
	return &InternalError{Msg: msg, Err: err}
}

// NewDBError é um atalho para criar um InternalError específico de falhas no DB.
func NewDBError(msg string, err error) AppError {
	return NewInternalError(msg+" (DB)", err)
}

// Translate preserva erros já tipados e encapsula o resto como InternalError.
func Translate(err error, msg string) error {
	if err == nil {
		return nil
	}
	var appErr AppError
	if errors.As(err, &appErr) {
		return err
	}
	return NewInternalError(msg, err)
}

// CategoryOf devolve a categoria do erro tipado mais externo da cadeia.
func CategoryOf(err error) string {
	var appErr AppError
	if errors.As(err, &appErr) {
		return appErr.Category()
	}
	return "UNKNOWN_ERROR"
}

// --- Helper para o Handler (Tradução Final) ---

const genericServerMessage = "An unexpected error occurred."

// MapToHTTPStatus recebe um erro e o traduz para o código HTTP, categoria e mensagem.
// Falhas 5xx nunca expõem o detalhe interno ao cliente.
func MapToHTTPStatus(err error) (int, string, string) {
	var appErr AppError
	if errors.As(err, &appErr) {
		if appErr.HTTPStatus() >= http.StatusInternalServerError {
			return appErr.HTTPStatus(), appErr.Category(), genericServerMessage
		}
		return appErr.HTTPStatus(), appErr.Category(), appErr.Error()
	}

	return http.StatusInternalServerError, "UNKNOWN_ERROR", genericServerMessage
}
