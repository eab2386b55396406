package stockservice

import (
	"context"
	"math"
	"strconv"

	"storefront/internal/domain"
	apperror "storefront/internal/errors"
	"storefront/internal/pkg/logger"
)

// StockRepository define o contrato que o Serviço de Estoque espera da camada de Persistência.
type StockRepository interface {
	GetStock(ctx context.Context, productID string) (int, error)
	AdjustStock(ctx context.Context, productID string, delta int) (domain.Product, error)
}

// Service é o livro-razão de estoque: valida pedidos e aplica ajustes administrativos.
type Service struct {
	repo   StockRepository
	logger logger.Logger
}

// NewService cria e retorna uma nova instância do Serviço de Estoque.
func NewService(repo StockRepository, logger logger.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// Validate confere cada item contra o estoque atual, na ordem recebida, e devolve a
// primeira falha: InvalidQuantity, ProductNotFound ou InsufficientStock. Não altera nada.
// Produtos repetidos são somados a cada linha; a linha cujo total passa do estoque é a reportada.
func (s *Service) Validate(ctx context.Context, lines []domain.LineItemRequest) error {
	s.logger.Debug("Validando itens contra o estoque.", map[string]interface{}{"lines": len(lines)})

	if len(lines) == 0 {
		return apperror.NewValidationError("An order must contain at least one product")
	}

	stocks := make(map[string]int, len(lines))
	requested := make(map[string]int, len(lines))

	for _, line := range lines {
		if line.Count <= 0 {
			return apperror.NewInvalidQuantityError(line.ProductID, strconv.Itoa(line.Count))
		}

		stock, seen := stocks[line.ProductID]
		if !seen {
			var err error
			if stock, err = s.repo.GetStock(ctx, line.ProductID); err != nil {
				return apperror.Translate(err, "Falha interna ao consultar estoque.")
			}
			stocks[line.ProductID] = stock
		}

		// stock - já pedido >= 0 aqui, então a comparação não estoura int.
		if line.Count > stock-requested[line.ProductID] {
			total := math.MaxInt
			if line.Count <= math.MaxInt-requested[line.ProductID] {
				total = requested[line.ProductID] + line.Count
			}
			s.logger.Debug("Estoque insuficiente.", map[string]interface{}{
				"product_id": line.ProductID,
				"requested":  total,
				"stock":      stock,
			})
			return apperror.NewInsufficientStockError(line.ProductID, total, stock)
		}
		requested[line.ProductID] += line.Count
	}

	return nil
}

// AdjustStock aplica um ajuste administrativo pelo mesmo primitivo condicional usado nos pedidos.
func (s *Service) AdjustStock(ctx context.Context, adjustment domain.StockAdjustmentRequest) (domain.Product, error) {
	s.logger.Debug("Iniciando ajuste de estoque no serviço.", map[string]interface{}{
		"product_id": adjustment.ProductID,
		"delta":      adjustment.Delta,
	})

	if adjustment.Delta == 0 {
		return domain.Product{}, apperror.NewValidationError("Stock adjustment (delta) must not be zero")
	}

	product, err := s.repo.AdjustStock(ctx, adjustment.ProductID, adjustment.Delta)
	if err != nil {
		s.logger.Debug("Ajuste de estoque recusado.", map[string]interface{}{"product_id": adjustment.ProductID, "error": err.Error()})
		return domain.Product{}, apperror.Translate(err, "Falha interna ao ajustar estoque.")
	}

	s.logger.Info("Estoque ajustado com sucesso.", map[string]interface{}{
		"product_id": product.ID,
		"new_stock":  product.Stock,
	})
	return product, nil
}
