package stockrepo

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"storefront/internal/domain"
	"storefront/internal/errors"
	"storefront/internal/pkg/cache"
	"storefront/internal/pkg/database"
	"storefront/internal/pkg/logger"
)

const productColumns = `id, name, stock, category_id, branch_id, created_at, updated_at`

// StockRepository lê e ajusta o estoque dos produtos.
// Participa da transação presente no contexto, se houver.
type StockRepository struct {
	DB        *sql.DB
	Cache     cache.Client // opcional, usado só para invalidar visões de produto
	DBTimeout time.Duration
	logger    logger.Logger
}

// NewStockRepository cria e retorna uma nova instância do Repositório de Estoque.
func NewStockRepository(db *sql.DB, cacheClient cache.Client, dbTimeout time.Duration, logger logger.Logger) *StockRepository {
	return &StockRepository{
		DB:        db,
		Cache:     cacheClient,
		DBTimeout: dbTimeout,
		logger:    logger,
	}
}

// GetStock devolve o estoque atual do produto.
func (r *StockRepository) GetStock(ctx context.Context, productID string) (int, error) {
	r.logger.Debug("Buscando estoque no repositório.", map[string]interface{}{"product_id": productID})

	if !isUUID(productID) {
		return 0, errors.NewProductNotFoundError(productID)
	}

	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	var stock int
	err := database.Conn(ctx, r.DB).QueryRowContext(ctxTimeout, `SELECT stock FROM products WHERE id = $1`, productID).Scan(&stock)
	if err == sql.ErrNoRows {
		return 0, errors.NewProductNotFoundError(productID)
	}
	if err != nil {
		r.logger.Error("Falha ao buscar estoque no DB.", err)
		return 0, errors.NewDBError("Falha ao buscar estoque", err)
	}

	return stock, nil
}

// AdjustStock aplica stock += delta num único UPDATE condicional (stock + delta >= 0),
// o que fecha a corrida entre validar e decrementar. Quando a condição falha devolve
// InsufficientStockError com o estoque atual; quando o produto não existe, ProductNotFoundError.
func (r *StockRepository) AdjustStock(ctx context.Context, productID string, delta int) (domain.Product, error) {
	r.logger.Debug("Iniciando ajuste de estoque no repositório.", map[string]interface{}{"product_id": productID, "delta": delta})

	if !isUUID(productID) {
		return domain.Product{}, errors.NewProductNotFoundError(productID)
	}

	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := `
        UPDATE products
        SET stock = stock + $2, updated_at = $3
        WHERE id = $1 AND stock + $2 >= 0
        RETURNING ` + productColumns

	var p domain.Product
	err := database.Conn(ctx, r.DB).QueryRowContext(ctxTimeout, query, productID, delta, time.Now().UTC()).Scan(
		&p.ID, &p.Name, &p.Stock, &p.CategoryID, &p.BranchID, &p.CreatedAt, &p.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		available, getErr := r.GetStock(ctx, productID)
		if getErr != nil {
			return domain.Product{}, getErr
		}
		r.logger.Warn("Ajuste recusado: resultaria em estoque negativo.", map[string]interface{}{
			"product_id": productID,
			"stock":      available,
			"delta":      delta,
		})
		return domain.Product{}, errors.NewInsufficientStockError(productID, -delta, available)
	}
	if err != nil {
		r.logger.Error("Falha ao ajustar estoque no DB.", err)
		return domain.Product{}, errors.NewDBError("Falha ao ajustar estoque", err)
	}

	// A visão em cache só cai depois do commit; antes disso uma leitura concorrente
	// repopularia o cache com o estoque antigo.
	if r.Cache != nil {
		database.AfterCommit(ctx, func() {
			if err := r.Cache.Delete(context.WithoutCancel(ctx), cache.ProductViewKey(productID)); err != nil {
				r.logger.Warn("Falha ao invalidar cache de produto.", map[string]interface{}{"product_id": productID, "error": err.Error()})
			}
		})
	}

	r.logger.Debug("Estoque ajustado.", map[string]interface{}{"product_id": productID, "new_stock": p.Stock})
	return p, nil
}

func isUUID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
