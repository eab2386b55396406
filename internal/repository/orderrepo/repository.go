package orderrepo

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"storefront/internal/domain"
	"storefront/internal/errors"
	"storefront/internal/pkg/database"
	"storefront/internal/pkg/logger"
)

const orderRowsSelect = `
        SELECT o.id, o.user_id, u.username, u.name, u.surname, o.created_at,
               op.position, p.id, p.name, op.count,
               c.id, c.name, c.description, b.id, b.name, co.id, co.name
        FROM orders o
        JOIN users u ON u.id = o.user_id
        JOIN order_products op ON op.order_id = o.id
        JOIN products p ON p.id = op.product_id
        JOIN categories c ON c.id = p.category_id
        JOIN branches b ON b.id = p.branch_id
        JOIN companies co ON co.id = b.company_id`

// OrderRepository persiste cabeçalhos e itens de pedido no PostgreSQL.
// Não aplica regra de negócio; todas as chamadas participam da transação do contexto.
type OrderRepository struct {
	DB        *sql.DB
	DBTimeout time.Duration
	logger    logger.Logger
}

func NewOrderRepository(db *sql.DB, dbTimeout time.Duration, logger logger.Logger) *OrderRepository {
	return &OrderRepository{DB: db, DBTimeout: dbTimeout, logger: logger}
}

// CreateOrder insere o cabeçalho do pedido.
func (r *OrderRepository) CreateOrder(ctx context.Context, order domain.Order) error {
	r.logger.Debug("Iniciando CreateOrder no repositório.", map[string]interface{}{"order_id": order.ID, "user_id": order.UserID})

	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	_, err := database.Conn(ctx, r.DB).ExecContext(ctxTimeout,
		`INSERT INTO orders (id, user_id, created_at) VALUES ($1, $2, $3)`,
		order.ID, order.UserID, order.CreatedAt,
	)
	if err != nil {
		r.logger.Error("Falha ao inserir pedido no DB.", err)
		return database.MapWriteError("Falha ao criar pedido", err)
	}
	return nil
}

// AddLineItem insere um item do pedido.
func (r *OrderRepository) AddLineItem(ctx context.Context, item domain.LineItem) error {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	_, err := database.Conn(ctx, r.DB).ExecContext(ctxTimeout,
		`INSERT INTO order_products (order_id, product_id, count, position) VALUES ($1, $2, $3, $4)`,
		item.OrderID, item.ProductID, item.Count, item.Position,
	)
	if err != nil {
		r.logger.Error("Falha ao inserir item de pedido no DB.", err)
		return database.MapWriteError("Falha ao criar item de pedido", err)
	}
	return nil
}

// GetOrder busca o cabeçalho do pedido.
func (r *OrderRepository) GetOrder(ctx context.Context, orderID string) (domain.Order, error) {
	r.logger.Debug("Iniciando GetOrder no repositório.", map[string]interface{}{"order_id": orderID})

	if !isUUID(orderID) {
		return domain.Order{}, errors.NewOrderNotFoundError(orderID)
	}

	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	var order domain.Order
	err := database.Conn(ctx, r.DB).QueryRowContext(ctxTimeout,
		`SELECT id, user_id, created_at FROM orders WHERE id = $1`, orderID,
	).Scan(&order.ID, &order.UserID, &order.CreatedAt)
	if err == sql.ErrNoRows {
		return domain.Order{}, errors.NewOrderNotFoundError(orderID)
	}
	if err != nil {
		r.logger.Error("Falha ao buscar pedido no DB.", err)
		return domain.Order{}, errors.NewDBError("Falha ao buscar pedido", err)
	}
	return order, nil
}

// GetLineItems lista os itens do pedido na ordem em que foram pedidos.
func (r *OrderRepository) GetLineItems(ctx context.Context, orderID string) ([]domain.LineItem, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	rows, err := database.Conn(ctx, r.DB).QueryContext(ctxTimeout,
		`SELECT order_id, product_id, count, position FROM order_products WHERE order_id = $1 ORDER BY position`, orderID)
	if err != nil {
		r.logger.Error("Falha ao buscar itens do pedido no DB.", err)
		return nil, errors.NewDBError("Falha ao buscar itens do pedido", err)
	}
	defer rows.Close()

	items := make([]domain.LineItem, 0)
	for rows.Next() {
		var item domain.LineItem
		if err := rows.Scan(&item.OrderID, &item.ProductID, &item.Count, &item.Position); err != nil {
			return nil, errors.NewDBError("Falha ao mapear itens do pedido", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewDBError("Erro após iteração de itens do pedido", err)
	}
	return items, nil
}

// DeleteLineItems remove todos os itens do pedido.
func (r *OrderRepository) DeleteLineItems(ctx context.Context, orderID string) error {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	if _, err := database.Conn(ctx, r.DB).ExecContext(ctxTimeout, `DELETE FROM order_products WHERE order_id = $1`, orderID); err != nil {
		r.logger.Error("Falha ao deletar itens do pedido no DB.", err)
		return errors.NewDBError("Falha ao deletar itens do pedido", err)
	}
	return nil
}

// DeleteOrder remove o cabeçalho. Se nada foi removido (ex.: um cancelamento
// concorrente venceu), devolve OrderNotFoundError para que a transação seja revertida.
func (r *OrderRepository) DeleteOrder(ctx context.Context, orderID string) error {
	if !isUUID(orderID) {
		return errors.NewOrderNotFoundError(orderID)
	}

	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	result, err := database.Conn(ctx, r.DB).ExecContext(ctxTimeout, `DELETE FROM orders WHERE id = $1`, orderID)
	if err != nil {
		r.logger.Error("Falha ao deletar pedido no DB.", err)
		return errors.NewDBError("Falha ao deletar pedido", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return errors.NewDBError("Falha ao verificar linhas afetadas", err)
	}
	if rowsAffected == 0 {
		return errors.NewOrderNotFoundError(orderID)
	}
	return nil
}

// FindOrderRows devolve as linhas planas do join de pedidos, ordenadas por data do
// pedido e posição do item. O agrupamento fica com domain.GroupByOrder/GroupByUser.
func (r *OrderRepository) FindOrderRows(ctx context.Context, filter domain.OrderRowFilter) ([]domain.OrderRow, error) {
	r.logger.Debug("Iniciando FindOrderRows no repositório.", map[string]interface{}{"order_id": filter.OrderID, "user_id": filter.UserID})

	// Ids malformados nunca casam com uma coluna uuid.
	if (filter.OrderID != "" && !isUUID(filter.OrderID)) || (filter.UserID != "" && !isUUID(filter.UserID)) {
		return []domain.OrderRow{}, nil
	}

	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	var conditions []string
	var args []interface{}
	if filter.OrderID != "" {
		args = append(args, filter.OrderID)
		conditions = append(conditions, fmt.Sprintf("o.id = $%d", len(args)))
	}
	if filter.UserID != "" {
		args = append(args, filter.UserID)
		conditions = append(conditions, fmt.Sprintf("o.user_id = $%d", len(args)))
	}

	query := orderRowsSelect
	if len(conditions) > 0 {
		query += "\n        WHERE " + strings.Join(conditions, " AND ")
	}
	query += "\n        ORDER BY o.created_at, o.id, op.position"

	rows, err := database.Conn(ctx, r.DB).QueryContext(ctxTimeout, query, args...)
	if err != nil {
		r.logger.Error("Falha ao executar FindOrderRows.", err)
		return nil, errors.NewDBError("Falha ao buscar pedidos", err)
	}
	defer rows.Close()

	result := make([]domain.OrderRow, 0)
	for rows.Next() {
		var row domain.OrderRow
		if err := rows.Scan(
			&row.OrderID, &row.UserID, &row.Username, &row.Name, &row.Surname, &row.CreatedAt,
			&row.Position, &row.ProductID, &row.Product, &row.Count,
			&row.CategoryID, &row.Category, &row.CategoryDescription,
			&row.BranchID, &row.Branch, &row.CompanyID, &row.Company,
		); err != nil {
			r.logger.Error("Falha ao mapear linha de pedido.", err)
			return nil, errors.NewDBError("Falha ao mapear pedidos do DB", err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewDBError("Erro após iteração de pedidos", err)
	}

	r.logger.Info("FindOrderRows concluído.", map[string]interface{}{"rows": len(result)})
	return result, nil
}

func isUUID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
