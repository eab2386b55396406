// Package orderservice coordena o ciclo de vida de pedidos: validação de estoque,
// baixa condicional, gravação dos itens e a reversão no cancelamento.
package orderservice

import (
	"context"
	"time"

	"github.com/google/uuid"

	"storefront/internal/domain"
	apperror "storefront/internal/errors"
	"storefront/internal/pkg/logger"
)

// OrderRepository define o contrato que o Serviço de Pedidos espera da camada de Persistência.
type OrderRepository interface {
	CreateOrder(ctx context.Context, order domain.Order) error
	AddLineItem(ctx context.Context, item domain.LineItem) error
	GetOrder(ctx context.Context, orderID string) (domain.Order, error)
	GetLineItems(ctx context.Context, orderID string) ([]domain.LineItem, error)
	DeleteLineItems(ctx context.Context, orderID string) error
	DeleteOrder(ctx context.Context, orderID string) error
	FindOrderRows(ctx context.Context, filter domain.OrderRowFilter) ([]domain.OrderRow, error)
}

// StockAdjuster aplica a baixa ou devolução condicional de estoque.
type StockAdjuster interface {
	AdjustStock(ctx context.Context, productID string, delta int) (domain.Product, error)
}

// StockLedger valida os itens contra o estoque sem alterar nada.
type StockLedger interface {
	Validate(ctx context.Context, lines []domain.LineItemRequest) error
}

type UserDirectory interface {
	FindByID(ctx context.Context, id string) (domain.User, error)
}

// TxManager executa fn numa única transação; erro ou panic desfazem tudo.
type TxManager interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// EventPublisher recebe os eventos depois do commit.
type EventPublisher interface {
	Publish(ctx context.Context, event domain.OrderEvent) error
}

// Metrics é o subconjunto de metrics.OrderMetrics usado aqui.
type Metrics interface {
	OrderPlaced(lines int, duration time.Duration)
	OrderRejected(reason string)
	OrderCancelled()
}

type nopPublisher struct{}

func (nopPublisher) Publish(context.Context, domain.OrderEvent) error { return nil }

type nopMetrics struct{}

func (nopMetrics) OrderPlaced(int, time.Duration) {}
func (nopMetrics) OrderRejected(string)           {}
func (nopMetrics) OrderCancelled()                {}

// Option configura dependências opcionais do serviço.
type Option func(*Service)

func WithPublisher(p EventPublisher) Option {
	return func(s *Service) {
		if p != nil {
			s.publisher = p
		}
	}
}

func WithMetrics(m Metrics) Option {
	return func(s *Service) {
		if m != nil {
			s.metrics = m
		}
	}
}

// Service implementa colocação, cancelamento e leitura de pedidos.
type Service struct {
	orders    OrderRepository
	stock     StockAdjuster
	ledger    StockLedger
	users     UserDirectory
	tx        TxManager
	publisher EventPublisher
	metrics   Metrics
	logger    logger.Logger
	now       func() time.Time
}

// NewService cria e retorna uma nova instância do Serviço de Pedidos.
func NewService(orders OrderRepository, stock StockAdjuster, ledger StockLedger, users UserDirectory, tx TxManager, logger logger.Logger, opts ...Option) *Service {
	s := &Service{
		orders:    orders,
		stock:     stock,
		ledger:    ledger,
		users:     users,
		tx:        tx,
		publisher: nopPublisher{},
		metrics:   nopMetrics{},
		logger:    logger,
		now:       func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// PlaceOrder valida os itens, baixa o estoque e grava o pedido numa única transação.
// Se qualquer passo falhar nada é persistido.
func (s *Service) PlaceOrder(ctx context.Context, userID string, lines []domain.LineItemRequest) (domain.OrderView, error) {
	start := time.Now()
	s.logger.Debug("Iniciando colocação de pedido no serviço.", map[string]interface{}{"user_id": userID, "lines": len(lines)})

	if _, err := s.users.FindByID(ctx, userID); err != nil {
		return domain.OrderView{}, s.reject(apperror.Translate(err, "Falha interna ao buscar usuário."))
	}

	// Validação linha a linha; só depois os produtos repetidos viram um único item.
	if err := s.ledger.Validate(ctx, lines); err != nil {
		return domain.OrderView{}, s.reject(err)
	}
	merged := domain.MergeLineItems(lines)

	order := domain.Order{
		ID:        uuid.NewString(),
		UserID:    userID,
		CreatedAt: s.now(),
	}

	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.orders.CreateOrder(ctx, order); err != nil {
			return err
		}
		for i, line := range merged {
			// A baixa é condicional: se outro pedido levou o estoque, falha aqui.
			if _, err := s.stock.AdjustStock(ctx, line.ProductID, -line.Count); err != nil {
				return err
			}
			item := domain.LineItem{
				OrderID:   order.ID,
				ProductID: line.ProductID,
				Count:     line.Count,
				Position:  i,
			}
			if err := s.orders.AddLineItem(ctx, item); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return domain.OrderView{}, s.reject(apperror.Translate(err, "Falha interna ao gravar pedido."))
	}

	view, err := s.GetOrderView(ctx, order.ID)
	if err != nil {
		s.logger.Error("Pedido gravado, mas falhou ao montar a visão.", err)
		return domain.OrderView{}, err
	}

	s.metrics.OrderPlaced(len(merged), time.Since(start))
	s.publish(ctx, domain.OrderEvent{
		Type:       domain.EventOrderPlaced,
		OrderID:    order.ID,
		UserID:     userID,
		Lines:      merged,
		OccurredAt: order.CreatedAt,
	})

	s.logger.Info("Pedido criado com sucesso.", map[string]interface{}{"order_id": order.ID, "user_id": userID, "lines": len(merged)})
	return view, nil
}

// CancelOrder devolve o estoque de cada item e remove o pedido, tudo numa transação.
// A autorização (dono ou admin) é responsabilidade de quem chama.
func (s *Service) CancelOrder(ctx context.Context, orderID string) (domain.Order, error) {
	s.logger.Debug("Iniciando cancelamento de pedido no serviço.", map[string]interface{}{"order_id": orderID})

	var (
		order domain.Order
		items []domain.LineItem
	)
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		if order, err = s.orders.GetOrder(ctx, orderID); err != nil {
			return err
		}
		if items, err = s.orders.GetLineItems(ctx, orderID); err != nil {
			return err
		}
		for _, item := range items {
			if _, err := s.stock.AdjustStock(ctx, item.ProductID, item.Count); err != nil {
				return err
			}
		}
		if err := s.orders.DeleteLineItems(ctx, orderID); err != nil {
			return err
		}
		return s.orders.DeleteOrder(ctx, orderID)
	})
	if err != nil {
		return domain.Order{}, apperror.Translate(err, "Falha interna ao cancelar pedido.")
	}

	lines := make([]domain.LineItemRequest, 0, len(items))
	for _, item := range items {
		lines = append(lines, domain.LineItemRequest{ProductID: item.ProductID, Count: item.Count})
	}

	s.metrics.OrderCancelled()
	s.publish(ctx, domain.OrderEvent{
		Type:       domain.EventOrderCancelled,
		OrderID:    order.ID,
		UserID:     order.UserID,
		Lines:      lines,
		OccurredAt: s.now(),
	})

	s.logger.Info("Pedido cancelado com sucesso.", map[string]interface{}{"order_id": order.ID, "restored_lines": len(items)})
	return domain.Order{ID: order.ID, CreatedAt: order.CreatedAt}, nil
}

// GetOrder devolve apenas o cabeçalho, usado para checar o dono antes de ler ou cancelar.
func (s *Service) GetOrder(ctx context.Context, orderID string) (domain.Order, error) {
	order, err := s.orders.GetOrder(ctx, orderID)
	if err != nil {
		return domain.Order{}, apperror.Translate(err, "Falha interna ao buscar pedido.")
	}
	return order, nil
}

func (s *Service) GetOrderView(ctx context.Context, orderID string) (domain.OrderView, error) {
	rows, err := s.orders.FindOrderRows(ctx, domain.OrderRowFilter{OrderID: orderID})
	if err != nil {
		return domain.OrderView{}, apperror.Translate(err, "Falha interna ao buscar pedido.")
	}

	views := domain.GroupByOrder(rows)
	if len(views) == 0 {
		return domain.OrderView{}, apperror.NewOrderNotFoundError(orderID)
	}
	return views[0], nil
}

func (s *Service) ListOrdersForUser(ctx context.Context, userID string) ([]domain.OrderView, error) {
	rows, err := s.orders.FindOrderRows(ctx, domain.OrderRowFilter{UserID: userID})
	if err != nil {
		return nil, apperror.Translate(err, "Falha interna ao listar pedidos.")
	}
	return domain.GroupByOrder(rows), nil
}

// ListAllOrders é a visão administrativa, agrupada por usuário.
func (s *Service) ListAllOrders(ctx context.Context) ([]domain.UserOrderView, error) {
	rows, err := s.orders.FindOrderRows(ctx, domain.OrderRowFilter{})
	if err != nil {
		return nil, apperror.Translate(err, "Falha interna ao listar pedidos.")
	}
	return domain.GroupByUser(rows), nil
}

func (s *Service) reject(err error) error {
	s.metrics.OrderRejected(apperror.CategoryOf(err))
	s.logger.Debug("Pedido recusado.", map[string]interface{}{"error": err.Error()})
	return err
}

// publish é best effort: o pedido já foi confirmado.
func (s *Service) publish(ctx context.Context, event domain.OrderEvent) {
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn("Falha ao publicar evento de pedido.", map[string]interface{}{
			"type":     event.Type,
			"order_id": event.OrderID,
			"error":    err.Error(),
		})
	}
}
