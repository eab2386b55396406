// Package memory implementa os contratos de estoque, pedidos e usuários em memória.
// Um único mutex serializa as operações; WithinTx segura o mutex durante toda a
// unidade de trabalho e restaura um snapshot se ela falhar.
// É um backend de teste e referência: os testes de serviço rodam sobre ele, a aplicação
// em cmd/ usa os repositórios PostgreSQL.
package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"storefront/internal/domain"
	apperror "storefront/internal/errors"
)

type txKey struct{ store *Store }

// Store guarda o estado compartilhado por StockStore, OrderStore e UserStore.
type Store struct {
	mu sync.Mutex

	companies  map[string]domain.Company
	branches   map[string]domain.Branch
	categories map[string]domain.Category
	products   map[string]domain.Product
	users      map[string]domain.User

	orders   map[string]domain.Order
	orderSeq []string
	lines    map[string][]domain.LineItem
}

func NewStore() *Store {
	return &Store{
		companies:  make(map[string]domain.Company),
		branches:   make(map[string]domain.Branch),
		categories: make(map[string]domain.Category),
		products:   make(map[string]domain.Product),
		users:      make(map[string]domain.User),
		orders:     make(map[string]domain.Order),
		lines:      make(map[string][]domain.LineItem),
	}
}

// WithinTx executa fn com acesso exclusivo ao Store. Se fn falhar (ou entrar em
// panic) o estado volta ao que era antes. Chamadas aninhadas reaproveitam a externa.
func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if s.inTx(ctx) {
		return fn(ctx)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	snap := s.snapshot()
	defer func() {
		if p := recover(); p != nil {
			s.restore(snap)
			panic(p)
		}
	}()

	if err := fn(context.WithValue(ctx, txKey{s}, true)); err != nil {
		s.restore(snap)
		return err
	}
	return nil
}

func (s *Store) inTx(ctx context.Context) bool {
	return ctx.Value(txKey{s}) != nil
}

// lock adquire o mutex, exceto quando a chamada já está dentro de WithinTx.
func (s *Store) lock(ctx context.Context) func() {
	if s.inTx(ctx) {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

type snapshot struct {
	products map[string]domain.Product
	orders   map[string]domain.Order
	orderSeq []string
	lines    map[string][]domain.LineItem
}

// snapshot copia apenas o que as unidades de trabalho alteram.
func (s *Store) snapshot() snapshot {
	snap := snapshot{
		products: make(map[string]domain.Product, len(s.products)),
		orders:   make(map[string]domain.Order, len(s.orders)),
		orderSeq: append([]string(nil), s.orderSeq...),
		lines:    make(map[string][]domain.LineItem, len(s.lines)),
	}
	for k, v := range s.products {
		snap.products[k] = v
	}
	for k, v := range s.orders {
		snap.orders[k] = v
	}
	for k, v := range s.lines {
		snap.lines[k] = append([]domain.LineItem(nil), v...)
	}
	return snap
}

func (s *Store) restore(snap snapshot) {
	s.products = snap.products
	s.orders = snap.orders
	s.orderSeq = snap.orderSeq
	s.lines = snap.lines
}

// --- Carga de dados ---

func (s *Store) AddCompany(c domain.Company) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.companies[c.ID] = c
}

func (s *Store) AddBranch(b domain.Branch) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.branches[b.ID] = b
}

func (s *Store) AddCategory(c domain.Category) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.categories[c.ID] = c
}

func (s *Store) AddProduct(p domain.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
		p.UpdatedAt = p.CreatedAt
	}
	s.products[p.ID] = p
}

func (s *Store) AddUser(u domain.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[u.ID] = u
}

// Stock devolve o estoque atual do produto (-1 se não existir).
func (s *Store) Stock(productID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.products[productID]
	if !ok {
		return -1
	}
	return p.Stock
}

// OrderCount devolve quantos pedidos existem.
func (s *Store) OrderCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.orders)
}

// --- Estoque ---

// StockStore implementa leitura e ajuste condicional de estoque.
type StockStore struct{ s *Store }

func (s *Store) Stocks() *StockStore { return &StockStore{s: s} }

func (st *StockStore) GetStock(ctx context.Context, productID string) (int, error) {
	defer st.s.lock(ctx)()
	p, ok := st.s.products[productID]
	if !ok {
		return 0, apperror.NewProductNotFoundError(productID)
	}
	return p.Stock, nil
}

func (st *StockStore) AdjustStock(ctx context.Context, productID string, delta int) (domain.Product, error) {
	defer st.s.lock(ctx)()
	p, ok := st.s.products[productID]
	if !ok {
		return domain.Product{}, apperror.NewProductNotFoundError(productID)
	}
	if p.Stock+delta < 0 {
		return domain.Product{}, apperror.NewInsufficientStockError(productID, -delta, p.Stock)
	}
	p.Stock += delta
	p.UpdatedAt = time.Now().UTC()
	st.s.products[productID] = p
	return p, nil
}

// --- Pedidos ---

// OrderStore implementa o repositório de pedidos.
type OrderStore struct{ s *Store }

func (s *Store) Orders() *OrderStore { return &OrderStore{s: s} }

func (o *OrderStore) CreateOrder(ctx context.Context, order domain.Order) error {
	defer o.s.lock(ctx)()
	if _, ok := o.s.users[order.UserID]; !ok {
		return apperror.NewConflictError("Foreign key constraint failed for orders_user_id_fkey")
	}
	if _, ok := o.s.orders[order.ID]; ok {
		return apperror.NewConflictError("Unique constraint failed for orders_pkey")
	}
	o.s.orders[order.ID] = order
	o.s.orderSeq = append(o.s.orderSeq, order.ID)
	return nil
}

func (o *OrderStore) AddLineItem(ctx context.Context, item domain.LineItem) error {
	defer o.s.lock(ctx)()
	if _, ok := o.s.orders[item.OrderID]; !ok {
		return apperror.NewConflictError("Foreign key constraint failed for order_products_order_id_fkey")
	}
	if _, ok := o.s.products[item.ProductID]; !ok {
		return apperror.NewConflictError("Foreign key constraint failed for order_products_product_id_fkey")
	}
	for _, existing := range o.s.lines[item.OrderID] {
		if existing.ProductID == item.ProductID {
			return apperror.NewConflictError("Unique constraint failed for order_products_pkey")
		}
	}
	o.s.lines[item.OrderID] = append(o.s.lines[item.OrderID], item)
	return nil
}

func (o *OrderStore) GetOrder(ctx context.Context, orderID string) (domain.Order, error) {
	defer o.s.lock(ctx)()
	order, ok := o.s.orders[orderID]
	if !ok {
		return domain.Order{}, apperror.NewOrderNotFoundError(orderID)
	}
	return order, nil
}

func (o *OrderStore) GetLineItems(ctx context.Context, orderID string) ([]domain.LineItem, error) {
	defer o.s.lock(ctx)()
	return append([]domain.LineItem{}, o.s.lines[orderID]...), nil
}

func (o *OrderStore) DeleteLineItems(ctx context.Context, orderID string) error {
	defer o.s.lock(ctx)()
	delete(o.s.lines, orderID)
	return nil
}

func (o *OrderStore) DeleteOrder(ctx context.Context, orderID string) error {
	defer o.s.lock(ctx)()
	if _, ok := o.s.orders[orderID]; !ok {
		return apperror.NewOrderNotFoundError(orderID)
	}
	if len(o.s.lines[orderID]) > 0 {
		return apperror.NewConflictError("Foreign key constraint failed for order_products_order_id_fkey")
	}
	delete(o.s.orders, orderID)
	for i, id := range o.s.orderSeq {
		if id == orderID {
			o.s.orderSeq = append(o.s.orderSeq[:i:i], o.s.orderSeq[i+1:]...)
			break
		}
	}
	return nil
}

// FindOrderRows monta as linhas planas na ordem de criação dos pedidos e dos itens.
func (o *OrderStore) FindOrderRows(ctx context.Context, filter domain.OrderRowFilter) ([]domain.OrderRow, error) {
	defer o.s.lock(ctx)()

	rows := make([]domain.OrderRow, 0)
	for _, orderID := range o.s.orderSeq {
		order := o.s.orders[orderID]
		if filter.OrderID != "" && filter.OrderID != order.ID {
			continue
		}
		if filter.UserID != "" && filter.UserID != order.UserID {
			continue
		}
		user := o.s.users[order.UserID]
		for _, item := range o.s.lines[orderID] {
			row, err := o.s.joinRow(order, user, item)
			if err != nil {
				return nil, err
			}
			rows = append(rows, row)
		}
	}
	return rows, nil
}

func (s *Store) joinRow(order domain.Order, user domain.User, item domain.LineItem) (domain.OrderRow, error) {
	product, ok := s.products[item.ProductID]
	if !ok {
		return domain.OrderRow{}, apperror.NewInternalError(fmt.Sprintf("item do pedido %s aponta para produto inexistente", order.ID), nil)
	}
	category := s.categories[product.CategoryID]
	branch := s.branches[product.BranchID]
	company := s.companies[branch.CompanyID]

	return domain.OrderRow{
		OrderID:             order.ID,
		UserID:              order.UserID,
		Username:            user.Username,
		Name:                user.Name,
		Surname:             user.Surname,
		CreatedAt:           order.CreatedAt,
		Position:            item.Position,
		ProductID:           product.ID,
		Product:             product.Name,
		Count:               item.Count,
		CategoryID:          category.ID,
		Category:            category.Name,
		CategoryDescription: category.Description,
		BranchID:            branch.ID,
		Branch:              branch.Name,
		CompanyID:           company.ID,
		Company:             company.Name,
	}, nil
}

// --- Usuários ---

// UserStore implementa o diretório de usuários usado pelo serviço de pedidos.
type UserStore struct{ s *Store }

func (s *Store) Users() *UserStore { return &UserStore{s: s} }

func (u *UserStore) FindByID(ctx context.Context, id string) (domain.User, error) {
	defer u.s.lock(ctx)()
	user, ok := u.s.users[id]
	if !ok {
		return domain.User{}, apperror.NewNotFoundError(fmt.Sprintf("User with id %s was not found", id))
	}
	return user, nil
}
