package domain

import "time"

// Order é o cabeçalho do pedido. Nunca é atualizado depois de criado.
type Order struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// LineItem é um item persistido do pedido. (OrderID, ProductID) é a chave.
// Position guarda a ordem de entrada para que leituras devolvam os itens na mesma ordem.
type LineItem struct {
	OrderID   string
	ProductID string
	Count     int
	Position  int
}

// LineItemRequest é um item pedido pelo cliente, ainda não validado.
type LineItemRequest struct {
	ProductID string `json:"product_id"`
	Count     int    `json:"count"`
}

// MergeLineItems soma as quantidades de produtos repetidos, mantendo cada produto
// na posição da sua primeira ocorrência.
func MergeLineItems(lines []LineItemRequest) []LineItemRequest {
	merged := make([]LineItemRequest, 0, len(lines))
	index := make(map[string]int, len(lines))
	for _, line := range lines {
		if i, ok := index[line.ProductID]; ok {
			merged[i].Count += line.Count
			continue
		}
		index[line.ProductID] = len(merged)
		merged = append(merged, line)
	}
	return merged
}

// OrderRowFilter seleciona as linhas planas de pedidos. Campos vazios não filtram.
type OrderRowFilter struct {
	OrderID string
	UserID  string
}

// OrderRow é uma linha plana do join pedido x item x produto x categoria x filial x empresa x usuário.
type OrderRow struct {
	OrderID             string
	UserID              string
	Username            string
	Name                string
	Surname             string
	CreatedAt           time.Time
	Position            int
	ProductID           string
	Product             string
	Count               int
	CategoryID          string
	Category            string
	CategoryDescription string
	BranchID            string
	Branch              string
	CompanyID           string
	Company             string
}

// OrderProductView é um item do pedido com os campos de exibição do produto.
type OrderProductView struct {
	ProductID           string `json:"product_id"`
	Product             string `json:"product"`
	Count               int    `json:"count"`
	CategoryID          string `json:"category_id"`
	Category            string `json:"category"`
	CategoryDescription string `json:"category_description"`
	BranchID            string `json:"branch_id"`
	Branch              string `json:"branch"`
	CompanyID           string `json:"company_id"`
	Company             string `json:"company"`
}

// OrderView é o pedido montado com seus itens.
type OrderView struct {
	OrderID   string             `json:"order_id"`
	UserID    string             `json:"user_id"`
	CreatedAt time.Time          `json:"created_at"`
	Products  []OrderProductView `json:"products"`
}

// UserOrderView agrupa os pedidos de um usuário (visão administrativa).
type UserOrderView struct {
	UserID   string      `json:"user_id"`
	Username string      `json:"username"`
	Name     string      `json:"name"`
	Surname  string      `json:"surname"`
	Orders   []OrderView `json:"orders"`
}

// PlaceOrderRequest é o corpo de POST /v1/orders.
type PlaceOrderRequest struct {
	Products []LineItemRequest `json:"products"`
}

// OrderEvent é publicado depois do commit de uma colocação ou cancelamento.
type OrderEvent struct {
	Type       string            `json:"type"`
	OrderID    string            `json:"order_id"`
	UserID     string            `json:"user_id"`
	Lines      []LineItemRequest `json:"lines,omitempty"`
	OccurredAt time.Time         `json:"occurred_at"`
}

const (
	EventOrderPlaced    = "order.placed"
	EventOrderCancelled = "order.cancelled"
)
