package domain

import (
	"time"
)

// Product é o item do catálogo, com estoque próprio por filial.
type Product struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Stock      int       `json:"stock"`
	CategoryID string    `json:"category_id"`
	BranchID   string    `json:"branch_id"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// ProductView é o produto com os nomes de categoria, filial e empresa resolvidos.
type ProductView struct {
	ID                  string `json:"id"`
	Name                string `json:"name"`
	Stock               int    `json:"stock"`
	CategoryID          string `json:"category_id"`
	Category            string `json:"category"`
	CategoryDescription string `json:"category_description"`
	BranchID            string `json:"branch_id"`
	Branch              string `json:"branch"`
	CompanyID           string `json:"company_id"`
	Company             string `json:"company"`
}

// CreateProductRequest é o payload de criação de produto.
type CreateProductRequest struct {
	Name       string `json:"name" validate:"required,max=100"`
	Stock      int    `json:"stock" validate:"gte=0"`
	CategoryID string `json:"category_id" validate:"required,uuid"`
	BranchID   string `json:"branch_id" validate:"required,uuid"`
}

// UpdateProductRequest altera apenas os campos informados.
// O estoque não é editável aqui: ajustes passam por StockAdjustmentRequest.
type UpdateProductRequest struct {
	Name       *string `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	CategoryID *string `json:"category_id,omitempty" validate:"omitempty,uuid"`
	BranchID   *string `json:"branch_id,omitempty" validate:"omitempty,uuid"`
}

// ProductFilter restringe a listagem de produtos. Campos vazios/nil não filtram.
type ProductFilter struct {
	BranchID   string
	CompanyID  string
	CategoryID string
	MinStock   *int
	MaxStock   *int
}

// StockAdjustmentRequest é o payload de ajuste administrativo de estoque.
type StockAdjustmentRequest struct {
	ProductID string `json:"-"`
	Delta     int    `json:"delta" validate:"required"` // Quantidade a adicionar (positivo) ou remover (negativo)
}
