package domain

import "time"

// Company é o tenant dono das filiais.
type Company struct {
	ID        string    `json:"id"`
	Name      string    `json:"name" validate:"required,max=100"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Branch é uma filial de uma empresa; o estoque de cada produto pertence a uma filial.
type Branch struct {
	ID        string    `json:"id"`
	Name      string    `json:"name" validate:"required,max=100"`
	CompanyID string    `json:"company_id" validate:"required,uuid"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Category agrupa produtos; o nome é único.
type Category struct {
	ID          string    `json:"id"`
	Name        string    `json:"name" validate:"required,max=100"`
	Description string    `json:"description" validate:"max=500"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
