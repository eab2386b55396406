package domain

import "time"

// User é o cliente que faz pedidos.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"` // Oculta o hash da senha no JSON de resposta
	Name         string    `json:"name"`
	Surname      string    `json:"surname"`
	Profession   string    `json:"profession"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Admin gerencia o catálogo e enxerga todos os pedidos.
type Admin struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// UserRole é o papel carregado no token de acesso.
type UserRole string

const (
	RoleAdmin UserRole = "admin"
	RoleUser  UserRole = "user"
)

// UserRegistration representa o payload de entrada para o registro.
type UserRegistration struct {
	Username   string `json:"username" validate:"required,min=3,max=50"`
	Password   string `json:"password" validate:"required,min=6,max=72"`
	Name       string `json:"name" validate:"required,max=100"`
	Surname    string `json:"surname" validate:"required,max=100"`
	Profession string `json:"profession" validate:"max=100"`
}

// LoginRequest é usado tanto no login de usuário quanto no de admin.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// TokenResponse é o corpo devolvido por um login bem-sucedido.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
}
