package user

import (
	"context"
	"net/http"

	"storefront/internal/api/response"
	"storefront/internal/domain"
	"storefront/internal/pkg/logger"
)

// UserService define o contrato para as operações de registro e login.
type UserService interface {
	Register(ctx context.Context, registration domain.UserRegistration) (domain.User, error)
	Login(ctx context.Context, req domain.LoginRequest) (domain.TokenResponse, error)
	AdminLogin(ctx context.Context, req domain.LoginRequest) (domain.TokenResponse, error)
}

// Handler agrupa todos os métodos de Handler do usuário.
type Handler struct {
	Service UserService
	Logger  logger.Logger
}

// NewHandler cria uma nova instância do Handler, injetando o Service e o Logger.
func NewHandler(svc UserService, log logger.Logger) *Handler {
	return &Handler{Service: svc, Logger: log}
}

// RegisterUserHandler lida com a requisição POST /v1/register.
// @Summary Registra um novo usuário
// @Description Cria um novo usuário, hasheia a senha e salva no banco de dados.
// @Tags users
// @Accept json
// @Produce json
// @Param registration body domain.UserRegistration true "Dados de registro"
// @Success 201 {object} domain.User "Usuário criado com sucesso"
// @Failure 400 {object} domain.ErrorResponse "Payload inválido"
// @Failure 409 {object} domain.ErrorResponse "Username já cadastrado"
// @Router /register [post]
func (h *Handler) RegisterUserHandler(w http.ResponseWriter, r *http.Request) {
	var reg domain.UserRegistration
	if err := response.Decode(r, &reg); err != nil {
		response.Error(w, r, h.Logger, err)
		return
	}

	// O hash da senha não sai no JSON (tag `json:"-"`).
	newUser, err := h.Service.Register(r.Context(), reg)
	response.Write(w, r, h.Logger, newUser, err, http.StatusCreated)
}

// LoginUserHandler lida com a requisição POST /v1/login.
// @Summary Autentica um usuário e retorna um JWT
// @Tags users
// @Accept json
// @Produce json
// @Param login body domain.LoginRequest true "Credenciais do usuário"
// @Success 200 {object} domain.TokenResponse "Token JWT emitido"
// @Failure 401 {object} domain.ErrorResponse "Credenciais inválidas"
// @Router /login [post]
func (h *Handler) LoginUserHandler(w http.ResponseWriter, r *http.Request) {
	h.login(w, r, h.Service.Login)
}

// LoginAdminHandler lida com a requisição POST /v1/admin/login.
// @Summary Autentica um administrador e retorna um JWT
// @Tags users
// @Accept json
// @Produce json
// @Param login body domain.LoginRequest true "Credenciais do admin"
// @Success 200 {object} domain.TokenResponse "Token JWT emitido"
// @Failure 401 {object} domain.ErrorResponse "Credenciais inválidas"
// @Router /admin/login [post]
func (h *Handler) LoginAdminHandler(w http.ResponseWriter, r *http.Request) {
	h.login(w, r, h.Service.AdminLogin)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request, authenticate func(context.Context, domain.LoginRequest) (domain.TokenResponse, error)) {
	var loginReq domain.LoginRequest
	if err := response.Decode(r, &loginReq); err != nil {
		response.Error(w, r, h.Logger, err)
		return
	}

	token, err := authenticate(r.Context(), loginReq)
	response.Write(w, r, h.Logger, token, err, http.StatusOK)
}
