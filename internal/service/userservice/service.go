package userservice

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"storefront/internal/domain"
	apperror "storefront/internal/errors"
	"storefront/internal/pkg/logger"
)

// UserRepository define o contrato de persistência de usuários e administradores.
type UserRepository interface {
	Save(ctx context.Context, user domain.User) (domain.User, error)
	FindByUsername(ctx context.Context, username string) (domain.User, error)
	SaveAdmin(ctx context.Context, admin domain.Admin) (domain.Admin, error)
	FindAdminByUsername(ctx context.Context, username string) (domain.Admin, error)
}

// TokenService é o contrato da camada de token (internal/pkg/token)
type TokenService interface {
	GenerateToken(userID, username, role string) (string, error)
}

// UserService define o serviço de lógica de negócio para usuários e admins.
type UserService struct {
	repo     UserRepository
	tokenSvc TokenService
	logger   logger.Logger
}

// NewService cria uma nova instância do UserService, injetando o Repositório.
func NewService(repo UserRepository, tokenSvc TokenService, logger logger.Logger) *UserService {
	return &UserService{repo: repo, tokenSvc: tokenSvc, logger: logger}
}

var errInvalidCredentials = apperror.NewUnauthorizedError("Invalid username or password")

// Register registra um novo usuário. Username repetido gera ConflictError.
func (s *UserService) Register(ctx context.Context, registration domain.UserRegistration) (domain.User, error) {
	s.logger.Debug("Iniciando registro de usuário no serviço.", map[string]interface{}{"username": registration.Username})

	username := strings.TrimSpace(registration.Username)
	if username == "" || registration.Password == "" {
		return domain.User{}, apperror.NewValidationError("Username and password are required")
	}

	hash, err := hashPassword(registration.Password)
	if err != nil {
		return domain.User{}, err
	}

	user, err := s.repo.Save(ctx, domain.User{
		Username:     username,
		PasswordHash: hash,
		Name:         registration.Name,
		Surname:      registration.Surname,
		Profession:   registration.Profession,
	})
	if err != nil {
		return domain.User{}, apperror.Translate(err, "Falha interna ao registrar usuário.")
	}

	s.logger.Info("Usuário registrado com sucesso.", map[string]interface{}{"user_id": user.ID})
	return user, nil
}

// Login autentica um usuário e gera um JWT com papel "user".
func (s *UserService) Login(ctx context.Context, req domain.LoginRequest) (domain.TokenResponse, error) {
	user, err := s.repo.FindByUsername(ctx, req.Username)
	if err != nil {
		return domain.TokenResponse{}, s.credentialsError(err)
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		return domain.TokenResponse{}, errInvalidCredentials
	}
	return s.issue(user.ID, user.Username, domain.RoleUser)
}

// AdminLogin autentica um administrador e gera um JWT com papel "admin".
func (s *UserService) AdminLogin(ctx context.Context, req domain.LoginRequest) (domain.TokenResponse, error) {
	admin, err := s.repo.FindAdminByUsername(ctx, req.Username)
	if err != nil {
		return domain.TokenResponse{}, s.credentialsError(err)
	}
	if bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(req.Password)) != nil {
		return domain.TokenResponse{}, errInvalidCredentials
	}
	return s.issue(admin.ID, admin.Username, domain.RoleAdmin)
}

// EnsureAdmin cria o administrador inicial se ele ainda não existir.
func (s *UserService) EnsureAdmin(ctx context.Context, username, password string) error {
	if username == "" || password == "" {
		s.logger.Warn("Credenciais de admin não configuradas; bootstrap ignorado.", nil)
		return nil
	}

	_, err := s.repo.FindAdminByUsername(ctx, username)
	if err == nil {
		return nil
	}
	var notFound *apperror.NotFoundError
	if !errors.As(err, &notFound) {
		return apperror.Translate(err, "Falha interna ao buscar admin.")
	}

	hash, err := hashPassword(password)
	if err != nil {
		return err
	}
	admin, err := s.repo.SaveAdmin(ctx, domain.Admin{Username: username, PasswordHash: hash})
	if err != nil {
		return apperror.Translate(err, "Falha interna ao criar admin.")
	}

	s.logger.Info("Admin inicial criado.", map[string]interface{}{"admin_id": admin.ID, "username": username})
	return nil
}

func (s *UserService) issue(id, username string, role domain.UserRole) (domain.TokenResponse, error) {
	tokenString, err := s.tokenSvc.GenerateToken(id, username, string(role))
	if err != nil {
		s.logger.Error("Falha ao gerar token de autenticação.", err)
		return domain.TokenResponse{}, apperror.NewInternalError("Falha ao gerar token de autenticação.", err)
	}
	return domain.TokenResponse{AccessToken: tokenString}, nil
}

// credentialsError esconde se o username existe.
func (s *UserService) credentialsError(err error) error {
	var notFound *apperror.NotFoundError
	if errors.As(err, &notFound) {
		return errInvalidCredentials
	}
	return apperror.Translate(err, "Falha interna ao autenticar.")
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", apperror.NewInternalError("Falha ao gerar hash da senha.", err)
	}
	return string(hash), nil
}
