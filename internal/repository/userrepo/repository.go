package userrepo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"storefront/internal/domain"
	apperror "storefront/internal/errors"
	"storefront/internal/pkg/database"
	"storefront/internal/pkg/logger"
)

const userColumns = `id, username, password_hash, name, surname, profession, created_at, updated_at`

// UserRepository persiste usuários e administradores.
type UserRepository struct {
	DB        *sql.DB
	DBTimeout time.Duration
	logger    logger.Logger
}

// NewUserRepository cria uma nova instância do UserRepository, injetando o DB.
func NewUserRepository(db *sql.DB, dbTimeout time.Duration, logger logger.Logger) *UserRepository {
	return &UserRepository{
		DB:        db,
		DBTimeout: dbTimeout,
		logger:    logger,
	}
}

// Save insere um novo usuário. Username repetido gera ConflictError.
func (r *UserRepository) Save(ctx context.Context, user domain.User) (domain.User, error) {
	r.logger.Debug("Iniciando Save de usuário no repositório.", map[string]interface{}{"username": user.Username})

	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	user.ID = uuid.NewString()
	user.CreatedAt = time.Now().UTC()
	user.UpdatedAt = user.CreatedAt

	query := `
        INSERT INTO users (id, username, password_hash, name, surname, profession, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := database.Conn(ctx, r.DB).ExecContext(ctxTimeout, query,
		user.ID, user.Username, user.PasswordHash, user.Name, user.Surname, user.Profession, user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("Falha ao inserir usuário no DB.", err)
		return domain.User{}, database.MapWriteError("Falha ao criar usuário", err)
	}

	r.logger.Info("Usuário salvo com sucesso no repositório.", map[string]interface{}{"user_id": user.ID, "username": user.Username})
	return user, nil
}

// FindByID é usado pelo serviço de pedidos para confirmar que o usuário existe.
func (r *UserRepository) FindByID(ctx context.Context, id string) (domain.User, error) {
	if _, err := uuid.Parse(id); err != nil {
		return domain.User{}, userNotFound("id", id)
	}
	return r.findUser(ctx, "id", id)
}

// FindByUsername busca um usuário pelo username (login).
func (r *UserRepository) FindByUsername(ctx context.Context, username string) (domain.User, error) {
	return r.findUser(ctx, "username", username)
}

// findUser busca por uma coluna fixa (id ou username); column nunca vem do cliente.
func (r *UserRepository) findUser(ctx context.Context, column, value string) (domain.User, error) {
	r.logger.Debug("Buscando usuário no repositório.", map[string]interface{}{column: value})

	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := `SELECT ` + userColumns + ` FROM users WHERE ` + column + ` = $1`

	var user domain.User
	err := database.Conn(ctx, r.DB).QueryRowContext(ctxTimeout, query, value).Scan(
		&user.ID, &user.Username, &user.PasswordHash, &user.Name, &user.Surname, &user.Profession, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.User{}, userNotFound(column, value)
		}
		r.logger.Error("Falha ao buscar usuário no DB.", err)
		return domain.User{}, apperror.NewDBError("Falha ao buscar usuário", err)
	}

	return user, nil
}

// SaveAdmin insere um novo administrador.
func (r *UserRepository) SaveAdmin(ctx context.Context, admin domain.Admin) (domain.Admin, error) {
	r.logger.Debug("Iniciando SaveAdmin no repositório.", map[string]interface{}{"username": admin.Username})

	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	admin.ID = uuid.NewString()
	admin.CreatedAt = time.Now().UTC()

	_, err := database.Conn(ctx, r.DB).ExecContext(ctxTimeout,
		`INSERT INTO admins (id, username, password_hash, created_at) VALUES ($1, $2, $3, $4)`,
		admin.ID, admin.Username, admin.PasswordHash, admin.CreatedAt,
	)
	if err != nil {
		r.logger.Error("Falha ao inserir admin no DB.", err)
		return domain.Admin{}, database.MapWriteError("Falha ao criar admin", err)
	}

	r.logger.Info("Admin salvo com sucesso.", map[string]interface{}{"admin_id": admin.ID})
	return admin, nil
}

// FindAdminByUsername busca um administrador pelo username.
func (r *UserRepository) FindAdminByUsername(ctx context.Context, username string) (domain.Admin, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	var admin domain.Admin
	err := database.Conn(ctx, r.DB).QueryRowContext(ctxTimeout,
		`SELECT id, username, password_hash, created_at FROM admins WHERE username = $1`, username,
	).Scan(&admin.ID, &admin.Username, &admin.PasswordHash, &admin.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Admin{}, apperror.NewNotFoundError(fmt.Sprintf("Admin with username %s was not found", username))
		}
		r.logger.Error("Falha ao buscar admin no DB.", err)
		return domain.Admin{}, apperror.NewDBError("Falha ao buscar admin", err)
	}

	return admin, nil
}

func userNotFound(column, value string) error {
	return apperror.NewNotFoundError(fmt.Sprintf("User with %s %s was not found", column, value))
}
