package categoryrepo

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"storefront/internal/domain"
	"storefront/internal/errors"
	"storefront/internal/pkg/database"
	"storefront/internal/pkg/logger"
)

const categoryColumns = `id, name, description, created_at, updated_at`

// CategoryRepository faz o CRUD de categorias.
type CategoryRepository struct {
	DB        *sql.DB
	DBTimeout time.Duration
	logger    logger.Logger
}

func NewCategoryRepository(db *sql.DB, dbTimeout time.Duration, logger logger.Logger) *CategoryRepository {
	return &CategoryRepository{DB: db, DBTimeout: dbTimeout, logger: logger}
}

// Create insere uma nova categoria. Nomes repetidos geram ConflictError.
func (r *CategoryRepository) Create(ctx context.Context, category domain.Category) (domain.Category, error) {
	r.logger.Debug("Iniciando Create de categoria no repositório.", map[string]interface{}{"name": category.Name})

	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	if category.ID == "" {
		category.ID = uuid.New().String()
	}
	now := time.Now().UTC()

	query := `
        INSERT INTO categories (id, name, description, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $4)
        RETURNING ` + categoryColumns

	err := database.Conn(ctx, r.DB).QueryRowContext(ctxTimeout, query,
		category.ID, category.Name, category.Description, now,
	).Scan(scanCategory(&category)...)
	if err != nil {
		r.logger.Error("Falha ao inserir categoria no DB.", err)
		return domain.Category{}, database.MapWriteError("Falha ao criar categoria", err)
	}

	r.logger.Info("Categoria criada com sucesso.", map[string]interface{}{"id": category.ID})
	return category, nil
}

func (r *CategoryRepository) GetByID(ctx context.Context, id string) (domain.Category, error) {
	r.logger.Debug("Iniciando GetByID de categoria no repositório.", map[string]interface{}{"id": id})

	if _, err := uuid.Parse(id); err != nil {
		return domain.Category{}, notFound(id)
	}

	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	var category domain.Category
	err := database.Conn(ctx, r.DB).QueryRowContext(ctxTimeout,
		`SELECT `+categoryColumns+` FROM categories WHERE id = $1`, id,
	).Scan(scanCategory(&category)...)
	if err == sql.ErrNoRows {
		return domain.Category{}, notFound(id)
	}
	if err != nil {
		r.logger.Error("Falha ao buscar categoria no DB.", err)
		return domain.Category{}, errors.NewDBError("Falha ao buscar categoria", err)
	}
	return category, nil
}

func (r *CategoryRepository) GetAll(ctx context.Context) ([]domain.Category, error) {
	r.logger.Debug("Iniciando GetAll de categorias no repositório.", nil)

	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	rows, err := database.Conn(ctx, r.DB).QueryContext(ctxTimeout,
		`SELECT `+categoryColumns+` FROM categories ORDER BY name`)
	if err != nil {
		r.logger.Error("Falha ao executar GetAll de categorias.", err)
		return nil, errors.NewDBError("Falha ao buscar categorias", err)
	}
	defer rows.Close()

	categories := make([]domain.Category, 0)
	for rows.Next() {
		var category domain.Category
		if err := rows.Scan(scanCategory(&category)...); err != nil {
			return nil, errors.NewDBError("Falha ao mapear categorias do DB", err)
		}
		categories = append(categories, category)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewDBError("Erro após iteração de categorias", err)
	}

	return categories, nil
}

func (r *CategoryRepository) Update(ctx context.Context, category domain.Category) (domain.Category, error) {
	r.logger.Debug("Iniciando Update de categoria no repositório.", map[string]interface{}{"id": category.ID})

	if _, err := uuid.Parse(category.ID); err != nil {
		return domain.Category{}, notFound(category.ID)
	}

	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := `
        UPDATE categories
        SET name = $2, description = $3, updated_at = $4
        WHERE id = $1
        RETURNING ` + categoryColumns

	err := database.Conn(ctx, r.DB).QueryRowContext(ctxTimeout, query,
		category.ID, category.Name, category.Description, time.Now().UTC(),
	).Scan(scanCategory(&category)...)
	if err == sql.ErrNoRows {
		return domain.Category{}, notFound(category.ID)
	}
	if err != nil {
		r.logger.Error("Falha ao atualizar categoria no DB.", err)
		return domain.Category{}, database.MapWriteError("Falha ao atualizar categoria", err)
	}

	r.logger.Info("Categoria atualizada com sucesso.", map[string]interface{}{"id": category.ID})
	return category, nil
}

// Delete remove a categoria. Categorias em uso por produtos geram ConflictError.
func (r *CategoryRepository) Delete(ctx context.Context, id string) error {
	r.logger.Debug("Iniciando Delete de categoria no repositório.", map[string]interface{}{"id": id})

	if _, err := uuid.Parse(id); err != nil {
		return notFound(id)
	}

	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	result, err := database.Conn(ctx, r.DB).ExecContext(ctxTimeout, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		r.logger.Error("Falha ao deletar categoria do DB.", err)
		return database.MapWriteError("Falha ao deletar categoria", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return errors.NewDBError("Falha ao verificar linhas afetadas", err)
	}
	if rowsAffected == 0 {
		return notFound(id)
	}

	r.logger.Info("Categoria deletada com sucesso.", map[string]interface{}{"id": id})
	return nil
}

func scanCategory(c *domain.Category) []interface{} {
	return []interface{}{&c.ID, &c.Name, &c.Description, &c.CreatedAt, &c.UpdatedAt}
}

func notFound(id string) error {
	return errors.NewNotFoundError(fmt.Sprintf("Category with id %s was not found", id))
}
