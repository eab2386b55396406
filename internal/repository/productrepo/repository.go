package productrepo

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"storefront/internal/domain"
	"storefront/internal/errors"
	"storefront/internal/pkg/cache"
	"storefront/internal/pkg/database"
	"storefront/internal/pkg/logger"
)

const productColumns = `id, name, stock, category_id, branch_id, created_at, updated_at`

const productViewSelect = `
        SELECT p.id, p.name, p.stock, c.id, c.name, c.description, b.id, b.name, co.id, co.name
        FROM products p
        JOIN categories c ON c.id = p.category_id
        JOIN branches b ON b.id = p.branch_id
        JOIN companies co ON co.id = b.company_id`

// ProductRepository é o Catalog Store em PostgreSQL, com cache-aside das visões no Redis.
// Todas as chamadas participam da transação presente no contexto, se houver.
type ProductRepository struct {
	DB        *sql.DB
	Cache     cache.Client // opcional
	DBTimeout time.Duration
	CacheTTL  time.Duration
	logger    logger.Logger
}

// NewProductRepository cria e retorna uma nova instância do Repositório.
func NewProductRepository(db *sql.DB, cacheClient cache.Client, dbTimeout, cacheTTL time.Duration, log logger.Logger) *ProductRepository {
	return &ProductRepository{
		DB:        db,
		Cache:     cacheClient,
		DBTimeout: dbTimeout,
		CacheTTL:  cacheTTL,
		logger:    log,
	}
}

// Save insere um novo produto.
func (r *ProductRepository) Save(ctx context.Context, product domain.Product) (domain.Product, error) {
	r.logger.Debug("Iniciando Save de produto no repositório.", map[string]interface{}{"name": product.Name, "branch_id": product.BranchID})

	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	product.CreatedAt = now
	product.UpdatedAt = now

	query := `
        INSERT INTO products (id, name, stock, category_id, branch_id, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING ` + productColumns

	err := database.Conn(ctx, r.DB).QueryRowContext(ctxTimeout, query,
		product.ID, product.Name, product.Stock, product.CategoryID, product.BranchID, product.CreatedAt, product.UpdatedAt,
	).Scan(scanProduct(&product)...)
	if err != nil {
		r.logger.Error("Falha ao inserir produto no DB.", err)
		return domain.Product{}, database.MapWriteError("Falha ao criar produto", err)
	}

	r.logger.Info("Produto criado com sucesso.", map[string]interface{}{"id": product.ID})
	return product, nil
}

// FindByID busca o registro cru do produto, sempre no banco.
func (r *ProductRepository) FindByID(ctx context.Context, id string) (domain.Product, error) {
	r.logger.Debug("Iniciando FindByID de produto no repositório.", map[string]interface{}{"id": id})

	if !isUUID(id) {
		return domain.Product{}, errors.NewProductNotFoundError(id)
	}

	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`

	var product domain.Product
	err := database.Conn(ctx, r.DB).QueryRowContext(ctxTimeout, query, id).Scan(scanProduct(&product)...)
	if err == sql.ErrNoRows {
		return domain.Product{}, errors.NewProductNotFoundError(id)
	}
	if err != nil {
		r.logger.Error("Falha ao buscar produto no DB.", err)
		return domain.Product{}, errors.NewDBError("Falha ao buscar produto", err)
	}

	return product, nil
}

// FindViewByID busca a visão do produto usando a estratégia Cache-Aside.
func (r *ProductRepository) FindViewByID(ctx context.Context, id string) (domain.ProductView, error) {
	r.logger.Debug("Iniciando FindViewByID no repositório.", map[string]interface{}{"id": id})

	if !isUUID(id) {
		return domain.ProductView{}, errors.NewProductNotFoundError(id)
	}

	key := cache.ProductViewKey(id)
	if view, ok := r.readCache(ctx, key); ok {
		return view, nil
	}

	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	var view domain.ProductView
	err := database.Conn(ctx, r.DB).QueryRowContext(ctxTimeout, productViewSelect+` WHERE p.id = $1`, id).Scan(scanView(&view)...)
	if err == sql.ErrNoRows {
		return domain.ProductView{}, errors.NewProductNotFoundError(id)
	}
	if err != nil {
		r.logger.Error("Falha ao buscar visão de produto no DB.", err)
		return domain.ProductView{}, errors.NewDBError("Falha ao buscar produto", err)
	}

	// Dentro de uma transação a visão ainda pode ser revertida; não vai para o cache.
	if !database.InTx(ctx) {
		r.writeCache(ctx, key, view)
	}
	return view, nil
}

// FindAll lista as visões de produto que satisfazem o filtro.
func (r *ProductRepository) FindAll(ctx context.Context, filter domain.ProductFilter) ([]domain.ProductView, error) {
	r.logger.Debug("Iniciando FindAll de produtos no repositório.", map[string]interface{}{"filter": filter})

	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query, args := buildFilterQuery(filter)
	rows, err := database.Conn(ctx, r.DB).QueryContext(ctxTimeout, query, args...)
	if err != nil {
		r.logger.Error("Falha ao executar FindAll de produtos.", err)
		return nil, errors.NewDBError("Falha ao listar produtos", err)
	}
	defer rows.Close()

	views := make([]domain.ProductView, 0)
	for rows.Next() {
		var view domain.ProductView
		if err := rows.Scan(scanView(&view)...); err != nil {
			r.logger.Error("Falha ao mapear produto na iteração de FindAll.", err)
			return nil, errors.NewDBError("Falha ao mapear produtos do DB", err)
		}
		views = append(views, view)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewDBError("Erro após iteração de produtos", err)
	}

	r.logger.Info("FindAll de produtos concluído.", map[string]interface{}{"total_products": len(views)})
	return views, nil
}

// Update grava nome, categoria e filial. O estoque só muda pelo stockrepo.
func (r *ProductRepository) Update(ctx context.Context, product domain.Product) (domain.Product, error) {
	r.logger.Debug("Iniciando Update de produto no repositório.", map[string]interface{}{"id": product.ID})

	if !isUUID(product.ID) {
		return domain.Product{}, errors.NewProductNotFoundError(product.ID)
	}

	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := `
        UPDATE products
        SET name = $2, category_id = $3, branch_id = $4, updated_at = $5
        WHERE id = $1
        RETURNING ` + productColumns

	var updated domain.Product
	err := database.Conn(ctx, r.DB).QueryRowContext(ctxTimeout, query,
		product.ID, product.Name, product.CategoryID, product.BranchID, time.Now().UTC(),
	).Scan(scanProduct(&updated)...)
	if err == sql.ErrNoRows {
		return domain.Product{}, errors.NewProductNotFoundError(product.ID)
	}
	if err != nil {
		r.logger.Error("Falha ao atualizar produto no DB.", err)
		return domain.Product{}, database.MapWriteError("Falha ao atualizar produto", err)
	}

	r.invalidate(ctx, updated.ID)
	r.logger.Info("Produto atualizado com sucesso.", map[string]interface{}{"id": updated.ID})
	return updated, nil
}

// Delete remove o produto. Produtos referenciados por pedidos geram ConflictError.
func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	r.logger.Debug("Iniciando Delete de produto no repositório.", map[string]interface{}{"id": id})

	if !isUUID(id) {
		return errors.NewProductNotFoundError(id)
	}

	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	result, err := database.Conn(ctx, r.DB).ExecContext(ctxTimeout, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		r.logger.Error("Falha ao deletar produto no DB.", err)
		return database.MapWriteError("Falha ao deletar produto", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return errors.NewDBError("Falha ao verificar linhas afetadas", err)
	}
	if rowsAffected == 0 {
		return errors.NewProductNotFoundError(id)
	}

	r.invalidate(ctx, id)
	r.logger.Info("Produto deletado com sucesso.", map[string]interface{}{"id": id})
	return nil
}

func (r *ProductRepository) readCache(ctx context.Context, key string) (domain.ProductView, bool) {
	if r.Cache == nil {
		return domain.ProductView{}, false
	}

	data, err := r.Cache.Get(ctx, key)
	if err != nil {
		if err != cache.ErrCacheMiss {
			r.logger.Warn("Falha ao ler do cache, seguindo para o DB.", map[string]interface{}{"key": key, "error": err.Error()})
		}
		return domain.ProductView{}, false
	}

	var view domain.ProductView
	if err := json.Unmarshal([]byte(data), &view); err != nil {
		r.logger.Warn("Entrada de cache corrompida, ignorando.", map[string]interface{}{"key": key})
		return domain.ProductView{}, false
	}
	return view, true
}

func (r *ProductRepository) writeCache(ctx context.Context, key string, view domain.ProductView) {
	if r.Cache == nil {
		return
	}

	data, err := json.Marshal(view)
	if err != nil {
		return
	}
	if err := r.Cache.Set(ctx, key, data, r.CacheTTL); err != nil {
		r.logger.Warn("Falha ao gravar no cache.", map[string]interface{}{"key": key, "error": err.Error()})
	}
}

func (r *ProductRepository) invalidate(ctx context.Context, id string) {
	if r.Cache == nil {
		return
	}
	database.AfterCommit(ctx, func() {
		if err := r.Cache.Delete(context.WithoutCancel(ctx), cache.ProductViewKey(id)); err != nil {
			r.logger.Warn("Falha ao invalidar cache de produto.", map[string]interface{}{"id": id, "error": err.Error()})
		}
	})
}

// buildFilterQuery monta a listagem com placeholders posicionais; nenhum valor do
// filtro é concatenado no SQL.
func buildFilterQuery(filter domain.ProductFilter) (string, []interface{}) {
	var conditions []string
	var args []interface{}
	add := func(condition string, value interface{}) {
		args = append(args, value)
		conditions = append(conditions, fmt.Sprintf(condition, len(args)))
	}

	if filter.BranchID != "" {
		add("b.id = $%d", filter.BranchID)
	}
	if filter.CompanyID != "" {
		add("co.id = $%d", filter.CompanyID)
	}
	if filter.CategoryID != "" {
		add("c.id = $%d", filter.CategoryID)
	}
	if filter.MinStock != nil {
		add("p.stock >= $%d", *filter.MinStock)
	}
	if filter.MaxStock != nil {
		add("p.stock <= $%d", *filter.MaxStock)
	}

	query := productViewSelect
	if len(conditions) > 0 {
		query += "\n        WHERE " + strings.Join(conditions, " AND ")
	}
	query += "\n        ORDER BY p.name, p.id"
	return query, args
}

func scanProduct(p *domain.Product) []interface{} {
	return []interface{}{&p.ID, &p.Name, &p.Stock, &p.CategoryID, &p.BranchID, &p.CreatedAt, &p.UpdatedAt}
}

func scanView(v *domain.ProductView) []interface{} {
	return []interface{}{
		&v.ID, &v.Name, &v.Stock,
		&v.CategoryID, &v.Category, &v.CategoryDescription,
		&v.BranchID, &v.Branch, &v.CompanyID, &v.Company,
	}
}

func isUUID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
