package companyrepo

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

// CompanyRepository faz o CRUD de empresas e das suas filiais.
type CompanyRepository struct {
	DB        *sql.DB
	DBTimeout time.Duration
	logger    logger.Logger
}

// NewCompanyRepository cria e retorna uma nova instância do Repositório de Empresas.
func NewCompanyRepository(db *sql.DB, dbTimeout time.Duration, logger logger.Logger) *CompanyRepository {
	return &CompanyRepository{
		DB:        db,
		DBTimeout: dbTimeout,
		logger:    logger,
	}
}

// --- Empresas ---

// CreateCompany insere uma nova empresa no banco de dados.
func (r *CompanyRepository) CreateCompany(ctx context.Context, company domain.Company) (domain.Company, error) {
	r.logger.Debug("Iniciando CreateCompany no repositório.", map[string]interface{}{"name": company.Name})

	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	if company.ID == "" {
		company.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	company.CreatedAt = now
	company.UpdatedAt = now

	query := `
        INSERT INTO companies (id, name, created_at, updated_at)
        VALUES ($1, $2, $3, $4)
        RETURNING id, name, created_at, updated_at`

	err := database.Conn(ctx, r.DB).QueryRowContext(ctxTimeout, query,
		company.ID, company.Name, company.CreatedAt, company.UpdatedAt,
	).Scan(&company.ID, &company.Name, &company.CreatedAt, &company.UpdatedAt)
	if err != nil {
		r.logger.Error("Falha ao inserir empresa no DB.", err)
		return domain.Company{}, database.MapWriteError("Falha ao criar empresa", err)
	}

	r.logger.Info("Empresa criada com sucesso.", map[string]interface{}{"id": company.ID, "name": company.Name})
	return company, nil
}

// GetCompanyByID busca uma empresa pelo ID.
func (r *CompanyRepository) GetCompanyByID(ctx context.Context, id string) (domain.Company, error) {
	r.logger.Debug("Iniciando GetCompanyByID no repositório.", map[string]interface{}{"id": id})

	if !isUUID(id) {
		return domain.Company{}, companyNotFound(id)
	}

	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := `
        SELECT id, name, created_at, updated_at
        FROM companies
        WHERE id = $1`

	var company domain.Company
	err := database.Conn(ctx, r.DB).QueryRowContext(ctxTimeout, query, id).Scan(
		&company.ID, &company.Name, &company.CreatedAt, &company.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return domain.Company{}, companyNotFound(id)
	}
	if err != nil {
		r.logger.Error("Falha ao buscar empresa no DB.", err)
		return domain.Company{}, errors.NewDBError("Falha ao buscar empresa", err)
	}

	return company, nil
}

// GetAllCompanies busca todas as empresas.
func (r *CompanyRepository) GetAllCompanies(ctx context.Context) ([]domain.Company, error) {
	r.logger.Debug("Iniciando GetAllCompanies no repositório.", nil)

	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := `
        SELECT id, name, created_at, updated_at
        FROM companies
        ORDER BY name`

	rows, err := database.Conn(ctx, r.DB).QueryContext(ctxTimeout, query)
	if err != nil {
		r.logger.Error("Falha ao executar GetAllCompanies query.", err)
		return nil, errors.NewDBError("Falha ao buscar todas as empresas", err)
	}
	defer rows.Close()

	companies := make([]domain.Company, 0)
	for rows.Next() {
		var company domain.Company
		if err := rows.Scan(&company.ID, &company.Name, &company.CreatedAt, &company.UpdatedAt); err != nil {
			r.logger.Error("Falha ao mapear empresa na iteração de GetAllCompanies.", err)
			return nil, errors.NewDBError("Falha ao mapear empresas do DB", err)
		}
		companies = append(companies, company)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewDBError("Erro após iteração de empresas", err)
	}

	r.logger.Info("GetAllCompanies concluído com sucesso.", map[string]interface{}{"total_companies": len(companies)})
	return companies, nil
}

// UpdateCompany renomeia uma empresa existente.
func (r *CompanyRepository) UpdateCompany(ctx context.Context, company domain.Company) (domain.Company, error) {
	r.logger.Debug("Iniciando UpdateCompany no repositório.", map[string]interface{}{"id": company.ID, "name": company.Name})

	if !isUUID(company.ID) {
		return domain.Company{}, companyNotFound(company.ID)
	}

	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := `
        UPDATE companies
        SET name = $1, updated_at = $2
        WHERE id = $3
        RETURNING id, name, created_at, updated_at`

	err := database.Conn(ctx, r.DB).QueryRowContext(ctxTimeout, query,
		company.Name, time.Now().UTC(), company.ID,
	).Scan(&company.ID, &company.Name, &company.CreatedAt, &company.UpdatedAt)
	if err == sql.ErrNoRows {
		return domain.Company{}, companyNotFound(company.ID)
	}
	if err != nil {
		r.logger.Error("Falha ao atualizar empresa no DB.", err)
		return domain.Company{}, database.MapWriteError("Falha ao atualizar empresa", err)
	}

	r.logger.Info("Empresa atualizada com sucesso.", map[string]interface{}{"id": company.ID})
	return company, nil
}

// DeleteCompany remove uma empresa. Empresas com filiais geram ConflictError.
func (r *CompanyRepository) DeleteCompany(ctx context.Context, id string) error {
	return r.deleteByID(ctx, "companies", id, companyNotFound)
}

// --- Filiais ---

// CreateBranch insere uma nova filial vinculada a uma empresa.
func (r *CompanyRepository) CreateBranch(ctx context.Context, branch domain.Branch) (domain.Branch, error) {
	r.logger.Debug("Iniciando CreateBranch no repositório.", map[string]interface{}{"name": branch.Name, "company_id": branch.CompanyID})

	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	if branch.ID == "" {
		branch.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	branch.CreatedAt = now
	branch.UpdatedAt = now

	query := `
        INSERT INTO branches (id, name, company_id, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, name, company_id, created_at, updated_at`

	err := database.Conn(ctx, r.DB).QueryRowContext(ctxTimeout, query,
		branch.ID, branch.Name, branch.CompanyID, branch.CreatedAt, branch.UpdatedAt,
	).Scan(&branch.ID, &branch.Name, &branch.CompanyID, &branch.CreatedAt, &branch.UpdatedAt)
	if err != nil {
		r.logger.Error("Falha ao inserir filial no DB.", err)
		return domain.Branch{}, database.MapWriteError("Falha ao criar filial", err)
	}

	r.logger.Info("Filial criada com sucesso.", map[string]interface{}{"id": branch.ID, "company_id": branch.CompanyID})
	return branch, nil
}

// GetBranchByID busca uma filial pelo ID.
func (r *CompanyRepository) GetBranchByID(ctx context.Context, id string) (domain.Branch, error) {
	r.logger.Debug("Iniciando GetBranchByID no repositório.", map[string]interface{}{"id": id})

	if !isUUID(id) {
		return domain.Branch{}, branchNotFound(id)
	}

	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := `
        SELECT id, name, company_id, created_at, updated_at
        FROM branches
        WHERE id = $1`

	var branch domain.Branch
	err := database.Conn(ctx, r.DB).QueryRowContext(ctxTimeout, query, id).Scan(
		&branch.ID, &branch.Name, &branch.CompanyID, &branch.CreatedAt, &branch.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return domain.Branch{}, branchNotFound(id)
	}
	if err != nil {
		r.logger.Error("Falha ao buscar filial no DB.", err)
		return domain.Branch{}, errors.NewDBError("Falha ao buscar filial", err)
	}

	return branch, nil
}

// GetAllBranches lista as filiais, opcionalmente só as de uma empresa.
func (r *CompanyRepository) GetAllBranches(ctx context.Context, companyID string) ([]domain.Branch, error) {
	r.logger.Debug("Iniciando GetAllBranches no repositório.", map[string]interface{}{"company_id": companyID})

	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := `
        SELECT id, name, company_id, created_at, updated_at
        FROM branches
        WHERE ($1 = '' OR company_id::text = $1)
        ORDER BY name`

	rows, err := database.Conn(ctx, r.DB).QueryContext(ctxTimeout, query, companyID)
	if err != nil {
		r.logger.Error("Falha ao executar GetAllBranches query.", err)
		return nil, errors.NewDBError("Falha ao buscar filiais", err)
	}
	defer rows.Close()

	branches := make([]domain.Branch, 0)
	for rows.Next() {
		var branch domain.Branch
		if err := rows.Scan(&branch.ID, &branch.Name, &branch.CompanyID, &branch.CreatedAt, &branch.UpdatedAt); err != nil {
			r.logger.Error("Falha ao mapear filial na iteração de GetAllBranches.", err)
			return nil, errors.NewDBError("Falha ao mapear filiais do DB", err)
		}
		branches = append(branches, branch)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewDBError("Erro após iteração de filiais", err)
	}

	return branches, nil
}

// UpdateBranch altera nome e empresa de uma filial.
func (r *CompanyRepository) UpdateBranch(ctx context.Context, branch domain.Branch) (domain.Branch, error) {
	r.logger.Debug("Iniciando UpdateBranch no repositório.", map[string]interface{}{"id": branch.ID})

	if !isUUID(branch.ID) {
		return domain.Branch{}, branchNotFound(branch.ID)
	}

	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := `
        UPDATE branches
        SET name = $1, company_id = $2, updated_at = $3
        WHERE id = $4
        RETURNING id, name, company_id, created_at, updated_at`

	err := database.Conn(ctx, r.DB).QueryRowContext(ctxTimeout, query,
		branch.Name, branch.CompanyID, time.Now().UTC(), branch.ID,
	).Scan(&branch.ID, &branch.Name, &branch.CompanyID, &branch.CreatedAt, &branch.UpdatedAt)
	if err == sql.ErrNoRows {
		return domain.Branch{}, branchNotFound(branch.ID)
	}
	if err != nil {
		r.logger.Error("Falha ao atualizar filial no DB.", err)
		return domain.Branch{}, database.MapWriteError("Falha ao atualizar filial", err)
	}

	r.logger.Info("Filial atualizada com sucesso.", map[string]interface{}{"id": branch.ID})
	return branch, nil
}

// DeleteBranch remove uma filial. Filiais com produtos geram ConflictError.
func (r *CompanyRepository) DeleteBranch(ctx context.Context, id string) error {
	return r.deleteByID(ctx, "branches", id, branchNotFound)
}

// deleteByID remove a linha de table com o id informado; table nunca vem do cliente.
func (r *CompanyRepository) deleteByID(ctx context.Context, table, id string, notFound func(string) error) error {
	r.logger.Debug("Iniciando delete no repositório.", map[string]interface{}{"table": table, "id": id})

	if !isUUID(id) {
		return notFound(id)
	}

	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	result, err := database.Conn(ctx, r.DB).ExecContext(ctxTimeout, `DELETE FROM `+table+` WHERE id = $1`, id)
	if err != nil {
		r.logger.Error("Falha ao deletar registro do DB.", err)
		return database.MapWriteError("Falha ao deletar "+table, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return errors.NewDBError("Falha ao verificar linhas afetadas", err)
	}
	if rowsAffected == 0 {
		return notFound(id)
	}

	r.logger.Info("Registro deletado com sucesso.", map[string]interface{}{"table": table, "id": id})
	return nil
}

func companyNotFound(id string) error {
	return errors.NewNotFoundError(fmt.Sprintf("Company with id %s was not found", id))
}

func branchNotFound(id string) error {
	return errors.NewNotFoundError(fmt.Sprintf("Branch with id %s was not found", id))
}

func isUUID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
