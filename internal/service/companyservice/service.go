package companyservice

import (
	"context"
	"strings"
	"unicode/utf8"

	"storefront/internal/domain"
	apperror "storefront/internal/errors"
	"storefront/internal/pkg/logger"
)

// CompanyRepository define o contrato que o Serviço de Empresas espera da camada de Persistência.
type CompanyRepository interface {
	CreateCompany(ctx context.Context, company domain.Company) (domain.Company, error)
	GetCompanyByID(ctx context.Context, id string) (domain.Company, error)
	GetAllCompanies(ctx context.Context) ([]domain.Company, error)
	UpdateCompany(ctx context.Context, company domain.Company) (domain.Company, error)
	DeleteCompany(ctx context.Context, id string) error

	CreateBranch(ctx context.Context, branch domain.Branch) (domain.Branch, error)
	GetBranchByID(ctx context.Context, id string) (domain.Branch, error)
	GetAllBranches(ctx context.Context, companyID string) ([]domain.Branch, error)
	UpdateBranch(ctx context.Context, branch domain.Branch) (domain.Branch, error)
	DeleteBranch(ctx context.Context, id string) error
}

// Service gerencia empresas (tenants) e suas filiais.
type Service struct {
	repo   CompanyRepository
	logger logger.Logger
}

// NewService cria e retorna uma nova instância do Serviço de Empresas.
func NewService(repo CompanyRepository, logger logger.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// --- Empresas ---

func (s *Service) CreateCompany(ctx context.Context, company domain.Company) (domain.Company, error) {
	s.logger.Debug("Iniciando criação de empresa no serviço.", map[string]interface{}{"name": company.Name})

	if err := validateName("company", company.Name); err != nil {
		return domain.Company{}, err
	}
	company.ID = ""
	company.Name = strings.TrimSpace(company.Name)

	created, err := s.repo.CreateCompany(ctx, company)
	if err != nil {
		return domain.Company{}, apperror.Translate(err, "Falha interna ao criar empresa.")
	}

	s.logger.Info("Empresa criada com sucesso.", map[string]interface{}{"id": created.ID, "name": created.Name})
	return created, nil
}

func (s *Service) GetCompany(ctx context.Context, id string) (domain.Company, error) {
	company, err := s.repo.GetCompanyByID(ctx, id)
	if err != nil {
		return domain.Company{}, apperror.Translate(err, "Falha interna ao buscar empresa.")
	}
	return company, nil
}

func (s *Service) ListCompanies(ctx context.Context) ([]domain.Company, error) {
	companies, err := s.repo.GetAllCompanies(ctx)
	if err != nil {
		return nil, apperror.Translate(err, "Falha interna ao buscar empresas.")
	}
	return companies, nil
}

func (s *Service) UpdateCompany(ctx context.Context, company domain.Company) (domain.Company, error) {
	s.logger.Debug("Iniciando atualização de empresa no serviço.", map[string]interface{}{"id": company.ID})

	if err := validateName("company", company.Name); err != nil {
		return domain.Company{}, err
	}
	company.Name = strings.TrimSpace(company.Name)

	updated, err := s.repo.UpdateCompany(ctx, company)
	if err != nil {
		return domain.Company{}, apperror.Translate(err, "Falha interna ao atualizar empresa.")
	}

	s.logger.Info("Empresa atualizada com sucesso.", map[string]interface{}{"id": updated.ID})
	return updated, nil
}

// DeleteCompany devolve a empresa removida. Empresas com filiais geram ConflictError.
func (s *Service) DeleteCompany(ctx context.Context, id string) (domain.Company, error) {
	company, err := s.GetCompany(ctx, id)
	if err != nil {
		return domain.Company{}, err
	}
	if err := s.repo.DeleteCompany(ctx, id); err != nil {
		return domain.Company{}, apperror.Translate(err, "Falha interna ao deletar empresa.")
	}

	s.logger.Info("Empresa deletada com sucesso.", map[string]interface{}{"id": id})
	return company, nil
}

// --- Filiais ---

// CreateBranch exige que a empresa dona exista.
func (s *Service) CreateBranch(ctx context.Context, branch domain.Branch) (domain.Branch, error) {
	s.logger.Debug("Iniciando criação de filial no serviço.", map[string]interface{}{"name": branch.Name, "company_id": branch.CompanyID})

	if err := validateName("branch", branch.Name); err != nil {
		return domain.Branch{}, err
	}
	if _, err := s.GetCompany(ctx, branch.CompanyID); err != nil {
		return domain.Branch{}, err
	}
	branch.ID = ""
	branch.Name = strings.TrimSpace(branch.Name)

	created, err := s.repo.CreateBranch(ctx, branch)
	if err != nil {
		return domain.Branch{}, apperror.Translate(err, "Falha interna ao criar filial.")
	}

	s.logger.Info("Filial criada com sucesso.", map[string]interface{}{"id": created.ID, "company_id": created.CompanyID})
	return created, nil
}

func (s *Service) GetBranch(ctx context.Context, id string) (domain.Branch, error) {
	branch, err := s.repo.GetBranchByID(ctx, id)
	if err != nil {
		return domain.Branch{}, apperror.Translate(err, "Falha interna ao buscar filial.")
	}
	return branch, nil
}

// ListBranches lista todas as filiais, ou só as da empresa informada.
func (s *Service) ListBranches(ctx context.Context, companyID string) ([]domain.Branch, error) {
	branches, err := s.repo.GetAllBranches(ctx, companyID)
	if err != nil {
		return nil, apperror.Translate(err, "Falha interna ao buscar filiais.")
	}
	return branches, nil
}

func (s *Service) UpdateBranch(ctx context.Context, branch domain.Branch) (domain.Branch, error) {
	s.logger.Debug("Iniciando atualização de filial no serviço.", map[string]interface{}{"id": branch.ID})

	if err := validateName("branch", branch.Name); err != nil {
		return domain.Branch{}, err
	}
	current, err := s.GetBranch(ctx, branch.ID)
	if err != nil {
		return domain.Branch{}, err
	}
	if branch.CompanyID == "" {
		branch.CompanyID = current.CompanyID
	}
	if branch.CompanyID != current.CompanyID {
		if _, err := s.GetCompany(ctx, branch.CompanyID); err != nil {
			return domain.Branch{}, err
		}
	}
	branch.Name = strings.TrimSpace(branch.Name)

	updated, err := s.repo.UpdateBranch(ctx, branch)
	if err != nil {
		return domain.Branch{}, apperror.Translate(err, "Falha interna ao atualizar filial.")
	}

	s.logger.Info("Filial atualizada com sucesso.", map[string]interface{}{"id": updated.ID})
	return updated, nil
}

// DeleteBranch devolve a filial removida. Filiais com produtos geram ConflictError.
func (s *Service) DeleteBranch(ctx context.Context, id string) (domain.Branch, error) {
	branch, err := s.GetBranch(ctx, id)
	if err != nil {
		return domain.Branch{}, err
	}
	if err := s.repo.DeleteBranch(ctx, id); err != nil {
		return domain.Branch{}, apperror.Translate(err, "Falha interna ao deletar filial.")
	}

	s.logger.Info("Filial deletada com sucesso.", map[string]interface{}{"id": id})
	return branch, nil
}

// validateName é uma função auxiliar para validar nomes de empresa e filial.
func validateName(kind, name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return apperror.NewValidationError("The " + kind + " name must not be empty")
	}
	if utf8.RuneCountInString(trimmed) > 100 {
		return apperror.NewValidationError("The " + kind + " name must have at most 100 characters")
	}
	return nil
}
