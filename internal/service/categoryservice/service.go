package categoryservice

import (
	"context"
	"strings"

	"storefront/internal/domain"
	apperror "storefront/internal/errors"
	"storefront/internal/pkg/logger"
)

// CategoryRepository define o contrato que o Serviço de Categorias espera da camada de Persistência.
type CategoryRepository interface {
	Create(ctx context.Context, category domain.Category) (domain.Category, error)
	GetByID(ctx context.Context, id string) (domain.Category, error)
	GetAll(ctx context.Context) ([]domain.Category, error)
	Update(ctx context.Context, category domain.Category) (domain.Category, error)
	Delete(ctx context.Context, id string) error
}

type Service struct {
	repo   CategoryRepository
	logger logger.Logger
}

func NewService(repo CategoryRepository, logger logger.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// CreateCategory cria a categoria; nomes repetidos viram ConflictError no repositório.
func (s *Service) CreateCategory(ctx context.Context, category domain.Category) (domain.Category, error) {
	s.logger.Debug("Iniciando criação de categoria no serviço.", map[string]interface{}{"name": category.Name})

	category.ID = ""
	category.Name = strings.TrimSpace(category.Name)
	if category.Name == "" {
		return domain.Category{}, apperror.NewValidationError("The category name must not be empty")
	}

	created, err := s.repo.Create(ctx, category)
	if err != nil {
		return domain.Category{}, apperror.Translate(err, "Falha interna ao criar categoria.")
	}

	s.logger.Info("Categoria criada com sucesso.", map[string]interface{}{"id": created.ID})
	return created, nil
}

func (s *Service) GetCategory(ctx context.Context, id string) (domain.Category, error) {
	category, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Category{}, apperror.Translate(err, "Falha interna ao buscar categoria.")
	}
	return category, nil
}

func (s *Service) ListCategories(ctx context.Context) ([]domain.Category, error) {
	categories, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, apperror.Translate(err, "Falha interna ao buscar categorias.")
	}
	return categories, nil
}

func (s *Service) UpdateCategory(ctx context.Context, category domain.Category) (domain.Category, error) {
	category.Name = strings.TrimSpace(category.Name)
	if category.Name == "" {
		return domain.Category{}, apperror.NewValidationError("The category name must not be empty")
	}

	updated, err := s.repo.Update(ctx, category)
	if err != nil {
		return domain.Category{}, apperror.Translate(err, "Falha interna ao atualizar categoria.")
	}

	s.logger.Info("Categoria atualizada com sucesso.", map[string]interface{}{"id": updated.ID})
	return updated, nil
}

// DeleteCategory devolve a categoria removida.
func (s *Service) DeleteCategory(ctx context.Context, id string) (domain.Category, error) {
	category, err := s.GetCategory(ctx, id)
	if err != nil {
		return domain.Category{}, err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return domain.Category{}, apperror.Translate(err, "Falha interna ao deletar categoria.")
	}

	s.logger.Info("Categoria deletada com sucesso.", map[string]interface{}{"id": id})
	return category, nil
}
