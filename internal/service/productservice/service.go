package productservice

import (
	"context"
	"fmt"
	"strconv"

	"github.com/google/uuid"

	"storefront/internal/domain"
	apperror "storefront/internal/errors"
	"storefront/internal/pkg/logger"
)

// ProductRepository define o contrato que este Serviço espera da camada de Persistência (DB, Cache).
type ProductRepository interface {
	Save(ctx context.Context, product domain.Product) (domain.Product, error)
	FindByID(ctx context.Context, id string) (domain.Product, error)
	FindViewByID(ctx context.Context, id string) (domain.ProductView, error)
	FindAll(ctx context.Context, filter domain.ProductFilter) ([]domain.ProductView, error)
	Update(ctx context.Context, product domain.Product) (domain.Product, error)
	Delete(ctx context.Context, id string) error
}

// BranchLookup confirma que a filial de um produto existe.
type BranchLookup interface {
	GetBranchByID(ctx context.Context, id string) (domain.Branch, error)
}

type CategoryLookup interface {
	GetByID(ctx context.Context, id string) (domain.Category, error)
}

// Service é a estrutura que implementa as regras de catálogo de produtos.
type Service struct {
	repo       ProductRepository
	branches   BranchLookup
	categories CategoryLookup
	logger     logger.Logger
}

// NewService cria e retorna uma nova instância do Serviço de Produto.
func NewService(repo ProductRepository, branches BranchLookup, categories CategoryLookup, logger logger.Logger) *Service {
	return &Service{repo: repo, branches: branches, categories: categories, logger: logger}
}

// CreateProduct cria o produto depois de confirmar filial e categoria, e devolve a visão completa.
func (s *Service) CreateProduct(ctx context.Context, req domain.CreateProductRequest) (domain.ProductView, error) {
	s.logger.Debug("Iniciando criação de produto no serviço.", map[string]interface{}{"name": req.Name, "branch_id": req.BranchID})

	if req.Stock < 0 {
		return domain.ProductView{}, apperror.NewValidationError("stock must be a non negative integer")
	}
	if err := s.checkReferences(ctx, req.BranchID, req.CategoryID); err != nil {
		return domain.ProductView{}, err
	}

	product := domain.Product{
		ID:         uuid.New().String(),
		Name:       req.Name,
		Stock:      req.Stock,
		CategoryID: req.CategoryID,
		BranchID:   req.BranchID,
	}

	created, err := s.repo.Save(ctx, product)
	if err != nil {
		return domain.ProductView{}, apperror.Translate(err, "Falha interna ao criar produto.")
	}

	s.logger.Info("Produto criado com sucesso.", map[string]interface{}{"id": created.ID})
	return s.GetProduct(ctx, created.ID)
}

func (s *Service) GetProduct(ctx context.Context, id string) (domain.ProductView, error) {
	view, err := s.repo.FindViewByID(ctx, id)
	if err != nil {
		return domain.ProductView{}, apperror.Translate(err, "Falha interna ao buscar produto.")
	}
	return view, nil
}

// ListProducts converte os parâmetros de consulta num filtro e lista as visões.
func (s *Service) ListProducts(ctx context.Context, params map[string]string) ([]domain.ProductView, error) {
	filter, err := BuildFilter(params)
	if err != nil {
		s.logger.Debug("Filtro de produtos inválido.", map[string]interface{}{"error": err.Error()})
		return nil, err
	}

	views, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		return nil, apperror.Translate(err, "Falha interna ao listar produtos.")
	}
	return views, nil
}

// UpdateProduct aplica apenas os campos informados. Trocar de filial ou categoria exige que a nova exista.
func (s *Service) UpdateProduct(ctx context.Context, id string, req domain.UpdateProductRequest) (domain.ProductView, error) {
	s.logger.Debug("Iniciando atualização de produto no serviço.", map[string]interface{}{"id": id})

	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.ProductView{}, apperror.Translate(err, "Falha interna ao buscar produto.")
	}

	branchID, categoryID := "", ""
	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.BranchID != nil && *req.BranchID != product.BranchID {
		product.BranchID = *req.BranchID
		branchID = product.BranchID
	}
	if req.CategoryID != nil && *req.CategoryID != product.CategoryID {
		product.CategoryID = *req.CategoryID
		categoryID = product.CategoryID
	}
	if err := s.checkReferences(ctx, branchID, categoryID); err != nil {
		return domain.ProductView{}, err
	}

	if _, err := s.repo.Update(ctx, product); err != nil {
		return domain.ProductView{}, apperror.Translate(err, "Falha interna ao atualizar produto.")
	}

	s.logger.Info("Produto atualizado com sucesso.", map[string]interface{}{"id": id})
	return s.GetProduct(ctx, id)
}

// DeleteProduct remove o produto e devolve a visão que ele tinha.
func (s *Service) DeleteProduct(ctx context.Context, id string) (domain.ProductView, error) {
	view, err := s.GetProduct(ctx, id)
	if err != nil {
		return domain.ProductView{}, err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return domain.ProductView{}, apperror.Translate(err, "Falha interna ao deletar produto.")
	}

	s.logger.Info("Produto deletado com sucesso.", map[string]interface{}{"id": id})
	return view, nil
}

// checkReferences ignora ids vazios.
func (s *Service) checkReferences(ctx context.Context, branchID, categoryID string) error {
	if branchID != "" {
		if _, err := s.branches.GetBranchByID(ctx, branchID); err != nil {
			return apperror.Translate(err, "Falha interna ao buscar filial.")
		}
	}
	if categoryID != "" {
		if _, err := s.categories.GetByID(ctx, categoryID); err != nil {
			return apperror.Translate(err, "Falha interna ao buscar categoria.")
		}
	}
	return nil
}

// BuildFilter lê branch_id, company_id, category_id, min_stock e max_stock.
// Chaves desconhecidas são ignoradas.
func BuildFilter(params map[string]string) (domain.ProductFilter, error) {
	filter := domain.ProductFilter{
		BranchID:   params["branch_id"],
		CompanyID:  params["company_id"],
		CategoryID: params["category_id"],
	}

	for key, id := range map[string]string{"branch_id": filter.BranchID, "company_id": filter.CompanyID, "category_id": filter.CategoryID} {
		if id == "" {
			continue
		}
		if _, err := uuid.Parse(id); err != nil {
			return domain.ProductFilter{}, apperror.NewValidationError(fmt.Sprintf("%s must be a valid uuid", key))
		}
	}

	var err error
	if filter.MinStock, err = stockBound(params, "min_stock"); err != nil {
		return domain.ProductFilter{}, err
	}
	if filter.MaxStock, err = stockBound(params, "max_stock"); err != nil {
		return domain.ProductFilter{}, err
	}
	return filter, nil
}

func stockBound(params map[string]string, key string) (*int, error) {
	raw, ok := params[key]
	if !ok || raw == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return nil, apperror.NewValidationError(fmt.Sprintf("%s must be a non negative numeric string", key))
	}
	return &n, nil
}
