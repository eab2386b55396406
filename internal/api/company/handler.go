package company

import (
	"context"
	"net/http"

	"storefront/internal/api/response"
	"storefront/internal/domain"
	"storefront/internal/pkg/logger"
)

// CompanyService define o contrato que o Handler espera da camada de Serviço.
type CompanyService interface {
	CreateCompany(ctx context.Context, company domain.Company) (domain.Company, error)
	GetCompany(ctx context.Context, id string) (domain.Company, error)
	ListCompanies(ctx context.Context) ([]domain.Company, error)
	UpdateCompany(ctx context.Context, company domain.Company) (domain.Company, error)
	DeleteCompany(ctx context.Context, id string) (domain.Company, error)

	CreateBranch(ctx context.Context, branch domain.Branch) (domain.Branch, error)
	GetBranch(ctx context.Context, id string) (domain.Branch, error)
	ListBranches(ctx context.Context, companyID string) ([]domain.Branch, error)
	UpdateBranch(ctx context.Context, branch domain.Branch) (domain.Branch, error)
	DeleteBranch(ctx context.Context, id string) (domain.Branch, error)
}

// Handler agrupa os Handlers de empresas e filiais.
type Handler struct {
	Service CompanyService
	Logger  logger.Logger
}

// NewHandler cria uma nova instância do Handler, injetando o Service e o Logger.
func NewHandler(svc CompanyService, log logger.Logger) *Handler {
	return &Handler{Service: svc, Logger: log}
}

// companyPayload é o corpo aceito na criação e atualização de empresas.
type companyPayload struct {
	Name string `json:"name" validate:"required,max=100"`
}

type branchPayload struct {
	Name      string `json:"name" validate:"required,max=100"`
	CompanyID string `json:"company_id" validate:"omitempty,uuid"`
}

// --- Empresas ---

// CreateCompanyHandler lida com a requisição POST /v1/companies.
// @Summary Cria uma empresa
// @Tags companies
// @Accept json
// @Produce json
// @Param company body companyPayload true "Nome da empresa"
// @Success 201 {object} domain.Company
// @Failure 400 {object} domain.ErrorResponse "Payload inválido"
// @Failure 409 {object} domain.ErrorResponse "Nome repetido"
// @Security ApiKeyAuth
// @Router /companies [post]
func (h *Handler) CreateCompanyHandler(w http.ResponseWriter, r *http.Request) {
	var payload companyPayload
	if err := response.Decode(r, &payload); err != nil {
		response.Error(w, r, h.Logger, err)
		return
	}

	created, err := h.Service.CreateCompany(r.Context(), domain.Company{Name: payload.Name})
	response.Write(w, r, h.Logger, created, err, http.StatusCreated)
}

// GetCompanyHandler lida com a requisição GET /v1/companies/{id}.
// @Summary Obtém uma empresa
// @Tags companies
// @Produce json
// @Param id path string true "ID da Empresa"
// @Success 200 {object} domain.Company
// @Failure 404 {object} domain.ErrorResponse "Empresa não encontrada"
// @Security ApiKeyAuth
// @Router /companies/{id} [get]
func (h *Handler) GetCompanyHandler(w http.ResponseWriter, r *http.Request) {
	company, err := h.Service.GetCompany(r.Context(), r.PathValue("id"))
	response.Write(w, r, h.Logger, company, err, http.StatusOK)
}

// ListCompaniesHandler lida com a requisição GET /v1/companies.
// @Summary Lista empresas
// @Tags companies
// @Produce json
// @Success 200 {array} domain.Company
// @Security ApiKeyAuth
// @Router /companies [get]
func (h *Handler) ListCompaniesHandler(w http.ResponseWriter, r *http.Request) {
	companies, err := h.Service.ListCompanies(r.Context())
	response.Write(w, r, h.Logger, companies, err, http.StatusOK)
}

// UpdateCompanyHandler lida com a requisição PUT /v1/companies/{id}.
// @Summary Renomeia uma empresa
// @Tags companies
// @Accept json
// @Produce json
// @Param id path string true "ID da Empresa"
// @Param company body companyPayload true "Novo nome"
// @Success 200 {object} domain.Company
// @Failure 404 {object} domain.ErrorResponse "Empresa não encontrada"
// @Security ApiKeyAuth
// @Router /companies/{id} [put]
func (h *Handler) UpdateCompanyHandler(w http.ResponseWriter, r *http.Request) {
	var payload companyPayload
	if err := response.Decode(r, &payload); err != nil {
		response.Error(w, r, h.Logger, err)
		return
	}

	updated, err := h.Service.UpdateCompany(r.Context(), domain.Company{ID: r.PathValue("id"), Name: payload.Name})
	response.Write(w, r, h.Logger, updated, err, http.StatusOK)
}

// DeleteCompanyHandler lida com a requisição DELETE /v1/companies/{id}.
// @Summary Remove uma empresa
// @Tags companies
// @Produce json
// @Param id path string true "ID da Empresa"
// @Success 200 {object} domain.Company "Empresa removida"
// @Failure 404 {object} domain.ErrorResponse "Empresa não encontrada"
// @Failure 409 {object} domain.ErrorResponse "Empresa ainda possui filiais"
// @Security ApiKeyAuth
// @Router /companies/{id} [delete]
func (h *Handler) DeleteCompanyHandler(w http.ResponseWriter, r *http.Request) {
	deleted, err := h.Service.DeleteCompany(r.Context(), r.PathValue("id"))
	response.Write(w, r, h.Logger, deleted, err, http.StatusOK)
}

// --- Filiais ---

// CreateBranchHandler lida com a requisição POST /v1/branches.
// @Summary Cria uma filial
// @Tags branches
// @Accept json
// @Produce json
// @Param branch body branchPayload true "Dados da filial"
// @Success 201 {object} domain.Branch
// @Failure 404 {object} domain.ErrorResponse "Empresa não encontrada"
// @Security ApiKeyAuth
// @Router /branches [post]
func (h *Handler) CreateBranchHandler(w http.ResponseWriter, r *http.Request) {
	var payload branchPayload
	if err := response.Decode(r, &payload); err != nil {
		response.Error(w, r, h.Logger, err)
		return
	}

	created, err := h.Service.CreateBranch(r.Context(), domain.Branch{Name: payload.Name, CompanyID: payload.CompanyID})
	response.Write(w, r, h.Logger, created, err, http.StatusCreated)
}

// GetBranchHandler lida com a requisição GET /v1/branches/{id}.
// @Summary Obtém uma filial
// @Tags branches
// @Produce json
// @Param id path string true "ID da Filial"
// @Success 200 {object} domain.Branch
// @Failure 404 {object} domain.ErrorResponse "Filial não encontrada"
// @Security ApiKeyAuth
// @Router /branches/{id} [get]
func (h *Handler) GetBranchHandler(w http.ResponseWriter, r *http.Request) {
	branch, err := h.Service.GetBranch(r.Context(), r.PathValue("id"))
	response.Write(w, r, h.Logger, branch, err, http.StatusOK)
}

// ListBranchesHandler lida com a requisição GET /v1/branches?company_id=.
// @Summary Lista filiais
// @Tags branches
// @Produce json
// @Param company_id query string false "Empresa"
// @Success 200 {array} domain.Branch
// @Security ApiKeyAuth
// @Router /branches [get]
func (h *Handler) ListBranchesHandler(w http.ResponseWriter, r *http.Request) {
	branches, err := h.Service.ListBranches(r.Context(), r.URL.Query().Get("company_id"))
	response.Write(w, r, h.Logger, branches, err, http.StatusOK)
}

// UpdateBranchHandler lida com a requisição PUT /v1/branches/{id}.
// @Summary Atualiza uma filial
// @Tags branches
// @Accept json
// @Produce json
// @Param id path string true "ID da Filial"
// @Param branch body branchPayload true "Dados da filial"
// @Success 200 {object} domain.Branch
// @Failure 404 {object} domain.ErrorResponse "Filial ou empresa não encontrada"
// @Security ApiKeyAuth
// @Router /branches/{id} [put]
func (h *Handler) UpdateBranchHandler(w http.ResponseWriter, r *http.Request) {
	var payload branchPayload
	if err := response.Decode(r, &payload); err != nil {
		response.Error(w, r, h.Logger, err)
		return
	}

	updated, err := h.Service.UpdateBranch(r.Context(), domain.Branch{ID: r.PathValue("id"), Name: payload.Name, CompanyID: payload.CompanyID})
	response.Write(w, r, h.Logger, updated, err, http.StatusOK)
}

// DeleteBranchHandler lida com a requisição DELETE /v1/branches/{id}.
// @Summary Remove uma filial
// @Tags branches
// @Produce json
// @Param id path string true "ID da Filial"
// @Success 200 {object} domain.Branch "Filial removida"
// @Failure 409 {object} domain.ErrorResponse "Filial ainda possui produtos"
// @Security ApiKeyAuth
// @Router /branches/{id} [delete]
func (h *Handler) DeleteBranchHandler(w http.ResponseWriter, r *http.Request) {
	deleted, err := h.Service.DeleteBranch(r.Context(), r.PathValue("id"))
	response.Write(w, r, h.Logger, deleted, err, http.StatusOK)
}
