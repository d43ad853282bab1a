package company

import (
	"net/http"

	"github.com/frahmantamala/tenant-ledger/internal"
	"github.com/frahmantamala/tenant-ledger/internal/rbac"
	"github.com/frahmantamala/tenant-ledger/internal/transport"
	"github.com/go-chi/chi"
)

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(baseHandler *transport.BaseHandler, service ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: baseHandler,
		Service:     service,
	}
}

// CreateCompany handles POST /studio/companies
func (h *Handler) CreateCompany(w http.ResponseWriter, r *http.Request) {
	var dto CreateCompanyDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.WriteAppError(w, err)
		return
	}

	c, err := h.Service.Create(r.Context(), internal.UserIDFromContext(r.Context()), dto)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, c)
}

// ListMyCompanies handles GET /studio/companies
func (h *Handler) ListMyCompanies(w http.ResponseWriter, r *http.Request) {
	memberships, err := h.Service.ListForUser(r.Context(), internal.UserIDFromContext(r.Context()))
	if err != nil {
		h.WriteAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, MembershipsResponse{Memberships: memberships})
}

// GetOverview handles GET /c/{companyId}
func (h *Handler) GetOverview(w http.ResponseWriter, r *http.Request) {
	overview, err := h.Service.GetOverview(r.Context(), internal.UserIDFromContext(r.Context()), chi.URLParam(r, rbac.CompanyURLParam))
	if err != nil {
		h.WriteAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, overview)
}

// ListCompanies handles GET /admin/companies
func (h *Handler) ListCompanies(w http.ResponseWriter, r *http.Request) {
	page := transport.ParsePagination(r)

	companies, total, err := h.Service.List(r.Context(), page)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, CompaniesResponse{Companies: companies, Total: total, Page: page})
}

// UpdateStatus handles PATCH /admin/companies/{companyId}/status
func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var dto UpdateStatusDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.WriteAppError(w, err)
		return
	}

	c, err := h.Service.ChangeStatus(r.Context(), internal.UserIDFromContext(r.Context()), chi.URLParam(r, rbac.CompanyURLParam), dto)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, c)
}
