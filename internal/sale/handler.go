package sale

import (
	"net/http"

	"github.com/frahmantamala/tenant-ledger/internal/rbac"
	"github.com/frahmantamala/tenant-ledger/internal/transport"
	"github.com/go-chi/chi"
)

const InvoiceURLParam = "invoiceId"

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

func tenant(r *http.Request) (companyID, membershipID string) {
	if cu, ok := rbac.CompanyUserFromContext(r.Context()); ok {
		return cu.CompanyID, cu.User.MembershipID
	}
	return chi.URLParam(r, rbac.CompanyURLParam), ""
}

// CreateInvoice handles POST /c/{companyId}/sales/invoices
func (h *Handler) CreateInvoice(w http.ResponseWriter, r *http.Request) {
	var dto CreateInvoiceDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.WriteAppError(w, err)
		return
	}

	companyID, membershipID := tenant(r)
	inv, err := h.Service.Create(r.Context(), companyID, membershipID, dto)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, inv)
}

// GetInvoice handles GET /c/{companyId}/sales/invoices/{invoiceId}
func (h *Handler) GetInvoice(w http.ResponseWriter, r *http.Request) {
	companyID, _ := tenant(r)
	inv, err := h.Service.Get(r.Context(), companyID, chi.URLParam(r, InvoiceURLParam))
	if err != nil {
		h.WriteAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, inv)
}

// ListInvoices handles GET /c/{companyId}/sales/invoices
func (h *Handler) ListInvoices(w http.ResponseWriter, r *http.Request) {
	companyID, _ := tenant(r)
	page := transport.ParsePagination(r)

	invoices, total, err := h.Service.List(r.Context(), companyID, page)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, InvoicesResponse{Invoices: invoices, Total: total, Page: page})
}
