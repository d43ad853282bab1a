package purchase

import (
	"net/http"

	"github.com/frahmantamala/tenant-ledger/internal/rbac"
	"github.com/frahmantamala/tenant-ledger/internal/transport"
	"github.com/go-chi/chi"
)

const BillURLParam = "billId"

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

// CreateBill handles POST /c/{companyId}/purchases/bills
func (h *Handler) CreateBill(w http.ResponseWriter, r *http.Request) {
	var dto CreateBillDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.WriteAppError(w, err)
		return
	}

	companyID, membershipID := tenant(r)
	bill, err := h.Service.Create(r.Context(), companyID, membershipID, dto)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, bill)
}

// GetBill handles GET /c/{companyId}/purchases/bills/{billId}
func (h *Handler) GetBill(w http.ResponseWriter, r *http.Request) {
	companyID, _ := tenant(r)
	bill, err := h.Service.Get(r.Context(), companyID, chi.URLParam(r, BillURLParam))
	if err != nil {
		h.WriteAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, bill)
}

// ListBills handles GET /c/{companyId}/purchases/bills
func (h *Handler) ListBills(w http.ResponseWriter, r *http.Request) {
	companyID, _ := tenant(r)
	page := transport.ParsePagination(r)

	bills, total, err := h.Service.List(r.Context(), companyID, page)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, BillsResponse{Bills: bills, Total: total, Page: page})
}
