package account

import (
	"net/http"

	"github.com/frahmantamala/tenant-ledger/internal"
	"github.com/frahmantamala/tenant-ledger/internal/rbac"
	"github.com/frahmantamala/tenant-ledger/internal/transport"
	"github.com/go-chi/chi"
)

const AccountURLParam = "accountId"

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

// actor reads the membership left by the company guard. Routes writing accounts must
// request rbac.Select{Membership: true}.
func actor(r *http.Request) Actor {
	a := Actor{
		CompanyID: chi.URLParam(r, rbac.CompanyURLParam),
		UserID:    internal.UserIDFromContext(r.Context()),
	}
	if cu, ok := rbac.CompanyUserFromContext(r.Context()); ok {
		a.CompanyID = cu.CompanyID
		a.MembershipID = cu.User.MembershipID
	}
	return a
}

// CreateAccount handles POST /c/{companyId}/accounts
func (h *Handler) CreateAccount(w http.ResponseWriter, r *http.Request) {
	h.save(w, r, "")
}

// SaveAccount handles PUT /c/{companyId}/accounts/{accountId}
func (h *Handler) SaveAccount(w http.ResponseWriter, r *http.Request) {
	h.save(w, r, chi.URLParam(r, AccountURLParam))
}

func (h *Handler) save(w http.ResponseWriter, r *http.Request, accountID string) {
	var dto SaveAccountDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.WriteAppError(w, err)
		return
	}

	a, created, err := h.Service.Save(r.Context(), actor(r), accountID, dto)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}

	code := http.StatusOK
	if created {
		code = http.StatusCreated
	}
	h.WriteJSON(w, code, a)
}

// GetAccount handles GET /c/{companyId}/accounts/{accountId}
func (h *Handler) GetAccount(w http.ResponseWriter, r *http.Request) {
	a, err := h.Service.Get(r.Context(), actor(r).CompanyID, chi.URLParam(r, AccountURLParam))
	if err != nil {
		h.WriteAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, a)
}

// ListAccounts handles GET /c/{companyId}/accounts
func (h *Handler) ListAccounts(w http.ResponseWriter, r *http.Request) {
	page := transport.ParsePagination(r)

	accounts, total, err := h.Service.List(r.Context(), actor(r).CompanyID, page)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, AccountsResponse{Accounts: accounts, Total: total, Page: page})
}
