package search

import (
	"context"
	"net/http"
	"strings"

	"github.com/frahmantamala/tenant-ledger/internal/rbac"
	"github.com/frahmantamala/tenant-ledger/internal/transport"
	"github.com/go-chi/chi"
)

type ResolverAPI interface {
	Resolve(ctx context.Context, companyID, rawQuery string) *Result
}

type Response struct {
	Query   string `json:"query"`
	Matched bool   `json:"matched"`
	*Result
}

type Handler struct {
	*transport.BaseHandler
	Resolver ResolverAPI
}

func NewHandler(baseHandler *transport.BaseHandler, resolver ResolverAPI) *Handler {
	return &Handler{
		BaseHandler: baseHandler,
		Resolver:    resolver,
	}
}

// Search serves GET /c/{companyId}/search?q=. It must sit behind the company guard.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	companyID := chi.URLParam(r, rbac.CompanyURLParam)
	if cu, ok := rbac.CompanyUserFromContext(r.Context()); ok {
		companyID = cu.CompanyID
	}

	query := r.URL.Query().Get("q")
	if query == "" {
		query = r.URL.Query().Get("search")
	}
	query = strings.TrimSpace(query)

	result := h.Resolver.Resolve(r.Context(), companyID, query)
	if result == nil {
		h.WriteJSON(w, http.StatusOK, Response{
			Query:  query,
			Result: &Result{},
		})
		return
	}

	h.WriteJSON(w, http.StatusOK, Response{
		Query:   query,
		Matched: true,
		Result:  result,
	})
}
