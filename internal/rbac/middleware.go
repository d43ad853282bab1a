package rbac

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/frahmantamala/tenant-ledger/internal"
	"github.com/frahmantamala/tenant-ledger/internal/permission"
	"github.com/frahmantamala/tenant-ledger/internal/transport"
	"github.com/go-chi/chi"
)

type ctxKey string

const contextCompanyUserKey ctxKey = "companyUser"

// CompanyURLParam is the chi route parameter holding the tenant id.
const CompanyURLParam = "companyId"

// CompanyUser is what the company guard leaves in the request context.
type CompanyUser struct {
	CompanyID string
	User      UserProjection
}

func ContextWithCompanyUser(ctx context.Context, cu *CompanyUser) context.Context {
	return context.WithValue(ctx, contextCompanyUserKey, cu)
}

func CompanyUserFromContext(ctx context.Context) (*CompanyUser, bool) {
	cu, ok := ctx.Value(contextCompanyUserKey).(*CompanyUser)
	return cu, ok && cu != nil
}

// ForbiddenResponse is the diagnostic body of a global permission or role denial.
type ForbiddenResponse struct {
	Error              string                 `json:"error"`
	RequiredPermission *permission.Permission `json:"required_permission,omitempty"`
	RequiredRole       string                 `json:"required_role,omitempty"`
	Message            string                 `json:"message"`
}

type Authorization struct {
	*transport.BaseHandler
	guard      *Guard
	redirectTo string
}

func NewAuthorization(guard *Guard, logger *slog.Logger, redirectTo string) *Authorization {
	if redirectTo == "" {
		redirectTo = "/"
	}
	return &Authorization{
		BaseHandler: transport.NewBaseHandler(logger),
		guard:       guard,
		redirectTo:  redirectTo,
	}
}

// CompanyPermission guards routes carrying {companyId}. Denials redirect to the
// application root and never reach next.
func (a *Authorization) CompanyPermission(perm string, sel ...Select) func(http.Handler) http.Handler {
	required := permission.MustParse(perm)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID := internal.UserIDFromContext(r.Context())
			if userID == "" {
				a.WriteAppError(w, internal.ErrMissingToken)
				return
			}

			companyID := chi.URLParam(r, CompanyURLParam)
			user, err := a.guard.RequireCompanyUser(r.Context(), userID, companyID, required, sel...)
			if err != nil {
				if errors.Is(err, internal.ErrCompanyAccessDenied) {
					http.Redirect(w, r, a.redirectTo, http.StatusSeeOther)
					return
				}
				a.WriteAppError(w, err)
				return
			}

			ctx := ContextWithCompanyUser(r.Context(), &CompanyUser{CompanyID: companyID, User: *user})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Permission guards routes by a permission held through the user's global roles.
func (a *Authorization) Permission(perm string) func(http.Handler) http.Handler {
	required := permission.MustParse(perm)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID := internal.UserIDFromContext(r.Context())
			if userID == "" {
				a.WriteAppError(w, internal.ErrMissingToken)
				return
			}

			if _, err := a.guard.RequireUserWithPermission(r.Context(), userID, required); err != nil {
				a.writeDenial(w, err)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// Role guards routes by membership of a named global role.
func (a *Authorization) Role(name string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID := internal.UserIDFromContext(r.Context())
			if userID == "" {
				a.WriteAppError(w, internal.ErrMissingToken)
				return
			}

			if _, err := a.guard.RequireUserWithRole(r.Context(), userID, name); err != nil {
				a.writeDenial(w, err)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func (a *Authorization) writeDenial(w http.ResponseWriter, err error) {
	appErr, ok := internal.IsAppError(err)
	if !ok || appErr.StatusCode != http.StatusForbidden {
		a.WriteAppError(w, err)
		return
	}

	resp := ForbiddenResponse{Error: "Unauthorized", Message: appErr.Message}
	switch d := appErr.Details.(type) {
	case PermissionRequirement:
		p := d.RequiredPermission
		resp.RequiredPermission = &p
	case RoleRequirement:
		resp.RequiredRole = d.RequiredRole
	}
	a.WriteJSON(w, http.StatusForbidden, resp)
}
