package rbac

import (
	"context"
	"log/slog"

	"github.com/frahmantamala/tenant-ledger/internal"
	"github.com/frahmantamala/tenant-ledger/internal/core/status"
	"github.com/frahmantamala/tenant-ledger/internal/permission"
)

type Guard struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewGuard(repo RepositoryAPI, logger *slog.Logger) *Guard {
	return &Guard{
		repo:   repo,
		logger: logger,
	}
}

// RequireCompanyUser authorizes userID against companyID. The company must be ACTIVE and
// the membership must either be the owner's or carry a role granting required.
// Denials return internal.ErrCompanyAccessDenied; callers must stop on any error.
func (g *Guard) RequireCompanyUser(ctx context.Context, userID, companyID string, required permission.Permission, sel ...Select) (*UserProjection, error) {
	if userID == "" || companyID == "" {
		return nil, internal.ErrCompanyAccessDenied
	}

	m, err := g.repo.FindMembership(ctx, userID, companyID)
	if err != nil {
		return nil, internal.NewInternalError("failed to load company membership", err)
	}

	if m == nil {
		g.deny(ctx, "no membership", userID, companyID, required)
		return nil, internal.ErrCompanyAccessDenied
	}

	if !status.IsActive(m.CompanyStatus) {
		g.deny(ctx, "company not active", userID, companyID, required)
		return nil, internal.ErrCompanyAccessDenied
	}

	if !IsOwner(m) {
		grants, err := g.repo.ListMembershipGrants(ctx, m.ID)
		if err != nil {
			return nil, internal.NewInternalError("failed to load membership permissions", err)
		}
		if !HasPermission(grants, required) {
			g.deny(ctx, "missing permission", userID, companyID, required)
			return nil, internal.ErrCompanyAccessDenied
		}
	}

	var shape Select
	if len(sel) > 0 {
		shape = sel[0]
	}

	projection := &UserProjection{ID: userID}
	if shape.Email || shape.Name {
		projection, err = g.repo.GetUser(ctx, userID, shape)
		if err != nil {
			return nil, internal.NewInternalError("failed to load user", err)
		}
		if projection == nil {
			g.deny(ctx, "user missing", userID, companyID, required)
			return nil, internal.ErrCompanyAccessDenied
		}
	}
	if shape.Membership {
		projection.MembershipID = m.ID
	}

	return projection, nil
}

// RequireUserWithPermission matches required against the user's global roles.
func (g *Guard) RequireUserWithPermission(ctx context.Context, userID string, required permission.Permission) (string, error) {
	grants, err := g.repo.ListUserGrants(ctx, userID)
	if err != nil {
		return "", internal.NewInternalError("failed to load user permissions", err)
	}

	if userID == "" || !HasPermission(grants, required) {
		g.logger.WarnContext(ctx, "access denied: missing global permission",
			"user_id", userID,
			"required_permission", required.String())
		return "", PermissionDenied(required)
	}

	return userID, nil
}

// RequireUserWithRole checks membership of a named global role.
func (g *Guard) RequireUserWithRole(ctx context.Context, userID, role string) (string, error) {
	ok, err := g.repo.HasRole(ctx, userID, role)
	if err != nil {
		return "", internal.NewInternalError("failed to load user roles", err)
	}

	if userID == "" || !ok {
		g.logger.WarnContext(ctx, "access denied: missing global role", "user_id", userID, "required_role", role)
		return "", RoleDenied(role)
	}

	return userID, nil
}

func PermissionDenied(required permission.Permission) *internal.AppError {
	return internal.NewForbiddenError("Unauthorized: required permissions: "+required.String(), internal.ErrCodePermissionRequired).
		WithDetails(PermissionRequirement{RequiredPermission: required})
}

func RoleDenied(role string) *internal.AppError {
	return internal.NewForbiddenError("Unauthorized: required role: "+role, internal.ErrCodeRoleRequired).
		WithDetails(RoleRequirement{RequiredRole: role})
}

func (g *Guard) deny(ctx context.Context, reason, userID, companyID string, required permission.Permission) {
	g.logger.WarnContext(ctx, "access denied: company guard",
		"reason", reason,
		"user_id", userID,
		"company_id", companyID,
		"required_permission", required.String())
}
