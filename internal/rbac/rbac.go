package rbac

import (
	"context"

	"github.com/frahmantamala/tenant-ledger/internal/permission"
)

// Membership is a user's row in a company joined with that company's platform status.
type Membership struct {
	ID            string
	UserID        string
	CompanyID     string
	IsOwner       bool
	CompanyStatus string
}

// Select describes which user fields an authorized caller wants back. The zero value
// returns only the user id.
type Select struct {
	Email      bool
	Name       bool
	Membership bool
}

type UserProjection struct {
	ID           string `json:"id"`
	Email        string `json:"email,omitempty"`
	Name         string `json:"name,omitempty"`
	MembershipID string `json:"membership_id,omitempty"`
}

// PermissionRequirement is attached to 403 errors raised by the global permission guard.
type PermissionRequirement struct {
	RequiredPermission permission.Permission `json:"required_permission"`
}

// RoleRequirement is attached to 403 errors raised by the global role guard.
type RoleRequirement struct {
	RequiredRole string `json:"required_role"`
}

type RepositoryAPI interface {
	// FindMembership returns nil without error when the user has no row for the company.
	FindMembership(ctx context.Context, userID, companyID string) (*Membership, error)
	ListMembershipGrants(ctx context.Context, membershipID string) ([]permission.Grant, error)
	ListUserGrants(ctx context.Context, userID string) ([]permission.Grant, error)
	HasRole(ctx context.Context, userID, role string) (bool, error)
	// GetUser returns nil without error when the user does not exist.
	GetUser(ctx context.Context, userID string, sel Select) (*UserProjection, error)
}

// IsOwner is the ownership bypass: owners skip role checks in their company.
func IsOwner(m *Membership) bool {
	return m != nil && m.IsOwner
}

// HasPermission reports whether any of the grants satisfies the requirement.
func HasPermission(grants []permission.Grant, required permission.Permission) bool {
	return required.AllowedByAny(grants)
}
