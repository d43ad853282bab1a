package postgres

import (
	"context"

	"github.com/frahmantamala/tenant-ledger/internal/permission"
	"github.com/frahmantamala/tenant-ledger/internal/rbac"
	"gorm.io/gorm"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) rbac.RepositoryAPI {
	return &Repository{db: db}
}

type membershipRow struct {
	ID                string
	UserID            string
	CompanyID         string
	IsOwner           bool
	PlatformStatusKey string
}

func (r *Repository) FindMembership(ctx context.Context, userID, companyID string) (*rbac.Membership, error) {
	var rows []membershipRow
	err := r.db.WithContext(ctx).
		Table("user_companies AS uc").
		Select("uc.id, uc.user_id, uc.company_id, uc.is_owner, c.platform_status_key").
		Joins("JOIN companies c ON c.id = uc.company_id").
		Where("uc.user_id = ? AND uc.company_id = ?", userID, companyID).
		Limit(1).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}

	row := rows[0]
	return &rbac.Membership{
		ID:            row.ID,
		UserID:        row.UserID,
		CompanyID:     row.CompanyID,
		IsOwner:       row.IsOwner,
		CompanyStatus: row.PlatformStatusKey,
	}, nil
}

func (r *Repository) ListMembershipGrants(ctx context.Context, membershipID string) ([]permission.Grant, error) {
	var grants []permission.Grant
	err := r.db.WithContext(ctx).
		Table("permissions AS p").
		Distinct("p.action", "p.entity", "p.access").
		Joins("JOIN role_permissions rp ON rp.permission_id = p.id").
		Joins("JOIN user_company_roles ucr ON ucr.role_id = rp.role_id").
		Where("ucr.user_company_id = ?", membershipID).
		Scan(&grants).Error
	return grants, err
}

func (r *Repository) ListUserGrants(ctx context.Context, userID string) ([]permission.Grant, error) {
	var grants []permission.Grant
	err := r.db.WithContext(ctx).
		Table("permissions AS p").
		Distinct("p.action", "p.entity", "p.access").
		Joins("JOIN role_permissions rp ON rp.permission_id = p.id").
		Joins("JOIN user_roles ur ON ur.role_id = rp.role_id").
		Where("ur.user_id = ?", userID).
		Scan(&grants).Error
	return grants, err
}

func (r *Repository) HasRole(ctx context.Context, userID, role string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("user_roles AS ur").
		Joins("JOIN roles ro ON ro.id = ur.role_id").
		Where("ur.user_id = ? AND ro.name = ?", userID, role).
		Count(&count).Error
	return count > 0, err
}

func (r *Repository) GetUser(ctx context.Context, userID string, sel rbac.Select) (*rbac.UserProjection, error) {
	columns := []string{"id"}
	if sel.Email {
		columns = append(columns, "email")
	}
	if sel.Name {
		columns = append(columns, "name")
	}

	var rows []rbac.UserProjection
	err := r.db.WithContext(ctx).
		Table("users").
		Select(columns).
		Where("id = ?", userID).
		Limit(1).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}
