package postgres

import (
	"context"
	"errors"

	"github.com/frahmantamala/tenant-ledger/internal"
	userDatamodel "github.com/frahmantamala/tenant-ledger/internal/core/datamodel/user"
	"github.com/frahmantamala/tenant-ledger/internal/user"
	"gorm.io/gorm"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) user.RepositoryAPI {
	return &Repository{db: db}
}

func (r *Repository) GetByID(ctx context.Context, userID string) (*userDatamodel.User, error) {
	var u userDatamodel.User
	if err := r.db.WithContext(ctx).Where("id = ?", userID).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *Repository) ListRoleNames(ctx context.Context, userID string) ([]string, error) {
	var names []string
	err := r.db.WithContext(ctx).
		Table("roles AS ro").
		Joins("JOIN user_roles ur ON ur.role_id = ro.id").
		Where("ur.user_id = ?", userID).
		Order("ro.name").
		Pluck("ro.name", &names).Error
	return names, err
}
