package postgres

import (
	"context"
	"errors"

	"github.com/frahmantamala/tenant-ledger/internal"
	"github.com/frahmantamala/tenant-ledger/internal/auth"
	userDatamodel "github.com/frahmantamala/tenant-ledger/internal/core/datamodel/user"
	"gorm.io/gorm"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) auth.RepositoryAPI {
	return &Repository{db: db}
}

func (r *Repository) GetCredentials(ctx context.Context, email string) (*auth.Credentials, error) {
	return r.find(ctx, "email = ?", email)
}

func (r *Repository) GetCredentialsByID(ctx context.Context, userID string) (*auth.Credentials, error) {
	return r.find(ctx, "id = ?", userID)
}

func (r *Repository) find(ctx context.Context, query string, arg interface{}) (*auth.Credentials, error) {
	var u userDatamodel.User
	err := r.db.WithContext(ctx).
		Select("id", "email", "password_hash").
		Where(query, arg).
		First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrUserNotFound
		}
		return nil, err
	}

	return &auth.Credentials{
		UserID:       u.ID,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
	}, nil
}
