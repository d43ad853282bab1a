package postgres

import (
	"context"
	"errors"

	"github.com/frahmantamala/tenant-ledger/internal"
	"github.com/frahmantamala/tenant-ledger/internal/account"
	accountDatamodel "github.com/frahmantamala/tenant-ledger/internal/core/datamodel/account"
	"github.com/frahmantamala/tenant-ledger/internal/transport"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// upsertColumns are overwritten when the id already exists. company_id, created_by_id,
// balance and created_at keep their original values.
var upsertColumns = []string{
	"name", "unique_id", "email", "phone", "address", "city", "state", "country", "zip", "updated_at",
}

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) account.RepositoryAPI {
	return &Repository{db: db}
}

func (r *Repository) Upsert(ctx context.Context, a *accountDatamodel.Account) (bool, error) {
	created := true
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if a.ID != "" {
			var owners []string
			err := tx.Model(&accountDatamodel.Account{}).Where("id = ?", a.ID).Pluck("company_id", &owners).Error
			if err != nil {
				return err
			}
			if len(owners) > 0 {
				if owners[0] != a.CompanyID {
					return internal.ErrAccountNotFound
				}
				created = false
			}
		}

		taken := tx.Model(&accountDatamodel.Account{}).
			Where("company_id = ? AND LOWER(name) = LOWER(?)", a.CompanyID, a.Name)
		if a.ID != "" {
			taken = taken.Where("id <> ?", a.ID)
		}
		var n int64
		if err := taken.Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return internal.ErrAccountNameTaken
		}

		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns(upsertColumns),
		}).Create(a).Error
	})
	return created, err
}

func (r *Repository) GetByID(ctx context.Context, companyID, accountID string) (*accountDatamodel.Account, error) {
	var a accountDatamodel.Account
	err := r.db.WithContext(ctx).
		Where("company_id = ? AND id = ?", companyID, accountID).
		First(&a).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrAccountNotFound
		}
		return nil, err
	}
	return &a, nil
}

func (r *Repository) List(ctx context.Context, companyID string, page transport.Pagination) ([]accountDatamodel.Account, int64, error) {
	var (
		rows  []accountDatamodel.Account
		total int64
	)
	db := r.db.WithContext(ctx)
	if err := db.Model(&accountDatamodel.Account{}).Where("company_id = ?", companyID).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := db.Where("company_id = ?", companyID).
		Order("name ASC").
		Offset(page.Skip).
		Limit(page.Top).
		Find(&rows).Error
	return rows, total, err
}
