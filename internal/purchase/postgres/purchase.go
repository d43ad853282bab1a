package postgres

import (
	"context"
	"errors"

	"github.com/frahmantamala/tenant-ledger/internal"
	accountDatamodel "github.com/frahmantamala/tenant-ledger/internal/core/datamodel/account"
	purchaseDatamodel "github.com/frahmantamala/tenant-ledger/internal/core/datamodel/purchase"
	"github.com/frahmantamala/tenant-ledger/internal/purchase"
	"github.com/frahmantamala/tenant-ledger/internal/transport"
	"gorm.io/gorm"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) purchase.RepositoryAPI {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, bill *purchaseDatamodel.PurchaseBill) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		err := tx.Model(&accountDatamodel.Account{}).
			Where("id = ? AND company_id = ?", bill.PaidToAccountID, bill.CompanyID).
			Count(&n).Error
		if err != nil {
			return err
		}
		if n == 0 {
			return internal.NewValidationFieldError("paid_to_account_id", "paid_to_account_id is not an account of this company", internal.ErrCodeAccountNotFound)
		}

		err = tx.Model(&purchaseDatamodel.PurchaseBill{}).
			Where("company_id = ? AND bill_number = ?", bill.CompanyID, bill.BillNumber).
			Count(&n).Error
		if err != nil {
			return err
		}
		if n > 0 {
			return internal.ErrBillNumberTaken
		}

		return tx.Create(bill).Error
	})
}

func (r *Repository) GetByID(ctx context.Context, companyID, billID string) (*purchaseDatamodel.PurchaseBill, error) {
	var bill purchaseDatamodel.PurchaseBill
	err := r.db.WithContext(ctx).
		Where("company_id = ? AND id = ?", companyID, billID).
		First(&bill).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrPurchaseBillNotFound
		}
		return nil, err
	}
	return &bill, nil
}

func (r *Repository) List(ctx context.Context, companyID string, page transport.Pagination) ([]purchaseDatamodel.PurchaseBill, int64, error) {
	var (
		rows  []purchaseDatamodel.PurchaseBill
		total int64
	)
	db := r.db.WithContext(ctx)
	if err := db.Model(&purchaseDatamodel.PurchaseBill{}).Where("company_id = ?", companyID).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := db.Where("company_id = ?", companyID).
		Order("date_received DESC, created_at DESC").
		Offset(page.Skip).
		Limit(page.Top).
		Find(&rows).Error
	return rows, total, err
}
