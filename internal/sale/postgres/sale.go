package postgres

import (
	"context"
	"errors"

	"github.com/frahmantamala/tenant-ledger/internal"
	accountDatamodel "github.com/frahmantamala/tenant-ledger/internal/core/datamodel/account"
	companyDatamodel "github.com/frahmantamala/tenant-ledger/internal/core/datamodel/company"
	saleDatamodel "github.com/frahmantamala/tenant-ledger/internal/core/datamodel/sale"
	"github.com/frahmantamala/tenant-ledger/internal/sale"
	"github.com/frahmantamala/tenant-ledger/internal/transport"
	"gorm.io/gorm"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) sale.RepositoryAPI {
	return &Repository{db: db}
}

func (r *Repository) CreateNumbered(ctx context.Context, inv *saleDatamodel.SaleInvoice) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		err := tx.Model(&accountDatamodel.Account{}).
			Where("id = ? AND company_id = ?", inv.IssuedToID, inv.CompanyID).
			Count(&n).Error
		if err != nil {
			return err
		}
		if n == 0 {
			return internal.NewValidationFieldError("issued_to_id", "issued_to_id is not an account of this company", internal.ErrCodeAccountNotFound)
		}

		// The update takes the company row lock, so concurrent invoices serialize here.
		res := tx.Model(&companyDatamodel.Company{}).
			Where("id = ?", inv.CompanyID).
			Update("invoice_count", gorm.Expr("invoice_count + ?", 1))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return internal.ErrCompanyNotFound
		}

		var numbers []int64
		if err := tx.Model(&companyDatamodel.Company{}).Where("id = ?", inv.CompanyID).Pluck("invoice_count", &numbers).Error; err != nil {
			return err
		}
		inv.InvoiceNumber = numbers[0]

		return tx.Create(inv).Error
	})
}

func (r *Repository) GetByID(ctx context.Context, companyID, invoiceID string) (*saleDatamodel.SaleInvoice, error) {
	var inv saleDatamodel.SaleInvoice
	err := r.db.WithContext(ctx).
		Where("company_id = ? AND id = ?", companyID, invoiceID).
		First(&inv).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrSaleInvoiceNotFound
		}
		return nil, err
	}
	return &inv, nil
}

func (r *Repository) List(ctx context.Context, companyID string, page transport.Pagination) ([]saleDatamodel.SaleInvoice, int64, error) {
	var (
		rows  []saleDatamodel.SaleInvoice
		total int64
	)
	db := r.db.WithContext(ctx)
	if err := db.Model(&saleDatamodel.SaleInvoice{}).Where("company_id = ?", companyID).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := db.Where("company_id = ?", companyID).
		Order("invoice_number DESC").
		Offset(page.Skip).
		Limit(page.Top).
		Find(&rows).Error
	return rows, total, err
}
