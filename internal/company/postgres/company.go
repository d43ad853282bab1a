package postgres

import (
	"context"
	"errors"

	"github.com/frahmantamala/tenant-ledger/internal"
	"github.com/frahmantamala/tenant-ledger/internal/company"
	companyDatamodel "github.com/frahmantamala/tenant-ledger/internal/core/datamodel/company"
	"github.com/frahmantamala/tenant-ledger/internal/core/status"
	"github.com/frahmantamala/tenant-ledger/internal/transport"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) company.RepositoryAPI {
	return &Repository{db: db}
}

func (r *Repository) CreateWithOwner(ctx context.Context, c *companyDatamodel.Company, ownerID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var taken int64
		err := tx.Table("companies AS c").
			Joins("JOIN user_companies uc ON uc.company_id = c.id").
			Where("uc.user_id = ? AND uc.is_owner = ? AND LOWER(c.name) = LOWER(?)", ownerID, true, c.Name).
			Count(&taken).Error
		if err != nil {
			return err
		}
		if taken > 0 {
			return internal.ErrCompanyNameTaken
		}

		if err := tx.Create(c).Error; err != nil {
			return err
		}
		return tx.Create(&companyDatamodel.UserCompany{
			UserID:    ownerID,
			CompanyID: c.ID,
			IsOwner:   true,
		}).Error
	})
}

type membershipRow struct {
	MembershipID      string
	IsOwner           bool
	CompanyID         string
	Name              string
	PlatformStatusKey string
	InvoiceCount      int64
}

type roleRow struct {
	UserCompanyID string
	Name          string
}

func (r *Repository) ListMemberships(ctx context.Context, userID string) ([]company.Membership, error) {
	var rows []membershipRow
	err := r.db.WithContext(ctx).
		Table("user_companies AS uc").
		Select("uc.id AS membership_id, uc.is_owner, c.id AS company_id, c.name, c.platform_status_key, c.invoice_count").
		Joins("JOIN companies c ON c.id = uc.company_id").
		Where("uc.user_id = ?", userID).
		Order("c.name").
		Scan(&rows).Error
	if err != nil || len(rows) == 0 {
		return nil, err
	}

	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.MembershipID)
	}

	var roles []roleRow
	err = r.db.WithContext(ctx).
		Table("user_company_roles AS ucr").
		Select("ucr.user_company_id, ro.name").
		Joins("JOIN roles ro ON ro.id = ucr.role_id").
		Where("ucr.user_company_id IN ?", ids).
		Order("ro.name").
		Scan(&roles).Error
	if err != nil {
		return nil, err
	}

	byMembership := make(map[string][]string, len(rows))
	for _, role := range roles {
		byMembership[role.UserCompanyID] = append(byMembership[role.UserCompanyID], role.Name)
	}

	out := make([]company.Membership, 0, len(rows))
	for _, row := range rows {
		names := byMembership[row.MembershipID]
		if names == nil {
			names = []string{}
		}
		out = append(out, company.Membership{
			MembershipID: row.MembershipID,
			IsOwner:      row.IsOwner,
			Roles:        names,
			Company: company.FromDataModel(&companyDatamodel.Company{
				ID:                row.CompanyID,
				Name:              row.Name,
				PlatformStatusKey: row.PlatformStatusKey,
				InvoiceCount:      row.InvoiceCount,
			}),
		})
	}
	return out, nil
}

func (r *Repository) FindActiveMembership(ctx context.Context, userID, companyID string) (*companyDatamodel.UserCompany, error) {
	var m companyDatamodel.UserCompany
	err := r.db.WithContext(ctx).
		Joins("JOIN companies c ON c.id = user_companies.company_id").
		Where("user_companies.user_id = ? AND user_companies.company_id = ? AND c.platform_status_key = ?",
			userID, companyID, status.PlatformActive.Key).
		First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *Repository) GetByID(ctx context.Context, companyID string) (*companyDatamodel.Company, error) {
	var c companyDatamodel.Company
	if err := r.db.WithContext(ctx).Where("id = ?", companyID).First(&c).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrCompanyNotFound
		}
		return nil, err
	}
	return &c, nil
}

type aggregate struct {
	N     int64
	Total decimal.NullDecimal
}

func (r *Repository) Totals(ctx context.Context, companyID string) (company.Totals, error) {
	var t company.Totals
	db := r.db.WithContext(ctx)

	if err := db.Table("accounts").Where("company_id = ?", companyID).Count(&t.Accounts).Error; err != nil {
		return t, err
	}

	var sales, bills aggregate
	if err := db.Table("sale_invoices").
		Select("COUNT(*) AS n, SUM(total_amount) AS total").
		Where("company_id = ?", companyID).
		Scan(&sales).Error; err != nil {
		return t, err
	}
	if err := db.Table("purchase_bills").
		Select("COUNT(*) AS n, SUM(total_amount) AS total").
		Where("company_id = ?", companyID).
		Scan(&bills).Error; err != nil {
		return t, err
	}

	t.SaleInvoices, t.Receivables = sales.N, sales.Total.Decimal
	t.PurchaseBills, t.Payables = bills.N, bills.Total.Decimal
	return t, nil
}

func (r *Repository) List(ctx context.Context, page transport.Pagination) ([]companyDatamodel.Company, int64, error) {
	var (
		rows  []companyDatamodel.Company
		total int64
	)
	db := r.db.WithContext(ctx)
	if err := db.Model(&companyDatamodel.Company{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := db.Order("created_at DESC").Offset(page.Skip).Limit(page.Top).Find(&rows).Error
	return rows, total, err
}

func (r *Repository) UpdateStatus(ctx context.Context, companyID, statusKey string) error {
	res := r.db.WithContext(ctx).
		Model(&companyDatamodel.Company{}).
		Where("id = ?", companyID).
		Update("platform_status_key", statusKey)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return internal.ErrCompanyNotFound
	}
	return nil
}
