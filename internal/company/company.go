package company

import (
	"time"

	companyDatamodel "github.com/frahmantamala/tenant-ledger/internal/core/datamodel/company"
	"github.com/frahmantamala/tenant-ledger/internal/core/status"
	"github.com/shopspring/decimal"
)

const (
	NameMinLength = 4
	NameMaxLength = 60
)

type Company struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	Status       status.Status `json:"platform_status"`
	InvoiceCount int64         `json:"invoice_count"`
	CreatedAt    time.Time     `json:"created_at"`
}

func FromDataModel(c *companyDatamodel.Company) Company {
	s, ok := status.Platform(c.PlatformStatusKey)
	if !ok {
		s = status.Status{Key: c.PlatformStatusKey, Label: c.PlatformStatusKey, Color: status.ColorOrange}
	}
	return Company{
		ID:           c.ID,
		Name:         c.Name,
		Status:       s,
		InvoiceCount: c.InvoiceCount,
		CreatedAt:    c.CreatedAt,
	}
}

// Membership is one row of the studio company list.
type Membership struct {
	MembershipID string   `json:"membership_id"`
	Company      Company  `json:"company"`
	IsOwner      bool     `json:"is_owner"`
	Roles        []string `json:"roles"`
}

type Totals struct {
	Accounts      int64           `json:"accounts"`
	SaleInvoices  int64           `json:"sale_invoices"`
	PurchaseBills int64           `json:"purchase_bills"`
	Receivables   decimal.Decimal `json:"receivables"`
	Payables      decimal.Decimal `json:"payables"`
}

type Overview struct {
	Company Company `json:"company"`
	IsOwner bool    `json:"is_owner"`
	Totals  Totals  `json:"totals"`
}
