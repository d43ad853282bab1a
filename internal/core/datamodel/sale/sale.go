package sale

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type SaleInvoice struct {
	ID                   string          `gorm:"primaryKey"`
	CompanyID            string          `gorm:"column:company_id;not null;uniqueIndex:idx_sale_invoice_number"`
	InvoiceNumber        int64           `gorm:"column:invoice_number;not null;uniqueIndex:idx_sale_invoice_number"`
	IssuedToID           string          `gorm:"column:issued_to_id;not null;index"`
	IssuedByID           string          `gorm:"column:issued_by_id;not null"`
	TotalAmount          decimal.Decimal `gorm:"column:total_amount;type:numeric(14,2);not null"`
	TransactionStatusKey string          `gorm:"column:transaction_status_key;not null"`
	OnCredit             bool            `gorm:"column:on_credit;not null;default:false"`
	DateIssued           time.Time       `gorm:"column:date_issued;not null"`
	DueDate              *time.Time      `gorm:"column:due_date"`
	Description          *string         `gorm:"column:description"`
	CreatedAt            time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt            time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

func (SaleInvoice) TableName() string { return "sale_invoices" }

func (s *SaleInvoice) BeforeCreate(_ *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}
