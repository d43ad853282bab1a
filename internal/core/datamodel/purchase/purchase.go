package purchase

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type PurchaseBill struct {
	ID                   string          `gorm:"primaryKey"`
	CompanyID            string          `gorm:"column:company_id;not null;uniqueIndex:idx_purchase_bill_number"`
	BillNumber           string          `gorm:"column:bill_number;not null;uniqueIndex:idx_purchase_bill_number"`
	PaidToAccountID      string          `gorm:"column:paid_to_account_id;not null;index"`
	RecordedByID         string          `gorm:"column:recorded_by_id;not null"`
	TotalAmount          decimal.Decimal `gorm:"column:total_amount;type:numeric(14,2);not null"`
	TransactionStatusKey string          `gorm:"column:transaction_status_key;not null"`
	DateReceived         time.Time       `gorm:"column:date_received;not null"`
	DueDate              *time.Time      `gorm:"column:due_date"`
	Description          *string         `gorm:"column:description"`
	CreatedAt            time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt            time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

func (PurchaseBill) TableName() string { return "purchase_bills" }

func (p *PurchaseBill) BeforeCreate(_ *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
