package purchase

import (
	"time"

	purchaseDatamodel "github.com/frahmantamala/tenant-ledger/internal/core/datamodel/purchase"
	"github.com/frahmantamala/tenant-ledger/internal/core/status"
	"github.com/shopspring/decimal"
)

const (
	BillNumberMinLength  = 1
	BillNumberMaxLength  = 32
	DescriptionMinLength = 4
	DescriptionMaxLength = 80
	AmountScale          = 2
)

type Bill struct {
	ID              string          `json:"id"`
	CompanyID       string          `json:"company_id"`
	BillNumber      string          `json:"bill_number"`
	PaidToAccountID string          `json:"paid_to_account_id"`
	RecordedByID    string          `json:"recorded_by_id"`
	TotalAmount     decimal.Decimal `json:"total_amount"`
	Status          status.Status   `json:"transaction_status"`
	DateReceived    time.Time       `json:"date_received"`
	DueDate         *time.Time      `json:"due_date"`
	Description     *string         `json:"description"`
	CreatedAt       time.Time       `json:"created_at"`
}

func FromDataModel(p *purchaseDatamodel.PurchaseBill) Bill {
	return Bill{
		ID:              p.ID,
		CompanyID:       p.CompanyID,
		BillNumber:      p.BillNumber,
		PaidToAccountID: p.PaidToAccountID,
		RecordedByID:    p.RecordedByID,
		TotalAmount:     p.TotalAmount,
		Status:          status.TransactionOrUnknown(p.TransactionStatusKey),
		DateReceived:    p.DateReceived,
		DueDate:         p.DueDate,
		Description:     p.Description,
		CreatedAt:       p.CreatedAt,
	}
}
