package sale

import (
	"time"

	saleDatamodel "github.com/frahmantamala/tenant-ledger/internal/core/datamodel/sale"
	"github.com/frahmantamala/tenant-ledger/internal/core/status"
	"github.com/shopspring/decimal"
)

const (
	DescriptionMinLength = 4
	DescriptionMaxLength = 80
	AmountScale          = 2
)

type Invoice struct {
	ID            string          `json:"id"`
	CompanyID     string          `json:"company_id"`
	InvoiceNumber int64           `json:"invoice_number"`
	IssuedToID    string          `json:"issued_to_id"`
	IssuedByID    string          `json:"issued_by_id"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	Status        status.Status   `json:"transaction_status"`
	OnCredit      bool            `json:"on_credit"`
	DateIssued    time.Time       `json:"date_issued"`
	DueDate       *time.Time      `json:"due_date"`
	Description   *string         `json:"description"`
	CreatedAt     time.Time       `json:"created_at"`
}

func FromDataModel(s *saleDatamodel.SaleInvoice) Invoice {
	return Invoice{
		ID:            s.ID,
		CompanyID:     s.CompanyID,
		InvoiceNumber: s.InvoiceNumber,
		IssuedToID:    s.IssuedToID,
		IssuedByID:    s.IssuedByID,
		TotalAmount:   s.TotalAmount,
		Status:        status.TransactionOrUnknown(s.TransactionStatusKey),
		OnCredit:      s.OnCredit,
		DateIssued:    s.DateIssued,
		DueDate:       s.DueDate,
		Description:   s.Description,
		CreatedAt:     s.CreatedAt,
	}
}
