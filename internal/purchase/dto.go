package purchase

import (
	"strings"
	"time"

	"github.com/frahmantamala/tenant-ledger/internal"
	"github.com/frahmantamala/tenant-ledger/internal/core/common/validation"
	"github.com/frahmantamala/tenant-ledger/internal/core/status"
	"github.com/frahmantamala/tenant-ledger/internal/transport"
	"github.com/shopspring/decimal"
)

type CreateBillDTO struct {
	BillNumber           string          `json:"bill_number"`
	PaidToAccountID      string          `json:"paid_to_account_id"`
	TotalAmount          decimal.Decimal `json:"total_amount"`
	TransactionStatusKey string          `json:"transaction_status_key"`
	DateReceived         *time.Time      `json:"date_received"`
	DueDate              *time.Time      `json:"due_date"`
	Description          *string         `json:"description"`
}

func (d CreateBillDTO) Normalize(now time.Time) CreateBillDTO {
	d.BillNumber = strings.TrimSpace(d.BillNumber)
	d.PaidToAccountID = strings.TrimSpace(d.PaidToAccountID)
	d.TransactionStatusKey = strings.ToUpper(strings.TrimSpace(d.TransactionStatusKey))
	if d.Description != nil {
		if desc := strings.TrimSpace(*d.Description); desc != "" {
			d.Description = &desc
		} else {
			d.Description = nil
		}
	}
	if d.DateReceived == nil {
		d.DateReceived = &now
	}
	return d
}

func (d CreateBillDTO) Validate() *internal.AppError {
	v := validation.NewValidator()
	v.Field("bill_number", d.BillNumber).Required().Length(BillNumberMinLength, BillNumberMaxLength)
	v.Field("paid_to_account_id", d.PaidToAccountID).Required()
	v.Field("total_amount", d.TotalAmount).Positive().MaxScale(AmountScale)
	v.Field("transaction_status_key", d.TransactionStatusKey).
		Required().
		OneOf(internal.ErrCodeInvalidTransactionStatus, func(k string) bool {
			_, ok := status.Transaction(k)
			return ok
		})
	v.Field("description", d.Description).Length(DescriptionMinLength, DescriptionMaxLength)
	if d.DateReceived != nil {
		v.Field("date_received", *d.DateReceived).NotFuture()
	}
	return v.Validate()
}

type BillsResponse struct {
	Bills []Bill               `json:"bills"`
	Total int64                `json:"total"`
	Page  transport.Pagination `json:"page"`
}
