package sale

import (
	"fmt"
	"strings"
	"time"

	"github.com/frahmantamala/tenant-ledger/internal"
	"github.com/frahmantamala/tenant-ledger/internal/core/common/validation"
	"github.com/frahmantamala/tenant-ledger/internal/core/status"
	"github.com/frahmantamala/tenant-ledger/internal/transport"
	"github.com/shopspring/decimal"
)

type CreateInvoiceDTO struct {
	IssuedToID           string          `json:"issued_to_id"`
	TotalAmount          decimal.Decimal `json:"total_amount"`
	TransactionStatusKey string          `json:"transaction_status_key"`
	OnCredit             bool            `json:"on_credit"`
	DateIssued           *time.Time      `json:"date_issued"`
	DueDate              *time.Time      `json:"due_date"`
	Description          *string         `json:"description"`
}

func (d CreateInvoiceDTO) Normalize(now time.Time) CreateInvoiceDTO {
	d.IssuedToID = strings.TrimSpace(d.IssuedToID)
	d.TransactionStatusKey = strings.ToUpper(strings.TrimSpace(d.TransactionStatusKey))
	if d.Description != nil {
		desc := strings.TrimSpace(*d.Description)
		d.Description = &desc
		if desc == "" {
			d.Description = nil
		}
	}
	if d.DateIssued == nil {
		d.DateIssued = &now
	}
	return d
}

func (d CreateInvoiceDTO) Validate() *internal.AppError {
	v := validation.NewValidator()
	v.Field("issued_to_id", d.IssuedToID).Required()
	v.Field("total_amount", d.TotalAmount).Positive().MaxScale(AmountScale)
	v.Field("transaction_status_key", d.TransactionStatusKey).
		Required().
		OneOf(internal.ErrCodeInvalidTransactionStatus, func(k string) bool {
			_, ok := status.Transaction(k)
			return ok
		})
	v.Field("description", d.Description).Length(DescriptionMinLength, DescriptionMaxLength)
	if d.DateIssued != nil {
		v.Field("date_issued", *d.DateIssued).NotFuture()
	}
	v.Field("due_date", d.DueDate).Custom(func(interface{}) *internal.AppError {
		if d.DueDate != nil && d.DateIssued != nil && d.DueDate.Before(*d.DateIssued) {
			return internal.NewValidationFieldError("due_date",
				fmt.Sprintf("due_date cannot be before %s", d.DateIssued.Format(time.DateOnly)), internal.ErrCodeInvalidDate)
		}
		return nil
	})
	return v.Validate()
}

type InvoicesResponse struct {
	Invoices []Invoice            `json:"invoices"`
	Total    int64                `json:"total"`
	Page     transport.Pagination `json:"page"`
}
