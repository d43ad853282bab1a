// Package search resolves a free-text query into company-scoped lookups over accounts,
// sale invoices and purchase bills.
package search

import (
	"context"
	"time"

	"github.com/frahmantamala/tenant-ledger/internal/core/status"
	"github.com/shopspring/decimal"
)

type Keyword string

const (
	KeywordAccount  Keyword = "acc"
	KeywordUniqueID Keyword = "uid"
	KeywordInvoice  Keyword = "inv"
	KeywordBill     Keyword = "bill"

	keywordSeparator = ":"
)

type AccountHit struct {
	ID        string          `db:"id" json:"id"`
	Name      string          `db:"name" json:"name"`
	UniqueID  *string         `db:"unique_id" json:"unique_id,omitempty"`
	Email     *string         `db:"email" json:"email,omitempty"`
	Balance   decimal.Decimal `db:"balance" json:"balance"`
	CreatedAt time.Time       `db:"created_at" json:"created_at"`
}

type SaleInvoiceHit struct {
	ID                   string          `db:"id" json:"id"`
	InvoiceNumber        int64           `db:"invoice_number" json:"invoice_number"`
	IssuedToID           string          `db:"issued_to_id" json:"issued_to_id"`
	IssuedToName         string          `db:"issued_to_name" json:"issued_to_name"`
	TotalAmount          decimal.Decimal `db:"total_amount" json:"total_amount"`
	TransactionStatusKey string          `db:"transaction_status_key" json:"-"`
	Status               status.Status   `db:"-" json:"transaction_status"`
	DateIssued           time.Time       `db:"date_issued" json:"date_issued"`
}

type PurchaseBillHit struct {
	ID                   string          `db:"id" json:"id"`
	BillNumber           string          `db:"bill_number" json:"bill_number"`
	PaidToAccountID      string          `db:"paid_to_account_id" json:"paid_to_account_id"`
	PaidToName           string          `db:"paid_to_name" json:"paid_to_name"`
	TotalAmount          decimal.Decimal `db:"total_amount" json:"total_amount"`
	TransactionStatusKey string          `db:"transaction_status_key" json:"-"`
	Status               status.Status   `db:"-" json:"transaction_status"`
	DateReceived         time.Time       `db:"date_received" json:"date_received"`
}

// Result holds three independent partial result sets. A category that was not queried,
// or whose lookup failed, is empty rather than nil.
type Result struct {
	Accounts      []AccountHit      `json:"accounts"`
	SaleInvoices  []SaleInvoiceHit  `json:"sale_invoices"`
	PurchaseBills []PurchaseBillHit `json:"purchase_bills"`
}

func newResult() *Result {
	return &Result{
		Accounts:      []AccountHit{},
		SaleInvoices:  []SaleInvoiceHit{},
		PurchaseBills: []PurchaseBillHit{},
	}
}

func (r *Result) Empty() bool {
	return r == nil || len(r.Accounts)+len(r.SaleInvoices)+len(r.PurchaseBills) == 0
}

// RepositoryAPI lookups always filter on companyID. term is the raw user text; substring
// lookups match it case-insensitively.
type RepositoryAPI interface {
	AccountsByName(ctx context.Context, companyID, term string, limit int) ([]AccountHit, error)
	AccountsByUniqueID(ctx context.Context, companyID, term string, limit int) ([]AccountHit, error)
	AccountsByNameOrUniqueID(ctx context.Context, companyID, term string, limit int) ([]AccountHit, error)
	SaleInvoicesByNumber(ctx context.Context, companyID string, number int64, limit int) ([]SaleInvoiceHit, error)
	SaleInvoicesByCustomer(ctx context.Context, companyID, term string, limit int) ([]SaleInvoiceHit, error)
	PurchaseBillsByNumber(ctx context.Context, companyID, term string, limit int) ([]PurchaseBillHit, error)
	PurchaseBillsByNumberOrPayee(ctx context.Context, companyID, term string, limit int) ([]PurchaseBillHit, error)
}
