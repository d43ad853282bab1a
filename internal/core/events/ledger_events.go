package events

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	EventTypeCompanyCreated       = "company.created"
	EventTypeCompanyStatusChanged = "company.status_changed"
	EventTypeAccountSaved         = "account.saved"
	EventTypeSaleInvoiceCreated   = "sale_invoice.created"
	EventTypePurchaseBillCreated  = "purchase_bill.created"
)

// LedgerEventTypes lists every event the ledger publishes.
var LedgerEventTypes = []string{
	EventTypeCompanyCreated,
	EventTypeCompanyStatusChanged,
	EventTypeAccountSaved,
	EventTypeSaleInvoiceCreated,
	EventTypePurchaseBillCreated,
}

func newBase(eventType string, data map[string]interface{}) BaseEvent {
	return BaseEvent{
		ID:        uuid.New().String(),
		Type:      eventType,
		Timestamp: time.Now(),
		Data:      data,
	}
}

type CompanyCreatedEvent struct {
	BaseEvent
	CompanyID string `json:"company_id"`
	OwnerID   string `json:"owner_id"`
	Name      string `json:"name"`
}

func NewCompanyCreatedEvent(companyID, ownerID, name string) *CompanyCreatedEvent {
	return &CompanyCreatedEvent{
		BaseEvent: newBase(EventTypeCompanyCreated, map[string]interface{}{
			"company_id": companyID,
			"owner_id":   ownerID,
			"name":       name,
		}),
		CompanyID: companyID,
		OwnerID:   ownerID,
		Name:      name,
	}
}

type CompanyStatusChangedEvent struct {
	BaseEvent
	CompanyID string `json:"company_id"`
	From      string `json:"from"`
	To        string `json:"to"`
	ChangedBy string `json:"changed_by"`
}

func NewCompanyStatusChangedEvent(companyID, from, to, changedBy string) *CompanyStatusChangedEvent {
	return &CompanyStatusChangedEvent{
		BaseEvent: newBase(EventTypeCompanyStatusChanged, map[string]interface{}{
			"company_id": companyID,
			"from":       from,
			"to":         to,
			"changed_by": changedBy,
		}),
		CompanyID: companyID,
		From:      from,
		To:        to,
		ChangedBy: changedBy,
	}
}

type AccountSavedEvent struct {
	BaseEvent
	CompanyID string `json:"company_id"`
	AccountID string `json:"account_id"`
	Created   bool   `json:"created"`
	ActorID   string `json:"actor_id"`
}

func NewAccountSavedEvent(companyID, accountID, actorID string, created bool) *AccountSavedEvent {
	return &AccountSavedEvent{
		BaseEvent: newBase(EventTypeAccountSaved, map[string]interface{}{
			"company_id": companyID,
			"account_id": accountID,
			"actor_id":   actorID,
			"created":    created,
		}),
		CompanyID: companyID,
		AccountID: accountID,
		Created:   created,
		ActorID:   actorID,
	}
}

type SaleInvoiceCreatedEvent struct {
	BaseEvent
	CompanyID     string          `json:"company_id"`
	InvoiceID     string          `json:"invoice_id"`
	InvoiceNumber int64           `json:"invoice_number"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
}

func NewSaleInvoiceCreatedEvent(companyID, invoiceID string, number int64, total decimal.Decimal) *SaleInvoiceCreatedEvent {
	return &SaleInvoiceCreatedEvent{
		BaseEvent: newBase(EventTypeSaleInvoiceCreated, map[string]interface{}{
			"company_id":     companyID,
			"invoice_id":     invoiceID,
			"invoice_number": number,
			"total_amount":   total.StringFixed(2),
		}),
		CompanyID:     companyID,
		InvoiceID:     invoiceID,
		InvoiceNumber: number,
		TotalAmount:   total,
	}
}

type PurchaseBillCreatedEvent struct {
	BaseEvent
	CompanyID   string          `json:"company_id"`
	BillID      string          `json:"bill_id"`
	BillNumber  string          `json:"bill_number"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

func NewPurchaseBillCreatedEvent(companyID, billID, billNumber string, total decimal.Decimal) *PurchaseBillCreatedEvent {
	return &PurchaseBillCreatedEvent{
		BaseEvent: newBase(EventTypePurchaseBillCreated, map[string]interface{}{
			"company_id":   companyID,
			"bill_id":      billID,
			"bill_number":  billNumber,
			"total_amount": total.StringFixed(2),
		}),
		CompanyID:   companyID,
		BillID:      billID,
		BillNumber:  billNumber,
		TotalAmount: total,
	}
}
