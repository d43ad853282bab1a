package sale

import (
	"context"
	"log/slog"
	"time"

	"github.com/frahmantamala/tenant-ledger/internal"
	saleDatamodel "github.com/frahmantamala/tenant-ledger/internal/core/datamodel/sale"
	"github.com/frahmantamala/tenant-ledger/internal/core/events"
	"github.com/frahmantamala/tenant-ledger/internal/transport"
)

type RepositoryAPI interface {
	// CreateNumbered assigns the next company invoice number and inserts the invoice in
	// one transaction. It fails with a validation error when the issued-to account is not
	// in the company.
	CreateNumbered(ctx context.Context, inv *saleDatamodel.SaleInvoice) error
	GetByID(ctx context.Context, companyID, invoiceID string) (*saleDatamodel.SaleInvoice, error)
	List(ctx context.Context, companyID string, page transport.Pagination) ([]saleDatamodel.SaleInvoice, int64, error)
}

type ServiceAPI interface {
	Create(ctx context.Context, companyID, membershipID string, dto CreateInvoiceDTO) (*Invoice, error)
	Get(ctx context.Context, companyID, invoiceID string) (*Invoice, error)
	List(ctx context.Context, companyID string, page transport.Pagination) ([]Invoice, int64, error)
}

type Service struct {
	repo   RepositoryAPI
	events events.Publisher
	logger *slog.Logger
	now    func() time.Time
}

func NewService(repo RepositoryAPI, publisher events.Publisher, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		events: publisher,
		logger: logger,
		now:    time.Now,
	}
}

func (s *Service) Create(ctx context.Context, companyID, membershipID string, dto CreateInvoiceDTO) (*Invoice, error) {
	dto = dto.Normalize(s.now())
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	row := &saleDatamodel.SaleInvoice{
		CompanyID:            companyID,
		IssuedToID:           dto.IssuedToID,
		IssuedByID:           membershipID,
		TotalAmount:          dto.TotalAmount,
		TransactionStatusKey: dto.TransactionStatusKey,
		OnCredit:             dto.OnCredit,
		DateIssued:           *dto.DateIssued,
		DueDate:              dto.DueDate,
		Description:          dto.Description,
	}
	if err := s.repo.CreateNumbered(ctx, row); err != nil {
		if _, ok := internal.IsAppError(err); ok {
			return nil, err
		}
		return nil, internal.NewInternalError("failed to create sale invoice", err)
	}

	s.logger.InfoContext(ctx, "sale invoice created",
		"company_id", companyID, "invoice_id", row.ID, "invoice_number", row.InvoiceNumber)
	if s.events != nil {
		e := events.NewSaleInvoiceCreatedEvent(companyID, row.ID, row.InvoiceNumber, row.TotalAmount)
		if err := s.events.Publish(ctx, e); err != nil {
			s.logger.WarnContext(ctx, "failed to publish event", "event_type", e.EventType(), "error", err)
		}
	}

	out := FromDataModel(row)
	return &out, nil
}

func (s *Service) Get(ctx context.Context, companyID, invoiceID string) (*Invoice, error) {
	row, err := s.repo.GetByID(ctx, companyID, invoiceID)
	if err != nil {
		if _, ok := internal.IsAppError(err); ok {
			return nil, err
		}
		return nil, internal.NewInternalError("failed to load sale invoice", err)
	}
	out := FromDataModel(row)
	return &out, nil
}

func (s *Service) List(ctx context.Context, companyID string, page transport.Pagination) ([]Invoice, int64, error) {
	rows, total, err := s.repo.List(ctx, companyID, page)
	if err != nil {
		return nil, 0, internal.NewInternalError("failed to list sale invoices", err)
	}

	out := make([]Invoice, 0, len(rows))
	for i := range rows {
		out = append(out, FromDataModel(&rows[i]))
	}
	return out, total, nil
}
