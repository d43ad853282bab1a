package purchase

import (
	"context"
	"log/slog"
	"time"

	"github.com/frahmantamala/tenant-ledger/internal"
	purchaseDatamodel "github.com/frahmantamala/tenant-ledger/internal/core/datamodel/purchase"
	"github.com/frahmantamala/tenant-ledger/internal/core/events"
	"github.com/frahmantamala/tenant-ledger/internal/transport"
)

type RepositoryAPI interface {
	// Create fails with internal.ErrBillNumberTaken when the company already has the bill
	// number, and with a validation error when the payee is not an account of the company.
	Create(ctx context.Context, bill *purchaseDatamodel.PurchaseBill) error
	GetByID(ctx context.Context, companyID, billID string) (*purchaseDatamodel.PurchaseBill, error)
	List(ctx context.Context, companyID string, page transport.Pagination) ([]purchaseDatamodel.PurchaseBill, int64, error)
}

type ServiceAPI interface {
	Create(ctx context.Context, companyID, membershipID string, dto CreateBillDTO) (*Bill, error)
	Get(ctx context.Context, companyID, billID string) (*Bill, error)
	List(ctx context.Context, companyID string, page transport.Pagination) ([]Bill, int64, error)
}

type Service struct {
	repo   RepositoryAPI
	events events.Publisher
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, publisher events.Publisher, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		events: publisher,
		logger: logger,
	}
}

func (s *Service) Create(ctx context.Context, companyID, membershipID string, dto CreateBillDTO) (*Bill, error) {
	dto = dto.Normalize(time.Now())
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	row := &purchaseDatamodel.PurchaseBill{
		CompanyID:            companyID,
		BillNumber:           dto.BillNumber,
		PaidToAccountID:      dto.PaidToAccountID,
		RecordedByID:         membershipID,
		TotalAmount:          dto.TotalAmount,
		TransactionStatusKey: dto.TransactionStatusKey,
		DateReceived:         *dto.DateReceived,
		DueDate:              dto.DueDate,
		Description:          dto.Description,
	}
	if err := s.repo.Create(ctx, row); err != nil {
		if _, ok := internal.IsAppError(err); ok {
			return nil, err
		}
		return nil, internal.NewInternalError("failed to create purchase bill", err)
	}

	s.logger.InfoContext(ctx, "purchase bill created",
		"company_id", companyID, "bill_id", row.ID, "bill_number", row.BillNumber)
	if s.events != nil {
		e := events.NewPurchaseBillCreatedEvent(companyID, row.ID, row.BillNumber, row.TotalAmount)
		if err := s.events.Publish(ctx, e); err != nil {
			s.logger.WarnContext(ctx, "failed to publish event", "event_type", e.EventType(), "error", err)
		}
	}

	out := FromDataModel(row)
	return &out, nil
}

func (s *Service) Get(ctx context.Context, companyID, billID string) (*Bill, error) {
	row, err := s.repo.GetByID(ctx, companyID, billID)
	if err != nil {
		if _, ok := internal.IsAppError(err); ok {
			return nil, err
		}
		return nil, internal.NewInternalError("failed to load purchase bill", err)
	}
	out := FromDataModel(row)
	return &out, nil
}

func (s *Service) List(ctx context.Context, companyID string, page transport.Pagination) ([]Bill, int64, error) {
	rows, total, err := s.repo.List(ctx, companyID, page)
	if err != nil {
		return nil, 0, internal.NewInternalError("failed to list purchase bills", err)
	}

	out := make([]Bill, 0, len(rows))
	for i := range rows {
		out = append(out, FromDataModel(&rows[i]))
	}
	return out, total, nil
}
