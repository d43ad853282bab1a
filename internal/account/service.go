package account

import (
	"context"
	"log/slog"

	"github.com/frahmantamala/tenant-ledger/internal"
	accountDatamodel "github.com/frahmantamala/tenant-ledger/internal/core/datamodel/account"
	"github.com/frahmantamala/tenant-ledger/internal/core/events"
	"github.com/frahmantamala/tenant-ledger/internal/transport"
)

type RepositoryAPI interface {
	// Upsert inserts the account or updates the row with the same id. It returns
	// internal.ErrAccountNameTaken when another account of the company has the name and
	// internal.ErrAccountNotFound when the id belongs to another company.
	Upsert(ctx context.Context, a *accountDatamodel.Account) (created bool, err error)
	GetByID(ctx context.Context, companyID, accountID string) (*accountDatamodel.Account, error)
	List(ctx context.Context, companyID string, page transport.Pagination) ([]accountDatamodel.Account, int64, error)
}

type ServiceAPI interface {
	Save(ctx context.Context, actor Actor, accountID string, dto SaveAccountDTO) (*Account, bool, error)
	Get(ctx context.Context, companyID, accountID string) (*Account, error)
	List(ctx context.Context, companyID string, page transport.Pagination) ([]Account, int64, error)
}

// Actor identifies who is writing inside a company.
type Actor struct {
	CompanyID    string
	UserID       string
	MembershipID string
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

// Save creates the account when accountID is empty or unknown, and updates it otherwise.
// The creator recorded on the row never changes after insert.
func (s *Service) Save(ctx context.Context, actor Actor, accountID string, dto SaveAccountDTO) (*Account, bool, error) {
	dto = dto.Normalize()
	if err := dto.Validate(); err != nil {
		return nil, false, err
	}

	row := &accountDatamodel.Account{
		ID:          accountID,
		CompanyID:   actor.CompanyID,
		Name:        dto.Name,
		UniqueID:    dto.UniqueID,
		Email:       dto.Email,
		Phone:       dto.Phone,
		Address:     dto.Address,
		City:        dto.City,
		State:       dto.State,
		Country:     dto.Country,
		Zip:         dto.Zip,
		CreatedByID: actor.MembershipID,
	}

	created, err := s.repo.Upsert(ctx, row)
	if err != nil {
		if _, ok := internal.IsAppError(err); ok {
			return nil, false, err
		}
		return nil, false, internal.NewInternalError("failed to save account", err)
	}

	saved, err := s.Get(ctx, actor.CompanyID, row.ID)
	if err != nil {
		return nil, false, err
	}

	s.logger.InfoContext(ctx, "account saved",
		"company_id", actor.CompanyID, "account_id", row.ID, "created", created)
	if s.events != nil {
		if err := s.events.Publish(ctx, events.NewAccountSavedEvent(actor.CompanyID, row.ID, actor.UserID, created)); err != nil {
			s.logger.WarnContext(ctx, "failed to publish event", "event_type", events.EventTypeAccountSaved, "error", err)
		}
	}
	return saved, created, nil
}

func (s *Service) Get(ctx context.Context, companyID, accountID string) (*Account, error) {
	row, err := s.repo.GetByID(ctx, companyID, accountID)
	if err != nil {
		if _, ok := internal.IsAppError(err); ok {
			return nil, err
		}
		return nil, internal.NewInternalError("failed to load account", err)
	}
	out := FromDataModel(row)
	return &out, nil
}

func (s *Service) List(ctx context.Context, companyID string, page transport.Pagination) ([]Account, int64, error) {
	rows, total, err := s.repo.List(ctx, companyID, page)
	if err != nil {
		return nil, 0, internal.NewInternalError("failed to list accounts", err)
	}

	out := make([]Account, 0, len(rows))
	for i := range rows {
		out = append(out, FromDataModel(&rows[i]))
	}
	return out, total, nil
}
