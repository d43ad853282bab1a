package company

import (
	"context"
	"log/slog"

	"github.com/frahmantamala/tenant-ledger/internal"
	companyDatamodel "github.com/frahmantamala/tenant-ledger/internal/core/datamodel/company"
	"github.com/frahmantamala/tenant-ledger/internal/core/events"
	"github.com/frahmantamala/tenant-ledger/internal/core/status"
	"github.com/frahmantamala/tenant-ledger/internal/transport"
)

type RepositoryAPI interface {
	// CreateWithOwner inserts the company and the owner's membership atomically. It returns
	// internal.ErrCompanyNameTaken when the owner already owns a company with that name.
	CreateWithOwner(ctx context.Context, c *companyDatamodel.Company, ownerID string) error
	ListMemberships(ctx context.Context, userID string) ([]Membership, error)
	// FindActiveMembership returns nil without error unless the user belongs to the
	// company and the company is ACTIVE.
	FindActiveMembership(ctx context.Context, userID, companyID string) (*companyDatamodel.UserCompany, error)
	GetByID(ctx context.Context, companyID string) (*companyDatamodel.Company, error)
	Totals(ctx context.Context, companyID string) (Totals, error)
	List(ctx context.Context, page transport.Pagination) ([]companyDatamodel.Company, int64, error)
	UpdateStatus(ctx context.Context, companyID, statusKey string) error
}

type ServiceAPI interface {
	Create(ctx context.Context, userID string, dto CreateCompanyDTO) (*Company, error)
	ListForUser(ctx context.Context, userID string) ([]Membership, error)
	GetOverview(ctx context.Context, userID, companyID string) (*Overview, error)
	List(ctx context.Context, page transport.Pagination) ([]Company, int64, error)
	ChangeStatus(ctx context.Context, actorID, companyID string, dto UpdateStatusDTO) (*Company, error)
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

func (s *Service) Create(ctx context.Context, userID string, dto CreateCompanyDTO) (*Company, error) {
	dto = dto.Normalize()
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	c := &companyDatamodel.Company{
		Name:              dto.Name,
		PlatformStatusKey: status.PlatformActive.Key,
	}
	if err := s.repo.CreateWithOwner(ctx, c, userID); err != nil {
		if _, ok := internal.IsAppError(err); ok {
			return nil, err
		}
		return nil, internal.NewInternalError("failed to create company", err)
	}

	s.logger.InfoContext(ctx, "company created", "company_id", c.ID, "owner_id", userID)
	s.publish(ctx, events.NewCompanyCreatedEvent(c.ID, userID, c.Name))

	out := FromDataModel(c)
	return &out, nil
}

func (s *Service) ListForUser(ctx context.Context, userID string) ([]Membership, error) {
	memberships, err := s.repo.ListMemberships(ctx, userID)
	if err != nil {
		return nil, internal.NewInternalError("failed to list companies", err)
	}
	if memberships == nil {
		memberships = []Membership{}
	}
	return memberships, nil
}

// GetOverview answers ErrCompanyNotFound both for unknown companies and for ones the user
// may not see, so the response does not reveal which companies exist.
func (s *Service) GetOverview(ctx context.Context, userID, companyID string) (*Overview, error) {
	m, err := s.repo.FindActiveMembership(ctx, userID, companyID)
	if err != nil {
		return nil, internal.NewInternalError("failed to load membership", err)
	}
	if m == nil {
		return nil, internal.ErrCompanyNotFound
	}

	c, err := s.repo.GetByID(ctx, companyID)
	if err != nil {
		return nil, err
	}

	totals, err := s.repo.Totals(ctx, companyID)
	if err != nil {
		return nil, internal.NewInternalError("failed to compute company totals", err)
	}

	return &Overview{
		Company: FromDataModel(c),
		IsOwner: m.IsOwner,
		Totals:  totals,
	}, nil
}

func (s *Service) List(ctx context.Context, page transport.Pagination) ([]Company, int64, error) {
	rows, total, err := s.repo.List(ctx, page)
	if err != nil {
		return nil, 0, internal.NewInternalError("failed to list companies", err)
	}

	out := make([]Company, 0, len(rows))
	for i := range rows {
		out = append(out, FromDataModel(&rows[i]))
	}
	return out, total, nil
}

func (s *Service) ChangeStatus(ctx context.Context, actorID, companyID string, dto UpdateStatusDTO) (*Company, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	c, err := s.repo.GetByID(ctx, companyID)
	if err != nil {
		return nil, err
	}

	from := c.PlatformStatusKey
	if from != dto.PlatformStatusKey {
		if err := s.repo.UpdateStatus(ctx, companyID, dto.PlatformStatusKey); err != nil {
			return nil, internal.NewInternalError("failed to update company status", err)
		}
		c.PlatformStatusKey = dto.PlatformStatusKey

		s.logger.InfoContext(ctx, "company status changed",
			"company_id", companyID, "from", from, "to", dto.PlatformStatusKey, "actor_id", actorID)
		s.publish(ctx, events.NewCompanyStatusChangedEvent(companyID, from, dto.PlatformStatusKey, actorID))
	}

	out := FromDataModel(c)
	return &out, nil
}

func (s *Service) publish(ctx context.Context, e events.Event) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(ctx, e); err != nil {
		s.logger.WarnContext(ctx, "failed to publish event", "event_type", e.EventType(), "error", err)
	}
}
