package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/frahmantamala/tenant-ledger/internal"
	userDatamodel "github.com/frahmantamala/tenant-ledger/internal/core/datamodel/user"
)

type RepositoryAPI interface {
	// GetByID returns internal.ErrUserNotFound when no row matches.
	GetByID(ctx context.Context, userID string) (*userDatamodel.User, error)
	ListRoleNames(ctx context.Context, userID string) ([]string, error)
}

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (s *Service) GetProfile(ctx context.Context, userID string) (*Profile, error) {
	u, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, internal.ErrUserNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}

	roles, err := s.repo.ListRoleNames(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user roles: %w", err)
	}

	p := FromDataModel(u)
	if roles != nil {
		p.Roles = roles
	}
	return p, nil
}
