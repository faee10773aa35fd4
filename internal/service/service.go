package service

import (
	"context"

	"go.uber.org/zap"

	"mealmatch/internal/availability"
	"mealmatch/internal/cache"
	"mealmatch/internal/domain"
	"mealmatch/internal/events"
	"mealmatch/internal/repository"
	"mealmatch/pkg/auth"
)

type Deps struct {
	Repos     *repository.Repositories
	Logger    *zap.Logger
	Cache     *cache.GridCache
	Publisher events.Publisher
	Clock     availability.Clock
	Tokens    *auth.TokenManager
}

type Services struct {
	Availability AvailabilityService
	Auth         AuthService
}

func NewServices(deps Deps) *Services {
	return &Services{
		Availability: NewAvailabilityService(deps.Repos.Availability, deps.Cache, deps.Publisher, deps.Clock, deps.Logger),
		Auth:         NewAuthService(deps.Tokens),
	}
}

type AvailabilityService interface {
	GetSlots(ctx context.Context, userID int64) (*domain.UserAvailability, error)
	GetGrid(ctx context.Context, userID int64) (domain.AvailabilityGrid, error)
	ReplaceSlots(ctx context.Context, userID int64, slots []domain.AvailabilitySlot) (*domain.UserAvailability, error)
	UpdateCell(ctx context.Context, userID int64, dto domain.UpdateCellDTO) (*domain.UserAvailability, error)
	ToggleCell(ctx context.Context, userID int64, dto domain.ToggleCellDTO) (*domain.UserAvailability, error)
	GetPairSlots(ctx context.Context, selfID, partnerID int64) ([]domain.PairAvailabilitySlot, error)
	GetPairWindow(ctx context.Context, selfID, partnerID int64) (*domain.PairWindow, error)
	ExportCalendar(ctx context.Context, userID int64) ([]byte, error)
}

type AuthService interface {
	ParseToken(ctx context.Context, token string) (int64, string, error)
}
