package service

import (
	"context"

	"funeral-docs-be/internal/apperror"
	"funeral-docs-be/internal/dto"
	"funeral-docs-be/internal/entity"
	"funeral-docs-be/internal/pkg/logger"
	"funeral-docs-be/internal/repository/specification"
	"funeral-docs-be/internal/repository/unitofwork"
	"funeral-docs-be/pkg/admin/usage"

	"github.com/google/uuid"
)

// Viewer is the authenticated caller of an analytics query.
type Viewer struct {
	UserId uuid.UUID
	Role   entity.UserRole
}

func (v Viewer) canSee(userId uuid.UUID) bool {
	return v.Role == entity.UserRoleAdmin || v.UserId == userId
}

type IAnalyticsService interface {
	UserStats(ctx context.Context, viewer Viewer, userId uuid.UUID) (*dto.UsageStatsResponse, error)
	UserTrends(ctx context.Context, viewer Viewer, userId uuid.UUID, days int) (*dto.TrendsResponse, error)
	AllUsers(ctx context.Context) ([]dto.UsageStatsResponse, error)
}

type analyticsService struct {
	uowFactory unitofwork.RepositoryFactory
	tracker    *usage.Tracker
	logger     logger.ILogger
}

func NewAnalyticsService(uowFactory unitofwork.RepositoryFactory, tracker *usage.Tracker, log logger.ILogger) IAnalyticsService {
	return &analyticsService{uowFactory: uowFactory, tracker: tracker, logger: log}
}

func (s *analyticsService) UserStats(ctx context.Context, viewer Viewer, userId uuid.UUID) (*dto.UsageStatsResponse, error) {
	if !viewer.canSee(userId) {
		return nil, apperror.ErrForbidden
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.ErrUserNotFound
	}

	stats, err := s.tracker.Stats(ctx, uow, user)
	if err != nil {
		return nil, err
	}
	res := dto.NewUsageStatsResponse(stats)
	return &res, nil
}

func (s *analyticsService) UserTrends(ctx context.Context, viewer Viewer, userId uuid.UUID, days int) (*dto.TrendsResponse, error) {
	if !viewer.canSee(userId) {
		return nil, apperror.ErrForbidden
	}
	if days < 1 {
		days = usage.DefaultTrendDays
	}
	if days > usage.MaxTrendDays {
		days = usage.MaxTrendDays
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	buckets, err := s.tracker.Trends(ctx, uow, userId, days)
	if err != nil {
		return nil, err
	}

	res := &dto.TrendsResponse{UserId: userId, Days: days, Points: make([]dto.TrendPoint, len(buckets))}
	for i, b := range buckets {
		res.Points[i] = dto.TrendPoint{
			Date:                 b.Date,
			TranscriptsProcessed: b.TranscriptsProcessed,
			DocumentsGenerated:   b.DocumentsGenerated,
		}
	}
	return res, nil
}

// AllUsers returns stats for every account, ordered by email.
func (s *analyticsService) AllUsers(ctx context.Context) ([]dto.UsageStatsResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	users, err := uow.UserRepository().FindAll(ctx, specification.OrderBy{Field: "email"})
	if err != nil {
		return nil, err
	}

	res := make([]dto.UsageStatsResponse, 0, len(users))
	for _, u := range users {
		stats, err := s.tracker.Stats(ctx, uow, u)
		if err != nil {
			return nil, err
		}
		res = append(res, dto.NewUsageStatsResponse(stats))
	}
	return res, nil
}
