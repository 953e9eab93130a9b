package service

import (
	"context"

	"funeral-docs-be/internal/dto"
	"funeral-docs-be/internal/entity"
	"funeral-docs-be/internal/pkg/logger"
	"funeral-docs-be/internal/repository/unitofwork"
	"funeral-docs-be/pkg/admin/dashboard"
	"funeral-docs-be/pkg/admin/usage"
	"funeral-docs-be/pkg/admin/user"

	"github.com/google/uuid"
)

const (
	defaultUserPageSize = 20
	maxUserPageSize     = 100
)

type IAdminService interface {
	GetOverview(ctx context.Context) (*dto.AdminOverviewResponse, error)

	// User Management
	GetAllUsers(ctx context.Context, req dto.AdminUserListRequest) (*dto.UserListResponse, error)
	GetUserDetail(ctx context.Context, userId uuid.UUID) (*dto.AdminUserDetailResponse, error)
	UpdateUser(ctx context.Context, userId uuid.UUID, req dto.AdminUpdateUserRequest) (*dto.UserResponse, error)
	ChangeRole(ctx context.Context, userId uuid.UUID, req dto.ChangeRoleRequest) (*dto.ChangeRoleResponse, error)

	// Usage
	ReconcileMetrics(ctx context.Context) (*dto.ReconcileResponse, error)

	// Logs
	GetSystemLogs(ctx context.Context, req dto.LogListRequest) ([]dto.LogResponse, error)
}

type adminService struct {
	uowFactory unitofwork.RepositoryFactory
	logger     logger.ILogger

	// Domain Components
	userManager         *user.Manager
	usageTracker        *usage.Tracker
	dashboardAggregator *dashboard.Aggregator
}

func NewAdminService(
	uowFactory unitofwork.RepositoryFactory,
	logger logger.ILogger,
	userManager *user.Manager,
	usageTracker *usage.Tracker,
	dashboardAggregator *dashboard.Aggregator,
) IAdminService {
	return &adminService{
		uowFactory:          uowFactory,
		logger:              logger,
		userManager:         userManager,
		usageTracker:        usageTracker,
		dashboardAggregator: dashboardAggregator,
	}
}

func (s *adminService) GetOverview(ctx context.Context) (*dto.AdminOverviewResponse, error) {
	return s.dashboardAggregator.GetOverview(ctx, s.uowFactory.NewUnitOfWork(ctx))
}

// ============================================================================
// User Management
// ============================================================================

func (s *adminService) GetAllUsers(ctx context.Context, req dto.AdminUserListRequest) (*dto.UserListResponse, error) {
	if req.Page < 1 {
		req.Page = 1
	}
	if req.Limit < 1 {
		req.Limit = defaultUserPageSize
	}
	if req.Limit > maxUserPageSize {
		req.Limit = maxUserPageSize
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	users, total, err := s.userManager.FindAll(ctx, uow, req)
	if err != nil {
		return nil, err
	}

	res := &dto.UserListResponse{
		Users: make([]dto.UserResponse, len(users)),
		Total: total,
		Page:  req.Page,
		Limit: req.Limit,
	}
	for i, u := range users {
		res.Users[i] = dto.NewUserResponse(u)
	}
	return res, nil
}

func (s *adminService) GetUserDetail(ctx context.Context, userId uuid.UUID) (*dto.AdminUserDetailResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	u, err := s.userManager.FindOne(ctx, uow, userId)
	if err != nil {
		return nil, err
	}

	stats, err := s.usageTracker.Stats(ctx, uow, u)
	if err != nil {
		return nil, err
	}
	periods, err := s.userManager.BillingHistory(ctx, uow, userId)
	if err != nil {
		return nil, err
	}

	res := &dto.AdminUserDetailResponse{
		User:           dto.NewUserResponse(u),
		Usage:          dto.NewUsageStatsResponse(stats),
		BillingPeriods: make([]dto.BillingPeriodResponse, len(periods)),
	}
	for i, p := range periods {
		res.BillingPeriods[i] = dto.NewBillingPeriodResponse(p)
	}
	return res, nil
}

func (s *adminService) UpdateUser(ctx context.Context, userId uuid.UUID, req dto.AdminUpdateUserRequest) (*dto.UserResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	u, err := s.userManager.Update(ctx, uow, userId, req)
	if err != nil {
		return nil, err
	}
	res := dto.NewUserResponse(u)
	return &res, nil
}

func (s *adminService) ChangeRole(ctx context.Context, userId uuid.UUID, req dto.ChangeRoleRequest) (*dto.ChangeRoleResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	u, period, err := s.userManager.ChangeRole(ctx, uow, userId, entity.UserRole(req.Role))
	if err != nil {
		return nil, err
	}
	return &dto.ChangeRoleResponse{
		User:          dto.NewUserResponse(u),
		BillingPeriod: dto.NewBillingPeriodResponse(period),
	}, nil
}

// ============================================================================
// Usage
// ============================================================================

func (s *adminService) ReconcileMetrics(ctx context.Context) (*dto.ReconcileResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	result, err := s.usageTracker.Reconcile(ctx, uow)
	if err != nil {
		return nil, err
	}
	return &dto.ReconcileResponse{
		TranscriptMetricsCreated: result.Transcripts,
		DocumentMetricsCreated:   result.Documents,
	}, nil
}

// ============================================================================
// Logs
// ============================================================================

func (s *adminService) GetSystemLogs(ctx context.Context, req dto.LogListRequest) ([]dto.LogResponse, error) {
	return s.dashboardAggregator.GetSystemLogs(ctx, req)
}
