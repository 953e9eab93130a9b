package user

import (
	"context"
	"fmt"

	"funeral-docs-be/internal/apperror"
	"funeral-docs-be/internal/dto"
	"funeral-docs-be/internal/entity"
	"funeral-docs-be/internal/pkg/logger"
	"funeral-docs-be/internal/repository/specification"
	"funeral-docs-be/internal/repository/unitofwork"
	adminEvents "funeral-docs-be/pkg/admin/events"
	"funeral-docs-be/pkg/admin/usage"

	"github.com/google/uuid"
)

// Manager handles user-related admin operations
type Manager struct {
	logger    logger.ILogger
	publisher adminEvents.Publisher
	tracker   *usage.Tracker
}

func NewManager(logger logger.ILogger, publisher adminEvents.Publisher, tracker *usage.Tracker) *Manager {
	return &Manager{
		logger:    logger,
		publisher: publisher,
		tracker:   tracker,
	}
}

// FindAll retrieves users with pagination, search and role filter, plus
// the total matching count.
func (m *Manager) FindAll(ctx context.Context, uow unitofwork.UnitOfWork, req dto.AdminUserListRequest) ([]*entity.User, int64, error) {
	if req.Page < 1 {
		req.Page = 1
	}
	if req.Limit < 1 || req.Limit > 100 {
		req.Limit = 20
	}

	filters := []specification.Specification{specification.UserSearch{Query: req.Search}}
	if req.Role != "" {
		filters = append(filters, specification.ByRole{Role: req.Role})
	}

	total, err := uow.UserRepository().Count(ctx, filters...)
	if err != nil {
		return nil, 0, err
	}

	specs := append(filters,
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: req.Limit, Offset: (req.Page - 1) * req.Limit},
	)
	users, err := uow.UserRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

func (m *Manager) FindOne(ctx context.Context, uow unitofwork.UnitOfWork, userId uuid.UUID) (*entity.User, error) {
	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.ErrUserNotFound
	}
	return user, nil
}

// Update changes profile fields that are present in the request.
func (m *Manager) Update(ctx context.Context, uow unitofwork.UnitOfWork, userId uuid.UUID, req dto.AdminUpdateUserRequest) (*entity.User, error) {
	user, err := m.FindOne(ctx, uow, userId)
	if err != nil {
		return nil, err
	}

	if req.FullName != nil {
		user.FullName = *req.FullName
	}
	if req.FuneralHome != nil {
		user.FuneralHome = *req.FuneralHome
	}

	if err := uow.UserRepository().Update(ctx, user); err != nil {
		return nil, err
	}

	m.logger.Info("ADMIN", "Updated user", map[string]interface{}{"user_id": userId.String()})
	return user, nil
}

// ChangeRole snapshots the current billing period, switches the role and
// opens a new period starting now.
func (m *Manager) ChangeRole(ctx context.Context, uow unitofwork.UnitOfWork, userId uuid.UUID, role entity.UserRole) (*entity.User, *entity.BillingPeriod, error) {
	if !role.Valid() {
		return nil, nil, apperror.BadRequest(fmt.Sprintf("invalid role %q", role))
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, nil, err
	}
	defer uow.Rollback()

	user, err := m.FindOne(ctx, uow, userId)
	if err != nil {
		return nil, nil, err
	}
	oldRole := user.Role

	period, err := m.tracker.ClosePeriod(ctx, uow, user, role)
	if err != nil {
		return nil, nil, err
	}

	user.Role = role
	user.BillingPeriodStart = period.PeriodEnd
	if err := uow.UserRepository().UpdateRole(ctx, user.Id, role, user.BillingPeriodStart); err != nil {
		return nil, nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, nil, err
	}

	m.publisher.PublishRoleChanged(ctx, user.Id, user.Email, oldRole, role)
	m.logger.Info("ADMIN", "Changed user role", map[string]interface{}{
		"user_id":  userId.String(),
		"old_role": oldRole,
		"new_role": role,
		"period":   period.Id.String(),
	})
	return user, period, nil
}

// BillingHistory lists a user's closed periods, newest first.
func (m *Manager) BillingHistory(ctx context.Context, uow unitofwork.UnitOfWork, userId uuid.UUID) ([]*entity.BillingPeriod, error) {
	return uow.UsageRepository().FindBillingPeriods(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.OrderBy{Field: "period_end", Desc: true},
	)
}

