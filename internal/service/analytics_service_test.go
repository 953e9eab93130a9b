package service

import (
	"context"
	"testing"

	"funeral-docs-be/internal/apperror"
	"funeral-docs-be/internal/dto"
	"funeral-docs-be/internal/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyticsVisibility(t *testing.T) {
	f := newFixture(t)
	owner := f.user(t, "a@example.com", entity.UserRoleUser)
	other := f.user(t, "b@example.com", entity.UserRoleUser)
	admin := f.user(t, "admin@example.com", entity.UserRoleAdmin)
	svc := NewAnalyticsService(f.uowFactory, f.tracker, f.log)
	ctx := context.Background()

	tests := []struct {
		name   string
		viewer Viewer
		want   error
	}{
		{"self", Viewer{UserId: owner.Id, Role: entity.UserRoleUser}, nil},
		{"admin", Viewer{UserId: admin.Id, Role: entity.UserRoleAdmin}, nil},
		{"other user", Viewer{UserId: other.Id, Role: entity.UserRoleUser}, apperror.ErrForbidden},
		{"premium other user", Viewer{UserId: other.Id, Role: entity.UserRolePremium}, apperror.ErrForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.UserStats(ctx, tt.viewer, owner.Id)
			if tt.want == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.want)
			}
			_, err = svc.UserTrends(ctx, tt.viewer, owner.Id, 7)
			if tt.want == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.want)
			}
		})
	}
}

func TestAnalyticsCountsUsage(t *testing.T) {
	f := newFixture(t)
	owner := f.user(t, "a@example.com", entity.UserRoleUser)
	ctx := context.Background()
	_, arrangementId := f.processed(t, owner.Id)

	arrangements := NewArrangementService(f.uowFactory, f.compositor(fakeLLM{}), f.tracker, f.publisher, f.log)
	_, err := arrangements.Approve(ctx, owner.Id, arrangementId, dto.GenerationRequest{})
	require.NoError(t, err)

	svc := NewAnalyticsService(f.uowFactory, f.tracker, f.log)
	self := Viewer{UserId: owner.Id, Role: entity.UserRoleUser}

	stats, err := svc.UserStats(ctx, self, owner.Id)
	require.NoError(t, err)
	assert.Equal(t, dto.UsageCounts{TranscriptsProcessed: 1, DocumentsGenerated: 6}, stats.CurrentPeriod)
	assert.Equal(t, stats.CurrentPeriod, stats.Lifetime)
	assert.Equal(t, 1, stats.Arrangements)
	assert.Equal(t, 1, stats.Approved)

	trends, err := svc.UserTrends(ctx, self, owner.Id, 7)
	require.NoError(t, err)
	assert.Equal(t, 7, trends.Days)
	require.Len(t, trends.Points, 7)
	var transcripts, documents int
	for _, p := range trends.Points {
		transcripts += p.TranscriptsProcessed
		documents += p.DocumentsGenerated
	}
	assert.Equal(t, 1, transcripts)
	assert.Equal(t, 6, documents)

	all, err := svc.AllUsers(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, owner.Id, all[0].UserId)
}

func TestUserStatsUnknownUser(t *testing.T) {
	f := newFixture(t)
	admin := f.user(t, "admin@example.com", entity.UserRoleAdmin)
	svc := NewAnalyticsService(f.uowFactory, f.tracker, f.log)

	_, err := svc.UserStats(context.Background(), Viewer{UserId: admin.Id, Role: entity.UserRoleAdmin}, uuid.New())
	assert.ErrorIs(t, err, apperror.ErrUserNotFound)
}
