package mapper

import (
	"funeral-docs-be/internal/entity"
	"funeral-docs-be/internal/model"
)

type UsageMapper struct{}

func NewUsageMapper() *UsageMapper {
	return &UsageMapper{}
}

func (m *UsageMapper) MetricToEntity(u *model.UsageMetric) *entity.UsageMetric {
	if u == nil {
		return nil
	}
	return &entity.UsageMetric{
		Id:          u.Id,
		UserId:      u.UserId,
		MetricType:  entity.MetricType(u.MetricType),
		ResourceId:  u.ResourceId,
		Count:       u.Count,
		PeriodStart: u.PeriodStart,
		CreatedAt:   u.CreatedAt,
	}
}

func (m *UsageMapper) MetricToModel(u *entity.UsageMetric) *model.UsageMetric {
	if u == nil {
		return nil
	}
	return &model.UsageMetric{
		Id:          u.Id,
		UserId:      u.UserId,
		MetricType:  string(u.MetricType),
		ResourceId:  u.ResourceId,
		Count:       u.Count,
		PeriodStart: u.PeriodStart,
		CreatedAt:   u.CreatedAt,
	}
}

func (m *UsageMapper) PeriodToEntity(b *model.BillingPeriod) *entity.BillingPeriod {
	if b == nil {
		return nil
	}
	return &entity.BillingPeriod{
		Id:                   b.Id,
		UserId:               b.UserId,
		Role:                 entity.UserRole(b.Role),
		NewRole:              entity.UserRole(b.NewRole),
		PeriodStart:          b.PeriodStart,
		PeriodEnd:            b.PeriodEnd,
		TranscriptsProcessed: b.TranscriptsProcessed,
		DocumentsGenerated:   b.DocumentsGenerated,
		CreatedAt:            b.CreatedAt,
	}
}

func (m *UsageMapper) PeriodToModel(b *entity.BillingPeriod) *model.BillingPeriod {
	if b == nil {
		return nil
	}
	return &model.BillingPeriod{
		Id:                   b.Id,
		UserId:               b.UserId,
		Role:                 string(b.Role),
		NewRole:              string(b.NewRole),
		PeriodStart:          b.PeriodStart,
		PeriodEnd:            b.PeriodEnd,
		TranscriptsProcessed: b.TranscriptsProcessed,
		DocumentsGenerated:   b.DocumentsGenerated,
		CreatedAt:            b.CreatedAt,
	}
}
