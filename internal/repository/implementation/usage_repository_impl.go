package implementation

import (
	"context"
	"time"

	"funeral-docs-be/internal/entity"
	"funeral-docs-be/internal/mapper"
	"funeral-docs-be/internal/model"
	"funeral-docs-be/internal/repository/contract"
	"funeral-docs-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UsageRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.UsageMapper
}

func NewUsageRepository(db *gorm.DB) contract.UsageRepository {
	return &UsageRepositoryImpl{
		db:     db,
		mapper: mapper.NewUsageMapper(),
	}
}

func (r *UsageRepositoryImpl) CreateMetric(ctx context.Context, metric *entity.UsageMetric) error {
	m := r.mapper.MetricToModel(metric)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*metric = *r.mapper.MetricToEntity(m)
	return nil
}

func (r *UsageRepositoryImpl) SumMetrics(ctx context.Context, specs ...specification.Specification) (int, error) {
	var total int64
	query := applySpecifications(r.db.WithContext(ctx).Model(&model.UsageMetric{}), specs...)
	if err := query.Select("COALESCE(SUM(count), 0)").Scan(&total).Error; err != nil {
		return 0, err
	}
	return int(total), nil
}

func (r *UsageRepositoryImpl) RecordedResources(ctx context.Context, metricType entity.MetricType) (map[uuid.UUID]bool, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).Model(&model.UsageMetric{}).
		Where("metric_type = ? AND resource_id IS NOT NULL", string(metricType)).
		Pluck("resource_id", &ids).Error
	if err != nil {
		return nil, err
	}
	seen := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		seen[id] = true
	}
	return seen, nil
}

// DailySums buckets metrics by UTC day. Bucketing happens here so the query
// stays portable across postgres and sqlite.
func (r *UsageRepositoryImpl) DailySums(ctx context.Context, userId uuid.UUID, since time.Time) ([]entity.DailyUsage, error) {
	var rows []model.UsageMetric
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND created_at >= ?", userId, since).
		Order("created_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	var out []entity.DailyUsage
	index := map[string]int{}
	for day := since.UTC().Truncate(24 * time.Hour); !day.After(time.Now().UTC()); day = day.Add(24 * time.Hour) {
		key := day.Format("2006-01-02")
		index[key] = len(out)
		out = append(out, entity.DailyUsage{Date: key})
	}

	for _, row := range rows {
		key := row.CreatedAt.UTC().Format("2006-01-02")
		i, ok := index[key]
		if !ok {
			continue
		}
		switch entity.MetricType(row.MetricType) {
		case entity.MetricTranscriptProcessed:
			out[i].TranscriptsProcessed += row.Count
		case entity.MetricDocumentGenerated:
			out[i].DocumentsGenerated += row.Count
		}
	}
	return out, nil
}

func (r *UsageRepositoryImpl) CreateBillingPeriod(ctx context.Context, period *entity.BillingPeriod) error {
	m := r.mapper.PeriodToModel(period)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*period = *r.mapper.PeriodToEntity(m)
	return nil
}

func (r *UsageRepositoryImpl) FindBillingPeriods(ctx context.Context, specs ...specification.Specification) ([]*entity.BillingPeriod, error) {
	var models []*model.BillingPeriod
	if err := applySpecifications(r.db.WithContext(ctx), specs...).Find(&models).Error; err != nil {
		return nil, err
	}
	out := make([]*entity.BillingPeriod, len(models))
	for i, m := range models {
		out[i] = r.mapper.PeriodToEntity(m)
	}
	return out, nil
}
