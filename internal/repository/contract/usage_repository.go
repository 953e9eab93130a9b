package contract

import (
	"context"
	"time"

	"funeral-docs-be/internal/entity"
	"funeral-docs-be/internal/repository/specification"

	"github.com/google/uuid"
)

type UsageRepository interface {
	CreateMetric(ctx context.Context, metric *entity.UsageMetric) error
	// SumMetrics adds up Count over the matching rows.
	SumMetrics(ctx context.Context, specs ...specification.Specification) (int, error)
	// RecordedResources returns the resource ids that already have a metric of the given type.
	RecordedResources(ctx context.Context, metricType entity.MetricType) (map[uuid.UUID]bool, error)
	DailySums(ctx context.Context, userId uuid.UUID, since time.Time) ([]entity.DailyUsage, error)

	CreateBillingPeriod(ctx context.Context, period *entity.BillingPeriod) error
	FindBillingPeriods(ctx context.Context, specs ...specification.Specification) ([]*entity.BillingPeriod, error)
}
