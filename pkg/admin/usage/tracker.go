package usage

import (
	"context"
	"fmt"
	"time"

	"funeral-docs-be/internal/entity"
	"funeral-docs-be/internal/pkg/logger"
	"funeral-docs-be/internal/repository/memory"
	"funeral-docs-be/internal/repository/specification"
	"funeral-docs-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

const (
	DefaultTrendDays = 30
	MaxTrendDays     = 365
)

// ReconcileResult counts the metric rows a reconcile run backfilled.
type ReconcileResult struct {
	Transcripts int
	Documents   int
}

// Tracker records usage metrics and answers usage questions.
type Tracker struct {
	logger logger.ILogger
	cache  memory.StatsCache
	now    func() time.Time
}

func NewTracker(logger logger.ILogger, cache memory.StatsCache) *Tracker {
	return &Tracker{
		logger: logger,
		cache:  cache,
		now:    time.Now,
	}
}

// Record appends one metric row for a transcript or document and drops the
// owner's cached stats.
func (t *Tracker) Record(ctx context.Context, uow unitofwork.UnitOfWork, userId uuid.UUID, metricType entity.MetricType, resourceId uuid.UUID) error {
	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return err
	}

	periodStart := t.now()
	if user != nil {
		periodStart = user.BillingPeriodStart
	}

	id := resourceId
	metric := &entity.UsageMetric{
		UserId:      userId,
		MetricType:  metricType,
		ResourceId:  &id,
		Count:       1,
		PeriodStart: periodStart,
	}
	if err := uow.UsageRepository().CreateMetric(ctx, metric); err != nil {
		return fmt.Errorf("record %s: %w", metricType, err)
	}

	t.cache.Invalidate(ctx, userId)
	return nil
}

// Reconcile backfills metrics for processed transcripts and generated
// documents that have none. Rows are keyed by resource id, so a second run
// finds nothing to do.
func (t *Tracker) Reconcile(ctx context.Context, uow unitofwork.UnitOfWork) (*ReconcileResult, error) {
	result := &ReconcileResult{}

	recordedTranscripts, err := uow.UsageRepository().RecordedResources(ctx, entity.MetricTranscriptProcessed)
	if err != nil {
		return nil, err
	}
	transcripts, err := uow.TranscriptRepository().FindAll(ctx, specification.ByStatus{Status: string(entity.TranscriptStatusProcessed)})
	if err != nil {
		return nil, err
	}

	owners := map[uuid.UUID]uuid.UUID{} // transcript -> user
	for _, tr := range transcripts {
		owners[tr.Id] = tr.UserId
		if recordedTranscripts[tr.Id] {
			continue
		}
		if err := t.Record(ctx, uow, tr.UserId, entity.MetricTranscriptProcessed, tr.Id); err != nil {
			return nil, err
		}
		result.Transcripts++
	}

	recordedDocuments, err := uow.UsageRepository().RecordedResources(ctx, entity.MetricDocumentGenerated)
	if err != nil {
		return nil, err
	}
	documents, err := uow.DocumentRepository().FindAll(ctx, specification.ByStatus{Status: string(entity.DocumentStatusGenerated)})
	if err != nil {
		return nil, err
	}

	arrangementOwner := map[uuid.UUID]uuid.UUID{}
	for _, doc := range documents {
		if recordedDocuments[doc.Id] {
			continue
		}

		userId, ok := arrangementOwner[doc.ArrangementId]
		if !ok {
			userId, err = t.ownerOfArrangement(ctx, uow, doc.ArrangementId, owners)
			if err != nil {
				return nil, err
			}
			arrangementOwner[doc.ArrangementId] = userId
		}
		if userId == uuid.Nil {
			continue
		}

		if err := t.Record(ctx, uow, userId, entity.MetricDocumentGenerated, doc.Id); err != nil {
			return nil, err
		}
		result.Documents++
	}

	t.logger.Info("USAGE", "Reconciled usage metrics", map[string]interface{}{
		"transcripts": result.Transcripts,
		"documents":   result.Documents,
	})
	return result, nil
}

func (t *Tracker) ownerOfArrangement(ctx context.Context, uow unitofwork.UnitOfWork, arrangementId uuid.UUID, owners map[uuid.UUID]uuid.UUID) (uuid.UUID, error) {
	arrangement, err := uow.ArrangementRepository().FindOne(ctx, specification.ByID{ID: arrangementId})
	if err != nil || arrangement == nil {
		return uuid.Nil, err
	}
	if userId, ok := owners[arrangement.TranscriptId]; ok {
		return userId, nil
	}

	transcript, err := uow.TranscriptRepository().FindOne(ctx, specification.ByID{ID: arrangement.TranscriptId})
	if err != nil || transcript == nil {
		return uuid.Nil, err
	}
	owners[transcript.Id] = transcript.UserId
	return transcript.UserId, nil
}

// Stats returns the user's current period and lifetime usage.
func (t *Tracker) Stats(ctx context.Context, uow unitofwork.UnitOfWork, user *entity.User) (*entity.UsageStats, error) {
	if cached, ok := t.cache.Get(ctx, user.Id); ok && cached.PeriodStart.Equal(user.BillingPeriodStart) {
		return cached, nil
	}

	stats := &entity.UsageStats{
		UserId:      user.Id,
		Email:       user.Email,
		FullName:    user.FullName,
		Role:        user.Role,
		PeriodStart: user.BillingPeriodStart,
	}

	sum := func(metricType entity.MetricType, inPeriod bool) (int, error) {
		specs := []specification.Specification{
			specification.UserOwnedBy{UserID: user.Id},
			specification.ByMetricType{Type: string(metricType)},
		}
		if inPeriod {
			specs = append(specs, specification.InPeriod{Start: user.BillingPeriodStart})
		}
		return uow.UsageRepository().SumMetrics(ctx, specs...)
	}

	var err error
	if stats.TranscriptsProcessed, err = sum(entity.MetricTranscriptProcessed, true); err != nil {
		return nil, err
	}
	if stats.DocumentsGenerated, err = sum(entity.MetricDocumentGenerated, true); err != nil {
		return nil, err
	}
	if stats.TotalTranscripts, err = sum(entity.MetricTranscriptProcessed, false); err != nil {
		return nil, err
	}
	if stats.TotalDocuments, err = sum(entity.MetricDocumentGenerated, false); err != nil {
		return nil, err
	}

	arrangements, err := uow.ArrangementRepository().CountForUser(ctx, user.Id)
	if err != nil {
		return nil, err
	}
	approved, err := uow.ArrangementRepository().CountForUser(ctx, user.Id,
		specification.ByApprovalStatus{Status: string(entity.ApprovalApproved)})
	if err != nil {
		return nil, err
	}
	stats.Arrangements = int(arrangements)
	stats.Approved = int(approved)

	t.cache.Set(ctx, stats)
	return stats, nil
}

// Trends returns one bucket per day for the last days days, today included.
func (t *Tracker) Trends(ctx context.Context, uow unitofwork.UnitOfWork, userId uuid.UUID, days int) ([]entity.DailyUsage, error) {
	if days < 1 {
		days = DefaultTrendDays
	}
	if days > MaxTrendDays {
		days = MaxTrendDays
	}
	since := t.now().UTC().Truncate(24*time.Hour).AddDate(0, 0, -(days - 1))
	return uow.UsageRepository().DailySums(ctx, userId, since)
}

// ClosePeriod snapshots the user's current period into a BillingPeriod row
// ending now. The caller opens the next period.
func (t *Tracker) ClosePeriod(ctx context.Context, uow unitofwork.UnitOfWork, user *entity.User, newRole entity.UserRole) (*entity.BillingPeriod, error) {
	stats, err := t.Stats(ctx, uow, user)
	if err != nil {
		return nil, err
	}

	period := &entity.BillingPeriod{
		UserId:               user.Id,
		Role:                 user.Role,
		NewRole:              newRole,
		PeriodStart:          user.BillingPeriodStart,
		PeriodEnd:            t.now(),
		TranscriptsProcessed: stats.TranscriptsProcessed,
		DocumentsGenerated:   stats.DocumentsGenerated,
	}
	if err := uow.UsageRepository().CreateBillingPeriod(ctx, period); err != nil {
		return nil, err
	}

	t.cache.Invalidate(ctx, user.Id)
	return period, nil
}
