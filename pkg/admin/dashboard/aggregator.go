package dashboard

import (
	"context"
	"strings"

	"funeral-docs-be/internal/dto"
	"funeral-docs-be/internal/entity"
	"funeral-docs-be/internal/pkg/logger"
	"funeral-docs-be/internal/repository/specification"
	"funeral-docs-be/internal/repository/unitofwork"
)

const defaultLogLimit = 50

// Aggregator answers the admin dashboard queries
type Aggregator struct {
	logger logger.ILogger
}

func NewAggregator(logger logger.ILogger) *Aggregator {
	return &Aggregator{
		logger: logger,
	}
}

// GetOverview counts records across all users.
func (a *Aggregator) GetOverview(ctx context.Context, uow unitofwork.UnitOfWork) (*dto.AdminOverviewResponse, error) {
	var res dto.AdminOverviewResponse
	var err error

	if res.TotalUsers, err = uow.UserRepository().Count(ctx); err != nil {
		return nil, err
	}
	if res.TotalTranscripts, err = uow.TranscriptRepository().Count(ctx); err != nil {
		return nil, err
	}
	if res.FailedTranscripts, err = uow.TranscriptRepository().Count(ctx,
		specification.ByStatus{Status: string(entity.TranscriptStatusError)}); err != nil {
		return nil, err
	}
	if res.TotalArrangements, err = uow.ArrangementRepository().Count(ctx); err != nil {
		return nil, err
	}
	if res.ApprovedArrangements, err = uow.ArrangementRepository().Count(ctx,
		specification.ByApprovalStatus{Status: string(entity.ApprovalApproved)}); err != nil {
		return nil, err
	}
	if res.TotalDocuments, err = uow.DocumentRepository().Count(ctx); err != nil {
		return nil, err
	}
	return &res, nil
}

// GetSystemLogs pages through the application log file, newest first
func (a *Aggregator) GetSystemLogs(ctx context.Context, req dto.LogListRequest) ([]dto.LogResponse, error) {
	page, limit := req.Page, req.Limit
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultLogLimit
	}

	logs, err := a.logger.GetLogs(strings.ToUpper(req.Level), limit, (page-1)*limit)
	if err != nil {
		return nil, err
	}

	res := make([]dto.LogResponse, 0, len(logs))
	for _, l := range logs {
		res = append(res, dto.LogResponse{
			Id:        l.Id,
			Level:     l.Level,
			Module:    l.Module,
			Message:   l.Message,
			Details:   l.Details,
			Timestamp: l.Timestamp,
		})
	}
	return res, nil
}
