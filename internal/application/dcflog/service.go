// Package dcflog records DCF analysis runs. The log is append-only: entries
// are created with a server-assigned timestamp and never updated or deleted.
package dcflog

import (
	"context"

	domainDcflog "dcfagents/internal/domain/dcflog"
	"dcfagents/internal/shared/constants"
	"dcfagents/internal/shared/logger"
)

type Service struct {
	logRepo domainDcflog.Repository
	logger  logger.Interface
}

func NewService(logRepo domainDcflog.Repository, log logger.Interface) *Service {
	return &Service{
		logRepo: logRepo,
		logger:  log,
	}
}

// List returns one page of entries, newest first.
func (s *Service) List(ctx context.Context, request ListEntriesRequest) ([]*EntryResponse, int64, error) {
	filter := domainDcflog.Filter{
		Page:     request.Page,
		PageSize: request.PageSize,
	}

	entries, total, err := s.logRepo.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	return toEntryResponses(entries), total, nil
}

func (s *Service) Create(ctx context.Context, request CreateEntryRequest) (*EntryResponse, error) {
	if err := request.Validate(); err != nil {
		return nil, err
	}

	entry, err := domainDcflog.NewEntry(
		request.Username,
		request.CompanyName,
		request.Description,
		request.ValidationStatus,
	)
	if err != nil {
		return nil, err
	}

	if err := s.logRepo.Create(ctx, entry); err != nil {
		return nil, err
	}

	s.logger.Infow("dcf analysis logged",
		"entry_id", entry.ID(),
		"company", entry.CompanyName(),
		"username", entry.Username())

	return toEntryResponse(entry), nil
}

// Stats aggregates the log: total entries, entries whose validation status
// mentions the validated marker, and the number of distinct companies.
func (s *Service) Stats(ctx context.Context) (*StatsResponse, error) {
	total, err := s.logRepo.Count(ctx)
	if err != nil {
		return nil, err
	}

	validated, err := s.logRepo.CountByValidationStatusContaining(ctx, constants.ValidatedStatusMarker)
	if err != nil {
		return nil, err
	}

	companies, err := s.logRepo.CountDistinctCompanyNames(ctx)
	if err != nil {
		return nil, err
	}

	return &StatsResponse{
		TotalAnalyses:   total,
		ValidatedCount:  validated,
		UniqueCompanies: companies,
	}, nil
}
