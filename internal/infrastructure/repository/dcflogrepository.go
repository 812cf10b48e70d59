package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"dcfagents/internal/domain/dcflog"
	"dcfagents/internal/infrastructure/persistence/models"
	"dcfagents/internal/shared/constants"
	sharedDB "dcfagents/internal/shared/db"
)

type DcfLogRepositoryImpl struct {
	db *gorm.DB
}

func NewDcfLogRepository(db *gorm.DB) dcflog.Repository {
	return &DcfLogRepositoryImpl{db: db}
}

func (r *DcfLogRepositoryImpl) conn(ctx context.Context) *gorm.DB {
	return sharedDB.GetTxFromContext(ctx, r.db)
}

func (r *DcfLogRepositoryImpl) Create(ctx context.Context, entry *dcflog.Entry) error {
	model := &models.DcfLogModel{
		CreatedAt:        entry.CreatedAt(),
		Username:         entry.Username(),
		CompanyName:      entry.CompanyName(),
		Description:      entry.Description(),
		ValidationStatus: entry.ValidationStatus(),
	}

	if err := r.conn(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create dcf log entry: %w", err)
	}

	return entry.SetID(model.ID)
}

func (r *DcfLogRepositoryImpl) List(ctx context.Context, filter dcflog.Filter) ([]*dcflog.Entry, int64, error) {
	query := r.conn(ctx).Model(&models.DcfLogModel{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count dcf log entries: %w", err)
	}

	page := filter.Page
	if page < 1 {
		page = constants.DefaultPage
	}
	pageSize := filter.PageSize
	if pageSize < 1 {
		pageSize = constants.DefaultPageSize
	}
	if pageSize > constants.MaxPageSize {
		pageSize = constants.MaxPageSize
	}

	var logModels []*models.DcfLogModel
	err := query.Offset((page - 1) * pageSize).Limit(pageSize).
		Order("created_at DESC").
		Find(&logModels).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list dcf log entries: %w", err)
	}

	entries := make([]*dcflog.Entry, 0, len(logModels))
	for _, model := range logModels {
		entry, err := dcflog.ReconstructEntry(
			model.ID,
			model.CreatedAt,
			model.Username,
			model.CompanyName,
			model.Description,
			model.ValidationStatus,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to reconstruct dcf log entry: %w", err)
		}
		entries = append(entries, entry)
	}

	return entries, total, nil
}

func (r *DcfLogRepositoryImpl) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.conn(ctx).Model(&models.DcfLogModel{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count dcf log entries: %w", err)
	}
	return count, nil
}

func (r *DcfLogRepositoryImpl) CountByValidationStatusContaining(ctx context.Context, marker string) (int64, error) {
	var count int64
	err := r.conn(ctx).Model(&models.DcfLogModel{}).
		Where("LOWER(validation_status) LIKE LOWER(?)", "%"+marker+"%").
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count validated dcf log entries: %w", err)
	}
	return count, nil
}

func (r *DcfLogRepositoryImpl) CountDistinctCompanyNames(ctx context.Context) (int64, error) {
	var count int64
	err := r.conn(ctx).Model(&models.DcfLogModel{}).
		Distinct("company_name").
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count distinct companies: %w", err)
	}
	return count, nil
}
