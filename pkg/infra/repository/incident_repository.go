package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/aegisops/actiongate/pkg/domain/incident"
)

const defaultIncidentListLimit = 100

type incidentRepository struct {
	db *gorm.DB
}

func NewIncidentRepository(db *gorm.DB) incident.Repository {
	return &incidentRepository{
		db: db,
	}
}

func (r *incidentRepository) Append(ctx context.Context, record *incident.Record) error {
	if err := r.db.WithContext(ctx).Create(record).Error; err != nil {
		return fmt.Errorf("failed to append incident: %w", err)
	}
	return nil
}

func (r *incidentRepository) List(ctx context.Context, filter incident.Filter) ([]incident.Record, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = defaultIncidentListLimit
	}

	query := r.db.WithContext(ctx).Model(&incident.Record{})
	if filter.Principal != "" {
		query = query.Where("principal = ?", filter.Principal)
	}
	if filter.Kind != "" {
		query = query.Where("kind = ?", filter.Kind)
	}

	var records []incident.Record
	err := query.Order("created_at DESC").Limit(limit).Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list incidents: %w", err)
	}
	return records, nil
}

func (r *incidentRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("created_at < ?", cutoff).
		Delete(&incident.Record{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to prune incidents: %w", result.Error)
	}
	return result.RowsAffected, nil
}
