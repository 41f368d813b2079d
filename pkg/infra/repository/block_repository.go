package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/aegisops/actiongate/pkg/domain/block"
)

type blockRepository struct {
	db *gorm.DB
}

func NewBlockRepository(db *gorm.DB) block.Repository {
	return &blockRepository{
		db: db,
	}
}

func (r *blockRepository) Find(ctx context.Context, key block.SubjectKey) (*block.Entry, error) {
	entity := new(block.Entry)
	err := r.db.WithContext(ctx).
		Where("subject_key = ?", key.String()).
		First(entity).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find block entry: %w", err)
	}
	return entity, nil
}

// Upsert races are settled by the unique index on subject_key. The xmax
// system column is zero only for freshly inserted rows, which is how a
// single round trip can report created vs refreshed.
func (r *blockRepository) Upsert(ctx context.Context, entry *block.Entry) (bool, error) {
	if err := entry.Validate(); err != nil {
		return false, err
	}
	var created bool
	err := r.db.WithContext(ctx).Raw(
		`INSERT INTO public.blocked_subjects (id, subject_key, reason, blocked_by, blocked_at, blocked_until)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT (subject_key) DO UPDATE SET
		   reason = EXCLUDED.reason,
		   blocked_by = EXCLUDED.blocked_by,
		   blocked_at = EXCLUDED.blocked_at,
		   blocked_until = EXCLUDED.blocked_until
		 RETURNING (xmax = 0)`,
		entry.ID, entry.SubjectKey, entry.Reason, entry.BlockedBy, entry.BlockedAt, entry.BlockedUntil,
	).Scan(&created).Error
	if err != nil {
		return false, fmt.Errorf("failed to upsert block entry: %w", err)
	}
	return created, nil
}

func (r *blockRepository) DeleteIfExists(ctx context.Context, key block.SubjectKey) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("subject_key = ?", key.String()).
		Delete(&block.Entry{})
	if result.Error != nil {
		return false, fmt.Errorf("failed to delete block entry: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (r *blockRepository) ListActive(ctx context.Context, now time.Time) ([]block.Entry, error) {
	var entries []block.Entry
	err := r.db.WithContext(ctx).
		Where("blocked_until IS NULL OR blocked_until > ?", now).
		Order("blocked_at DESC").
		Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list block entries: %w", err)
	}
	return entries, nil
}
