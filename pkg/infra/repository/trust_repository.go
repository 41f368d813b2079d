package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/aegisops/actiongate/pkg/domain/trust"
)

type trustRepository struct {
	db *gorm.DB
}

func NewTrustRepository(db *gorm.DB) trust.Repository {
	return &trustRepository{
		db: db,
	}
}

func (r *trustRepository) Find(ctx context.Context, principal, address string) (*trust.Entry, error) {
	entity := new(trust.Entry)
	err := r.db.WithContext(ctx).
		Where("principal = ? AND address = ?", principal, address).
		First(entity).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find trusted pair: %w", err)
	}
	return entity, nil
}

func (r *trustRepository) ListByPrincipal(ctx context.Context, principal string) ([]trust.Entry, error) {
	var entries []trust.Entry
	err := r.db.WithContext(ctx).
		Where("principal = ?", principal).
		Order("added_at DESC").
		Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list trusted pairs: %w", err)
	}
	return entries, nil
}

func (r *trustRepository) List(ctx context.Context) ([]trust.Entry, error) {
	var entries []trust.Entry
	err := r.db.WithContext(ctx).
		Order("added_at DESC").
		Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list trusted pairs: %w", err)
	}
	return entries, nil
}

// Save replaces the policy fields when the pair already exists, so
// re-registering a pair updates its window and quotas in place.
func (r *trustRepository) Save(ctx context.Context, entry *trust.Entry) error {
	if err := entry.Validate(); err != nil {
		return err
	}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "principal"}, {Name: "address"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"allowed_from", "allowed_to",
				"max_logins_per_window", "max_uploads_per_window", "max_role_changes_per_window",
				"quota_window_seconds",
			}),
		}).
		Create(entry).Error
	if err != nil {
		return fmt.Errorf("failed to save trusted pair: %w", err)
	}
	return nil
}

func (r *trustRepository) Delete(ctx context.Context, principal, address string) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("principal = ? AND address = ?", principal, address).
		Delete(&trust.Entry{})
	if result.Error != nil {
		return false, fmt.Errorf("failed to delete trusted pair: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}
