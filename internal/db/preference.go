package db

import (
	"context"
	"fmt"

	"github.com/wfedor/telecast/internal/models"
	"gorm.io/gorm/clause"
)

// PreferenceRepository is the local durable store for the preference log.
// One row per video; recording the same video again overwrites the row.
type PreferenceRepository struct {
	db *DB
}

// NewPreferenceRepository creates a new preference repository
func NewPreferenceRepository(db *DB) *PreferenceRepository {
	return &PreferenceRepository{db: db}
}

// Upsert inserts or overwrites the preference for a video
func (r *PreferenceRepository) Upsert(ctx context.Context, pref *models.Preference) error {
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "video_id"}},
			UpdateAll: true,
		}).
		Create(pref)
	if result.Error != nil {
		return fmt.Errorf("failed to upsert preference: %w", MapGormError(result.Error))
	}
	return nil
}

// Delete removes the preference for a video
func (r *PreferenceRepository) Delete(ctx context.Context, videoID string) error {
	result := r.db.WithContext(ctx).Where("video_id = ?", videoID).Delete(&models.Preference{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete preference: %w", MapGormError(result.Error))
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// List retrieves the full preference log ordered by most recent first
func (r *PreferenceRepository) List(ctx context.Context) ([]*models.Preference, error) {
	var prefs []*models.Preference
	result := r.db.WithContext(ctx).Order("updated_at DESC").Find(&prefs)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to list preferences: %w", MapGormError(result.Error))
	}
	return prefs, nil
}
