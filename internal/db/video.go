package db

import (
	"context"
	"fmt"

	"github.com/wfedor/telecast/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// VideoRepository handles database operations for the authored fallback
// playlists. Live-fetched playlists never touch the database; they live in
// the in-process cache only.
type VideoRepository struct {
	db *DB
}

// NewVideoRepository creates a new video repository
func NewVideoRepository(db *DB) *VideoRepository {
	return &VideoRepository{db: db}
}

// Create inserts a new video into the database
func (r *VideoRepository) Create(ctx context.Context, video *models.Video) error {
	result := r.db.WithContext(ctx).Create(video)
	if result.Error != nil {
		return fmt.Errorf("failed to create video: %w", MapGormError(result.Error))
	}
	return nil
}

// GetByChannelID retrieves a channel's authored playlist ordered by position
func (r *VideoRepository) GetByChannelID(ctx context.Context, channelID string) ([]*models.Video, error) {
	var videos []*models.Video
	result := r.db.WithContext(ctx).
		Where("channel_id = ?", channelID).
		Order("position ASC").
		Find(&videos)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to get videos by channel: %w", MapGormError(result.Error))
	}
	return videos, nil
}

// ReplacePlaylist atomically replaces a channel's authored playlist.
// Positions are assigned from the slice order.
func (r *VideoRepository) ReplacePlaylist(ctx context.Context, channelID string, videos []*models.Video) error {
	err := r.db.WithTransaction(ctx, func(tx *gorm.DB) error {
		if err := tx.Where("channel_id = ?", channelID).Delete(&models.Video{}).Error; err != nil {
			return fmt.Errorf("failed to clear playlist: %w", err)
		}
		for i, v := range videos {
			v.ChannelID = channelID
			v.Position = i
		}
		if len(videos) == 0 {
			return nil
		}
		if err := tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(&videos).Error; err != nil {
			return fmt.Errorf("failed to insert playlist: %w", err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to replace playlist: %w", err)
	}
	return nil
}
