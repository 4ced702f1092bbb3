package db

import (
	"context"
	"fmt"

	"github.com/wfedor/telecast/internal/models"
)

// ProgramBlockRepository handles database operations for scheduled
// programming blocks
type ProgramBlockRepository struct {
	db *DB
}

// NewProgramBlockRepository creates a new program block repository
func NewProgramBlockRepository(db *DB) *ProgramBlockRepository {
	return &ProgramBlockRepository{db: db}
}

// Create inserts a new program block into the database
func (r *ProgramBlockRepository) Create(ctx context.Context, block *models.ProgramBlock) error {
	result := r.db.WithContext(ctx).Create(block)
	if result.Error != nil {
		return fmt.Errorf("failed to create program block: %w", MapGormError(result.Error))
	}
	return nil
}

// GetByChannelID retrieves all program blocks for a channel ordered by
// day of week then start hour
func (r *ProgramBlockRepository) GetByChannelID(ctx context.Context, channelID string) ([]*models.ProgramBlock, error) {
	var blocks []*models.ProgramBlock
	result := r.db.WithContext(ctx).
		Where("channel_id = ?", channelID).
		Order("day_of_week ASC, start_hour ASC").
		Find(&blocks)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to get program blocks by channel: %w", MapGormError(result.Error))
	}
	return blocks, nil
}
