package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/shady-cj/social-media-api/internal/models"
	"gorm.io/gorm"
)

// InteractionRepository defines the interface for interaction data operations
type InteractionRepository interface {
	CreateInteraction(ctx context.Context, interaction *models.Interaction) error
	DeleteInteraction(ctx context.Context, userID, postID uuid.UUID, interactionType string) (int64, error)
	HasUserLikedPost(ctx context.Context, userID, postID uuid.UUID) (bool, error)
	GetLikesCountByPostID(ctx context.Context, postID uuid.UUID) (int64, error)
	ListInteractions(ctx context.Context, filter models.InteractionFilter) ([]models.Interaction, error)
}

// PostgresInteractionRepository implements InteractionRepository for PostgreSQL
type PostgresInteractionRepository struct {
	db *gorm.DB
}

// NewPostgresInteractionRepository creates a new PostgresInteractionRepository
func NewPostgresInteractionRepository(db *gorm.DB) *PostgresInteractionRepository {
	return &PostgresInteractionRepository{db: db}
}

func (r *PostgresInteractionRepository) CreateInteraction(ctx context.Context, interaction *models.Interaction) error {
	return r.db.WithContext(ctx).Create(interaction).Error
}

// DeleteInteraction removes matching interactions and reports how many rows
// went away, so the caller can distinguish "nothing to delete".
func (r *PostgresInteractionRepository) DeleteInteraction(ctx context.Context, userID, postID uuid.UUID, interactionType string) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND post_id = ? AND type = ?", userID, postID, interactionType).
		Delete(&models.Interaction{})
	return res.RowsAffected, res.Error
}

func (r *PostgresInteractionRepository) HasUserLikedPost(ctx context.Context, userID, postID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Interaction{}).
		Where("user_id = ? AND post_id = ? AND type = ?", userID, postID, models.InteractionLike).
		Count(&count).Error
	return count > 0, err
}

// GetLikesCountByPostID counts LIKE interactions on read; the count is never
// denormalized onto the post row.
func (r *PostgresInteractionRepository) GetLikesCountByPostID(ctx context.Context, postID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Interaction{}).
		Where("post_id = ? AND type = ?", postID, models.InteractionLike).
		Count(&count).Error
	return count, err
}

// ListInteractions retrieves interactions matching the filter, newest first.
func (r *PostgresInteractionRepository) ListInteractions(ctx context.Context, filter models.InteractionFilter) ([]models.Interaction, error) {
	q := r.db.WithContext(ctx).Model(&models.Interaction{})
	if filter.PostID != nil {
		q = q.Where("post_id = ?", *filter.PostID)
	}
	if filter.UserID != nil {
		q = q.Where("user_id = ?", *filter.UserID)
	}
	if filter.Username != "" {
		q = q.Where("user_id IN (?)", r.db.Model(&models.Identity{}).Select("id").Where("username = ?", filter.Username))
	}
	if filter.Type != "" {
		q = q.Where("type = ?", filter.Type)
	}
	if filter.CreatedBefore != nil {
		q = q.Where("created_at < ?", *filter.CreatedBefore)
	}
	if filter.CreatedAfter != nil {
		q = q.Where("created_at > ?", *filter.CreatedAfter)
	}

	var interactions []models.Interaction
	if err := q.Order("created_at DESC").Find(&interactions).Error; err != nil {
		return nil, err
	}
	return interactions, nil
}
