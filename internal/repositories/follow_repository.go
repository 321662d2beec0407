package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/shady-cj/social-media-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// FollowRepository defines the interface for follow-edge data operations
type FollowRepository interface {
	UpsertFollow(ctx context.Context, follow *models.Follow) (bool, error)
	DeleteFollow(ctx context.Context, followedID, followerID uuid.UUID) (int64, error)
	IsFollowing(ctx context.Context, followerID, followedID uuid.UUID) (bool, error)
	GetFollowers(ctx context.Context, identityID uuid.UUID) ([]models.Profile, error)
	GetFollowing(ctx context.Context, identityID uuid.UUID) ([]models.Profile, error)
	GetMutualFollowers(ctx context.Context, identityID uuid.UUID) ([]models.Profile, error)
	GetFollowersCount(ctx context.Context, identityID uuid.UUID) (int64, error)
	GetFollowingCount(ctx context.Context, identityID uuid.UUID) (int64, error)
	ListFollows(ctx context.Context, filter models.FollowFilter) ([]models.Follow, error)
}

// PostgresFollowRepository implements FollowRepository for PostgreSQL
type PostgresFollowRepository struct {
	db *gorm.DB
}

// NewPostgresFollowRepository creates a new PostgresFollowRepository
func NewPostgresFollowRepository(db *gorm.DB) *PostgresFollowRepository {
	return &PostgresFollowRepository{db: db}
}

// UpsertFollow inserts the edge with ON CONFLICT DO NOTHING against the
// (followed_id, follower_id) unique index. Returns whether a row was
// actually created, so a repeat follow is a clean no-op even when two
// requests race.
func (r *PostgresFollowRepository) UpsertFollow(ctx context.Context, follow *models.Follow) (bool, error) {
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "followed_id"}, {Name: "follower_id"}},
			DoNothing: true,
		}).
		Create(follow)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *PostgresFollowRepository) DeleteFollow(ctx context.Context, followedID, followerID uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("followed_id = ? AND follower_id = ?", followedID, followerID).
		Delete(&models.Follow{})
	return res.RowsAffected, res.Error
}

func (r *PostgresFollowRepository) IsFollowing(ctx context.Context, followerID, followedID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Follow{}).
		Where("followed_id = ? AND follower_id = ?", followedID, followerID).
		Count(&count).Error
	return count > 0, err
}

// GetFollowers retrieves the profiles following the given identity, most
// recent follow first.
func (r *PostgresFollowRepository) GetFollowers(ctx context.Context, identityID uuid.UUID) ([]models.Profile, error) {
	var profiles []models.Profile
	err := r.db.WithContext(ctx).Model(&models.Profile{}).
		Joins("JOIN follows ON follows.follower_id = profiles.identity_id").
		Where("follows.followed_id = ?", identityID).
		Order("follows.created_at DESC").
		Find(&profiles).Error
	return profiles, err
}

// GetFollowing retrieves the profiles the given identity follows, most
// recent follow first.
func (r *PostgresFollowRepository) GetFollowing(ctx context.Context, identityID uuid.UUID) ([]models.Profile, error) {
	var profiles []models.Profile
	err := r.db.WithContext(ctx).Model(&models.Profile{}).
		Joins("JOIN follows ON follows.followed_id = profiles.identity_id").
		Where("follows.follower_id = ?", identityID).
		Order("follows.created_at DESC").
		Find(&profiles).Error
	return profiles, err
}

// GetMutualFollowers intersects the follower and following sets in a single
// query over the two-direction follow indexes, instead of a round trip per
// candidate.
func (r *PostgresFollowRepository) GetMutualFollowers(ctx context.Context, identityID uuid.UUID) ([]models.Profile, error) {
	var profiles []models.Profile
	err := r.db.WithContext(ctx).Model(&models.Profile{}).
		Where("identity_id IN (?)", r.db.Model(&models.Follow{}).Select("follower_id").Where("followed_id = ?", identityID)).
		Where("identity_id IN (?)", r.db.Model(&models.Follow{}).Select("followed_id").Where("follower_id = ?", identityID)).
		Find(&profiles).Error
	return profiles, err
}

func (r *PostgresFollowRepository) GetFollowersCount(ctx context.Context, identityID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Follow{}).Where("followed_id = ?", identityID).Count(&count).Error
	return count, err
}

func (r *PostgresFollowRepository) GetFollowingCount(ctx context.Context, identityID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Follow{}).Where("follower_id = ?", identityID).Count(&count).Error
	return count, err
}

// ListFollows retrieves follow edges matching the filter, newest first.
func (r *PostgresFollowRepository) ListFollows(ctx context.Context, filter models.FollowFilter) ([]models.Follow, error) {
	q := r.db.WithContext(ctx).Model(&models.Follow{})
	if filter.FollowedUsername != "" {
		q = q.Where("followed_id IN (?)", r.db.Model(&models.Identity{}).Select("id").Where("username = ?", filter.FollowedUsername))
	}
	if filter.FollowerUsername != "" {
		q = q.Where("follower_id IN (?)", r.db.Model(&models.Identity{}).Select("id").Where("username = ?", filter.FollowerUsername))
	}

	var follows []models.Follow
	if err := q.Order("created_at DESC").Find(&follows).Error; err != nil {
		return nil, err
	}
	return follows, nil
}
