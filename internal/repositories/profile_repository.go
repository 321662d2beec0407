package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/shady-cj/social-media-api/internal/models"
	"gorm.io/gorm"
)

// ProfileRepository defines the interface for profile data operations
type ProfileRepository interface {
	CreateProfile(ctx context.Context, profile *models.Profile) error
	GetProfileByID(ctx context.Context, id uuid.UUID) (*models.Profile, error)
	GetProfileByIdentityID(ctx context.Context, identityID uuid.UUID) (*models.Profile, error)
	GetProfileByUsername(ctx context.Context, username string) (*models.Profile, error)
	UpdateProfile(ctx context.Context, profile *models.Profile) error
	ListProfiles(ctx context.Context, filter models.ProfileFilter) ([]models.Profile, error)
}

// PostgresProfileRepository implements ProfileRepository for PostgreSQL
type PostgresProfileRepository struct {
	db *gorm.DB
}

// NewPostgresProfileRepository creates a new PostgresProfileRepository
func NewPostgresProfileRepository(db *gorm.DB) *PostgresProfileRepository {
	return &PostgresProfileRepository{db: db}
}

func (r *PostgresProfileRepository) CreateProfile(ctx context.Context, profile *models.Profile) error {
	return r.db.WithContext(ctx).Create(profile).Error
}

func (r *PostgresProfileRepository) GetProfileByID(ctx context.Context, id uuid.UUID) (*models.Profile, error) {
	var profile models.Profile
	if err := r.db.WithContext(ctx).First(&profile, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *PostgresProfileRepository) GetProfileByIdentityID(ctx context.Context, identityID uuid.UUID) (*models.Profile, error) {
	var profile models.Profile
	if err := r.db.WithContext(ctx).Where("identity_id = ?", identityID).First(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *PostgresProfileRepository) GetProfileByUsername(ctx context.Context, username string) (*models.Profile, error) {
	var profile models.Profile
	err := r.db.WithContext(ctx).
		Where("identity_id = (?)", r.db.Model(&models.Identity{}).Select("id").Where("username = ?", username)).
		First(&profile).Error
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *PostgresProfileRepository) UpdateProfile(ctx context.Context, profile *models.Profile) error {
	return r.db.WithContext(ctx).Save(profile).Error
}

// ListProfiles retrieves profiles matching the filter, newest first.
// Name matches are case-insensitive.
func (r *PostgresProfileRepository) ListProfiles(ctx context.Context, filter models.ProfileFilter) ([]models.Profile, error) {
	q := r.db.WithContext(ctx).Model(&models.Profile{})
	if filter.Username != "" {
		q = q.Where("identity_id IN (?)", r.db.Model(&models.Identity{}).Select("id").Where("username = ?", filter.Username))
	}
	if filter.UsernameContains != "" {
		q = q.Where("identity_id IN (?)", r.db.Model(&models.Identity{}).Select("id").Where("LOWER(username) LIKE LOWER(?)", "%"+filter.UsernameContains+"%"))
	}
	if filter.FirstNameContains != "" {
		q = q.Where("LOWER(first_name) LIKE LOWER(?)", "%"+filter.FirstNameContains+"%")
	}
	if filter.FirstNamePrefix != "" {
		q = q.Where("LOWER(first_name) LIKE LOWER(?)", filter.FirstNamePrefix+"%")
	}
	if filter.LastNameContains != "" {
		q = q.Where("LOWER(last_name) LIKE LOWER(?)", "%"+filter.LastNameContains+"%")
	}
	if filter.LastNamePrefix != "" {
		q = q.Where("LOWER(last_name) LIKE LOWER(?)", filter.LastNamePrefix+"%")
	}

	var profiles []models.Profile
	if err := q.Order("created_at DESC").Find(&profiles).Error; err != nil {
		return nil, err
	}
	return profiles, nil
}
