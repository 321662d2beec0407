package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/shady-cj/social-media-api/internal/models"
	"gorm.io/gorm"
)

// IdentityRepository defines the interface for identity data operations
type IdentityRepository interface {
	CreateIdentity(ctx context.Context, identity *models.Identity) error
	GetIdentityByID(ctx context.Context, id uuid.UUID) (*models.Identity, error)
	GetIdentityByUsername(ctx context.Context, username string) (*models.Identity, error)
	GetIdentityByEmail(ctx context.Context, email string) (*models.Identity, error)
	UpdateIdentity(ctx context.Context, identity *models.Identity) error
	DeleteIdentity(ctx context.Context, id uuid.UUID) error
}

// PostgresIdentityRepository implements IdentityRepository for PostgreSQL
type PostgresIdentityRepository struct {
	db *gorm.DB
}

// NewPostgresIdentityRepository creates a new PostgresIdentityRepository
func NewPostgresIdentityRepository(db *gorm.DB) *PostgresIdentityRepository {
	return &PostgresIdentityRepository{db: db}
}

func (r *PostgresIdentityRepository) CreateIdentity(ctx context.Context, identity *models.Identity) error {
	return r.db.WithContext(ctx).Create(identity).Error
}

func (r *PostgresIdentityRepository) GetIdentityByID(ctx context.Context, id uuid.UUID) (*models.Identity, error) {
	var identity models.Identity
	if err := r.db.WithContext(ctx).First(&identity, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &identity, nil
}

func (r *PostgresIdentityRepository) GetIdentityByUsername(ctx context.Context, username string) (*models.Identity, error) {
	var identity models.Identity
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&identity).Error; err != nil {
		return nil, err
	}
	return &identity, nil
}

func (r *PostgresIdentityRepository) GetIdentityByEmail(ctx context.Context, email string) (*models.Identity, error) {
	var identity models.Identity
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&identity).Error; err != nil {
		return nil, err
	}
	return &identity, nil
}

func (r *PostgresIdentityRepository) UpdateIdentity(ctx context.Context, identity *models.Identity) error {
	return r.db.WithContext(ctx).Save(identity).Error
}

// DeleteIdentity hard-deletes an identity. The profile, posts, interactions,
// follows and bookmarks go with it through ON DELETE CASCADE.
func (r *PostgresIdentityRepository) DeleteIdentity(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Identity{}, "id = ?", id).Error
}
