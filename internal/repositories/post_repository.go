package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shady-cj/social-media-api/internal/models"
	"gorm.io/gorm"
)

// PostRepository defines the interface for post and media data operations
type PostRepository interface {
	CreatePost(ctx context.Context, post *models.Post) error
	GetPostByID(ctx context.Context, id uuid.UUID) (*models.Post, error)
	GetPostByIDAndAuthor(ctx context.Context, id, authorID uuid.UUID) (*models.Post, error)
	UpdatePost(ctx context.Context, post *models.Post) error
	ListPosts(ctx context.Context, filter models.PostFilter) ([]models.Post, error)
	GetComments(ctx context.Context, postID uuid.UUID) ([]models.Post, error)
	ListMedia(ctx context.Context, filter models.MediaFilter) ([]models.PostMedia, error)
	PurgeDeletedBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// PostgresPostRepository implements PostRepository for PostgreSQL
type PostgresPostRepository struct {
	db *gorm.DB
}

// NewPostgresPostRepository creates a new PostgresPostRepository
func NewPostgresPostRepository(db *gorm.DB) *PostgresPostRepository {
	return &PostgresPostRepository{db: db}
}

// CreatePost inserts the post together with its media attachments. GORM runs
// the association inserts in a single transaction, so a failing media row
// rolls back the post as well.
func (r *PostgresPostRepository) CreatePost(ctx context.Context, post *models.Post) error {
	return r.db.WithContext(ctx).Create(post).Error
}

func (r *PostgresPostRepository) GetPostByID(ctx context.Context, id uuid.UUID) (*models.Post, error) {
	var post models.Post
	if err := r.db.WithContext(ctx).Preload("Media").First(&post, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

// GetPostByIDAndAuthor retrieves a post only when it is authored by authorID.
// A foreign post and a missing post are indistinguishable to the caller.
func (r *PostgresPostRepository) GetPostByIDAndAuthor(ctx context.Context, id, authorID uuid.UUID) (*models.Post, error) {
	var post models.Post
	if err := r.db.WithContext(ctx).Where("id = ? AND author_id = ?", id, authorID).First(&post).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *PostgresPostRepository) UpdatePost(ctx context.Context, post *models.Post) error {
	return r.db.WithContext(ctx).Save(post).Error
}

// ListPosts retrieves posts matching the filter, newest first. The default
// scope excludes soft-deleted posts and comments.
func (r *PostgresPostRepository) ListPosts(ctx context.Context, filter models.PostFilter) ([]models.Post, error) {
	q := r.db.WithContext(ctx).Model(&models.Post{}).Preload("Media")

	switch filter.Scope {
	case models.ScopeAll:
		q = q.Where("deleted = ?", false)
	case models.ScopeDeleted:
		q = q.Where("deleted = ?", true)
	default:
		q = q.Where("deleted = ? AND parent_post_id IS NULL", false)
	}

	if filter.ContentContains != "" {
		q = q.Where("LOWER(content) LIKE LOWER(?)", "%"+filter.ContentContains+"%")
	}
	if filter.AuthorUsername != "" {
		q = q.Where("author_id IN (?)", r.db.Model(&models.Identity{}).Select("id").Where("username = ?", filter.AuthorUsername))
	}
	if filter.Published != nil {
		q = q.Where("is_published = ?", *filter.Published)
	}
	if filter.CreatedBefore != nil {
		q = q.Where("created_at < ?", *filter.CreatedBefore)
	}
	if filter.CreatedAfter != nil {
		q = q.Where("created_at > ?", *filter.CreatedAfter)
	}

	var posts []models.Post
	if err := q.Order("created_at DESC").Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

// GetComments retrieves the non-deleted direct comments of a post, oldest first.
func (r *PostgresPostRepository) GetComments(ctx context.Context, postID uuid.UUID) ([]models.Post, error) {
	var comments []models.Post
	err := r.db.WithContext(ctx).Preload("Media").
		Where("parent_post_id = ? AND deleted = ?", postID, false).
		Order("created_at ASC").
		Find(&comments).Error
	if err != nil {
		return nil, err
	}
	return comments, nil
}

func (r *PostgresPostRepository) ListMedia(ctx context.Context, filter models.MediaFilter) ([]models.PostMedia, error) {
	q := r.db.WithContext(ctx).Model(&models.PostMedia{})
	if filter.PostID != nil {
		q = q.Where("post_id = ?", *filter.PostID)
	}
	if filter.Type != "" {
		q = q.Where("type = ?", filter.Type)
	}

	var media []models.PostMedia
	if err := q.Order("created_at DESC").Find(&media).Error; err != nil {
		return nil, err
	}
	return media, nil
}

// PurgeDeletedBefore hard-deletes posts that were soft-deleted and last
// touched before the cutoff. Called by the external scheduled purge job, not
// by any request path. Media, interactions and bookmarks cascade.
func (r *PostgresPostRepository) PurgeDeletedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Where("deleted = ? AND updated_at < ?", true, cutoff).Delete(&models.Post{})
	return res.RowsAffected, res.Error
}
