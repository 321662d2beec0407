package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Media types allowed on a post attachment.
const (
	MediaPhoto = "PHOTO"
	MediaVideo = "VIDEO"
	MediaGIF   = "GIF"
)

// Post is a user-authored post. A post with a parent is a comment on that
// parent. Posts are never hard-deleted through the API: DeletePost only sets
// the Deleted flag and an external job purges old rows later.
type Post struct {
	ID           uuid.UUID   `json:"id" gorm:"type:uuid;primaryKey"`
	AuthorID     uuid.UUID   `json:"author_id" gorm:"type:uuid;index"`
	Author       Identity    `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	ParentPostID *uuid.UUID  `json:"parent_post_id,omitempty" gorm:"type:uuid;index"`
	ParentPost   *Post       `json:"-" gorm:"foreignKey:ParentPostID;constraint:OnDelete:CASCADE"`
	Content      string      `json:"content"`
	IsPublished  bool        `json:"is_published"`
	Edited       bool        `json:"edited"`
	Deleted      bool        `json:"deleted" gorm:"index"`
	Media        []PostMedia `json:"media,omitempty" gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE"`
	CreatedAt    time.Time   `json:"created_at" gorm:"index"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

func (p *Post) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// PostMedia is a media attachment belonging to exactly one post.
type PostMedia struct {
	ID        uuid.UUID      `json:"id" gorm:"type:uuid;primaryKey"`
	PostID    uuid.UUID      `json:"post_id" gorm:"type:uuid;index"`
	MediaURL  string         `json:"media_url"`
	Type      string         `json:"type" gorm:"size:10;default:PHOTO;check:valid_media_type,type IN ('PHOTO','VIDEO','GIF')"`
	MimeType  string         `json:"mime_type" gorm:"size:20"`
	Metadata  map[string]any `json:"metadata,omitempty" gorm:"serializer:json"`
	CreatedAt time.Time      `json:"created_at"`
}

func (m *PostMedia) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// PostMediaInput describes one attachment in a create-post request
type PostMediaInput struct {
	MediaURL string         `json:"media_url" validate:"required,url"`
	Type     string         `json:"type" validate:"required,oneof=PHOTO VIDEO GIF"`
	MimeType string         `json:"mime_type,omitempty" validate:"omitempty,max=20"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// CreatePostRequest defines the request body for creating a new post.
// ParentPostID, when set, makes the new post a comment on that post.
type CreatePostRequest struct {
	Content      string           `json:"content" validate:"required,min=1"`
	IsPublished  bool             `json:"is_published"`
	ParentPostID *uuid.UUID       `json:"parent_post_id,omitempty"`
	Media        []PostMediaInput `json:"media,omitempty" validate:"omitempty,dive"`
}

// UpdatePostRequest defines the request body for updating an existing post.
// Nil fields are left untouched.
type UpdatePostRequest struct {
	Content     *string `json:"content,omitempty" validate:"omitempty,min=1"`
	IsPublished *bool   `json:"is_published,omitempty"`
}

// PostScope selects which posts a listing covers.
type PostScope string

const (
	// ScopeTopLevel lists non-deleted posts that are not comments. Default.
	ScopeTopLevel PostScope = "top"
	// ScopeAll lists all non-deleted posts, comments included.
	ScopeAll PostScope = "all"
	// ScopeDeleted lists soft-deleted posts only (author/staff path).
	ScopeDeleted PostScope = "deleted"
)

// PostFilter narrows post listings. Zero fields are ignored.
type PostFilter struct {
	Scope           PostScope
	ContentContains string
	AuthorUsername  string
	Published       *bool
	CreatedBefore   *time.Time
	CreatedAfter    *time.Time
}

// MediaFilter narrows media listings.
type MediaFilter struct {
	PostID *uuid.UUID
	Type   string
}
