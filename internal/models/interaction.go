package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Interaction types.
const (
	InteractionLike    = "LIKE"
	InteractionShare   = "SHARE"
	InteractionComment = "COMMENT"
)

// Interaction is an engagement by a user against a post. LIKE is unique per
// (user, post) pair, enforced by a partial unique index so concurrent likes
// cannot slip past the application-level check. SHARE and COMMENT are
// unrestricted in count.
type Interaction struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `json:"user_id" gorm:"type:uuid;index:idx_interaction_user_post;uniqueIndex:idx_like_once,where:type = 'LIKE'"`
	User      Identity  `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	PostID    uuid.UUID `json:"post_id" gorm:"type:uuid;index;index:idx_interaction_user_post;uniqueIndex:idx_like_once,where:type = 'LIKE'"`
	Post      Post      `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	Type      string    `json:"type" gorm:"size:10;default:LIKE;check:valid_interaction_type,type IN ('LIKE','SHARE','COMMENT')"`
	CreatedAt time.Time `json:"created_at" gorm:"index"`
}

func (i *Interaction) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// InteractionRequest defines the request body for creating or deleting an
// interaction on a post
type InteractionRequest struct {
	Type string `json:"type" validate:"required,oneof=LIKE SHARE COMMENT"`
}

// InteractionFilter narrows interaction listings. Zero fields are ignored.
type InteractionFilter struct {
	PostID        *uuid.UUID
	UserID        *uuid.UUID
	Username      string
	Type          string
	CreatedBefore *time.Time
	CreatedAfter  *time.Time
}
