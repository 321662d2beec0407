package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Bookmark marks a post saved by a user. Unique per (user, post) and
// private to its owner.
type Bookmark struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `json:"user_id" gorm:"type:uuid;index;uniqueIndex:idx_user_post_bookmark"`
	User      Identity  `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	PostID    uuid.UUID `json:"post_id" gorm:"type:uuid;index;uniqueIndex:idx_user_post_bookmark"`
	Post      Post      `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	CreatedAt time.Time `json:"created_at"`
}

func (b *Bookmark) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}
