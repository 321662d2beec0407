package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Follow is a directed edge in the social graph: Follower follows Followed.
// The pair is unique and self-loops are rejected by a check constraint, so
// the application-level guards are only there for friendlier errors.
// Single-column indexes cover both traversal directions.
type Follow struct {
	ID         uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	FollowedID uuid.UUID `json:"followed_id" gorm:"type:uuid;index;uniqueIndex:idx_followed_follower;check:no_self_follow,followed_id <> follower_id"`
	Followed   Identity  `json:"-" gorm:"foreignKey:FollowedID;constraint:OnDelete:CASCADE"`
	FollowerID uuid.UUID `json:"follower_id" gorm:"type:uuid;index;uniqueIndex:idx_followed_follower"`
	Follower   Identity  `json:"-" gorm:"foreignKey:FollowerID;constraint:OnDelete:CASCADE"`
	CreatedAt  time.Time `json:"created_at"`
}

func (f *Follow) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}

// FollowFilter narrows follow-edge listings. Empty fields are ignored.
type FollowFilter struct {
	FollowedUsername string
	FollowerUsername string
}
