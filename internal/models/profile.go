package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Profile is the social-facing record owned 1:1 by an Identity. It is
// created empty in the same transaction as its identity and only ever
// mutated by its owner.
type Profile struct {
	ID          uuid.UUID      `json:"id" gorm:"type:uuid;primaryKey"`
	IdentityID  uuid.UUID      `json:"identity_id" gorm:"type:uuid;uniqueIndex"`
	Identity    Identity       `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	FirstName   string         `json:"first_name" gorm:"size:64;index"`
	LastName    string         `json:"last_name" gorm:"size:64;index"`
	PhotoURL    string         `json:"photo_url"`
	Bio         string         `json:"bio"`
	Preferences map[string]any `json:"preferences,omitempty" gorm:"serializer:json"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

func (p *Profile) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// UpdateProfileRequest defines the request body for updating the caller's
// profile. Nil fields are left untouched.
type UpdateProfileRequest struct {
	FirstName   *string        `json:"first_name,omitempty" validate:"omitempty,max=64"`
	LastName    *string        `json:"last_name,omitempty" validate:"omitempty,max=64"`
	PhotoURL    *string        `json:"photo_url,omitempty" validate:"omitempty,url"`
	Bio         *string        `json:"bio,omitempty"`
	Preferences map[string]any `json:"preferences,omitempty"`
}

// ProfileFilter narrows profile listings. Empty fields are ignored.
type ProfileFilter struct {
	Username          string
	UsernameContains  string
	FirstNameContains string
	FirstNamePrefix   string
	LastNameContains  string
	LastNamePrefix    string
}
