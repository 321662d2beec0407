package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/shady-cj/social-media-api/internal/models"
	"github.com/shady-cj/social-media-api/internal/repositories"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// IdentityService owns the identity lifecycle: registration (with the
// profile created in the same transaction), authentication, profile
// mutation and account deletion.
type IdentityService struct {
	db         *gorm.DB
	identities repositories.IdentityRepository
	profiles   repositories.ProfileRepository
}

// NewIdentityService creates a new IdentityService
func NewIdentityService(db *gorm.DB) *IdentityService {
	return &IdentityService{
		db:         db,
		identities: repositories.NewPostgresIdentityRepository(db),
		profiles:   repositories.NewPostgresProfileRepository(db),
	}
}

// Register creates an identity and its empty profile in one transaction, so
// an active identity always has exactly one profile. Duplicate username or
// email is reported as ErrDuplicateIdentity off the unique indexes.
func (s *IdentityService) Register(ctx context.Context, req *models.SignupRequest) (*models.Identity, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	identity := &models.Identity{
		Username: req.Username,
		Email:    req.Email,
		Password: string(hashed),
		IsActive: true,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := repositories.NewPostgresIdentityRepository(tx).CreateIdentity(ctx, identity); err != nil {
			return err
		}
		return repositories.NewPostgresProfileRepository(tx).CreateProfile(ctx, &models.Profile{IdentityID: identity.ID})
	})
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateIdentity
		}
		return nil, err
	}
	return identity, nil
}

// RegisterFederated finds or creates an identity for an externally verified
// email (Firebase login). Created identities carry no usable local password.
func (s *IdentityService) RegisterFederated(ctx context.Context, username, email string) (*models.Identity, error) {
	identity, err := s.identities.GetIdentityByEmail(ctx, email)
	if err == nil {
		return identity, nil
	}
	if notFoundOr(err) != ErrNotFound {
		return nil, err
	}

	identity = &models.Identity{
		Username: username,
		Email:    email,
		IsActive: true,
	}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := repositories.NewPostgresIdentityRepository(tx).CreateIdentity(ctx, identity); err != nil {
			return err
		}
		return repositories.NewPostgresProfileRepository(tx).CreateProfile(ctx, &models.Profile{IdentityID: identity.ID})
	})
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateIdentity
		}
		return nil, err
	}
	return identity, nil
}

// Authenticate verifies a username/password pair. Unknown usernames, wrong
// passwords and inactive accounts all come back as ErrInvalidCredentials.
func (s *IdentityService) Authenticate(ctx context.Context, username, password string) (*models.Identity, error) {
	identity, err := s.identities.GetIdentityByUsername(ctx, username)
	if err != nil {
		if notFoundOr(err) == ErrNotFound {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !identity.IsActive {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(identity.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return identity, nil
}

func (s *IdentityService) GetIdentity(ctx context.Context, id uuid.UUID) (*models.Identity, error) {
	identity, err := s.identities.GetIdentityByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err)
	}
	return identity, nil
}

func (s *IdentityService) GetIdentityByUsername(ctx context.Context, username string) (*models.Identity, error) {
	identity, err := s.identities.GetIdentityByUsername(ctx, username)
	if err != nil {
		return nil, notFoundOr(err)
	}
	return identity, nil
}

func (s *IdentityService) GetProfile(ctx context.Context, identityID uuid.UUID) (*models.Profile, error) {
	profile, err := s.profiles.GetProfileByIdentityID(ctx, identityID)
	if err != nil {
		return nil, notFoundOr(err)
	}
	return profile, nil
}

func (s *IdentityService) GetProfileByUsername(ctx context.Context, username string) (*models.Profile, error) {
	profile, err := s.profiles.GetProfileByUsername(ctx, username)
	if err != nil {
		return nil, notFoundOr(err)
	}
	return profile, nil
}

// UpdateProfile applies the non-nil fields of req to the caller's profile.
// The profile is created on the fly if the row is somehow missing, matching
// get-or-create semantics.
func (s *IdentityService) UpdateProfile(ctx context.Context, actorID uuid.UUID, req *models.UpdateProfileRequest) (*models.Profile, error) {
	if actorID == uuid.Nil {
		return nil, ErrAuthenticationRequired
	}
	profile, err := s.profiles.GetProfileByIdentityID(ctx, actorID)
	if err != nil {
		if notFoundOr(err) != ErrNotFound {
			return nil, err
		}
		profile = &models.Profile{IdentityID: actorID}
		if err := s.profiles.CreateProfile(ctx, profile); err != nil {
			return nil, err
		}
	}

	if req.FirstName != nil {
		profile.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		profile.LastName = *req.LastName
	}
	if req.PhotoURL != nil {
		profile.PhotoURL = *req.PhotoURL
	}
	if req.Bio != nil {
		profile.Bio = *req.Bio
	}
	if req.Preferences != nil {
		profile.Preferences = req.Preferences
	}

	if err := s.profiles.UpdateProfile(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

func (s *IdentityService) ListProfiles(ctx context.Context, filter models.ProfileFilter) ([]models.Profile, error) {
	return s.profiles.ListProfiles(ctx, filter)
}

// DeleteIdentity removes the caller's account. The store cascades the
// profile, posts, interactions, follows and bookmarks.
func (s *IdentityService) DeleteIdentity(ctx context.Context, actorID uuid.UUID) error {
	if actorID == uuid.Nil {
		return ErrAuthenticationRequired
	}
	return s.identities.DeleteIdentity(ctx, actorID)
}
