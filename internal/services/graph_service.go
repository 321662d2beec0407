package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/shady-cj/social-media-api/internal/models"
	"github.com/shady-cj/social-media-api/internal/repositories"
	"gorm.io/gorm"
)

// GraphService is the social graph engine: it maintains the directed follow
// edge set and answers follower/following/mutual queries. It is stateless
// logic over the store; every uniqueness rule it relies on is backed by a
// database constraint.
type GraphService struct {
	follows    repositories.FollowRepository
	identities repositories.IdentityRepository
}

// NewGraphService creates a new GraphService
func NewGraphService(db *gorm.DB) *GraphService {
	return &GraphService{
		follows:    repositories.NewPostgresFollowRepository(db),
		identities: repositories.NewPostgresIdentityRepository(db),
	}
}

// Follow makes the actor follow the identity behind targetUsername.
// Following someone already followed is a no-op: the edge is upserted
// against the unique (followed, follower) index, so a concurrent duplicate
// can never produce a second row.
func (s *GraphService) Follow(ctx context.Context, actorID uuid.UUID, targetUsername string) error {
	if actorID == uuid.Nil {
		return ErrAuthenticationRequired
	}
	target, err := s.identities.GetIdentityByUsername(ctx, targetUsername)
	if err != nil {
		return notFoundOr(err)
	}
	if target.ID == actorID {
		return ErrSelfFollow
	}

	follow := &models.Follow{FollowedID: target.ID, FollowerID: actorID}
	if _, err := s.follows.UpsertFollow(ctx, follow); err != nil {
		if isUniqueViolation(err) {
			// lost a race against an identical follow; the edge exists
			return nil
		}
		return err
	}
	return nil
}

// Unfollow removes the actor's follow edge to targetUsername. ErrNotFollowing
// when no such edge exists.
func (s *GraphService) Unfollow(ctx context.Context, actorID uuid.UUID, targetUsername string) error {
	if actorID == uuid.Nil {
		return ErrAuthenticationRequired
	}
	target, err := s.identities.GetIdentityByUsername(ctx, targetUsername)
	if err != nil {
		return notFoundOr(err)
	}
	if target.ID == actorID {
		// such an edge can never exist, but keep the error specific
		return ErrSelfFollow
	}

	rows, err := s.follows.DeleteFollow(ctx, target.ID, actorID)
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFollowing
	}
	return nil
}

// Followers returns the profiles following the given identity, most recent
// follow first.
func (s *GraphService) Followers(ctx context.Context, identityID uuid.UUID) ([]models.Profile, error) {
	return s.follows.GetFollowers(ctx, identityID)
}

// Following returns the profiles the given identity follows, most recent
// follow first.
func (s *GraphService) Following(ctx context.Context, identityID uuid.UUID) ([]models.Profile, error) {
	return s.follows.GetFollowing(ctx, identityID)
}

// MutualFollowers returns the profiles that both follow the given identity
// and are followed back by it.
func (s *GraphService) MutualFollowers(ctx context.Context, identityID uuid.UUID) ([]models.Profile, error) {
	return s.follows.GetMutualFollowers(ctx, identityID)
}

func (s *GraphService) FollowerCount(ctx context.Context, identityID uuid.UUID) (int64, error) {
	return s.follows.GetFollowersCount(ctx, identityID)
}

func (s *GraphService) FollowingCount(ctx context.Context, identityID uuid.UUID) (int64, error) {
	return s.follows.GetFollowingCount(ctx, identityID)
}

func (s *GraphService) IsFollowing(ctx context.Context, followerID, followedID uuid.UUID) (bool, error) {
	return s.follows.IsFollowing(ctx, followerID, followedID)
}

func (s *GraphService) ListFollows(ctx context.Context, filter models.FollowFilter) ([]models.Follow, error) {
	return s.follows.ListFollows(ctx, filter)
}
