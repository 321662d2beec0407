package services

import (
	"context"
	"testing"

	"github.com/shady-cj/social-media-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestUserJourney walks two accounts through the common path: sign up,
// fill in a profile, publish, like, follow.
func TestUserJourney(t *testing.T) {
	db := newTestDB(t)
	identities := NewIdentityService(db)
	posts := NewPostService(db)
	graph := NewGraphService(db)
	ctx := context.Background()

	alice := register(t, identities, "alice")
	bob := register(t, identities, "bob")

	first := "Alice"
	_, err := identities.UpdateProfile(ctx, alice.ID, &models.UpdateProfileRequest{FirstName: &first})
	require.NoError(t, err)

	post, err := posts.CreatePost(ctx, alice.ID, &models.CreatePostRequest{
		Content:     "first post",
		IsPublished: true,
	})
	require.NoError(t, err)

	_, err = posts.CreateInteraction(ctx, bob.ID, post.ID, models.InteractionLike)
	require.NoError(t, err)

	count, err := posts.LikeCount(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	_, err = posts.CreateInteraction(ctx, bob.ID, post.ID, models.InteractionLike)
	assert.ErrorIs(t, err, ErrDuplicateInteraction)

	count, err = posts.LikeCount(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	require.NoError(t, graph.Follow(ctx, bob.ID, "alice"))

	followers, err := graph.Followers(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, followers, 1)
	assert.Equal(t, bob.ID, followers[0].IdentityID)

	_, err = posts.AddBookmark(ctx, bob.ID, post.ID)
	require.NoError(t, err)

	bookmarks, err := posts.ListBookmarks(ctx, bob.ID)
	require.NoError(t, err)
	require.Len(t, bookmarks, 1)
	assert.Equal(t, post.ID, bookmarks[0].PostID)
}
