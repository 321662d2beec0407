package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shady-cj/social-media-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatePostWithMedia(t *testing.T) {
	db := newTestDB(t)
	identities := NewIdentityService(db)
	posts := NewPostService(db)
	ctx := context.Background()

	alice := register(t, identities, "alice")

	post, err := posts.CreatePost(ctx, alice.ID, &models.CreatePostRequest{
		Content:     "hello world",
		IsPublished: true,
		Media: []models.PostMediaInput{
			{MediaURL: "https://cdn.example.com/a.jpg", Type: models.MediaPhoto, MimeType: "image/jpeg"},
			{MediaURL: "https://cdn.example.com/b.gif", Type: models.MediaGIF},
		},
	})
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, post.ID)
	assert.Len(t, post.Media, 2)

	var mediaCount int64
	require.NoError(t, db.Model(&models.PostMedia{}).Where("post_id = ?", post.ID).Count(&mediaCount).Error)
	assert.Equal(t, int64(2), mediaCount)

	fetched, err := posts.GetPost(ctx, alice.ID, false, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "hello world", fetched.Content)
	assert.Len(t, fetched.Media, 2)
}

func TestCreateCommentRequiresParent(t *testing.T) {
	db := newTestDB(t)
	identities := NewIdentityService(db)
	posts := NewPostService(db)
	ctx := context.Background()

	alice := register(t, identities, "alice")

	missing := uuid.New()
	_, err := posts.CreatePost(ctx, alice.ID, &models.CreatePostRequest{
		Content:      "orphan comment",
		ParentPostID: &missing,
	})
	assert.ErrorIs(t, err, ErrNotFound)

	parent, err := posts.CreatePost(ctx, alice.ID, &models.CreatePostRequest{Content: "parent", IsPublished: true})
	require.NoError(t, err)

	comment, err := posts.CreatePost(ctx, alice.ID, &models.CreatePostRequest{
		Content:      "a comment",
		ParentPostID: &parent.ID,
	})
	require.NoError(t, err)
	require.NotNil(t, comment.ParentPostID)
	assert.Equal(t, parent.ID, *comment.ParentPostID)

	comments, err := posts.GetComments(ctx, parent.ID)
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, comment.ID, comments[0].ID)

	// commenting on a soft-deleted post is indistinguishable from a missing one
	require.NoError(t, posts.DeletePost(ctx, alice.ID, parent.ID))
	_, err = posts.CreatePost(ctx, alice.ID, &models.CreatePostRequest{
		Content:      "late comment",
		ParentPostID: &parent.ID,
	})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdatePostPartialAndOwnership(t *testing.T) {
	db := newTestDB(t)
	identities := NewIdentityService(db)
	posts := NewPostService(db)
	ctx := context.Background()

	alice := register(t, identities, "alice")
	bob := register(t, identities, "bob")

	post, err := posts.CreatePost(ctx, alice.ID, &models.CreatePostRequest{Content: "draft", IsPublished: false})
	require.NoError(t, err)
	assert.False(t, post.Edited)

	// a foreign post reads as missing, even though it exists
	_, err = posts.UpdatePost(ctx, bob.ID, post.ID, &models.UpdatePostRequest{Content: strPtr("hijacked")})
	assert.ErrorIs(t, err, ErrNotFound)

	updated, err := posts.UpdatePost(ctx, alice.ID, post.ID, &models.UpdatePostRequest{Content: strPtr("v2")})
	require.NoError(t, err)
	assert.Equal(t, "v2", updated.Content)
	assert.False(t, updated.IsPublished) // untouched
	assert.True(t, updated.Edited)

	published := true
	updated, err = posts.UpdatePost(ctx, alice.ID, post.ID, &models.UpdatePostRequest{IsPublished: &published})
	require.NoError(t, err)
	assert.Equal(t, "v2", updated.Content) // untouched
	assert.True(t, updated.IsPublished)
}

func TestSoftDeleteVisibility(t *testing.T) {
	db := newTestDB(t)
	identities := NewIdentityService(db)
	posts := NewPostService(db)
	ctx := context.Background()

	alice := register(t, identities, "alice")
	bob := register(t, identities, "bob")

	post, err := posts.CreatePost(ctx, alice.ID, &models.CreatePostRequest{Content: "to be removed", IsPublished: true})
	require.NoError(t, err)

	assert.ErrorIs(t, posts.DeletePost(ctx, bob.ID, post.ID), ErrNotFound)
	require.NoError(t, posts.DeletePost(ctx, alice.ID, post.ID))

	listed, err := posts.ListPosts(ctx, models.PostFilter{Scope: models.ScopeTopLevel})
	require.NoError(t, err)
	assert.Empty(t, listed)

	listed, err = posts.ListPosts(ctx, models.PostFilter{Scope: models.ScopeAll})
	require.NoError(t, err)
	assert.Empty(t, listed)

	deleted, err := posts.ListPosts(ctx, models.PostFilter{Scope: models.ScopeDeleted})
	require.NoError(t, err)
	require.Len(t, deleted, 1)
	assert.Equal(t, post.ID, deleted[0].ID)

	// still addressable by id for the author and staff, not for others
	fetched, err := posts.GetPost(ctx, alice.ID, false, post.ID)
	require.NoError(t, err)
	assert.True(t, fetched.Deleted)

	_, err = posts.GetPost(ctx, bob.ID, false, post.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = posts.GetPost(ctx, bob.ID, true, post.ID)
	assert.NoError(t, err)
}

func TestListPostsScopesAndFilters(t *testing.T) {
	db := newTestDB(t)
	identities := NewIdentityService(db)
	posts := NewPostService(db)
	ctx := context.Background()

	alice := register(t, identities, "alice")
	bob := register(t, identities, "bob")

	parent, err := posts.CreatePost(ctx, alice.ID, &models.CreatePostRequest{Content: "Hello graph", IsPublished: true})
	require.NoError(t, err)
	_, err = posts.CreatePost(ctx, bob.ID, &models.CreatePostRequest{Content: "a reply", ParentPostID: &parent.ID})
	require.NoError(t, err)
	_, err = posts.CreatePost(ctx, bob.ID, &models.CreatePostRequest{Content: "bob speaks"})
	require.NoError(t, err)

	top, err := posts.ListPosts(ctx, models.PostFilter{Scope: models.ScopeTopLevel})
	require.NoError(t, err)
	assert.Len(t, top, 2) // comments excluded

	all, err := posts.ListPosts(ctx, models.PostFilter{Scope: models.ScopeAll})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	byAuthor, err := posts.ListPosts(ctx, models.PostFilter{Scope: models.ScopeAll, AuthorUsername: "bob"})
	require.NoError(t, err)
	assert.Len(t, byAuthor, 2)

	byContent, err := posts.ListPosts(ctx, models.PostFilter{ContentContains: "hello"})
	require.NoError(t, err)
	require.Len(t, byContent, 1)
	assert.Equal(t, parent.ID, byContent[0].ID)

	published := true
	byPublished, err := posts.ListPosts(ctx, models.PostFilter{Scope: models.ScopeAll, Published: &published})
	require.NoError(t, err)
	assert.Len(t, byPublished, 1)
}

func TestLikeUniqueness(t *testing.T) {
	db := newTestDB(t)
	identities := NewIdentityService(db)
	posts := NewPostService(db)
	ctx := context.Background()

	alice := register(t, identities, "alice")
	bob := register(t, identities, "bob")

	post, err := posts.CreatePost(ctx, alice.ID, &models.CreatePostRequest{Content: "likeable", IsPublished: true})
	require.NoError(t, err)

	_, err = posts.CreateInteraction(ctx, bob.ID, post.ID, models.InteractionLike)
	require.NoError(t, err)

	_, err = posts.CreateInteraction(ctx, bob.ID, post.ID, models.InteractionLike)
	assert.ErrorIs(t, err, ErrDuplicateInteraction)

	count, err := posts.LikeCount(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	// the partial unique index is the real guard: inserting behind the
	// service's back must fail at the store
	err = db.WithContext(ctx).Create(&models.Interaction{
		UserID: bob.ID,
		PostID: post.ID,
		Type:   models.InteractionLike,
	}).Error
	require.Error(t, err)
	assert.True(t, isUniqueViolation(err))

	// shares and comments are unrestricted in count
	_, err = posts.CreateInteraction(ctx, bob.ID, post.ID, models.InteractionShare)
	require.NoError(t, err)
	_, err = posts.CreateInteraction(ctx, bob.ID, post.ID, models.InteractionShare)
	require.NoError(t, err)
}

func TestDeleteInteraction(t *testing.T) {
	db := newTestDB(t)
	identities := NewIdentityService(db)
	posts := NewPostService(db)
	ctx := context.Background()

	alice := register(t, identities, "alice")
	bob := register(t, identities, "bob")

	post, err := posts.CreatePost(ctx, alice.ID, &models.CreatePostRequest{Content: "likeable", IsPublished: true})
	require.NoError(t, err)

	err = posts.DeleteInteraction(ctx, bob.ID, post.ID, models.InteractionLike)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = posts.CreateInteraction(ctx, bob.ID, post.ID, models.InteractionLike)
	require.NoError(t, err)
	require.NoError(t, posts.DeleteInteraction(ctx, bob.ID, post.ID, models.InteractionLike))

	count, err := posts.LikeCount(ctx, post.ID)
	require.NoError(t, err)
	assert.Zero(t, count)

	// unliking allows liking again
	_, err = posts.CreateInteraction(ctx, bob.ID, post.ID, models.InteractionLike)
	require.NoError(t, err)
}

func TestInteractionOnDeletedPost(t *testing.T) {
	db := newTestDB(t)
	identities := NewIdentityService(db)
	posts := NewPostService(db)
	ctx := context.Background()

	alice := register(t, identities, "alice")
	bob := register(t, identities, "bob")

	post, err := posts.CreatePost(ctx, alice.ID, &models.CreatePostRequest{Content: "gone soon", IsPublished: true})
	require.NoError(t, err)
	require.NoError(t, posts.DeletePost(ctx, alice.ID, post.ID))

	_, err = posts.CreateInteraction(ctx, bob.ID, post.ID, models.InteractionLike)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = posts.AddBookmark(ctx, bob.ID, post.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestBookmarks(t *testing.T) {
	db := newTestDB(t)
	identities := NewIdentityService(db)
	posts := NewPostService(db)
	ctx := context.Background()

	alice := register(t, identities, "alice")
	bob := register(t, identities, "bob")

	post, err := posts.CreatePost(ctx, alice.ID, &models.CreatePostRequest{Content: "worth keeping", IsPublished: true})
	require.NoError(t, err)

	bookmark, err := posts.AddBookmark(ctx, bob.ID, post.ID)
	require.NoError(t, err)

	_, err = posts.AddBookmark(ctx, bob.ID, post.ID)
	assert.ErrorIs(t, err, ErrAlreadyBookmarked)

	// bookmarks are private: the owner sees theirs, nobody else's, and a
	// foreign bookmark id yields forbidden rather than data
	own, err := posts.ListBookmarks(ctx, bob.ID)
	require.NoError(t, err)
	require.Len(t, own, 1)
	assert.Equal(t, bookmark.ID, own[0].ID)

	others, err := posts.ListBookmarks(ctx, alice.ID)
	require.NoError(t, err)
	assert.Empty(t, others)

	_, err = posts.GetBookmark(ctx, alice.ID, bookmark.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	fetched, err := posts.GetBookmark(ctx, bob.ID, bookmark.ID)
	require.NoError(t, err)
	assert.Equal(t, post.ID, fetched.PostID)

	require.NoError(t, posts.RemoveBookmark(ctx, bob.ID, post.ID))
	assert.ErrorIs(t, posts.RemoveBookmark(ctx, bob.ID, post.ID), ErrNotFound)
}

func TestPurgeDeletedPosts(t *testing.T) {
	db := newTestDB(t)
	identities := NewIdentityService(db)
	posts := NewPostService(db)
	ctx := context.Background()

	alice := register(t, identities, "alice")

	old, err := posts.CreatePost(ctx, alice.ID, &models.CreatePostRequest{Content: "old and deleted"})
	require.NoError(t, err)
	require.NoError(t, posts.DeletePost(ctx, alice.ID, old.ID))
	// age the row past the cutoff without touching updated_at again
	require.NoError(t, db.Model(&models.Post{}).Where("id = ?", old.ID).
		UpdateColumn("updated_at", time.Now().AddDate(0, 0, -31)).Error)

	recent, err := posts.CreatePost(ctx, alice.ID, &models.CreatePostRequest{Content: "freshly deleted"})
	require.NoError(t, err)
	require.NoError(t, posts.DeletePost(ctx, alice.ID, recent.ID))

	kept, err := posts.CreatePost(ctx, alice.ID, &models.CreatePostRequest{Content: "alive", IsPublished: true})
	require.NoError(t, err)

	_, err = posts.PurgeDeletedPosts(ctx, false, time.Now().AddDate(0, 0, -30))
	assert.ErrorIs(t, err, ErrForbidden)

	purged, err := posts.PurgeDeletedPosts(ctx, true, time.Now().AddDate(0, 0, -30))
	require.NoError(t, err)
	assert.Equal(t, int64(1), purged)

	var remaining []models.Post
	require.NoError(t, db.Find(&remaining).Error)
	ids := make(map[uuid.UUID]bool, len(remaining))
	for _, p := range remaining {
		ids[p.ID] = true
	}
	assert.False(t, ids[old.ID])
	assert.True(t, ids[recent.ID])
	assert.True(t, ids[kept.ID])
}

func strPtr(s string) *string { return &s }
