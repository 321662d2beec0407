package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shady-cj/social-media-api/internal/models"
	"github.com/shady-cj/social-media-api/internal/repositories"
	"gorm.io/gorm"
)

// PostService owns the post lifecycle (create, partial update, soft delete),
// comment threading, interactions and bookmarks. Mutations are author-only;
// a post that exists but belongs to someone else is reported exactly like a
// missing one so callers cannot probe for existence.
type PostService struct {
	db           *gorm.DB
	posts        repositories.PostRepository
	interactions repositories.InteractionRepository
	bookmarks    repositories.BookmarkRepository
}

// NewPostService creates a new PostService
func NewPostService(db *gorm.DB) *PostService {
	return &PostService{
		db:           db,
		posts:        repositories.NewPostgresPostRepository(db),
		interactions: repositories.NewPostgresInteractionRepository(db),
		bookmarks:    repositories.NewPostgresBookmarkRepository(db),
	}
}

// CreatePost creates a post with its media attachments, all-or-nothing. A
// parent post id turns the new post into a comment; the parent must exist
// and not be soft-deleted. Parents are fixed at creation, which keeps the
// comment tree acyclic.
func (s *PostService) CreatePost(ctx context.Context, authorID uuid.UUID, req *models.CreatePostRequest) (*models.Post, error) {
	if authorID == uuid.Nil {
		return nil, ErrAuthenticationRequired
	}

	post := &models.Post{
		AuthorID:    authorID,
		Content:     req.Content,
		IsPublished: req.IsPublished,
	}

	if req.ParentPostID != nil {
		parent, err := s.posts.GetPostByID(ctx, *req.ParentPostID)
		if err != nil {
			return nil, notFoundOr(err)
		}
		if parent.Deleted {
			return nil, ErrNotFound
		}
		post.ParentPostID = &parent.ID
	}

	for _, m := range req.Media {
		post.Media = append(post.Media, models.PostMedia{
			MediaURL: m.MediaURL,
			Type:     m.Type,
			MimeType: m.MimeType,
			Metadata: m.Metadata,
		})
	}

	// post and media rows go in together; a failing media insert rolls the
	// whole create back
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return repositories.NewPostgresPostRepository(tx).CreatePost(ctx, post)
	})
	if err != nil {
		return nil, err
	}
	return post, nil
}

// UpdatePost applies the non-nil fields of req to the actor's post and marks
// it edited. ErrNotFound covers both a missing post and a foreign one.
func (s *PostService) UpdatePost(ctx context.Context, actorID, postID uuid.UUID, req *models.UpdatePostRequest) (*models.Post, error) {
	if actorID == uuid.Nil {
		return nil, ErrAuthenticationRequired
	}
	post, err := s.posts.GetPostByIDAndAuthor(ctx, postID, actorID)
	if err != nil {
		return nil, notFoundOr(err)
	}

	if req.Content != nil {
		post.Content = *req.Content
	}
	if req.IsPublished != nil {
		post.IsPublished = *req.IsPublished
	}
	post.Edited = true

	if err := s.posts.UpdatePost(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// DeletePost soft-deletes the actor's post. The row stays addressable for
// the author and staff until the external purge job removes it.
func (s *PostService) DeletePost(ctx context.Context, actorID, postID uuid.UUID) error {
	if actorID == uuid.Nil {
		return ErrAuthenticationRequired
	}
	post, err := s.posts.GetPostByIDAndAuthor(ctx, postID, actorID)
	if err != nil {
		return notFoundOr(err)
	}

	post.Deleted = true
	return s.posts.UpdatePost(ctx, post)
}

// GetPost fetches a post by id. Soft-deleted posts stay visible to their
// author and to staff only.
func (s *PostService) GetPost(ctx context.Context, actorID uuid.UUID, staff bool, postID uuid.UUID) (*models.Post, error) {
	post, err := s.posts.GetPostByID(ctx, postID)
	if err != nil {
		return nil, notFoundOr(err)
	}
	if post.Deleted && post.AuthorID != actorID && !staff {
		return nil, ErrNotFound
	}
	return post, nil
}

func (s *PostService) ListPosts(ctx context.Context, filter models.PostFilter) ([]models.Post, error) {
	return s.posts.ListPosts(ctx, filter)
}

// GetComments returns the non-deleted comments of a visible post.
func (s *PostService) GetComments(ctx context.Context, postID uuid.UUID) ([]models.Post, error) {
	post, err := s.posts.GetPostByID(ctx, postID)
	if err != nil {
		return nil, notFoundOr(err)
	}
	if post.Deleted {
		return nil, ErrNotFound
	}
	return s.posts.GetComments(ctx, postID)
}

func (s *PostService) ListMedia(ctx context.Context, filter models.MediaFilter) ([]models.PostMedia, error) {
	return s.posts.ListMedia(ctx, filter)
}

// CreateInteraction records an engagement on a post. A second LIKE by the
// same user is ErrDuplicateInteraction: the pre-check gives the friendly
// error and the partial unique index closes the race window.
func (s *PostService) CreateInteraction(ctx context.Context, actorID, postID uuid.UUID, interactionType string) (*models.Interaction, error) {
	if actorID == uuid.Nil {
		return nil, ErrAuthenticationRequired
	}
	post, err := s.posts.GetPostByID(ctx, postID)
	if err != nil {
		return nil, notFoundOr(err)
	}
	if post.Deleted {
		return nil, ErrNotFound
	}

	if interactionType == models.InteractionLike {
		liked, err := s.interactions.HasUserLikedPost(ctx, actorID, postID)
		if err != nil {
			return nil, err
		}
		if liked {
			return nil, ErrDuplicateInteraction
		}
	}

	interaction := &models.Interaction{
		UserID: actorID,
		PostID: postID,
		Type:   interactionType,
	}
	if err := s.interactions.CreateInteraction(ctx, interaction); err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateInteraction
		}
		return nil, err
	}
	return interaction, nil
}

// DeleteInteraction removes the actor's interaction of the given type on a
// post. Deleting a COMMENT interaction does not touch any comment post; the
// two are independently lifecycled.
func (s *PostService) DeleteInteraction(ctx context.Context, actorID, postID uuid.UUID, interactionType string) error {
	if actorID == uuid.Nil {
		return ErrAuthenticationRequired
	}
	rows, err := s.interactions.DeleteInteraction(ctx, actorID, postID, interactionType)
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

// LikeCount counts LIKE interactions on the post at read time.
func (s *PostService) LikeCount(ctx context.Context, postID uuid.UUID) (int64, error) {
	if _, err := s.posts.GetPostByID(ctx, postID); err != nil {
		return 0, notFoundOr(err)
	}
	return s.interactions.GetLikesCountByPostID(ctx, postID)
}

func (s *PostService) ListInteractions(ctx context.Context, filter models.InteractionFilter) ([]models.Interaction, error) {
	return s.interactions.ListInteractions(ctx, filter)
}

// AddBookmark bookmarks a post for the actor. ErrAlreadyBookmarked on a
// repeat, with the unique index as the concurrent-safety net.
func (s *PostService) AddBookmark(ctx context.Context, actorID, postID uuid.UUID) (*models.Bookmark, error) {
	if actorID == uuid.Nil {
		return nil, ErrAuthenticationRequired
	}
	post, err := s.posts.GetPostByID(ctx, postID)
	if err != nil {
		return nil, notFoundOr(err)
	}
	if post.Deleted {
		return nil, ErrNotFound
	}

	bookmarked, err := s.bookmarks.IsBookmarked(ctx, actorID, postID)
	if err != nil {
		return nil, err
	}
	if bookmarked {
		return nil, ErrAlreadyBookmarked
	}

	bookmark := &models.Bookmark{UserID: actorID, PostID: postID}
	if err := s.bookmarks.CreateBookmark(ctx, bookmark); err != nil {
		if isUniqueViolation(err) {
			return nil, ErrAlreadyBookmarked
		}
		return nil, err
	}
	return bookmark, nil
}

func (s *PostService) RemoveBookmark(ctx context.Context, actorID, postID uuid.UUID) error {
	if actorID == uuid.Nil {
		return ErrAuthenticationRequired
	}
	rows, err := s.bookmarks.DeleteBookmark(ctx, actorID, postID)
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

// ListBookmarks returns the actor's own bookmarks only.
func (s *PostService) ListBookmarks(ctx context.Context, actorID uuid.UUID) ([]models.Bookmark, error) {
	if actorID == uuid.Nil {
		return nil, ErrAuthenticationRequired
	}
	return s.bookmarks.GetBookmarksByUser(ctx, actorID)
}

// GetBookmark fetches a bookmark by id; another user's bookmark is
// ErrForbidden, never their data.
func (s *PostService) GetBookmark(ctx context.Context, actorID, bookmarkID uuid.UUID) (*models.Bookmark, error) {
	if actorID == uuid.Nil {
		return nil, ErrAuthenticationRequired
	}
	bookmark, err := s.bookmarks.GetBookmarkByID(ctx, bookmarkID)
	if err != nil {
		return nil, notFoundOr(err)
	}
	if bookmark.UserID != actorID {
		return nil, ErrForbidden
	}
	return bookmark, nil
}

// PurgeDeletedPosts hard-deletes soft-deleted posts older than the cutoff.
// Staff only; meant to be driven by the external scheduled purge job.
func (s *PostService) PurgeDeletedPosts(ctx context.Context, staff bool, cutoff time.Time) (int64, error) {
	if !staff {
		return 0, ErrForbidden
	}
	return s.posts.PurgeDeletedBefore(ctx, cutoff)
}
